package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/pkg/serverutils"
	"collabnote-be/internal/repository/memory"
	"collabnote-be/internal/service"
	"collabnote-be/pkg/llm"
	"collabnote-be/pkg/storage"
	"collabnote-be/pkg/webpush"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	jwtSecret  = "controller-secret"
	cronSecret = "cron-secret"
	ownerEmail = "owner@example.com"
	guestEmail = "guest@example.com"
)

type nopChanges struct{}

func (nopChanges) PublishRoomChanged(ctx context.Context, msg dto.PublishRoomChangedMessage) error {
	return nil
}

type nopSender struct{}

func (nopSender) Send(ctx context.Context, sub webpush.Subscription, payload []byte) error {
	return nil
}

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.reply, p.err
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.reply, p.err
}

type testApp struct {
	app      *fiber.App
	provider *stubProvider
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	t.Setenv("JWT_SECRET", jwtSecret)

	log := logger.NewNopLogger()
	factory := memory.NewRepositoryFactory(memory.NewStore())
	provider := &stubProvider{reply: "Better text."}

	roomSvc := service.NewRoomService(factory, nopChanges{}, nil, nil, storage.NewMemoryFileSystem("http://localhost/uploads"), log, service.RoomServiceConfig{
		ClientURL:    "https://app.test",
		CollabSecret: "collab",
	})
	workspaceSvc := service.NewWorkspaceService(factory, log)
	reminderSvc := service.NewReminderService(factory, log)
	sweepSvc := service.NewSweepService(factory, nopSender{}, nil, log, "https://app.test")
	aiSvc := service.NewAIService(provider, time.Minute, log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewSweepController(sweepSvc, cronSecret).RegisterRoutes(api)
	NewRoomController(roomSvc, workspaceSvc).RegisterRoutes(api)
	NewReminderController(reminderSvc, "UTC").RegisterRoutes(api)
	NewHomeController(workspaceSvc, "UTC").RegisterRoutes(api)
	NewAIController(aiSvc).RegisterRoutes(api)
	NewCollabController(roomSvc).RegisterRoutes(api)

	return &testApp{app: app, provider: provider}
}

func bearer(t *testing.T, email string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (a *testApp) do(t *testing.T, method, path, auth string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return a.send(t, req)
}

func (a *testApp) send(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func (a *testApp) createRoom(t *testing.T, auth string) string {
	t.Helper()
	status, env := a.do(t, http.MethodPost, "/api/rooms", auth, nil)
	require.Equal(t, fiber.StatusCreated, status)
	var res dto.CreateRoomResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	return res.Id.String()
}

func TestRoomRoutesRequireToken(t *testing.T) {
	a := newTestApp(t)

	status, env := a.do(t, http.MethodPost, "/api/rooms", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.False(t, env.Success)

	status, _ = a.do(t, http.MethodGet, "/api/rooms/tree", "Bearer not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRoomLifecycleOverHTTP(t *testing.T) {
	a := newTestApp(t)
	owner := bearer(t, ownerEmail)
	guest := bearer(t, guestEmail)

	id := a.createRoom(t, owner)

	status, _ := a.do(t, http.MethodPut, "/api/rooms/"+id+"/title", owner, dto.RenameRoomRequest{Title: "Roadmap"})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = a.do(t, http.MethodGet, "/api/rooms/"+id, guest, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env := a.do(t, http.MethodPost, "/api/rooms/"+id+"/invite", owner, dto.InviteUserRequest{Email: "not-an-email"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, env.Success)

	status, _ = a.do(t, http.MethodPost, "/api/rooms/"+id+"/invite", owner, dto.InviteUserRequest{Email: "Guest@Example.com"})
	require.Equal(t, fiber.StatusOK, status)

	status, env = a.do(t, http.MethodGet, "/api/rooms/"+id, guest, nil)
	require.Equal(t, fiber.StatusOK, status)
	var show dto.ShowRoomResponse
	require.NoError(t, json.Unmarshal(env.Data, &show))
	assert.Equal(t, "Roadmap", show.Room.Title)
	assert.Equal(t, "editor", show.Room.Role)
	assert.Len(t, show.Users, 2)

	status, _ = a.do(t, http.MethodPost, "/api/rooms/"+id+"/archive", guest, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, env = a.do(t, http.MethodGet, "/api/rooms/tree?view=trash", owner, nil)
	require.Equal(t, fiber.StatusOK, status)
	var tree dto.RoomTreeResponse
	require.NoError(t, json.Unmarshal(env.Data, &tree))
	assert.Equal(t, 1, tree.Count)

	status, _ = a.do(t, http.MethodGet, "/api/rooms/tree?view=bogus", owner, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = a.do(t, http.MethodDelete, "/api/rooms/"+id, guest, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	status, _ = a.do(t, http.MethodDelete, "/api/rooms/"+id, owner, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = a.do(t, http.MethodGet, "/api/rooms/"+id, owner, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = a.do(t, http.MethodGet, "/api/rooms/not-a-uuid", owner, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestRenameTitleLengthLimit(t *testing.T) {
	a := newTestApp(t)
	owner := bearer(t, ownerEmail)
	id := a.createRoom(t, owner)

	longest := strings.Repeat("ü", 255)
	status, _ := a.do(t, http.MethodPut, "/api/rooms/"+id+"/title", owner, dto.RenameRoomRequest{Title: longest})
	require.Equal(t, fiber.StatusOK, status)

	status, env := a.do(t, http.MethodPut, "/api/rooms/"+id+"/title", owner, dto.RenameRoomRequest{Title: longest + "!"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, env.Success)

	status, env = a.do(t, http.MethodGet, "/api/rooms/"+id, owner, nil)
	require.Equal(t, fiber.StatusOK, status)
	var show dto.ShowRoomResponse
	require.NoError(t, json.Unmarshal(env.Data, &show))
	assert.Equal(t, longest, show.Room.Title)

	status, _ = a.do(t, http.MethodPost, "/api/reminders", owner, dto.CreateReminderRequest{
		ReminderTime: time.Now().Add(time.Hour),
		Message:      "read it",
		NoteTitle:    strings.Repeat("n", 256),
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUploadCover(t *testing.T) {
	a := newTestApp(t)
	owner := bearer(t, ownerEmail)
	id := a.createRoom(t, owner)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="cover.png"`)
	header.Set("Content-Type", "image/png")
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nfake"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/rooms/"+id+"/cover/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", owner)

	status, env := a.send(t, req)
	require.Equal(t, fiber.StatusOK, status)
	var res dto.SetCoverResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Contains(t, res.CoverImage, "http://localhost/uploads/covers/"+id+"-")
}

func TestSweepCheckUsesCronSecret(t *testing.T) {
	a := newTestApp(t)

	status, _ := a.do(t, http.MethodGet, "/api/reminders/check", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = a.do(t, http.MethodGet, "/api/reminders/check", bearer(t, ownerEmail), nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = a.do(t, http.MethodPost, "/api/reminders", bearer(t, ownerEmail), dto.CreateReminderRequest{
		ReminderTime: time.Now().Add(-time.Minute),
		Message:      "overdue",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, env := a.do(t, http.MethodGet, "/api/reminders/check", "Bearer "+cronSecret, nil)
	require.Equal(t, fiber.StatusOK, status)
	var res dto.SweepResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 1, res.Due)
	assert.Equal(t, 1, res.Sent)
}

func TestReminderRoutes(t *testing.T) {
	a := newTestApp(t)
	owner := bearer(t, ownerEmail)

	status, _ := a.do(t, http.MethodPost, "/api/reminders", owner, map[string]string{"message": "no time"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env := a.do(t, http.MethodPost, "/api/reminders", owner, dto.CreateReminderRequest{
		ReminderTime: time.Now().Add(2 * time.Minute),
		Message:      "stretch",
	})
	require.Equal(t, fiber.StatusCreated, status)
	var created dto.ReminderResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, _ = a.do(t, http.MethodPatch, "/api/reminders/"+created.Id.String()+"/done", owner, map[string]bool{"is_done": true})
	require.Equal(t, fiber.StatusOK, status)

	status, env = a.do(t, http.MethodGet, "/api/reminders/grouped?tz=Asia/Jakarta", owner, nil)
	require.Equal(t, fiber.StatusOK, status)
	var grouped dto.GroupedRemindersResponse
	require.NoError(t, json.Unmarshal(env.Data, &grouped))
	assert.Len(t, grouped.Completed, 1)

	status, _ = a.do(t, http.MethodGet, "/api/reminders/grouped?tz=Mars/Olympus", owner, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = a.do(t, http.MethodGet, "/api/reminders?flags=nope", owner, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = a.do(t, http.MethodPost, "/api/flags", owner, dto.CreateFlagRequest{Name: "Work", Color: "#123456"})
	assert.Equal(t, fiber.StatusCreated, status)

	status, _ = a.do(t, http.MethodPost, "/api/push-subscriptions", owner, dto.SavePushSubscriptionRequest{
		Endpoint: "https://push.test/sub",
		Keys:     dto.PushSubscriptionKeys{P256dh: "k", Auth: "a"},
	})
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = a.do(t, http.MethodGet, "/api/home?tz=UTC", owner, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestEnhanceAndCollabRoutes(t *testing.T) {
	a := newTestApp(t)
	owner := bearer(t, ownerEmail)

	status, env := a.do(t, http.MethodPost, "/api/ai/enhance", owner, dto.EnhanceTextRequest{Text: "better txt"})
	require.Equal(t, fiber.StatusOK, status)
	var enhanced dto.EnhanceTextResponse
	require.NoError(t, json.Unmarshal(env.Data, &enhanced))
	assert.Equal(t, "Better text.", enhanced.EnhancedText)

	a.provider.err = errors.New("upstream down")
	status, env = a.do(t, http.MethodPost, "/api/ai/enhance", owner, dto.EnhanceTextRequest{Text: "fresh text"})
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Failed to enhance text", env.Message)

	id := a.createRoom(t, owner)
	status, env = a.do(t, http.MethodPost, "/api/auth-endpoint", owner, map[string]string{"room": id})
	require.Equal(t, fiber.StatusOK, status)
	var collab dto.CollabAuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &collab))
	assert.NotEmpty(t, collab.Token)

	status, _ = a.do(t, http.MethodPost, "/api/auth-endpoint", bearer(t, guestEmail), map[string]string{"room": id})
	assert.Equal(t, fiber.StatusForbidden, status)
}
