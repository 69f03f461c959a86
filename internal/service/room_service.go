package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/hierarchy"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/pkg/mailer"
	"collabnote-be/internal/repository/contract"
	"collabnote-be/internal/repository/unitofwork"
	"collabnote-be/pkg/events"
	"collabnote-be/pkg/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const coverSubdir = "covers"

type IRoomService interface {
	Create(ctx context.Context, caller string, req *dto.CreateRoomRequest) (*dto.CreateRoomResponse, error)
	Show(ctx context.Context, caller string, roomId uuid.UUID) (*dto.ShowRoomResponse, error)
	Users(ctx context.Context, caller string, roomId uuid.UUID) ([]dto.RoomUserResponse, error)
	Invite(ctx context.Context, caller string, roomId uuid.UUID, inviteeEmail, ownerEmail string) error
	RemoveUser(ctx context.Context, caller string, roomId uuid.UUID, userEmail string) error
	Archive(ctx context.Context, caller string, roomId uuid.UUID) error
	Restore(ctx context.Context, caller string, roomId uuid.UUID) error
	PermanentDelete(ctx context.Context, caller string, roomId uuid.UUID) error
	RenameTitle(ctx context.Context, caller string, roomId uuid.UUID, title string) error
	SetIcon(ctx context.Context, caller string, roomId uuid.UUID, icon string) error
	RemoveIcon(ctx context.Context, caller string, roomId uuid.UUID) error
	SetCover(ctx context.Context, caller string, roomId uuid.UUID, url string) error
	RemoveCover(ctx context.Context, caller string, roomId uuid.UUID) error
	UploadCover(ctx context.Context, caller string, roomId uuid.UUID, filename, contentType string, data []byte) (*dto.SetCoverResponse, error)
	ToggleQuickAccess(ctx context.Context, caller string, roomId uuid.UUID, value bool) error
	AuthorizeCollaboration(ctx context.Context, caller string, roomId uuid.UUID) (*dto.CollabAuthResponse, error)
}

type RoomServiceConfig struct {
	MaxDepth       int
	ClientURL      string
	CollabSecret   string
	CollabTokenTTL time.Duration
}

type roomService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   events.Publisher
	emailService     mailer.IEmailService
	objectStorage    storage.ObjectStorage
	logger           logger.ILogger
	cfg              RoomServiceConfig
	now              func() time.Time
}

func NewRoomService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	emailService mailer.IEmailService,
	objectStorage storage.ObjectStorage,
	log logger.ILogger,
	cfg RoomServiceConfig,
) IRoomService {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 64
	}
	if cfg.CollabTokenTTL <= 0 {
		cfg.CollabTokenTTL = 10 * time.Minute
	}
	return &roomService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		emailService:     emailService,
		objectStorage:    objectStorage,
		logger:           log,
		cfg:              cfg,
		now:              time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// requireHolder loads the caller's record for roomId. A missing record is
// reported as not found so non-holders learn nothing about the note.
func requireHolder(ctx context.Context, rooms contract.RoomRepository, caller string, roomId uuid.UUID) (*entity.Room, error) {
	room, err := rooms.FindOne(ctx, caller, roomId)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("room %s: %w", roomId, entity.ErrNotFound)
	}
	return room, nil
}

// isClientError reports failures caused by the request rather than the store.
func isClientError(err error) bool {
	return errors.Is(err, entity.ErrNotFound) ||
		errors.Is(err, entity.ErrForbidden) ||
		errors.Is(err, entity.ErrInvalidArgument) ||
		errors.Is(err, entity.ErrAuthRequired)
}

func (s *roomService) storeError(op string, err error, details map[string]interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	details["error"] = err.Error()
	switch {
	case errors.Is(err, entity.ErrHierarchyCycle), errors.Is(err, entity.ErrHierarchyTooDeep):
		s.logger.Error("RoomService", op+" aborted: hierarchy integrity", details)
	case isClientError(err):
	default:
		s.logger.Error("RoomService", op+" failed", details)
	}
	return err
}

// notifyRoomChanged is best-effort; listings are the source of truth.
func (s *roomService) notifyRoomChanged(ctx context.Context, roomId uuid.UUID, kind string, userIds []string) {
	if s.publisherService == nil || len(userIds) == 0 {
		return
	}
	err := s.publisherService.PublishRoomChanged(ctx, dto.PublishRoomChangedMessage{
		RoomId:  roomId,
		Kind:    kind,
		UserIds: userIds,
	})
	if err != nil {
		s.logger.Warn("RoomService", "Failed to publish room change", map[string]interface{}{
			"room_id": roomId,
			"error":   err.Error(),
		})
	}
}

func (s *roomService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Warn("RoomService", "Failed to publish domain event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func holderIds(rooms []*entity.Room) []string {
	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.UserId)
	}
	return ids
}

func (s *roomService) Create(ctx context.Context, caller string, req *dto.CreateRoomRequest) (*dto.CreateRoomResponse, error) {
	if caller == "" {
		return nil, entity.ErrAuthRequired
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.ParentNoteId != nil {
		if _, err := requireHolder(ctx, uow.RoomRepository(), caller, *req.ParentNoteId); err != nil {
			return nil, s.storeError("Create", err, map[string]interface{}{"parent_note_id": *req.ParentNoteId})
		}
	}

	now := s.now()
	note := entity.Note{
		Id:           uuid.New(),
		Title:        entity.DefaultNoteTitle,
		ParentNoteId: req.ParentNoteId,
		OwnerId:      caller,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	room := entity.Room{
		UserId:       caller,
		RoomId:       note.Id,
		Role:         entity.RoomRoleOwner,
		Title:        note.Title,
		ParentNoteId: req.ParentNoteId,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, s.storeError("Create", err, nil)
	}
	if err := uow.RoomRepository().Save(ctx, &room); err != nil {
		return nil, s.storeError("Create", err, nil)
	}
	if err := uow.Commit(); err != nil {
		return nil, s.storeError("Create", err, nil)
	}

	s.notifyRoomChanged(ctx, note.Id, dto.RoomChangeCreated, []string{caller})

	return &dto.CreateRoomResponse{Id: note.Id}, nil
}

func (s *roomService) Show(ctx context.Context, caller string, roomId uuid.UUID) (*dto.ShowRoomResponse, error) {
	if caller == "" {
		return nil, entity.ErrAuthRequired
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	room, err := requireHolder(ctx, uow.RoomRepository(), caller, roomId)
	if err != nil {
		return nil, s.storeError("Show", err, nil)
	}

	records, err := uow.RoomRepository().FindByUser(ctx, caller)
	if err != nil {
		return nil, s.storeError("Show", err, nil)
	}
	breadcrumb := make([]dto.BreadcrumbItem, 0)
	for _, a := range hierarchy.Ancestors(records, roomId) {
		breadcrumb = append(breadcrumb, dto.BreadcrumbItem{Id: a.RoomId, Title: a.Title})
	}

	users, err := s.Users(ctx, caller, roomId)
	if err != nil {
		return nil, err
	}

	return &dto.ShowRoomResponse{
		Room:       toRoomResponse(room),
		Breadcrumb: breadcrumb,
		Users:      users,
	}, nil
}

// Users lists every holder of the note, owner first.
func (s *roomService) Users(ctx context.Context, caller string, roomId uuid.UUID) ([]dto.RoomUserResponse, error) {
	if caller == "" {
		return nil, entity.ErrAuthRequired
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireHolder(ctx, uow.RoomRepository(), caller, roomId); err != nil {
		return nil, s.storeError("Users", err, nil)
	}

	holders, err := uow.RoomRepository().FindByRoomID(ctx, roomId)
	if err != nil {
		return nil, s.storeError("Users", err, nil)
	}
	sort.SliceStable(holders, func(i, j int) bool {
		return holders[i].IsOwner() && !holders[j].IsOwner()
	})

	users := make([]dto.RoomUserResponse, 0, len(holders))
	for _, h := range holders {
		users = append(users, dto.RoomUserResponse{UserId: h.UserId, Role: string(h.Role)})
	}
	return users, nil
}

func (s *roomService) Invite(ctx context.Context, caller string, roomId uuid.UUID, inviteeEmail, ownerEmail string) error {
	if caller == "" {
		return entity.ErrAuthRequired
	}
	invitee := normalizeEmail(inviteeEmail)
	owner := normalizeEmail(ownerEmail)
	if owner != caller {
		return fmt.Errorf("only the owner can invite: %w", entity.ErrForbidden)
	}
	if invitee == "" || invitee == owner {
		return fmt.Errorf("invitee must be another user: %w", entity.ErrInvalidArgument)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	ownerRoom, err := uow.RoomRepository().FindOne(ctx, owner, roomId)
	if err != nil {
		return s.storeError("Invite", err, nil)
	}
	if ownerRoom == nil || !ownerRoom.IsOwner() {
		return fmt.Errorf("owner record for room %s: %w", roomId, entity.ErrNotFound)
	}

	invited := *ownerRoom
	invited.UserId = invitee
	invited.Role = entity.RoomRoleEditor
	invited.QuickAccess = false
	invited.CreatedAt = s.now()

	if err := uow.RoomRepository().Save(ctx, &invited); err != nil {
		return s.storeError("Invite", err, map[string]interface{}{"room_id": roomId})
	}

	s.logger.Info("RoomService", "User invited", map[string]interface{}{
		"room_id": roomId,
		"invitee": invitee,
	})

	noteURL := fmt.Sprintf("%s/notes/%s", s.cfg.ClientURL, roomId)
	if s.emailService != nil {
		// Invitation mail is a courtesy; the grant already stands.
		_ = s.emailService.SendInvitation(invitee, owner, ownerRoom.Title, noteURL)
	}
	s.publishEvent(ctx, events.TypeNoteShared, map[string]interface{}{
		"user_id":     invitee,
		"actor_id":    owner,
		"note_title":  ownerRoom.Title,
		"entity_type": "note",
		"entity_id":   roomId.String(),
	})
	s.notifyRoomChanged(ctx, roomId, dto.RoomChangeShared, []string{invitee})

	return nil
}

func (s *roomService) RemoveUser(ctx context.Context, caller string, roomId uuid.UUID, userEmail string) error {
	if caller == "" {
		return entity.ErrAuthRequired
	}
	target := normalizeEmail(userEmail)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	callerRoom, err := requireHolder(ctx, uow.RoomRepository(), caller, roomId)
	if err != nil {
		return s.storeError("RemoveUser", err, nil)
	}
	if target != caller && !callerRoom.IsOwner() {
		return fmt.Errorf("only the owner can remove other users: %w", entity.ErrForbidden)
	}

	targetRoom, err := uow.RoomRepository().FindOne(ctx, target, roomId)
	if err != nil {
		return s.storeError("RemoveUser", err, nil)
	}
	if targetRoom == nil {
		return fmt.Errorf("user %s in room %s: %w", target, roomId, entity.ErrNotFound)
	}
	if targetRoom.IsOwner() {
		return fmt.Errorf("the owner cannot be removed, delete the note instead: %w", entity.ErrForbidden)
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.RoomRepository().DetachChildren(ctx, target, roomId); err != nil {
		return s.storeError("RemoveUser", err, nil)
	}
	if err := uow.RoomRepository().Delete(ctx, target, roomId); err != nil {
		return s.storeError("RemoveUser", err, nil)
	}
	if err := uow.Commit(); err != nil {
		return s.storeError("RemoveUser", err, map[string]interface{}{"room_id": roomId, "user": target})
	}

	if target != caller {
		s.publishEvent(ctx, events.TypeNoteAccessRevoked, map[string]interface{}{
			"user_id":     target,
			"actor_id":    caller,
			"note_title":  targetRoom.Title,
			"entity_type": "note",
			"entity_id":   roomId.String(),
		})
	}
	s.notifyRoomChanged(ctx, roomId, dto.RoomChangeRemoved, []string{target})

	return nil
}

// collectSubtree walks the cross-user parent index from root and returns
// root plus every transitive descendant, each once. It fails on a cycle or
// when the tree is deeper than the configured limit, before anything is
// written. users receives every holder seen on the way.
func (s *roomService) collectSubtree(ctx context.Context, rooms contract.RoomRepository, root uuid.UUID) ([]uuid.UUID, []string, error) {
	visited := map[uuid.UUID]bool{}
	onPath := map[uuid.UUID]bool{}
	order := make([]uuid.UUID, 0)
	users := map[string]struct{}{}

	var visit func(id uuid.UUID, depth int) error
	visit = func(id uuid.UUID, depth int) error {
		if depth > s.cfg.MaxDepth {
			return fmt.Errorf("below %s: %w", root, entity.ErrHierarchyTooDeep)
		}
		visited[id] = true
		onPath[id] = true
		order = append(order, id)

		children, err := rooms.FindByParentNoteID(ctx, id)
		if err != nil {
			return err
		}

		childIds := make([]uuid.UUID, 0, len(children))
		seen := map[uuid.UUID]bool{}
		for _, c := range children {
			users[c.UserId] = struct{}{}
			if !seen[c.RoomId] {
				seen[c.RoomId] = true
				childIds = append(childIds, c.RoomId)
			}
		}

		for _, child := range childIds {
			if onPath[child] {
				return fmt.Errorf("note %s is its own ancestor: %w", child, entity.ErrHierarchyCycle)
			}
			if visited[child] {
				continue
			}
			if err := visit(child, depth+1); err != nil {
				return err
			}
		}
		onPath[id] = false
		return nil
	}

	if err := visit(root, 0); err != nil {
		return nil, nil, err
	}

	userIds := make([]string, 0, len(users))
	for u := range users {
		userIds = append(userIds, u)
	}
	return order, userIds, nil
}

func (s *roomService) setArchived(ctx context.Context, caller string, roomId uuid.UUID, archived bool) error {
	if caller == "" {
		return entity.ErrAuthRequired
	}
	op, kind := "Archive", dto.RoomChangeArchived
	if !archived {
		op, kind = "Restore", dto.RoomChangeRestored
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireHolder(ctx, uow.RoomRepository(), caller, roomId); err != nil {
		return s.storeError(op, err, nil)
	}

	ids, users, err := s.collectSubtree(ctx, uow.RoomRepository(), roomId)
	if err != nil {
		return s.storeError(op, err, map[string]interface{}{"room_id": roomId})
	}
	holders, err := uow.RoomRepository().FindByRoomID(ctx, roomId)
	if err != nil {
		return s.storeError(op, err, nil)
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.RoomRepository().UpdateByRoomIDs(ctx, ids, entity.RoomPatch{Archived: &archived}); err != nil {
		return s.storeError(op, err, map[string]interface{}{"room_id": roomId})
	}
	if err := uow.Commit(); err != nil {
		return s.storeError(op, err, map[string]interface{}{"room_id": roomId, "notes": len(ids)})
	}

	s.logger.Info("RoomService", op+" cascaded", map[string]interface{}{
		"room_id": roomId,
		"notes":   len(ids),
	})
	s.notifyRoomChanged(ctx, roomId, kind, append(holderIds(holders), users...))
	return nil
}

func (s *roomService) Archive(ctx context.Context, caller string, roomId uuid.UUID) error {
	return s.setArchived(ctx, caller, roomId, true)
}

func (s *roomService) Restore(ctx context.Context, caller string, roomId uuid.UUID) error {
	return s.setArchived(ctx, caller, roomId, false)
}

func (s *roomService) PermanentDelete(ctx context.Context, caller string, roomId uuid.UUID) error {
	if caller == "" {
		return entity.ErrAuthRequired
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindByID(ctx, roomId)
	if err != nil {
		return s.storeError("PermanentDelete", err, nil)
	}
	if note == nil {
		return fmt.Errorf("note %s: %w", roomId, entity.ErrNotFound)
	}

	callerRoom, err := requireHolder(ctx, uow.RoomRepository(), caller, roomId)
	if err != nil {
		return s.storeError("PermanentDelete", err, nil)
	}
	if !callerRoom.IsOwner() {
		return fmt.Errorf("only the owner can delete a note: %w", entity.ErrForbidden)
	}

	holders, err := uow.RoomRepository().FindByRoomID(ctx, roomId)
	if err != nil {
		return s.storeError("PermanentDelete", err, nil)
	}
	children, err := uow.RoomRepository().FindByParentNoteID(ctx, roomId)
	if err != nil {
		return s.storeError("PermanentDelete", err, nil)
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.RoomRepository().ReparentChildren(ctx, roomId, note.ParentNoteId); err != nil {
		return s.storeError("PermanentDelete", err, nil)
	}
	if err := uow.NoteRepository().ReparentChildren(ctx, roomId, note.ParentNoteId); err != nil {
		return s.storeError("PermanentDelete", err, nil)
	}
	if err := uow.RoomRepository().DeleteByRoomID(ctx, roomId); err != nil {
		return s.storeError("PermanentDelete", err, nil)
	}
	if err := uow.NoteRepository().Delete(ctx, roomId); err != nil {
		return s.storeError("PermanentDelete", err, nil)
	}
	if err := uow.Commit(); err != nil {
		return s.storeError("PermanentDelete", err, map[string]interface{}{"room_id": roomId})
	}

	s.deleteStoredCover(ctx, callerRoom.CoverImage)
	s.logger.Info("RoomService", "Note deleted", map[string]interface{}{
		"room_id":  roomId,
		"holders":  len(holders),
		"children": len(children),
	})
	s.notifyRoomChanged(ctx, roomId, dto.RoomChangeDeleted, append(holderIds(holders), holderIds(children)...))
	return nil
}

// fanOut writes one patch to every holder's record of roomId.
func (s *roomService) fanOut(ctx context.Context, op, caller string, roomId uuid.UUID, patch entity.RoomPatch) (*entity.Room, error) {
	if caller == "" {
		return nil, entity.ErrAuthRequired
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	room, err := requireHolder(ctx, uow.RoomRepository(), caller, roomId)
	if err != nil {
		return nil, s.storeError(op, err, nil)
	}
	holders, err := uow.RoomRepository().FindByRoomID(ctx, roomId)
	if err != nil {
		return nil, s.storeError(op, err, nil)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.RoomRepository().UpdateByRoomIDs(ctx, []uuid.UUID{roomId}, patch); err != nil {
		return nil, s.storeError(op, err, nil)
	}
	if err := uow.Commit(); err != nil {
		return nil, s.storeError(op, err, map[string]interface{}{"room_id": roomId})
	}

	s.notifyRoomChanged(ctx, roomId, dto.RoomChangeUpdated, holderIds(holders))
	return room, nil
}

func (s *roomService) RenameTitle(ctx context.Context, caller string, roomId uuid.UUID, title string) error {
	if caller == "" {
		return entity.ErrAuthRequired
	}
	if utf8.RuneCountInString(title) > entity.MaxTitleLength {
		return fmt.Errorf("title longer than %d characters: %w", entity.MaxTitleLength, entity.ErrInvalidArgument)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireHolder(ctx, uow.RoomRepository(), caller, roomId); err != nil {
		return s.storeError("RenameTitle", err, nil)
	}

	// Phase 1 updates the canonical note on its own; readers of the room
	// records may see the old title until phase 2 lands.
	now := s.now()
	if err := uow.NoteRepository().UpdateTitle(ctx, roomId, title, now); err != nil {
		return s.storeError("RenameTitle", err, map[string]interface{}{"room_id": roomId})
	}

	_, err := s.fanOut(ctx, "RenameTitle", caller, roomId, entity.RoomPatch{Title: &title, UpdatedAt: &now})
	return err
}

func (s *roomService) SetIcon(ctx context.Context, caller string, roomId uuid.UUID, icon string) error {
	now := s.now()
	_, err := s.fanOut(ctx, "SetIcon", caller, roomId, entity.RoomPatch{Icon: &icon, UpdatedAt: &now})
	return err
}

func (s *roomService) RemoveIcon(ctx context.Context, caller string, roomId uuid.UUID) error {
	return s.SetIcon(ctx, caller, roomId, "")
}

func (s *roomService) SetCover(ctx context.Context, caller string, roomId uuid.UUID, url string) error {
	now := s.now()
	_, err := s.fanOut(ctx, "SetCover", caller, roomId, entity.RoomPatch{CoverImage: &url, UpdatedAt: &now})
	return err
}

func (s *roomService) RemoveCover(ctx context.Context, caller string, roomId uuid.UUID) error {
	empty := ""
	now := s.now()
	previous, err := s.fanOut(ctx, "RemoveCover", caller, roomId, entity.RoomPatch{CoverImage: &empty, UpdatedAt: &now})
	if err != nil {
		return err
	}
	s.deleteStoredCover(ctx, previous.CoverImage)
	return nil
}

func (s *roomService) deleteStoredCover(ctx context.Context, url string) {
	if url == "" || s.objectStorage == nil || !s.objectStorage.Owns(url) {
		return
	}
	if err := s.objectStorage.Delete(ctx, url); err != nil {
		s.logger.Warn("RoomService", "Failed to delete stored cover", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}
}

var coverTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (s *roomService) UploadCover(ctx context.Context, caller string, roomId uuid.UUID, filename, contentType string, data []byte) (*dto.SetCoverResponse, error) {
	if caller == "" {
		return nil, entity.ErrAuthRequired
	}
	ext, ok := coverTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported cover type %q: %w", contentType, entity.ErrInvalidArgument)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty cover upload: %w", entity.ErrInvalidArgument)
	}
	if s.objectStorage == nil {
		return nil, errors.New("object storage is not configured")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	previous, err := requireHolder(ctx, uow.RoomRepository(), caller, roomId)
	if err != nil {
		return nil, s.storeError("UploadCover", err, nil)
	}

	url, err := s.objectStorage.Put(ctx, coverSubdir, roomId.String()+"-"+uuid.NewString()+ext, contentType, data)
	if err != nil {
		return nil, s.storeError("UploadCover", err, map[string]interface{}{"room_id": roomId, "filename": filename})
	}

	if err := s.SetCover(ctx, caller, roomId, url); err != nil {
		s.deleteStoredCover(ctx, url)
		return nil, err
	}
	s.deleteStoredCover(ctx, previous.CoverImage)

	return &dto.SetCoverResponse{CoverImage: url}, nil
}

func (s *roomService) ToggleQuickAccess(ctx context.Context, caller string, roomId uuid.UUID, value bool) error {
	if caller == "" {
		return entity.ErrAuthRequired
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.RoomRepository().UpdateOne(ctx, caller, roomId, entity.RoomPatch{QuickAccess: &value}); err != nil {
		return s.storeError("ToggleQuickAccess", err, map[string]interface{}{"room_id": roomId})
	}

	s.notifyRoomChanged(ctx, roomId, dto.RoomChangeUpdated, []string{caller})
	return nil
}

type collabClaims struct {
	Room       string `json:"room"`
	Permission string `json:"perm"`
	jwt.RegisteredClaims
}

// AuthorizeCollaboration issues a short-lived token the real-time
// collaboration provider accepts for one room.
func (s *roomService) AuthorizeCollaboration(ctx context.Context, caller string, roomId uuid.UUID) (*dto.CollabAuthResponse, error) {
	if caller == "" {
		return nil, entity.ErrAuthRequired
	}
	if s.cfg.CollabSecret == "" {
		return nil, errors.New("collaboration secret is not configured")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	room, err := uow.RoomRepository().FindOne(ctx, caller, roomId)
	if err != nil {
		return nil, s.storeError("AuthorizeCollaboration", err, nil)
	}
	if room == nil {
		return nil, fmt.Errorf("you are not authorized in this room: %w", entity.ErrForbidden)
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.CollabTokenTTL)
	claims := collabClaims{
		Room:       roomId.String(),
		Permission: "room:write",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.CollabSecret))
	if err != nil {
		return nil, err
	}

	return &dto.CollabAuthResponse{Token: token, ExpiresAt: expiresAt}, nil
}
