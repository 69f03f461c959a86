package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"collabnote-be/internal/agenda"
	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IReminderService interface {
	Schedule(ctx context.Context, caller string, req *dto.CreateReminderRequest) (*dto.ReminderResponse, error)
	Update(ctx context.Context, caller string, req *dto.UpdateReminderRequest) (*dto.ReminderResponse, error)
	Delete(ctx context.Context, caller string, id uuid.UUID) error
	ToggleDone(ctx context.Context, caller string, id uuid.UUID, isDone bool) error
	ToggleImportant(ctx context.Context, caller string, id uuid.UUID, isImportant bool) error
	SetFlags(ctx context.Context, caller string, id uuid.UUID, flagIds []uuid.UUID) error
	List(ctx context.Context, caller, search string, flagIds []uuid.UUID) ([]dto.ReminderResponse, error)
	Grouped(ctx context.Context, caller, search string, flagIds []uuid.UUID, now time.Time) (*dto.GroupedRemindersResponse, error)

	ListFlags(ctx context.Context, caller string) ([]dto.FlagResponse, error)
	CreateFlag(ctx context.Context, caller string, req *dto.CreateFlagRequest) (*dto.FlagResponse, error)

	SavePushSubscription(ctx context.Context, caller string, req *dto.SavePushSubscriptionRequest) error
}

type reminderService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewReminderService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IReminderService {
	return &reminderService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *reminderService) fail(op string, err error) error {
	if !isClientError(err) {
		s.logger.Error("ReminderService", op+" failed", map[string]interface{}{"error": err.Error()})
	}
	return err
}

func (s *reminderService) Schedule(ctx context.Context, caller string, req *dto.CreateReminderRequest) (*dto.ReminderResponse, error) {
	if caller == "" {
		return nil, entity.ErrAuthRequired
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("message is required: %w", entity.ErrInvalidArgument)
	}

	reminder := &entity.Reminder{
		Id:           uuid.New(),
		UserId:       caller,
		Message:      req.Message,
		ReminderTime: req.ReminderTime,
		FlagIds:      []uuid.UUID{},
		NoteId:       req.NoteId,
	}
	if req.NoteId != nil {
		reminder.NoteTitle = req.NoteTitle
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ReminderRepository().Create(ctx, reminder); err != nil {
		return nil, s.fail("Schedule", err)
	}

	res := toReminderResponse(reminder)
	return &res, nil
}

// Update changes the message and time and re-arms the reminder so the sweep
// delivers it again. Flags and the note link are kept.
func (s *reminderService) Update(ctx context.Context, caller string, req *dto.UpdateReminderRequest) (*dto.ReminderResponse, error) {
	if caller == "" {
		return nil, entity.ErrAuthRequired
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	reminder, err := uow.ReminderRepository().FindOne(ctx, caller, req.Id)
	if err != nil {
		return nil, s.fail("Update", err)
	}
	if reminder == nil {
		return nil, fmt.Errorf("reminder %s: %w", req.Id, entity.ErrNotFound)
	}

	reminder.Message = req.Message
	reminder.ReminderTime = req.ReminderTime
	reminder.IsDone = false
	reminder.IsSent = false

	if err := uow.ReminderRepository().Update(ctx, reminder); err != nil {
		return nil, s.fail("Update", err)
	}

	res := toReminderResponse(reminder)
	return &res, nil
}

func (s *reminderService) Delete(ctx context.Context, caller string, id uuid.UUID) error {
	if caller == "" {
		return entity.ErrAuthRequired
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ReminderRepository().Delete(ctx, caller, id); err != nil {
		return s.fail("Delete", err)
	}
	return nil
}

func (s *reminderService) patch(ctx context.Context, op, caller string, id uuid.UUID, patch entity.ReminderPatch) error {
	if caller == "" {
		return entity.ErrAuthRequired
	}

	now := time.Now()
	patch.UpdatedAt = &now
	err := s.uowFactory.NewUnitOfWork(ctx).ReminderRepository().UpdateFields(ctx, caller, id, patch)
	if errors.Is(err, entity.ErrNotFound) {
		return fmt.Errorf("reminder %s: %w", id, entity.ErrNotFound)
	}
	if err != nil {
		return s.fail(op, err)
	}
	return nil
}

func (s *reminderService) ToggleDone(ctx context.Context, caller string, id uuid.UUID, isDone bool) error {
	return s.patch(ctx, "ToggleDone", caller, id, entity.ReminderPatch{IsDone: &isDone})
}

func (s *reminderService) ToggleImportant(ctx context.Context, caller string, id uuid.UUID, isImportant bool) error {
	return s.patch(ctx, "ToggleImportant", caller, id, entity.ReminderPatch{IsImportant: &isImportant})
}

func (s *reminderService) SetFlags(ctx context.Context, caller string, id uuid.UUID, flagIds []uuid.UUID) error {
	if caller == "" {
		return entity.ErrAuthRequired
	}

	flags, err := s.uowFactory.NewUnitOfWork(ctx).FlagRepository().FindByUser(ctx, caller)
	if err != nil {
		return s.fail("SetFlags", err)
	}
	owned := make(map[uuid.UUID]bool, len(flags))
	for _, f := range flags {
		owned[f.Id] = true
	}

	kept := make([]uuid.UUID, 0, len(flagIds))
	seen := map[uuid.UUID]bool{}
	for _, fid := range flagIds {
		if !owned[fid] {
			return fmt.Errorf("flag %s: %w", fid, entity.ErrInvalidArgument)
		}
		if !seen[fid] {
			seen[fid] = true
			kept = append(kept, fid)
		}
	}

	return s.patch(ctx, "SetFlags", caller, id, entity.ReminderPatch{FlagIds: &kept})
}

func (s *reminderService) filtered(ctx context.Context, caller, search string, flagIds []uuid.UUID) ([]*entity.Reminder, error) {
	if caller == "" {
		return nil, entity.ErrAuthRequired
	}
	reminders, err := s.uowFactory.NewUnitOfWork(ctx).ReminderRepository().FindByUser(ctx, caller)
	if err != nil {
		return nil, s.fail("List", err)
	}
	return agenda.Filter(reminders, search, flagIds), nil
}

func (s *reminderService) List(ctx context.Context, caller, search string, flagIds []uuid.UUID) ([]dto.ReminderResponse, error) {
	reminders, err := s.filtered(ctx, caller, search, flagIds)
	if err != nil {
		return nil, err
	}
	return toReminderResponses(reminders), nil
}

func (s *reminderService) Grouped(ctx context.Context, caller, search string, flagIds []uuid.UUID, now time.Time) (*dto.GroupedRemindersResponse, error) {
	reminders, err := s.filtered(ctx, caller, search, flagIds)
	if err != nil {
		return nil, err
	}

	g := agenda.Group(reminders, now)
	return &dto.GroupedRemindersResponse{
		Missed:    toReminderResponses(g.Missed),
		Today:     toReminderResponses(g.Today),
		Tomorrow:  toReminderResponses(g.Tomorrow),
		ThisWeek:  toReminderResponses(g.ThisWeek),
		Later:     toReminderResponses(g.Later),
		Completed: toReminderResponses(g.Completed),
	}, nil
}

func (s *reminderService) ListFlags(ctx context.Context, caller string) ([]dto.FlagResponse, error) {
	if caller == "" {
		return nil, entity.ErrAuthRequired
	}
	flags, err := s.uowFactory.NewUnitOfWork(ctx).FlagRepository().FindByUser(ctx, caller)
	if err != nil {
		return nil, s.fail("ListFlags", err)
	}

	res := make([]dto.FlagResponse, 0, len(flags))
	for _, f := range flags {
		res = append(res, toFlagResponse(f))
	}
	return res, nil
}

func (s *reminderService) CreateFlag(ctx context.Context, caller string, req *dto.CreateFlagRequest) (*dto.FlagResponse, error) {
	if caller == "" {
		return nil, entity.ErrAuthRequired
	}

	flag := &entity.Flag{
		Id:        uuid.New(),
		UserId:    caller,
		Name:      strings.TrimSpace(req.Name),
		Color:     req.Color,
		CreatedAt: time.Now(),
	}
	if flag.Name == "" {
		return nil, fmt.Errorf("flag name is required: %w", entity.ErrInvalidArgument)
	}

	if err := s.uowFactory.NewUnitOfWork(ctx).FlagRepository().Create(ctx, flag); err != nil {
		return nil, s.fail("CreateFlag", err)
	}

	res := toFlagResponse(flag)
	return &res, nil
}

func (s *reminderService) SavePushSubscription(ctx context.Context, caller string, req *dto.SavePushSubscriptionRequest) error {
	if caller == "" {
		return entity.ErrAuthRequired
	}

	sub := &entity.PushSubscription{
		Id:        uuid.New(),
		UserId:    caller,
		Endpoint:  req.Endpoint,
		P256dh:    req.Keys.P256dh,
		Auth:      req.Keys.Auth,
		CreatedAt: time.Now(),
	}
	if err := s.uowFactory.NewUnitOfWork(ctx).PushSubscriptionRepository().Save(ctx, sub); err != nil {
		return s.fail("SavePushSubscription", err)
	}

	s.logger.Info("ReminderService", "Push subscription saved", map[string]interface{}{
		"user_id": caller,
	})
	return nil
}
