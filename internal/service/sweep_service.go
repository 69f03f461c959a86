package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/repository/unitofwork"
	"collabnote-be/pkg/events"
	"collabnote-be/pkg/webpush"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// PushSender delivers one payload to one browser endpoint.
type PushSender interface {
	Send(ctx context.Context, sub webpush.Subscription, payload []byte) error
}

type ISweepService interface {
	Run(ctx context.Context, now time.Time) (*dto.SweepResponse, error)
}

type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

type sweepService struct {
	uowFactory     unitofwork.RepositoryFactory
	sender         PushSender
	eventPublisher events.Publisher
	logger         logger.ILogger
	appURL         string
}

func NewSweepService(
	uowFactory unitofwork.RepositoryFactory,
	sender PushSender,
	eventPublisher events.Publisher,
	log logger.ILogger,
	appURL string,
) ISweepService {
	return &sweepService{
		uowFactory:     uowFactory,
		sender:         sender,
		eventPublisher: eventPublisher,
		logger:         log,
		appURL:         appURL,
	}
}

func (s *sweepService) payloadFor(r *entity.Reminder) pushPayload {
	p := pushPayload{
		Title: "You have a reminder!",
		Body:  r.Message,
		URL:   s.appURL + "/reminders",
	}
	if r.NoteTitle != "" {
		p.Title = "Reminder: " + r.NoteTitle
	}
	if r.NoteId != nil {
		p.URL = fmt.Sprintf("%s/notes/%s", s.appURL, *r.NoteId)
	}
	return p
}

// Run delivers every due, unsent reminder to all of its owner's endpoints.
// Failed endpoints are logged and never fail the sweep; the reminders are
// marked sent together at the end.
func (s *sweepService) Run(ctx context.Context, now time.Time) (*dto.SweepResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	due, err := uow.ReminderRepository().FindDue(ctx, now)
	if err != nil {
		s.logger.Error("SweepService", "Failed to query due reminders", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("query due reminders: %w", err)
	}

	res := &dto.SweepResponse{Due: len(due)}
	processed := make([]*entity.Reminder, 0, len(due))

	for _, r := range due {
		subs, err := uow.PushSubscriptionRepository().FindByUser(ctx, r.UserId)
		if err != nil {
			s.logger.Error("SweepService", "Failed to load push subscriptions", map[string]interface{}{
				"reminder_id": r.Id,
				"user_id":     r.UserId,
				"error":       err.Error(),
			})
			continue
		}

		payload, err := json.Marshal(s.payloadFor(r))
		if err != nil {
			return nil, err
		}

		s.dispatch(ctx, r, subs, payload, res)
		processed = append(processed, r)
	}

	if len(processed) > 0 {
		ids := make([]uuid.UUID, 0, len(processed))
		for _, r := range processed {
			ids = append(ids, r.Id)
		}

		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		defer uow.Rollback()

		if err := uow.ReminderRepository().MarkSent(ctx, ids); err != nil {
			return nil, s.markFailed(err, len(ids))
		}
		if err := uow.Commit(); err != nil {
			return nil, s.markFailed(err, len(ids))
		}
		res.Sent = len(ids)
	}

	for _, r := range processed {
		s.publishDue(ctx, r)
	}

	s.logger.Info("SweepService", "Sweep finished", map[string]interface{}{
		"due":        res.Due,
		"sent":       res.Sent,
		"deliveries": res.Deliveries,
		"failures":   res.Failures,
		"pruned":     res.Pruned,
	})
	return res, nil
}

func (s *sweepService) markFailed(err error, count int) error {
	s.logger.Error("SweepService", "Failed to mark reminders sent", map[string]interface{}{
		"count": count,
		"error": err.Error(),
	})
	return fmt.Errorf("mark reminders sent: %w", err)
}

// dispatch sends payload to every endpoint concurrently. Gone endpoints are
// removed from the user's subscriptions.
func (s *sweepService) dispatch(ctx context.Context, r *entity.Reminder, subs []*entity.PushSubscription, payload []byte, res *dto.SweepResponse) {
	var (
		mu   sync.Mutex
		gone []string
		g    errgroup.Group
	)

	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			err := s.sender.Send(ctx, webpush.Subscription{
				Endpoint: sub.Endpoint,
				P256dh:   sub.P256dh,
				Auth:     sub.Auth,
			}, payload)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				res.Deliveries++
				return nil
			}
			res.Failures++
			s.logger.Warn("SweepService", "Push delivery failed", map[string]interface{}{
				"reminder_id": r.Id,
				"endpoint":    sub.Endpoint,
				"error":       err.Error(),
			})
			if webpush.IsGone(err) {
				gone = append(gone, sub.Endpoint)
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, endpoint := range gone {
		err := s.uowFactory.NewUnitOfWork(ctx).PushSubscriptionRepository().DeleteByEndpoint(ctx, r.UserId, endpoint)
		if err != nil {
			s.logger.Warn("SweepService", "Failed to prune push subscription", map[string]interface{}{
				"user_id": r.UserId,
				"error":   err.Error(),
			})
			continue
		}
		res.Pruned++
	}
}

func (s *sweepService) publishDue(ctx context.Context, r *entity.Reminder) {
	if s.eventPublisher == nil {
		return
	}
	data := map[string]interface{}{
		"user_id":     r.UserId,
		"message":     r.Message,
		"entity_type": "reminder",
		"entity_id":   r.Id.String(),
	}
	if r.NoteId != nil {
		data["note_id"] = r.NoteId.String()
		data["note_title"] = r.NoteTitle
	}
	if err := s.eventPublisher.Publish(ctx, events.NewEvent(events.TypeReminderDue, data)); err != nil {
		s.logger.Warn("SweepService", "Failed to publish reminder event", map[string]interface{}{
			"reminder_id": r.Id,
			"error":       err.Error(),
		})
	}
}
