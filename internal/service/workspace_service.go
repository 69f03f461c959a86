package service

import (
	"context"
	"fmt"
	"time"

	"collabnote-be/internal/agenda"
	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/hierarchy"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/repository/unitofwork"
)

const homeRecentLimit = 6

// IWorkspaceService serves the read-only projections of a user's notes.
type IWorkspaceService interface {
	Tree(ctx context.Context, caller, view, sortKey, query string) (*dto.RoomTreeResponse, error)
	Grouped(ctx context.Context, caller, sortKey, query string) (*dto.GroupedRoomsResponse, error)
	Sidebar(ctx context.Context, caller string) (*dto.SidebarResponse, error)
	Home(ctx context.Context, caller string, all bool, now time.Time) (*dto.HomeResponse, error)
}

type workspaceService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewWorkspaceService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IWorkspaceService {
	return &workspaceService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *workspaceService) records(ctx context.Context, caller string) ([]*entity.Room, error) {
	if caller == "" {
		return nil, entity.ErrAuthRequired
	}
	records, err := s.uowFactory.NewUnitOfWork(ctx).RoomRepository().FindByUser(ctx, caller)
	if err != nil {
		s.logger.Error("WorkspaceService", "Failed to load rooms", map[string]interface{}{
			"user_id": caller,
			"error":   err.Error(),
		})
		return nil, err
	}
	return records, nil
}

func parseSort(sortKey string) (hierarchy.SortKey, error) {
	key, ok := hierarchy.ParseSortKey(sortKey)
	if !ok {
		return "", fmt.Errorf("unknown sort %q: %w", sortKey, entity.ErrInvalidArgument)
	}
	return key, nil
}

func (s *workspaceService) Tree(ctx context.Context, caller, view, sortKey, query string) (*dto.RoomTreeResponse, error) {
	v, ok := hierarchy.ParseView(view)
	if !ok {
		return nil, fmt.Errorf("unknown view %q: %w", view, entity.ErrInvalidArgument)
	}
	key, err := parseSort(sortKey)
	if err != nil {
		return nil, err
	}

	records, err := s.records(ctx, caller)
	if err != nil {
		return nil, err
	}

	nodes := hierarchy.BuildForest(records, v)
	nodes = hierarchy.FilterForest(nodes, query)
	nodes = hierarchy.SortForest(nodes, key)

	return &dto.RoomTreeResponse{
		View:  string(v),
		Sort:  string(key),
		Count: hierarchy.Count(nodes),
		Nodes: toNodeResponses(nodes),
	}, nil
}

func (s *workspaceService) Grouped(ctx context.Context, caller, sortKey, query string) (*dto.GroupedRoomsResponse, error) {
	key, err := parseSort(sortKey)
	if err != nil {
		return nil, err
	}

	records, err := s.records(ctx, caller)
	if err != nil {
		return nil, err
	}

	active := hierarchy.FilterRecords(hierarchy.Active(records), query)
	groups := hierarchy.GroupByRole(hierarchy.SortRecords(active, key))

	return &dto.GroupedRoomsResponse{
		Owner:  toRoomResponses(groups.Owner),
		Editor: toRoomResponses(groups.Editor),
	}, nil
}

func (s *workspaceService) Sidebar(ctx context.Context, caller string) (*dto.SidebarResponse, error) {
	records, err := s.records(ctx, caller)
	if err != nil {
		return nil, err
	}

	groups := hierarchy.GroupByRole(records)
	owner := hierarchy.SortForest(hierarchy.BuildForest(groups.Owner, hierarchy.ViewActive), hierarchy.SortTitle)
	editor := hierarchy.SortForest(hierarchy.BuildForest(groups.Editor, hierarchy.ViewActive), hierarchy.SortTitle)

	return &dto.SidebarResponse{
		QuickAccess: toRoomResponses(hierarchy.SortRecords(hierarchy.QuickAccess(records), hierarchy.SortTitle)),
		Owner:       toNodeResponses(owner),
		Editor:      toNodeResponses(editor),
	}, nil
}

// Home summarizes pinned and recently edited notes together with the
// reminder overview. now carries the caller's location for the day math.
func (s *workspaceService) Home(ctx context.Context, caller string, all bool, now time.Time) (*dto.HomeResponse, error) {
	records, err := s.records(ctx, caller)
	if err != nil {
		return nil, err
	}

	reminders, err := s.uowFactory.NewUnitOfWork(ctx).ReminderRepository().FindByUser(ctx, caller)
	if err != nil {
		s.logger.Error("WorkspaceService", "Failed to load reminders", map[string]interface{}{
			"user_id": caller,
			"error":   err.Error(),
		})
		return nil, err
	}

	limit := homeRecentLimit
	if all {
		limit = 0
	}
	summary := agenda.Summarize(reminders, now)

	return &dto.HomeResponse{
		Pinned:               toRoomResponses(hierarchy.SortRecords(hierarchy.QuickAccess(records), hierarchy.SortUpdatedAt)),
		Recent:               toRoomResponses(hierarchy.Recent(records, limit)),
		MissedRemindersCount: summary.MissedCount,
		UpcomingReminders:    toReminderResponses(summary.Upcoming),
	}, nil
}
