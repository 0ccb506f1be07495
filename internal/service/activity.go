package service

import (
	"context"

	"boskoback/internal/dto"
	"boskoback/internal/model"
	"boskoback/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EmailEnqueuer pushes email jobs to the async queue. Satisfied by
// worker.Dispatcher; stubbed in unit tests.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload interface{}) error
}

// ActivityRecorder writes the append-only side-effect records. All writes are
// best-effort: a failed insert is logged and the request continues.
type ActivityRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action, detail string)
	Notify(ctx context.Context, userID uuid.UUID, title, body string)
}

type ActivityService interface {
	ActivityRecorder
	ListLogs(ctx context.Context, limit int) ([]dto.ActivityLogResponse, error)
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}

type activityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) Record(ctx context.Context, userID *uuid.UUID, action, detail string) {
	err := s.repo.CreateLog(ctx, &model.ActivityLog{UserID: userID, Action: action, Detail: detail})
	if err != nil {
		log.Warn().Err(err).Str("action", action).Msg("activity log write failed")
	}
}

func (s *activityService) Notify(ctx context.Context, userID uuid.UUID, title, body string) {
	err := s.repo.CreateNotification(ctx, &model.Notification{UserID: userID, Title: title, Body: body})
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("notification write failed")
	}
}

func (s *activityService) ListLogs(ctx context.Context, limit int) ([]dto.ActivityLogResponse, error) {
	logs, err := s.repo.ListLogs(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		var uid *string
		if l.UserID != nil {
			v := l.UserID.String()
			uid = &v
		}
		resp = append(resp, dto.ActivityLogResponse{
			ID:        l.ID.String(),
			UserID:    uid,
			Action:    l.Action,
			Detail:    l.Detail,
			CreatedAt: l.CreatedAt.Format(timeFormat),
		})
	}
	return resp, nil
}

func (s *activityService) ListNotifications(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error) {
	ns, err := s.repo.ListNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.NotificationResponse, 0, len(ns))
	for _, n := range ns {
		resp = append(resp, dto.NotificationResponse{
			ID:        n.ID.String(),
			Title:     n.Title,
			Body:      n.Body,
			Read:      n.Read,
			CreatedAt: n.CreatedAt.Format(timeFormat),
		})
	}
	return resp, nil
}

func (s *activityService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, userID, id)
}
