package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"invare-backend/internal/apperr"
	"invare-backend/internal/domain"
	"invare-backend/internal/logger"
	"invare-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
	userRepo repository.UserRepository
	push     PushSender
	email    EmailService
}

func NewNotificationService(noteRepo repository.NotificationRepository, userRepo repository.UserRepository, push PushSender, email EmailService) NotificationService {
	return &notificationService{
		noteRepo: noteRepo,
		userRepo: userRepo,
		push:     push,
		email:    email,
	}
}

func (s *notificationService) Subscribe(ctx context.Context, actor Actor, fcmToken string) error {
	if fcmToken == "" {
		return apperr.BadRequest("fcm token is required")
	}
	token := &domain.PushToken{
		UserID:   actor.ID,
		Role:     actor.Role,
		FCMToken: fcmToken,
	}
	if err := s.noteRepo.UpsertToken(ctx, token); err != nil {
		return fmt.Errorf("upsert push token: %w", err)
	}
	return nil
}

func (s *notificationService) Unsubscribe(ctx context.Context, fcmToken string) error {
	if fcmToken == "" {
		return apperr.BadRequest("fcm token is required")
	}
	if err := s.noteRepo.DeleteToken(ctx, fcmToken); err != nil {
		return fmt.Errorf("delete push token: %w", err)
	}
	return nil
}

func (s *notificationService) ListLogs(ctx context.Context, actor Actor, read *bool, limit int32) ([]domain.NotificationLog, error) {
	return s.noteRepo.ListLogs(ctx, actor.ID, read, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, actor Actor, logID int32) error {
	if err := s.noteRepo.MarkLogRead(ctx, logID, actor.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("notification not found")
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor Actor) error {
	return s.noteRepo.MarkAllLogsRead(ctx, actor.ID)
}

func (s *notificationService) ClearLogs(ctx context.Context, actor Actor) error {
	return s.noteRepo.ClearLogs(ctx, actor.ID)
}

// NotifyAdmins is best-effort by contract: the caller's operation already
// succeeded, so every delivery failure here is logged and swallowed.
func (s *notificationService) NotifyAdmins(ctx context.Context, title, body string, data map[string]string) {
	admins, err := s.userRepo.ListByRole(ctx, domain.UserRoleAdmin)
	if err != nil {
		logger.Error("admin fan-out: list admins failed", "error", err)
		return
	}
	if len(admins) == 0 {
		return
	}

	for _, admin := range admins {
		log := &domain.NotificationLog{
			UserID: admin.ID,
			Role:   domain.UserRoleAdmin,
			Title:  title,
			Body:   body,
			Data:   data,
		}
		if err := s.noteRepo.CreateLog(ctx, log); err != nil {
			logger.Error("admin fan-out: create log failed", "user_id", admin.ID, "error", err)
		}
		if s.email != nil {
			if err := s.email.Send(admin.Email, admin.Name, title, body, ""); err != nil {
				logger.Error("admin fan-out: email failed", "user_id", admin.ID, "error", err)
			}
		}
	}

	if s.push == nil {
		return
	}
	tokens, err := s.noteRepo.ListTokens(ctx, 0, domain.UserRoleAdmin)
	if err != nil {
		logger.Error("admin fan-out: list tokens failed", "error", err)
		return
	}
	if len(tokens) == 0 {
		return
	}
	invalid, err := s.push.Send(ctx, tokens, title, body, data)
	if err != nil {
		logger.Error("admin fan-out: push failed", "error", err)
	}
	if len(invalid) > 0 {
		if err := s.noteRepo.DeleteTokens(ctx, invalid); err != nil {
			logger.Error("admin fan-out: prune dead tokens failed", "error", err)
		}
	}
}
