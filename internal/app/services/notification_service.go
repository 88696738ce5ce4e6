package services

import (
	"context"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/repositories"
)

// NotificationService defines the caller's notification operations
type NotificationService interface {
	List(ctx context.Context, accountID int64) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, accountID, id int64) error
	Delete(ctx context.Context, accountID, id int64) error
}

type notificationServiceImpl struct {
	notificationRepo repositories.INotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.INotificationRepository) NotificationService {
	return &notificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *notificationServiceImpl) List(ctx context.Context, accountID int64) ([]dto.NotificationResponse, error) {
	ns, err := s.notificationRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return toNotificationResponses(ns), nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, accountID, id int64) error {
	return s.notificationRepo.MarkRead(ctx, id, accountID)
}

func (s *notificationServiceImpl) Delete(ctx context.Context, accountID, id int64) error {
	return s.notificationRepo.Delete(ctx, id, accountID)
}
