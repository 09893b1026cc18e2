package service

import (
	"context"
	"strings"

	"catalog/internal/apperror"
	"catalog/internal/domain"
	"catalog/internal/models"
	"catalog/internal/repository"
	"catalog/internal/ws"
)

// NotificationInput is the payload accepted by Notify.
type NotificationInput struct {
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Type      string  `json:"type"`
	Icon      string  `json:"icon"`
	Link      *string `json:"link"`
	RelatedID *string `json:"related_id"`
	Urgent    bool    `json:"urgent"`
}

// Broadcaster pushes events to live admin sessions.
type Broadcaster interface {
	BroadcastAll(payload any)
}

const EventNotificationCreated = "notification.created"

type NotificationService struct {
	repo *repository.NotificationRepository
	hub  Broadcaster
}

// NewNotificationService wires the store and an optional live broadcaster.
func NewNotificationService(repo *repository.NotificationRepository, hub Broadcaster) *NotificationService {
	return &NotificationService{repo: repo, hub: hub}
}

// Notify stores a notification and announces it to connected admins.
func (s *NotificationService) Notify(ctx context.Context, in NotificationInput) (*models.Notification, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Message = strings.TrimSpace(in.Message)
	in.Type = strings.TrimSpace(in.Type)
	in.Icon = strings.TrimSpace(in.Icon)
	if in.Title == "" || in.Message == "" || in.Type == "" || in.Icon == "" {
		return nil, apperror.Validation("Missing required fields")
	}
	if !domain.ValidNotificationType(in.Type) {
		return nil, apperror.Validation("Invalid notification type")
	}

	n := &models.Notification{
		Title:     in.Title,
		Message:   in.Message,
		Type:      in.Type,
		Icon:      in.Icon,
		Link:      optional(in.Link),
		RelatedID: optional(in.RelatedID),
		Urgent:    in.Urgent,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.BroadcastAll(ws.Event{Type: EventNotificationCreated, Data: n})
	}
	return n, nil
}

// List returns the latest notifications and the number still unread.
func (s *NotificationService) List(ctx context.Context) ([]models.Notification, int64, error) {
	list, err := s.repo.ListLatest(ctx, domain.NotificationListMax)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	found, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NotFound("Notification not found")
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}

func (s *NotificationService) DeleteAllRead(ctx context.Context) (int64, error) {
	return s.repo.DeleteAllRead(ctx)
}
