package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "fieldops/internal/delivery/context"
	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/domain/repository"
	"fieldops/internal/domain/service"
	"fieldops/internal/errors"
	"fieldops/internal/realtime"
	"fieldops/internal/usecase"

	"github.com/google/uuid"
)

const (
	// Firebase batch size limit
	firebaseBatchSize = 500

	defaultInboxLimit = 50
	maxInboxLimit     = 200
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
	deviceRepo       repository.DeviceRepository
	pushSvc          service.PushService
	fanout           realtime.Fanout
	logger           *slog.Logger
	now              func() time.Time
}

// NewNotificationService creates a new notification service instance.
// pushSvc may be nil when Firebase is not configured.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	deviceRepo repository.DeviceRepository,
	pushSvc service.PushService,
	fanout realtime.Fanout,
	logger *slog.Logger,
) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: notificationRepo,
		deviceRepo:       deviceRepo,
		pushSvc:          pushSvc,
		fanout:           fanout,
		logger:           logger,
		now:              time.Now,
	}
}

// Push persists the notification and hints the addressees
func (s *notificationService) Push(ctx context.Context, input *usecase.PushInput) (*entity.Notification, error) {
	if input == nil || input.Notification == nil || input.Event == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("notification and event are required")
	}

	notification := input.Notification
	if !notification.HasValidTarget() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("notification needs exactly one of targetUserId or targetRole")
	}
	if notification.Message == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("notification message is required")
	}
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = s.now().UTC()
	}
	notification.Read = false
	notification.ReadAt = nil

	if err := s.notificationRepo.CreateNotification(ctx, notification); err != nil {
		return nil, errors.Wrap(err, "failed to create notification")
	}

	var payload any = notification
	if input.Payload != nil {
		payload = input.Payload
	}

	event, err := realtime.NewEvent(input.Event, payload)
	if err != nil {
		s.getLogger(ctx).Error("Failed to build notification event",
			slog.String("notification_id", notification.ID.String()),
			slog.Any("error", err),
		)

		return notification, nil
	}

	if notification.TargetUserID != "" {
		s.fanout.ToUser(ctx, notification.TargetUserID, event)
		if !s.fanout.Online(notification.TargetUserID) {
			s.pushToDevices(ctx, notification)
		}
	} else {
		s.fanout.ToRole(ctx, notification.TargetRole, event)
	}

	return notification, nil
}

// MarkRead marks a notification read for one viewer
func (s *notificationService) MarkRead(ctx context.Context, notificationID uuid.UUID, viewer usecase.Viewer) error {
	if viewer.UserID == "" {
		return domainerrors.ErrUnauthenticated
	}

	notification, err := s.notificationRepo.FindNotificationByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return domainerrors.ErrNotificationNotFound
		}

		return errors.Wrap(err, "failed to find notification")
	}

	if !notification.VisibleTo(viewer.UserID, viewer.Role) {
		return domainerrors.ErrForbidden.WithDetails("notification is addressed to someone else")
	}

	changed, err := s.notificationRepo.MarkRead(ctx, notificationID, viewer.UserID, s.now().UTC())
	if err != nil {
		return errors.Wrap(err, "failed to mark notification read")
	}

	if !changed {
		s.getLogger(ctx).Debug("Notification already read",
			slog.String("notification_id", notificationID.String()),
			slog.String("user_id", viewer.UserID),
		)
	}

	return nil
}

// ClearAll clears the administrator's own inbox
func (s *notificationService) ClearAll(ctx context.Context, adminUserID string) (int64, error) {
	if adminUserID == "" {
		return 0, domainerrors.ErrUnauthenticated
	}

	cleared, err := s.notificationRepo.ClearInbox(ctx, adminUserID, entity.RoleAdmin, s.now().UTC())
	if err != nil {
		return 0, errors.Wrap(err, "failed to clear inbox")
	}

	return cleared, nil
}

// ListInbox lists the viewer's uncleared notifications with the unread count
func (s *notificationService) ListInbox(ctx context.Context, viewer usecase.Viewer, limit int) (*usecase.Inbox, error) {
	if viewer.UserID == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	if limit <= 0 {
		limit = defaultInboxLimit
	}
	limit = min(limit, maxInboxLimit)

	notifications, err := s.notificationRepo.FindInbox(ctx, viewer.UserID, viewer.Role, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list inbox")
	}

	unread, err := s.notificationRepo.CountUnread(ctx, viewer.UserID, viewer.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count unread notifications")
	}

	return &usecase.Inbox{Notifications: notifications, Unread: unread}, nil
}

// pushToDevices sends an FCM push to an offline user's active devices.
// Failures are logged; the inbox remains the source of truth.
func (s *notificationService) pushToDevices(ctx context.Context, notification *entity.Notification) {
	if s.pushSvc == nil {
		return
	}

	logger := s.getLogger(ctx).With(
		slog.String("notification_id", notification.ID.String()),
		slog.String("user_id", notification.TargetUserID),
	)

	devices, err := s.deviceRepo.FindActiveDevicesByUser(ctx, notification.TargetUserID)
	if err != nil {
		logger.Warn("Failed to load devices for push", slog.Any("error", err))

		return
	}
	if len(devices) == 0 {
		return
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
	}

	title := pushTitle(notification.Kind)
	data := map[string]string{
		"notification_id": notification.ID.String(),
		"kind":            string(notification.Kind),
	}
	if notification.ReferenceID != nil {
		data["reference_id"] = notification.ReferenceID.String()
	}

	var invalidTokens []string
	for idx := 0; idx < len(tokens); idx += firebaseBatchSize {
		batch := tokens[idx:min(idx+firebaseBatchSize, len(tokens))]

		sent, failed, invalid, sendErr := s.pushSvc.SendBatchNotification(ctx, batch, title, notification.Message, data)
		if sendErr != nil {
			logger.Warn("Push delivery failed",
				slog.String("code", domainerrors.CodeTransientNetwork),
				slog.Int("batch_size", len(batch)),
				slog.Any("error", sendErr),
			)

			continue
		}

		invalidTokens = append(invalidTokens, invalid...)
		logger.Debug("Push delivered", slog.Int("sent", sent), slog.Int("failed", failed))
	}

	if len(invalidTokens) > 0 {
		if err := s.deviceRepo.DeactivateTokens(ctx, invalidTokens); err != nil {
			logger.Warn("Failed to deactivate invalid tokens", slog.Any("error", err))
		}
	}
}

func pushTitle(kind entity.NotificationKind) string {
	switch kind {
	case entity.NotificationDiscountApproved:
		return "折扣申請已核准"
	case entity.NotificationDiscountRejected:
		return "折扣申請已駁回"
	case entity.NotificationDiscountRequested:
		return "新的折扣申請"
	default:
		return "新通知"
	}
}

func (s *notificationService) getLogger(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}
