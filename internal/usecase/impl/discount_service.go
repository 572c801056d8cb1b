package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	deliverycontext "fieldops/internal/delivery/context"
	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/domain/repository"
	"fieldops/internal/errors"
	"fieldops/internal/realtime"
	"fieldops/internal/usecase"

	"github.com/google/uuid"
)

type discountService struct {
	txManager     repository.TransactionManager
	discountRepo  repository.DiscountRepository
	directoryRepo repository.DirectoryRepository
	notifications usecase.NotificationUsecase
	fanout        realtime.Fanout
	logger        *slog.Logger
	now           func() time.Time
}

// NewDiscountService creates a new discount workflow coordinator
func NewDiscountService(
	txManager repository.TransactionManager,
	discountRepo repository.DiscountRepository,
	directoryRepo repository.DirectoryRepository,
	notifications usecase.NotificationUsecase,
	fanout realtime.Fanout,
	logger *slog.Logger,
) usecase.DiscountUsecase {
	return &discountService{
		txManager:     txManager,
		discountRepo:  discountRepo,
		directoryRepo: directoryRepo,
		notifications: notifications,
		fanout:        fanout,
		logger:        logger,
		now:           time.Now,
	}
}

// SubmitRequest persists a new request and notifies administrators
func (s *discountService) SubmitRequest(ctx context.Context, input *usecase.SubmitDiscountInput) (*entity.DiscountRequest, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("request body is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	request := &entity.DiscountRequest{
		ID:            uuid.New(),
		Percentage:    *input.Percentage,
		State:         entity.DiscountStateRequested,
		RequesterID:   input.RequesterID,
		ClientID:      input.ClientID,
		Justification: strings.TrimSpace(input.Justification),
		CreatedAt:     s.now().UTC(),
	}

	if err := s.discountRepo.CreateRequest(ctx, request); err != nil {
		return nil, errors.Wrap(err, "failed to create discount request")
	}

	s.enrich(ctx, request)

	s.push(ctx, &usecase.PushInput{
		Notification: &entity.Notification{
			Kind:        entity.NotificationDiscountRequested,
			Message:     fmt.Sprintf("%s 為 %s 申請 %s%% 折扣", userLabel(request), clientLabel(request), formatPercentage(request.Percentage)),
			SenderID:    request.RequesterID,
			TargetRole:  entity.RoleAdmin,
			ReferenceID: &request.ID,
			CreatedAt:   request.CreatedAt,
		},
		Event:   realtime.EventNewDiscountRequest,
		Payload: request,
	})

	return request, nil
}

// Approve resolves a pending request as APPROVED and issues its grant
func (s *discountService) Approve(ctx context.Context, input *usecase.ApproveDiscountInput) (*entity.DiscountGrant, error) {
	if input == nil || input.RequestID == uuid.Nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("request id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := s.now().UTC()

	var (
		request *entity.DiscountRequest
		grant   *entity.DiscountGrant
	)

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		repo := factory.NewDiscountRepository()

		pending, err := s.loadPending(ctx, repo, input.RequestID)
		if err != nil {
			return err
		}
		if err := matchRequest(pending, input.ClientID, input.RequesterID); err != nil {
			return err
		}

		if err := s.transition(ctx, repo, pending.ID, entity.DiscountStateApproved, input.AdminID, now); err != nil {
			return err
		}

		percentage := pending.Percentage
		if input.Percentage != nil {
			percentage = *input.Percentage
		}

		grant = &entity.DiscountGrant{
			ID:         uuid.New(),
			RequestID:  pending.ID,
			ClientID:   pending.ClientID,
			Percentage: percentage,
			GrantedBy:  input.AdminID,
			CreatedAt:  now,
		}
		if err := repo.CreateGrant(ctx, grant); err != nil {
			if errors.Is(err, repository.ErrDuplicateDiscountGrant) {
				return domainerrors.ErrDiscountAlreadyResolved.WithDetails("grant already issued")
			}

			return errors.Wrap(err, "failed to create discount grant")
		}

		request = resolved(pending, entity.DiscountStateApproved, input.AdminID, now)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enrich(ctx, request)
	s.getLogger(ctx).Info("Discount request approved",
		slog.String("request_id", request.ID.String()),
		slog.String("admin_id", input.AdminID),
		slog.Float64("percentage", grant.Percentage),
	)

	s.announce(ctx, request, fmt.Sprintf("您為 %s 申請的 %s%% 折扣已核准", clientLabel(request), formatPercentage(grant.Percentage)))

	return grant, nil
}

// Reject resolves a pending request as REJECTED
func (s *discountService) Reject(ctx context.Context, input *usecase.RejectDiscountInput) (*entity.DiscountRequest, error) {
	if input == nil || input.RequestID == uuid.Nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("request id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := s.now().UTC()

	var request *entity.DiscountRequest

	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		repo := factory.NewDiscountRepository()

		pending, err := s.loadPending(ctx, repo, input.RequestID)
		if err != nil {
			return err
		}
		if err := matchRequest(pending, "", input.RequesterID); err != nil {
			return err
		}

		if err := s.transition(ctx, repo, pending.ID, entity.DiscountStateRejected, input.AdminID, now); err != nil {
			return err
		}

		request = resolved(pending, entity.DiscountStateRejected, input.AdminID, now)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enrich(ctx, request)
	s.getLogger(ctx).Info("Discount request rejected",
		slog.String("request_id", request.ID.String()),
		slog.String("admin_id", input.AdminID),
	)

	s.announce(ctx, request, fmt.Sprintf("您為 %s 申請的 %s%% 折扣已被駁回", clientLabel(request), formatPercentage(request.Percentage)))

	return request, nil
}

// ListPending lists requests awaiting a decision, enriched with directory data
func (s *discountService) ListPending(ctx context.Context) ([]*entity.DiscountRequest, error) {
	requests, err := s.discountRepo.FindPendingRequests(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find pending discount requests")
	}

	for _, request := range requests {
		s.enrich(ctx, request)
	}

	return requests, nil
}

// ListClientGrants lists discounts granted to a client
func (s *discountService) ListClientGrants(ctx context.Context, clientID string) ([]*entity.DiscountGrant, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("client id is required")
	}

	grants, err := s.discountRepo.FindGrantsByClient(ctx, clientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find discount grants")
	}

	return grants, nil
}

func (s *discountService) loadPending(ctx context.Context, repo repository.DiscountRepository, id uuid.UUID) (*entity.DiscountRequest, error) {
	request, err := repo.FindRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDiscountRequestNotFound) {
			return nil, domainerrors.ErrDiscountRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find discount request")
	}

	if request.State.IsTerminal() {
		return nil, domainerrors.ErrDiscountAlreadyResolved.WithDetails("state is " + string(request.State))
	}

	return request, nil
}

func (s *discountService) transition(ctx context.Context, repo repository.DiscountRepository, id uuid.UUID, to entity.DiscountState, adminID string, at time.Time) error {
	err := repo.TransitionRequest(ctx, id, to, adminID, at)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrDiscountTransitionConflict):
		return domainerrors.ErrDiscountAlreadyResolved
	case errors.Is(err, repository.ErrDiscountRequestNotFound):
		return domainerrors.ErrDiscountRequestNotFound
	default:
		return errors.Wrap(err, "failed to transition discount request")
	}
}

// announce runs after commit. Failures here never undo the transition.
func (s *discountService) announce(ctx context.Context, request *entity.DiscountRequest, message string) {
	resolution := entity.DiscountResolution{
		RequestID:  request.ID,
		State:      request.State,
		ResolvedBy: request.ResolvedBy,
		ResolvedAt: *request.ResolvedAt,
	}
	if event, err := realtime.NewEvent(realtime.EventDiscountRequestResolved, resolution); err == nil {
		s.fanout.ToRole(ctx, entity.RoleAdmin, event)
	}

	kind := entity.NotificationDiscountApproved
	if request.State == entity.DiscountStateRejected {
		kind = entity.NotificationDiscountRejected
	}

	s.push(ctx, &usecase.PushInput{
		Notification: &entity.Notification{
			Kind:         kind,
			Message:      message,
			SenderID:     request.ResolvedBy,
			TargetUserID: request.RequesterID,
			ReferenceID:  &request.ID,
		},
		Event: realtime.EventNewNotificationToAgent,
	})
}

func (s *discountService) push(ctx context.Context, input *usecase.PushInput) {
	if _, err := s.notifications.Push(ctx, input); err != nil {
		s.getLogger(ctx).Warn("Failed to record discount notification",
			slog.String("kind", string(input.Notification.Kind)),
			slog.Any("error", err),
		)
	}
}

// enrich attaches directory records; missing records are tolerated.
func (s *discountService) enrich(ctx context.Context, request *entity.DiscountRequest) {
	if client, err := s.directoryRepo.FindClient(ctx, request.ClientID); err == nil {
		request.Client = client
	} else if !errors.Is(err, repository.ErrClientNotFound) {
		s.getLogger(ctx).Warn("Client lookup failed", slog.String("client_id", request.ClientID), slog.Any("error", err))
	}

	if user, err := s.directoryRepo.FindUser(ctx, request.RequesterID); err == nil {
		request.Requester = user
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		s.getLogger(ctx).Warn("User lookup failed", slog.String("user_id", request.RequesterID), slog.Any("error", err))
	}
}

func matchRequest(request *entity.DiscountRequest, clientID, requesterID string) error {
	if clientID != "" && clientID != request.ClientID {
		return domainerrors.ErrValidationFailed.WithDetails("clientId does not match the request")
	}
	if requesterID != "" && requesterID != request.RequesterID {
		return domainerrors.ErrValidationFailed.WithDetails("requesterId does not match the request")
	}

	return nil
}

func resolved(request *entity.DiscountRequest, state entity.DiscountState, adminID string, at time.Time) *entity.DiscountRequest {
	out := *request
	out.State = state
	out.ResolvedBy = adminID
	out.ResolvedAt = &at

	return &out
}

func userLabel(request *entity.DiscountRequest) string {
	if request.Requester != nil && request.Requester.Name != "" {
		return request.Requester.Name
	}

	return request.RequesterID
}

func clientLabel(request *entity.DiscountRequest) string {
	if request.Client != nil && request.Client.Name != "" {
		return request.Client.Name
	}

	return request.ClientID
}

func formatPercentage(p float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", p), "0"), ".")
}

func (s *discountService) getLogger(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}
