package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/infra/persistence/memory"
	"fieldops/internal/realtime"
	"fieldops/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discountServiceFixtures struct {
	service       usecase.DiscountUsecase
	notifications usecase.NotificationUsecase
	store         *memory.Store
	fanout        *fakeFanout
}

func createTestDiscountService(t *testing.T) discountServiceFixtures {
	t.Helper()

	store := memory.NewStore()
	store.PutUser(entity.UserInfo{ID: "7", Name: "Ana Pérez", Role: entity.RoleFieldAgent})
	store.PutClient(entity.ClientInfo{ID: "42", Name: "Ferretería Sol"})

	fanout := newFakeFanout("7")
	notifications := NewNotificationService(
		memory.NewNotificationRepository(store),
		memory.NewDeviceRepository(store),
		nil,
		fanout,
		testLogger(),
	)
	service := NewDiscountService(
		memory.NewTransactionManager(store),
		memory.NewDiscountRepository(store),
		memory.NewDirectoryRepository(store),
		notifications,
		fanout,
		testLogger(),
	)

	return discountServiceFixtures{
		service:       service,
		notifications: notifications,
		store:         store,
		fanout:        fanout,
	}
}

func submit(t *testing.T, fx discountServiceFixtures) *entity.DiscountRequest {
	t.Helper()

	request, err := fx.service.SubmitRequest(context.Background(), &usecase.SubmitDiscountInput{
		RequesterID:   "7",
		ClientID:      "42",
		Percentage:    ptr(15.0),
		Justification: "  pedido mayorista  ",
	})
	require.NoError(t, err)

	return request
}

// Submitted while no admin is online, the request is still listed for an
// admin fetching on connect.
func TestDiscountService_SubmitRequest_FetchOnConnect(t *testing.T) {
	fx := createTestDiscountService(t)

	request := submit(t, fx)

	assert.Equal(t, entity.DiscountStateRequested, request.State)
	assert.Equal(t, "pedido mayorista", request.Justification)
	require.NotNil(t, request.Client)
	assert.Equal(t, "Ferretería Sol", request.Client.Name)

	sent := fx.fanout.Named(realtime.EventNewDiscountRequest)
	require.Len(t, sent, 1)
	assert.Equal(t, entity.RoleAdmin, sent[0].Role)

	var payload entity.DiscountRequest
	require.NoError(t, sent[0].Event.Decode(&payload))
	assert.Equal(t, request.ID, payload.ID)
	assert.Equal(t, "Ana Pérez", payload.Requester.Name)

	pending, err := fx.service.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, request.ID, pending[0].ID)
	assert.Equal(t, "Ferretería Sol", pending[0].Client.Name)

	inbox, err := fx.notifications.ListInbox(context.Background(), adminViewer("admin-1"), 10)
	require.NoError(t, err)
	require.Len(t, inbox.Notifications, 1)
	assert.Equal(t, entity.NotificationDiscountRequested, inbox.Notifications[0].Kind)
	assert.Equal(t, request.ID, *inbox.Notifications[0].ReferenceID)
}

func TestDiscountService_SubmitRequest_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input *usecase.SubmitDiscountInput
	}{
		{name: "nil"},
		{name: "missing percentage", input: &usecase.SubmitDiscountInput{RequesterID: "7", ClientID: "42"}},
		{name: "over 100", input: &usecase.SubmitDiscountInput{RequesterID: "7", ClientID: "42", Percentage: ptr(100.5)}},
		{name: "negative", input: &usecase.SubmitDiscountInput{RequesterID: "7", ClientID: "42", Percentage: ptr(-1.0)}},
		{name: "missing client", input: &usecase.SubmitDiscountInput{RequesterID: "7", Percentage: ptr(10.0)}},
		{name: "missing requester", input: &usecase.SubmitDiscountInput{ClientID: "42", Percentage: ptr(10.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestDiscountService(t)

			_, err := fx.service.SubmitRequest(context.Background(), tt.input)

			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

			pending, err := fx.service.ListPending(context.Background())
			require.NoError(t, err)
			assert.Empty(t, pending)
			assert.Empty(t, fx.fanout.sent)
		})
	}
}

func TestDiscountService_SubmitRequest_ZeroPercentAllowed(t *testing.T) {
	fx := createTestDiscountService(t)

	request, err := fx.service.SubmitRequest(context.Background(), &usecase.SubmitDiscountInput{
		RequesterID: "7",
		ClientID:    "42",
		Percentage:  ptr(0.0),
	})
	require.NoError(t, err)
	assert.Zero(t, request.Percentage)
}

func TestDiscountService_Approve(t *testing.T) {
	fx := createTestDiscountService(t)
	ctx := context.Background()
	request := submit(t, fx)

	grant, err := fx.service.Approve(ctx, &usecase.ApproveDiscountInput{
		RequestID:   request.ID,
		AdminID:     "admin-1",
		Percentage:  ptr(12.5),
		ClientID:    "42",
		RequesterID: "7",
	})
	require.NoError(t, err)
	assert.Equal(t, request.ID, grant.RequestID)
	assert.Equal(t, "42", grant.ClientID)
	assert.Equal(t, 12.5, grant.Percentage)
	assert.Equal(t, "admin-1", grant.GrantedBy)

	pending, err := fx.service.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	grants, err := fx.service.ListClientGrants(ctx, "42")
	require.NoError(t, err)
	assert.Len(t, grants, 1)

	resolved := fx.fanout.Named(realtime.EventDiscountRequestResolved)
	require.Len(t, resolved, 1)
	assert.Equal(t, entity.RoleAdmin, resolved[0].Role)

	var resolution entity.DiscountResolution
	require.NoError(t, resolved[0].Event.Decode(&resolution))
	assert.Equal(t, entity.DiscountStateApproved, resolution.State)

	toAgent := fx.fanout.Named(realtime.EventNewNotificationToAgent)
	require.Len(t, toAgent, 1)
	assert.Equal(t, "7", toAgent[0].UserID)

	var notification entity.Notification
	require.NoError(t, toAgent[0].Event.Decode(&notification))
	assert.Equal(t, entity.NotificationDiscountApproved, notification.Kind)
	assert.Equal(t, "您為 Ferretería Sol 申請的 12.5% 折扣已核准", notification.Message)
}

func TestDiscountService_Approve_Errors(t *testing.T) {
	fx := createTestDiscountService(t)
	ctx := context.Background()
	request := submit(t, fx)

	_, err := fx.service.Approve(ctx, &usecase.ApproveDiscountInput{RequestID: uuid.New(), AdminID: "admin-1"})
	assert.ErrorIs(t, err, domainerrors.ErrDiscountRequestNotFound)

	_, err = fx.service.Approve(ctx, &usecase.ApproveDiscountInput{RequestID: request.ID, AdminID: "admin-1", ClientID: "99"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.service.Approve(ctx, &usecase.ApproveDiscountInput{RequestID: request.ID, AdminID: "admin-1", Percentage: ptr(150.0)})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	pending, err := fx.service.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1, "failed approvals must not change state")

	_, err = fx.service.Reject(ctx, &usecase.RejectDiscountInput{RequestID: request.ID, AdminID: "admin-1"})
	require.NoError(t, err)

	_, err = fx.service.Approve(ctx, &usecase.ApproveDiscountInput{RequestID: request.ID, AdminID: "admin-2"})
	assert.ErrorIs(t, err, domainerrors.ErrDiscountAlreadyResolved)

	grants, err := fx.service.ListClientGrants(ctx, "42")
	require.NoError(t, err)
	assert.Empty(t, grants)
}

func TestDiscountService_Reject(t *testing.T) {
	fx := createTestDiscountService(t)
	request := submit(t, fx)

	rejected, err := fx.service.Reject(context.Background(), &usecase.RejectDiscountInput{
		RequestID:   request.ID,
		AdminID:     "admin-1",
		RequesterID: "7",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DiscountStateRejected, rejected.State)
	assert.Equal(t, "admin-1", rejected.ResolvedBy)
	require.NotNil(t, rejected.ResolvedAt)

	inbox, err := fx.notifications.ListInbox(context.Background(), usecase.Viewer{UserID: "7", Role: entity.RoleFieldAgent}, 10)
	require.NoError(t, err)
	require.Len(t, inbox.Notifications, 1)
	assert.Equal(t, entity.NotificationDiscountRejected, inbox.Notifications[0].Kind)
}

// Two administrators race on the same request: exactly one resolution lands
// and the agent hears about it once.
func TestDiscountService_ConcurrentResolution(t *testing.T) {
	for round := range 20 {
		fx := createTestDiscountService(t)
		ctx := context.Background()
		request := submit(t, fx)

		var (
			wg    sync.WaitGroup
			start = make(chan struct{})
			errs  = make([]error, 4)
		)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				adminID := "admin-" + string(rune('a'+i))
				if i%2 == 0 {
					_, errs[i] = fx.service.Approve(ctx, &usecase.ApproveDiscountInput{RequestID: request.ID, AdminID: adminID})
				} else {
					_, errs[i] = fx.service.Reject(ctx, &usecase.RejectDiscountInput{RequestID: request.ID, AdminID: adminID})
				}
			}()
		}
		close(start)
		wg.Wait()

		var wins, conflicts int
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, domainerrors.ErrDiscountAlreadyResolved):
				conflicts++
			}
		}
		require.Equal(t, 1, wins, "round %d", round)
		require.Equal(t, len(errs)-1, conflicts, "round %d", round)

		stored, err := memory.NewDiscountRepository(fx.store).FindRequestByID(ctx, request.ID)
		require.NoError(t, err)
		grants, err := fx.service.ListClientGrants(ctx, "42")
		require.NoError(t, err)
		if stored.State == entity.DiscountStateApproved {
			assert.Len(t, grants, 1)
		} else {
			assert.Equal(t, entity.DiscountStateRejected, stored.State)
			assert.Empty(t, grants)
		}

		assert.Len(t, fx.fanout.Named(realtime.EventNewNotificationToAgent), 1)
		assert.Len(t, fx.fanout.Named(realtime.EventDiscountRequestResolved), 1)
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "15", formatPercentage(15))
	assert.Equal(t, "12.5", formatPercentage(12.5))
	assert.Equal(t, "0.25", formatPercentage(0.25))
	assert.Equal(t, "0", formatPercentage(0))
}

func TestResolvedDoesNotMutateInput(t *testing.T) {
	pending := &entity.DiscountRequest{ID: uuid.New(), State: entity.DiscountStateRequested}

	out := resolved(pending, entity.DiscountStateApproved, "admin-1", time.Now())

	assert.Equal(t, entity.DiscountStateRequested, pending.State)
	assert.Equal(t, entity.DiscountStateApproved, out.State)
}
