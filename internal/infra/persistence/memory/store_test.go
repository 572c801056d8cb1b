package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, repo repository.DiscountRepository) *entity.DiscountRequest {
	t.Helper()

	request := &entity.DiscountRequest{
		Percentage:  10,
		RequesterID: "agent-1",
		ClientID:    "client-1",
	}
	require.NoError(t, repo.CreateRequest(context.Background(), request))

	return request
}

func TestTransitionRequestAllowsSingleWinner(t *testing.T) {
	store := NewStore()
	repo := NewDiscountRepository(store)
	request := newRequest(t, repo)

	const racers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for i := range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			to := entity.DiscountStateApproved
			if i%2 == 1 {
				to = entity.DiscountStateRejected
			}
			err := repo.TransitionRequest(context.Background(), request.ID, to, "admin", time.Now())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, repository.ErrDiscountTransitionConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflicts)

	stored, err := repo.FindRequestByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.True(t, stored.State.IsTerminal())
	assert.Equal(t, "admin", stored.ResolvedBy)
}

func TestTransitionRequestNotFound(t *testing.T) {
	repo := NewDiscountRepository(NewStore())

	err := repo.TransitionRequest(context.Background(), uuid.New(), entity.DiscountStateApproved, "admin", time.Now())

	assert.ErrorIs(t, err, repository.ErrDiscountRequestNotFound)
}

func TestCreateGrantIsUniquePerRequest(t *testing.T) {
	repo := NewDiscountRepository(NewStore())
	requestID := uuid.New()

	require.NoError(t, repo.CreateGrant(context.Background(), &entity.DiscountGrant{RequestID: requestID, ClientID: "client-1", Percentage: 5}))
	err := repo.CreateGrant(context.Background(), &entity.DiscountGrant{RequestID: requestID, ClientID: "client-1", Percentage: 5})

	assert.ErrorIs(t, err, repository.ErrDuplicateDiscountGrant)

	grants, err := repo.FindGrantsByClient(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Len(t, grants, 1)
}

func TestExecuteRollsBackOnError(t *testing.T) {
	store := NewStore()
	repo := NewDiscountRepository(store)
	request := newRequest(t, repo)
	txManager := NewTransactionManager(store)
	boom := errors.New("boom")

	err := txManager.Execute(context.Background(), func(factory repository.RepositoryFactory) error {
		txRepo := factory.NewDiscountRepository()
		if err := txRepo.TransitionRequest(context.Background(), request.ID, entity.DiscountStateApproved, "admin", time.Now()); err != nil {
			return err
		}
		if err := txRepo.CreateGrant(context.Background(), &entity.DiscountGrant{RequestID: request.ID, ClientID: request.ClientID}); err != nil {
			return err
		}

		return boom
	})

	require.ErrorIs(t, err, boom)

	stored, err := repo.FindRequestByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DiscountStateRequested, stored.State)

	grants, err := repo.FindGrantsByClient(context.Background(), request.ClientID)
	require.NoError(t, err)
	assert.Empty(t, grants)
}

func TestExecuteCommits(t *testing.T) {
	store := NewStore()
	repo := NewDiscountRepository(store)
	request := newRequest(t, repo)

	err := NewTransactionManager(store).Execute(context.Background(), func(factory repository.RepositoryFactory) error {
		return factory.NewDiscountRepository().TransitionRequest(context.Background(), request.ID, entity.DiscountStateRejected, "admin", time.Now())
	})
	require.NoError(t, err)

	pending, err := repo.FindPendingRequests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestNotificationReceiptsArePerUser(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(NewStore())

	roleWide := &entity.Notification{Kind: entity.NotificationDiscountRequested, Message: "new request", TargetRole: entity.RoleAdmin}
	direct := &entity.Notification{Kind: entity.NotificationDiscountApproved, Message: "approved", TargetUserID: "agent-1"}
	require.NoError(t, repo.CreateNotification(ctx, roleWide))
	require.NoError(t, repo.CreateNotification(ctx, direct))

	changed, err := repo.MarkRead(ctx, roleWide.ID, "admin-1", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkRead(ctx, roleWide.ID, "admin-1", time.Now())
	require.NoError(t, err)
	assert.False(t, changed)

	unread, err := repo.CountUnread(ctx, "admin-2", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	cleared, err := repo.ClearInbox(ctx, "admin-1", entity.RoleAdmin, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	inbox, err := repo.FindInbox(ctx, "admin-1", entity.RoleAdmin, 10)
	require.NoError(t, err)
	assert.Empty(t, inbox)

	inbox, err = repo.FindInbox(ctx, "admin-2", entity.RoleAdmin, 10)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.False(t, inbox[0].Read)

	inbox, err = repo.FindInbox(ctx, "agent-1", entity.RoleFieldAgent, 10)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, direct.ID, inbox[0].ID)
}

func TestMarkReadUnknownNotification(t *testing.T) {
	repo := NewNotificationRepository(NewStore())

	_, err := repo.MarkRead(context.Background(), uuid.New(), "admin-1", time.Now())

	assert.ErrorIs(t, err, repository.ErrNotificationNotFound)
}

func TestDeactivateTokens(t *testing.T) {
	ctx := context.Background()
	repo := NewDeviceRepository(NewStore())

	first := &entity.UserDevice{UserID: "agent-1", FCMToken: "token-a", DeviceID: "phone", Platform: "android", IsActive: true}
	second := &entity.UserDevice{UserID: "agent-1", FCMToken: "token-b", DeviceID: "tablet", Platform: "ios", IsActive: true}
	require.NoError(t, repo.CreateDevice(ctx, first))
	require.NoError(t, repo.CreateDevice(ctx, second))
	assert.ErrorIs(t, repo.CreateDevice(ctx, &entity.UserDevice{UserID: "agent-1", DeviceID: "phone"}), repository.ErrDuplicateDevice)

	require.NoError(t, repo.DeactivateTokens(ctx, []string{"token-a"}))

	active, err := repo.FindActiveDevicesByUser(ctx, "agent-1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "token-b", active[0].FCMToken)
}
