package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type discountRepository struct {
	store  *Store
	locked bool
}

// NewDiscountRepository returns a DiscountRepository backed by the store.
func NewDiscountRepository(store *Store) repository.DiscountRepository {
	return &discountRepository{store: store}
}

func (repo *discountRepository) CreateRequest(_ context.Context, request *entity.DiscountRequest) error {
	defer repo.store.hold(repo.locked)()

	if request.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate discount request id")
		}
		request.ID = id
	}
	if _, ok := repo.store.requests[request.ID]; ok {
		return errors.Errorf("discount request %s already exists", request.ID)
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now().UTC()
	}
	if request.State == "" {
		request.State = entity.DiscountStateRequested
	}

	row := *request
	row.Requester, row.Client = nil, nil
	repo.store.requests[row.ID] = row

	return nil
}

func (repo *discountRepository) FindRequestByID(_ context.Context, id uuid.UUID) (*entity.DiscountRequest, error) {
	defer repo.store.hold(repo.locked)()

	row, ok := repo.store.requests[id]
	if !ok {
		return nil, repository.ErrDiscountRequestNotFound
	}

	return &row, nil
}

func (repo *discountRepository) FindPendingRequests(_ context.Context) ([]*entity.DiscountRequest, error) {
	defer repo.store.hold(repo.locked)()

	pending := make([]*entity.DiscountRequest, 0)
	for _, row := range repo.store.requests {
		if row.State == entity.DiscountStateRequested {
			pending = append(pending, &row)
		}
	}
	slices.SortFunc(pending, func(a, b *entity.DiscountRequest) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return pending, nil
}

func (repo *discountRepository) TransitionRequest(_ context.Context, id uuid.UUID, to entity.DiscountState, resolvedBy string, resolvedAt time.Time) error {
	defer repo.store.hold(repo.locked)()

	row, ok := repo.store.requests[id]
	if !ok {
		return repository.ErrDiscountRequestNotFound
	}
	if row.State != entity.DiscountStateRequested {
		return repository.ErrDiscountTransitionConflict
	}

	row.State = to
	row.ResolvedBy = resolvedBy
	row.ResolvedAt = &resolvedAt
	repo.store.requests[id] = row

	return nil
}

func (repo *discountRepository) CreateGrant(_ context.Context, grant *entity.DiscountGrant) error {
	defer repo.store.hold(repo.locked)()

	if _, ok := repo.store.grants[grant.RequestID]; ok {
		return repository.ErrDuplicateDiscountGrant
	}
	if grant.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate discount grant id")
		}
		grant.ID = id
	}
	if grant.CreatedAt.IsZero() {
		grant.CreatedAt = time.Now().UTC()
	}
	repo.store.grants[grant.RequestID] = *grant

	return nil
}

func (repo *discountRepository) FindGrantsByClient(_ context.Context, clientID string) ([]*entity.DiscountGrant, error) {
	defer repo.store.hold(repo.locked)()

	grants := make([]*entity.DiscountGrant, 0)
	for _, row := range repo.store.grants {
		if row.ClientID == clientID {
			grants = append(grants, &row)
		}
	}
	slices.SortFunc(grants, func(a, b *entity.DiscountGrant) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	return grants, nil
}
