package postgres

import (
	"context"
	"time"

	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/domain/repository"
	"fieldops/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// discountRepository implements the repository.DiscountRepository interface.
type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository is the constructor for discountRepository.
func NewDiscountRepository(db *gorm.DB) repository.DiscountRepository {
	return &discountRepository{
		db: db,
	}
}

// CreateRequest persists a new request in REQUESTED state.
func (repo *discountRepository) CreateRequest(ctx context.Context, request *entity.DiscountRequest) error {
	requestM := fromDiscountRequestDomain(request)
	requestM.State = string(entity.DiscountStateRequested)

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("percentage out of range")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create discount request")
	}

	request.ID = requestM.ID
	request.State = entity.DiscountStateRequested
	request.CreatedAt = requestM.CreatedAt

	return nil
}

// FindRequestByID retrieves a request by its unique ID.
func (repo *discountRepository) FindRequestByID(ctx context.Context, id uuid.UUID) (*entity.DiscountRequest, error) {
	var requestM model.DiscountRequestModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&requestM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDiscountRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find discount request by ID")
	}

	return toDiscountRequestDomain(&requestM), nil
}

// FindPendingRequests lists requests still in REQUESTED, oldest first.
func (repo *discountRepository) FindPendingRequests(ctx context.Context) ([]*entity.DiscountRequest, error) {
	var requestModels []*model.DiscountRequestModel

	if err := repo.db.WithContext(ctx).
		Where("state = ?", entity.DiscountStateRequested).
		Order("created_at ASC").
		Find(&requestModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find pending discount requests")
	}

	requests := make([]*entity.DiscountRequest, 0, len(requestModels))
	for _, requestM := range requestModels {
		requests = append(requests, toDiscountRequestDomain(requestM))
	}

	return requests, nil
}

// TransitionRequest moves the row out of REQUESTED with a single conditional UPDATE.
func (repo *discountRepository) TransitionRequest(ctx context.Context, id uuid.UUID, to entity.DiscountState, resolvedBy string, resolvedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DiscountRequestModel{}).
		Where("id = ? AND state = ?", id, entity.DiscountStateRequested).
		Updates(map[string]any{
			"state":       string(to),
			"resolved_by": resolvedBy,
			"resolved_at": resolvedAt,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to transition discount request")
	}

	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.DiscountRequestModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check discount request")
	}
	if count == 0 {
		return repository.ErrDiscountRequestNotFound
	}

	return repository.ErrDiscountTransitionConflict
}

// CreateGrant persists a grant; the unique request_id index rejects a second one.
func (repo *discountRepository) CreateGrant(ctx context.Context, grant *entity.DiscountGrant) error {
	grantM := fromDiscountGrantDomain(grant)

	if err := repo.db.WithContext(ctx).Create(grantM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateDiscountGrant
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrDiscountRequestNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create discount grant")
	}

	grant.ID = grantM.ID
	grant.CreatedAt = grantM.CreatedAt

	return nil
}

// FindGrantsByClient lists grants issued to a client, newest first.
func (repo *discountRepository) FindGrantsByClient(ctx context.Context, clientID string) ([]*entity.DiscountGrant, error) {
	var grantModels []*model.DiscountGrantModel

	if err := repo.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&grantModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find discount grants by client")
	}

	grants := make([]*entity.DiscountGrant, 0, len(grantModels))
	for _, grantM := range grantModels {
		grants = append(grants, toDiscountGrantDomain(grantM))
	}

	return grants, nil
}

// --- Mapper Functions ---

func toDiscountRequestDomain(data *model.DiscountRequestModel) *entity.DiscountRequest {
	if data == nil {
		return nil
	}

	request := &entity.DiscountRequest{
		ID:            data.ID,
		Percentage:    data.Percentage,
		State:         entity.DiscountState(data.State),
		RequesterID:   data.RequesterID,
		ClientID:      data.ClientID,
		Justification: data.Justification,
		CreatedAt:     data.CreatedAt,
		ResolvedAt:    data.ResolvedAt,
	}
	if data.ResolvedBy != nil {
		request.ResolvedBy = *data.ResolvedBy
	}

	return request
}

func fromDiscountRequestDomain(data *entity.DiscountRequest) *model.DiscountRequestModel {
	if data == nil {
		return nil
	}

	requestM := &model.DiscountRequestModel{
		ID:            data.ID,
		Percentage:    data.Percentage,
		State:         string(data.State),
		RequesterID:   data.RequesterID,
		ClientID:      data.ClientID,
		Justification: data.Justification,
		ResolvedAt:    data.ResolvedAt,
		CreatedAt:     data.CreatedAt,
	}
	if data.ResolvedBy != "" {
		requestM.ResolvedBy = &data.ResolvedBy
	}

	return requestM
}

func toDiscountGrantDomain(data *model.DiscountGrantModel) *entity.DiscountGrant {
	if data == nil {
		return nil
	}

	return &entity.DiscountGrant{
		ID:         data.ID,
		RequestID:  data.RequestID,
		ClientID:   data.ClientID,
		Percentage: data.Percentage,
		GrantedBy:  data.GrantedBy,
		CreatedAt:  data.CreatedAt,
	}
}

func fromDiscountGrantDomain(data *entity.DiscountGrant) *model.DiscountGrantModel {
	if data == nil {
		return nil
	}

	return &model.DiscountGrantModel{
		ID:         data.ID,
		RequestID:  data.RequestID,
		ClientID:   data.ClientID,
		Percentage: data.Percentage,
		GrantedBy:  data.GrantedBy,
		CreatedAt:  data.CreatedAt,
	}
}
