package postgres

import (
	"context"
	"time"

	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/repository"
	"fieldops/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// directoryRepository reads users and clients owned by other services.
type directoryRepository struct {
	db *gorm.DB
}

// NewDirectoryRepository is the constructor for directoryRepository.
func NewDirectoryRepository(db *gorm.DB) repository.DirectoryRepository {
	return &directoryRepository{
		db: db,
	}
}

// FindUser retrieves a user by ID.
func (repo *directoryRepository) FindUser(ctx context.Context, id string) (*entity.UserInfo, error) {
	var userM model.DirectoryUserModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by ID")
	}

	return &entity.UserInfo{
		ID:    userM.ID,
		Name:  userM.Name,
		Email: userM.Email,
		Role:  entity.Role(userM.Role),
	}, nil
}

// FindClient retrieves a client by ID.
func (repo *directoryRepository) FindClient(ctx context.Context, id string) (*entity.ClientInfo, error) {
	var clientM model.ClientModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&clientM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrClientNotFound
		}

		return nil, errors.Wrap(err, "failed to find client by ID")
	}

	return &entity.ClientInfo{
		ID:      clientM.ID,
		Name:    clientM.Name,
		Phone:   clientM.Phone,
		Address: clientM.Address,
	}, nil
}

// activityRepository resolves the open field activity of an agent.
type activityRepository struct {
	db *gorm.DB
}

// openActivityRow is a field activity joined with its user and client names.
type openActivityRow struct {
	model.FieldActivityModel
	UserName   *string
	ClientName *string
}

// NewActivityRepository is the constructor for activityRepository.
func NewActivityRepository(db *gorm.DB) repository.ActivityRepository {
	return &activityRepository{
		db: db,
	}
}

// FindOpenActivity returns the most recently started activity that has not ended.
func (repo *activityRepository) FindOpenActivity(ctx context.Context, userID string) (*entity.ActivityContext, error) {
	var rows []*openActivityRow

	if err := repo.db.WithContext(ctx).
		Table("field_activities AS a").
		Select("a.*, u.name AS user_name, c.name AS client_name").
		Joins("LEFT JOIN users AS u ON u.id = a.user_id").
		Joins("LEFT JOIN clients AS c ON c.id = a.client_id").
		Where("a.user_id = ? AND a.ended_at IS NULL", userID).
		Order("a.started_at DESC").
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find open activity")
	}
	if len(rows) == 0 {
		return nil, repository.ErrActivityNotFound
	}

	return toActivityDomain(rows[0]), nil
}

func toActivityDomain(row *openActivityRow) *entity.ActivityContext {
	startedAt := row.StartedAt.In(time.UTC)
	activity := &entity.ActivityContext{
		UserID:        row.UserID,
		ActivityID:    row.ID.String(),
		Kind:          entity.ActivityKind(row.Kind),
		Description:   row.Description,
		StartedAt:     &startedAt,
		SiteLatitude:  row.SiteLatitude,
		SiteLongitude: row.SiteLongitude,
	}
	if row.UserName != nil {
		activity.UserName = *row.UserName
	}
	if row.ClientID != nil {
		activity.ClientID = *row.ClientID
	}
	if row.ClientName != nil {
		activity.ClientName = *row.ClientName
	}

	return activity
}
