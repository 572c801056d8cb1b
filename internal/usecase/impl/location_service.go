package impl

import (
	"context"
	"log/slog"
	"math"
	"time"

	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/domain/repository"
	"fieldops/internal/errors"
	"fieldops/internal/realtime"
	"fieldops/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// maxClockSkew bounds how far in the future a client timestamp may be.
const maxClockSkew = time.Minute

type locationService struct {
	activityRepo repository.ActivityRepository
	fanout       realtime.Fanout
	logger       *slog.Logger
	now          func() time.Time
}

// NewLocationService creates a new location relay instance
func NewLocationService(activityRepo repository.ActivityRepository, fanout realtime.Fanout, logger *slog.Logger) usecase.LocationUsecase {
	return &locationService{
		activityRepo: activityRepo,
		fanout:       fanout,
		logger:       logger,
		now:          time.Now,
	}
}

// RelayPing validates, enriches and fans out a field agent position
func (s *locationService) RelayPing(ctx context.Context, conn entity.Connection, input *usecase.LocationPingInput) (*entity.LocationPing, error) {
	logger := s.logger.With(
		slog.String("connection_id", conn.ID.String()),
		slog.String("user_id", conn.UserID),
	)

	if conn.Role != entity.RoleFieldAgent {
		logger.Warn("Rejected location ping from non field agent", slog.String("role", conn.Role.String()))

		return nil, domainerrors.ErrForbidden.WithDetails("only field agents may report locations")
	}

	ping, err := s.buildPing(conn, input)
	if err != nil {
		logger.Warn("Dropped malformed location ping", slog.Any("error", err))

		return nil, err
	}

	ping.UserInfo = s.lookupContext(ctx, logger, ping)

	event, err := realtime.NewEvent(realtime.EventReceiveLocation, ping)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	s.fanout.ToRole(ctx, entity.RoleAdmin, event)

	return ping, nil
}

func (s *locationService) buildPing(conn entity.Connection, input *usecase.LocationPingInput) (*entity.LocationPing, error) {
	if input == nil || input.Latitude == nil || input.Longitude == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("latitude and longitude are required")
	}
	if input.UserID != "" && input.UserID != conn.UserID {
		return nil, domainerrors.ErrValidationFailed.WithDetails("userId does not match the connection")
	}
	if !entity.ValidCoordinates(*input.Latitude, *input.Longitude) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("coordinates out of range")
	}

	now := s.now().UTC()
	timestamp := now
	if input.Timestamp != nil && !input.Timestamp.IsZero() && input.Timestamp.Before(now.Add(maxClockSkew)) {
		timestamp = input.Timestamp.UTC()
	}

	return &entity.LocationPing{
		UserID:    conn.UserID,
		Latitude:  *input.Latitude,
		Longitude: *input.Longitude,
		Timestamp: timestamp,
	}, nil
}

// lookupContext resolves the agent's activity at relay time. Lookup failures
// degrade to an idle context instead of dropping the ping.
func (s *locationService) lookupContext(ctx context.Context, logger *slog.Logger, ping *entity.LocationPing) *entity.ActivityContext {
	found, err := s.activityRepo.FindOpenActivity(ctx, ping.UserID)
	if err != nil {
		if !errors.Is(err, repository.ErrActivityNotFound) {
			logger.Warn("Activity lookup failed", slog.Any("error", err))
		}

		return &entity.ActivityContext{UserID: ping.UserID, Kind: entity.ActivityIdle}
	}

	enriched := *found
	enriched.UserID = ping.UserID
	if enriched.HasSite() {
		site := orb.Point{*enriched.SiteLongitude, *enriched.SiteLatitude}
		meters := math.Round(geo.Distance(ping.Point(), site)*10) / 10
		enriched.DistanceToSiteMeters = &meters
	}

	return &enriched
}
