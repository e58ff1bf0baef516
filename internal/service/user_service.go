package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/plot-service/internal/auth"
	"github.com/spec-kit/plot-service/internal/config"
	"github.com/spec-kit/plot-service/internal/domain"
	"github.com/spec-kit/plot-service/internal/events"
	"github.com/spec-kit/plot-service/internal/repository"
	apperrors "github.com/spec-kit/plot-service/pkg/util"
)

// UserService manages administrative user records. Every operation here
// sits behind the users permission, which only super admins hold.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	knownZones map[string]struct{}
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	known := make(map[string]struct{}, len(cfg.KnownZones))
	for _, zone := range cfg.KnownZones {
		known[zone] = struct{}{}
	}
	return &UserService{
		users:      users,
		dispatcher: dispatcher,
		logger:     logger,
		knownZones: known,
		bcryptCost: cfg.BcryptCost,
	}
}

// Create provisions a user and returns the generated access key alongside
// the record. The key is stored only as a bcrypt hash and cannot be
// recovered later.
func (s *UserService) Create(ctx context.Context, claims *auth.Claims, email, role, zone string) (*domain.User, string, error) {
	requestedRole := domain.Role(role)
	if !requestedRole.Valid() {
		return nil, "", apperrors.NewInvalidRole(role)
	}
	if !s.zoneKnown(zone) {
		return nil, "", apperrors.NewInvalidZone(zone)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", apperrors.NewConflict("USER_ALREADY_EXISTS", "user with this email already exists", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", apperrors.MapError(err)
	}

	accessKey := uuid.NewString()
	hash, err := auth.HashAccessKey(accessKey, s.bcryptCost)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:         email,
		Role:          requestedRole,
		Zone:          zone,
		AccessKeyHash: hash,
		Active:        true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserCreated,
			Actor:     events.Actor{Subject: claims.Subject, Role: claims.Role, Zone: claims.Zone},
			Timestamp: time.Now(),
			Payload:   events.UserCreatedPayload{Email: user.Email, Role: user.Role, Zone: user.Zone},
		})
	}
	return user, accessKey, nil
}

// Get returns a user by email.
func (s *UserService) Get(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Update applies partial changes to a user record.
func (s *UserService) Update(ctx context.Context, email string, role, zone *string, active *bool) (*domain.User, error) {
	user, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	if role != nil {
		requestedRole := domain.Role(*role)
		if !requestedRole.Valid() {
			return nil, apperrors.NewInvalidRole(*role)
		}
		user.Role = requestedRole
	}
	if zone != nil {
		if !s.zoneKnown(*zone) {
			return nil, apperrors.NewInvalidZone(*zone)
		}
		user.Zone = *zone
	}
	if active != nil {
		user.Active = *active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete removes a user record.
func (s *UserService) Delete(ctx context.Context, email string) error {
	if err := s.users.Delete(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *UserService) zoneKnown(zone string) bool {
	if !domain.ValidZoneCode(zone) {
		return false
	}
	_, ok := s.knownZones[zone]
	return ok
}
