package profile

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stormhead-org/community/internal/lib"
	"github.com/stormhead-org/community/internal/orm"
	"github.com/stormhead-org/community/internal/services"
)

// ProfileStore is the slice of the gateway the profile directory needs.
// *orm.PostgresClient implements it.
type ProfileStore interface {
	SelectProfileByEmail(ctx context.Context, email string) (*orm.Profile, error)
	SelectProfileByIDWithServers(ctx context.Context, id uint) (*orm.Profile, error)
	SelectProfileByEmailWithServers(ctx context.Context, email string) (*orm.Profile, error)
	InsertProfile(ctx context.Context, profile *orm.Profile) error
}

type ProfileServiceImpl struct {
	db  ProfileStore
	log *zap.Logger
}

func NewProfileService(db *orm.PostgresClient, log *zap.Logger) services.ProfileService {
	return NewProfileServiceWithStore(db, log)
}

func NewProfileServiceWithStore(db ProfileStore, log *zap.Logger) services.ProfileService {
	return &ProfileServiceImpl{
		db:  db,
		log: log,
	}
}

func (s *ProfileServiceImpl) EnsureProfile(ctx context.Context, identity services.ProfileIdentity) (*orm.Profile, error) {
	email := strings.TrimSpace(identity.Email)
	if email == "" {
		return nil, lib.ValidationError("EMAIL_REQUIRED", "Email is required")
	}

	profile, err := s.db.SelectProfileByEmail(ctx, email)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Error("error selecting profile by email", zap.Error(err))
		return nil, lib.InternalError()
	}

	profile = &orm.Profile{
		Email:    email,
		Name:     identity.Name,
		ImageURL: identity.ImageURL,
	}
	err = s.db.InsertProfile(ctx, profile)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race with a concurrent first login for the same email.
		existing, selectErr := s.db.SelectProfileByEmail(ctx, email)
		if selectErr != nil {
			s.log.Error("error selecting profile after conflict", zap.Error(selectErr))
			return nil, lib.InternalError()
		}
		return existing, nil
	}
	if err != nil {
		s.log.Error("internal error inserting profile", zap.Error(err))
		return nil, lib.InternalError()
	}

	s.log.Info("profile created",
		zap.Uint("id", profile.ID),
		zap.String("email", profile.Email),
	)
	return profile, nil
}

func (s *ProfileServiceImpl) GetProfileByID(ctx context.Context, id uint) (*orm.Profile, error) {
	profile, err := s.db.SelectProfileByIDWithServers(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.ProfileNotFoundError()
		}
		s.log.Error("error selecting profile by id", zap.Error(err))
		return nil, lib.InternalError()
	}
	return profile, nil
}

func (s *ProfileServiceImpl) GetProfileByEmail(ctx context.Context, email string) (*orm.Profile, error) {
	profile, err := s.db.SelectProfileByEmailWithServers(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.ProfileNotFoundError()
		}
		s.log.Error("error selecting profile by email", zap.Error(err))
		return nil, lib.InternalError()
	}
	return profile, nil
}
