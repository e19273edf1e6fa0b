package services

import (
	"context"

	"github.com/stormhead-org/community/internal/orm"
)

// ProfileIdentity is the trusted identity handed over by authentication.
type ProfileIdentity struct {
	Email    string
	Name     string
	ImageURL string
}

// ProfileService resolves and provisions profiles by email identity.
type ProfileService interface {
	EnsureProfile(ctx context.Context, identity ProfileIdentity) (*orm.Profile, error)
	GetProfileByID(ctx context.Context, id uint) (*orm.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*orm.Profile, error)
}
