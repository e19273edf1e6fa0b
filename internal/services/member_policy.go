package services

import (
	"context"

	"github.com/stormhead-org/community/internal/orm"
)

// MemberPolicy answers role questions for a (profile, server) pair.
type MemberPolicy interface {
	RoleOf(ctx context.Context, profileID, serverID uint) (orm.MemberRole, error)
	Authorize(role orm.MemberRole, required ...orm.MemberRole) bool
}
