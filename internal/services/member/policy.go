package member

import (
	"context"
	"errors"
	"slices"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stormhead-org/community/internal/lib"
	"github.com/stormhead-org/community/internal/orm"
	"github.com/stormhead-org/community/internal/services"
)

// ChannelManagers may create channels on a server.
var ChannelManagers = []orm.MemberRole{
	orm.MemberRoleAdmin,
	orm.MemberRoleModerator,
}

// ServerManagers may edit a server and rotate its invite code.
var ServerManagers = []orm.MemberRole{
	orm.MemberRoleAdmin,
}

type MemberPolicyImpl struct {
	db  *orm.PostgresClient
	log *zap.Logger
}

func NewMemberPolicy(db *orm.PostgresClient, log *zap.Logger) services.MemberPolicy {
	return &MemberPolicyImpl{
		db:  db,
		log: log,
	}
}

// RoleOf returns lib.ErrNotMember when the profile has no membership on the server.
func (p *MemberPolicyImpl) RoleOf(ctx context.Context, profileID, serverID uint) (orm.MemberRole, error) {
	member, err := p.db.SelectMember(ctx, profileID, serverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", lib.ErrNotMember
		}
		p.log.Error("error selecting member", zap.Error(err))
		return "", err
	}
	return member.Role, nil
}

func (p *MemberPolicyImpl) Authorize(role orm.MemberRole, required ...orm.MemberRole) bool {
	return Authorize(role, required...)
}

// Authorize reports whether role is one of required. The empty role stands for
// "not a member" and is never authorized.
func Authorize(role orm.MemberRole, required ...orm.MemberRole) bool {
	if role == "" {
		return false
	}
	return slices.Contains(required, role)
}
