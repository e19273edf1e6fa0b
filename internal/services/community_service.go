package services

import (
	"context"

	"github.com/stormhead-org/community/internal/orm"
)

// CommunityService defines the interface for server and channel operations.
type CommunityService interface {
	CreateServer(ctx context.Context, creatorProfileID uint, name, imageURL string) (*orm.Server, error)
	GetServer(ctx context.Context, serverID uint, email string) (*orm.Server, error)
	GetServerByInviteCode(ctx context.Context, inviteCode string) (*orm.Server, error)
	ListServersForMember(ctx context.Context, email string) ([]*orm.Server, error)
	RotateInviteCode(ctx context.Context, serverID uint) (*orm.Server, error)
	UpdateServer(ctx context.Context, serverID uint, name, imageURL *string) (*orm.Server, error)
	JoinServer(ctx context.Context, inviteCode, email string) (*orm.Server, error)
	CreateChannel(ctx context.Context, serverID uint, email, name, channelType string) (*orm.Server, error)
}
