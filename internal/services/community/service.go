package community

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventpkg "github.com/stormhead-org/community/internal/event"
	"github.com/stormhead-org/community/internal/lib"
	"github.com/stormhead-org/community/internal/orm"
	"github.com/stormhead-org/community/internal/services"
	"github.com/stormhead-org/community/internal/services/member"
)

const DefaultChannelName = "general"

type CommunityServiceImpl struct {
	db     *orm.PostgresClient
	policy services.MemberPolicy
	broker eventpkg.Broker
	log    *zap.Logger
}

func NewCommunityService(
	db *orm.PostgresClient,
	policy services.MemberPolicy,
	broker eventpkg.Broker,
	log *zap.Logger,
) services.CommunityService {
	return &CommunityServiceImpl{
		db:     db,
		policy: policy,
		broker: broker,
		log:    log,
	}
}

func (s *CommunityServiceImpl) CreateServer(ctx context.Context, creatorProfileID uint, name, imageURL string) (*orm.Server, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, lib.ValidationError("SERVER_NAME_REQUIRED", "Server name is required")
	}

	profile, err := s.db.SelectProfileByID(ctx, creatorProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.ProfileNotFoundError()
		}
		s.log.Error("error selecting profile by id", zap.Error(err))
		return nil, lib.InternalError()
	}

	server := &orm.Server{
		Name:       name,
		ImageURL:   imageURL,
		InviteCode: uuid.NewString(),
		ProfileID:  profile.ID,
	}

	err = s.db.Transaction(ctx, func(tx *orm.PostgresClient) error {
		if err := tx.InsertServer(ctx, server); err != nil {
			return err
		}

		channel := &orm.Channel{
			Name:      DefaultChannelName,
			Type:      orm.ChannelTypeText,
			ServerID:  server.ID,
			ProfileID: profile.ID,
		}
		if err := tx.InsertChannel(ctx, channel); err != nil {
			return err
		}

		admin := &orm.Member{
			Role:      orm.MemberRoleAdmin,
			ProfileID: profile.ID,
			ServerID:  server.ID,
		}
		return tx.InsertMember(ctx, admin)
	})
	if err != nil {
		s.log.Error("internal error inserting server", zap.Error(err))
		return nil, lib.InternalError()
	}

	created, err := s.db.SelectServerWithRelations(ctx, server.ID)
	if err != nil {
		s.log.Error("error selecting created server", zap.Error(err))
		return nil, lib.InternalError()
	}

	s.log.Info("server created",
		zap.Uint("id", created.ID),
		zap.Uint("profile_id", created.ProfileID),
		zap.String("name", created.Name),
	)
	s.publish(ctx, eventpkg.SERVER_CREATE, eventpkg.ServerCreateMessage{
		ServerID:  created.ID,
		ProfileID: created.ProfileID,
		Name:      created.Name,
	})

	return created, nil
}

func (s *CommunityServiceImpl) GetServer(ctx context.Context, serverID uint, email string) (*orm.Server, error) {
	profile, err := s.selectProfileByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	server, err := s.db.SelectMemberServerWithRelations(ctx, serverID, profile.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.ServerNotFoundError()
		}
		s.log.Error("error selecting server by id", zap.Error(err))
		return nil, lib.InternalError()
	}

	return server, nil
}

func (s *CommunityServiceImpl) GetServerByInviteCode(ctx context.Context, inviteCode string) (*orm.Server, error) {
	if inviteCode == "" {
		return nil, lib.ServerNotFoundError()
	}

	server, err := s.db.SelectServerByInviteCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.ServerNotFoundError()
		}
		s.log.Error("error selecting server by invite code", zap.Error(err))
		return nil, lib.InternalError()
	}

	return server, nil
}

func (s *CommunityServiceImpl) ListServersForMember(ctx context.Context, email string) ([]*orm.Server, error) {
	servers, err := s.db.SelectServersByMemberEmail(ctx, email)
	if err != nil {
		s.log.Error("internal error listing servers", zap.Error(err))
		return nil, lib.InternalError()
	}

	if servers == nil {
		servers = []*orm.Server{}
	}
	return servers, nil
}

func (s *CommunityServiceImpl) RotateInviteCode(ctx context.Context, serverID uint) (*orm.Server, error) {
	server, err := s.selectServer(ctx, serverID)
	if err != nil {
		return nil, err
	}

	previous := server.InviteCode
	for server.InviteCode == previous {
		server.InviteCode = uuid.NewString()
	}

	if err := s.db.UpdateServerInviteCode(ctx, server); err != nil {
		s.log.Error("internal error updating invite code", zap.Error(err))
		return nil, lib.InternalError()
	}

	s.log.Info("server invite code rotated", zap.Uint("id", server.ID))
	s.publish(ctx, eventpkg.SERVER_INVITE_ROTATE, eventpkg.ServerInviteRotateMessage{
		ServerID: server.ID,
	})

	return server, nil
}

func (s *CommunityServiceImpl) UpdateServer(ctx context.Context, serverID uint, name, imageURL *string) (*orm.Server, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, lib.ValidationError("SERVER_NAME_REQUIRED", "Server name is required")
	}

	server, err := s.selectServer(ctx, serverID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		server.Name = strings.TrimSpace(*name)
	}
	if imageURL != nil {
		server.ImageURL = *imageURL
	}

	if err := s.db.UpdateServer(ctx, server); err != nil {
		s.log.Error("internal error updating server", zap.Error(err))
		return nil, lib.InternalError()
	}

	s.publish(ctx, eventpkg.SERVER_UPDATE, eventpkg.ServerUpdateMessage{
		ServerID: server.ID,
		Name:     server.Name,
		ImageURL: server.ImageURL,
	})

	return server, nil
}

func (s *CommunityServiceImpl) JoinServer(ctx context.Context, inviteCode, email string) (*orm.Server, error) {
	profile, err := s.selectProfileByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	server, err := s.GetServerByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}

	_, err = s.policy.RoleOf(ctx, profile.ID, server.ID)
	switch {
	case err == nil:
		// Idempotency: already a member, keep the existing role.
	case errors.Is(err, lib.ErrNotMember):
		guest := &orm.Member{
			Role:      orm.MemberRoleGuest,
			ProfileID: profile.ID,
			ServerID:  server.ID,
		}
		err = s.db.InsertMember(ctx, guest)
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			s.log.Error("error inserting member", zap.Error(err))
			return nil, lib.InternalError()
		}
		if err == nil {
			s.publish(ctx, eventpkg.SERVER_JOIN, eventpkg.ServerJoinMessage{
				ServerID:  server.ID,
				ProfileID: profile.ID,
				Role:      string(guest.Role),
			})
		}
	default:
		return nil, lib.InternalError()
	}

	return s.reloadServer(ctx, server.ID)
}

func (s *CommunityServiceImpl) CreateChannel(ctx context.Context, serverID uint, email, name, channelType string) (*orm.Server, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, lib.ValidationError("CHANNEL_NAME_REQUIRED", "Channel name is required")
	}

	kind := orm.ChannelTypeText
	if channelType != "" {
		kind = orm.ChannelType(strings.ToUpper(channelType))
		if !kind.Valid() {
			return nil, lib.ValidationError("CHANNEL_TYPE_INVALID", "Channel type must be one of TEXT, AUDIO, VIDEO")
		}
	}

	profile, err := s.selectProfileByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	role, err := s.policy.RoleOf(ctx, profile.ID, serverID)
	if err != nil && !errors.Is(err, lib.ErrNotMember) {
		return nil, lib.InternalError()
	}
	if !s.policy.Authorize(role, member.ChannelManagers...) {
		return nil, lib.ForbiddenError("Only admins and moderators can create channels")
	}

	channel := &orm.Channel{
		Name:      name,
		Type:      kind,
		ServerID:  serverID,
		ProfileID: profile.ID,
	}
	if err := s.db.InsertChannel(ctx, channel); err != nil {
		s.log.Error("internal error inserting channel", zap.Error(err))
		return nil, lib.InternalError()
	}

	s.log.Info("channel created",
		zap.Uint("id", channel.ID),
		zap.Uint("server_id", serverID),
		zap.String("type", string(channel.Type)),
	)
	s.publish(ctx, eventpkg.CHANNEL_CREATE, eventpkg.ChannelCreateMessage{
		ServerID:  serverID,
		ChannelID: channel.ID,
		ProfileID: profile.ID,
		Name:      channel.Name,
		Type:      string(channel.Type),
	})

	return s.reloadServer(ctx, serverID)
}

func (s *CommunityServiceImpl) selectProfileByEmail(ctx context.Context, email string) (*orm.Profile, error) {
	if email == "" {
		return nil, lib.ProfileNotFoundError()
	}

	profile, err := s.db.SelectProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.ProfileNotFoundError()
		}
		s.log.Error("error selecting profile by email", zap.Error(err))
		return nil, lib.InternalError()
	}
	return profile, nil
}

func (s *CommunityServiceImpl) selectServer(ctx context.Context, serverID uint) (*orm.Server, error) {
	server, err := s.db.SelectServerByID(ctx, serverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.ServerNotFoundError()
		}
		s.log.Error("error selecting server by id", zap.Error(err))
		return nil, lib.InternalError()
	}
	return server, nil
}

func (s *CommunityServiceImpl) reloadServer(ctx context.Context, serverID uint) (*orm.Server, error) {
	server, err := s.db.SelectServerWithRelations(ctx, serverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lib.ServerNotFoundError()
		}
		s.log.Error("error reloading server", zap.Error(err))
		return nil, lib.InternalError()
	}
	return server, nil
}

// publish is fire-and-report: the write already committed, so a broker
// failure is logged and swallowed.
func (s *CommunityServiceImpl) publish(ctx context.Context, event string, message interface{}) {
	if s.broker == nil {
		return
	}
	if err := s.broker.WriteMessage(ctx, event, message); err != nil {
		s.log.Warn("failed to publish event", zap.String("event", event), zap.Error(err))
	}
}
