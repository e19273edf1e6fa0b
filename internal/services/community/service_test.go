package community_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	eventpkg "github.com/stormhead-org/community/internal/event"
	"github.com/stormhead-org/community/internal/lib"
	"github.com/stormhead-org/community/internal/orm"
	"github.com/stormhead-org/community/internal/orm/ormtest"
	"github.com/stormhead-org/community/internal/services"
	"github.com/stormhead-org/community/internal/services/community"
	"github.com/stormhead-org/community/internal/services/member"
)

type recordingBroker struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (b *recordingBroker) WriteMessage(ctx context.Context, event string, message interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return b.err
}

type fixture struct {
	db      *orm.PostgresClient
	broker  *recordingBroker
	service services.CommunityService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := ormtest.NewClient(t)
	log := zap.NewNop()
	broker := &recordingBroker{}
	return &fixture{
		db:      db,
		broker:  broker,
		service: community.NewCommunityService(db, member.NewMemberPolicy(db, log), broker, log),
	}
}

func (f *fixture) profile(t *testing.T, email string) *orm.Profile {
	t.Helper()
	profile := &orm.Profile{Email: email, Name: email}
	require.NoError(t, f.db.InsertProfile(context.Background(), profile))
	return profile
}

func requireKind(t *testing.T, err error, kind lib.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, lib.KindOf(err), "unexpected error: %v", err)
}

func TestCreateServerProvisionsDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.profile(t, "owner@example.com")

	server, err := f.service.CreateServer(ctx, owner.ID, "Devs", "http://x/img.png")
	require.NoError(t, err)

	require.Equal(t, "Devs", server.Name)
	require.Equal(t, "http://x/img.png", server.ImageURL)
	require.NotEmpty(t, server.InviteCode)
	require.Len(t, server.Channels, 1)
	require.Equal(t, "general", server.Channels[0].Name)
	require.Equal(t, orm.ChannelTypeText, server.Channels[0].Type)
	require.Len(t, server.Members, 1)
	require.Equal(t, owner.ID, server.Members[0].ProfileID)
	require.Equal(t, orm.MemberRoleAdmin, server.Members[0].Role)
	require.Equal(t, []string{eventpkg.SERVER_CREATE}, f.broker.events)
}

func TestCreateServerUnknownProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.service.CreateServer(ctx, 42, "Devs", "http://x/img.png")
	requireKind(t, err, lib.KindProfileNotFound)

	servers, err := f.db.SelectServersByMemberEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	require.Empty(t, servers)
	require.Empty(t, f.broker.events)
}

func TestCreateServerRequiresName(t *testing.T) {
	f := newFixture(t)
	owner := f.profile(t, "owner@example.com")

	_, err := f.service.CreateServer(context.Background(), owner.ID, "  ", "http://x/img.png")
	requireKind(t, err, lib.KindValidation)
}

func TestCreateServerTwiceGivesDistinctServers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.profile(t, "owner@example.com")

	first, err := f.service.CreateServer(ctx, owner.ID, "Devs", "")
	require.NoError(t, err)
	second, err := f.service.CreateServer(ctx, owner.ID, "Devs", "")
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.NotEqual(t, first.InviteCode, second.InviteCode)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture(t)
	f.broker.err = errors.New("broker down")
	owner := f.profile(t, "owner@example.com")

	_, err := f.service.CreateServer(context.Background(), owner.ID, "Devs", "")
	require.NoError(t, err)
}

func TestGetServerScopedToMembers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.profile(t, "a@example.com")
	f.profile(t, "b@example.com")

	server, err := f.service.CreateServer(ctx, a.ID, "Devs", "")
	require.NoError(t, err)

	loaded, err := f.service.GetServer(ctx, server.ID, "a@example.com")
	require.NoError(t, err)
	require.Len(t, loaded.Channels, 1)
	require.Len(t, loaded.Members, 1)

	_, err = f.service.GetServer(ctx, server.ID, "b@example.com")
	requireKind(t, err, lib.KindServerNotFound)

	_, err = f.service.GetServer(ctx, server.ID+100, "a@example.com")
	requireKind(t, err, lib.KindServerNotFound)

	_, err = f.service.GetServer(ctx, server.ID, "ghost@example.com")
	requireKind(t, err, lib.KindProfileNotFound)
}

func TestListServersForMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.profile(t, "a@example.com")
	f.profile(t, "b@example.com")

	_, err := f.service.CreateServer(ctx, a.ID, "One", "")
	require.NoError(t, err)
	_, err = f.service.CreateServer(ctx, a.ID, "Two", "")
	require.NoError(t, err)

	servers, err := f.service.ListServersForMember(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, servers, 2)

	servers, err = f.service.ListServersForMember(ctx, "b@example.com")
	require.NoError(t, err)
	require.NotNil(t, servers)
	require.Empty(t, servers)

	servers, err = f.service.ListServersForMember(ctx, "ghost@example.com")
	require.NoError(t, err)
	require.Empty(t, servers)
}

func TestRotateInviteCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.profile(t, "owner@example.com")

	server, err := f.service.CreateServer(ctx, owner.ID, "Devs", "")
	require.NoError(t, err)
	previous := server.InviteCode

	rotated, err := f.service.RotateInviteCode(ctx, server.ID)
	require.NoError(t, err)
	require.NotEqual(t, previous, rotated.InviteCode)

	_, err = f.service.GetServerByInviteCode(ctx, previous)
	requireKind(t, err, lib.KindServerNotFound)

	found, err := f.service.GetServerByInviteCode(ctx, rotated.InviteCode)
	require.NoError(t, err)
	require.Equal(t, server.ID, found.ID)

	_, err = f.service.RotateInviteCode(ctx, server.ID+100)
	requireKind(t, err, lib.KindServerNotFound)
}

func TestUpdateServerIsPartial(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.profile(t, "owner@example.com")

	server, err := f.service.CreateServer(ctx, owner.ID, "Devs", "http://x/old.png")
	require.NoError(t, err)

	name := "Renamed"
	updated, err := f.service.UpdateServer(ctx, server.ID, &name, nil)
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, "http://x/old.png", updated.ImageURL)
	require.Equal(t, server.InviteCode, updated.InviteCode)

	image := "http://x/new.png"
	updated, err = f.service.UpdateServer(ctx, server.ID, nil, &image)
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, "http://x/new.png", updated.ImageURL)

	_, err = f.service.UpdateServer(ctx, server.ID+100, &name, nil)
	requireKind(t, err, lib.KindServerNotFound)

	empty := ""
	_, err = f.service.UpdateServer(ctx, server.ID, &empty, nil)
	requireKind(t, err, lib.KindValidation)
}

func TestCreateChannel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.profile(t, "owner@example.com")

	server, err := f.service.CreateServer(ctx, owner.ID, "Devs", "")
	require.NoError(t, err)

	updated, err := f.service.CreateChannel(ctx, server.ID, "owner@example.com", "voice", "AUDIO")
	require.NoError(t, err)
	require.Len(t, updated.Channels, 2)
	require.Equal(t, "voice", updated.Channels[1].Name)
	require.Equal(t, orm.ChannelTypeAudio, updated.Channels[1].Type)

	updated, err = f.service.CreateChannel(ctx, server.ID, "owner@example.com", "chat", "")
	require.NoError(t, err)
	require.Len(t, updated.Channels, 3)
	require.Equal(t, orm.ChannelTypeText, updated.Channels[2].Type)
}

func TestCreateChannelValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.profile(t, "owner@example.com")

	server, err := f.service.CreateServer(ctx, owner.ID, "Devs", "")
	require.NoError(t, err)

	tests := []struct {
		name        string
		email       string
		channelName string
		channelType string
		kind        lib.ErrorKind
	}{
		{"empty name as admin", "owner@example.com", "", "TEXT", lib.KindValidation},
		{"empty name as stranger", "ghost@example.com", "", "TEXT", lib.KindValidation},
		{"unknown type", "owner@example.com", "x", "HOLOGRAM", lib.KindValidation},
		{"unknown profile", "ghost@example.com", "x", "TEXT", lib.KindProfileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateChannel(ctx, server.ID, tt.email, tt.channelName, tt.channelType)
			requireKind(t, err, tt.kind)
		})
	}

	count, err := f.db.CountChannelsByServerID(ctx, server.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestCreateChannelForbidden(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.profile(t, "owner@example.com")
	guest := f.profile(t, "guest@example.com")
	moderator := f.profile(t, "moderator@example.com")
	f.profile(t, "stranger@example.com")

	server, err := f.service.CreateServer(ctx, owner.ID, "Devs", "")
	require.NoError(t, err)
	require.NoError(t, f.db.InsertMember(ctx, &orm.Member{Role: orm.MemberRoleGuest, ProfileID: guest.ID, ServerID: server.ID}))
	require.NoError(t, f.db.InsertMember(ctx, &orm.Member{Role: orm.MemberRoleModerator, ProfileID: moderator.ID, ServerID: server.ID}))

	_, err = f.service.CreateChannel(ctx, server.ID, "guest@example.com", "x", "TEXT")
	requireKind(t, err, lib.KindForbidden)

	_, err = f.service.CreateChannel(ctx, server.ID, "stranger@example.com", "x", "TEXT")
	requireKind(t, err, lib.KindForbidden)

	count, err := f.db.CountChannelsByServerID(ctx, server.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	updated, err := f.service.CreateChannel(ctx, server.ID, "moderator@example.com", "mods", "VIDEO")
	require.NoError(t, err)
	require.Len(t, updated.Channels, 2)
}

func TestJoinServer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.profile(t, "owner@example.com")
	f.profile(t, "guest@example.com")

	server, err := f.service.CreateServer(ctx, owner.ID, "Devs", "")
	require.NoError(t, err)

	joined, err := f.service.JoinServer(ctx, server.InviteCode, "guest@example.com")
	require.NoError(t, err)
	require.Len(t, joined.Members, 2)
	require.Equal(t, orm.MemberRoleGuest, joined.Members[1].Role)

	joined, err = f.service.JoinServer(ctx, server.InviteCode, "guest@example.com")
	require.NoError(t, err)
	require.Len(t, joined.Members, 2)

	// The owner keeps ADMIN when following their own invite.
	joined, err = f.service.JoinServer(ctx, server.InviteCode, "owner@example.com")
	require.NoError(t, err)
	require.Equal(t, orm.MemberRoleAdmin, joined.Members[0].Role)

	_, err = f.service.JoinServer(ctx, server.InviteCode, "ghost@example.com")
	requireKind(t, err, lib.KindProfileNotFound)
}

func TestJoinServerWithSupersededCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.profile(t, "owner@example.com")
	f.profile(t, "guest@example.com")

	server, err := f.service.CreateServer(ctx, owner.ID, "Devs", "")
	require.NoError(t, err)
	_, err = f.service.RotateInviteCode(ctx, server.ID)
	require.NoError(t, err)

	_, err = f.service.JoinServer(ctx, server.InviteCode, "guest@example.com")
	requireKind(t, err, lib.KindServerNotFound)
}
