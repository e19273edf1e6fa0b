package profile_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stormhead-org/community/internal/lib"
	"github.com/stormhead-org/community/internal/orm"
	"github.com/stormhead-org/community/internal/orm/ormtest"
	"github.com/stormhead-org/community/internal/services"
	"github.com/stormhead-org/community/internal/services/profile"
)

func TestEnsureProfileIsIdempotent(t *testing.T) {
	ctx := context.Background()
	service := profile.NewProfileService(ormtest.NewClient(t), zap.NewNop())

	identity := services.ProfileIdentity{Email: "a@example.com", Name: "A", ImageURL: "http://x/a.png"}
	first, err := service.EnsureProfile(ctx, identity)
	require.NoError(t, err)
	require.Equal(t, "A", first.Name)

	identity.Name = "Changed"
	second, err := service.EnsureProfile(ctx, identity)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "A", second.Name)
}

func TestEnsureProfileConcurrent(t *testing.T) {
	ctx := context.Background()
	service := profile.NewProfileService(ormtest.NewClient(t), zap.NewNop())

	const workers = 8
	ids := make([]uint, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := service.EnsureProfile(ctx, services.ProfileIdentity{Email: "same@example.com"})
			if err == nil {
				ids[i] = p.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		require.NotZero(t, id)
		require.Equal(t, ids[0], id)
	}
}

// racingStore commits a profile for the same email right before the
// service's own insert, so the insert always hits the unique index.
type racingStore struct {
	*orm.PostgresClient
	winner *orm.Profile
}

func (s *racingStore) InsertProfile(ctx context.Context, p *orm.Profile) error {
	s.winner = &orm.Profile{Email: p.Email, Name: "winner"}
	if err := s.PostgresClient.InsertProfile(ctx, s.winner); err != nil {
		return err
	}
	return s.PostgresClient.InsertProfile(ctx, p)
}

func TestEnsureProfileRecoversFromInsertConflict(t *testing.T) {
	ctx := context.Background()
	store := &racingStore{PostgresClient: ormtest.NewClient(t)}
	service := profile.NewProfileServiceWithStore(store, zap.NewNop())

	p, err := service.EnsureProfile(ctx, services.ProfileIdentity{Email: "race@example.com", Name: "loser"})
	require.NoError(t, err)
	require.NotNil(t, store.winner)
	require.Equal(t, store.winner.ID, p.ID)
	require.Equal(t, "winner", p.Name)
}

func TestEnsureProfileRequiresEmail(t *testing.T) {
	service := profile.NewProfileService(ormtest.NewClient(t), zap.NewNop())

	_, err := service.EnsureProfile(context.Background(), services.ProfileIdentity{Email: " "})
	require.Equal(t, lib.KindValidation, lib.KindOf(err))
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	db := ormtest.NewClient(t)
	service := profile.NewProfileService(db, zap.NewNop())

	created, err := service.EnsureProfile(ctx, services.ProfileIdentity{Email: "a@example.com"})
	require.NoError(t, err)
	server := &orm.Server{Name: "Devs", InviteCode: "code", ProfileID: created.ID}
	require.NoError(t, db.InsertServer(ctx, server))
	require.NoError(t, db.InsertChannel(ctx, &orm.Channel{Name: "general", Type: orm.ChannelTypeText, ServerID: server.ID, ProfileID: created.ID}))

	byID, err := service.GetProfileByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, byID.Servers, 1)
	require.Len(t, byID.Servers[0].Channels, 1)

	byEmail, err := service.GetProfileByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	_, err = service.GetProfileByID(ctx, created.ID+1)
	require.Equal(t, lib.KindProfileNotFound, lib.KindOf(err))

	_, err = service.GetProfileByEmail(ctx, "ghost@example.com")
	require.Equal(t, lib.KindProfileNotFound, lib.KindOf(err))
}
