package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the3dsandwich/csci3100-grp31/internal/profiles/domain"
)

type fakeProfileStore struct {
	profiles map[string]domain.UserProfile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]domain.UserProfile)}
}

func (f *fakeProfileStore) Create(_ context.Context, p domain.UserProfile) error {
	if _, ok := f.profiles[p.UID]; ok {
		return domain.ErrProfileExists
	}
	f.profiles[p.UID] = p
	return nil
}

func (f *fakeProfileStore) Get(_ context.Context, uid string) (*domain.UserProfile, error) {
	p, ok := f.profiles[uid]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (f *fakeProfileStore) Patch(_ context.Context, uid string, fields map[string]interface{}) error {
	p, ok := f.profiles[uid]
	if !ok {
		return domain.ErrProfileNotFound
	}
	if v, ok := fields["username"]; ok {
		p.Username = v.(string)
	}
	if v, ok := fields["university"]; ok {
		p.University = v.(string)
	}
	if v, ok := fields["description"]; ok {
		p.Description = v.(string)
	}
	if v, ok := fields["interested_sports"]; ok {
		p.InterestedSports = v.([]string)
	}
	if v, ok := fields["profileImageSrc"]; ok {
		p.ProfileImageSrc = v.(string)
	}
	f.profiles[uid] = p
	return nil
}

func strPtr(s string) *string { return &s }

func TestProfileService_EnsureAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("creates placeholder profile on first login", func(t *testing.T) {
		store := newFakeProfileStore()
		svc := NewProfileService(store)

		err := svc.EnsureAccount(ctx, "u1")
		require.NoError(t, err)

		p, err := svc.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", p.UID)
		assert.Equal(t, domain.DefaultUsername, p.Username)
	})

	t.Run("repeat bootstrap leaves existing profile untouched", func(t *testing.T) {
		store := newFakeProfileStore()
		svc := NewProfileService(store)

		require.NoError(t, svc.EnsureAccount(ctx, "u1"))
		require.NoError(t, svc.Update(ctx, "u1", UpdateInput{Username: strPtr("alice")}))

		// Second login must not reset the edited username.
		require.NoError(t, svc.EnsureAccount(ctx, "u1"))

		p, err := svc.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "alice", p.Username)
	})

	t.Run("rejects empty uid", func(t *testing.T) {
		svc := NewProfileService(newFakeProfileStore())
		err := svc.EnsureAccount(ctx, "  ")
		assert.ErrorIs(t, err, domain.ErrInvalidProfile)
	})
}

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*ProfileService, *fakeProfileStore) {
		store := newFakeProfileStore()
		svc := NewProfileService(store)
		require.NoError(t, svc.EnsureAccount(ctx, "u1"))
		return svc, store
	}

	t.Run("patches only the provided fields", func(t *testing.T) {
		svc, _ := setup(t)

		err := svc.Update(ctx, "u1", UpdateInput{
			Username:   strPtr("  alice  "),
			University: strPtr("CUHK"),
		})
		require.NoError(t, err)

		p, err := svc.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "alice", p.Username)
		assert.Equal(t, "CUHK", p.University)
		assert.Equal(t, "", p.Description)
	})

	t.Run("rejects blank username", func(t *testing.T) {
		svc, _ := setup(t)
		err := svc.Update(ctx, "u1", UpdateInput{Username: strPtr("   ")})
		assert.ErrorIs(t, err, domain.ErrInvalidProfile)
	})

	t.Run("rejects empty patch", func(t *testing.T) {
		svc, _ := setup(t)
		err := svc.Update(ctx, "u1", UpdateInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidProfile)
	})

	t.Run("unknown uid", func(t *testing.T) {
		svc, _ := setup(t)
		err := svc.Update(ctx, "ghost", UpdateInput{Username: strPtr("x")})
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})
}

func TestProfileService_SetProfileImage(t *testing.T) {
	ctx := context.Background()
	store := newFakeProfileStore()
	svc := NewProfileService(store)
	require.NoError(t, svc.EnsureAccount(ctx, "u1"))

	t.Run("records the uploaded url", func(t *testing.T) {
		err := svc.SetProfileImage(ctx, "u1", "https://example.com/img.png")
		require.NoError(t, err)

		p, err := svc.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/img.png", p.ProfileImageSrc)
	})

	t.Run("rejects empty url", func(t *testing.T) {
		err := svc.SetProfileImage(ctx, "u1", " ")
		assert.ErrorIs(t, err, domain.ErrInvalidProfile)
	})
}
