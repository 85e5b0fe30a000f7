package repository

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the3dsandwich/csci3100-grp31/internal/profiles/domain"
)

// setupTestFirestore connects to the Firestore emulator.
// Skips the test when FIRESTORE_EMULATOR_HOST is not set.
func setupTestFirestore(t *testing.T) *firestore.Client {
	t.Helper()

	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set, skipping Firestore integration test")
	}

	client, err := firestore.NewClient(context.Background(), "test-project")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

func TestRepo_CreateGetPatch(t *testing.T) {
	client := setupTestFirestore(t)
	repo := New(client)
	ctx := context.Background()

	uid := "test-" + uuid.NewString()

	t.Run("create then get", func(t *testing.T) {
		err := repo.Create(ctx, domain.NewDefaultProfile(uid))
		require.NoError(t, err)

		p, err := repo.Get(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, uid, p.UID)
		assert.Equal(t, domain.DefaultUsername, p.Username)
	})

	t.Run("duplicate create reports ErrProfileExists", func(t *testing.T) {
		err := repo.Create(ctx, domain.NewDefaultProfile(uid))
		assert.ErrorIs(t, err, domain.ErrProfileExists)
	})

	t.Run("patch merges fields", func(t *testing.T) {
		err := repo.Patch(ctx, uid, map[string]interface{}{
			"username":   "alice",
			"university": "CUHK",
		})
		require.NoError(t, err)

		p, err := repo.Get(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, "alice", p.Username)
		assert.Equal(t, "CUHK", p.University)
	})

	t.Run("get unknown uid", func(t *testing.T) {
		_, err := repo.Get(ctx, "missing-"+uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("patch unknown uid", func(t *testing.T) {
		err := repo.Patch(ctx, "missing-"+uuid.NewString(), map[string]interface{}{"username": "x"})
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})
}
