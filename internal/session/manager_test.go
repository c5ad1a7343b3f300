package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ideaflow/internal/common"
	"github.com/dmitrijs2005/ideaflow/internal/logging"
	"github.com/dmitrijs2005/ideaflow/internal/models"
	"github.com/dmitrijs2005/ideaflow/internal/storage"
)

func newTestManager(t *testing.T) (*Manager, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := NewManager(mem, log)
	m.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return m, mem
}

func TestRegister_FirstAccountIsAdmin(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	first, err := m.Register(ctx, "a@example.com", "alice", []byte("pw-a"))
	require.NoError(t, err)
	assert.True(t, first.IsAdmin)
	assert.Equal(t, models.PlanFree, first.SubscriptionPlan)
	assert.Equal(t, models.LaunchNotStarted, first.MobileLaunchStatus)
	assert.NotContains(t, first.PasswordHash, "pw-a")

	second, err := m.Register(ctx, "b@example.com", "bob", []byte("pw-b"))
	require.NoError(t, err)
	assert.False(t, second.IsAdmin)
	assert.NotEqual(t, first.ID, second.ID)

	// Registration signs the new account in.
	got, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.Register(ctx, "a@example.com", "alice", []byte("pw"))
	require.NoError(t, err)

	_, err = m.Register(ctx, "A@Example.COM", "impostor", []byte("pw"))
	require.ErrorIs(t, err, common.ErrUserExists)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	u, err := m.Register(ctx, "a@example.com", "alice", []byte("secret"))
	require.NoError(t, err)
	require.NoError(t, m.SignOut(ctx))

	_, err = m.Authenticate(ctx, "a@example.com", []byte("wrong"))
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, ok := m.Current()
	assert.False(t, ok)

	got, err := m.Authenticate(ctx, "a@example.com", []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	_, ok = m.Current()
	assert.True(t, ok)
}

func TestSignOut_RemovesPersistedIdentity(t *testing.T) {
	ctx := context.Background()
	m, mem := newTestManager(t)

	_, err := m.Register(ctx, "a@example.com", "alice", []byte("pw"))
	require.NoError(t, err)

	data, err := mem.Load(ctx, common.KeyAuth)
	require.NoError(t, err)
	require.NotNil(t, data)

	require.NoError(t, m.SignOut(ctx))
	data, err = mem.Load(ctx, common.KeyAuth)
	require.NoError(t, err)
	assert.Nil(t, data)

	// Second sign-out is a no-op.
	require.NoError(t, m.SignOut(ctx))
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	m, mem := newTestManager(t)

	u, err := m.Register(ctx, "a@example.com", "alice", []byte("pw"))
	require.NoError(t, err)

	fresh := NewManager(mem, m.log)
	require.NoError(t, fresh.Restore(ctx))
	got, ok := fresh.Current()
	require.True(t, ok)
	assert.Equal(t, u.ID, got.ID)
}

func TestUpdateProfile_NoSessionIsSilent(t *testing.T) {
	ctx := context.Background()
	m, mem := newTestManager(t)

	name := "ghost"
	before := mem.Writes()
	require.NoError(t, m.UpdateProfile(ctx, ProfileUpdate{Username: &name}))
	assert.Equal(t, before, mem.Writes(), "no session means no write")
}

func TestUpdateProfile_WritesThroughToRegistry(t *testing.T) {
	ctx := context.Background()
	m, mem := newTestManager(t)

	u, err := m.Register(ctx, "a@example.com", "alice", []byte("pw"))
	require.NoError(t, err)

	name := "alice-renamed"
	require.NoError(t, m.UpdateProfile(ctx, ProfileUpdate{Username: &name}))

	got, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "alice-renamed", got.Username)
	assert.Equal(t, "a@example.com", got.Email, "untouched fields survive the merge")

	var users []models.User
	ok, err = storage.LoadJSON(ctx, mem, common.KeyUsers, &users)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, users, 1)
	assert.Equal(t, u.ID, users[0].ID)
	assert.Equal(t, "alice-renamed", users[0].Username)
}

// faultyStore lets a test break the write path after setup is done.
type faultyStore struct {
	*storage.Memory
	failSaves bool
}

func (s *faultyStore) Save(ctx context.Context, key string, value []byte) error {
	if s.failSaves {
		return errors.New("disk full")
	}
	return s.Memory.Save(ctx, key, value)
}

func TestUpdateProfile_FailedWriteKeepsIdentityUnchanged(t *testing.T) {
	ctx := context.Background()
	st := &faultyStore{Memory: storage.NewMemory()}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := NewManager(st, log)

	_, err := m.Register(ctx, "a@example.com", "alice", []byte("pw"))
	require.NoError(t, err)

	st.failSaves = true
	name := "alice-renamed"
	require.Error(t, m.UpdateProfile(ctx, ProfileUpdate{Username: &name}))

	got, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "alice", got.Username, "memory must keep matching what is persisted")
}

func TestUpdateSubscription(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.Register(ctx, "a@example.com", "alice", []byte("pw"))
	require.NoError(t, err)

	require.NoError(t, m.UpdateSubscription(ctx, models.PlanPro))

	got, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, models.PlanPro, got.SubscriptionPlan)
	assert.True(t, got.SubscriptionActive)
	assert.NotEmpty(t, got.ExternalSubscriptionID)
}

func TestAdvanceLaunchStatus_NeverRegresses(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.Register(ctx, "a@example.com", "alice", []byte("pw"))
	require.NoError(t, err)

	require.NoError(t, m.AdvanceLaunchStatus(ctx, models.LaunchAssetPreparation))
	got, _ := m.Current()
	assert.Equal(t, models.LaunchAssetPreparation, got.MobileLaunchStatus)

	require.NoError(t, m.SetLaunchStatus(ctx, models.LaunchStoreReview))
	require.NoError(t, m.AdvanceLaunchStatus(ctx, models.LaunchAssetPreparation))
	got, _ = m.Current()
	assert.Equal(t, models.LaunchStoreReview, got.MobileLaunchStatus, "advance must not move backwards")
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	alice, err := m.Register(ctx, "a@example.com", "alice", []byte("pw"))
	require.NoError(t, err)
	bob, err := m.Register(ctx, "b@example.com", "bob", []byte("pw"))
	require.NoError(t, err)

	require.NoError(t, m.DeleteUser(ctx, alice.ID))
	users, err := m.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, bob.ID, users[0].ID)

	// Unknown id is a silent no-op.
	require.NoError(t, m.DeleteUser(ctx, "nope"))

	// Deleting the signed-in account ends the session.
	require.NoError(t, m.DeleteUser(ctx, bob.ID))
	_, ok := m.Current()
	assert.False(t, ok)
}

func TestPasswordVerifier(t *testing.T) {
	hash, err := hashPassword([]byte("hunter2"))
	require.NoError(t, err)

	assert.True(t, verifyPassword(hash, []byte("hunter2")))
	assert.False(t, verifyPassword(hash, []byte("hunter3")))
	assert.False(t, verifyPassword("garbage", []byte("hunter2")))
}
