package launchhub

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ideaflow/internal/common"
	"github.com/dmitrijs2005/ideaflow/internal/logging"
	"github.com/dmitrijs2005/ideaflow/internal/models"
	"github.com/dmitrijs2005/ideaflow/internal/notify"
	"github.com/dmitrijs2005/ideaflow/internal/storage"
)

type fakeProfile struct {
	status models.LaunchStatus
}

func (f *fakeProfile) AdvanceLaunchStatus(_ context.Context, target models.LaunchStatus) error {
	if f.status.Before(target) {
		f.status = target
	}
	return nil
}

// SetLaunchStatus refuses canceled contexts the way the real write path
// does once it reaches ExecContext.
func (f *fakeProfile) SetLaunchStatus(ctx context.Context, status models.LaunchStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.status = status
	return nil
}

func newTestHub(t *testing.T) (*Hub, *fakeProfile, *storage.Memory, *[]func()) {
	t.Helper()
	mem := storage.NewMemory()
	profile := &fakeProfile{status: models.LaunchNotStarted}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	notifier := notify.New(time.Hour)
	h := New(mem, profile, notifier, log, 4*time.Second)

	var pending []func()
	h.after = func(_ time.Duration, f func()) *time.Timer {
		pending = append(pending, f)
		return time.NewTimer(time.Hour)
	}
	return h, profile, mem, &pending
}

func TestUploadAsset_PersistsAndAdvances(t *testing.T) {
	ctx := context.Background()
	h, profile, mem, _ := newTestHub(t)

	image := []byte{0x89, 0x50, 0x4e, 0x47}
	require.NoError(t, h.UploadAsset(ctx, PlatformGoogle, image))

	stored, err := mem.Load(ctx, common.KeyIconGP)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(image), string(stored))
	assert.Equal(t, models.LaunchAssetPreparation, profile.status)

	payload, ok := h.Asset(PlatformGoogle)
	assert.True(t, ok)
	assert.Equal(t, string(stored), payload)
}

func TestUploadAsset_AppleDoesNotTouchStatus(t *testing.T) {
	ctx := context.Background()
	h, profile, _, _ := newTestHub(t)

	require.NoError(t, h.UploadAsset(ctx, PlatformApple, []byte{1}))
	assert.Equal(t, models.LaunchNotStarted, profile.status)
}

func TestUploadAsset_NeverRegressesStatus(t *testing.T) {
	ctx := context.Background()
	h, profile, _, _ := newTestHub(t)
	profile.status = models.LaunchStoreReview

	require.NoError(t, h.UploadAsset(ctx, PlatformGoogle, []byte{1}))
	assert.Equal(t, models.LaunchStoreReview, profile.status)
}

func TestRemoveAsset(t *testing.T) {
	ctx := context.Background()
	h, _, mem, _ := newTestHub(t)

	require.NoError(t, h.UploadAsset(ctx, PlatformApple, []byte{1}))
	require.NoError(t, h.RemoveAsset(ctx, PlatformApple))

	_, ok := h.Asset(PlatformApple)
	assert.False(t, ok)
	stored, err := mem.Load(ctx, common.KeyIconAS)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestDeploy_RefusedWithoutGoogleAsset(t *testing.T) {
	ctx := context.Background()
	h, profile, _, _ := newTestHub(t)

	err := h.Deploy(ctx)
	require.ErrorIs(t, err, common.ErrAssetMissing)
	assert.False(t, h.Deploying(), "refusal must not enter the deploying state")
	assert.Equal(t, models.LaunchNotStarted, profile.status)
}

func TestDeploy_TransitionsAfterDelay(t *testing.T) {
	ctx := context.Background()
	h, profile, _, pending := newTestHub(t)

	require.NoError(t, h.UploadAsset(ctx, PlatformGoogle, []byte{1}))
	require.NoError(t, h.Deploy(ctx))
	assert.True(t, h.Deploying())
	assert.Equal(t, models.LaunchAssetPreparation, profile.status, "status changes only after the delay")

	// A second deploy while one is running is refused.
	require.ErrorIs(t, h.Deploy(ctx), common.ErrDeployInFlight)

	// Fire the simulated delay.
	require.Len(t, *pending, 1)
	(*pending)[0]()

	assert.False(t, h.Deploying())
	assert.Equal(t, models.LaunchStoreReview, profile.status)
}

// The timer fires well after the triggering call; if the caller's context
// was request-scoped and canceled in between, the status write must still
// go through.
func TestDeploy_StatusWriteSurvivesCallerCancellation(t *testing.T) {
	h, profile, _, pending := newTestHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, h.UploadAsset(ctx, PlatformGoogle, []byte{1}))
	require.NoError(t, h.Deploy(ctx))

	cancel()
	require.Len(t, *pending, 1)
	(*pending)[0]()

	assert.False(t, h.Deploying())
	assert.Equal(t, models.LaunchStoreReview, profile.status)
}

func TestReadiness_StepFunction(t *testing.T) {
	ctx := context.Background()
	h, _, _, _ := newTestHub(t)

	assert.Equal(t, 50, h.Readiness())

	require.NoError(t, h.UploadAsset(ctx, PlatformGoogle, []byte{1}))
	assert.Equal(t, 65, h.Readiness())

	require.NoError(t, h.UploadAsset(ctx, PlatformApple, []byte{1}))
	assert.Equal(t, 80, h.Readiness())

	require.NoError(t, h.RemoveAsset(ctx, PlatformGoogle))
	assert.Equal(t, 65, h.Readiness())
}

func TestLoad_RestoresSlots(t *testing.T) {
	ctx := context.Background()
	h, _, mem, _ := newTestHub(t)

	require.NoError(t, h.UploadAsset(ctx, PlatformGoogle, []byte{1, 2, 3}))

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	fresh := New(mem, &fakeProfile{}, notify.New(time.Hour), log, time.Second)
	require.NoError(t, fresh.Load(ctx))

	assert.Equal(t, 65, fresh.Readiness())
	payload, ok := fresh.Asset(PlatformGoogle)
	assert.True(t, ok)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), payload)
}
