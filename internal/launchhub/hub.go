// Package launchhub implements the simulated mobile-store deployment
// workflow: two icon asset slots persisted to the store, a timed deploy
// transition and a derived readiness percentage.
package launchhub

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/ideaflow/internal/common"
	"github.com/dmitrijs2005/ideaflow/internal/logging"
	"github.com/dmitrijs2005/ideaflow/internal/models"
	"github.com/dmitrijs2005/ideaflow/internal/notify"
	"github.com/dmitrijs2005/ideaflow/internal/storage"
)

// Platform names an asset slot.
type Platform string

const (
	PlatformGoogle Platform = "Google"
	PlatformApple  Platform = "Apple"
)

// Readiness constants: a base value plus a fixed increment per uploaded
// asset. Documented and stable because the progress indicator is the only
// consumer and tests pin the step function.
const (
	readinessBase      = 50
	readinessIncrement = 15
)

func storageKey(p Platform) (string, error) {
	switch p {
	case PlatformGoogle:
		return common.KeyIconGP, nil
	case PlatformApple:
		return common.KeyIconAS, nil
	}
	return "", fmt.Errorf("unknown platform %q", p)
}

// Profile is the slice of the session manager the hub drives.
type Profile interface {
	AdvanceLaunchStatus(ctx context.Context, target models.LaunchStatus) error
	SetLaunchStatus(ctx context.Context, status models.LaunchStatus) error
}

// Hub tracks deployment readiness state.
type Hub struct {
	mu        sync.Mutex
	store     storage.Store
	profile   Profile
	notifier  *notify.Notifier
	log       logging.Logger
	delay     time.Duration
	deploying bool
	slots     map[Platform]string

	// after is a test seam for time.AfterFunc.
	after func(d time.Duration, f func()) *time.Timer
}

func New(store storage.Store, profile Profile, notifier *notify.Notifier, log logging.Logger, deployDelay time.Duration) *Hub {
	return &Hub{
		store:    store,
		profile:  profile,
		notifier: notifier,
		log:      log,
		delay:    deployDelay,
		slots:    make(map[Platform]string),
		after:    time.AfterFunc,
	}
}

// Load restores persisted asset slots.
func (h *Hub) Load(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range []Platform{PlatformGoogle, PlatformApple} {
		key, _ := storageKey(p)
		data, err := h.store.Load(ctx, key)
		if err != nil {
			return err
		}
		if data != nil {
			h.slots[p] = string(data)
		}
	}
	return nil
}

// UploadAsset encodes image into the platform's slot and persists it.
// Uploading the Google asset advances the launch status to Asset
// Preparation unless the account is already further along.
func (h *Hub) UploadAsset(ctx context.Context, platform Platform, image []byte) error {
	key, err := storageKey(platform)
	if err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(image)
	h.mu.Lock()
	h.slots[platform] = encoded
	h.mu.Unlock()

	if err := h.store.Save(ctx, key, []byte(encoded)); err != nil {
		return err
	}

	if platform == PlatformGoogle {
		if err := h.profile.AdvanceLaunchStatus(ctx, models.LaunchAssetPreparation); err != nil {
			return err
		}
	}
	h.log.Info(ctx, "asset uploaded", "platform", platform, "bytes", len(image))
	return nil
}

// RemoveAsset clears the slot and its persisted entry.
func (h *Hub) RemoveAsset(ctx context.Context, platform Platform) error {
	key, err := storageKey(platform)
	if err != nil {
		return err
	}
	h.mu.Lock()
	delete(h.slots, platform)
	h.mu.Unlock()
	return h.store.Remove(ctx, key)
}

// Asset returns the encoded payload in the platform's slot, if present.
func (h *Hub) Asset(platform Platform) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	payload, ok := h.slots[platform]
	return payload, ok
}

// Deploy starts the simulated store deployment. It is refused while a
// deployment runs or while the Google asset slot is empty; the refusal has
// no other effect. Otherwise the hub enters the deploying state and, after
// the configured delay, moves the launch status to Store Review and shows
// a transient success banner.
func (h *Hub) Deploy(ctx context.Context) error {
	h.mu.Lock()
	if h.deploying {
		h.mu.Unlock()
		return common.ErrDeployInFlight
	}
	if _, ok := h.slots[PlatformGoogle]; !ok {
		h.mu.Unlock()
		return common.ErrAssetMissing
	}
	h.deploying = true
	h.mu.Unlock()

	h.log.Info(ctx, "deployment started", "delay", h.delay)
	h.notifier.Show("Deployment Initialized...")

	// The timer fires long after the triggering call returned; a
	// request-scoped context would already be canceled and the status write
	// would be lost.
	doneCtx := context.WithoutCancel(ctx)
	h.after(h.delay, func() {
		h.mu.Lock()
		h.deploying = false
		h.mu.Unlock()

		if err := h.profile.SetLaunchStatus(doneCtx, models.LaunchStoreReview); err != nil {
			h.log.Error(doneCtx, "failed to record review status", "error", err)
			return
		}
		h.notifier.Show("Sync Successful!")
		h.log.Info(doneCtx, "deployment submitted for review")
	})
	return nil
}

// Deploying reports whether a simulated deployment is in progress.
func (h *Hub) Deploying() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.deploying
}

// Readiness derives the completion percentage: base plus one increment
// per present asset slot. Purely cosmetic.
func (h *Hub) Readiness() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	percent := readinessBase
	for _, p := range []Platform{PlatformGoogle, PlatformApple} {
		if _, ok := h.slots[p]; ok {
			percent += readinessIncrement
		}
	}
	return percent
}
