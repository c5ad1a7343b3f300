// Package session holds the currently authenticated identity and the
// registered-user collection, both written through to the persistent store
// on every mutation. All mutation funnels through Manager methods; there
// are no ambient globals.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/ideaflow/internal/common"
	"github.com/dmitrijs2005/ideaflow/internal/logging"
	"github.com/dmitrijs2005/ideaflow/internal/models"
	"github.com/dmitrijs2005/ideaflow/internal/storage"
)

// ProfileUpdate is a partial update of the current identity. Nil fields are
// left untouched.
type ProfileUpdate struct {
	Email                  *string
	Username               *string
	NotificationsEnabled   *bool
	SubscriptionPlan       *models.SubscriptionPlan
	SubscriptionActive     *bool
	ExternalSubscriptionID *string
	HasCompletedTour       *bool
	MobileLaunchStatus     *models.LaunchStatus
}

// Manager is the session/identity holder.
type Manager struct {
	mu      sync.RWMutex
	store   storage.Store
	log     logging.Logger
	current *models.User

	now   func() time.Time
	newID func() string
}

func NewManager(store storage.Store, log logging.Logger) *Manager {
	return &Manager{
		store: store,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Restore loads a previously persisted session, if any.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var u models.User
	ok, err := storage.LoadJSON(ctx, m.store, common.KeyAuth, &u)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if ok {
		m.current = &u
	}
	return nil
}

// Current returns a copy of the signed-in identity.
func (m *Manager) Current() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return models.User{}, false
	}
	return *m.current, true
}

// CurrentUserID reports the signed-in user id, if any.
func (m *Manager) CurrentUserID() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return "", false
	}
	return m.current.ID, true
}

// SignIn replaces the current session identity and persists it.
func (m *Manager) SignIn(ctx context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := user
	m.current = &u
	return storage.SaveJSON(ctx, m.store, common.KeyAuth, u)
}

// SignOut clears the in-memory identity and removes the persisted key.
// Idea collections stay in storage, inaccessible until the same user signs
// in again. Signing out twice is a no-op.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	m.current = nil
	return m.store.Remove(ctx, common.KeyAuth)
}

// UpdateProfile merges update into the current identity, re-persists it and
// updates the matching entry in the registered-user collection. Without an
// active session it fails silently, per the source behavior.
func (m *Manager) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}

	u := *m.current
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.NotificationsEnabled != nil {
		u.NotificationsEnabled = *update.NotificationsEnabled
	}
	if update.SubscriptionPlan != nil {
		u.SubscriptionPlan = *update.SubscriptionPlan
	}
	if update.SubscriptionActive != nil {
		u.SubscriptionActive = *update.SubscriptionActive
	}
	if update.ExternalSubscriptionID != nil {
		u.ExternalSubscriptionID = *update.ExternalSubscriptionID
	}
	if update.HasCompletedTour != nil {
		u.HasCompletedTour = *update.HasCompletedTour
	}
	if update.MobileLaunchStatus != nil {
		u.MobileLaunchStatus = *update.MobileLaunchStatus
	}

	// Persist before swapping the in-memory identity so a failed write
	// cannot leave memory and storage disagreeing.
	if err := storage.SaveJSON(ctx, m.store, common.KeyAuth, u); err != nil {
		return err
	}
	m.current = &u
	return m.syncRegistryEntry(ctx, u)
}

// syncRegistryEntry replaces the user's record inside the persisted
// registered-user collection. Caller holds the lock.
func (m *Manager) syncRegistryEntry(ctx context.Context, u models.User) error {
	var users []models.User
	if _, err := storage.LoadJSON(ctx, m.store, common.KeyUsers, &users); err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
		}
	}
	return storage.SaveJSON(ctx, m.store, common.KeyUsers, users)
}

// Register creates a new account, appends it to the registry and signs it
// in. The first registered account administers the installation. Email
// comparison is case-insensitive.
func (m *Manager) Register(ctx context.Context, email, username string, password []byte) (models.User, error) {
	m.mu.Lock()

	var users []models.User
	if _, err := storage.LoadJSON(ctx, m.store, common.KeyUsers, &users); err != nil {
		m.mu.Unlock()
		return models.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			m.mu.Unlock()
			return models.User{}, common.ErrUserExists
		}
	}

	hash, err := hashPassword(password)
	if err != nil {
		m.mu.Unlock()
		return models.User{}, err
	}

	user := models.User{
		ID:                 m.newID(),
		Email:              email,
		Username:           username,
		PasswordHash:       hash,
		IsAdmin:            len(users) == 0,
		JoinedAt:           m.now(),
		SubscriptionPlan:   models.PlanFree,
		MobileLaunchStatus: models.LaunchNotStarted,
	}
	users = append(users, user)

	if err := storage.SaveJSON(ctx, m.store, common.KeyUsers, users); err != nil {
		m.mu.Unlock()
		return models.User{}, err
	}
	m.mu.Unlock()

	m.log.Info(ctx, "account registered", "user_id", user.ID, "admin", user.IsAdmin)
	if err := m.SignIn(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies credentials against the registry and signs the
// matching account in.
func (m *Manager) Authenticate(ctx context.Context, email string, password []byte) (models.User, error) {
	m.mu.RLock()
	var users []models.User
	if _, err := storage.LoadJSON(ctx, m.store, common.KeyUsers, &users); err != nil {
		m.mu.RUnlock()
		return models.User{}, err
	}
	m.mu.RUnlock()

	for _, u := range users {
		if strings.EqualFold(u.Email, email) && verifyPassword(u.PasswordHash, password) {
			if err := m.SignIn(ctx, u); err != nil {
				return models.User{}, err
			}
			return u, nil
		}
	}
	return models.User{}, common.ErrInvalidCredentials
}

// ListUsers returns the registered-user collection.
func (m *Manager) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var users []models.User
	if _, err := storage.LoadJSON(ctx, m.store, common.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes an account from the registry. Deleting the signed-in
// account also ends the session. Unknown ids are a silent no-op. Purging
// the account's captures is the caller's responsibility (see ideas.Store).
func (m *Manager) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()

	var users []models.User
	if _, err := storage.LoadJSON(ctx, m.store, common.KeyUsers, &users); err != nil {
		m.mu.Unlock()
		return err
	}

	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(users) {
		m.mu.Unlock()
		return nil
	}
	if err := storage.SaveJSON(ctx, m.store, common.KeyUsers, kept); err != nil {
		m.mu.Unlock()
		return err
	}

	selfDeleted := m.current != nil && m.current.ID == id
	m.mu.Unlock()

	if selfDeleted {
		return m.SignOut(ctx)
	}
	return nil
}

// UpdateSubscription switches the billing tier and marks the subscription
// active, recording a simulated external subscription id.
func (m *Manager) UpdateSubscription(ctx context.Context, plan models.SubscriptionPlan) error {
	active := true
	extID := "SIM-" + m.newID()
	return m.UpdateProfile(ctx, ProfileUpdate{
		SubscriptionPlan:       &plan,
		SubscriptionActive:     &active,
		ExternalSubscriptionID: &extID,
	})
}

// CompleteTour marks the onboarding tour as finished.
func (m *Manager) CompleteTour(ctx context.Context) error {
	done := true
	return m.UpdateProfile(ctx, ProfileUpdate{HasCompletedTour: &done})
}

// SetLaunchStatus sets the mobile-launch-status unconditionally.
func (m *Manager) SetLaunchStatus(ctx context.Context, status models.LaunchStatus) error {
	return m.UpdateProfile(ctx, ProfileUpdate{MobileLaunchStatus: &status})
}

// AdvanceLaunchStatus moves the mobile-launch-status forward to target if
// the account is not already at or past it.
func (m *Manager) AdvanceLaunchStatus(ctx context.Context, target models.LaunchStatus) error {
	m.mu.RLock()
	advance := m.current != nil && m.current.MobileLaunchStatus.Before(target)
	m.mu.RUnlock()
	if !advance {
		return nil
	}
	return m.SetLaunchStatus(ctx, target)
}
