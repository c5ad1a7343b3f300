// Package cms manages the dashboard announcement collection. Entries are
// admin-authored and visible to every user, so the store has no identity
// dependency; newest entries sort first.
package cms

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/ideaflow/internal/common"
	"github.com/dmitrijs2005/ideaflow/internal/logging"
	"github.com/dmitrijs2005/ideaflow/internal/models"
	"github.com/dmitrijs2005/ideaflow/internal/storage"
)

type Store struct {
	mu      sync.RWMutex
	persist storage.Store
	log     logging.Logger
	list    []models.Announcement

	now   func() time.Time
	newID func() string
}

func NewStore(persist storage.Store, log logging.Logger) *Store {
	return &Store{
		persist: persist,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Load hydrates the collection from persistence. A missing record leaves
// the collection empty.
func (s *Store) Load(ctx context.Context) error {
	var list []models.Announcement
	found, err := storage.LoadJSON(ctx, s.persist, common.KeyCMS, &list)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if found {
		s.list = list
	} else {
		s.list = nil
	}
	return nil
}

// Add prepends a new announcement, active by default.
func (s *Store) Add(ctx context.Context, title, text, imageURL string) (models.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := models.Announcement{
		ID:        s.newID(),
		Title:     title,
		Text:      text,
		ImageURL:  imageURL,
		IsActive:  true,
		CreatedAt: s.now(),
	}
	s.list = append([]models.Announcement{a}, s.list...)
	if err := s.save(ctx); err != nil {
		return models.Announcement{}, err
	}
	s.log.Debug(ctx, "announcement added", "id", a.ID)
	return a, nil
}

// SetActive flips an announcement's visibility. Unknown ids return
// common.ErrNotFound.
func (s *Store) SetActive(ctx context.Context, id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].ID == id {
			if s.list[i].IsActive == active {
				return nil
			}
			s.list[i].IsActive = active
			return s.save(ctx)
		}
	}
	return common.ErrNotFound
}

// Remove deletes an announcement. Removing an unknown id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].ID == id {
			s.list = append(s.list[:i:i], s.list[i+1:]...)
			return s.save(ctx)
		}
	}
	return nil
}

// List returns all announcements, newest first.
func (s *Store) List() []models.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Announcement, len(s.list))
	copy(out, s.list)
	return out
}

// Active returns only the announcements currently shown on the dashboard.
func (s *Store) Active() []models.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Announcement
	for _, a := range s.list {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) save(ctx context.Context) error {
	return storage.SaveJSON(ctx, s.persist, common.KeyCMS, s.list)
}
