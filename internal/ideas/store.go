// Package ideas implements the capture-record store: an in-memory,
// newest-first collection of all users' ideas mirrored to the persistent
// store, with per-user isolation enforced at every read boundary rather
// than by storage partitioning.
package ideas

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/ideaflow/internal/assist"
	"github.com/dmitrijs2005/ideaflow/internal/common"
	"github.com/dmitrijs2005/ideaflow/internal/logging"
	"github.com/dmitrijs2005/ideaflow/internal/models"
	"github.com/dmitrijs2005/ideaflow/internal/storage"
)

// Identity is the slice of the session manager the store needs.
type Identity interface {
	CurrentUserID() (string, bool)
}

// Enhancer produces best-effort enrichment for a capture. A nil result
// means the capture proceeds without enrichment.
type Enhancer interface {
	Enhance(ctx context.Context, content string) *assist.Enhancement
}

// IdeaUpdate is a partial update of one record. Nil fields are untouched.
type IdeaUpdate struct {
	Content  *string
	Category *models.Category
	Tags     []string
}

// Store owns the idea collection. All mutations are serialized behind one
// mutex and written through to the persistent store while a session is
// active; without a session, writes are suppressed so an empty in-memory
// collection can never clobber stored data.
type Store struct {
	mu       sync.RWMutex
	persist  storage.Store
	identity Identity
	enhancer Enhancer
	log      logging.Logger
	list     []models.Idea

	now   func() time.Time
	newID func() string
}

func NewStore(persist storage.Store, identity Identity, enhancer Enhancer, log logging.Logger) *Store {
	return &Store{
		persist:  persist,
		identity: identity,
		enhancer: enhancer,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Load reads the entire persisted collection (all users, unfiltered) into
// memory. Without an active session it is a no-op; callers re-invoke it
// after sign-in.
func (s *Store) Load(ctx context.Context) error {
	if _, ok := s.identity.CurrentUserID(); !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []models.Idea
	if _, err := storage.LoadJSON(ctx, s.persist, common.KeyIdeas, &list); err != nil {
		return fmt.Errorf("failed to load ideas: %w", err)
	}
	s.list = list
	return nil
}

// Create builds a new record from content, enriched by the enhancement
// call when it succeeds, and prepends it to the collection. Returns
// common.ErrNotSignedIn without a session and common.ErrEmptyContent for
// blank content; in both cases nothing is stored or written.
func (s *Store) Create(ctx context.Context, content string, source models.Source, category models.Category, tags []string) (models.Idea, error) {
	uid, ok := s.identity.CurrentUserID()
	if !ok {
		return models.Idea{}, common.ErrNotSignedIn
	}
	if strings.TrimSpace(content) == "" {
		return models.Idea{}, common.ErrEmptyContent
	}
	if !source.Valid() {
		return models.Idea{}, fmt.Errorf("unknown source %q", source)
	}
	if !category.Valid() {
		return models.Idea{}, fmt.Errorf("unknown category %q", category)
	}

	enhancement := s.enhancer.Enhance(ctx, content)

	idea := models.Idea{
		ID:        s.newID(),
		UserID:    uid,
		Content:   content,
		Source:    source,
		Category:  category,
		Tags:      tags,
		CreatedAt: s.now(),
	}
	if enhancement != nil {
		idea.Tags = mergeTags(tags, enhancement.Tags)
		idea.AISummary = enhancement.Summary
	}
	if idea.Tags == nil {
		idea.Tags = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append([]models.Idea{idea}, s.list...)
	if err := s.save(ctx); err != nil {
		return models.Idea{}, err
	}
	s.log.Info(ctx, "capture saved", "id", idea.ID, "source", idea.Source, "category", idea.Category)
	return idea, nil
}

// mergeTags unions caller tags with suggested ones, first occurrence wins,
// case-sensitive, insertion order kept.
func mergeTags(own, suggested []string) []string {
	merged := make([]string, 0, len(own)+len(suggested))
	seen := make(map[string]struct{}, len(own)+len(suggested))
	for _, t := range append(append([]string{}, own...), suggested...) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		merged = append(merged, t)
	}
	return merged
}

// Delete removes the matching record. Absent ids are a silent no-op, so
// deleting twice observes the same state as once.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.Idea, 0, len(s.list))
	for _, idea := range s.list {
		if idea.ID != id {
			kept = append(kept, idea)
		}
	}
	if len(kept) == len(s.list) {
		return nil
	}
	s.list = kept
	return s.save(ctx)
}

// ToggleStar flips the starred flag on the matching record; no-op if absent.
func (s *Store) ToggleStar(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].ID == id {
			s.list[i].Starred = !s.list[i].Starred
			return s.save(ctx)
		}
	}
	return nil
}

// Update merges fields into the matching record; no-op if absent.
func (s *Store) Update(ctx context.Context, id string, update IdeaUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].ID != id {
			continue
		}
		if update.Content != nil {
			s.list[i].Content = *update.Content
		}
		if update.Category != nil {
			s.list[i].Category = *update.Category
		}
		if update.Tags != nil {
			s.list[i].Tags = mergeTags(update.Tags, nil)
		}
		return s.save(ctx)
	}
	return nil
}

// PurgeUser drops every record owned by userID. Used when an account is
// deleted so its captures do not linger unreachable in storage.
func (s *Store) PurgeUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.Idea, 0, len(s.list))
	for _, idea := range s.list {
		if idea.UserID != userID {
			kept = append(kept, idea)
		}
	}
	if len(kept) == len(s.list) {
		return nil
	}
	s.list = kept
	return s.save(ctx)
}

// ForCurrentUser returns the session user's records, newest first.
// Without a session it returns nothing.
func (s *Store) ForCurrentUser() []models.Idea {
	uid, ok := s.identity.CurrentUserID()
	if !ok {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Idea, 0, len(s.list))
	for _, idea := range s.list {
		if idea.UserID == uid {
			out = append(out, idea)
		}
	}
	return out
}

// Filtered derives the knowledge-bank view for the current user.
func (s *Store) Filtered(query string, category models.Category) []models.Idea {
	return Filter(s.ForCurrentUser(), query, category)
}

// Stats derives the usage summary for the current user.
func (s *Store) Stats() models.Stats {
	return Summarize(s.ForCurrentUser(), s.now())
}

// save writes the full collection through to the persistent store. Caller
// holds the lock. Writes are suppressed while no session is active.
func (s *Store) save(ctx context.Context) error {
	if _, ok := s.identity.CurrentUserID(); !ok {
		return nil
	}
	if err := storage.SaveJSON(ctx, s.persist, common.KeyIdeas, s.list); err != nil {
		return fmt.Errorf("failed to persist ideas: %w", err)
	}
	return nil
}
