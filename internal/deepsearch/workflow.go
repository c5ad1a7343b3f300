// Package deepsearch orchestrates the gated, asynchronous web-search
// feature. One search may be in flight at a time; responses carry the
// generation of the request that produced them, and a stale response is
// discarded instead of overwriting newer state.
package deepsearch

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/ideaflow/internal/assist"
	"github.com/dmitrijs2005/ideaflow/internal/common"
	"github.com/dmitrijs2005/ideaflow/internal/logging"
	"github.com/dmitrijs2005/ideaflow/internal/models"
)

// State of the workflow. There is no distinct failure state: the search
// contract degrades to an explanatory digest that renders exactly like an
// empty result, so a failed call still lands in StateResults.
type State string

const (
	StateIdle      State = "idle"
	StateGated     State = "gated"
	StateSearching State = "searching"
	StateResults   State = "results"
)

// Searcher runs one web search. It never fails; see assist.Client.
type Searcher interface {
	SearchWeb(ctx context.Context, query string) assist.Digest
}

// Identity exposes the signed-in user for the entitlement check.
type Identity interface {
	Current() (models.User, bool)
}

// Workflow is the deep-search state machine.
type Workflow struct {
	mu       sync.Mutex
	state    State
	digest   *assist.Digest
	gen      uint64
	searcher Searcher
	identity Identity
	log      logging.Logger
}

func New(searcher Searcher, identity Identity, log logging.Logger) *Workflow {
	return &Workflow{
		state:    StateIdle,
		searcher: searcher,
		identity: identity,
		log:      log,
	}
}

// Initiate starts one search for query. Empty queries and queries issued
// while another search is in flight are silent no-ops. Free-tier users are
// refused with common.ErrPlanRequired before any network call; the caller
// turns that into a redirect to billing. Otherwise the previous result set
// is cleared and the call proceeds asynchronously.
func (w *Workflow) Initiate(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	user, ok := w.identity.Current()
	if !ok {
		return common.ErrNotSignedIn
	}

	w.mu.Lock()
	if w.state == StateSearching {
		w.mu.Unlock()
		return nil
	}
	if user.SubscriptionPlan == models.PlanFree {
		w.state = StateGated
		w.digest = nil
		w.mu.Unlock()
		return common.ErrPlanRequired
	}

	w.state = StateSearching
	w.digest = nil
	w.gen++
	gen := w.gen
	w.mu.Unlock()

	w.log.Debug(ctx, "deep search issued", "generation", gen)

	// The search outlives the triggering call. A request-scoped context is
	// canceled as soon as its handler returns, which would degrade every
	// search issued over HTTP.
	searchCtx := context.WithoutCancel(ctx)
	go func() {
		digest := w.searcher.SearchWeb(searchCtx, query)
		w.complete(searchCtx, gen, digest)
	}()
	return nil
}

// complete applies a search response unless a newer request or a reset has
// superseded it.
func (w *Workflow) complete(ctx context.Context, gen uint64, digest assist.Digest) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		w.log.Debug(ctx, "discarding stale search response", "generation", gen, "latest", w.gen)
		return
	}
	w.state = StateResults
	w.digest = &digest
}

// Snapshot returns the current state and, in StateResults, the digest.
func (w *Workflow) Snapshot() (State, *assist.Digest) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.digest == nil {
		return w.state, nil
	}
	d := *w.digest
	return w.state, &d
}

// Reset discards any result set and invalidates in-flight requests. Called
// when the search view is left.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateIdle
	w.digest = nil
	w.gen++
}
