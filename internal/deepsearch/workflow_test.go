package deepsearch

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ideaflow/internal/assist"
	"github.com/dmitrijs2005/ideaflow/internal/common"
	"github.com/dmitrijs2005/ideaflow/internal/logging"
	"github.com/dmitrijs2005/ideaflow/internal/models"
)

type fakeIdentity struct {
	user *models.User
}

func (f *fakeIdentity) Current() (models.User, bool) {
	if f.user == nil {
		return models.User{}, false
	}
	return *f.user, true
}

// blockingSearcher holds every call until release is closed.
type blockingSearcher struct {
	calls   atomic.Int64
	release chan struct{}
	digest  assist.Digest
}

func (f *blockingSearcher) SearchWeb(_ context.Context, _ string) assist.Digest {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	return f.digest
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func waitForState(t *testing.T, w *Workflow, want State) *assist.Digest {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		state, digest := w.Snapshot()
		if state == want {
			return digest
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for state %q, at %q", want, state)
		case <-time.After(time.Millisecond):
		}
	}
}

func proUser() *models.User {
	return &models.User{ID: "u1", SubscriptionPlan: models.PlanPro}
}

func TestInitiate_FreeTierIsGatedWithoutNetworkCall(t *testing.T) {
	searcher := &blockingSearcher{}
	w := New(searcher, &fakeIdentity{user: &models.User{ID: "u1", SubscriptionPlan: models.PlanFree}}, testLogger())

	err := w.Initiate(context.Background(), "rockets")
	require.ErrorIs(t, err, common.ErrPlanRequired)

	state, digest := w.Snapshot()
	assert.Equal(t, StateGated, state)
	assert.Nil(t, digest)
	assert.Equal(t, int64(0), searcher.calls.Load(), "gating must refuse before any call")
}

func TestInitiate_EmptyQueryIsNoOp(t *testing.T) {
	searcher := &blockingSearcher{}
	w := New(searcher, &fakeIdentity{user: proUser()}, testLogger())

	require.NoError(t, w.Initiate(context.Background(), "   "))
	state, _ := w.Snapshot()
	assert.Equal(t, StateIdle, state)
	assert.Equal(t, int64(0), searcher.calls.Load())
}

func TestInitiate_DeliversResultsInServiceOrder(t *testing.T) {
	searcher := &blockingSearcher{digest: assist.Digest{
		Text: "digest",
		Sources: []models.WebResult{
			{Title: "b", URI: "https://example.com/b"},
			{Title: "a", URI: "https://example.com/a"},
		},
	}}
	w := New(searcher, &fakeIdentity{user: proUser()}, testLogger())

	require.NoError(t, w.Initiate(context.Background(), "rockets"))
	digest := waitForState(t, w, StateResults)

	require.NotNil(t, digest)
	assert.Equal(t, "digest", digest.Text)
	require.Len(t, digest.Sources, 2)
	assert.Equal(t, "b", digest.Sources[0].Title, "order as returned by the service")
}

// ctxSearcher reports the context its call observed.
type ctxSearcher struct {
	digest   assist.Digest
	degraded assist.Digest
	started  chan struct{}
	release  chan struct{}
}

func (f *ctxSearcher) SearchWeb(ctx context.Context, _ string) assist.Digest {
	close(f.started)
	<-f.release
	if ctx.Err() != nil {
		return f.degraded
	}
	return f.digest
}

func TestInitiate_SearchOutlivesCallerContext(t *testing.T) {
	searcher := &ctxSearcher{
		digest:   assist.Digest{Text: "healthy digest"},
		degraded: assist.Digest{Text: assist.DegradedSearchText},
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	w := New(searcher, &fakeIdentity{user: proUser()}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Initiate(ctx, "rockets"))

	// Cancel the triggering call the way net/http does when a handler
	// returns; the in-flight search must not be torn down with it.
	<-searcher.started
	cancel()
	close(searcher.release)

	digest := waitForState(t, w, StateResults)
	require.NotNil(t, digest)
	assert.Equal(t, "healthy digest", digest.Text)
}

func TestInitiate_ReentrancyGuard(t *testing.T) {
	searcher := &blockingSearcher{release: make(chan struct{})}
	w := New(searcher, &fakeIdentity{user: proUser()}, testLogger())

	require.NoError(t, w.Initiate(context.Background(), "one"))
	require.NoError(t, w.Initiate(context.Background(), "two"))

	close(searcher.release)
	waitForState(t, w, StateResults)
	assert.Equal(t, int64(1), searcher.calls.Load(), "second initiate while in flight must be a no-op")
}

func TestReset_DiscardsStaleResponse(t *testing.T) {
	searcher := &blockingSearcher{release: make(chan struct{}), digest: assist.Digest{Text: "stale"}}
	w := New(searcher, &fakeIdentity{user: proUser()}, testLogger())

	require.NoError(t, w.Initiate(context.Background(), "rockets"))
	w.Reset()
	close(searcher.release)

	// Give the goroutine a moment to deliver the now-stale response.
	time.Sleep(50 * time.Millisecond)
	state, digest := w.Snapshot()
	assert.Equal(t, StateIdle, state, "stale response must not overwrite the reset state")
	assert.Nil(t, digest)
}

func TestResultsAreReenterable(t *testing.T) {
	searcher := &blockingSearcher{digest: assist.Digest{Text: "first"}}
	w := New(searcher, &fakeIdentity{user: proUser()}, testLogger())

	require.NoError(t, w.Initiate(context.Background(), "one"))
	waitForState(t, w, StateResults)

	searcher.digest = assist.Digest{Text: "second"}
	require.NoError(t, w.Initiate(context.Background(), "two"))

	deadline := time.After(2 * time.Second)
	for {
		_, digest := w.Snapshot()
		if digest != nil && digest.Text == "second" {
			return
		}
		select {
		case <-deadline:
			t.Fatal("second search never delivered")
		case <-time.After(time.Millisecond):
		}
	}
}
