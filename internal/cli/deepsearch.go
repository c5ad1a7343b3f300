package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/ideaflow/internal/common"
	"github.com/dmitrijs2005/ideaflow/internal/deepsearch"
)

// deepSearchPoll is how often the command checks the workflow for a
// result while waiting.
const deepSearchPoll = 100 * time.Millisecond

func (a *App) deepSearch(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: deepsearch <query>")
		return
	}
	query := strings.Join(args, " ")

	err := a.search.Initiate(ctx, query)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrPlanRequired):
			fmt.Fprintln(a.out, "Deep search needs an active paid plan. Use 'plan Pro' to upgrade.")
		case errors.Is(err, common.ErrNotSignedIn):
			fmt.Fprintln(a.out, "Sign in before searching.")
		default:
			fmt.Fprintln(a.out, "error:", err)
		}
		return
	}

	fmt.Fprintln(a.out, "Searching...")
	for {
		state, digest := a.search.Snapshot()
		if state == deepsearch.StateResults && digest != nil {
			fmt.Fprintln(a.out, digest.Text)
			for _, r := range digest.Sources {
				fmt.Fprintf(a.out, "  - %s (%s)\n", r.Title, r.URI)
			}
			return
		}
		if state != deepsearch.StateSearching {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(deepSearchPoll):
		}
	}
}
