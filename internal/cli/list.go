package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ideaflow/internal/models"
)

func (a *App) list(ctx context.Context) {
	ideas := a.ideas.ForCurrentUser()
	if len(ideas) == 0 {
		fmt.Fprintln(a.out, "No ideas yet. Try 'capture' or 'record'.")
		return
	}
	for _, idea := range ideas {
		a.printIdea(idea)
	}
}

// search filters the current user's ideas by a text query and an optional
// category given as "search <query> [category]".
func (a *App) searchIdeas(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: search <query> [category]")
		return
	}

	category := models.CategoryAll
	query := strings.Join(args, " ")
	if len(args) > 1 {
		last := args[len(args)-1]
		for _, c := range models.Categories {
			if strings.EqualFold(last, string(c)) {
				category = c
				query = strings.Join(args[:len(args)-1], " ")
				break
			}
		}
	}

	matches := a.ideas.Filtered(query, category)
	if len(matches) == 0 {
		fmt.Fprintln(a.out, "No matching ideas.")
		return
	}
	for _, idea := range matches {
		a.printIdea(idea)
	}
}

func (a *App) stats(ctx context.Context) {
	s := a.ideas.Stats()
	fmt.Fprintf(a.out, "Total: %d  Voice: %d  Typed: %d  Today: %d\n", s.Total, s.Voice, s.Typed, s.Today)
}

// resolveIdeaID accepts a full id or an unambiguous prefix of one.
func (a *App) resolveIdeaID(prefix string) (string, bool) {
	var match string
	for _, idea := range a.ideas.ForCurrentUser() {
		if strings.HasPrefix(idea.ID, prefix) {
			if match != "" {
				fmt.Fprintln(a.out, "Ambiguous id prefix:", prefix)
				return "", false
			}
			match = idea.ID
		}
	}
	if match == "" {
		fmt.Fprintln(a.out, "No idea with id:", prefix)
		return "", false
	}
	return match, true
}

func (a *App) star(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: star <id>")
		return
	}
	id, ok := a.resolveIdeaID(args[0])
	if !ok {
		return
	}
	if err := a.ideas.ToggleStar(ctx, id); err != nil {
		fmt.Fprintln(a.out, "error:", err)
	}
}

func (a *App) deleteIdea(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return
	}
	id, ok := a.resolveIdeaID(args[0])
	if !ok {
		return
	}
	if err := a.ideas.Delete(ctx, id); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "Deleted.")
}
