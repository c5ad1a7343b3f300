package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ideaflow/internal/models"
	"github.com/dmitrijs2005/ideaflow/internal/session"
)

func (a *App) plan(ctx context.Context, args []string) {
	if len(args) == 0 {
		if user, ok := a.session.Current(); ok {
			fmt.Fprintf(a.out, "Current plan: %s (active: %t)\n", user.SubscriptionPlan, user.SubscriptionActive)
		}
		fmt.Fprintln(a.out, "Usage: plan <Free|Pro|Enterprise>")
		return
	}

	plan := models.SubscriptionPlan(args[0])
	if !plan.Valid() {
		fmt.Fprintln(a.out, "Unknown plan:", args[0])
		return
	}
	if err := a.session.UpdateSubscription(ctx, plan); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintf(a.out, "Subscription updated to %s.\n", plan)
}

func (a *App) notifications(ctx context.Context, args []string) {
	if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
		if user, ok := a.session.Current(); ok {
			state := "off"
			if user.NotificationsEnabled {
				state = "on"
			}
			fmt.Fprintf(a.out, "Notifications are %s.\n", state)
		}
		fmt.Fprintln(a.out, "Usage: notify <on|off>")
		return
	}

	enabled := args[0] == "on"
	err := a.session.UpdateProfile(ctx, session.ProfileUpdate{NotificationsEnabled: &enabled})
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintf(a.out, "Notifications turned %s.\n", args[0])
}

func (a *App) tour(ctx context.Context) {
	if err := a.session.CompleteTour(ctx); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "Tour marked as completed.")
}

func (a *App) requireAdmin() bool {
	user, ok := a.session.Current()
	if !ok || !user.IsAdmin {
		fmt.Fprintln(a.out, "Admin rights required.")
		return false
	}
	return true
}

func (a *App) users(ctx context.Context) {
	if !a.requireAdmin() {
		return
	}
	list, err := a.session.ListUsers(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	for _, u := range list {
		role := "user"
		if u.IsAdmin {
			role = "admin"
		}
		fmt.Fprintf(a.out, "%s  %-25s %-15s %-10s %s\n", u.ID, u.Email, u.Username, u.SubscriptionPlan, role)
	}
}

// deleteUser removes the account from the registry and purges every idea
// that belonged to it.
func (a *App) deleteUser(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: deluser <id>")
		return
	}
	id := args[0]

	// Purge while the admin session is still active: deleting the admin's
	// own account signs the session out, and an unauthenticated purge
	// would not be written through.
	if err := a.ideas.PurgeUser(ctx, id); err != nil {
		fmt.Fprintln(a.out, "error purging ideas:", err)
		return
	}
	if err := a.session.DeleteUser(ctx, id); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintln(a.out, "User removed.")
}
