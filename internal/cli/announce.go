package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ideaflow/internal/common"
)

// announce handles the CMS subcommands:
//
//	announce              — list active announcements
//	announce add          — author a new one (admin)
//	announce hide <id>    — take one off the dashboard (admin)
//	announce show <id>    — put one back (admin)
func (a *App) announce(ctx context.Context, args []string) {
	if len(args) == 0 {
		for _, entry := range a.cms.Active() {
			fmt.Fprintf(a.out, "%s  %s: %s\n", entry.ID, entry.Title, entry.Text)
		}
		return
	}

	switch args[0] {
	case "add":
		if !a.requireAdmin() {
			return
		}
		title, err := GetSimpleText(a.reader, "Title", a.out)
		if err != nil {
			fmt.Fprintln(a.out, "error:", err)
			return
		}
		text, err := GetMultiline(a.reader, "Text", a.out)
		if err != nil {
			fmt.Fprintln(a.out, "error:", err)
			return
		}
		imageURL, err := GetSimpleText(a.reader, "Image URL (optional)", a.out)
		if err != nil {
			fmt.Fprintln(a.out, "error:", err)
			return
		}
		entry, err := a.cms.Add(ctx, title, text, imageURL)
		if err != nil {
			fmt.Fprintln(a.out, "error:", err)
			return
		}
		fmt.Fprintln(a.out, "Announcement published:", entry.ID)

	case "hide", "show":
		if !a.requireAdmin() {
			return
		}
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: announce", args[0], "<id>")
			return
		}
		err := a.cms.SetActive(ctx, args[1], args[0] == "show")
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(a.out, "No announcement with id:", args[1])
		} else if err != nil {
			fmt.Fprintln(a.out, "error:", err)
		}

	default:
		fmt.Fprintln(a.out, "Usage: announce [add|hide <id>|show <id>]")
	}
}
