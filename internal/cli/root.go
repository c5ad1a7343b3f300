package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	user, ok := a.session.Current()
	if !ok {
		return ""
	}
	s := user.Username
	if user.IsAdmin {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to IdeaFlow (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if msg, ok := a.notifier.Active(); ok {
			fmt.Fprintln(a.out, "!", msg)
		}
		fmt.Fprintf(a.out, "ideaflow %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Capture:  capture, record, (l)ist, search, deepsearch, stats, star, delete")
				fmt.Fprintln(a.out, "Account:  plan, tour, notify, logout")
				fmt.Fprintln(a.out, "Launch:   upload, removeicon, deploy, readiness")
				fmt.Fprintln(a.out, "Admin:    users, deluser, announce add|hide|show")
				fmt.Fprintln(a.out, "Other:    announce, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, announce, exit")
			}

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "capture":
			a.capture(ctx)
		case "record":
			a.record(ctx)
		case "l", "list":
			a.list(ctx)
		case "search":
			a.searchIdeas(ctx, args)
		case "deepsearch":
			a.deepSearch(ctx, args)
		case "stats":
			a.stats(ctx)
		case "star":
			a.star(ctx, args)
		case "delete":
			a.deleteIdea(ctx, args)
		case "plan":
			a.plan(ctx, args)
		case "tour":
			a.tour(ctx)
		case "notify":
			a.notifications(ctx, args)
		case "users":
			a.users(ctx)
		case "deluser":
			a.deleteUser(ctx, args)
		case "upload":
			a.uploadAsset(ctx, args)
		case "removeicon":
			a.removeAsset(ctx, args)
		case "deploy":
			a.deploy(ctx)
		case "readiness":
			a.readiness(ctx)
		case "announce":
			a.announce(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
