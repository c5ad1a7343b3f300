package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ideaflow/internal/common"
)

func (a *App) register(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	username, err := GetSimpleText(a.reader, "Enter display name", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Register(ctx, email, username, password)
	if err != nil {
		if errors.Is(err, common.ErrUserExists) {
			fmt.Fprintln(a.out, "An account with that email already exists.")
			return
		}
		fmt.Fprintln(a.out, "Registration failed:", err)
		return
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Username)
	if user.IsAdmin {
		fmt.Fprintln(a.out, "You are the first account and have admin rights.")
	}
}

func (a *App) login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fmt.Fprintln(a.out, "Invalid email or password.")
			return
		}
		fmt.Fprintln(a.out, "Login failed:", err)
		return
	}

	if err := a.ideas.Load(ctx); err != nil {
		a.log.Warn(ctx, "reloading captures after login", "error", err)
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s plan)\n", user.Username, user.SubscriptionPlan)
}

func (a *App) logout(ctx context.Context) {
	if err := a.session.SignOut(ctx); err != nil {
		fmt.Fprintln(a.out, "Logout failed:", err)
		return
	}
	a.search.Reset()
	fmt.Fprintln(a.out, "Signed out.")
}
