package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/ideaflow/internal/common"
	"github.com/dmitrijs2005/ideaflow/internal/launchhub"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

func parsePlatform(arg string) (launchhub.Platform, bool) {
	switch strings.ToLower(arg) {
	case "google", "gp", "android":
		return launchhub.PlatformGoogle, true
	case "apple", "as", "ios":
		return launchhub.PlatformApple, true
	}
	return "", false
}

func (a *App) uploadAsset(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: upload <google|apple> <path>")
		return
	}
	platform, ok := parsePlatform(args[0])
	if !ok {
		fmt.Fprintln(a.out, "Unknown platform:", args[0])
		return
	}

	image, err := readFile(args[1])
	if err != nil {
		fmt.Fprintln(a.out, "Could not read file:", err)
		return
	}

	if err := a.hub.UploadAsset(ctx, platform, image); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintf(a.out, "%s icon uploaded. Readiness: %d%%\n", platform, a.hub.Readiness())
}

func (a *App) removeAsset(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: removeicon <google|apple>")
		return
	}
	platform, ok := parsePlatform(args[0])
	if !ok {
		fmt.Fprintln(a.out, "Unknown platform:", args[0])
		return
	}
	if err := a.hub.RemoveAsset(ctx, platform); err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	fmt.Fprintf(a.out, "%s icon removed. Readiness: %d%%\n", platform, a.hub.Readiness())
}

func (a *App) deploy(ctx context.Context) {
	err := a.hub.Deploy(ctx)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAssetMissing):
			fmt.Fprintln(a.out, "Upload the Google Play icon before deploying.")
		case errors.Is(err, common.ErrDeployInFlight):
			fmt.Fprintln(a.out, "A deployment is already running.")
		default:
			fmt.Fprintln(a.out, "error:", err)
		}
		return
	}
	if msg, ok := a.notifier.Active(); ok {
		fmt.Fprintln(a.out, msg)
	}
}

func (a *App) readiness(ctx context.Context) {
	fmt.Fprintf(a.out, "Launch readiness: %d%%\n", a.hub.Readiness())
	if user, ok := a.session.Current(); ok {
		fmt.Fprintf(a.out, "Launch status: %s\n", user.MobileLaunchStatus)
	}
	if a.hub.Deploying() {
		fmt.Fprintln(a.out, "Deployment in progress...")
	}
}
