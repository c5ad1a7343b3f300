package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ideaflow/internal/common"
	"github.com/dmitrijs2005/ideaflow/internal/models"
)

// savedNotification is the transient banner shown after a successful save.
const savedNotification = "Sync Successful!"

// askCategory reads a category, defaulting to Note on an empty line.
func (a *App) askCategory() models.Category {
	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, string(c))
	}
	line, err := GetSimpleText(a.reader, "Category ["+strings.Join(names, ", ")+"] (default Note)", a.out)
	if err != nil || line == "" {
		return models.CategoryNote
	}
	for _, c := range models.Categories {
		if strings.EqualFold(line, string(c)) {
			return c
		}
	}
	fmt.Fprintf(a.out, "Unknown category %q, using Note.\n", line)
	return models.CategoryNote
}

func (a *App) capture(ctx context.Context) {
	content, err := GetMultiline(a.reader, "Enter your idea", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	category := a.askCategory()

	idea, err := a.ideas.Create(ctx, content, models.SourceTyped, category, nil)
	if err != nil {
		a.reportCaptureError(err)
		return
	}
	a.notifier.Show(savedNotification)
	a.printIdea(idea)
}

// record drives the microphone adapter: start, wait for Enter, stop, then
// commit the accumulated transcript as a voice capture.
func (a *App) record(ctx context.Context) {
	if err := a.audio.Start(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not start recording:", err)
		return
	}

	fmt.Fprintln(a.out, "Recording... press Enter to stop.")
	_, _ = a.reader.ReadString('\n')

	if err := a.audio.Stop(); err != nil {
		fmt.Fprintln(a.out, "Could not stop recording:", err)
		return
	}

	transcript := a.audio.Transcript()
	if strings.TrimSpace(transcript) == "" {
		fmt.Fprintln(a.out, "Nothing was transcribed, discarding.")
		return
	}
	fmt.Fprintf(a.out, "Transcript: %s\n", transcript)

	idea, err := a.ideas.Create(ctx, transcript, models.SourceVoice, models.CategoryNote, nil)
	if err != nil {
		a.reportCaptureError(err)
		return
	}
	a.notifier.Show(savedNotification)
	a.printIdea(idea)
}

func (a *App) reportCaptureError(err error) {
	switch {
	case errors.Is(err, common.ErrNotSignedIn):
		fmt.Fprintln(a.out, "Sign in before capturing ideas.")
	case errors.Is(err, common.ErrEmptyContent):
		fmt.Fprintln(a.out, "Cannot save an empty idea.")
	default:
		fmt.Fprintln(a.out, "Capture failed:", err)
	}
}

func (a *App) printIdea(idea models.Idea) {
	star := " "
	if idea.Starred {
		star = "*"
	}
	fmt.Fprintf(a.out, "[%s] %s %-11s %s\n", idea.ID[:8], star, idea.Category, idea.Content)
	if len(idea.Tags) > 0 {
		fmt.Fprintf(a.out, "           tags: %s\n", strings.Join(idea.Tags, ", "))
	}
	if idea.AISummary != "" {
		fmt.Fprintf(a.out, "           summary: %s\n", idea.AISummary)
	}
}
