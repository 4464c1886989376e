package cli

import (
	"context"
	"fmt"
	"strings"
)

// History fetches and prints the prior Q&A log, newest information exactly
// as the backend orders it.
func (a *App) History(ctx context.Context) error {
	entries, err := a.api.History(ctx, a.config.HistoryLimit)
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No questions asked yet.")
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(a.out, "%s\n", mutedStyle.Render(entry.Timestamp))
		fmt.Fprintf(a.out, "Q: %s\n", entry.Question)
		fmt.Fprintf(a.out, "A: %s\n", entry.Answer)
		if len(entry.Sources) > 0 {
			fmt.Fprintf(a.out, "   %s\n", mutedStyle.Render("Sources: "+strings.Join(entry.Sources, ", ")))
		}
		fmt.Fprintln(a.out)
	}
	return nil
}
