package cli

import (
	"context"
	"fmt"
)

// Dashboard fetches and renders the summary statistics. Like every feature
// view it re-fetches on each entry; nothing is cached client-side.
func (a *App) Dashboard(ctx context.Context) error {
	stats, err := a.api.Dashboard(ctx)
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
		return err
	}

	if user := a.session.Identity(); user != nil {
		fmt.Fprintln(a.out, titleStyle.Render("Welcome back, "+firstName(user.Name)+"!"))
	}
	fmt.Fprintf(a.out, "  Documents:       %d\n", stats.Documents)
	fmt.Fprintf(a.out, "  Questions asked: %d\n", stats.Questions)
	fmt.Fprintf(a.out, "  Study hours:     %.1fh\n", stats.StudyHours)
	fmt.Fprintf(a.out, "  Quiz score:      %.0f%%\n", stats.QuizScore)
	return nil
}
