package cli

import (
	"context"
	"fmt"
)

// Summary prompts for a topic and renders the generated summary as plain
// text. Failures leave whatever was on screen alone.
func (a *App) Summary(ctx context.Context) error {
	topic, err := getSimpleText(a.reader, "Topic to summarize", a.out)
	if err != nil {
		return err
	}
	if topic == "" {
		return nil
	}

	summary, err := a.api.Summarize(ctx, topic)
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
		return err
	}

	fmt.Fprintln(a.out, titleStyle.Render("Summary: "+topic))
	fmt.Fprintln(a.out, summary)
	return nil
}
