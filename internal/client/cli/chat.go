package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"studypilot/internal/client/api"
)

// chatTurn is one question/answer exchange in the transcript.
type chatTurn struct {
	ID       string
	Question string
	Answer   api.Answer
}

// Ask prompts for a question, sends it, and appends the exchange to the
// chat transcript. On failure the transcript is left untouched — the prior
// view state survives the error.
func (a *App) Ask(ctx context.Context) error {
	question, err := getSimpleText(a.reader, "Your question", a.out)
	if err != nil {
		return err
	}
	if question == "" {
		return nil
	}

	answer, err := a.api.Ask(ctx, question)
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
		return err
	}

	turn := chatTurn{ID: uuid.NewString(), Question: question, Answer: *answer}
	a.transcript = append(a.transcript, turn)

	fmt.Fprint(a.out, renderTurn(turn))
	return nil
}

// renderTurn formats one exchange, including the provenance badge for
// document-grounded answers versus the general-knowledge fallback, and the
// source list when present.
func renderTurn(turn chatTurn) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You: %s\n", turn.Question)
	fmt.Fprintf(&b, "Assistant: %s\n", turn.Answer.Text)

	switch turn.Answer.Type {
	case api.AnswerRAG:
		fmt.Fprintf(&b, "  %s\n", ragBadgeStyle.Render("[Document Context]"))
	case api.AnswerWikipedia:
		fmt.Fprintf(&b, "  %s\n", wikiBadgeStyle.Render("[Wikipedia Fallback]"))
	}

	if len(turn.Answer.Sources) > 0 {
		fmt.Fprintf(&b, "  %s\n", mutedStyle.Render("Sources: "+strings.Join(turn.Answer.Sources, ", ")))
	}
	return b.String()
}
