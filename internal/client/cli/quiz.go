package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"studypilot/internal/client/api"
)

// Quiz generates a quiz for a topic, walks the user through answering each
// question, scores the selections, and persists the result. A failed score
// submission is reported but does not discard the on-screen results.
func (a *App) Quiz(ctx context.Context) error {
	topic, err := getSimpleText(a.reader, "Quiz topic", a.out)
	if err != nil {
		return err
	}
	if topic == "" {
		return nil
	}

	countStr, err := getSimpleText(a.reader, "Number of questions (3, 5 or 10)", a.out)
	if err != nil {
		return err
	}
	numQuestions, err := strconv.Atoi(countStr)
	if err != nil || numQuestions < 1 {
		numQuestions = 5
	}

	items, err := a.api.Quiz(ctx, topic, numQuestions)
	if err != nil {
		fmt.Fprintln(a.out, errorStyle.Render(err.Error()))
		return err
	}

	// Drop items whose canonical answer is not among their options; they
	// cannot be scored.
	usable := items[:0]
	for _, item := range items {
		if item.Valid() {
			usable = append(usable, item)
		} else {
			a.logger.Warn(ctx, "skipping malformed quiz item", "question", item.Question)
		}
	}
	if len(usable) == 0 {
		fmt.Fprintln(a.out, errorStyle.Render("The backend returned no usable questions."))
		return nil
	}

	answers := make([]string, len(usable))
	for i, item := range usable {
		fmt.Fprintf(a.out, "\n%s\n", titleStyle.Render(fmt.Sprintf("Q%d. %s", i+1, item.Question)))
		for j, option := range item.Options {
			fmt.Fprintf(a.out, "  %c) %s\n", 'a'+j, option)
		}

		input, err := getSimpleText(a.reader, "Your answer", a.out)
		if err != nil {
			return err
		}
		selected, ok := parseSelection(input, item.Options)
		if !ok {
			fmt.Fprintln(a.out, mutedStyle.Render("No valid selection, counted as incorrect."))
		}
		answers[i] = selected
	}

	score := scoreQuiz(usable, answers)
	fmt.Fprintf(a.out, "\nScore: %d/%d\n", score, len(usable))

	if celebrate(score, len(usable)) {
		fmt.Fprintln(a.out, successStyle.Render("Great job! 🎉"))
	}

	for i, item := range usable {
		if answers[i] != item.CorrectAnswer {
			fmt.Fprintf(a.out, "%s\n", errorStyle.Render(fmt.Sprintf("Q%d: correct answer is %q", i+1, item.CorrectAnswer)))
			if item.Explanation != "" {
				fmt.Fprintf(a.out, "  %s\n", mutedStyle.Render(item.Explanation))
			}
		}
	}

	if err := a.api.SubmitQuizResult(ctx, score, len(usable), topic); err != nil {
		a.logger.Error(ctx, "failed to save quiz score", "err", err)
		fmt.Fprintln(a.out, mutedStyle.Render("(score could not be saved)"))
	}
	return nil
}

// parseSelection resolves user input to one of the options. Accepts the
// option letter ("a"), its 1-based number ("1"), or the option text itself.
func parseSelection(input string, options []string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	if len(input) == 1 {
		idx := int(input[0] | 0x20) // lowercase
		if idx >= 'a' && idx-'a' < len(options) {
			return options[idx-'a'], true
		}
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], true
	}
	for _, o := range options {
		if strings.EqualFold(o, input) {
			return o, true
		}
	}
	return "", false
}

// scoreQuiz counts selections matching the canonical correct option.
func scoreQuiz(items []api.QuizItem, answers []string) int {
	score := 0
	for i, item := range items {
		if i < len(answers) && answers[i] == item.CorrectAnswer {
			score++
		}
	}
	return score
}

// celebrate reports whether the score clears the celebration threshold.
// The comparison is strictly greater than 60%: 3/5 does not celebrate.
func celebrate(score, total int) bool {
	if total == 0 {
		return false
	}
	return float64(score)/float64(total) > 0.6
}
