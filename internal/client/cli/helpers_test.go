package cli

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"studypilot/internal/client/api"
	"studypilot/internal/client/config"
	"studypilot/internal/client/guard"
	"studypilot/internal/client/session"
	"studypilot/internal/logging"
)

// ---- input stubs ----

func stubTextInputs(t *testing.T, responses ...string) {
	t.Helper()
	orig := getSimpleText
	queue := responses
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(queue) == 0 {
			t.Fatalf("unexpected extra text prompt")
		}
		next := queue[0]
		queue = queue[1:]
		return next, nil
	}
	t.Cleanup(func() { getSimpleText = orig })
}

func stubPassword(t *testing.T, pw []byte) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) {
		return append([]byte(nil), pw...), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func stubLines(t *testing.T, lines []string) {
	t.Helper()
	orig := getLines
	getLines = func(_ *bufio.Reader, _ string, _ io.Writer) ([]string, error) {
		return lines, nil
	}
	t.Cleanup(func() { getLines = orig })
}

// ---- fake API client ----

type fakeAPI struct {
	loginResult *api.AuthResult
	loginErr    error
	loginEmail  string

	signupResult *api.AuthResult
	signupErr    error

	stats    *api.DashboardStats
	statsErr error

	status    *api.InventoryStatus
	statusErr error

	uploadErr   error
	uploadCalls int
	uploaded    []api.UploadFile

	answer   *api.Answer
	askErr   error
	askCalls int

	summary      string
	summarizeErr error

	quiz      []api.QuizItem
	quizErr   error
	quizCount int
	quizTopic string

	submitScore  int
	submitTotal  int
	submitTopic  string
	submitCalled bool
	submitErr    error

	history    []api.HistoryEntry
	historyErr error
	historyLim int
}

var _ api.Client = (*fakeAPI)(nil)

func (f *fakeAPI) Login(_ context.Context, email string, _ []byte) (*api.AuthResult, error) {
	f.loginEmail = email
	return f.loginResult, f.loginErr
}

func (f *fakeAPI) Signup(_ context.Context, _, _ string, _ []byte) (*api.AuthResult, error) {
	return f.signupResult, f.signupErr
}

func (f *fakeAPI) Dashboard(context.Context) (*api.DashboardStats, error) {
	return f.stats, f.statsErr
}

func (f *fakeAPI) Status(context.Context) (*api.InventoryStatus, error) {
	return f.status, f.statusErr
}

func (f *fakeAPI) UploadFiles(_ context.Context, files []api.UploadFile) error {
	f.uploadCalls++
	f.uploaded = files
	return f.uploadErr
}

func (f *fakeAPI) Ask(context.Context, string) (*api.Answer, error) {
	f.askCalls++
	return f.answer, f.askErr
}

func (f *fakeAPI) Summarize(context.Context, string) (string, error) {
	return f.summary, f.summarizeErr
}

func (f *fakeAPI) Quiz(_ context.Context, topic string, count int) ([]api.QuizItem, error) {
	f.quizTopic, f.quizCount = topic, count
	return f.quiz, f.quizErr
}

func (f *fakeAPI) SubmitQuizResult(_ context.Context, score, total int, topic string) error {
	f.submitCalled = true
	f.submitScore, f.submitTotal, f.submitTopic = score, total, topic
	return f.submitErr
}

func (f *fakeAPI) History(_ context.Context, limit int) ([]api.HistoryEntry, error) {
	f.historyLim = limit
	return f.history, f.historyErr
}

// ---- app under test ----

func newTestApp(t *testing.T, apiClient api.Client) (*App, *bytes.Buffer) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(`CREATE TABLE local_state (key TEXT PRIMARY KEY, value BLOB NOT NULL);`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	logger := logging.NewTextLogger(io.Discard, slog.LevelError)
	store := session.NewStore(db, logger)
	store.Initialize(context.Background())

	cfg := &config.Config{}
	cfg.LoadDefaults()

	var out bytes.Buffer
	a := &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		session: store,
		guard:   guard.New(store),
		api:     apiClient,
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     &out,
	}
	return a, &out
}

func loginTestApp(t *testing.T, a *App) {
	t.Helper()
	err := a.session.Login(context.Background(),
		"tok-test", api.Identity{ID: "u1", Email: "alice@example.org", Name: "Alice Cooper"})
	if err != nil {
		t.Fatalf("test login: %v", err)
	}
}
