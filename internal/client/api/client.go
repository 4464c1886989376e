// Package api implements the HTTP client for the StudyPilot backend.
// All calls are plain JSON request/response against a fixed base URL;
// authenticated endpoints carry the current bearer token.
package api

import "context"

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client defines every backend operation the feature views depend on.
//
// Contract (applies to all methods):
//   - no retries and no timeouts at this layer; failures propagate to the
//     caller, which owns user-facing error presentation,
//   - a non-2xx response or a success=false envelope becomes an *Error
//     carrying the backend's message,
//   - transport failures match ErrUnavailable via errors.Is.
type Client interface {
	Login(ctx context.Context, email string, password []byte) (*AuthResult, error)
	Signup(ctx context.Context, name, email string, password []byte) (*AuthResult, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Status(ctx context.Context) (*InventoryStatus, error)
	UploadFiles(ctx context.Context, files []UploadFile) error
	Ask(ctx context.Context, question string) (*Answer, error)
	Summarize(ctx context.Context, topic string) (string, error)
	Quiz(ctx context.Context, topic string, numQuestions int) ([]QuizItem, error)
	SubmitQuizResult(ctx context.Context, score, total int, topic string) error
	History(ctx context.Context, limit int) ([]HistoryEntry, error)
}

// MaxUploadFiles is the largest batch the backend accepts per upload call.
// The client enforces it before any network traffic happens.
const MaxUploadFiles = 5
