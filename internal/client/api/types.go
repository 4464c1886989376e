package api

// Identity is the authenticated user as reported by the backend. The client
// treats it as opaque beyond display.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResult is the payload of a successful login or signup.
type AuthResult struct {
	AccessToken string   `json:"accessToken"`
	User        Identity `json:"user"`
}

// DashboardStats holds the summary numbers shown on the dashboard.
type DashboardStats struct {
	Documents  int     `json:"documents"`
	Questions  int     `json:"questions"`
	StudyHours float64 `json:"study_hours"`
	QuizScore  float64 `json:"quiz_score"`
}

// DocumentRecord is one entry of the uploaded-document inventory.
type DocumentRecord struct {
	Filename   string `json:"filename"`
	UploadedAt string `json:"uploaded_at"`
}

// InventoryStatus is the backend's view of what has been ingested so far.
type InventoryStatus struct {
	UploadedDocuments int              `json:"uploaded_documents"`
	Documents         []DocumentRecord `json:"documents"`
}

// AnswerType distinguishes answers grounded in uploaded documents from
// general-knowledge fallbacks.
type AnswerType string

const (
	AnswerRAG       AnswerType = "rag"
	AnswerWikipedia AnswerType = "wikipedia"
)

// Answer is the response to a single question.
type Answer struct {
	Text    string     `json:"answer"`
	Sources []string   `json:"sources,omitempty"`
	Type    AnswerType `json:"type,omitempty"`
}

// QuizItem is one generated multiple-choice question. CorrectAnswer is the
// canonical correct option and must appear in Options.
type QuizItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Valid reports whether the item's canonical answer is among its options.
// Items failing this check are unusable for scoring and get skipped.
func (q QuizItem) Valid() bool {
	for _, o := range q.Options {
		if o == q.CorrectAnswer {
			return true
		}
	}
	return false
}

// HistoryEntry is one prior question/answer pair from the backend log.
type HistoryEntry struct {
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// UploadFile is one file of an upload batch, read fully into memory by the
// caller before the request is assembled.
type UploadFile struct {
	Name    string
	Content []byte
}
