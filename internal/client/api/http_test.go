package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studypilot/internal/common"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(HTTPConfig{BaseURL: srv.URL, Tokens: tokens})
	require.NoError(t, err)
	return c
}

func TestLogin_ParsesAuthResult(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"), "login must go out unauthenticated")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accessToken":"tok-1","user":{"id":"u1","email":"a@b.c","name":"Alice"}}`))
	}), staticTokens(""))

	res, err := c.Login(context.Background(), "a@b.c", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.AccessToken)
	assert.Equal(t, "Alice", res.User.Name)
}

func TestLogin_BackendMessageSurfacesVerbatim(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	}), nil)

	_, err := c.Login(context.Background(), "a@b.c", []byte("bad"))
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestDoRequest_AttachesBearerToken(t *testing.T) {
	var got string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"stats":{"documents":2}}`))
	}), staticTokens("tok-9"))

	_, err := c.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-9", got)
}

func TestDoRequest_NoTokenNoHeader(t *testing.T) {
	var present bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"success":true,"stats":{}}`))
	}), staticTokens(""))

	_, err := c.Dashboard(context.Background())
	require.NoError(t, err)
	assert.False(t, present, "no token must mean no Authorization header at all")
}

func TestEnvelope_SuccessFalseOn200IsError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"No documents uploaded yet"}`))
	}), nil)

	_, err := c.Summarize(context.Background(), "entropy")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "No documents uploaded yet", apiErr.Message)
}

func TestTransportFailure_WrapsErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // dead endpoint

	c, err := NewHTTPClient(HTTPConfig{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Ask(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestUploadFiles_RejectsOversizedBatchBeforeNetwork(t *testing.T) {
	hits := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}), nil)

	files := make([]UploadFile, 6)
	for i := range files {
		files[i] = UploadFile{Name: "f.txt", Content: []byte("x")}
	}

	err := c.UploadFiles(context.Background(), files)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrTooManyFiles))
	assert.Zero(t, hits, "oversized batch must never reach the wire")
}

func TestUploadFiles_FiveFilesOneMultipartRequest(t *testing.T) {
	hits := 0
	var partNames []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		require.NoError(t, r.ParseMultipartForm(1<<20))
		for _, fh := range r.MultipartForm.File["files"] {
			partNames = append(partNames, fh.Filename)
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}), nil)

	files := []UploadFile{
		{Name: "a.pdf", Content: []byte("a")},
		{Name: "b.pdf", Content: []byte("b")},
		{Name: "c.txt", Content: []byte("c")},
		{Name: "d.md", Content: []byte("d")},
		{Name: "e.docx", Content: []byte("e")},
	}
	require.NoError(t, c.UploadFiles(context.Background(), files))

	assert.Equal(t, 1, hits, "exactly one request for the whole batch")
	assert.Len(t, partNames, 5)
}

func TestUploadFiles_EmptyBatchRejected(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler(), nil)
	err := c.UploadFiles(context.Background(), nil)
	assert.True(t, errors.Is(err, common.ErrNoFilesSelected))
}

func TestHistory_PassesLimitQuery(t *testing.T) {
	var gotLimit string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`{"success":true,"history":[{"question":"q","answer":"a","timestamp":"t"}]}`))
	}), nil)

	entries, err := c.History(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, "50", gotLimit)
	require.Len(t, entries, 1)
	assert.Equal(t, "q", entries[0].Question)
}

func TestQuizItem_Valid(t *testing.T) {
	ok := QuizItem{Question: "?", Options: []string{"a", "b"}, CorrectAnswer: "b"}
	bad := QuizItem{Question: "?", Options: []string{"a", "b"}, CorrectAnswer: "z"}
	assert.True(t, ok.Valid())
	assert.False(t, bad.Valid())
}

func TestAsk_ParsesAnswerWithSources(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"answer":"X","sources":["doc1"],"type":"rag"}`))
	}), nil)

	ans, err := c.Ask(context.Background(), "what is X?")
	require.NoError(t, err)
	assert.Equal(t, "X", ans.Text)
	assert.Equal(t, []string{"doc1"}, ans.Sources)
	assert.Equal(t, AnswerRAG, ans.Type)
}

func TestNonJSONErrorBody_GenericError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>upstream exploded</html>`))
	}), nil)

	_, err := c.Dashboard(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.NotContains(t, apiErr.Error(), "html")
}
