package server

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"studypilot/internal/common"
)

type user struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

type document struct {
	ID         string
	Filename   string
	Content    []byte
	UploadedAt time.Time
}

type historyEntry struct {
	ID        string
	Question  string
	Answer    string
	Sources   []string
	Type      string
	Timestamp time.Time
}

type quizResult struct {
	Topic string
	Score int
	Total int
	When  time.Time
}

// memStore keeps all backend state in process memory. It exists for local
// development and integration tests, so losing state on restart is fine.
type memStore struct {
	mu          sync.RWMutex
	users       map[string]*user // keyed by id
	byEmail     map[string]string
	documents   map[string][]document // keyed by user id
	history     map[string][]historyEntry
	quizResults map[string][]quizResult
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[string]*user),
		byEmail:     make(map[string]string),
		documents:   make(map[string][]document),
		history:     make(map[string][]historyEntry),
		quizResults: make(map[string][]quizResult),
	}
}

func (s *memStore) createUser(name, email string, passwordHash []byte) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := s.byEmail[key]; exists {
		return nil, common.ErrEmailTaken
	}

	u := &user{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users[u.ID] = u
	s.byEmail[key] = u.ID
	return u, nil
}

func (s *memStore) userByEmail(email string) (*user, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s.users[id], nil
}

func (s *memStore) userByID(id string) (*user, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (s *memStore) addDocument(userID, filename string, content []byte) document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := document{
		ID:         uuid.NewString(),
		Filename:   filename,
		Content:    content,
		UploadedAt: time.Now(),
	}
	s.documents[userID] = append(s.documents[userID], doc)
	return doc
}

func (s *memStore) documentsFor(userID string) []document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]document, len(s.documents[userID]))
	copy(docs, s.documents[userID])
	// newest first
	sort.Slice(docs, func(i, j int) bool { return docs[i].UploadedAt.After(docs[j].UploadedAt) })
	return docs
}

func (s *memStore) addHistory(userID string, entry historyEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uuid.NewString()
	s.history[userID] = append(s.history[userID], entry)
}

// historyFor returns up to limit entries, newest first.
func (s *memStore) historyFor(userID string, limit int) []historyEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.history[userID]
	entries := make([]historyEntry, len(all))
	copy(entries, all)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Timestamp.After(entries[j].Timestamp) })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func (s *memStore) historyCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history[userID])
}

func (s *memStore) addQuizResult(userID string, r quizResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizResults[userID] = append(s.quizResults[userID], r)
}

// averageQuizScore returns the mean percentage across all submitted results,
// zero when nothing has been submitted yet.
func (s *memStore) averageQuizScore(userID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := s.quizResults[userID]
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		if r.Total > 0 {
			sum += float64(r.Score) / float64(r.Total) * 100
		}
	}
	return sum / float64(len(results))
}
