// Package session owns the client's authenticated-session state: who is
// logged in, whether the startup restore is still running, and the durable
// credential pair backing it. It is the only component that touches durable
// storage; navigation is the caller's reaction to a state change, never a
// side effect of the store.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"studypilot/internal/client/api"
	"studypilot/internal/client/repositories/localstate"
	"studypilot/internal/dbx"
	"studypilot/internal/logging"
)

// The credential pair lives under two keys, written and cleared together.
const (
	keyAccessToken = "access_token"
	keyIdentity    = "user"
)

// Store is the single source of truth for the current session.
//
// Lifecycle: created with loading=true and no identity; Initialize runs the
// startup restore exactly once and clears loading; Login sets the identity,
// Logout clears it. IsAuthenticated is always derived from the identity,
// never cached separately.
type Store struct {
	db     *sql.DB
	logger logging.Logger

	user    *api.Identity
	token   string
	loading bool
}

var _ api.TokenSource = (*Store)(nil)

func NewStore(db *sql.DB, logger logging.Logger) *Store {
	return &Store{db: db, logger: logger, loading: true}
}

func (s *Store) getRepo() localstate.Repository {
	return localstate.NewSQLiteRepository(s.db)
}

// Initialize restores the persisted session, if any. Fail-closed: unless
// both halves of the credential pair are present and the identity parses
// into the expected shape, the pair is purged and the session starts
// unauthenticated. It never panics or returns an error — a corrupt local
// record must not be able to break application start.
func (s *Store) Initialize(ctx context.Context) {
	defer func() { s.loading = false }()

	repo := s.getRepo()

	token, err := repo.Get(ctx, keyAccessToken)
	if err != nil {
		s.logger.Warn(ctx, "session restore: storage read failed, starting unauthenticated", "err", err)
		return
	}
	rawIdentity, err := repo.Get(ctx, keyIdentity)
	if err != nil {
		s.logger.Warn(ctx, "session restore: storage read failed, starting unauthenticated", "err", err)
		return
	}

	if len(token) == 0 && len(rawIdentity) == 0 {
		// Nothing persisted; a fresh start, nothing to purge.
		return
	}

	user, ok := parseIdentity(rawIdentity)
	if len(token) == 0 || !ok {
		s.logger.Warn(ctx, "session restore: discarding partial or corrupt credential pair")
		s.purge(ctx)
		return
	}

	s.token = string(token)
	s.user = &user
	s.logger.Info(ctx, "session restored", "email", user.Email)
}

// parseIdentity decodes the persisted identity payload. An identity without
// an ID is treated as corrupt: it could never have come from a successful
// authentication response.
func parseIdentity(raw []byte) (api.Identity, bool) {
	var user api.Identity
	if len(raw) == 0 {
		return user, false
	}
	if err := json.Unmarshal(raw, &user); err != nil {
		return user, false
	}
	if user.ID == "" {
		return user, false
	}
	return user, true
}

// Login persists the credential pair durably and then updates the in-memory
// session. Any prior session is overwritten unconditionally. Both keys are
// written in one transaction so a crash cannot leave half a pair behind.
func (s *Store) Login(ctx context.Context, token string, user api.Identity) error {
	rawIdentity, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: failed to encode identity: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstate.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyAccessToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyIdentity, rawIdentity)
	})
	if err != nil {
		return fmt.Errorf("session: failed to persist credentials: %w", err)
	}

	s.token = token
	s.user = &user
	return nil
}

// Logout purges the persisted pair and clears the in-memory session.
// Idempotent: with no active session it is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.getRepo().Clear(ctx); err != nil {
		return fmt.Errorf("session: failed to clear credentials: %w", err)
	}
	s.token = ""
	s.user = nil
	return nil
}

// purge drops the durable record; failures are logged and swallowed because
// the caller is already treating the session as absent.
func (s *Store) purge(ctx context.Context) {
	if err := s.getRepo().Clear(ctx); err != nil {
		s.logger.Warn(ctx, "session: failed to purge stale credentials", "err", err)
	}
}

// IsAuthenticated reports whether an identity is present. Derived on every
// call; there is no separately cached flag to drift out of sync.
func (s *Store) IsAuthenticated() bool {
	return s.user != nil
}

// Loading reports whether the startup restore is still pending.
func (s *Store) Loading() bool {
	return s.loading
}

// Identity returns a copy of the current identity, or nil when logged out.
func (s *Store) Identity() *api.Identity {
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Token returns the current bearer token; empty when logged out. This makes
// the store the api.TokenSource for every outgoing request.
func (s *Store) Token() string {
	return s.token
}
