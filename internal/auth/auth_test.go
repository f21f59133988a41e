package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"eventhub/internal/auth"
	apperrors "eventhub/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySessionStore 測試用的 in-memory SessionStore
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]int
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]int)}
}

func (s *memorySessionStore) Save(_ context.Context, sessionID string, userID int, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = userID
	return nil
}

func (s *memorySessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	return ok, nil
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *memorySessionStore) only(t *testing.T) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.sessions, 1)
	for id := range s.sessions {
		return id
	}
	return ""
}

func TestManagerIssueAndVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - round trip returns the user id", func(t *testing.T) {
		store := newMemorySessionStore()
		manager := auth.NewManager("secret", time.Hour, store)

		token, err := manager.Issue(ctx, 42)
		require.NoError(t, err)

		userID, err := manager.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, 42, userID)
	})

	t.Run("Failed - revoked session is rejected", func(t *testing.T) {
		store := newMemorySessionStore()
		manager := auth.NewManager("secret", time.Hour, store)

		token, err := manager.Issue(ctx, 42)
		require.NoError(t, err)

		require.NoError(t, manager.Revoke(ctx, store.only(t)))

		_, err = manager.Verify(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("Failed - token signed with another secret", func(t *testing.T) {
		store := newMemorySessionStore()
		issuer := auth.NewManager("other-secret", time.Hour, store)
		manager := auth.NewManager("secret", time.Hour, store)

		token, err := issuer.Issue(ctx, 42)
		require.NoError(t, err)

		_, err = manager.Verify(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("Failed - expired token", func(t *testing.T) {
		store := newMemorySessionStore()
		manager := auth.NewManager("secret", -time.Minute, store)

		token, err := manager.Issue(ctx, 42)
		require.NoError(t, err)

		_, err = manager.Verify(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("Failed - garbage token", func(t *testing.T) {
		store := newMemorySessionStore()
		manager := auth.NewManager("secret", time.Hour, store)

		_, err := manager.Verify(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
