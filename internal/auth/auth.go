// Package auth 是外部身分服務的介面層：本服務只驗證 token，
// 註冊、登入與密碼處理都在身分服務那一側。
package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	apperrors "eventhub/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenVerifier 驗證 bearer token 並回傳其使用者 id
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (int, error)
}

// SessionStore 保存身分服務發出的 session，讓 token 可以被撤銷
type SessionStore interface {
	Save(ctx context.Context, sessionID string, userID int, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// Manager 以 HS256 JWT 實作 TokenVerifier，sub 為使用者 id、jti 為 session id
type Manager struct {
	secret   []byte
	ttl      time.Duration
	sessions SessionStore
}

func NewManager(secret string, ttl time.Duration, sessions SessionStore) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, sessions: sessions}
}

// Issue 簽發 token 並登記 session，由身分服務在登入時呼叫
func (m *Manager) Issue(ctx context.Context, userID int) (string, error) {
	sessionID := uuid.NewString()
	claims := jwt.MapClaims{
		"sub": strconv.Itoa(userID),
		"jti": sessionID,
		"exp": time.Now().Add(m.ttl).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}

	if err := m.sessions.Save(ctx, sessionID, userID, m.ttl); err != nil {
		return "", err
	}

	return signed, nil
}

func (m *Manager) Verify(ctx context.Context, tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperrors.ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, apperrors.ErrInvalidToken
	}
	userID, err := strconv.Atoi(sub)
	if err != nil {
		return 0, apperrors.ErrInvalidToken
	}

	sessionID, _ := claims["jti"].(string)
	if sessionID == "" {
		return 0, apperrors.ErrInvalidToken
	}

	exists, err := m.sessions.Exists(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperrors.ErrSessionNotFound
	}

	return userID, nil
}

// Revoke 撤銷 session，之後持同一個 token 的請求都會被拒絕
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	return m.sessions.Delete(ctx, sessionID)
}

const sessionKeyPrefix = "session:"

// RedisSessionStore 以 redis 保存 session，TTL 與 token 到期時間一致
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, userID int, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKeyPrefix+sessionID, userID, ttl).Err()
}

func (s *RedisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
