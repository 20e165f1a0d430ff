package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/shopledger/shopledger-backend/pkg/config"
	"github.com/shopledger/shopledger-backend/pkg/enums"
	"github.com/shopledger/shopledger-backend/pkg/redis"
)

// challengeStore is the subset of the redis client the OTP flow needs.
type challengeStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	OTPKey(role, phone string) string
}

// Store issues and verifies one-time login codes. Challenges live in redis
// under a per-role, per-phone key and expire after the configured TTL.
type Store struct {
	cfg   config.OTPConfig
	redis challengeStore
}

func NewStore(cfg config.OTPConfig, client *redis.Client) (*Store, error) {
	if client == nil {
		return nil, errors.New("otp: redis client is required")
	}
	if cfg.CodeLength <= 0 {
		return nil, errors.New("otp: code length must be positive")
	}
	return &Store{cfg: cfg, redis: client}, nil
}

// Issue generates a fresh code for the phone, replacing any outstanding
// challenge for the same role/phone pair.
func (s *Store) Issue(ctx context.Context, role enums.ActorRole, phone string) (string, error) {
	code, err := s.generateCode()
	if err != nil {
		return "", fmt.Errorf("generating otp code: %w", err)
	}
	key := s.redis.OTPKey(string(role), phone)
	if err := s.redis.Set(ctx, key, code, s.cfg.TTL); err != nil {
		return "", fmt.Errorf("storing otp challenge: %w", err)
	}
	return code, nil
}

// Verify consumes the outstanding challenge if the code matches. The mock
// code, when configured, is always accepted; it exists so dev environments
// can log in without an SMS provider.
func (s *Store) Verify(ctx context.Context, role enums.ActorRole, phone, code string) (bool, error) {
	if code == "" {
		return false, nil
	}

	key := s.redis.OTPKey(string(role), phone)

	if s.cfg.MockCode != "" && subtle.ConstantTimeCompare([]byte(code), []byte(s.cfg.MockCode)) == 1 {
		_ = s.redis.Del(ctx, key)
		return true, nil
	}

	stored, err := s.redis.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("loading otp challenge: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(stored)) != 1 {
		return false, nil
	}
	if err := s.redis.Del(ctx, key); err != nil {
		return false, fmt.Errorf("consuming otp challenge: %w", err)
	}
	return true, nil
}

func (s *Store) generateCode() (string, error) {
	const digits = "0123456789"
	buf := make([]byte, s.cfg.CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = digits[int(b)%len(digits)]
	}
	return string(buf), nil
}
