// Package tokens implements the single-use magic-link token store.
// Tokens live in redis with a short TTL; only a SHA-256 digest of the
// token is ever stored, so a leaked dump cannot be replayed.
package tokens

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tokenBytes = 32
	// TokenTTL is how long a sign-in link stays valid.
	TokenTTL = 15 * time.Minute

	rateWindow      = time.Minute
	maxLinksPerWindow = 5
)

var (
	// ErrNotFound means the token is unknown, expired, or already used.
	ErrNotFound = errors.New("tokens: token not found")
	// ErrRateLimited means the email requested too many links recently.
	ErrRateLimited = errors.New("tokens: rate limit exceeded")
)

// Open connects to redis and verifies the connection with a ping.
func Open(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// Store issues and consumes magic-link tokens.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a Store with the default token TTL.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, ttl: TokenTTL}
}

// Issue generates a fresh token for the email and records its digest.
// At most five links per minute may be issued per address.
func (s *Store) Issue(ctx context.Context, email string) (string, error) {
	rateKey := "magiclink_rate:" + email
	count, err := s.rdb.Incr(ctx, rateKey).Result()
	if err != nil {
		return "", err
	}
	if count == 1 {
		if err := s.rdb.Expire(ctx, rateKey, rateWindow).Err(); err != nil {
			return "", err
		}
	}
	if count > maxLinksPerWindow {
		return "", ErrRateLimited
	}

	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	if err := s.rdb.Set(ctx, digestKey(token), email, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Consume redeems a token and returns the email it was issued for.
// Redemption deletes the digest, so a token works exactly once.
func (s *Store) Consume(ctx context.Context, token string) (string, error) {
	email, err := s.rdb.GetDel(ctx, digestKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

func digestKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "magiclink:" + hex.EncodeToString(sum[:])
}
