// Package otp keeps one-time login codes in Redis with a hard TTL. The store
// never retains history: a new code for a phone supersedes whatever was there.
package otp

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a code stays usable after dispatch.
const DefaultTTL = 2 * time.Minute

const keyPrefix = "otp:"

var ErrUnavailable = errors.New("otp: store unavailable")

// entry is the persisted shape of a pending code.
type entry struct {
	Code      string    `json:"code"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is a Redis-backed one-time-code cache. Correctness of concurrent
// consume attempts is delegated to Redis key-level atomicity; the store holds
// no in-process state.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func key(phone string) string { return keyPrefix + phone }

// Put records a code for phone with the given TTL, overwriting any prior
// entry for that phone.
func (s *Store) Put(ctx context.Context, phone, code string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	payload, err := json.Marshal(entry{
		Code:      code,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, key(phone), payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Consume atomically checks code against the live entry for phone. On a match
// the entry is deleted and true is returned; exactly one of two concurrent
// correct attempts can win. A mismatch leaves the entry in place so the code
// stays usable until expiry. Absent or expired entries yield false.
func (s *Store) Consume(ctx context.Context, phone, code string) (bool, error) {
	const maxRetries = 4
	k := key(phone)

	for range maxRetries {
		var matched bool

		err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, k).Bytes()
			if err != nil {
				return err
			}

			var e entry
			if err := json.Unmarshal(data, &e); err != nil {
				return err
			}

			if subtle.ConstantTimeCompare([]byte(e.Code), []byte(code)) != 1 {
				// Wrong guess: the entry stays live.
				return nil
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Del(ctx, k)
				return nil
			})
			if err != nil {
				return err
			}

			matched = true
			return nil
		}, k)

		if errors.Is(err, redis.TxFailedErr) {
			// Key changed under us; retry the optimistic lock.
			continue
		}
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		return matched, nil
	}

	return false, nil
}
