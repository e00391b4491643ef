// Package redisstore keeps employee preferences in a Redis hash so they can be
// shared between server replicas.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "staffhours"

// PreferenceStore implements db.PreferenceStore on top of a single Redis hash
type PreferenceStore struct {
	client *redis.Client
	key    string
}

// Options configures the Redis connection
type Options struct {
	Address   string
	Password  string
	DB        int
	KeyPrefix string
}

// New connects to Redis and checks the connection
func New(ctx context.Context, opts Options) (*PreferenceStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewWithClient(client, opts.KeyPrefix), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client, keyPrefix string) *PreferenceStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &PreferenceStore{
		client: client,
		key:    keyPrefix + ":preferences",
	}
}

// Close closes the underlying client
func (s *PreferenceStore) Close() error {
	return s.client.Close()
}

// GetPreference returns the preference for an employee and whether one was set
func (s *PreferenceStore) GetPreference(ctx context.Context, employeeID int64) (string, bool, error) {
	value, err := s.client.HGet(ctx, s.key, field(employeeID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get preference for employee %d: %w", employeeID, err)
	}
	return value, true, nil
}

// SetPreference stores or replaces an employee's preference
func (s *PreferenceStore) SetPreference(ctx context.Context, employeeID int64, value string) error {
	if err := s.client.HSet(ctx, s.key, field(employeeID), value).Err(); err != nil {
		return fmt.Errorf("failed to set preference for employee %d: %w", employeeID, err)
	}
	return nil
}

// ListPreferences returns all preferences keyed by employee ID.
// Hash fields that are not employee IDs are skipped.
func (s *PreferenceStore) ListPreferences(ctx context.Context) (map[int64]string, error) {
	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}

	preferences := make(map[int64]string, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		preferences[id] = v
	}

	return preferences, nil
}

// DeletePreference removes an employee's preference
func (s *PreferenceStore) DeletePreference(ctx context.Context, employeeID int64) error {
	if err := s.client.HDel(ctx, s.key, field(employeeID)).Err(); err != nil {
		return fmt.Errorf("failed to delete preference for employee %d: %w", employeeID, err)
	}
	return nil
}

func field(employeeID int64) string {
	return strconv.FormatInt(employeeID, 10)
}
