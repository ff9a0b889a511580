package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"regguard/internal/registration/models"
	"regguard/pkg/email"
	"regguard/pkg/platform/sentinel"
)

const (
	emailsKey    = "regguard:users:emails"
	usernamesKey = "regguard:users:usernames"
)

// RedisDirectory keeps registered emails and usernames in two Redis sets.
type RedisDirectory struct {
	client redis.Cmdable
}

func NewRedisDirectory(client redis.Cmdable) *RedisDirectory {
	return &RedisDirectory{client: client}
}

func (d *RedisDirectory) EmailExists(ctx context.Context, address string) (bool, error) {
	return d.isMember(ctx, emailsKey, email.Normalize(address))
}

func (d *RedisDirectory) UsernameExists(ctx context.Context, username string) (bool, error) {
	return d.isMember(ctx, usernamesKey, normalizeUsername(username))
}

func (d *RedisDirectory) isMember(ctx context.Context, key, member string) (bool, error) {
	ok, err := d.client.SIsMember(ctx, key, member).Result()
	if err != nil {
		return false, fmt.Errorf("query user directory %w: %w", sentinel.ErrUnavailable, err)
	}
	return ok, nil
}

// Complete records the attempt's user once the host reports it persisted.
func (d *RedisDirectory) Complete(ctx context.Context, attempt models.RegistrationAttempt) error {
	_, err := d.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if attempt.Email != "" {
			pipe.SAdd(ctx, emailsKey, email.Normalize(attempt.Email))
		}
		if attempt.Username != "" {
			pipe.SAdd(ctx, usernamesKey, normalizeUsername(attempt.Username))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record registered user %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}
