package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/behnamfe76/user-service/internal/domain"
)

const (
	userByEmailKeyPrefix      = "users:email:"
	userEmailGenerationPrefix = "users:email-gen:"

	// generation keys must outlive any in-flight read; they only reset to absent after this long.
	userEmailGenerationTTL = 24 * time.Hour
)

var errStaleRead = errors.New("user cache: read raced a write")

type cachedUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// cachedUserRepository serves GetByEmail from Redis and falls through to the wrapped repository.
// Writes go to the wrapped repository first, then bump the email's generation and evict its key.
// A read only fills the cache when the generation it saw before its database read is still current.
type cachedUserRepository struct {
	UserRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedUserRepository wraps next with a read-through email lookup cache.
// A nil client returns next unchanged.
func NewCachedUserRepository(next UserRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) UserRepository {
	if client == nil {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedUserRepository{UserRepository: next, client: client, ttl: ttl, logger: logger}
}

func (r *cachedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	key := userByEmailKeyPrefix + email

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedUser
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			user := domain.User(cached)
			return &user, nil
		}
		r.logger.Warn("dropping undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("user cache read failed", zap.Error(err))
	}

	generation, genErr := r.generation(ctx, email)

	user, err := r.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		r.fill(ctx, key, email, generation, user)
	}
	return user, nil
}

func (r *cachedUserRepository) generation(ctx context.Context, email string) (string, error) {
	gen, err := r.client.Get(ctx, userEmailGenerationPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		r.logger.Warn("user cache generation read failed", zap.Error(err))
		return "", err
	}
	return gen, nil
}

// fill stores user under key unless a write to email happened since generation was read.
func (r *cachedUserRepository) fill(ctx context.Context, key, email, generation string, user *domain.User) {
	payload, err := json.Marshal(cachedUser(*user))
	if err != nil {
		return
	}

	genKey := userEmailGenerationPrefix + email
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleRead
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleRead), errors.Is(err, redis.TxFailedErr):
		r.logger.Debug("skipping user cache fill after concurrent write", zap.String("key", key))
	default:
		r.logger.Warn("user cache write failed", zap.Error(err))
	}
}

func (r *cachedUserRepository) Update(ctx context.Context, user *domain.User) error {
	previous, err := r.UserRepository.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if err := r.UserRepository.Update(ctx, user); err != nil {
		return err
	}
	r.evict(ctx, previous.Email, user.Email)
	return nil
}

func (r *cachedUserRepository) Delete(ctx context.Context, id int64) error {
	previous, err := r.UserRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.UserRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, previous.Email)
	return nil
}

func (r *cachedUserRepository) evict(ctx context.Context, emails ...string) {
	keys := make([]string, 0, len(emails))
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, email := range emails {
			genKey := userEmailGenerationPrefix + email
			pipe.Incr(ctx, genKey)
			pipe.Expire(ctx, genKey, userEmailGenerationTTL)
			keys = append(keys, userByEmailKeyPrefix+email)
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		r.logger.Warn("user cache eviction failed", zap.Error(err), zap.Strings("keys", keys))
	}
}
