package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"

	"storegate/entities"
	"storegate/models"

	"github.com/redis/go-redis/v9"
)

// SessionRepository is the durable mirror of the auth state: two logical
// keys, the opaque bearer token and the serialized user record. It is read
// once at startup, written on login/register and cleared on logout. While
// the app runs the AuthStore, not this mirror, is the source of truth.
type SessionRepository interface {
	Save(token string, user entities.User) error
	Load() (token string, user entities.User, ok bool, err error)
	Clear() error
}

const (
	sessionKey      = "storegate:session"
	sessionTokenKey = "token"
	sessionUserKey  = "user"
)

type RedisSessionRepo struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisSessionRepository(redisConn *redis.Client, ctx context.Context) (SessionRepository, error) {
	if redisConn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redisConn.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}
	return &RedisSessionRepo{rdb: redisConn, ctx: ctx}, nil
}

func (s *RedisSessionRepo) Save(token string, user entities.User) (err error) {
	userData, err := json.Marshal(user)
	if err != nil {
		log.Printf("Save: %v", err)
		return models.ErrServerError
	}
	err = s.rdb.HSet(s.ctx, sessionKey, sessionTokenKey, token, sessionUserKey, userData).Err()
	if err != nil {
		log.Printf("Save: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *RedisSessionRepo) Load() (token string, user entities.User, ok bool, err error) {
	val, e := s.rdb.HGetAll(s.ctx, sessionKey).Result()
	if e != nil {
		log.Printf("Load: %v", e)
		err = models.ErrServerError
		return
	}
	token = val[sessionTokenKey]
	rawUser := val[sessionUserKey]
	if token == "" || rawUser == "" {
		return
	}
	if e := json.Unmarshal([]byte(rawUser), &user); e != nil {
		log.Printf("Load: %v", e)
		err = models.ErrServerError
		return
	}
	ok = true
	return
}

func (s *RedisSessionRepo) Clear() (err error) {
	err = s.rdb.Del(s.ctx, sessionKey).Err()
	if err != nil {
		log.Printf("Clear: %v", err)
		err = models.ErrServerError
	}
	return
}

// FileSessionRepo keeps the same two keys in a local JSON file, for
// single-node runs without redis.
type FileSessionRepo struct {
	path string
}

type sessionFile struct {
	Token string        `json:"token"`
	User  entities.User `json:"user"`
}

func NewFileSessionRepository(path string) (SessionRepository, error) {
	if path == "" {
		return nil, errors.New("path must be non-empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return &FileSessionRepo{path: path}, nil
}

func (s *FileSessionRepo) Save(token string, user entities.User) (err error) {
	data, err := json.Marshal(sessionFile{Token: token, User: user})
	if err != nil {
		log.Printf("Save: %v", err)
		return models.ErrServerError
	}
	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		log.Printf("Save: %v", err)
		return models.ErrServerError
	}
	if err = os.Rename(tmp, s.path); err != nil {
		log.Printf("Save: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *FileSessionRepo) Load() (token string, user entities.User, ok bool, err error) {
	data, e := os.ReadFile(s.path)
	if e != nil {
		if os.IsNotExist(e) {
			return
		}
		log.Printf("Load: %v", e)
		err = models.ErrServerError
		return
	}
	var sf sessionFile
	if e := json.Unmarshal(data, &sf); e != nil {
		log.Printf("Load: %v", e)
		err = models.ErrServerError
		return
	}
	if sf.Token == "" {
		return
	}
	token = sf.Token
	user = sf.User
	ok = true
	return
}

func (s *FileSessionRepo) Clear() (err error) {
	err = os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Clear: %v", err)
		return models.ErrServerError
	}
	return nil
}
