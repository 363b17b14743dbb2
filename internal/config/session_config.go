package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type StoreKind string

const (
	StoreFile   StoreKind = "file"
	StoreMemory StoreKind = "memory"
	StoreRedis  StoreKind = "redis"
)

type SessionConfig interface {
	GetSessionStore() StoreKind
	GetSessionFile() string
	GetSessionKey() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisPrefix() string
	GetRedisTTL() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionStore() StoreKind {
	switch kind := StoreKind(GetEnv("SCHOOL_SESSION_STORE", string(StoreFile))); kind {
	case StoreFile, StoreMemory, StoreRedis:
		return kind
	default:
		return StoreFile
	}
}

func (Session) GetSessionFile() string {
	if path := GetEnv("SCHOOL_SESSION_FILE", ""); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".schoolctl", "session.json")
	}
	return filepath.Join(home, ".schoolctl", "session.json")
}

// GetSessionKey returns the passphrase used to seal the session file.
// Empty means the file is stored as plain JSON.
func (Session) GetSessionKey() string {
	return GetEnv("SCHOOL_SESSION_KEY", "")
}

func (Session) GetRedisAddr() string {
	return GetEnv("SCHOOL_REDIS_ADDR", "localhost:6379")
}

func (Session) GetRedisPassword() string {
	return GetEnv("SCHOOL_REDIS_PASSWORD", "")
}

func (Session) GetRedisDB() int {
	db, err := strconv.Atoi(GetEnv("SCHOOL_REDIS_DB", "0"))
	if err != nil {
		return 0
	}
	return db
}

func (Session) GetRedisPrefix() string {
	return GetEnv("SCHOOL_REDIS_PREFIX", "schoolctl:session:")
}

// GetRedisTTL is how long session keys live in Redis after each write.
// Zero keeps them until logout.
func (Session) GetRedisTTL() time.Duration {
	return GetDuration("SCHOOL_REDIS_TTL", 0)
}
