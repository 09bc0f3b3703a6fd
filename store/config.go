package store

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
)

// Driver names accepted by Open.
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// RedisConfig holds connection settings for the Redis backend.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db,omitempty"`
	TTLHours int    `json:"ttl_hours,omitempty"`
}

// Config selects and parameterizes a storage backend.
type Config struct {
	Driver string      `json:"driver,omitempty"`
	Path   string      `json:"path,omitempty"` // file driver root directory
	Redis  RedisConfig `json:"redis,omitempty"`
}

// DefaultConfig returns a file-backed configuration rooted at
// .copilot/discussions in the working directory.
func DefaultConfig() Config {
	return Config{
		Driver: DriverFile,
		Path:   filepath.Join(".copilot", "discussions"),
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Driver != "" {
		c.Driver = source.Driver
	}
	if source.Path != "" {
		c.Path = source.Path
	}
	if source.Redis.Addr != "" {
		c.Redis.Addr = source.Redis.Addr
	}
	if source.Redis.Password != "" {
		c.Redis.Password = source.Redis.Password
	}
	if source.Redis.DB != 0 {
		c.Redis.DB = source.Redis.DB
	}
	if source.Redis.TTLHours > 0 {
		c.Redis.TTLHours = source.Redis.TTLHours
	}
}

// Open creates the Store and AuditSink described by cfg.
func Open(cfg *Config) (Store, AuditSink, error) {
	switch cfg.Driver {
	case DriverFile, "":
		path := cfg.Path
		if path == "" {
			path = DefaultConfig().Path
		}
		s, err := NewFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		audit, err := NewFileAuditLog(filepath.Join(filepath.Dir(path), "audit.log"))
		if err != nil {
			return nil, nil, err
		}
		return s, audit, nil

	case DriverRedis:
		if cfg.Redis.Addr == "" {
			return nil, nil, fmt.Errorf("%w: redis driver requires addr", ErrInvalidConfig)
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ttl := time.Duration(cfg.Redis.TTLHours) * time.Hour
		return NewRedisStore(client, ttl), NewRedisAuditLog(client), nil

	case DriverMemory:
		return NewMemoryStore(), NewMemoryAuditLog(), nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}
