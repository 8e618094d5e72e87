// Package redis provides Redis configuration options.
package redis

import (
	"fmt"
	"os"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

// Options defines configuration options for Redis.
type Options struct {
	// Enabled switches the session context store from in-memory to Redis.
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	Host         string        `json:"host" mapstructure:"host"`
	Port         int           `json:"port" mapstructure:"port"`
	Password     string        `json:"-" mapstructure:"password"`
	Database     int           `json:"database" mapstructure:"database"`
	PoolSize     int           `json:"pool-size" mapstructure:"pool-size"`
	MinIdleConns int           `json:"min-idle-conns" mapstructure:"min-idle-conns"`
	DialTimeout  time.Duration `json:"dial-timeout" mapstructure:"dial-timeout"`
	ReadTimeout  time.Duration `json:"read-timeout" mapstructure:"read-timeout"`
	WriteTimeout time.Duration `json:"write-timeout" mapstructure:"write-timeout"`
}

// NewOptions creates a new Options object with default values.
func NewOptions() *Options {
	return &Options{
		Host:         "127.0.0.1",
		Port:         6379,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// String returns a representation safe for logging.
func (o *Options) String() string {
	return fmt.Sprintf("Redis{enabled=%t, host=%s, port=%d, database=%d}",
		o.Enabled, o.Host, o.Port, o.Database)
}

// AddFlags adds flags for Redis options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "redis.enabled", o.Enabled, "Use Redis for session context storage")
	fs.StringVar(&o.Host, "redis.host", o.Host, "Redis host")
	fs.IntVar(&o.Port, "redis.port", o.Port, "Redis port")
	fs.IntVar(&o.Database, "redis.database", o.Database, "Redis database index")
	fs.IntVar(&o.PoolSize, "redis.pool-size", o.PoolSize, "Redis connection pool size")
	fs.IntVar(&o.MinIdleConns, "redis.min-idle-conns", o.MinIdleConns, "Redis minimum idle connections")
	fs.DurationVar(&o.DialTimeout, "redis.dial-timeout", o.DialTimeout, "Redis dial timeout")
	fs.DurationVar(&o.ReadTimeout, "redis.read-timeout", o.ReadTimeout, "Redis read timeout")
	fs.DurationVar(&o.WriteTimeout, "redis.write-timeout", o.WriteTimeout, "Redis write timeout")
}

// Validate checks if the options are valid. The password comes from the
// environment only.
func (o *Options) Validate() error {
	if o.Password == "" {
		o.Password = os.Getenv("CASEGATE_REDIS_PASSWORD")
	}
	return nil
}

// NewClient creates a Redis client from the options.
func (o *Options) NewClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", o.Host, o.Port),
		Password:     o.Password,
		DB:           o.Database,
		PoolSize:     o.PoolSize,
		MinIdleConns: o.MinIdleConns,
		DialTimeout:  o.DialTimeout,
		ReadTimeout:  o.ReadTimeout,
		WriteTimeout: o.WriteTimeout,
	})
}
