// Package http provides HTTP server configuration options.
package http

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Options defines configuration options for the HTTP server.
type Options struct {
	Addr            string        `json:"addr" mapstructure:"addr"`
	Mode            string        `json:"mode" mapstructure:"mode"`
	ReadTimeout     time.Duration `json:"read-timeout" mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `json:"write-timeout" mapstructure:"write-timeout"`
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// NewOptions creates a new Options object with default values.
func NewOptions() *Options {
	return &Options{
		Addr:            ":8440",
		Mode:            "release",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// AddFlags adds flags for HTTP options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Addr, "http.addr", o.Addr, "HTTP listen address")
	fs.StringVar(&o.Mode, "http.mode", o.Mode, "Gin mode (debug|release|test)")
	fs.DurationVar(&o.ReadTimeout, "http.read-timeout", o.ReadTimeout, "HTTP read timeout")
	fs.DurationVar(&o.WriteTimeout, "http.write-timeout", o.WriteTimeout, "HTTP write timeout")
	fs.DurationVar(&o.ShutdownTimeout, "http.shutdown-timeout", o.ShutdownTimeout, "Graceful shutdown timeout")
}

// Validate checks if the options are valid.
func (o *Options) Validate() error {
	switch o.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin mode %q", o.Mode)
	}
	if o.Addr == "" {
		return fmt.Errorf("http listen address is required")
	}
	return nil
}
