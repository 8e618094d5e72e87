// Package casegate assembles and runs the CaseGate service.
package casegate

import (
	"github.com/spf13/pflag"

	dbopts "github.com/caseworks/casegate/pkg/options/database"
	httpopts "github.com/caseworks/casegate/pkg/options/http"
	jwtopts "github.com/caseworks/casegate/pkg/options/jwt"
	logopts "github.com/caseworks/casegate/pkg/options/logger"
	redisopts "github.com/caseworks/casegate/pkg/options/redis"
)

// Options contains the configuration for the CaseGate server.
type Options struct {
	// Log contains logger configuration.
	Log *logopts.Options `json:"log" mapstructure:"log"`

	// HTTP contains HTTP server configuration.
	HTTP *httpopts.Options `json:"http" mapstructure:"http"`

	// JWT contains token verification configuration.
	JWT *jwtopts.Options `json:"jwt" mapstructure:"jwt"`

	// DB contains relational database configuration.
	DB *dbopts.Options `json:"db" mapstructure:"db"`

	// Redis contains session context store configuration.
	Redis *redisopts.Options `json:"redis" mapstructure:"redis"`
}

// NewOptions creates Options with default values.
func NewOptions() *Options {
	return &Options{
		Log:   logopts.NewOptions(),
		HTTP:  httpopts.NewOptions(),
		JWT:   jwtopts.NewOptions(),
		DB:    dbopts.NewOptions(),
		Redis: redisopts.NewOptions(),
	}
}

// AddFlags adds all option flags to the given FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.Log.AddFlags(fs)
	o.HTTP.AddFlags(fs)
	o.JWT.AddFlags(fs)
	o.DB.AddFlags(fs)
	o.Redis.AddFlags(fs)
}

// Validate checks whether the options are valid.
func (o *Options) Validate() error {
	if err := o.Log.Validate(); err != nil {
		return err
	}
	if err := o.HTTP.Validate(); err != nil {
		return err
	}
	if err := o.JWT.Validate(); err != nil {
		return err
	}
	if err := o.DB.Validate(); err != nil {
		return err
	}
	return o.Redis.Validate()
}
