// Package jwt provides JWT verification configuration options.
//
// CaseGate verifies tokens minted by the upstream identity service; it never
// issues tokens itself.
package jwt

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// MinKeyLength is the minimum accepted signing key length.
const MinKeyLength = 32

// Options contains JWT verification configuration.
type Options struct {
	// Key is the shared HMAC verification key. Accepted from the
	// environment only.
	Key string `json:"-" mapstructure:"key"`

	// Issuer is the expected token issuer.
	Issuer string `json:"issuer" mapstructure:"issuer"`
}

// NewOptions creates a new Options object with default values.
func NewOptions() *Options {
	return &Options{
		Issuer: "casegate",
	}
}

// AddFlags adds flags for JWT options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Issuer, "jwt.issuer", o.Issuer, "Expected JWT issuer")
}

// Validate checks if the options are valid.
func (o *Options) Validate() error {
	if o.Key == "" {
		o.Key = os.Getenv("CASEGATE_JWT_KEY")
	}
	if len(o.Key) < MinKeyLength {
		return fmt.Errorf("jwt key must be at least %d bytes (set CASEGATE_JWT_KEY)", MinKeyLength)
	}
	return nil
}
