package casegate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kart-io/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "casegate"

// NewApp creates the casegate root command.
func NewApp() *cobra.Command {
	opts := NewOptions()
	var configFile string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "CaseGate access decision and audit service",
		Long: `CaseGate is the authorization and access-isolation service for a
multi-program case management platform. It resolves per-program roles,
evaluates scoping rules, and records every enforcement decision in an
append-only audit trail.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			version.PrintAndExitIfRequested()
			return loadConfig(configFile, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			return Run(opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the configuration file")
	opts.AddFlags(cmd.PersistentFlags())
	version.AddFlags(cmd.PersistentFlags())

	return cmd
}

// loadConfig merges the config file and CASEGATE_* environment variables into
// opts. Flags keep the highest precedence because they bind directly to the
// option fields.
func loadConfig(configFile string, opts *Options) error {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/casegate")
	}

	v.SetEnvPrefix("CASEGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(opts); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}
