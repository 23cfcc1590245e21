package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/internal/telemetry"
)

const (
	Bech32PrefixAccAddr = "paw"
	Bech32PrefixAccPub  = "pawpub"
)

var sdkConfigOnce sync.Once

// initSDKConfig sets the bech32 prefixes used by every derived address.
func initSDKConfig() {
	sdkConfigOnce.Do(func() {
		cfg := sdk.GetConfig()
		cfg.SetBech32PrefixForAccount(Bech32PrefixAccAddr, Bech32PrefixAccPub)
	})
}

// appState is shared by every subcommand once the root pre-run resolved it.
type appState struct {
	v        *viper.Viper
	cfg      Config
	logger   log.Logger
	provider *telemetry.Provider
}

// NewRootCmd creates the swapsim root command.
func NewRootCmd() *cobra.Command {
	initSDKConfig()
	state := &appState{v: newViper()}

	rootCmd := &cobra.Command{
		Use:   "swapsim",
		Short: "Simulate PawSwap constant-product pools",
		Long: `swapsim prices swaps, replays YAML scenarios against simulated pool
instances and serves read-only queries over the resulting state.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := state.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := loadConfig(state.v)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			provider, err := telemetry.NewProvider(cfg.Telemetry)
			if err != nil {
				return err
			}
			state.cfg, state.logger, state.provider = cfg, logger, provider
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if state.provider == nil {
				return nil
			}
			return state.provider.Shutdown(context.Background())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", "Path to a YAML or TOML config file")
	flags.String(flagLogLevel, "info", "Log level (trace|debug|info|warn|error)")
	flags.String(flagLogFormat, "plain", "Log format (plain|json)")
	flags.Bool(flagTraceEnabled, false, "Export OpenTelemetry traces")
	flags.String(flagTraceEndpoint, "localhost:4318", "OTLP/HTTP trace collector endpoint")
	flags.Float64(flagTraceSampleRate, 1.0, "Trace sampling ratio in [0,1]")
	flags.Bool(flagMetricsEnabled, false, "Record OpenTelemetry metrics on the Prometheus registry")

	rootCmd.AddCommand(
		quoteCmd(),
		runCmd(state),
		serveCmd(state),
	)
	return rootCmd
}

func printJSON(w io.Writer, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(bz))
	return err
}
