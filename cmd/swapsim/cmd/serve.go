package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/paw-chain/pawswap/internal/api"
)

// serveCmd replays a scenario and then serves queries over the result.
func serveCmd(state *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [scenario.yaml]",
		Short: "Replay a scenario and serve read-only pool queries over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, _, err := replay(cmd, state, args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := api.NewServer(state.cfg.API, exec, state.logger,
				api.WithHealthCheck("telemetry", state.provider),
			)
			return server.Run(ctx)
		},
	}

	addAPIFlags(cmd.Flags())
	return cmd
}

func addAPIFlags(fs *pflag.FlagSet) {
	def := api.DefaultConfig()
	fs.String(flagListen, def.ListenAddr, "Address the query API listens on")
	fs.StringSlice(flagCORSOrigins, def.CORSOrigins, "Allowed CORS origins")
	fs.Float64(flagRateLimit, def.RequestsPerSecond, "Requests per second per client (0 disables)")
	fs.Int(flagRateBurst, def.Burst, "Rate limit burst")
}
