package cmd

import (
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/x/swap/simulation"
)

type runOutput struct {
	Results []simulation.StepResult `json:"results"`
	Pools   []simulation.PoolState  `json:"pools"`
}

// runCmd replays a scenario and prints every step outcome and the final pools.
func runCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "Replay a scenario against simulated pools",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, results, runErr := replay(cmd, state, args[0])
			if exec == nil {
				return runErr
			}
			if err := printJSON(cmd.OutOrStdout(), runOutput{Results: results, Pools: exec.State()}); err != nil {
				return err
			}
			return runErr
		},
	}
}

// replay loads and runs the scenario at path. The executor is returned even
// when a step fails so the partial state can be reported.
func replay(cmd *cobra.Command, state *appState, path string) (*simulation.Executor, []simulation.StepResult, error) {
	scenario, err := simulation.LoadScenario(path)
	if err != nil {
		return nil, nil, err
	}
	exec, err := simulation.NewScenarioExecutor(scenario,
		simulation.WithLogger(state.logger),
		simulation.WithTracer(state.provider.Tracer()),
		simulation.WithMeter(state.provider.Meter()),
	)
	if err != nil {
		return nil, nil, err
	}

	state.logger.Info("replaying scenario", "path", path, "pools", len(scenario.Pools), "steps", len(scenario.Steps))
	results, err := simulation.Run(cmd.Context(), exec, scenario)
	return exec, results, err
}
