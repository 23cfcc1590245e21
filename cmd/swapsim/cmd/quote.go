package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/x/swap/keeper"
	"github.com/paw-chain/pawswap/x/swap/types"
)

const (
	flagInputReserve  = "input-reserve"
	flagOutputReserve = "output-reserve"
	flagLpFee         = "lp-fee"
	flagProtocolFee   = "protocol-fee"
)

type quoteResult struct {
	Input       math.Uint `json:"input"`
	ProtocolFee math.Uint `json:"protocol_fee"`
	NetInput    math.Uint `json:"net_input"`
	Output      math.Uint `json:"output"`
}

// quoteCmd prices a swap without any pool state.
func quoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [amount]",
		Short: "Price selling amount into a pool with the given reserves",
		Example: `swapsim quote 100 --input-reserve 1000 --output-reserve 2000 --lp-fee 0.003
swapsim quote 100 --input-reserve 1000 --output-reserve 2000 --lp-fee 0.003 --protocol-fee 0.01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := math.ParseUint(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			inRes, err := uintFlag(cmd, flagInputReserve)
			if err != nil {
				return err
			}
			outRes, err := uintFlag(cmd, flagOutputReserve)
			if err != nil {
				return err
			}
			lp, err := decFlag(cmd, flagLpFee)
			if err != nil {
				return err
			}
			protocol, err := decFlag(cmd, flagProtocolFee)
			if err != nil {
				return err
			}
			if err := types.ValidateFees(lp, protocol); err != nil {
				return err
			}

			fee, err := keeper.ProtocolFeeAmount(amount, protocol)
			if err != nil {
				return err
			}
			net, err := keeper.SafeSub(amount, fee)
			if err != nil {
				return err
			}
			out, err := keeper.GetInputPrice(net, inRes, outRes, lp)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), quoteResult{
				Input:       amount,
				ProtocolFee: fee,
				NetInput:    net,
				Output:      out,
			})
		},
	}

	cmd.Flags().String(flagInputReserve, "", "Reserve of the asset being sold")
	cmd.Flags().String(flagOutputReserve, "", "Reserve of the asset being bought")
	cmd.Flags().String(flagLpFee, "0.003", "Liquidity provider fee fraction")
	cmd.Flags().String(flagProtocolFee, "0", "Protocol fee fraction")
	_ = cmd.MarkFlagRequired(flagInputReserve)
	_ = cmd.MarkFlagRequired(flagOutputReserve)
	return cmd
}

func uintFlag(cmd *cobra.Command, name string) (math.Uint, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return math.Uint{}, err
	}
	v, err := math.ParseUint(raw)
	if err != nil {
		return math.Uint{}, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return v, nil
}

func decFlag(cmd *cobra.Command, name string) (math.LegacyDec, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return math.LegacyDec{}, err
	}
	v, err := math.LegacyNewDecFromStr(raw)
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return v, nil
}
