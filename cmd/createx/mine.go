package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/screa/createx-cli/pkg/miner"
	"github.com/screa/createx-cli/pkg/pattern"
	"github.com/screa/createx-cli/pkg/types"
	"github.com/screa/createx-cli/pkg/worker"
)

func newMineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine CONTRACT [ARGS...]",
		Short: "Mine a salt whose deployment address meets the given conditions",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runMine,
	}
	addSharedFlags(cmd)
	f := cmd.Flags()
	f.IntVar(&cfg.LeadingZeros, "leading-zeros", 0, "Number of zero bytes in front of the address")
	f.StringVar(&cfg.StartsWith, "starts-with", "", "Address must start with this hex pattern")
	f.IntVar(&cfg.TrailingZeros, "trailing-zeros", 0, "Number of zero bytes at the end of the address")
	f.StringVar(&cfg.EndsWith, "ends-with", "", "Address must end with this hex pattern")
	f.BoolVar(&cfg.CaseSensitive, "case-sensitive", false,
		"Match --starts-with/--ends-with against the checksummed address")
	f.IntVar(&cfg.MaxIterations, "max-iterations", cfg.MaxIterations, "Max number of cycles to try")
	f.IntVar(&cfg.Lanes, "lanes", cfg.Lanes,
		"Parallel search lanes (more than one makes the winning salt non-deterministic)")
	return cmd
}

func runMine(cmd *cobra.Command, args []string) error {
	creationType, err := cfg.CreationType()
	if err != nil {
		return err
	}
	if creationType == types.Create {
		return fmt.Errorf("%w: mining requires a salted creation type (create2 or create3)", types.ErrConfig)
	}
	deployerAddr, err := cfg.DeployerAddress()
	if err != nil {
		return err
	}

	conditions, warnings, err := pattern.Build(pattern.Flags{
		LeadingZeros:     cfg.LeadingZeros,
		HasLeadingZeros:  cmd.Flags().Changed("leading-zeros"),
		TrailingZeros:    cfg.TrailingZeros,
		HasTrailingZeros: cmd.Flags().Changed("trailing-zeros"),
		StartsWith:       cfg.StartsWith,
		EndsWith:         cfg.EndsWith,
		CaseSensitive:    cfg.CaseSensitive,
	})
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warnf("%s", w)
	}

	_, initCode, err := resolveContract(args[0], args[1:])
	if err != nil {
		return err
	}

	result, err := miner.New(miner.Config{
		Walk: worker.Config{
			Type:               creationType,
			Sender:             deployerAddr,
			SenderProtection:   cfg.SenderProtection,
			RedeployProtection: cfg.RedeployProtection,
			InitCodeHash:       initCodeHash(initCode),
			Conditions:         conditions,
			MaxIterations:      cfg.MaxIterations,
		},
		Lanes: cfg.Lanes,
	}).Mine()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Found '%s' after %d iterations using salt: %s\n",
		result.Address.Hex(), result.Iterations, hex.EncodeToString(result.Seed))
	fmt.Fprintf(out, "Guarded salt: 0x%s\n", hex.EncodeToString(result.Salt[:]))
	return nil
}
