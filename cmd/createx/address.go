package main

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/screa/createx-cli/pkg/deriver"
	"github.com/screa/createx-cli/pkg/provider"
	"github.com/screa/createx-cli/pkg/salt"
	"github.com/screa/createx-cli/pkg/types"
)

func newAddressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address CONTRACT [ARGS...]",
		Short: "Compute the address of a contract deployed through the factory",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAddress,
	}
	addSharedFlags(cmd)
	cmd.Flags().Int64Var(&cfg.Nonce, "nonce", cfg.Nonce,
		"Deployer nonce for --type create (fetched over RPC when omitted)")
	cmd.Flags().StringVar(&cfg.RPCURL, "rpc-url", "", "RPC endpoint for the nonce lookup")
	return cmd
}

func runAddress(cmd *cobra.Command, args []string) error {
	creationType, err := cfg.CreationType()
	if err != nil {
		return err
	}
	deployerAddr, err := cfg.DeployerAddress()
	if err != nil {
		return err
	}
	_, initCode, err := resolveContract(args[0], args[1:])
	if err != nil {
		return err
	}

	var addr common.Address
	if creationType == types.Create {
		nonce, err := createNonce(cmd.Context(), deployerAddr)
		if err != nil {
			return err
		}
		addr, err = deriver.Derive(types.CreationParams{
			Type:   creationType,
			Sender: deployerAddr,
			Nonce:  nonce,
		})
		if err != nil {
			return err
		}
	} else {
		guarded, err := salt.NewEncoder(nil).Encode(salt.Options{
			Raw:                cfg.SaltBytes(),
			Sender:             deployerAddr,
			SenderProtection:   cfg.SenderProtection,
			RedeployProtection: cfg.RedeployProtection,
		})
		if err != nil {
			return err
		}
		addr, err = deriver.Derive(types.CreationParams{
			Type:         creationType,
			Salt:         guarded,
			InitCodeHash: initCodeHash(initCode),
		})
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), addr.Hex())
	return nil
}

// createNonce resolves the nonce for a plain create derivation: the pinned
// --nonce value, or the account's current transaction count over RPC.
func createNonce(ctx context.Context, deployer common.Address) (uint64, error) {
	if cfg.Nonce >= 0 {
		return uint64(cfg.Nonce), nil
	}
	if cfg.RPCURL == "" {
		return 0, fmt.Errorf("%w: --nonce or --rpc-url is required with --type create", types.ErrConfig)
	}
	p, err := provider.Dial(cfg.RPCURL, cfg.ChainID, nil, nil, nil)
	if err != nil {
		return 0, err
	}
	defer p.Close()
	return p.Nonce(ctx, deployer)
}
