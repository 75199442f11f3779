package main

import (
	"context"
	"fmt"
	"math/big"
	"time"

	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	"github.com/screa/createx-cli/pkg/provider"
	"github.com/screa/createx-cli/pkg/salt"
	"github.com/screa/createx-cli/pkg/types"
)

func newDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy CONTRACT [ARGS...]",
		Short: "Deploy a contract from your project through the factory",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDeploy,
	}
	addSharedFlags(cmd)
	f := cmd.Flags()
	f.StringVar(&cfg.RPCURL, "rpc-url", "", "RPC endpoint to broadcast through")
	f.Int64Var(&cfg.ChainID, "chain-id", cfg.ChainID, "Chain ID for transaction signing")
	f.StringVar(&cfg.PrivateKey, "private-key", "", "Deployer private key (hex)")
	f.Uint64Var(&cfg.GasLimit, "gas-limit", cfg.GasLimit, "Gas limit for the deployment")
	f.Int64Var(&cfg.GasFeeCap, "gas-fee-cap", cfg.GasFeeCap, "EIP-1559 max fee per gas (wei)")
	f.Int64Var(&cfg.GasTipCap, "gas-tip-cap", cfg.GasTipCap, "EIP-1559 max priority fee per gas (wei)")
	f.IntVar(&cfg.TimeoutSeconds, "timeout", cfg.TimeoutSeconds, "Seconds to wait for the receipt")
	return cmd
}

func runDeploy(cmd *cobra.Command, args []string) error {
	creationType, err := cfg.CreationType()
	if err != nil {
		return err
	}
	key, err := cfg.PrivateKeyECDSA()
	if err != nil {
		return err
	}
	if cfg.RPCURL == "" {
		return fmt.Errorf("%w: --rpc-url is required", types.ErrConfig)
	}

	contract, initCode, err := resolveContract(args[0], args[1:])
	if err != nil {
		return err
	}

	p, err := provider.Dial(cfg.RPCURL, cfg.ChainID, key,
		big.NewInt(cfg.GasFeeCap), big.NewInt(cfg.GasTipCap))
	if err != nil {
		return err
	}
	defer p.Close()

	var guarded [salt.Len]byte
	if creationType != types.Create {
		guarded, err = salt.NewEncoder(nil).Encode(salt.Options{
			Raw:                cfg.SaltBytes(),
			Sender:             p.Sender(),
			SenderProtection:   cfg.SenderProtection,
			RedeployProtection: cfg.RedeployProtection,
		})
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	result, err := p.Deploy(ctx, provider.DeployRequest{
		Type:     creationType,
		Salt:     guarded,
		InitCode: initCode,
		GasLimit: cfg.GasLimit,
	})
	if err != nil {
		return err
	}

	logger.Printf("Sent %s (tx %s), waiting for receipt...", contract.Name, result.TxHash.Hex())
	receipt, err := p.WaitForReceipt(ctx, result.TxHash)
	if err != nil {
		return err
	}
	if receipt.Status != gethtypes.ReceiptStatusSuccessful {
		return fmt.Errorf("deployment of %s reverted (tx %s)", contract.Name, result.TxHash.Hex())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deployed %s at %s\n", contract.Name, result.Address.Hex())
	return nil
}
