package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/screa/createx-cli/internal/config"
	"github.com/screa/createx-cli/internal/crypto"
	logpkg "github.com/screa/createx-cli/internal/logger"
	"github.com/screa/createx-cli/pkg/resolver"
)

var (
	cfg    = config.New()
	logger = logpkg.New()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "createx",
		Short: "Deterministic contract deployment addresses via the CreateX factory",
		Long: `CLI for interacting with the CreateX factory.

Derives the address a contract will be deployed to (create, create2 or
create3), mines salts for vanity addresses, and deploys through the factory.
The factory lives at the same address on every supported chain:
` + crypto.FactoryAddress,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newAddressCmd(), newMineCmd(), newDeployCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// addSharedFlags registers the flags every subcommand takes.
func addSharedFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.CreateType, "type", cfg.CreateType, "Creation scheme: create, create2 or create3")
	f.StringVar(&cfg.Salt, "salt", "", "Salt (hex or raw string)")
	f.StringVar(&cfg.Deployer, "deployer", "", "Account the deployment is computed for")
	f.BoolVar(&cfg.SenderProtection, "sender-protection", true, "Bind the salt to the deployer account")
	f.BoolVar(&cfg.RedeployProtection, "redeploy-protection", true, "Prevent redeployment under an identical salt")
	f.StringVar(&cfg.ProjectDir, "project-dir", cfg.ProjectDir, "Compiled artifact directory of the local project")
	f.StringVar(&cfg.DepsDir, "deps-dir", cfg.DepsDir, "Dependencies root for name@version:Contract specifiers")
}

// resolveContract turns the CONTRACT argument and constructor args into the
// deployment init code.
func resolveContract(specifier string, ctorArgs []string) (*resolver.Contract, []byte, error) {
	contract, err := resolver.New(cfg.ProjectDir, cfg.DepsDir).Resolve(specifier)
	if err != nil {
		return nil, nil, err
	}
	initCode, err := contract.InitCode(ctorArgs...)
	if err != nil {
		return nil, nil, err
	}
	return contract, initCode, nil
}

func initCodeHash(initCode []byte) common.Hash {
	return common.BytesToHash(crypto.Keccak256(initCode))
}
