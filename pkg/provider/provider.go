// Package provider is the account/provider layer: it supplies on-chain
// nonces and broadcasts deployment transactions through the factory. The
// derivation core never touches the network; everything that does lives
// here.
package provider

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/lmittmann/w3"
	"github.com/lmittmann/w3/module/eth"

	"github.com/screa/createx-cli/internal/crypto"
	"github.com/screa/createx-cli/pkg/types"
)

// Factory deploy functions.
var (
	funcDeployCreate  = w3.MustNewFunc("deployCreate(bytes)", "address")
	funcDeployCreate2 = w3.MustNewFunc("deployCreate2(bytes32,bytes)", "address")
	funcDeployCreate3 = w3.MustNewFunc("deployCreate3(bytes32,bytes)", "address")
)

type Provider struct {
	client    *w3.Client
	signer    gethtypes.Signer
	key       *ecdsa.PrivateKey
	address   common.Address
	gasFeeCap *big.Int
	gasTipCap *big.Int
}

// Dial connects to an RPC endpoint. key may be nil for read-only use
// (nonce lookups); broadcasting then fails.
func Dial(rpcURL string, chainID int64, key *ecdsa.PrivateKey, gasFeeCap, gasTipCap *big.Int) (*Provider, error) {
	client, err := w3.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	p := &Provider{
		client:    client,
		signer:    gethtypes.NewLondonSigner(big.NewInt(chainID)),
		key:       key,
		gasFeeCap: gasFeeCap,
		gasTipCap: gasTipCap,
	}
	if key != nil {
		p.address = gethcrypto.PubkeyToAddress(key.PublicKey)
	}
	return p, nil
}

// Sender is the account transactions are signed with.
func (p *Provider) Sender() common.Address {
	return p.address
}

func (p *Provider) Close() error {
	return p.client.Close()
}

// Nonce returns the current transaction count of addr.
func (p *Provider) Nonce(ctx context.Context, addr common.Address) (uint64, error) {
	var nonce uint64
	if err := p.client.CallCtx(ctx, eth.Nonce(addr, nil).Returns(&nonce)); err != nil {
		return 0, fmt.Errorf("get nonce: %w", err)
	}
	return nonce, nil
}

// DeployRequest describes one factory deployment.
type DeployRequest struct {
	Type     types.CreationType
	Salt     [32]byte // guarded salt; unused for plain create
	InitCode []byte
	GasLimit uint64
}

type DeployResult struct {
	TxHash  common.Hash
	Address common.Address // derived locally before broadcast
}

// Deploy encodes the factory call for the creation scheme, derives the
// resulting address locally, then signs and broadcasts the transaction.
// The factory computes the same address on-chain.
func (p *Provider) Deploy(ctx context.Context, req DeployRequest) (DeployResult, error) {
	if p.key == nil {
		return DeployResult{}, fmt.Errorf("%w: a private key is required to deploy", types.ErrConfig)
	}

	calldata, err := deployCalldata(req)
	if err != nil {
		return DeployResult{}, err
	}

	predicted, err := p.predict(ctx, req)
	if err != nil {
		return DeployResult{}, err
	}

	nonce, err := p.Nonce(ctx, p.address)
	if err != nil {
		return DeployResult{}, err
	}

	factory := crypto.Factory()
	tx := gethtypes.NewTx(&gethtypes.DynamicFeeTx{
		Nonce:     nonce,
		To:        &factory,
		GasFeeCap: p.gasFeeCap,
		GasTipCap: p.gasTipCap,
		Gas:       req.GasLimit,
		Data:      calldata,
	})
	signedTx, err := gethtypes.SignTx(tx, p.signer, p.key)
	if err != nil {
		return DeployResult{}, fmt.Errorf("sign tx: %w", err)
	}
	if err := p.client.CallCtx(ctx, eth.SendTx(signedTx).Returns(nil)); err != nil {
		return DeployResult{}, fmt.Errorf("send tx: %w", err)
	}

	return DeployResult{TxHash: signedTx.Hash(), Address: predicted}, nil
}

// predict derives the deployment address before broadcast. Plain create
// depends on the factory's own account nonce, which must be read on-chain.
func (p *Provider) predict(ctx context.Context, req DeployRequest) (common.Address, error) {
	switch req.Type {
	case types.Create:
		factoryNonce, err := p.Nonce(ctx, crypto.Factory())
		if err != nil {
			return common.Address{}, err
		}
		return crypto.CreateAddress(crypto.Factory(), factoryNonce), nil
	case types.Create2:
		return crypto.Create2Address(req.Salt, common.BytesToHash(crypto.Keccak256(req.InitCode))), nil
	case types.Create3:
		return crypto.Create3Address(req.Salt), nil
	}
	return common.Address{}, fmt.Errorf("%w: unsupported creation type %q", types.ErrConfig, req.Type)
}

func deployCalldata(req DeployRequest) ([]byte, error) {
	switch req.Type {
	case types.Create:
		return funcDeployCreate.EncodeArgs(req.InitCode)
	case types.Create2:
		return funcDeployCreate2.EncodeArgs(req.Salt, req.InitCode)
	case types.Create3:
		return funcDeployCreate3.EncodeArgs(req.Salt, req.InitCode)
	}
	return nil, fmt.Errorf("%w: unsupported creation type %q", types.ErrConfig, req.Type)
}

// WaitForReceipt polls until the transaction is mined or ctx expires.
func (p *Provider) WaitForReceipt(ctx context.Context, txHash common.Hash) (*gethtypes.Receipt, error) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		var receipt *gethtypes.Receipt
		if err := p.client.CallCtx(ctx, eth.TxReceipt(txHash).Returns(&receipt)); err == nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
