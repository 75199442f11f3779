package crypto

import (
	"github.com/ethereum/go-ethereum/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

const (
	// FactoryAddress is the CreateX factory. The same address is live on
	// every supported chain, so it is configuration, never derived.
	FactoryAddress = "0xba5Ed099633D3B313e4D5F7bdc1305d3c28ba5Ed"

	// CREATE2 input layout: 0xff (1) + factory (20) + salt (32) + initcodeHash (32) = 85
	create2PrefixLen = 1 + 20
	create2InputLen  = create2PrefixLen + 32 + 32

	// The CREATE3 proxy performs its final CREATE at nonce 1 and is used
	// exactly once, so the nonce is a constant of the scheme.
	create3ProxyNonce = 1
)

// Create3ProxyInitCodeHash is the keccak256 of the minimal proxy the factory
// deploys for CREATE3 (0x67363d3d37363d34f03d5260086018f3). Only this hash,
// never the contract's own init code, enters the CREATE3 address math.
var Create3ProxyInitCodeHash = common.HexToHash(
	"0x21c35dbe1b344a2488cf3321d6ce542f8e9f305544ff09e4993a62319a497c1f")

var (
	factory = common.HexToAddress(FactoryAddress)

	// Pre-primed 0xff + factory prefix for CREATE2 input (21 bytes).
	create2Prefix [create2PrefixLen]byte
)

func init() {
	create2Prefix[0] = 0xff
	copy(create2Prefix[1:], factory.Bytes())
}

// Factory returns the fixed factory address.
func Factory() common.Address {
	return factory
}

// Keccak256 calculates the keccak256 hash of the concatenated inputs.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		_, _ = h.Write(d)
	}
	return h.Sum(nil)
}

// CreateAddress computes the CREATE address for a deployer and nonce:
// the low 20 bytes of keccak256(rlp([deployer, nonce])).
func CreateAddress(deployer common.Address, nonce uint64) common.Address {
	return gethcrypto.CreateAddress(deployer, nonce)
}

// Create2Address computes the CREATE2 address the factory deploys to:
// the low 20 bytes of keccak256(0xff ++ factory ++ salt ++ initCodeHash).
func Create2Address(salt [32]byte, initCodeHash common.Hash) common.Address {
	var input [create2InputLen]byte
	copy(input[:], create2Prefix[:])
	copy(input[create2PrefixLen:], salt[:])
	copy(input[create2PrefixLen+32:], initCodeHash[:])
	return common.BytesToAddress(Keccak256(input[:])[12:])
}

// Create3ProxyAddress computes the address of the intermediate proxy the
// factory deploys for a CREATE3 salt.
func Create3ProxyAddress(salt [32]byte) common.Address {
	return Create2Address(salt, Create3ProxyInitCodeHash)
}

// Create3Address computes the final CREATE3 address: the proxy address via
// CREATE2 with the fixed proxy hash, then CREATE from the proxy at nonce 1.
func Create3Address(salt [32]byte) common.Address {
	return CreateAddress(Create3ProxyAddress(salt), create3ProxyNonce)
}
