// Package resolver locates compiled contract artifacts and turns them into
// deployable init code.
package resolver

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/screa/createx-cli/pkg/types"
)

// Contract is a resolved contract type: its creation bytecode and ABI.
type Contract struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

// Resolver resolves contract specifiers against a project's compiled
// artifact directory and, for name@version:Contract specifiers, against a
// dependencies root laid out as <deps>/<name>/<version>/...
type Resolver struct {
	ProjectDir string
	DepsDir    string
}

func New(projectDir, depsDir string) *Resolver {
	return &Resolver{ProjectDir: projectDir, DepsDir: depsDir}
}

// Resolve accepts either a bare contract name or a dependency specifier of
// the form name@version:Contract. Failures are lookup errors; they never
// start any derivation work.
func (r *Resolver) Resolve(specifier string) (*Contract, error) {
	if strings.Contains(specifier, ":") {
		if parts := strings.Split(specifier, ":"); len(parts) == 2 {
			if dep := strings.Split(parts[0], "@"); len(dep) == 2 {
				root := filepath.Join(r.DepsDir, dep[0], dep[1])
				if c, err := findArtifact(root, parts[1]); err == nil {
					return c, nil
				}
			}
		}
		return nil, fmt.Errorf("%w: '%s' is not a valid dependency specifier",
			types.ErrLookup, specifier)
	}

	c, err := findArtifact(r.ProjectDir, specifier)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s' is not a type in your local project",
			types.ErrLookup, specifier)
	}
	return c, nil
}

// findArtifact walks root for <name>.json. Both Foundry (out/Name.sol/Name.json)
// and Hardhat (artifacts/.../Name.json) layouts end up here.
func findArtifact(root, name string) (*Contract, error) {
	want := name + ".json"
	var path string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && d.Name() == want {
			path = p
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("artifact %s not found under %s", want, root)
	}
	return loadArtifact(path, name)
}

func loadArtifact(path, name string) (*Contract, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var art struct {
		ABI      json.RawMessage `json:"abi"`
		Bytecode json.RawMessage `json:"bytecode"`
	}
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("parse artifact %s: %w", path, err)
	}

	parsed, err := abi.JSON(strings.NewReader(string(art.ABI)))
	if err != nil {
		return nil, fmt.Errorf("parse abi of %s: %w", name, err)
	}

	// Foundry nests the hex under bytecode.object; Hardhat stores it flat.
	var code string
	if json.Unmarshal(art.Bytecode, &code) != nil {
		var nested struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(art.Bytecode, &nested); err != nil {
			return nil, fmt.Errorf("parse bytecode of %s: %w", name, err)
		}
		code = nested.Object
	}
	if code == "" || code == "0x" {
		return nil, fmt.Errorf("%s has no creation bytecode", name)
	}
	bytecode, err := hexutil.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("decode bytecode of %s: %w", name, err)
	}

	return &Contract{Name: name, ABI: parsed, Bytecode: bytecode}, nil
}

// InitCode returns the contract's deployment payload: creation bytecode
// followed by the ABI-packed constructor arguments. Its keccak256 is the
// init code hash the CREATE2 derivation consumes.
func (c *Contract) InitCode(args ...string) ([]byte, error) {
	inputs := c.ABI.Constructor.Inputs
	if len(args) != len(inputs) {
		return nil, fmt.Errorf("%w: constructor of %s takes %d arguments, got %d",
			types.ErrValidation, c.Name, len(inputs), len(args))
	}
	if len(inputs) == 0 {
		return c.Bytecode, nil
	}

	values := make([]interface{}, len(args))
	for i, raw := range args {
		v, err := convertArg(inputs[i].Type, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d (%s): %v",
				types.ErrValidation, i, inputs[i].Type.String(), err)
		}
		values[i] = v
	}
	packed, err := inputs.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("%w: pack constructor arguments: %v", types.ErrValidation, err)
	}
	return append(append([]byte(nil), c.Bytecode...), packed...), nil
}
