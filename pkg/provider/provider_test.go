package provider

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/screa/createx-cli/pkg/types"
)

func TestDeployCalldata(t *testing.T) {
	var salt [32]byte
	for i := range salt {
		salt[i] = 0x11
	}
	initCode, _ := hex.DecodeString("6080604052")

	t.Run("create2", func(t *testing.T) {
		data, err := deployCalldata(DeployRequest{Type: types.Create2, Salt: salt, InitCode: initCode})
		if err != nil {
			t.Fatalf("deployCalldata() error = %v", err)
		}
		want := "26307668" + // deployCreate2(bytes32,bytes)
			"1111111111111111111111111111111111111111111111111111111111111111" +
			"0000000000000000000000000000000000000000000000000000000000000040" +
			"0000000000000000000000000000000000000000000000000000000000000005" +
			"6080604052000000000000000000000000000000000000000000000000000000"
		if got := hex.EncodeToString(data); got != want {
			t.Errorf("calldata = %s, want %s", got, want)
		}
	})

	t.Run("create selector", func(t *testing.T) {
		data, err := deployCalldata(DeployRequest{Type: types.Create, InitCode: initCode})
		if err != nil {
			t.Fatalf("deployCalldata() error = %v", err)
		}
		if !bytes.HasPrefix(data, []byte{0x27, 0xfe, 0x18, 0x22}) {
			t.Errorf("calldata selector = %x, want 27fe1822", data[:4])
		}
	})

	t.Run("create3 selector", func(t *testing.T) {
		data, err := deployCalldata(DeployRequest{Type: types.Create3, Salt: salt, InitCode: initCode})
		if err != nil {
			t.Fatalf("deployCalldata() error = %v", err)
		}
		if !bytes.HasPrefix(data, []byte{0x9c, 0x36, 0xa2, 0x86}) {
			t.Errorf("calldata selector = %x, want 9c36a286", data[:4])
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		if _, err := deployCalldata(DeployRequest{Type: "create4"}); !errors.Is(err, types.ErrConfig) {
			t.Errorf("deployCalldata() error = %v, want config error", err)
		}
	})
}
