// Package vaultnext is a stub of the next Fund Vault version used to test
// that contract updates preserve the persisted state. It reuses the vault
// storage layout and serves the same reads, adding nothing on top.
package vaultnext

import (
	"github.com/fundchain/fund-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	navKey         = "nav"
	navUpdatedKey  = "navUpdated"
	custodianKey   = "custodian"
	kycRegistryKey = "kycRegistry"
	pausedKey      = "paused"
	circulation    = "TotalShares"
)

var accountPrefix = []byte("a")

func _deploy(data interface{}, isUpdate bool) {
	if !isUpdate {
		panic("vaultnext can only be deployed as an update")
	}

	args := data.([]interface{})
	from := args[len(args)-1].(int)
	if from < common.Version {
		panic(common.ErrVersionMismatch)
	}
}

func Symbol() string {
	return "FUND"
}

func Decimals() int {
	return 6
}

func TotalSupply() int {
	return getInt([]byte(circulation))
}

func BalanceOf(account interop.Hash160) int {
	return getInt(append(accountPrefix, account...))
}

func Price() int {
	return getInt([]byte(navKey))
}

func LatestNav() int {
	return getInt([]byte(navKey))
}

func LastNavUpdate() int {
	return getInt([]byte(navUpdatedKey))
}

func Custodian() interop.Hash160 {
	return getHash([]byte(custodianKey))
}

func KycRegistry() interop.Hash160 {
	return getHash([]byte(kycRegistryKey))
}

func Paused() bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, pausedKey) != nil
}

func Version() int {
	return common.Version + 1
}

func getInt(key []byte) int {
	ctx := storage.GetReadOnlyContext()
	val := storage.Get(ctx, key)
	if val != nil {
		return val.(int)
	}
	return 0
}

func getHash(key []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	val := storage.Get(ctx, key)
	if val != nil {
		return val.(interop.Hash160)
	}
	return nil
}
