// Package stableasset implements a minimal mintable NEP-17 token used in
// tests as the underlying deposit asset of the vault. Decimal precision is
// chosen at deploy time, so the vault's amount normalization can be
// exercised with differently scaled assets.
package stableasset

import (
	"github.com/fundchain/fund-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	ownerKey    = "owner"
	decimalsKey = "decimals"
	supplyKey   = "supply"
)

var accountPrefix = []byte("a")

func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		return
	}

	args := data.(struct {
		owner    interop.Hash160
		decimals int
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, ownerKey, args.owner)
	storage.Put(ctx, decimalsKey, args.decimals)
}

func Symbol() string {
	return "USDT"
}

func Decimals() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, decimalsKey).(int)
}

func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return getInt(ctx, []byte(supplyKey))
}

func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getInt(ctx, accountKey(account))
}

func Transfer(from, to interop.Hash160, amount int, data interface{}) bool {
	if amount < 0 {
		panic("negative amount")
	}
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if !isUsableAddress(from) {
		return false
	}

	ctx := storage.GetContext()
	balance := getInt(ctx, accountKey(from))
	if balance < amount {
		return false
	}

	if balance == amount {
		storage.Delete(ctx, accountKey(from))
	} else {
		storage.Put(ctx, accountKey(from), balance-amount)
	}
	storage.Put(ctx, accountKey(to), getInt(ctx, accountKey(to))+amount)

	runtime.Notify("Transfer", from, to, amount)

	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}

	return true
}

// Mint issues tokens to the account. Can be invoked only by the owner.
func Mint(to interop.Hash160, amount int) {
	if len(to) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if amount <= 0 {
		panic("non-positive amount")
	}

	ctx := storage.GetContext()
	common.CheckOwnerWitness(storage.Get(ctx, ownerKey).(interop.Hash160))

	storage.Put(ctx, accountKey(to), getInt(ctx, accountKey(to))+amount)
	storage.Put(ctx, supplyKey, getInt(ctx, []byte(supplyKey))+amount)
	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
}

func getInt(ctx storage.Context, key []byte) int {
	val := storage.Get(ctx, key)
	if val != nil {
		return val.(int)
	}
	return 0
}

func isUsableAddress(addr interop.Hash160) bool {
	if runtime.CheckWitness(addr) {
		return true
	}
	return common.BytesEqual(runtime.GetCallingScriptHash(), addr)
}

func accountKey(holder interop.Hash160) []byte {
	return append(accountPrefix, holder...)
}
