// Package hostileasset implements a NEP-17 token whose transfer calls back
// into the vault deposit entrypoint while the vault is still mid-call. It is
// used in tests to check that the vault's non-reentrant lock faults such
// call chains. The callback is off by default, so the token can also seed
// honest state before the attack.
package hostileasset

import (
	"github.com/fundchain/fund-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	ownerKey  = "owner"
	vaultKey  = "vault"
	armedKey  = "armed"
	supplyKey = "supply"
)

var accountPrefix = []byte("a")

func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		return
	}

	args := data.(struct {
		owner interop.Hash160
		vault interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len || len(args.vault) != interop.Hash160Len {
		panic("incorrect length of script hash")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, ownerKey, args.owner)
	storage.Put(ctx, vaultKey, args.vault)
}

func Symbol() string {
	return "EVLT"
}

func Decimals() int {
	return 6
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

	if storage.Get(ctx, armedKey) != nil {
		self := runtime.GetExecutingScriptHash()
		vault := storage.Get(ctx, vaultKey).(interop.Hash160)
		contract.Call(vault, "deposit", contract.All, from, self, 1, []byte{})
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

// Arm toggles the callback. Can be invoked only by the owner.
func Arm(on bool) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(storage.Get(ctx, ownerKey).(interop.Hash160))

	if on {
		storage.Put(ctx, armedKey, 1)
	} else {
		storage.Delete(ctx, armedKey)
	}
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
