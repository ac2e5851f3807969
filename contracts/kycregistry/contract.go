package kycregistry

import (
	"github.com/fundchain/fund-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Flags stores the restriction attributes of a single address.
type Flags struct {
	// Banned addresses can never move value.
	Banned bool
	// Kyc marks addresses with approved KYC status.
	Kyc bool
	// US marks addresses flagged as US persons.
	US bool
}

const (
	authorityKey = "authority"
	strictKey    = "strict"
)

var flagsPrefix = []byte("f")

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		authority interop.Hash160
		strict    bool
	})

	if len(args.authority) != interop.Hash160Len {
		panic("incorrect length of authority script hash")
	}

	storage.Put(ctx, authorityKey, args.authority)
	if args.strict {
		storage.Put(ctx, strictKey, 1)
	}

	runtime.Log("kycregistry contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the registry authority.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckAuthorityWitness(authority(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("kycregistry contract updated")
}

// SetKycStatus sets the KYC approval and US-person flags of the address.
// Can be invoked only by the registry authority.
//
// Produces KycStatusUpdated notification.
func SetKycStatus(addr interop.Hash160, kyc bool, us bool) {
	ctx := storage.GetContext()
	common.CheckAuthorityWitness(authority(ctx))

	flags := getFlags(ctx, addr)
	flags.Kyc = kyc
	flags.US = us
	putFlags(ctx, addr, flags)
	runtime.Notify("KycStatusUpdated", addr, kyc, us)
}

// Ban marks the address as banned. Can be invoked only by the registry
// authority.
//
// Produces Banned notification.
func Ban(addr interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckAuthorityWitness(authority(ctx))

	flags := getFlags(ctx, addr)
	flags.Banned = true
	putFlags(ctx, addr, flags)
	runtime.Notify("Banned", addr)
}

// Unban removes the ban from the address. Can be invoked only by the
// registry authority.
//
// Produces Unbanned notification.
func Unban(addr interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckAuthorityWitness(authority(ctx))

	flags := getFlags(ctx, addr)
	flags.Banned = false
	putFlags(ctx, addr, flags)
	runtime.Notify("Unbanned", addr)
}

// SetStrict switches the global strict mode requiring both transfer
// counterparties to hold KYC approval. Can be invoked only by the registry
// authority.
//
// Produces StrictModeSet notification.
func SetStrict(on bool) {
	ctx := storage.GetContext()
	common.CheckAuthorityWitness(authority(ctx))

	if on {
		storage.Put(ctx, strictKey, 1)
	} else {
		storage.Delete(ctx, strictKey)
	}
	runtime.Notify("StrictModeSet", on)
}

// SetAuthority transfers registry control to a new authority address. Can
// be invoked only by the current authority.
//
// Produces AuthorityChanged notification.
func SetAuthority(addr interop.Hash160) {
	if len(addr) != interop.Hash160Len {
		panic("incorrect length of authority script hash")
	}
	ctx := storage.GetContext()
	common.CheckAuthorityWitness(authority(ctx))

	storage.Put(ctx, authorityKey, addr)
	runtime.Notify("AuthorityChanged", addr)
}

// IsBanned returns true if the address is banned.
func IsBanned(addr interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return getFlags(ctx, addr).Banned
}

// IsKyc returns true if the address holds approved KYC status.
func IsKyc(addr interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return getFlags(ctx, addr).Kyc
}

// IsUSKyc returns true if the address is flagged as a US person.
func IsUSKyc(addr interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return getFlags(ctx, addr).US
}

// IsStrict returns true if the global strict mode is on.
func IsStrict() bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, strictKey) != nil
}

// Authority returns the registry authority address.
func Authority() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return authority(ctx)
}

// Version returns version of the contract.
func Version() int {
	return common.Version
}

func authority(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, authorityKey).(interop.Hash160)
}

func getFlags(ctx storage.Context, addr interop.Hash160) Flags {
	if len(addr) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}

	data := storage.Get(ctx, flagsKey(addr))
	if data != nil {
		return std.Deserialize(data.([]byte)).(Flags)
	}
	return Flags{}
}

func putFlags(ctx storage.Context, addr interop.Hash160, flags Flags) {
	common.SetSerialized(ctx, flagsKey(addr), flags)
}

func flagsKey(addr interop.Hash160) []byte {
	return append(flagsPrefix, addr...)
}
