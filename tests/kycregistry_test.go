package tests

import (
	"path"
	"testing"

	"github.com/fundchain/fund-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

func newRegistryInvoker(t *testing.T, strict bool) *neotest.ContractInvoker {
	e := newExecutor(t)
	ctr := neotest.CompileFile(t, e.CommitteeHash, kycRegistryPath, path.Join(kycRegistryPath, "config.yml"))
	e.DeployContract(t, ctr, []interface{}{e.CommitteeHash, strict})
	return e.CommitteeInvoker(ctr.Hash)
}

func TestRegistryFlags(t *testing.T) {
	c := newRegistryInvoker(t, false)
	acc := c.NewAccount(t)
	hash := acc.ScriptHash()

	// untouched accounts carry no flags at all
	c.Invoke(t, false, "isBanned", hash)
	c.Invoke(t, false, "isKyc", hash)
	c.Invoke(t, false, "isUSKyc", hash)

	c.Invoke(t, stackitem.Null{}, "setKycStatus", hash, true, true)
	c.Invoke(t, true, "isKyc", hash)
	c.Invoke(t, true, "isUSKyc", hash)
	c.Invoke(t, false, "isBanned", hash)

	// bans are orthogonal to KYC flags and survive status updates
	c.Invoke(t, stackitem.Null{}, "ban", hash)
	c.Invoke(t, true, "isBanned", hash)
	c.Invoke(t, stackitem.Null{}, "setKycStatus", hash, false, false)
	c.Invoke(t, true, "isBanned", hash)
	c.Invoke(t, false, "isKyc", hash)

	c.Invoke(t, stackitem.Null{}, "unban", hash)
	c.Invoke(t, false, "isBanned", hash)
}

func TestRegistryStrictMode(t *testing.T) {
	c := newRegistryInvoker(t, true)
	c.Invoke(t, true, "isStrict")
	c.Invoke(t, stackitem.Null{}, "setStrict", false)
	c.Invoke(t, false, "isStrict")
	c.Invoke(t, stackitem.Null{}, "setStrict", true)
	c.Invoke(t, true, "isStrict")
}

func TestRegistryAuthority(t *testing.T) {
	c := newRegistryInvoker(t, false)

	acc := c.NewAccount(t)
	stranger := c.WithSigners(acc)
	stranger.InvokeFail(t, common.ErrAuthorityWitnessFailed, "ban", acc.ScriptHash())
	stranger.InvokeFail(t, common.ErrAuthorityWitnessFailed, "setKycStatus", acc.ScriptHash(), true, false)
	stranger.InvokeFail(t, common.ErrAuthorityWitnessFailed, "setStrict", true)
	stranger.InvokeFail(t, common.ErrAuthorityWitnessFailed, "setAuthority", acc.ScriptHash())

	// handover: the old authority loses control the moment the new one is
	// recorded
	c.Invoke(t, stackitem.Null{}, "setAuthority", acc.ScriptHash())
	c.Invoke(t, stackitem.NewByteArray(acc.ScriptHash().BytesBE()), "authority")
	c.InvokeFail(t, common.ErrAuthorityWitnessFailed, "setStrict", true)
	stranger.Invoke(t, stackitem.Null{}, "setStrict", true)
	stranger.Invoke(t, stackitem.Null{}, "ban", acc.ScriptHash())
}
