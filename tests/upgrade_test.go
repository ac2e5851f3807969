package tests

import (
	"encoding/json"
	"path"
	"testing"

	"github.com/fundchain/fund-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const vaultNextPath = "../internal/testcontracts/vaultnext"

func compileUpdateArgs(t *testing.T, e *neotest.Executor, srcPath string) ([]byte, []byte) {
	ctr := neotest.CompileFile(t, e.CommitteeHash, srcPath, path.Join(srcPath, "config.yml"))
	bNEF, err := ctr.NEF.Bytes()
	require.NoError(t, err)
	manifest, err := json.Marshal(ctr.Manifest)
	require.NoError(t, err)
	return bNEF, manifest
}

func TestVaultUpdate(t *testing.T) {
	x := newVaultEnv(t, false, 6)
	x.setNav(t, 2*parNav)

	investor := x.executor.NewAccount(t)
	x.fund(t, investor.ScriptHash(), 2*oneShare)
	x.deposit(t, investor, 2*oneShare, oneShare)
	x.operatorInvoker().Invoke(t, stackitem.Null{}, "pause")

	bNEF, manifest := compileUpdateArgs(t, x.executor, vaultNextPath)

	x.operatorInvoker().InvokeFail(t, "only admin can invoke this method",
		"update", bNEF, manifest, nil)

	// same-version source is rejected by the version handshake
	sameNEF, sameManifest := compileUpdateArgs(t, x.executor, vaultPath)
	x.vault.InvokeFail(t, common.ErrAlreadyUpdated, "update", sameNEF, sameManifest, nil)

	x.vault.Invoke(t, stackitem.Null{}, "update", bNEF, manifest, nil)

	// the persisted state survives the code swap untouched
	x.vault.Invoke(t, "FUND", "symbol")
	x.vault.Invoke(t, int64(6), "decimals")
	x.vault.Invoke(t, int64(oneShare), "totalSupply")
	require.EqualValues(t, oneShare, x.sharesOf(t, investor.ScriptHash()))
	x.vault.Invoke(t, int64(2*parNav), "price")
	x.vault.Invoke(t, int64(2*parNav), "latestNav")
	x.vault.Invoke(t, true, "paused")
	x.vault.Invoke(t, stackitem.NewByteArray(x.custodian.ScriptHash().BytesBE()), "custodian")
	x.vault.Invoke(t, stackitem.NewByteArray(x.registryHash.BytesBE()), "kycRegistry")
	x.vault.Invoke(t, int64(common.Version+1), "version")

	s, err := x.vault.TestInvoke(t, "lastNavUpdate")
	require.NoError(t, err)
	require.Positive(t, s.Pop().BigInt().Int64())
}

func TestRegistryUpdate(t *testing.T) {
	c := newRegistryInvoker(t, false)

	acc := c.NewAccount(t)
	sameNEF, sameManifest := compileUpdateArgs(t, c.Executor, kycRegistryPath)

	c.WithSigners(acc).InvokeFail(t, common.ErrAuthorityWitnessFailed,
		"update", sameNEF, sameManifest, nil)
	c.InvokeFail(t, common.ErrAlreadyUpdated, "update", sameNEF, sameManifest, nil)
}
