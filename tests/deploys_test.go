package tests

import (
	"testing"

	"github.com/fundchain/fund-contract/contracts"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

// TestDeploys deploys the production contracts from compiled artifacts the
// way the deployment tooling does, as opposed to the per-test source
// compilation the rest of the suite uses.
func TestDeploys(t *testing.T) {
	e := newExecutor(t)

	cs, err := contracts.CompileAll("../contracts")
	require.NoError(t, err)
	require.Len(t, cs, 2)

	var registryHash util.Uint160
	for i := range cs {
		switch cs[i].Manifest.Name {
		case "KYC Registry":
			registryHash = deployRegistry(t, e, cs[i])
		case "Fund Vault":
			require.False(t, registryHash.Equals(util.Uint160{}), "registry must deploy before the vault")
			deployVault(t, e, cs[i], registryHash)
		default:
			t.Fatalf("unexpected contract %q", cs[i].Manifest.Name)
		}
	}
}

func deployRegistry(t *testing.T, e *neotest.Executor, c contracts.Contract) util.Uint160 {
	ctr := neotest.Contract{
		Hash:     state.CreateContractHash(e.CommitteeHash, c.NEF.Checksum, c.Manifest.Name),
		NEF:      &c.NEF,
		Manifest: &c.Manifest,
	}

	e.DeployContract(t, &ctr, []interface{}{e.CommitteeHash, false})

	inv := e.CommitteeInvoker(ctr.Hash)
	inv.Invoke(t, stackitem.NewByteArray(e.CommitteeHash.BytesBE()), "authority")
	inv.Invoke(t, false, "isStrict")
	return ctr.Hash
}

func deployVault(t *testing.T, e *neotest.Executor, c contracts.Contract, registryHash util.Uint160) {
	ctr := neotest.Contract{
		Hash:     state.CreateContractHash(e.CommitteeHash, c.NEF.Checksum, c.Manifest.Name),
		NEF:      &c.NEF,
		Manifest: &c.Manifest,
	}

	operator := e.NewAccount(t)
	custodian := e.NewAccount(t)
	e.DeployContract(t, &ctr, []interface{}{
		e.CommitteeHash, operator.ScriptHash(), custodian.ScriptHash(), registryHash,
	})

	inv := e.CommitteeInvoker(ctr.Hash)
	inv.Invoke(t, "FUND", "symbol")
	inv.Invoke(t, int64(0), "totalSupply")
	inv.Invoke(t, false, "paused")
}
