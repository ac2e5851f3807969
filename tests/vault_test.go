package tests

import (
	"math/big"
	"path"
	"testing"

	"github.com/fundchain/fund-contract/common"
	"github.com/fundchain/fund-contract/contracts/vault/vaultconst"
	vaultrpc "github.com/fundchain/fund-contract/rpc/vault"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	vaultPath        = "../contracts/vault"
	kycRegistryPath  = "../contracts/kycregistry"
	stableAssetPath  = "../internal/testcontracts/stableasset"
	hostileAssetPath = "../internal/testcontracts/hostileasset"
)

const (
	oneShare = 1_000_000             // 6-decimal share unit
	parNav   = vaultconst.PriceScale // 1.0 per share
)

type vaultEnv struct {
	executor *neotest.Executor

	// committee-signed invokers: the committee is the vault admin, the
	// registry authority and the asset owner at the same time.
	vault    *neotest.ContractInvoker
	registry *neotest.ContractInvoker
	asset    *neotest.ContractInvoker

	vaultHash    util.Uint160
	registryHash util.Uint160
	assetHash    util.Uint160

	operator  neotest.Signer
	custodian neotest.Signer
}

func newVaultEnv(t *testing.T, strict bool, assetDecimals int) *vaultEnv {
	e := newExecutor(t)

	ctrRegistry := neotest.CompileFile(t, e.CommitteeHash, kycRegistryPath, path.Join(kycRegistryPath, "config.yml"))
	e.DeployContract(t, ctrRegistry, []interface{}{e.CommitteeHash, strict})

	operator := e.NewAccount(t)
	custodian := e.NewAccount(t)

	ctrVault := neotest.CompileFile(t, e.CommitteeHash, vaultPath, path.Join(vaultPath, "config.yml"))
	e.DeployContract(t, ctrVault, []interface{}{
		e.CommitteeHash, operator.ScriptHash(), custodian.ScriptHash(), ctrRegistry.Hash,
	})

	ctrAsset := neotest.CompileFile(t, e.CommitteeHash, stableAssetPath, path.Join(stableAssetPath, "config.yml"))
	e.DeployContract(t, ctrAsset, []interface{}{e.CommitteeHash, assetDecimals})

	return &vaultEnv{
		executor:     e,
		vault:        e.CommitteeInvoker(ctrVault.Hash),
		registry:     e.CommitteeInvoker(ctrRegistry.Hash),
		asset:        e.CommitteeInvoker(ctrAsset.Hash),
		vaultHash:    ctrVault.Hash,
		registryHash: ctrRegistry.Hash,
		assetHash:    ctrAsset.Hash,
		operator:     operator,
		custodian:    custodian,
	}
}

func (x *vaultEnv) operatorInvoker() *neotest.ContractInvoker {
	return x.executor.NewInvoker(x.vaultHash, x.operator)
}

func (x *vaultEnv) investorInvoker(investor neotest.Signer) *neotest.ContractInvoker {
	return x.executor.NewInvoker(x.vaultHash, investor)
}

func (x *vaultEnv) setNav(t *testing.T, nav int64) {
	x.operatorInvoker().Invoke(t, stackitem.Null{}, "setPrice", nav)
}

func (x *vaultEnv) approve(t *testing.T, acc util.Uint160, kyc, us bool) {
	x.registry.Invoke(t, stackitem.Null{}, "setKycStatus", acc, kyc, us)
}

func (x *vaultEnv) ban(t *testing.T, acc util.Uint160) {
	x.registry.Invoke(t, stackitem.Null{}, "ban", acc)
}

func (x *vaultEnv) fund(t *testing.T, acc util.Uint160, amount int64) {
	x.asset.Invoke(t, stackitem.Null{}, "mint", acc, amount)
}

func (x *vaultEnv) sharesOf(t *testing.T, acc util.Uint160) int64 {
	s, err := x.vault.TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)
	return s.Pop().BigInt().Int64()
}

func (x *vaultEnv) assetBalanceOf(t *testing.T, acc util.Uint160) int64 {
	s, err := x.asset.TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)
	return s.Pop().BigInt().Int64()
}

func (x *vaultEnv) deposit(t *testing.T, investor neotest.Signer, amount, expectedShares int64) {
	x.investorInvoker(investor).Invoke(t, expectedShares, "deposit",
		investor.ScriptHash(), x.assetHash, amount, settlementRef(t, investor))
}

func TestVaultDeposit(t *testing.T) {
	x := newVaultEnv(t, false, 6)
	x.setNav(t, parNav)

	investor := x.executor.NewAccount(t)
	x.fund(t, investor.ScriptHash(), 3*oneShare)

	// 1.0 per share: amounts and shares map one to one
	h := x.investorInvoker(investor).Invoke(t, int64(oneShare), "deposit",
		investor.ScriptHash(), x.assetHash, int64(oneShare), settlementRef(t, investor))
	require.EqualValues(t, oneShare, x.sharesOf(t, investor.ScriptHash()))
	require.EqualValues(t, oneShare, x.assetBalanceOf(t, x.vaultHash))
	x.vault.Invoke(t, int64(oneShare), "totalSupply")

	// asset leg first, then share issuance, then the deposit record
	aer := x.vault.CheckHalt(t, h)
	require.Len(t, aer.Events, 4)
	require.Equal(t, "Transfer", aer.Events[0].Name)
	require.Equal(t, x.assetHash, aer.Events[0].ScriptHash)
	require.Equal(t, "Transfer", aer.Events[1].Name)
	require.Equal(t, x.vaultHash, aer.Events[1].ScriptHash)
	require.Equal(t, "TransferX", aer.Events[2].Name)
	require.Equal(t, x.vaultHash, aer.Events[2].ScriptHash)
	require.Equal(t, "Deposit", aer.Events[3].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(investor.ScriptHash().BytesBE()),
		stackitem.NewByteArray(x.assetHash.BytesBE()),
		stackitem.NewBigInteger(big.NewInt(oneShare)),
		stackitem.NewBigInteger(big.NewInt(oneShare)),
	}), aer.Events[3].Item)

	appLog := result.NewApplicationLog(h, []state.AppExecResult{*aer}, trigger.Application)
	deposits, err := vaultrpc.DepositEventsFromApplicationLog(&appLog)
	require.NoError(t, err)
	require.Len(t, deposits, 1)
	require.Equal(t, investor.ScriptHash(), deposits[0].Investor)
	require.Equal(t, x.assetHash, deposits[0].Asset)
	require.EqualValues(t, oneShare, deposits[0].Amount.Int64())
	require.EqualValues(t, oneShare, deposits[0].Shares.Int64())

	// shares halve after NAV doubles
	x.setNav(t, 2*parNav)
	x.deposit(t, investor, oneShare, oneShare/2)
	require.EqualValues(t, oneShare+oneShare/2, x.sharesOf(t, investor.ScriptHash()))
	require.EqualValues(t, 2*oneShare, x.assetBalanceOf(t, x.vaultHash))
}

func TestVaultDepositScaling(t *testing.T) {
	// an asset with 8 decimals must be normalized to the 6-decimal share
	// scale before pricing
	x := newVaultEnv(t, false, 8)
	x.setNav(t, 2*parNav)

	investor := x.executor.NewAccount(t)
	x.fund(t, investor.ScriptHash(), 250_000_000) // 2.5 asset units

	x.deposit(t, investor, 250_000_000, 1_250_000)
	require.EqualValues(t, 1_250_000, x.sharesOf(t, investor.ScriptHash()))
}

func TestVaultDepositFailures(t *testing.T) {
	x := newVaultEnv(t, false, 6)

	investor := x.executor.NewAccount(t)
	x.fund(t, investor.ScriptHash(), oneShare)
	inv := x.investorInvoker(investor)
	ref := settlementRef(t, investor)

	// NAV was never published, deposits cannot be priced
	inv.InvokeFail(t, "fund NAV is not published", "deposit", investor.ScriptHash(), x.assetHash, int64(oneShare), ref)

	x.setNav(t, parNav)

	inv.InvokeFail(t, "non-positive deposit amount", "deposit", investor.ScriptHash(), x.assetHash, int64(0), ref)

	// insufficient asset balance: the pull reverts the whole call
	inv.InvokeFail(t, "asset transfer failed", "deposit", investor.ScriptHash(), x.assetHash, int64(2*oneShare), ref)

	// depositing on someone else's behalf is not allowed
	other := x.executor.NewAccount(t)
	x.executor.NewInvoker(x.vaultHash, other).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"deposit", investor.ScriptHash(), x.assetHash, int64(oneShare), ref)
}

func TestVaultDepositRestricted(t *testing.T) {
	x := newVaultEnv(t, false, 6)
	x.setNav(t, parNav)

	banned := x.executor.NewAccount(t)
	x.fund(t, banned.ScriptHash(), oneShare)
	x.ban(t, banned.ScriptHash())
	x.investorInvoker(banned).InvokeFail(t, "transfer party is banned",
		"deposit", banned.ScriptHash(), x.assetHash, int64(oneShare), settlementRef(t, banned))

	// non-strict mode: a US-flagged investor needs KYC approval
	usInvestor := x.executor.NewAccount(t)
	x.fund(t, usInvestor.ScriptHash(), 2*oneShare)
	x.approve(t, usInvestor.ScriptHash(), false, true)
	x.investorInvoker(usInvestor).InvokeFail(t, "transfer party lacks required KYC",
		"deposit", usInvestor.ScriptHash(), x.assetHash, int64(oneShare), settlementRef(t, usInvestor))

	x.approve(t, usInvestor.ScriptHash(), true, true)
	x.deposit(t, usInvestor, oneShare, oneShare)

	// strict mode: everyone needs KYC approval
	x.registry.Invoke(t, stackitem.Null{}, "setStrict", true)

	plain := x.executor.NewAccount(t)
	x.fund(t, plain.ScriptHash(), oneShare)
	x.investorInvoker(plain).InvokeFail(t, "transfer party lacks required KYC",
		"deposit", plain.ScriptHash(), x.assetHash, int64(oneShare), settlementRef(t, plain))

	x.approve(t, plain.ScriptHash(), true, false)
	x.deposit(t, plain, oneShare, oneShare)
}

func TestVaultTransferRestrictions(t *testing.T) {
	x := newVaultEnv(t, false, 6)

	sender := x.executor.NewAccount(t)
	receiver := x.executor.NewAccount(t)
	x.vault.Invoke(t, stackitem.Null{}, "mint", sender.ScriptHash(), int64(10*oneShare))

	send := func(from neotest.Signer) *neotest.ContractInvoker {
		return x.executor.NewInvoker(x.vaultHash, from)
	}

	// non-strict mode, unflagged sender: receiver KYC does not matter
	send(sender).Invoke(t, true, "transfer",
		sender.ScriptHash(), receiver.ScriptHash(), int64(oneShare), nil)

	// US-flagged sender requires receiver KYC
	x.approve(t, sender.ScriptHash(), true, true)
	send(sender).InvokeFail(t, "transfer party lacks required KYC", "transfer",
		sender.ScriptHash(), receiver.ScriptHash(), int64(oneShare), nil)
	x.approve(t, receiver.ScriptHash(), true, false)
	send(sender).Invoke(t, true, "transfer",
		sender.ScriptHash(), receiver.ScriptHash(), int64(oneShare), nil)

	// strict mode requires KYC on both sides
	x.registry.Invoke(t, stackitem.Null{}, "setStrict", true)
	stranger := x.executor.NewAccount(t)
	send(sender).InvokeFail(t, "transfer party lacks required KYC", "transfer",
		sender.ScriptHash(), stranger.ScriptHash(), int64(oneShare), nil)
	send(sender).Invoke(t, true, "transfer",
		sender.ScriptHash(), receiver.ScriptHash(), int64(oneShare), nil)

	// bans beat everything, in any mode
	x.ban(t, receiver.ScriptHash())
	send(sender).InvokeFail(t, "transfer party is banned", "transfer",
		sender.ScriptHash(), receiver.ScriptHash(), int64(oneShare), nil)
	x.registry.Invoke(t, stackitem.Null{}, "setStrict", false)
	send(sender).InvokeFail(t, "transfer party is banned", "transfer",
		sender.ScriptHash(), receiver.ScriptHash(), int64(oneShare), nil)

	x.vault.Invoke(t, int64(vaultconst.RestrictionBanned), "detectTransferRestriction",
		sender.ScriptHash(), receiver.ScriptHash())
	x.vault.Invoke(t, "transfer party is banned", "messageForTransferRestriction",
		int64(vaultconst.RestrictionBanned))
	x.vault.Invoke(t, int64(vaultconst.RestrictionNone), "detectTransferRestriction",
		sender.ScriptHash(), sender.ScriptHash())
}

func TestVaultPause(t *testing.T) {
	x := newVaultEnv(t, false, 6)
	x.setNav(t, parNav)

	investor := x.executor.NewAccount(t)
	x.fund(t, investor.ScriptHash(), 2*oneShare)
	x.deposit(t, investor, oneShare, oneShare)

	stranger := x.executor.NewAccount(t)
	x.executor.NewInvoker(x.vaultHash, stranger).InvokeFail(t,
		"only admin or operator can invoke this method", "pause")

	x.operatorInvoker().Invoke(t, stackitem.Null{}, "pause")
	x.vault.Invoke(t, true, "paused")

	inv := x.investorInvoker(investor)
	inv.InvokeFail(t, "contract is paused", "deposit",
		investor.ScriptHash(), x.assetHash, int64(oneShare), settlementRef(t, investor))
	inv.InvokeFail(t, "contract is paused", "redeem",
		investor.ScriptHash(), int64(oneShare), x.assetHash)

	// pausing protects investor-facing entrypoints only
	x.setNav(t, 3*parNav)
	x.operatorInvoker().Invoke(t, stackitem.Null{}, "transferToCustodian", x.assetHash, int64(oneShare))
	x.vault.Invoke(t, stackitem.Null{}, "setCustodian", x.custodian.ScriptHash())

	x.vault.Invoke(t, stackitem.Null{}, "unpause")
	x.vault.Invoke(t, false, "paused")
	x.deposit(t, investor, oneShare, oneShare/3)
}

func TestVaultRedemption(t *testing.T) {
	x := newVaultEnv(t, false, 6)
	x.setNav(t, parNav)

	investor := x.executor.NewAccount(t)
	x.fund(t, investor.ScriptHash(), oneShare)
	x.deposit(t, investor, oneShare, oneShare)

	inv := x.investorInvoker(investor)
	inv.InvokeFail(t, "non-positive share amount", "redeem",
		investor.ScriptHash(), int64(0), x.assetHash)

	// escrow-by-transfer: shares move to the vault, supply is unchanged
	h := inv.Invoke(t, int64(1), "redeem", investor.ScriptHash(), int64(400_000), x.assetHash)
	require.EqualValues(t, 600_000, x.sharesOf(t, investor.ScriptHash()))
	require.EqualValues(t, 400_000, x.sharesOf(t, x.vaultHash))
	x.vault.Invoke(t, int64(oneShare), "totalSupply")

	aer := x.vault.CheckHalt(t, h)
	require.Len(t, aer.Events, 3)
	require.Equal(t, "Transfer", aer.Events[0].Name)
	require.Equal(t, "TransferX", aer.Events[1].Name)
	require.Equal(t, "RedemptionRequested", aer.Events[2].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewBigInteger(big.NewInt(1)),
		stackitem.NewByteArray(investor.ScriptHash().BytesBE()),
		stackitem.NewBigInteger(big.NewInt(400_000)),
		stackitem.NewByteArray(x.assetHash.BytesBE()),
	}), aer.Events[2].Item)

	appLog := result.NewApplicationLog(h, []state.AppExecResult{*aer}, trigger.Application)
	requested, err := vaultrpc.RedemptionRequestedEventsFromApplicationLog(&appLog)
	require.NoError(t, err)
	require.Len(t, requested, 1)
	require.EqualValues(t, 1, requested[0].ID.Int64())
	require.Equal(t, investor.ScriptHash(), requested[0].Investor)
	require.EqualValues(t, 400_000, requested[0].Shares.Int64())
	require.Equal(t, x.assetHash, requested[0].Asset)

	s, err := x.vault.TestInvoke(t, "redemptionRequest", int64(1))
	require.NoError(t, err)
	fields := s.Pop().Array()
	require.Len(t, fields, 4)
	requireUint160(t, investor.ScriptHash(), fields[0])
	requireUint160(t, x.assetHash, fields[1])
	require.EqualValues(t, 400_000, toInt64(t, fields[2]))
	require.EqualValues(t, vaultconst.StatusRequested, toInt64(t, fields[3]))

	// settlement burns the escrowed shares and pays the operator-computed
	// amount out of the vault-held asset
	stranger := x.executor.NewAccount(t)
	x.executor.NewInvoker(x.vaultHash, stranger).InvokeFail(t,
		"only admin or operator can invoke this method", "processRedemption", int64(1), int64(400_000))

	h = x.operatorInvoker().Invoke(t, stackitem.Null{}, "processRedemption", int64(1), int64(400_000))
	require.EqualValues(t, 0, x.sharesOf(t, x.vaultHash))
	require.EqualValues(t, 400_000, x.assetBalanceOf(t, investor.ScriptHash()))
	x.vault.Invoke(t, int64(600_000), "totalSupply")

	// escrow burn, asset payout, then the settlement record
	aer = x.vault.CheckHalt(t, h)
	require.Len(t, aer.Events, 4)
	require.Equal(t, "RedemptionProcessed", aer.Events[3].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewBigInteger(big.NewInt(1)),
		stackitem.NewByteArray(investor.ScriptHash().BytesBE()),
		stackitem.NewByteArray(x.assetHash.BytesBE()),
		stackitem.NewBigInteger(big.NewInt(400_000)),
		stackitem.NewBigInteger(big.NewInt(400_000)),
	}), aer.Events[3].Item)

	s, err = x.vault.TestInvoke(t, "redemptionRequest", int64(1))
	require.NoError(t, err)
	require.EqualValues(t, vaultconst.StatusSettled, toInt64(t, s.Pop().Array()[3]))

	x.vault.InvokeFail(t, "redemption request already settled", "processRedemption", int64(1), int64(400_000))
	x.vault.InvokeFail(t, "unknown redemption request", "processRedemption", int64(42), int64(1))

	// banned investors cannot request redemptions either
	x.ban(t, investor.ScriptHash())
	inv.InvokeFail(t, "transfer party is banned", "redeem",
		investor.ScriptHash(), int64(100_000), x.assetHash)
}

func TestVaultReentrancyGuard(t *testing.T) {
	x := newVaultEnv(t, false, 6)
	x.setNav(t, parNav)

	ctrHostile := neotest.CompileFile(t, x.executor.CommitteeHash, hostileAssetPath, path.Join(hostileAssetPath, "config.yml"))
	x.executor.DeployContract(t, ctrHostile, []interface{}{x.executor.CommitteeHash, x.vaultHash})
	hostile := x.executor.CommitteeInvoker(ctrHostile.Hash)

	investor := x.executor.NewAccount(t)
	hostile.Invoke(t, stackitem.Null{}, "mint", investor.ScriptHash(), int64(2*oneShare))

	// well-behaved until armed: seed a position and a pending request
	inv := x.investorInvoker(investor)
	inv.Invoke(t, int64(oneShare), "deposit",
		investor.ScriptHash(), ctrHostile.Hash, int64(oneShare), settlementRef(t, investor))
	inv.Invoke(t, int64(1), "redeem", investor.ScriptHash(), int64(oneShare), ctrHostile.Hash)

	// armed asset calls back into deposit from inside its own transfer
	hostile.Invoke(t, stackitem.Null{}, "arm", true)
	inv.InvokeFail(t, "reentrant call", "deposit",
		investor.ScriptHash(), ctrHostile.Hash, int64(oneShare), settlementRef(t, investor))
	x.operatorInvoker().InvokeFail(t, "reentrant call", "processRedemption", int64(1), int64(oneShare))

	// faulted calls roll back whole: the request settles once disarmed
	hostile.Invoke(t, stackitem.Null{}, "arm", false)
	x.operatorInvoker().Invoke(t, stackitem.Null{}, "processRedemption", int64(1), int64(oneShare))

	s, err := hostile.TestInvoke(t, "balanceOf", investor.ScriptHash())
	require.NoError(t, err)
	require.EqualValues(t, 2*oneShare, s.Pop().BigInt().Int64())
}

func TestVaultCustodianSweep(t *testing.T) {
	x := newVaultEnv(t, false, 6)
	x.setNav(t, parNav)

	investor := x.executor.NewAccount(t)
	x.fund(t, investor.ScriptHash(), oneShare)
	x.deposit(t, investor, oneShare, oneShare)

	x.operatorInvoker().Invoke(t, stackitem.Null{},
		"transferToCustodian", x.assetHash, int64(300_000))
	require.EqualValues(t, 300_000, x.assetBalanceOf(t, x.custodian.ScriptHash()))

	x.operatorInvoker().Invoke(t, stackitem.Null{}, "transferAllToCustodian", x.assetHash)
	require.EqualValues(t, oneShare, x.assetBalanceOf(t, x.custodian.ScriptHash()))
	require.EqualValues(t, 0, x.assetBalanceOf(t, x.vaultHash))

	x.operatorInvoker().InvokeFail(t, "non-positive sweep amount",
		"transferAllToCustodian", x.assetHash)
}

func TestVaultSweepWithoutCustodian(t *testing.T) {
	e := newExecutor(t)

	ctrRegistry := neotest.CompileFile(t, e.CommitteeHash, kycRegistryPath, path.Join(kycRegistryPath, "config.yml"))
	e.DeployContract(t, ctrRegistry, []interface{}{e.CommitteeHash, false})

	operator := e.NewAccount(t)
	ctrVault := neotest.CompileFile(t, e.CommitteeHash, vaultPath, path.Join(vaultPath, "config.yml"))
	e.DeployContract(t, ctrVault, []interface{}{
		e.CommitteeHash, operator.ScriptHash(), nil, ctrRegistry.Hash,
	})

	ctrAsset := neotest.CompileFile(t, e.CommitteeHash, stableAssetPath, path.Join(stableAssetPath, "config.yml"))
	e.DeployContract(t, ctrAsset, []interface{}{e.CommitteeHash, 6})

	c := e.CommitteeInvoker(ctrVault.Hash)
	c.Invoke(t, stackitem.Null{}, "custodian")
	c.InvokeFail(t, "custodian is not set", "transferToCustodian", ctrAsset.Hash, int64(1))

	custodian := e.NewAccount(t)
	c.Invoke(t, stackitem.Null{}, "setCustodian", custodian.ScriptHash())
	c.Invoke(t, stackitem.NewByteArray(custodian.ScriptHash().BytesBE()), "custodian")
}

func TestVaultRoles(t *testing.T) {
	x := newVaultEnv(t, false, 6)

	op := x.operatorInvoker()
	newCustodian := x.executor.NewAccount(t)

	// operator runs the day-to-day flow but never admin-only calls
	op.Invoke(t, stackitem.Null{}, "setFundNav", int64(parNav))
	op.Invoke(t, stackitem.Null{}, "pause")
	op.Invoke(t, stackitem.Null{}, "unpause")
	op.InvokeFail(t, "only admin can invoke this method", "setCustodian", newCustodian.ScriptHash())
	op.InvokeFail(t, "only admin can invoke this method", "setKycRegistry", x.registryHash)
	op.InvokeFail(t, "only admin can invoke this method", "grantRole",
		int64(vaultconst.RoleOperator), newCustodian.ScriptHash())

	// admin implicitly satisfies admin-or-operator checks
	x.vault.Invoke(t, stackitem.Null{}, "setPrice", int64(2*parNav))
	x.vault.Invoke(t, stackitem.Null{}, "pause")
	x.vault.Invoke(t, stackitem.Null{}, "unpause")
	x.vault.Invoke(t, stackitem.Null{}, "setCustodian", newCustodian.ScriptHash())

	stranger := x.executor.NewAccount(t)
	strangerInv := x.executor.NewInvoker(x.vaultHash, stranger)
	strangerInv.InvokeFail(t, "only admin or operator can invoke this method",
		"mint", stranger.ScriptHash(), int64(oneShare))
	strangerInv.InvokeFail(t, "only admin or operator can invoke this method",
		"setPrice", int64(parNav))

	// role membership is managed by the admin at runtime
	x.vault.Invoke(t, false, "hasRole", int64(vaultconst.RoleOperator), stranger.ScriptHash())
	x.vault.Invoke(t, stackitem.Null{}, "grantRole", int64(vaultconst.RoleOperator), stranger.ScriptHash())
	x.vault.Invoke(t, true, "hasRole", int64(vaultconst.RoleOperator), stranger.ScriptHash())
	strangerInv.Invoke(t, stackitem.Null{}, "setPrice", int64(parNav))

	x.vault.Invoke(t, stackitem.Null{}, "revokeRole", int64(vaultconst.RoleOperator), stranger.ScriptHash())
	strangerInv.InvokeFail(t, "only admin or operator can invoke this method",
		"setPrice", int64(parNav))

	x.vault.Invoke(t, true, "hasRole", int64(vaultconst.RoleAdmin), x.executor.CommitteeHash)
	x.vault.Invoke(t, true, "hasRole", int64(vaultconst.RoleOperator), x.operator.ScriptHash())
}

func TestVaultMintBurn(t *testing.T) {
	x := newVaultEnv(t, false, 6)

	holder := x.executor.NewAccount(t)
	x.vault.Invoke(t, stackitem.Null{}, "mint", holder.ScriptHash(), int64(5*oneShare))
	require.EqualValues(t, 5*oneShare, x.sharesOf(t, holder.ScriptHash()))
	x.vault.Invoke(t, int64(5*oneShare), "totalSupply")

	x.operatorInvoker().Invoke(t, stackitem.Null{}, "burnFrom", holder.ScriptHash(), int64(2*oneShare))
	require.EqualValues(t, 3*oneShare, x.sharesOf(t, holder.ScriptHash()))
	x.vault.Invoke(t, int64(3*oneShare), "totalSupply")

	x.vault.InvokeFail(t, "can't burn shares", "burnFrom", holder.ScriptHash(), int64(10*oneShare))
}

func TestVaultNavState(t *testing.T) {
	x := newVaultEnv(t, false, 6)

	x.vault.Invoke(t, "FUND", "symbol")
	x.vault.Invoke(t, int64(6), "decimals")
	x.vault.Invoke(t, int64(0), "price")
	x.vault.Invoke(t, int64(0), "latestNav")
	x.vault.Invoke(t, int64(0), "lastNavUpdate")

	x.vault.InvokeFail(t, "non-positive NAV value", "setPrice", int64(0))
	x.vault.InvokeFail(t, "non-positive NAV value", "setPrice", int64(-1))

	x.setNav(t, 123_450_000)
	x.vault.Invoke(t, int64(123_450_000), "price")
	x.vault.Invoke(t, int64(123_450_000), "latestNav")

	s, err := x.vault.TestInvoke(t, "lastNavUpdate")
	require.NoError(t, err)
	require.Positive(t, s.Pop().BigInt().Int64())

	x.vault.Invoke(t, stackitem.NewByteArray(x.registryHash.BytesBE()), "kycRegistry")
}

func requireUint160(t *testing.T, expected util.Uint160, item stackitem.Item) {
	actual, err := item.TryBytes()
	require.NoError(t, err)
	require.Equal(t, expected.BytesBE(), actual)
}

func toInt64(t *testing.T, item stackitem.Item) int64 {
	n, err := item.TryInteger()
	require.NoError(t, err)
	return n.Int64()
}
