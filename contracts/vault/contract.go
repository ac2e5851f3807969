package vault

import (
	"github.com/fundchain/fund-contract/common"
	"github.com/fundchain/fund-contract/contracts/vault/vaultconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Token holds all fund share token info.
	Token struct {
		// Ticker symbol
		Symbol string
		// Amount of decimals
		Decimals int
		// Storage key for circulation value
		CirculationKey string
	}

	// Request records a redemption: shares already escrowed in the vault
	// awaiting an operator-settled asset payout.
	Request struct {
		// Investor whose shares were escrowed.
		Investor interop.Hash160
		// Asset the payout is denominated in.
		Asset interop.Hash160
		// Amount of escrowed shares.
		Shares int
		// Settlement status, one of vaultconst.Status* values.
		Status int
	}
)

const (
	symbol      = "FUND"
	decimals    = vaultconst.Decimals
	circulation = "TotalShares"

	navKey            = "nav"
	navUpdatedKey     = "navUpdated"
	custodianKey      = "custodian"
	kycRegistryKey    = "kycRegistry"
	pausedKey         = "paused"
	requestCounterKey = "reqCnt"
	guardKey          = "guard"

	errAdminOnly           = "only admin can invoke this method"
	errAdminOrOperator     = "only admin or operator can invoke this method"
	errPaused              = "contract is paused"
	errCustodianUnset      = "custodian is not set"
	errNavUnset            = "fund NAV is not published"
	errReentrantCall       = "reentrant call"
	errAssetTransferFailed = "asset transfer failed"
)

var (
	accountPrefix = []byte("a")
	requestPrefix = []byte("q")
)

var token Token

func createToken() Token {
	return Token{
		Symbol:         symbol,
		Decimals:       decimals,
		CirculationKey: circulation,
	}
}

func init() {
	token = createToken()
}

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner       interop.Hash160
		operator    interop.Hash160
		custodian   interop.Hash160
		kycRegistry interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len || len(args.operator) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if len(args.kycRegistry) != interop.Hash160Len {
		panic("incorrect length of KYC registry script hash")
	}

	storage.Put(ctx, roleKey(vaultconst.RoleAdmin, args.owner), 1)
	storage.Put(ctx, roleKey(vaultconst.RoleOperator, args.operator), 1)
	storage.Put(ctx, kycRegistryKey, args.kycRegistry)

	switch len(args.custodian) {
	case 0:
		// sweeps stay blocked until an admin sets the custodian
	case interop.Hash160Len:
		storage.Put(ctx, custodianKey, args.custodian)
	default:
		panic("incorrect length of custodian script hash")
	}

	runtime.Log("vault contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by an admin.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	requireRole(ctx, vaultconst.RoleAdmin, errAdminOnly)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("vault contract updated")
}

// Symbol is a NEP-17 standard method that returns the fund share symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 standard method that returns precision of fund
// shares.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 standard method that returns total amount of
// shares in circulation.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return token.getSupply(ctx)
}

// BalanceOf is a NEP-17 standard method that returns the share balance of
// the specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return token.balanceOf(ctx, account)
}

// Transfer is a NEP-17 standard method that transfers fund shares from one
// account to another. Can be invoked only by the account owner. The
// transfer is rejected when the restriction policy disallows the pair of
// counterparties.
//
// Produces Transfer and TransferX notifications.
func Transfer(from, to interop.Hash160, amount int, data interface{}) bool {
	ctx := storage.GetContext()
	return token.transfer(ctx, from, to, amount, false, nil)
}

// OnNEP17Payment accepts incoming asset transfers. The vault holds
// deposited assets until they are swept to the custodian or paid out by
// redemption processing.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
}

// Deposit pulls amount of asset from the investor and mints fund shares
// priced at the current NAV in return. Asset amount is normalized to the
// 6-decimal share scale using the asset's own decimals. The investor must
// pass the restriction policy and the vault must not be paused.
//
// NAV must be published before deposits are enabled: a zero NAV faults the
// conversion. Returns the amount of minted shares.
//
// Produces Deposit, Transfer and TransferX notifications.
func Deposit(investor interop.Hash160, asset interop.Hash160, amount int, ref []byte) int {
	ctx := storage.GetContext()
	requireNotPaused(ctx)
	acquireGuard(ctx)

	if len(asset) != interop.Hash160Len {
		panic("incorrect length of asset script hash")
	}
	common.CheckOwnerWitness(investor)
	if amount <= 0 {
		panic("non-positive deposit amount")
	}
	requireParticipant(ctx, investor)

	details := common.DepositTransferDetails(ref)
	self := runtime.GetExecutingScriptHash()
	ok := contract.Call(asset, "transfer", contract.All, investor, self, amount, details).(bool)
	if !ok {
		panic(errAssetTransferFailed)
	}

	nav := currentNav(ctx)
	if nav <= 0 {
		panic(errNavUnset)
	}

	assetDecimals := contract.Call(asset, "decimals", contract.ReadOnly).(int)
	scaled := amount * vaultconst.AmountScale / pow10(assetDecimals)
	shares := scaled * vaultconst.PriceScale / nav

	mintShares(ctx, investor, shares, details)
	runtime.Notify("Deposit", investor, asset, amount, shares)

	releaseGuard(ctx)
	return shares
}

// Redeem escrows the investor's shares in the vault and records a
// redemption request. The asset payout happens later via
// ProcessRedemption once the custodied position is realized off-chain.
// Returns the request identifier.
//
// Produces RedemptionRequested, Transfer and TransferX notifications.
func Redeem(investor interop.Hash160, shares int, asset interop.Hash160) int {
	ctx := storage.GetContext()
	requireNotPaused(ctx)
	acquireGuard(ctx)

	if len(asset) != interop.Hash160Len {
		panic("incorrect length of asset script hash")
	}
	common.CheckOwnerWitness(investor)
	if shares <= 0 {
		panic("non-positive share amount")
	}
	requireParticipant(ctx, investor)

	self := runtime.GetExecutingScriptHash()
	ok := token.transfer(ctx, investor, self, shares, true, common.RedemptionTransferDetails([]byte{}))
	if !ok {
		panic("can't escrow shares")
	}

	id := nextRequestID(ctx)
	common.SetSerialized(ctx, requestKey(id), Request{
		Investor: investor,
		Asset:    asset,
		Shares:   shares,
		Status:   vaultconst.StatusRequested,
	})
	runtime.Notify("RedemptionRequested", id, investor, shares, asset)

	releaseGuard(ctx)
	return id
}

// ProcessRedemption settles the redemption request: burns the escrowed
// shares from the vault's own balance and pays amount of the recorded
// asset to the recorded investor. The payout amount is computed off-chain
// by the operator from the realized custodied position. Can be invoked
// only by admin or operator.
//
// Produces RedemptionProcessed, Transfer and TransferX notifications.
func ProcessRedemption(id int, amount int) {
	ctx := storage.GetContext()
	requireAdminOrOperator(ctx)
	acquireGuard(ctx)

	if amount <= 0 {
		panic("non-positive payout amount")
	}

	req := getRequest(ctx, id)
	if req.Status != vaultconst.StatusRequested {
		panic("redemption request already settled")
	}

	details := common.SettlementTransferDetails(id)
	self := runtime.GetExecutingScriptHash()
	burnShares(ctx, self, req.Shares, details)

	ok := contract.Call(req.Asset, "transfer", contract.All, self, req.Investor, amount, details).(bool)
	if !ok {
		panic(errAssetTransferFailed)
	}

	req.Status = vaultconst.StatusSettled
	common.SetSerialized(ctx, requestKey(id), req)
	runtime.Notify("RedemptionProcessed", id, req.Investor, req.Asset, amount, req.Shares)

	releaseGuard(ctx)
}

// RedemptionRequest returns the redemption request with the given
// identifier.
func RedemptionRequest(id int) Request {
	ctx := storage.GetReadOnlyContext()
	return getRequest(ctx, id)
}

// Redemptions returns an iterator over all recorded redemption requests.
func Redemptions() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, requestPrefix, storage.ValuesOnly|storage.DeserializeValues)
}

// TransferToCustodian sweeps amount of vault-held asset to the custodian.
// Can be invoked only by admin or operator. Panics if the custodian is not
// set.
//
// Produces SweepToCustodian notification.
func TransferToCustodian(asset interop.Hash160, amount int) {
	ctx := storage.GetContext()
	requireAdminOrOperator(ctx)
	acquireGuard(ctx)

	sweepToCustodian(ctx, asset, amount)

	releaseGuard(ctx)
}

// TransferAllToCustodian sweeps the whole vault-held balance of asset to
// the custodian. Can be invoked only by admin or operator.
//
// Produces SweepToCustodian notification.
func TransferAllToCustodian(asset interop.Hash160) {
	ctx := storage.GetContext()
	requireAdminOrOperator(ctx)
	acquireGuard(ctx)

	self := runtime.GetExecutingScriptHash()
	balance := contract.Call(asset, "balanceOf", contract.ReadOnly, self).(int)
	sweepToCustodian(ctx, asset, balance)

	releaseGuard(ctx)
}

// SetPrice publishes a new value per share at 1e8 scale. Operators are the
// sole source of truth for valuation, no bounds are enforced. Can be
// invoked only by admin or operator.
//
// Produces NavUpdated notification.
func SetPrice(price int) {
	setNav(price)
}

// SetFundNav publishes a new net asset value per share at 1e8 scale. It is
// an alias of SetPrice kept for deployments tracking fund NAV terminology.
//
// Produces NavUpdated notification.
func SetFundNav(nav int) {
	setNav(nav)
}

// Price returns the current value per share at 1e8 scale, zero if it was
// never published.
func Price() int {
	ctx := storage.GetReadOnlyContext()
	return currentNav(ctx)
}

// LatestNav returns the current net asset value per share at 1e8 scale,
// zero if it was never published.
func LatestNav() int {
	ctx := storage.GetReadOnlyContext()
	return currentNav(ctx)
}

// LastNavUpdate returns the timestamp of the latest NAV publication in
// milliseconds, zero if it was never published. Consumers can use it to
// detect a stale valuation, the contract itself does not.
func LastNavUpdate() int {
	ctx := storage.GetReadOnlyContext()
	updated := storage.Get(ctx, navUpdatedKey)
	if updated != nil {
		return updated.(int)
	}
	return 0
}

// SetCustodian sets the address receiving custodian sweeps. Can be invoked
// only by an admin.
//
// Produces CustodianChanged notification.
func SetCustodian(addr interop.Hash160) {
	if len(addr) != interop.Hash160Len {
		panic("incorrect length of custodian script hash")
	}
	ctx := storage.GetContext()
	requireRole(ctx, vaultconst.RoleAdmin, errAdminOnly)

	storage.Put(ctx, custodianKey, addr)
	runtime.Notify("CustodianChanged", addr)
}

// Custodian returns the current custodian address, empty value if it is
// not set.
func Custodian() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	addr := storage.Get(ctx, custodianKey)
	if addr != nil {
		return addr.(interop.Hash160)
	}
	return nil
}

// SetKycRegistry sets the address of the restriction policy registry. Can
// be invoked only by an admin.
//
// Produces KycRegistryChanged notification.
func SetKycRegistry(addr interop.Hash160) {
	if len(addr) != interop.Hash160Len {
		panic("incorrect length of KYC registry script hash")
	}
	ctx := storage.GetContext()
	requireRole(ctx, vaultconst.RoleAdmin, errAdminOnly)

	storage.Put(ctx, kycRegistryKey, addr)
	runtime.Notify("KycRegistryChanged", addr)
}

// KycRegistry returns the address of the restriction policy registry.
func KycRegistry() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, kycRegistryKey).(interop.Hash160)
}

// Pause blocks Deposit and Redeem entrypoints. Privileged operations stay
// available while paused. Can be invoked only by admin or operator.
//
// Produces Paused notification.
func Pause() {
	ctx := storage.GetContext()
	requireAdminOrOperator(ctx)

	storage.Put(ctx, pausedKey, 1)
	runtime.Notify("Paused")
	runtime.Log("vault paused")
}

// Unpause unblocks Deposit and Redeem entrypoints. Can be invoked only by
// admin or operator.
//
// Produces Unpaused notification.
func Unpause() {
	ctx := storage.GetContext()
	requireAdminOrOperator(ctx)

	storage.Delete(ctx, pausedKey)
	runtime.Notify("Unpaused")
	runtime.Log("vault unpaused")
}

// Paused returns true if investor-facing entrypoints are blocked.
func Paused() bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, pausedKey) != nil
}

// Mint issues amount of shares to the account. Can be invoked only by
// admin or operator.
//
// Produces Mint, Transfer and TransferX notifications.
func Mint(to interop.Hash160, amount int) {
	if len(to) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	ctx := storage.GetContext()
	requireAdminOrOperator(ctx)

	mintShares(ctx, to, amount, common.MintTransferDetails([]byte{}))
	runtime.Notify("Mint", to, amount)
	runtime.Log("shares were minted")
}

// BurnFrom destroys amount of shares held by the account. Can be invoked
// only by admin or operator.
//
// Produces Burn, Transfer and TransferX notifications.
func BurnFrom(from interop.Hash160, amount int) {
	if len(from) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	ctx := storage.GetContext()
	requireAdminOrOperator(ctx)

	burnShares(ctx, from, amount, common.BurnTransferDetails([]byte{}))
	runtime.Notify("Burn", from, amount)
	runtime.Log("shares were burned")
}

// GrantRole adds the account to the role. Can be invoked only by an admin.
//
// Produces RoleGranted notification.
func GrantRole(role int, account interop.Hash160) {
	if len(account) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	ctx := storage.GetContext()
	requireRole(ctx, vaultconst.RoleAdmin, errAdminOnly)

	storage.Put(ctx, roleKey(role, account), 1)
	runtime.Notify("RoleGranted", role, account)
}

// RevokeRole removes the account from the role. Can be invoked only by an
// admin.
//
// Produces RoleRevoked notification.
func RevokeRole(role int, account interop.Hash160) {
	if len(account) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	ctx := storage.GetContext()
	requireRole(ctx, vaultconst.RoleAdmin, errAdminOnly)

	storage.Delete(ctx, roleKey(role, account))
	runtime.Notify("RoleRevoked", role, account)
}

// HasRole returns true if the account is a member of the role.
func HasRole(role int, account interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, roleKey(role, account)) != nil
}

// DetectTransferRestriction evaluates the restriction policy for a pair of
// transfer counterparties and returns one of the vaultconst.Restriction*
// codes. The checks run in strict order, first match wins: banned sender,
// banned receiver, missing KYC of either party in strict mode, missing
// receiver KYC for a US-flagged sender otherwise.
func DetectTransferRestriction(from, to interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return detectRestriction(ctx, from, to)
}

// MessageForTransferRestriction returns a human-readable reason for the
// restriction code.
func MessageForTransferRestriction(code int) string {
	switch code {
	case vaultconst.RestrictionNone:
		return "success"
	case vaultconst.RestrictionBanned:
		return "transfer party is banned"
	case vaultconst.RestrictionDisallowed:
		return "transfer party lacks required KYC"
	default:
		panic("unknown restriction code")
	}
}

// Version returns version of the contract.
func Version() int {
	return common.Version
}

func setNav(nav int) {
	ctx := storage.GetContext()
	requireAdminOrOperator(ctx)

	if nav <= 0 {
		panic("non-positive NAV value")
	}

	storage.Put(ctx, navKey, nav)
	now := runtime.GetTime()
	storage.Put(ctx, navUpdatedKey, now)
	runtime.Notify("NavUpdated", nav, now)
}

func currentNav(ctx storage.Context) int {
	nav := storage.Get(ctx, navKey)
	if nav != nil {
		return nav.(int)
	}
	return 0
}

func sweepToCustodian(ctx storage.Context, asset interop.Hash160, amount int) {
	if len(asset) != interop.Hash160Len {
		panic("incorrect length of asset script hash")
	}
	custodian := storage.Get(ctx, custodianKey)
	if custodian == nil {
		panic(errCustodianUnset)
	}
	if amount <= 0 {
		panic("non-positive sweep amount")
	}

	self := runtime.GetExecutingScriptHash()
	ok := contract.Call(asset, "transfer", contract.All,
		self, custodian.(interop.Hash160), amount, common.SweepTransferDetails()).(bool)
	if !ok {
		panic(errAssetTransferFailed)
	}
	runtime.Notify("SweepToCustodian", asset, custodian.(interop.Hash160), amount)
}

func mintShares(ctx storage.Context, to interop.Hash160, amount int, details []byte) {
	ok := token.transfer(ctx, nil, to, amount, true, details)
	if !ok {
		panic("can't mint shares")
	}

	supply := token.getSupply(ctx)
	storage.Put(ctx, token.CirculationKey, supply+amount)
}

func burnShares(ctx storage.Context, from interop.Hash160, amount int, details []byte) {
	ok := token.transfer(ctx, from, nil, amount, true, details)
	if !ok {
		panic("can't burn shares")
	}

	supply := token.getSupply(ctx)
	if supply < amount {
		panic("negative supply after burn")
	}
	storage.Put(ctx, token.CirculationKey, supply-amount)
}

func detectRestriction(ctx storage.Context, from, to interop.Hash160) int {
	registry := storage.Get(ctx, kycRegistryKey).(interop.Hash160)

	if registryFlag(registry, "isBanned", from) {
		return vaultconst.RestrictionBanned
	}
	if registryFlag(registry, "isBanned", to) {
		return vaultconst.RestrictionBanned
	}
	if contract.Call(registry, "isStrict", contract.ReadOnly).(bool) {
		if !registryFlag(registry, "isKyc", from) {
			return vaultconst.RestrictionDisallowed
		}
		if !registryFlag(registry, "isKyc", to) {
			return vaultconst.RestrictionDisallowed
		}
	} else if registryFlag(registry, "isUSKyc", from) && !registryFlag(registry, "isKyc", to) {
		return vaultconst.RestrictionDisallowed
	}

	return vaultconst.RestrictionNone
}

func registryFlag(registry interop.Hash160, method string, addr interop.Hash160) bool {
	return contract.Call(registry, method, contract.ReadOnly, addr).(bool)
}

// requireParticipant checks the investor against the restriction policy in
// isolation: banned investors and investors lacking the KYC status required
// by the active mode can neither deposit nor redeem.
func requireParticipant(ctx storage.Context, investor interop.Hash160) {
	code := detectRestriction(ctx, investor, investor)
	if code != vaultconst.RestrictionNone {
		panic(MessageForTransferRestriction(code))
	}
}

// checkTransferAllowed gates every share movement through the restriction
// policy. Issuance and destruction (empty from/to) and escrow transfers
// into the vault itself are unrestricted by design.
func checkTransferAllowed(ctx storage.Context, from, to interop.Hash160) {
	if len(from) == 0 || len(to) == 0 {
		return
	}
	if common.BytesEqual(to, runtime.GetExecutingScriptHash()) {
		return
	}

	code := detectRestriction(ctx, from, to)
	if code != vaultconst.RestrictionNone {
		panic(MessageForTransferRestriction(code))
	}
}

func requireNotPaused(ctx storage.Context) {
	if storage.Get(ctx, pausedKey) != nil {
		panic(errPaused)
	}
}

func roleHeld(ctx storage.Context, role int) bool {
	it := storage.Find(ctx, rolePrefixOf(role), storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		member := iterator.Value(it).([]byte)
		if runtime.CheckWitness(member) {
			return true
		}
	}
	return false
}

func requireRole(ctx storage.Context, role int, msg string) {
	if !roleHeld(ctx, role) {
		panic(msg)
	}
}

// requireAdminOrOperator passes for members of either role: admin
// implicitly satisfies operator checks, never the other way around.
func requireAdminOrOperator(ctx storage.Context) {
	if !roleHeld(ctx, vaultconst.RoleAdmin) && !roleHeld(ctx, vaultconst.RoleOperator) {
		panic(errAdminOrOperator)
	}
}

func rolePrefixOf(role int) []byte {
	switch role {
	case vaultconst.RoleAdmin:
		return []byte("ra")
	case vaultconst.RoleOperator:
		return []byte("ro")
	default:
		panic("unknown role")
	}
}

func roleKey(role int, account interop.Hash160) []byte {
	return append(rolePrefixOf(role), account...)
}

// acquireGuard takes the non-reentrant lock held for the duration of every
// entrypoint calling out to an external asset contract. A malicious asset
// re-entering the vault mid-call trips the lock and faults the whole
// transaction.
func acquireGuard(ctx storage.Context) {
	if storage.Get(ctx, guardKey) != nil {
		panic(errReentrantCall)
	}
	storage.Put(ctx, guardKey, 1)
}

func releaseGuard(ctx storage.Context) {
	storage.Delete(ctx, guardKey)
}

func nextRequestID(ctx storage.Context) int {
	id := 1
	cnt := storage.Get(ctx, requestCounterKey)
	if cnt != nil {
		id = cnt.(int) + 1
	}
	storage.Put(ctx, requestCounterKey, id)
	return id
}

func requestKey(id int) []byte {
	var buf interface{} = id
	return append(requestPrefix, buf.([]byte)...)
}

func getRequest(ctx storage.Context, id int) Request {
	data := storage.Get(ctx, requestKey(id))
	if data == nil {
		panic("unknown redemption request")
	}
	return std.Deserialize(data.([]byte)).(Request)
}

func pow10(n int) int {
	r := 1
	for i := 0; i < n; i++ {
		r = r * 10
	}
	return r
}

// getSupply gets the token totalSupply value from VM storage.
func (t Token) getSupply(ctx storage.Context) int {
	supply := storage.Get(ctx, t.CirculationKey)
	if supply != nil {
		return supply.(int)
	}

	return 0
}

// balanceOf gets the share balance of a specific address.
func (t Token) balanceOf(ctx storage.Context, holder interop.Hash160) int {
	balance := storage.Get(ctx, accountKey(holder))
	if balance != nil {
		return balance.(int)
	}

	return 0
}

func (t Token) transfer(ctx storage.Context, from, to interop.Hash160, amount int, privileged bool, details []byte) bool {
	amountFrom, ok := t.canTransfer(ctx, from, to, amount, privileged)
	if !ok {
		return false
	}

	checkTransferAllowed(ctx, from, to)

	if len(from) == interop.Hash160Len {
		if amountFrom == amount {
			storage.Delete(ctx, accountKey(from))
		} else {
			storage.Put(ctx, accountKey(from), amountFrom-amount)
		}
	}

	if len(to) == interop.Hash160Len {
		amountTo := t.balanceOf(ctx, to)
		storage.Put(ctx, accountKey(to), amountTo+amount)
	}

	runtime.Notify("Transfer", from, to, amount)
	runtime.Notify("TransferX", from, to, amount, details)

	return true
}

// canTransfer returns the sender's balance if the transfer can proceed.
func (t Token) canTransfer(ctx storage.Context, from, to interop.Hash160, amount int, privileged bool) (int, bool) {
	if amount < 0 {
		panic("negative amount")
	}

	if !privileged {
		if len(to) != interop.Hash160Len || !isUsableAddress(from) {
			runtime.Log("bad script hashes")
			return 0, false
		}
	} else if len(from) == 0 {
		return 0, true
	}

	amountFrom := t.balanceOf(ctx, from)
	if amountFrom < amount {
		runtime.Log("not enough shares")
		return 0, false
	}

	return amountFrom, true
}

// isUsableAddress checks if the sender is either the correct NEO address or SC address.
func isUsableAddress(addr interop.Hash160) bool {
	if len(addr) == interop.Hash160Len {
		if runtime.CheckWitness(addr) {
			return true
		}

		// Check if a smart contract is calling script hash
		callingScriptHash := runtime.GetCallingScriptHash()
		if common.BytesEqual(callingScriptHash, addr) {
			return true
		}
	}

	return false
}

func accountKey(holder interop.Hash160) []byte {
	return append(accountPrefix, holder...)
}
