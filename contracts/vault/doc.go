/*
Package vault implements the Fund Vault contract.

Vault contract is the entrypoint of the tokenized fund: investors deposit a
stablecoin-like NEP-17 asset and receive fund shares priced against the net
asset value published by the fund operator. The share itself is a NEP-17
compatible token with fixed 6-decimal precision, so it can be tracked and
controlled by N3 compatible network monitors and wallet software.

Every share movement is filtered through the restriction policy served by
the KYC registry contract: banned parties can never move shares, and
depending on the global strict switch one or both counterparties must hold
KYC approval. Share issuance, destruction and escrow transfers into the
vault itself are unrestricted, they represent fund operations rather than a
transfer between two external parties.

Redemptions are two-phased. Redeem escrows the investor's shares inside the
vault and records a redemption request; the underlying position is realized
by the off-chain custodian, after which an operator settles the request with
ProcessRedemption, burning the escrowed shares and paying out the asset.
Vault-held assets are swept to the custodian address with
TransferToCustodian/TransferAllToCustodian.

Privileged operations are gated by two roles stored in the contract: admins
manage the custodian and registry addresses, role membership and contract
updates; operators run the day-to-day flow (NAV updates, pause switch,
redemption processing, sweeps, mint/burn). Admin membership satisfies
operator checks, not the other way around.

# Contract notifications

Transfer notification. This is a NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

TransferX notification. This is an enhanced transfer notification with details.

	TransferX:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: details
	    type: ByteArray

Deposit notification. Produced when an investor deposits the underlying
asset and receives freshly minted shares.

	Deposit:
	  - name: investor
	    type: Hash160
	  - name: asset
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: shares
	    type: Integer

RedemptionRequested notification. Produced when an investor's shares are
escrowed pending off-chain settlement.

	RedemptionRequested:
	  - name: id
	    type: Integer
	  - name: investor
	    type: Hash160
	  - name: shares
	    type: Integer
	  - name: asset
	    type: Hash160

RedemptionProcessed notification. Produced when an operator settles a
recorded redemption request.

	RedemptionProcessed:
	  - name: id
	    type: Integer
	  - name: investor
	    type: Hash160
	  - name: asset
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: shares
	    type: Integer

NavUpdated notification. Produced on every published valuation.

	NavUpdated:
	  - name: nav
	    type: Integer
	  - name: timestamp
	    type: Integer

SweepToCustodian notification.

	SweepToCustodian:
	  - name: asset
	    type: Hash160
	  - name: custodian
	    type: Hash160
	  - name: amount
	    type: Integer

Mint and Burn notifications accompany privileged share issuance and
destruction.

	Mint:
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

	Burn:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer

CustodianChanged, KycRegistryChanged, RoleGranted, RoleRevoked, Paused and
Unpaused notifications mirror the corresponding administrative calls.
*/
package vault

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'nav' -> int
   value per share at 1e8 scale
 - 'navUpdated' -> int
   timestamp of the latest NAV publication in milliseconds
 - 'custodian' -> interop.Hash160
   address receiving custodian sweeps, absent until set
 - 'kycRegistry' -> interop.Hash160
   address of the restriction policy registry
 - 'paused' -> int
   presence of the key blocks deposit/redeem entrypoints
 - 'TotalShares' -> int
   total amount of shares in circulation
 - 'reqCnt' -> int
   identifier of the latest redemption request
 - 'guard' -> int
   non-reentrant lock, present only within an entrypoint execution
 - a<interop.Hash160> -> int
   share balance sheet of all fund investors
 - ra<interop.Hash160>, ro<interop.Hash160> -> int
   admin and operator role membership
 - q<id> -> std.Serialize(Request)
   redemption requests (here Request is a structure defined in current package)

New versions of the contract must only append to this layout, existing keys
are never reinterpreted.

# Accounting
Contract stores the full share balance sheet of the fund and the escrowed
redemption pipeline.
*/
