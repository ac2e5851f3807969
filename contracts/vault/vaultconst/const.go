// Package vaultconst contains constants of the Vault contract shared with
// other packages: restriction codes returned by detectTransferRestriction,
// role identifiers and fixed-point scales of the conversion arithmetic.
package vaultconst

const (
	// RestrictionNone is returned by detectTransferRestriction when a
	// transfer between the two parties is allowed.
	RestrictionNone = 0
	// RestrictionBanned is returned when either transfer party is banned.
	RestrictionBanned = 1
	// RestrictionDisallowed is returned when a transfer party lacks the
	// KYC status required by the active policy mode.
	RestrictionDisallowed = 2

	// RoleAdmin identifies the administrator role. Admins manage the
	// custodian and KYC registry addresses, role membership and contract
	// updates. Admin membership also satisfies operator checks.
	RoleAdmin = 1
	// RoleOperator identifies the day-to-day operator role: NAV updates,
	// pause switch, redemption processing, custodian sweeps, mint/burn.
	RoleOperator = 2

	// Decimals is the precision of vault shares.
	Decimals = 6
	// AmountScale normalizes deposit amounts to share precision.
	AmountScale = 1_000_000
	// PriceScale is the fixed-point scale of the published value-per-share.
	PriceScale = 100_000_000

	// StatusRequested marks a redemption request awaiting settlement.
	StatusRequested = 1
	// StatusSettled marks a redemption request already paid out.
	StatusSettled = 2
)
