package common

var (
	depositPrefix    = []byte{0x01}
	redemptionPrefix = []byte{0x02}
	settlementPrefix = []byte{0x03}
	sweepPrefix      = []byte{0x04}
	mintPrefix       = []byte{0x05}
	burnPrefix       = []byte{0x06}
)

// DepositTransferDetails prepends deposit marker to the client-supplied
// reference bytes. The result is carried as the data argument of the
// asset transfer pulling a deposit into the vault.
func DepositTransferDetails(ref []byte) []byte {
	return append(depositPrefix, ref...)
}

// RedemptionTransferDetails marks the share escrow transfer of a
// redemption request.
func RedemptionTransferDetails(ref []byte) []byte {
	return append(redemptionPrefix, ref...)
}

// SettlementTransferDetails marks the asset payout of a processed
// redemption request.
func SettlementTransferDetails(id int) []byte {
	var buf interface{} = id
	return append(settlementPrefix, buf.([]byte)...)
}

// SweepTransferDetails marks an asset transfer to the custodian.
func SweepTransferDetails() []byte {
	return sweepPrefix
}

// MintTransferDetails marks a privileged share issuance.
func MintTransferDetails(ref []byte) []byte {
	return append(mintPrefix, ref...)
}

// BurnTransferDetails marks a privileged share destruction.
func BurnTransferDetails(ref []byte) []byte {
	return append(burnPrefix, ref...)
}
