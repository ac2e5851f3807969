package tests

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/stretchr/testify/require"
)

func randomBytes(n int) []byte {
	a := make([]byte, n)
	rand.Read(a) //nolint:staticcheck // SA1019: rand.Read has been deprecated since Go 1.20
	return a
}

// settlementRef builds an off-chain settlement reference the way the fund
// back office does: wallet-form investor address followed by an operation
// UUID. The vault carries it opaquely in transfer details.
func settlementRef(t testing.TB, investor neotest.Signer) []byte {
	wallet, err := base58.Decode(address.Uint160ToString(investor.ScriptHash()))
	require.NoError(t, err)

	op := uuid.New()
	return append(wallet, op[:]...)
}
