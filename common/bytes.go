package common

import "github.com/nspcc-dev/neo-go/pkg/interop/util"

// BytesEqual compares two slices of bytes by wrapped VM `equals` instruction.
func BytesEqual(a []byte, b []byte) bool {
	return util.Equals(string(a), string(b))
}
