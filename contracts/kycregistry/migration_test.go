package kycregistry_test

import (
	"testing"

	"github.com/fundchain/fund-contract/tests/dump"
	"github.com/fundchain/fund-contract/tests/migration"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

const name = "kycregistry"

func TestMigration(t *testing.T) {
	err := dump.IterateDumps("../../testdata", func(id dump.ID, r *dump.Reader) {
		t.Run(id.String()+"/"+name, func(t *testing.T) {
			testMigrationFromDump(t, r)
		})
	})
	require.NoError(t, err)
}

func testMigrationFromDump(t *testing.T, d *dump.Reader) {
	// init test contract shell
	c := migration.NewContract(t, d, name, migration.ContractOptions{})

	readBool := func(method string, args ...interface{}) bool {
		v, err := c.Call(t, method, args...).TryBool()
		require.NoError(t, err)
		return v
	}

	// read previous values using contract API
	prevAuthority := c.GetStorageItem([]byte("authority"))
	prevStrict := readBool("isStrict")

	var accounts []util.Uint160

	c.SeekStorage([]byte("f"), func(k, v []byte) bool {
		if len(k) == util.Uint160Size+1 {
			a, err := util.Uint160DecodeBytesBE(k[1:])
			require.NoError(t, err)
			accounts = append(accounts, a)
		}
		return true
	})

	type flags struct {
		banned, kyc, us bool
	}
	prevFlags := make([]flags, 0, len(accounts))
	for i := range accounts {
		prevFlags = append(prevFlags, flags{
			banned: readBool("isBanned", accounts[i]),
			kyc:    readBool("isKyc", accounts[i]),
			us:     readBool("isUSKyc", accounts[i]),
		})
	}

	c.CheckUpdateSuccess(t)

	// check that contract was updated as expected
	require.Equal(t, prevAuthority, c.GetStorageItem([]byte("authority")))
	require.Equal(t, prevStrict, readBool("isStrict"))

	for i := range accounts {
		require.Equal(t, prevFlags[i], flags{
			banned: readBool("isBanned", accounts[i]),
			kyc:    readBool("isKyc", accounts[i]),
			us:     readBool("isUSKyc", accounts[i]),
		})
	}
}
