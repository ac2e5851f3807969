package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fundchain/fund-contract/tests/dump"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	chainLabel := flag.String("label", "", "Label of the blockchain environment (e.g. 'testnet')")
	vaultAddress := flag.String("vault", "", "Address of the Fund Vault contract (LE hex or Neo address)")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *chainLabel == "":
		log.Fatal("missing blockchain label")
	case *vaultAddress == "":
		log.Fatal("missing Fund Vault contract address")
	}

	vaultHash, err := parseContractAddress(*vaultAddress)
	if err != nil {
		log.Fatal(fmt.Errorf("parse Fund Vault contract address: %w", err))
	}

	const rootDir = "testdata"

	err = os.MkdirAll(rootDir, 0700)
	if err != nil {
		log.Fatal(fmt.Errorf("create root dir: %w", err))
	}

	err = _dump(*neoRPCEndpoint, rootDir, *chainLabel, vaultHash)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("fund contracts are successfully dumped to '%s/'\n", rootDir)
}

func _dump(neoBlockchainRPCEndpoint, rootDir, label string, vaultHash util.Uint160) error {
	b, err := newRemoteBlockChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	d, err := dump.NewCreator(rootDir, dump.ID{
		Label: label,
		Block: b.currentBlock,
	})
	if err != nil {
		return fmt.Errorf("init local dumper: %w", err)
	}

	defer d.Close()

	err = overtakeContracts(b, d, vaultHash)
	if err != nil {
		return err
	}

	err = d.Flush()
	if err != nil {
		return fmt.Errorf("flush dump: %w", err)
	}

	return nil
}

// overtakeContracts collects states and storages of the vault and the KYC
// registry it references. The registry address is read from the vault itself
// rather than passed by the caller, so the dump is always consistent.
func overtakeContracts(from *remoteBlockchain, to *dump.Creator, vaultHash util.Uint160) error {
	registryHash, err := from.getVaultKycRegistry(vaultHash)
	if err != nil {
		return fmt.Errorf("read KYC registry address from the vault: %w", err)
	}

	for _, c := range []struct {
		name string
		hash util.Uint160
	}{
		{name: "vault", hash: vaultHash},
		{name: "kycregistry", hash: registryHash},
	} {
		log.Printf("Processing contract '%s'...\n", c.name)

		ctr, err := from.rpc.GetContractStateByHash(c.hash)
		if err != nil {
			return fmt.Errorf("get '%s' contract state by hash '%s': %w", c.name, c.hash.StringLE(), err)
		}

		s := to.AddContract(c.name, *ctr)

		err = from.iterateContractStorage(c.hash, s.Write)
		if err != nil {
			return fmt.Errorf("iterate '%s' contract storage: %w", c.name, err)
		}
	}

	return nil
}

func parseContractAddress(s string) (util.Uint160, error) {
	h, err := util.Uint160DecodeStringLE(s)
	if err == nil {
		return h, nil
	}

	return address.StringToUint160(s)
}
