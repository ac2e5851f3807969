/*
Package contracts compiles the fund contracts from source and provides
access to their executables.

Contract executables are not committed to the repository, they are built
from the Go source of each contract by the neo-go compiler on demand. The
manifest of each contract comes from the config.yml file next to its
source.
*/
package contracts

import (
	"fmt"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/cli/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/compiler"
	"github.com/nspcc-dev/neo-go/pkg/config"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

const (
	kycRegistryDir = "kycregistry"
	vaultDir       = "vault"

	configName = "config.yml"
)

// Contract groups information about a compiled fund contract.
type Contract struct {
	Name     string
	NEF      nef.File
	Manifest manifest.Manifest
}

// deployment order: the vault takes the registry address at init.
var contractDirs = []string{
	kycRegistryDir,
	vaultDir,
}

// CompileAll builds the whole contract set from source located under dir
// (the contracts directory of the repository). Contracts are returned in
// the order they are supposed to be deployed starting from the KYC
// registry.
func CompileAll(dir string) ([]Contract, error) {
	res := make([]Contract, 0, len(contractDirs))

	for _, sub := range contractDirs {
		c, err := compileFromDir(filepath.Join(dir, sub))
		if err != nil {
			return nil, fmt.Errorf("compile contract %s: %w", sub, err)
		}

		res = append(res, c)
	}

	return res, nil
}

// compileFromDir builds a single contract from its source directory and
// the config.yml manifest description next to it.
func compileFromDir(dir string) (Contract, error) {
	var c Contract

	// nef.NewFile() cares about version a lot.
	if config.Version == "" {
		config.Version = "0.0.0-build"
	}

	ne, di, err := compiler.CompileWithOptions(dir, nil, nil)
	if err != nil {
		return c, fmt.Errorf("compile source: %w", err)
	}

	conf, err := smartcontract.ParseContractConfig(filepath.Join(dir, configName))
	if err != nil {
		return c, fmt.Errorf("parse config: %w", err)
	}

	o := &compiler.Options{}
	o.Name = conf.Name
	o.ContractEvents = conf.Events
	o.ContractSupportedStandards = conf.SupportedStandards
	o.Permissions = make([]manifest.Permission, len(conf.Permissions))
	for i := range conf.Permissions {
		o.Permissions[i] = manifest.Permission(conf.Permissions[i])
	}
	o.SafeMethods = conf.SafeMethods

	m, err := compiler.CreateManifest(di, o)
	if err != nil {
		return c, fmt.Errorf("create manifest: %w", err)
	}

	c.Name = conf.Name
	c.NEF = *ne
	c.Manifest = *m

	return c, nil
}
