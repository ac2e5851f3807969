// Package deploy provides deployment procedure of the fund smart contracts.
package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the fund contracts' deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose, send and track
	// transactions on the blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by
	// its address. GetContractStateByHash returns error with 'Unknown
	// contract' substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// KycRegistryPrm groups deployment parameters of the KYC Registry contract.
type KycRegistryPrm struct {
	Common CommonDeployPrm

	// Account managing the registry records.
	Authority util.Uint160

	// Initial strict mode setting.
	Strict bool
}

// VaultPrm groups deployment parameters of the Fund Vault contract.
type VaultPrm struct {
	Common CommonDeployPrm

	// Contract administrator.
	Admin util.Uint160

	// Account running the day-to-day fund operations.
	Operator util.Uint160

	// Receiver of custodian sweeps. May be zero, then the custodian must be
	// set later via the corresponding contract method.
	Custodian util.Uint160
}

// Prm groups all parameters of the fund contracts' deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance hosting the contracts.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	KycRegistry KycRegistryPrm
	Vault       VaultPrm
}

// Addresses groups on-chain addresses of the deployed fund contracts.
type Addresses struct {
	KycRegistry util.Uint160
	Vault       util.Uint160
}

// Deploy sets up the fund contracts on the Neo network represented by given
// Prm.Blockchain. The KYC Registry contract is deployed first, then the Fund
// Vault contract referencing it. Contracts already present on the chain are
// left untouched. Deployment progress is logged in detail.
//
// The returned addresses are valid even when the contracts were deployed
// earlier by the same account.
func Deploy(ctx context.Context, prm Prm) (Addresses, error) {
	var res Addresses

	if prm.LocalAccount == nil {
		return res, errors.New("local account is not provided")
	}

	localActor, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return res, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	prm.Logger.Info("synchronizing KYC Registry contract with the chain...")

	res.KycRegistry, err = syncContract(ctx, syncContractPrm{
		logger:        prm.Logger,
		blockchain:    prm.Blockchain,
		actor:         localActor,
		localNEF:      prm.KycRegistry.Common.NEF,
		localManifest: prm.KycRegistry.Common.Manifest,
		deployArgs: []any{
			prm.KycRegistry.Authority,
			prm.KycRegistry.Strict,
		},
	})
	if err != nil {
		return res, fmt.Errorf("sync KYC Registry contract with the chain: %w", err)
	}

	prm.Logger.Info("KYC Registry contract successfully synchronized", zap.Stringer("address", res.KycRegistry))

	var custodianArg any
	if !prm.Vault.Custodian.Equals(util.Uint160{}) {
		custodianArg = prm.Vault.Custodian
	}

	prm.Logger.Info("synchronizing Fund Vault contract with the chain...")

	res.Vault, err = syncContract(ctx, syncContractPrm{
		logger:        prm.Logger,
		blockchain:    prm.Blockchain,
		actor:         localActor,
		localNEF:      prm.Vault.Common.NEF,
		localManifest: prm.Vault.Common.Manifest,
		deployArgs: []any{
			prm.Vault.Admin,
			prm.Vault.Operator,
			custodianArg,
			res.KycRegistry,
		},
	})
	if err != nil {
		return res, fmt.Errorf("sync Fund Vault contract with the chain: %w", err)
	}

	prm.Logger.Info("Fund Vault contract successfully synchronized", zap.Stringer("address", res.Vault))

	return res, nil
}

type syncContractPrm struct {
	logger *zap.Logger

	blockchain Blockchain

	actor *actor.Actor

	localNEF      nef.File
	localManifest manifest.Manifest

	deployArgs []any
}

// syncContract deploys the contract unless it is already present on the
// chain. The address is a function of the deploying account, so repeated runs
// resolve to the same contract.
func syncContract(ctx context.Context, prm syncContractPrm) (util.Uint160, error) {
	addr := state.CreateContractHash(prm.actor.Sender(), prm.localNEF.Checksum, prm.localManifest.Name)

	onChainState, err := prm.blockchain.GetContractStateByHash(addr)
	if err != nil && !isErrContractNotFound(err) {
		return addr, fmt.Errorf("read on-chain state of the contract by address: %w", err)
	}

	if onChainState != nil {
		prm.logger.Info("contract is already on the chain, deployment skipped",
			zap.String("name", prm.localManifest.Name), zap.Stringer("address", addr))
		return addr, nil
	}

	if ctx.Err() != nil {
		return addr, ctx.Err()
	}

	prm.logger.Info("contract is missing on the chain, deploying...",
		zap.String("name", prm.localManifest.Name), zap.Stringer("address", addr))

	nefBytes, err := prm.localNEF.Bytes()
	if err != nil {
		return addr, fmt.Errorf("encode the contract NEF into binary: %w", err)
	}

	manifestJSON, err := json.Marshal(prm.localManifest)
	if err != nil {
		return addr, fmt.Errorf("encode the contract manifest into JSON: %w", err)
	}

	// the modifier pins nonce/VUB, so concurrent deployers of the same
	// contract send byte-identical transactions
	txID, vub, err := prm.actor.SendTunedCall(management.Hash, "deploy", nil,
		fundRuntimeTransactionModifier(func() uint32 {
			height, err := prm.blockchain.GetBlockCount()
			if err != nil {
				prm.logger.Warn("failed to read current blockchain height", zap.Error(err))
				return 0
			}
			return height
		}),
		nefBytes, manifestJSON, prm.deployArgs)
	if err != nil {
		return addr, fmt.Errorf("send transaction deploying the contract: %w", err)
	}

	prm.logger.Info("transaction deploying the contract has been successfully sent, waiting...",
		zap.Stringer("tx", txID), zap.Uint32("vub", vub))

	_, err = prm.actor.Wait(txID, vub, nil)
	if err != nil {
		return addr, fmt.Errorf("wait for deploy transaction persistence: %w", err)
	}

	return addr, nil
}

// isErrContractNotFound checks if the error returned by the RPC server means
// that the requested contract is missing.
func isErrContractNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Unknown contract")
}

// returns actor.TransactionCheckerModifier which checks that invocation
// finished with 'HALT' state and, if so, sets transaction's nonce and
// ValidUntilBlock to 100*N and 100*(N+1) correspondingly, where
// 100*N <= current height < 100*(N+1).
//
// Deployment transactions constructed this way are reproducible, so several
// instances running the procedure concurrently send byte-identical
// transactions and do not deploy duplicates.
func fundRuntimeTransactionModifier(getBlockchainHeight func() uint32) actor.TransactionCheckerModifier {
	return func(r *result.Invoke, tx *transaction.Transaction) error {
		err := actor.DefaultCheckerModifier(r, tx)
		if err != nil {
			return err
		}

		curHeight := getBlockchainHeight()
		const span = 100
		n := curHeight / span

		tx.Nonce = n * span

		if math.MaxUint32-span > tx.Nonce {
			tx.ValidUntilBlock = tx.Nonce + span
		} else {
			tx.ValidUntilBlock = math.MaxUint32
		}

		return nil
	}
}
