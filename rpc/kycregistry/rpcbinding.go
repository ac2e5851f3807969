// Package kycregistry contains RPC wrappers for KYC Registry contract.
package kycregistry

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// KycStatusUpdatedEvent represents "KycStatusUpdated" event emitted by the contract.
type KycStatusUpdatedEvent struct {
	Addr util.Uint160
	Kyc bool
	Us bool
}

// BannedEvent represents "Banned" event emitted by the contract.
type BannedEvent struct {
	Addr util.Uint160
}

// UnbannedEvent represents "Unbanned" event emitted by the contract.
type UnbannedEvent struct {
	Addr util.Uint160
}

// StrictModeSetEvent represents "StrictModeSet" event emitted by the contract.
type StrictModeSetEvent struct {
	On bool
}

// AuthorityChangedEvent represents "AuthorityChanged" event emitted by the contract.
type AuthorityChangedEvent struct {
	Authority util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Authority invokes `authority` method of contract.
func (c *ContractReader) Authority() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "authority"))
}

// IsBanned invokes `isBanned` method of contract.
func (c *ContractReader) IsBanned(addr util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isBanned", addr))
}

// IsKyc invokes `isKyc` method of contract.
func (c *ContractReader) IsKyc(addr util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isKyc", addr))
}

// IsStrict invokes `isStrict` method of contract.
func (c *ContractReader) IsStrict() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isStrict"))
}

// IsUSKyc invokes `isUSKyc` method of contract.
func (c *ContractReader) IsUSKyc(addr util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isUSKyc", addr))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Ban creates a transaction invoking `ban` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Ban(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "ban", addr)
}

// BanTransaction creates a transaction invoking `ban` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) BanTransaction(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "ban", addr)
}

// BanUnsigned creates a transaction invoking `ban` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) BanUnsigned(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "ban", nil, addr)
}

// SetAuthority creates a transaction invoking `setAuthority` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetAuthority(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setAuthority", addr)
}

// SetAuthorityTransaction creates a transaction invoking `setAuthority` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetAuthorityTransaction(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setAuthority", addr)
}

// SetAuthorityUnsigned creates a transaction invoking `setAuthority` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetAuthorityUnsigned(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setAuthority", nil, addr)
}

// SetKycStatus creates a transaction invoking `setKycStatus` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetKycStatus(addr util.Uint160, kyc bool, us bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setKycStatus", addr, kyc, us)
}

// SetKycStatusTransaction creates a transaction invoking `setKycStatus` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetKycStatusTransaction(addr util.Uint160, kyc bool, us bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setKycStatus", addr, kyc, us)
}

// SetKycStatusUnsigned creates a transaction invoking `setKycStatus` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetKycStatusUnsigned(addr util.Uint160, kyc bool, us bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setKycStatus", nil, addr, kyc, us)
}

// SetStrict creates a transaction invoking `setStrict` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetStrict(on bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setStrict", on)
}

// SetStrictTransaction creates a transaction invoking `setStrict` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetStrictTransaction(on bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setStrict", on)
}

// SetStrictUnsigned creates a transaction invoking `setStrict` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetStrictUnsigned(on bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setStrict", nil, on)
}

// Unban creates a transaction invoking `unban` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Unban(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unban", addr)
}

// UnbanTransaction creates a transaction invoking `unban` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UnbanTransaction(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "unban", addr)
}

// UnbanUnsigned creates a transaction invoking `unban` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UnbanUnsigned(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "unban", nil, addr)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// KycStatusUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "KycStatusUpdated" name from the provided [result.ApplicationLog].
func KycStatusUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*KycStatusUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*KycStatusUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "KycStatusUpdated" {
				continue
			}
			event := new(KycStatusUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize KycStatusUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to KycStatusUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *KycStatusUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Addr, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Addr: %w", err)
	}

	index++
	e.Kyc, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Kyc: %w", err)
	}

	index++
	e.Us, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Us: %w", err)
	}

	return nil
}

// BannedEventsFromApplicationLog retrieves a set of all emitted events
// with "Banned" name from the provided [result.ApplicationLog].
func BannedEventsFromApplicationLog(log *result.ApplicationLog) ([]*BannedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*BannedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Banned" {
				continue
			}
			event := new(BannedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize BannedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to BannedEvent or
// returns an error if it's not possible to do to so.
func (e *BannedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Addr, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Addr: %w", err)
	}

	return nil
}

// UnbannedEventsFromApplicationLog retrieves a set of all emitted events
// with "Unbanned" name from the provided [result.ApplicationLog].
func UnbannedEventsFromApplicationLog(log *result.ApplicationLog) ([]*UnbannedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*UnbannedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Unbanned" {
				continue
			}
			event := new(UnbannedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize UnbannedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to UnbannedEvent or
// returns an error if it's not possible to do to so.
func (e *UnbannedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Addr, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Addr: %w", err)
	}

	return nil
}

// StrictModeSetEventsFromApplicationLog retrieves a set of all emitted events
// with "StrictModeSet" name from the provided [result.ApplicationLog].
func StrictModeSetEventsFromApplicationLog(log *result.ApplicationLog) ([]*StrictModeSetEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*StrictModeSetEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "StrictModeSet" {
				continue
			}
			event := new(StrictModeSetEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize StrictModeSetEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to StrictModeSetEvent or
// returns an error if it's not possible to do to so.
func (e *StrictModeSetEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.On, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field On: %w", err)
	}

	return nil
}

// AuthorityChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "AuthorityChanged" name from the provided [result.ApplicationLog].
func AuthorityChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AuthorityChangedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AuthorityChangedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AuthorityChanged" {
				continue
			}
			event := new(AuthorityChangedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AuthorityChangedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AuthorityChangedEvent or
// returns an error if it's not possible to do to so.
func (e *AuthorityChangedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Authority, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Authority: %w", err)
	}

	return nil
}
