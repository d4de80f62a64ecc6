// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package multisig implements a wallet whose transactions execute once the
// confirming owners hold enough voting power.
package multisig

import (
	"math/big"

	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/builtin/solidity"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/umb"
)

var (
	ErrOnlyWallet         = reverts.New(reverts.Unauthorized, "only MultiSigMinter can execute this")
	ErrOwnerExists        = reverts.New(reverts.InvalidArgument, "owner already exists")
	ErrOwnerNotExists     = reverts.New(reverts.Unauthorized, "owner do NOT exists")
	ErrEmptyAddress       = reverts.New(reverts.InvalidArgument, "address is empty")
	ErrEmptyPower         = reverts.New(reverts.InvalidArgument, "_power is empty")
	ErrPowersCount        = reverts.New(reverts.InvalidArgument, "_owners count must match _powers count")
	ErrZeroRequirement    = reverts.New(reverts.InvalidArgument, "_requiredPower is zero")
	ErrNotEnoughPower     = reverts.New(reverts.InvalidState, "owners do NOT have enough power")
	ErrTooManyOwners      = reverts.New(reverts.InvalidState, "too many owners")
	ErrRemoveNotEnough    = reverts.New(reverts.InvalidState, "can't remove owner, because there will be not enough power left")
	ErrTxNotExists        = reverts.New(reverts.InvalidArgument, "transaction does not exists")
	ErrTxAlreadyConfirmed = reverts.New(reverts.InvalidState, "transaction already confirmed by owner")
	ErrTxNotConfirmed     = reverts.New(reverts.InvalidState, "transaction NOT confirmed by owner")
	ErrTxAlreadyExecuted  = reverts.New(reverts.InvalidState, "transaction already executed")
	errPowerOverflow      = reverts.New(reverts.InvalidArgument, "power overflow")
)

// Transaction is an entry of the wallet's append-only transaction log.
type Transaction struct {
	Destination umb.Address
	Value       *big.Int
	Data        []byte
	Executed    bool
}

// MultiSig is the wallet contract.
type MultiSig struct {
	addr              umb.Address
	owners            *solidity.Array[umb.Address]
	ownersPowers      *solidity.Mapping[umb.Address, uint64]
	requiredPower     *solidity.Uint64
	totalCurrentPower *solidity.Uint64
	maxOwners         *solidity.Uint64
	transactionCount  *solidity.Uint64
	transactions      *solidity.Mapping[solidity.Uint64Key, *Transaction]
	confirmations     *solidity.Mapping[solidity.IDAddressKey, bool]
}

func New(addr umb.Address, state *state.State) *MultiSig {
	ctx := solidity.NewContext(addr, state)
	return &MultiSig{
		addr:              addr,
		owners:            solidity.NewArray[umb.Address](ctx, solidity.Slot("multisig.owners")),
		ownersPowers:      solidity.NewMapping[umb.Address, uint64](ctx, solidity.Slot("multisig.ownersPowers")),
		requiredPower:     solidity.NewUint64(ctx, solidity.Slot("multisig.requiredPower")),
		totalCurrentPower: solidity.NewUint64(ctx, solidity.Slot("multisig.totalCurrentPower")),
		maxOwners:         solidity.NewUint64(ctx, solidity.Slot("multisig.maxOwners")),
		transactionCount:  solidity.NewUint64(ctx, solidity.Slot("multisig.transactionCount")),
		transactions:      solidity.NewMapping[solidity.Uint64Key, *Transaction](ctx, solidity.Slot("multisig.transactions")),
		confirmations:     solidity.NewMapping[solidity.IDAddressKey, bool](ctx, solidity.Slot("multisig.confirmations")),
	}
}

func (m *MultiSig) Address() umb.Address { return m.addr }

// Initialize registers the initial owners. A zero maxOwners means umb.DefaultMaxOwners.
func (m *MultiSig) Initialize(owners []umb.Address, powers []uint64, requiredPower, maxOwners uint64) error {
	if len(owners) != len(powers) {
		return ErrPowersCount
	}
	if maxOwners == 0 {
		maxOwners = umb.DefaultMaxOwners
	}
	m.maxOwners.Set(maxOwners)

	var total uint64
	for i, owner := range owners {
		if owner.IsZero() {
			return ErrEmptyAddress
		}
		if powers[i] == 0 {
			return ErrEmptyPower
		}
		exists, err := m.IsOwner(owner)
		if err != nil {
			return err
		}
		if exists {
			return ErrOwnerExists
		}
		if total+powers[i] < total {
			return errPowerOverflow
		}
		total += powers[i]
		if err := m.ownersPowers.Set(owner, powers[i]); err != nil {
			return err
		}
		if _, err := m.owners.Push(owner); err != nil {
			return err
		}
	}
	if err := m.validRequirement(uint64(len(owners)), total, requiredPower); err != nil {
		return err
	}
	m.totalCurrentPower.Set(total)
	m.requiredPower.Set(requiredPower)
	return nil
}

func (m *MultiSig) validRequirement(ownersCount, totalPower, requiredPower uint64) error {
	if requiredPower == 0 {
		return ErrZeroRequirement
	}
	if totalPower < requiredPower {
		return ErrNotEnoughPower
	}
	maxOwners, err := m.maxOwners.Get()
	if err != nil {
		return err
	}
	if ownersCount > maxOwners {
		return ErrTooManyOwners
	}
	return nil
}

func (m *MultiSig) onlyWallet(caller umb.Address) error {
	if caller != m.addr {
		return ErrOnlyWallet
	}
	return nil
}

func (m *MultiSig) whenOwnerExists(owner umb.Address) error {
	exists, err := m.IsOwner(owner)
	if err != nil {
		return err
	}
	if !exists {
		return ErrOwnerNotExists
	}
	return nil
}

func (m *MultiSig) whenOwnerDoesNotExist(owner umb.Address) error {
	exists, err := m.IsOwner(owner)
	if err != nil {
		return err
	}
	if exists {
		return ErrOwnerExists
	}
	return nil
}

// AddOwner adds owner with power. Only the wallet itself may call it.
func (m *MultiSig) AddOwner(caller, owner umb.Address, power uint64) error {
	if err := m.onlyWallet(caller); err != nil {
		return err
	}
	if err := m.whenOwnerDoesNotExist(owner); err != nil {
		return err
	}
	if owner.IsZero() {
		return ErrEmptyAddress
	}
	if power == 0 {
		return ErrEmptyPower
	}
	count, err := m.owners.Len()
	if err != nil {
		return err
	}
	total, err := m.totalCurrentPower.Get()
	if err != nil {
		return err
	}
	required, err := m.requiredPower.Get()
	if err != nil {
		return err
	}
	if total+power < total {
		return errPowerOverflow
	}
	if err := m.validRequirement(count+1, total+power, required); err != nil {
		return err
	}
	if err := m.ownersPowers.Set(owner, power); err != nil {
		return err
	}
	if _, err := m.owners.Push(owner); err != nil {
		return err
	}
	m.totalCurrentPower.Set(total + power)
	return nil
}

// RemoveOwner removes owner; the last owner takes its slot in the owners list.
func (m *MultiSig) RemoveOwner(caller, owner umb.Address) error {
	if err := m.onlyWallet(caller); err != nil {
		return err
	}
	if err := m.whenOwnerExists(owner); err != nil {
		return err
	}
	power, err := m.ownersPowers.Get(owner)
	if err != nil {
		return err
	}
	total, err := m.totalCurrentPower.Get()
	if err != nil {
		return err
	}
	required, err := m.requiredPower.Get()
	if err != nil {
		return err
	}
	if total-power < required {
		return ErrRemoveNotEnough
	}

	owners, err := m.owners.All()
	if err != nil {
		return err
	}
	last := uint64(len(owners) - 1)
	for i, o := range owners {
		if o == owner {
			if err := m.owners.Set(uint64(i), owners[last]); err != nil {
				return err
			}
			break
		}
	}
	if err := m.owners.Pop(); err != nil {
		return err
	}
	m.ownersPowers.Delete(owner)
	m.totalCurrentPower.Set(total - power)
	return nil
}

// ReplaceOwner hands owner's slot and power over to newOwner.
func (m *MultiSig) ReplaceOwner(caller, owner, newOwner umb.Address) error {
	if err := m.onlyWallet(caller); err != nil {
		return err
	}
	if err := m.whenOwnerExists(owner); err != nil {
		return err
	}
	if err := m.whenOwnerDoesNotExist(newOwner); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return ErrEmptyAddress
	}
	power, err := m.ownersPowers.Get(owner)
	if err != nil {
		return err
	}
	owners, err := m.owners.All()
	if err != nil {
		return err
	}
	for i, o := range owners {
		if o == owner {
			if err := m.owners.Set(uint64(i), newOwner); err != nil {
				return err
			}
			break
		}
	}
	m.ownersPowers.Delete(owner)
	return m.ownersPowers.Set(newOwner, power)
}

// ChangeRequiredPower sets the power needed to execute a transaction.
func (m *MultiSig) ChangeRequiredPower(caller umb.Address, requiredPower uint64) error {
	if err := m.onlyWallet(caller); err != nil {
		return err
	}
	count, err := m.owners.Len()
	if err != nil {
		return err
	}
	total, err := m.totalCurrentPower.Get()
	if err != nil {
		return err
	}
	if err := m.validRequirement(count, total, requiredPower); err != nil {
		return err
	}
	m.requiredPower.Set(requiredPower)
	return nil
}

// Submit appends a transaction and confirms it on behalf of caller. It returns the transaction id.
func (m *MultiSig) Submit(caller, destination umb.Address, value *big.Int, data []byte) (uint64, error) {
	if destination.IsZero() {
		return 0, ErrEmptyAddress
	}
	if err := m.whenOwnerExists(caller); err != nil {
		return 0, err
	}
	id, err := m.transactionCount.Get()
	if err != nil {
		return 0, err
	}
	tx := &Transaction{Destination: destination, Value: value, Data: data}
	if err := m.transactions.Set(solidity.Uint64Key(id), tx); err != nil {
		return 0, err
	}
	m.transactionCount.Set(id + 1)
	if err := m.Confirm(caller, id); err != nil {
		return 0, err
	}
	return id, nil
}

// Confirm records caller's confirmation of transaction id.
func (m *MultiSig) Confirm(caller umb.Address, id uint64) error {
	if err := m.whenOwnerExists(caller); err != nil {
		return err
	}
	tx, err := m.Transaction(id)
	if err != nil {
		return err
	}
	if tx.Destination.IsZero() {
		return ErrTxNotExists
	}
	confirmed, err := m.IsConfirmedBy(id, caller)
	if err != nil {
		return err
	}
	if confirmed {
		return ErrTxAlreadyConfirmed
	}
	if tx.Executed {
		return ErrTxAlreadyExecuted
	}
	return m.confirmations.Set(solidity.IDAddressKey{ID: id, Addr: caller}, true)
}

// Revoke withdraws caller's confirmation of a pending transaction.
func (m *MultiSig) Revoke(caller umb.Address, id uint64) error {
	if err := m.whenOwnerExists(caller); err != nil {
		return err
	}
	if err := m.whenConfirmedAndPending(caller, id); err != nil {
		return err
	}
	m.confirmations.Delete(solidity.IDAddressKey{ID: id, Addr: caller})
	return nil
}

func (m *MultiSig) whenConfirmedAndPending(caller umb.Address, id uint64) error {
	confirmed, err := m.IsConfirmedBy(id, caller)
	if err != nil {
		return err
	}
	if !confirmed {
		return ErrTxNotConfirmed
	}
	executed, err := m.IsExecuted(id)
	if err != nil {
		return err
	}
	if executed {
		return ErrTxAlreadyExecuted
	}
	return nil
}

// PrepareExecution marks transaction id executed when enough power confirmed it, and
// returns it for the caller to perform. It returns nil when the power is not reached yet.
func (m *MultiSig) PrepareExecution(caller umb.Address, id uint64) (*Transaction, error) {
	if err := m.whenConfirmedAndPending(caller, id); err != nil {
		return nil, err
	}
	ok, err := m.IsConfirmed(id)
	if err != nil || !ok {
		return nil, err
	}
	tx, err := m.Transaction(id)
	if err != nil {
		return nil, err
	}
	tx.Executed = true
	if err := m.transactions.Set(solidity.Uint64Key(id), tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (m *MultiSig) RequiredPower() (uint64, error)     { return m.requiredPower.Get() }
func (m *MultiSig) TotalCurrentPower() (uint64, error) { return m.totalCurrentPower.Get() }
func (m *MultiSig) MaxOwners() (uint64, error)         { return m.maxOwners.Get() }
func (m *MultiSig) OwnersCount() (uint64, error)       { return m.owners.Len() }
func (m *MultiSig) Owners() ([]umb.Address, error)     { return m.owners.All() }
func (m *MultiSig) TransactionCount() (uint64, error)  { return m.transactionCount.Get() }

// Owner returns the i-th owner.
func (m *MultiSig) Owner(i uint64) (umb.Address, error) {
	return m.owners.Get(i)
}

func (m *MultiSig) OwnersPowers(owner umb.Address) (uint64, error) {
	return m.ownersPowers.Get(owner)
}

func (m *MultiSig) IsOwner(addr umb.Address) (bool, error) {
	power, err := m.ownersPowers.Get(addr)
	return power > 0, err
}

// Transaction returns transaction id, or a zero transaction when it does not exist.
func (m *MultiSig) Transaction(id uint64) (*Transaction, error) {
	tx, err := m.transactions.Get(solidity.Uint64Key(id))
	if err != nil {
		return nil, err
	}
	if tx.Value == nil {
		tx.Value = new(big.Int)
	}
	return tx, nil
}

func (m *MultiSig) IsExecuted(id uint64) (bool, error) {
	tx, err := m.Transaction(id)
	if err != nil {
		return false, err
	}
	return tx.Executed, nil
}

func (m *MultiSig) IsConfirmedBy(id uint64, owner umb.Address) (bool, error) {
	return m.confirmations.Get(solidity.IDAddressKey{ID: id, Addr: owner})
}

// Confirmations returns the current owners who confirmed transaction id, in owner order.
func (m *MultiSig) Confirmations(id uint64) ([]umb.Address, error) {
	owners, err := m.owners.All()
	if err != nil {
		return nil, err
	}
	confirmed := make([]umb.Address, 0, len(owners))
	for _, owner := range owners {
		ok, err := m.IsConfirmedBy(id, owner)
		if err != nil {
			return nil, err
		}
		if ok {
			confirmed = append(confirmed, owner)
		}
	}
	return confirmed, nil
}

func (m *MultiSig) ConfirmationCount(id uint64) (uint64, error) {
	confirmed, err := m.Confirmations(id)
	return uint64(len(confirmed)), err
}

// IsConfirmed reports whether the confirming owners of id hold at least the required power.
func (m *MultiSig) IsConfirmed(id uint64) (bool, error) {
	confirmed, err := m.Confirmations(id)
	if err != nil {
		return false, err
	}
	required, err := m.requiredPower.Get()
	if err != nil {
		return false, err
	}
	var power uint64
	for _, owner := range confirmed {
		p, err := m.ownersPowers.Get(owner)
		if err != nil {
			return false, err
		}
		power += p
		if power >= required {
			return true, nil
		}
	}
	return false, nil
}

func (m *MultiSig) matches(id uint64, pending, executed bool) (bool, error) {
	done, err := m.IsExecuted(id)
	if err != nil {
		return false, err
	}
	return (pending && !done) || (executed && done), nil
}

// FilteredTransactionCount counts pending and/or executed transactions.
func (m *MultiSig) FilteredTransactionCount(pending, executed bool) (uint64, error) {
	count, err := m.transactionCount.Get()
	if err != nil {
		return 0, err
	}
	var n uint64
	for id := range count {
		ok, err := m.matches(id, pending, executed)
		if err != nil {
			return 0, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

// TransactionIDs returns the ids in [from, to) that are pending and/or executed.
func (m *MultiSig) TransactionIDs(from, to uint64, pending, executed bool) ([]uint64, error) {
	count, err := m.transactionCount.Get()
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0)
	for id := from; id < min(to, count); id++ {
		ok, err := m.matches(id, pending, executed)
		if err != nil {
			return nil, err
		}
		if ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Sum adds values with overflow check.
func Sum(values []*big.Int) (*big.Int, error) {
	sum := new(big.Int)
	for _, v := range values {
		var err error
		if sum, err = solidity.Add(sum, v); err != nil {
			return nil, err
		}
	}
	return sum, nil
}
