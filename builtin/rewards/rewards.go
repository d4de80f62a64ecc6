// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards implements the one-shot vesting distributor of a reward token.
package rewards

import (
	"math/big"

	"github.com/umbrella-network/umbledger/builtin/ownable"
	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/builtin/solidity"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/umb"
)

var (
	ErrNoParticipants   = reverts.New(reverts.InvalidArgument, "there is no _participants")
	ErrRewardsCount     = reverts.New(reverts.InvalidArgument, "_participants count must match _rewards count")
	ErrDurationsCount   = reverts.New(reverts.InvalidArgument, "_participants count must match _durations count")
	ErrBulksCount       = reverts.New(reverts.InvalidArgument, "_participants count must match _bulks count")
	ErrEmptyRewardToken = reverts.New(reverts.InvalidArgument, "empty _rewardToken")
	ErrEmptyParticipant = reverts.New(reverts.InvalidArgument, "empty participant")
	ErrNotEnoughTokens  = reverts.New(reverts.InsufficientFunds, "not enough tokens for rewards")
	ErrNotSetup         = reverts.New(reverts.InvalidState, "contract not setup")
	ErrAlreadySetup     = reverts.New(reverts.InvalidState, "distribution already setup")
	ErrAlreadyStarted   = reverts.New(reverts.InvalidState, "distribution already started")
	ErrNothingToClaim   = reverts.New(reverts.InvalidState, "you have no tokens to claim")
)

var hundred = big.NewInt(100)

// BalanceFunc returns the distributor's own balance in token.
type BalanceFunc func(token umb.Address) (*big.Int, error)

// Reward is the vesting schedule of one participant.
type Reward struct {
	Total    *big.Int
	Duration uint64
	Paid     *big.Int
	Bulk     uint64
}

func (r *Reward) exists() bool {
	return r.Total != nil
}

// Rewards is the distributor contract.
type Rewards struct {
	*ownable.Ownable

	addr                  umb.Address
	rewardToken           *solidity.Address
	distributionStartTime *solidity.Uint64
	participants          *solidity.Mapping[umb.Address, *Reward]
	participantsCount     *solidity.Uint64
	setupDone             *solidity.Bool
}

func New(addr umb.Address, state *state.State) *Rewards {
	ctx := solidity.NewContext(addr, state)
	return &Rewards{
		Ownable:               ownable.New(ctx),
		addr:                  addr,
		rewardToken:           solidity.NewAddress(ctx, solidity.Slot("rewards.rewardToken")),
		distributionStartTime: solidity.NewUint64(ctx, solidity.Slot("rewards.distributionStartTime")),
		participants:          solidity.NewMapping[umb.Address, *Reward](ctx, solidity.Slot("rewards.participants")),
		participantsCount:     solidity.NewUint64(ctx, solidity.Slot("rewards.participantsCount")),
		setupDone:             solidity.NewBool(ctx, solidity.Slot("rewards.setupDone")),
	}
}

func (r *Rewards) Address() umb.Address { return r.addr }

// Initialize sets the owner.
func (r *Rewards) Initialize(owner umb.Address) {
	r.Ownable.Init(owner)
}

// StartDistribution sets up every schedule, starts the clock at startTime and burns ownership.
// It returns the sum of all rewards.
func (r *Rewards) StartDistribution(
	caller, token umb.Address,
	startTime uint64,
	participants []umb.Address,
	rewards []*big.Int,
	durations []uint64,
	bulks []uint64,
	balanceOf BalanceFunc,
) (*big.Int, error) {
	if err := r.OnlyOwner(caller); err != nil {
		return nil, err
	}
	total, err := r.setup(token, participants, rewards, durations, bulks, balanceOf)
	if err != nil {
		return nil, err
	}
	r.distributionStartTime.Set(startTime)
	if _, err := r.Renounce(caller); err != nil {
		return nil, err
	}
	return total, nil
}

// SetupDistribution stores linear schedules without starting the clock.
// It returns the sum of all rewards.
func (r *Rewards) SetupDistribution(
	caller, token umb.Address,
	participants []umb.Address,
	rewards []*big.Int,
	durations []uint64,
	balanceOf BalanceFunc,
) (*big.Int, error) {
	if err := r.OnlyOwner(caller); err != nil {
		return nil, err
	}
	return r.setup(token, participants, rewards, durations, make([]uint64, len(participants)), balanceOf)
}

// Start starts the clock of a distribution prepared by SetupDistribution.
func (r *Rewards) Start(caller umb.Address, now uint64) error {
	if err := r.OnlyOwner(caller); err != nil {
		return err
	}
	done, err := r.setupDone.Get()
	if err != nil {
		return err
	}
	if !done {
		return ErrNotSetup
	}
	started, err := r.distributionStartTime.Get()
	if err != nil {
		return err
	}
	if started != 0 {
		return ErrAlreadyStarted
	}
	r.distributionStartTime.Set(now)
	return nil
}

func (r *Rewards) setup(
	token umb.Address,
	participants []umb.Address,
	rewards []*big.Int,
	durations []uint64,
	bulks []uint64,
	balanceOf BalanceFunc,
) (*big.Int, error) {
	done, err := r.setupDone.Get()
	if err != nil {
		return nil, err
	}
	if done {
		return nil, ErrAlreadySetup
	}
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if len(rewards) != len(participants) {
		return nil, ErrRewardsCount
	}
	if len(durations) != len(participants) {
		return nil, ErrDurationsCount
	}
	if len(bulks) != len(participants) {
		return nil, ErrBulksCount
	}
	if token.IsZero() {
		return nil, ErrEmptyRewardToken
	}

	total := new(big.Int)
	count, err := r.participantsCount.Get()
	if err != nil {
		return nil, err
	}
	for i, p := range participants {
		if p.IsZero() {
			return nil, ErrEmptyParticipant
		}
		if total, err = solidity.Add(total, rewards[i]); err != nil {
			return nil, err
		}
		prev, err := r.participants.Get(p)
		if err != nil {
			return nil, err
		}
		if !prev.exists() {
			count++
		}
		entry := &Reward{Total: rewards[i], Duration: durations[i], Paid: new(big.Int), Bulk: bulks[i]}
		if err := r.participants.Set(p, entry); err != nil {
			return nil, err
		}
	}

	balance, err := balanceOf(token)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(total) < 0 {
		return nil, ErrNotEnoughTokens
	}

	r.participantsCount.Set(count)
	r.rewardToken.Set(token)
	r.setupDone.Set(true)
	return total, nil
}

// Reward returns the schedule of participant; absent participants get zero values.
func (r *Rewards) Reward(participant umb.Address) (*Reward, error) {
	entry, err := r.participants.Get(participant)
	if err != nil {
		return nil, err
	}
	if entry.Total == nil {
		entry.Total = new(big.Int)
	}
	if entry.Paid == nil {
		entry.Paid = new(big.Int)
	}
	return entry, nil
}

func (r *Rewards) ParticipantsCount() (uint64, error)     { return r.participantsCount.Get() }
func (r *Rewards) DistributionStartTime() (uint64, error) { return r.distributionStartTime.Get() }
func (r *Rewards) RewardToken() (umb.Address, error)      { return r.rewardToken.Get() }
func (r *Rewards) SetupDone() (bool, error)               { return r.setupDone.Get() }

// Unlocked returns how much of entry is vested at now for a distribution started at start.
func Unlocked(entry *Reward, start, now uint64) *big.Int {
	if start == 0 || now < start || entry.Total == nil {
		return new(big.Int)
	}
	elapsed := now - start
	if entry.Duration == 0 || elapsed >= entry.Duration {
		return new(big.Int).Set(entry.Total)
	}
	if entry.Bulk == 0 {
		unlocked := new(big.Int).Mul(entry.Total, new(big.Int).SetUint64(elapsed))
		return unlocked.Div(unlocked, new(big.Int).SetUint64(entry.Duration))
	}

	progressPct := elapsed * 100 / entry.Duration
	steps := new(big.Int).SetUint64(progressPct / entry.Bulk)
	perStep := new(big.Int).Mul(entry.Total, new(big.Int).SetUint64(entry.Bulk))
	perStep.Div(perStep, hundred)
	return solidity.Min(entry.Total, steps.Mul(steps, perStep))
}

// BalanceOf returns the vested and unpaid amount of participant at now.
func (r *Rewards) BalanceOf(participant umb.Address, now uint64) (*big.Int, error) {
	done, err := r.setupDone.Get()
	if err != nil || !done {
		return new(big.Int), err
	}
	start, err := r.distributionStartTime.Get()
	if err != nil {
		return nil, err
	}
	entry, err := r.Reward(participant)
	if err != nil {
		return nil, err
	}
	unlocked := Unlocked(entry, start, now)
	if unlocked.Cmp(entry.Paid) <= 0 {
		return new(big.Int), nil
	}
	return unlocked.Sub(unlocked, entry.Paid), nil
}

// Claim records the payout of caller's vested balance and returns the amount to transfer.
func (r *Rewards) Claim(caller umb.Address, now uint64) (*big.Int, error) {
	amount, err := r.BalanceOf(caller, now)
	if err != nil {
		return nil, err
	}
	if amount.Sign() == 0 {
		return nil, ErrNothingToClaim
	}
	entry, err := r.Reward(caller)
	if err != nil {
		return nil, err
	}
	entry.Paid = new(big.Int).Add(entry.Paid, amount)
	if err := r.participants.Set(caller, entry); err != nil {
		return nil, err
	}
	return amount, nil
}
