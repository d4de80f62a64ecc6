// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the reward-per-token farming contract.
//
// A staker's reward is checkpointed before every change of their balance:
//
//	rewardPerToken = stored + (lastTimeRewardApplicable - lastUpdateTime) * rewardRate * 1e18 / totalSupply
//	earned         = balance * (rewardPerToken - userRewardPerTokenPaid) / 1e18 + rewards
package staking

import (
	"math/big"

	"github.com/umbrella-network/umbledger/builtin/ownable"
	"github.com/umbrella-network/umbledger/builtin/reverts"
	"github.com/umbrella-network/umbledger/builtin/solidity"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/umb"
)

var (
	ErrStakeZero         = reverts.New(reverts.InvalidArgument, "Cannot stake 0")
	ErrWithdrawZero      = reverts.New(reverts.InvalidArgument, "Cannot withdraw 0")
	ErrNotStarted        = reverts.New(reverts.InvalidState, "Stake period not started yet")
	ErrStopped           = reverts.New(reverts.InvalidState, "farming is stopped")
	ErrWithdrawExceeds   = reverts.New(reverts.InsufficientFunds, "withdraw amount exceeds balance")
	ErrNotDistribution   = reverts.New(reverts.Unauthorized, "Caller is not RewardsDistribution contract")
	ErrRewardTooHigh     = reverts.New(reverts.InsufficientFunds, "Provided reward too high")
	ErrEmptyDuration     = reverts.New(reverts.InvalidArgument, "empty _rewardsDuration")
	ErrPeriodNotComplete = reverts.New(reverts.InvalidState, "Previous rewards period must be complete before changing the duration for the new period")
	ErrCantStop          = reverts.New(reverts.InvalidState, "can't stop if not started or already finished")
	ErrEmptyDistribution = reverts.New(reverts.InvalidArgument, "empty _rewardsDistribution")
	precision            = umb.Ether
)

// BalanceFunc returns the contract's own balance in token.
type BalanceFunc func(token umb.Address) (*big.Int, error)

// StakingRewards is the farming contract. Staked and reward tokens are held by the contract address.
type StakingRewards struct {
	*ownable.Ownable

	addr                   umb.Address
	rewardsDistribution    *solidity.Address
	stakingToken           *solidity.Address
	rewardsToken           *solidity.Address
	periodFinish           *solidity.Uint64
	rewardRate             *solidity.Uint256
	rewardsDuration        *solidity.Uint64
	lastUpdateTime         *solidity.Uint64
	rewardPerTokenStored   *solidity.Uint256
	userRewardPerTokenPaid *solidity.Mapping[umb.Address, *big.Int]
	rewards                *solidity.Mapping[umb.Address, *big.Int]
	totalSupply            *solidity.Uint256
	balances               *solidity.Mapping[umb.Address, *big.Int]
	stopped                *solidity.Bool
}

func New(addr umb.Address, state *state.State) *StakingRewards {
	ctx := solidity.NewContext(addr, state)
	return &StakingRewards{
		Ownable:                ownable.New(ctx),
		addr:                   addr,
		rewardsDistribution:    solidity.NewAddress(ctx, solidity.Slot("staking.rewardsDistribution")),
		stakingToken:           solidity.NewAddress(ctx, solidity.Slot("staking.stakingToken")),
		rewardsToken:           solidity.NewAddress(ctx, solidity.Slot("staking.rewardsToken")),
		periodFinish:           solidity.NewUint64(ctx, solidity.Slot("staking.periodFinish")),
		rewardRate:             solidity.NewUint256(ctx, solidity.Slot("staking.rewardRate")),
		rewardsDuration:        solidity.NewUint64(ctx, solidity.Slot("staking.rewardsDuration")),
		lastUpdateTime:         solidity.NewUint64(ctx, solidity.Slot("staking.lastUpdateTime")),
		rewardPerTokenStored:   solidity.NewUint256(ctx, solidity.Slot("staking.rewardPerTokenStored")),
		userRewardPerTokenPaid: solidity.NewMapping[umb.Address, *big.Int](ctx, solidity.Slot("staking.userRewardPerTokenPaid")),
		rewards:                solidity.NewMapping[umb.Address, *big.Int](ctx, solidity.Slot("staking.rewards")),
		totalSupply:            solidity.NewUint256(ctx, solidity.Slot("staking.totalSupply")),
		balances:               solidity.NewMapping[umb.Address, *big.Int](ctx, solidity.Slot("staking.balances")),
		stopped:                solidity.NewBool(ctx, solidity.Slot("staking.stopped")),
	}
}

func (s *StakingRewards) Address() umb.Address { return s.addr }

// Initialize stores constructor arguments; the rewards duration defaults to one year.
func (s *StakingRewards) Initialize(owner, rewardsDistribution, stakingToken, rewardsToken umb.Address) {
	s.Ownable.Init(owner)
	s.rewardsDistribution.Set(rewardsDistribution)
	s.stakingToken.Set(stakingToken)
	s.rewardsToken.Set(rewardsToken)
	s.rewardsDuration.Set(umb.DefaultRewardsDuration)
}

func (s *StakingRewards) RewardsDistribution() (umb.Address, error) {
	return s.rewardsDistribution.Get()
}
func (s *StakingRewards) StakingToken() (umb.Address, error) { return s.stakingToken.Get() }
func (s *StakingRewards) RewardsToken() (umb.Address, error) { return s.rewardsToken.Get() }
func (s *StakingRewards) PeriodFinish() (uint64, error)      { return s.periodFinish.Get() }
func (s *StakingRewards) RewardRate() (*big.Int, error)      { return s.rewardRate.Get() }
func (s *StakingRewards) RewardsDuration() (uint64, error)   { return s.rewardsDuration.Get() }
func (s *StakingRewards) LastUpdateTime() (uint64, error)    { return s.lastUpdateTime.Get() }
func (s *StakingRewards) RewardPerTokenStored() (*big.Int, error) {
	return s.rewardPerTokenStored.Get()
}
func (s *StakingRewards) TotalSupply() (*big.Int, error) { return s.totalSupply.Get() }
func (s *StakingRewards) Stopped() (bool, error)         { return s.stopped.Get() }

func (s *StakingRewards) BalanceOf(account umb.Address) (*big.Int, error) {
	return s.balances.Get(account)
}

func (s *StakingRewards) UserRewardPerTokenPaid(account umb.Address) (*big.Int, error) {
	return s.userRewardPerTokenPaid.Get(account)
}

func (s *StakingRewards) Rewards(account umb.Address) (*big.Int, error) {
	return s.rewards.Get(account)
}

// LastTimeRewardApplicable returns min(now, periodFinish).
func (s *StakingRewards) LastTimeRewardApplicable(now uint64) (uint64, error) {
	finish, err := s.periodFinish.Get()
	if err != nil {
		return 0, err
	}
	return min(now, finish), nil
}

func (s *StakingRewards) RewardPerToken(now uint64) (*big.Int, error) {
	stored, err := s.rewardPerTokenStored.Get()
	if err != nil {
		return nil, err
	}
	supply, err := s.totalSupply.Get()
	if err != nil {
		return nil, err
	}
	if supply.Sign() == 0 {
		return stored, nil
	}
	applicable, err := s.LastTimeRewardApplicable(now)
	if err != nil {
		return nil, err
	}
	last, err := s.lastUpdateTime.Get()
	if err != nil {
		return nil, err
	}
	rate, err := s.rewardRate.Get()
	if err != nil {
		return nil, err
	}
	elapsed := new(big.Int).SetUint64(applicable - min(applicable, last))
	accrued, err := solidity.Mul(elapsed, rate)
	if err != nil {
		return nil, err
	}
	if accrued, err = solidity.MulDiv(accrued, precision, supply); err != nil {
		return nil, err
	}
	return solidity.Add(stored, accrued)
}

// Earned returns the reward of account accrued up to now and not yet paid.
func (s *StakingRewards) Earned(account umb.Address, now uint64) (*big.Int, error) {
	perToken, err := s.RewardPerToken(now)
	if err != nil {
		return nil, err
	}
	return s.earned(account, perToken)
}

func (s *StakingRewards) earned(account umb.Address, perToken *big.Int) (*big.Int, error) {
	balance, err := s.balances.Get(account)
	if err != nil {
		return nil, err
	}
	paid, err := s.userRewardPerTokenPaid.Get(account)
	if err != nil {
		return nil, err
	}
	pending, err := s.rewards.Get(account)
	if err != nil {
		return nil, err
	}
	delta, err := solidity.Sub(perToken, paid)
	if err != nil {
		return nil, err
	}
	accrued, err := solidity.MulDiv(balance, delta, precision)
	if err != nil {
		return nil, err
	}
	return solidity.Add(accrued, pending)
}

// GetRewardForDuration returns rewardRate * rewardsDuration.
func (s *StakingRewards) GetRewardForDuration() (*big.Int, error) {
	rate, err := s.rewardRate.Get()
	if err != nil {
		return nil, err
	}
	duration, err := s.rewardsDuration.Get()
	if err != nil {
		return nil, err
	}
	return solidity.Mul(rate, new(big.Int).SetUint64(duration))
}

// updateReward checkpoints the global accumulator, and account's reward unless account is zero.
func (s *StakingRewards) updateReward(account umb.Address, now uint64) error {
	perToken, err := s.RewardPerToken(now)
	if err != nil {
		return err
	}
	s.rewardPerTokenStored.Set(perToken)
	applicable, err := s.LastTimeRewardApplicable(now)
	if err != nil {
		return err
	}
	s.lastUpdateTime.Set(applicable)
	if account.IsZero() {
		return nil
	}
	earned, err := s.earned(account, perToken)
	if err != nil {
		return err
	}
	if err := s.rewards.Set(account, earned); err != nil {
		return err
	}
	return s.userRewardPerTokenPaid.Set(account, perToken)
}

func (s *StakingRewards) requireNotStopped() error {
	stopped, err := s.stopped.Get()
	if err != nil {
		return err
	}
	if stopped {
		return ErrStopped
	}
	return nil
}

// Stake records amount for caller. The caller's tokens are pulled afterwards.
func (s *StakingRewards) Stake(caller umb.Address, amount *big.Int, now uint64) error {
	if amount.Sign() == 0 {
		return ErrStakeZero
	}
	finish, err := s.periodFinish.Get()
	if err != nil {
		return err
	}
	if finish == 0 {
		return ErrNotStarted
	}
	if err := s.requireNotStopped(); err != nil {
		return err
	}
	if err := s.updateReward(caller, now); err != nil {
		return err
	}
	if err := s.totalSupply.Add(amount); err != nil {
		return err
	}
	balance, err := s.balances.Get(caller)
	if err != nil {
		return err
	}
	return s.balances.Set(caller, new(big.Int).Add(balance, amount))
}

// Withdraw releases amount of caller's stake. The tokens are sent back afterwards.
func (s *StakingRewards) Withdraw(caller umb.Address, amount *big.Int, now uint64) error {
	if amount.Sign() == 0 {
		return ErrWithdrawZero
	}
	if err := s.updateReward(caller, now); err != nil {
		return err
	}
	balance, err := s.balances.Get(caller)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return ErrWithdrawExceeds
	}
	if err := s.totalSupply.Sub(amount); err != nil {
		return err
	}
	return s.balances.Set(caller, new(big.Int).Sub(balance, amount))
}

// GetReward zeroes caller's accrued reward and returns it. A zero result means nothing to pay.
func (s *StakingRewards) GetReward(caller umb.Address, now uint64) (*big.Int, error) {
	if err := s.updateReward(caller, now); err != nil {
		return nil, err
	}
	reward, err := s.rewards.Get(caller)
	if err != nil {
		return nil, err
	}
	if reward.Sign() > 0 {
		if err := s.rewards.Set(caller, new(big.Int)); err != nil {
			return nil, err
		}
	}
	return reward, nil
}

// NotifyRewardAmount starts or extends the reward period with reward.
func (s *StakingRewards) NotifyRewardAmount(caller umb.Address, reward *big.Int, now uint64, balanceOf BalanceFunc) error {
	distribution, err := s.rewardsDistribution.Get()
	if err != nil {
		return err
	}
	if caller != distribution {
		return ErrNotDistribution
	}
	if err := s.requireNotStopped(); err != nil {
		return err
	}
	if err := s.updateReward(umb.Address{}, now); err != nil {
		return err
	}

	duration, err := s.rewardsDuration.Get()
	if err != nil {
		return err
	}
	durationBig := new(big.Int).SetUint64(duration)
	finish, err := s.periodFinish.Get()
	if err != nil {
		return err
	}

	total := reward
	if now < finish {
		rate, err := s.rewardRate.Get()
		if err != nil {
			return err
		}
		leftover, err := solidity.Mul(new(big.Int).SetUint64(finish-now), rate)
		if err != nil {
			return err
		}
		if total, err = solidity.Add(reward, leftover); err != nil {
			return err
		}
	}
	rate, err := solidity.Div(total, durationBig)
	if err != nil {
		return err
	}

	rewardsToken, err := s.rewardsToken.Get()
	if err != nil {
		return err
	}
	balance, err := balanceOf(rewardsToken)
	if err != nil {
		return err
	}
	if rate.Cmp(new(big.Int).Div(balance, durationBig)) > 0 {
		return ErrRewardTooHigh
	}

	s.rewardRate.Set(rate)
	s.lastUpdateTime.Set(now)
	s.periodFinish.Set(now + duration)
	return nil
}

// SetRewardsDuration changes the duration of the next reward period.
func (s *StakingRewards) SetRewardsDuration(caller umb.Address, duration uint64, now uint64) error {
	if err := s.OnlyOwner(caller); err != nil {
		return err
	}
	if duration == 0 {
		return ErrEmptyDuration
	}
	finish, err := s.periodFinish.Get()
	if err != nil {
		return err
	}
	if now <= finish {
		return ErrPeriodNotComplete
	}
	s.rewardsDuration.Set(duration)
	return nil
}

// SetRewardsDistribution replaces the account allowed to notify rewards.
func (s *StakingRewards) SetRewardsDistribution(caller, distribution umb.Address) error {
	if err := s.OnlyOwner(caller); err != nil {
		return err
	}
	if distribution.IsZero() {
		return ErrEmptyDistribution
	}
	s.rewardsDistribution.Set(distribution)
	return nil
}

// FinishFarming stops accrual at now and returns the amount of reward tokens to burn.
// Rewards already earned stay claimable.
func (s *StakingRewards) FinishFarming(caller umb.Address, now uint64, balanceOf BalanceFunc) (*big.Int, error) {
	if err := s.OnlyOwner(caller); err != nil {
		return nil, err
	}
	if err := s.requireNotStopped(); err != nil {
		return nil, err
	}
	finish, err := s.periodFinish.Get()
	if err != nil {
		return nil, err
	}
	if now >= finish {
		return nil, ErrCantStop
	}
	if err := s.updateReward(umb.Address{}, now); err != nil {
		return nil, err
	}

	supply, err := s.totalSupply.Get()
	if err != nil {
		return nil, err
	}
	var burned *big.Int
	if supply.Sign() == 0 {
		rewardsToken, err := s.rewardsToken.Get()
		if err != nil {
			return nil, err
		}
		if burned, err = balanceOf(rewardsToken); err != nil {
			return nil, err
		}
	} else {
		remaining := finish - now
		rate, err := s.rewardRate.Get()
		if err != nil {
			return nil, err
		}
		if burned, err = solidity.Mul(rate, new(big.Int).SetUint64(remaining)); err != nil {
			return nil, err
		}
		duration, err := s.rewardsDuration.Get()
		if err != nil {
			return nil, err
		}
		s.rewardsDuration.Set(duration - min(duration, remaining))
	}

	s.periodFinish.Set(now)
	s.stopped.Set(true)
	return burned, nil
}
