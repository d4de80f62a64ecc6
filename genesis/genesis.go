// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis deploys and wires the contract suite of a new ledger.
package genesis

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/umbrella-network/umbledger/builtin"
	"github.com/umbrella-network/umbledger/state"
	"github.com/umbrella-network/umbledger/tx"
	"github.com/umbrella-network/umbledger/umb"
)

// Contracts are the addresses of the deployed suite.
type Contracts struct {
	MultiSig umb.Address `json:"multiSig" yaml:"multiSig"`
	UMB      umb.Address `json:"umb" yaml:"umb"`
	RUMB     umb.Address `json:"rUmb" yaml:"rUmb"`
	Rewards  umb.Address `json:"rewards" yaml:"rewards"`
	Staking  umb.Address `json:"stakingRewards" yaml:"stakingRewards"`
	Airdrop  umb.Address `json:"airdrop" yaml:"airdrop"`
}

// NamedContract is a contract of the suite with its json name.
type NamedContract struct {
	Name    string
	Address umb.Address
}

// List returns the contracts in deploy order.
func (c Contracts) List() []NamedContract {
	return []NamedContract{
		{"multiSig", c.MultiSig},
		{"umb", c.UMB},
		{"rUmb", c.RUMB},
		{"rewards", c.Rewards},
		{"stakingRewards", c.Staking},
		{"airdrop", c.Airdrop},
	}
}

// Lookup returns the address of the contract named name. Names are case insensitive.
func (c Contracts) Lookup(name string) (umb.Address, bool) {
	for _, n := range c.List() {
		if strings.EqualFold(n.Name, name) {
			return n.Address, true
		}
	}
	return umb.Address{}, false
}

// ContractAddress returns the address of the nonce-th contract created by deployer.
func ContractAddress(deployer umb.Address, nonce uint64) umb.Address {
	return umb.Address(crypto.CreateAddress(common.Address(deployer), nonce))
}

// Genesis to build the genesis state.
type Genesis struct {
	builder   *Builder
	config    *Config
	contracts Contracts
	hash      umb.Bytes32
}

// New creates the genesis of cfg. The suite is deployed in the order multisig, UMB, rUMB,
// Rewards, StakingRewards and Airdrop, then wired by the deployer and handed over to the multisig.
func New(cfg *Config) (*Genesis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deployer := cfg.Deployer
	contracts := Contracts{
		MultiSig: ContractAddress(deployer, 0),
		UMB:      ContractAddress(deployer, 1),
		RUMB:     ContractAddress(deployer, 2),
		Rewards:  ContractAddress(deployer, 3),
		Staking:  ContractAddress(deployer, 4),
		Airdrop:  ContractAddress(deployer, 5),
	}

	builder := new(Builder).
		Timestamp(cfg.LaunchTime).
		State(func(state *state.State) error {
			owners := make([]umb.Address, 0, len(cfg.MultiSig.Owners))
			powers := make([]uint64, 0, len(cfg.MultiSig.Owners))
			for _, o := range cfg.MultiSig.Owners {
				owners = append(owners, o.Address)
				powers = append(powers, o.Power)
			}
			builtin.MultiSig.Deploy(state, contracts.MultiSig)
			if err := builtin.MultiSig.Native(state, contracts.MultiSig).Initialize(
				owners, powers, cfg.MultiSig.RequiredPower, cfg.MultiSig.MaxOwners); err != nil {
				return err
			}

			builtin.UMB.Deploy(state, contracts.UMB)
			if err := builtin.UMB.Native(state, contracts.UMB).Initialize(
				deployer,
				cfg.UMB.InitialHolder,
				cfg.UMB.InitialBalance.Big(),
				cfg.UMB.MaxAllowedTotalSupply.Big(),
				cfg.UMB.Name,
				cfg.UMB.Symbol,
			); err != nil {
				return err
			}

			builtin.RUMB.Deploy(state, contracts.RUMB)
			if err := builtin.RUMB.Native(state, contracts.RUMB).Initialize(
				deployer,
				cfg.RUMB.InitialHolder,
				cfg.RUMB.InitialBalance.Big(),
				cfg.RUMB.MaxAllowedTotalSupply.Big(),
				cfg.RUMB.SwapDuration,
				cfg.RUMB.Name,
				cfg.RUMB.Symbol,
				cfg.LaunchTime,
			); err != nil {
				return err
			}

			builtin.Rewards.Deploy(state, contracts.Rewards)
			builtin.Rewards.Native(state, contracts.Rewards).Initialize(deployer)

			// the deployer notifies the launch reward before handing distribution over
			builtin.Staking.Deploy(state, contracts.Staking)
			builtin.Staking.Native(state, contracts.Staking).Initialize(deployer, deployer, contracts.UMB, contracts.RUMB)

			builtin.Airdrop.Deploy(state, contracts.Airdrop)
			builtin.Airdrop.Native(state, contracts.Airdrop).Initialize(deployer)
			return nil
		})

	call := func(to umb.Address, data []byte) {
		builder.Call(tx.NewClause(to).WithData(data), deployer)
	}

	call(contracts.UMB, mustEncodeInput(builtin.UMB.EncodeCall("setRewardTokens", []umb.Address{contracts.RUMB}, []bool{true})))
	if farm := cfg.Farming.TokenAmountForDeFiRewards.Big(); farm.Sign() > 0 {
		call(contracts.RUMB, mustEncodeInput(builtin.RUMB.EncodeCall("mint", contracts.Staking, farm)))
		call(contracts.Staking, mustEncodeInput(builtin.Staking.EncodeCall("notifyRewardAmount", farm)))
	}

	distribution := contracts.MultiSig
	if cfg.Farming.RewardsDistribution != nil {
		distribution = *cfg.Farming.RewardsDistribution
	}
	call(contracts.Staking, mustEncodeInput(builtin.Staking.EncodeCall("setRewardsDistribution", distribution)))

	if len(cfg.Rewards.Data) > 0 {
		var (
			total        = new(big.Int)
			participants = make([]umb.Address, 0, len(cfg.Rewards.Data))
			amounts      = make([]*big.Int, 0, len(cfg.Rewards.Data))
			durations    = make([]*big.Int, 0, len(cfg.Rewards.Data))
			bulks        = make([]*big.Int, 0, len(cfg.Rewards.Data))
		)
		for _, p := range cfg.Rewards.Data {
			participants = append(participants, p.Address)
			amounts = append(amounts, p.Amount.Big())
			durations = append(durations, new(big.Int).SetUint64(p.Duration))
			bulks = append(bulks, new(big.Int).SetUint64(p.Bulk))
			total.Add(total, p.Amount.Big())
		}
		startTime := cfg.Rewards.StartTime
		if startTime == 0 {
			startTime = cfg.LaunchTime
		}
		call(contracts.UMB, mustEncodeInput(builtin.UMB.EncodeCall("mint", contracts.Rewards, total)))
		// burns the ownership of the distributor
		call(contracts.Rewards, mustEncodeInput(builtin.Rewards.EncodeCall("startDistribution",
			contracts.UMB, new(big.Int).SetUint64(startTime), participants, amounts, durations, bulks)))
	} else {
		call(contracts.Rewards, mustEncodeInput(builtin.Rewards.EncodeCall("transferOwnership", contracts.MultiSig)))
	}

	call(contracts.UMB, mustEncodeInput(builtin.UMB.EncodeCall("transferOwnership", contracts.MultiSig)))
	call(contracts.RUMB, mustEncodeInput(builtin.RUMB.EncodeCall("transferOwnership", contracts.MultiSig)))
	call(contracts.Staking, mustEncodeInput(builtin.Staking.EncodeCall("transferOwnership", contracts.MultiSig)))
	call(contracts.Airdrop, mustEncodeInput(builtin.Airdrop.EncodeCall("transferOwnership", contracts.MultiSig)))

	hash, err := builder.ComputeHash()
	if err != nil {
		return nil, err
	}
	return &Genesis{builder, cfg, contracts, hash}, nil
}

// Build applies the genesis to an empty state.
func (g *Genesis) Build(state *state.State) (tx.Events, error) {
	return g.builder.Build(state)
}

// Hash returns the hash of the genesis changes, which identifies the ledger.
func (g *Genesis) Hash() umb.Bytes32 { return g.hash }

// LaunchTime returns the time the ledger starts at.
func (g *Genesis) LaunchTime() uint64 { return g.config.LaunchTime }

// Contracts returns the addresses of the suite.
func (g *Genesis) Contracts() Contracts { return g.contracts }

// Config returns the config the genesis was created from.
func (g *Genesis) Config() *Config { return g.config }

func mustEncodeInput(data []byte, err error) []byte {
	if err != nil {
		panic(err)
	}
	return data
}
