// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/umbrella-network/umbledger/umb"
)

// Config describes the contract suite deployed at genesis.
type Config struct {
	LaunchTime uint64         `yaml:"launchTime"`
	Deployer   umb.Address    `yaml:"deployer"`
	MultiSig   MultiSigConfig `yaml:"multiSig"`
	UMB        TokenConfig    `yaml:"umb"`
	RUMB       RUMBConfig     `yaml:"rUmb"`
	Farming    FarmingConfig  `yaml:"farming"`
	Rewards    RewardsConfig  `yaml:"rewards"`
}

type Owner struct {
	Address umb.Address `yaml:"address"`
	Power   uint64      `yaml:"power"`
}

type MultiSigConfig struct {
	Owners        []Owner `yaml:"owners"`
	RequiredPower uint64  `yaml:"requiredPower"`
	// MaxOwners bounds the owner table, defaults to umb.DefaultMaxOwners.
	MaxOwners uint64 `yaml:"maxOwners"`
}

type TokenConfig struct {
	Name                  string      `yaml:"name"`
	Symbol                string      `yaml:"symbol"`
	InitialHolder         umb.Address `yaml:"initialHolder"`
	InitialBalance        *Amount     `yaml:"initialBalance"`
	MaxAllowedTotalSupply *Amount     `yaml:"maxAllowedTotalSupply"`
}

type RUMBConfig struct {
	TokenConfig  `yaml:",inline"`
	SwapDuration uint64 `yaml:"swapDuration"`
}

type FarmingConfig struct {
	// RewardsDistribution may notify rewards, defaults to the multisig.
	RewardsDistribution *umb.Address `yaml:"rewardsDistribution"`
	// TokenAmountForDeFiRewards of rUMB is minted to the farm and notified at launch.
	TokenAmountForDeFiRewards *Amount `yaml:"tokenAmountForDeFiRewards"`
}

type Participant struct {
	Address  umb.Address `yaml:"participant"`
	Amount   *Amount     `yaml:"amount"`
	Duration uint64      `yaml:"duration"`
	Bulk     uint64      `yaml:"bulk"`
}

type RewardsConfig struct {
	// StartTime of the distribution, defaults to the launch time.
	StartTime uint64        `yaml:"startTime"`
	Data      []Participant `yaml:"data"`
}

// LoadConfig reads a yaml config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a yaml config.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode genesis config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal encodes the config as yaml.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks what the contracts cannot check for themselves before the first call.
func (c *Config) Validate() error {
	if c.Deployer.IsZero() {
		return errors.New("deployer must be set")
	}
	if len(c.MultiSig.Owners) == 0 {
		return errors.New("at least one multisig owner")
	}
	if c.UMB.MaxAllowedTotalSupply.Big().Sign() == 0 {
		return errors.New("umb: maxAllowedTotalSupply must be set")
	}
	if c.RUMB.MaxAllowedTotalSupply.Big().Sign() == 0 {
		return errors.New("rUmb: maxAllowedTotalSupply must be set")
	}
	for _, p := range c.Rewards.Data {
		if p.Address.IsZero() {
			return errors.New("rewards: participant must be set")
		}
		if p.Amount.Big().Sign() == 0 {
			return fmt.Errorf("rewards: %s: amount must be a non-zero integer", p.Address)
		}
	}
	return nil
}
