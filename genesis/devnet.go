// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/umbrella-network/umbledger/umb"
)

// DevAccount account for development.
type DevAccount struct {
	Address    umb.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns the well known accounts of the development config.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{umb.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// DevConfig returns the development config: the first dev account deploys, the next
// three own the multisig with powers 5, 3 and 1, and the last one holds a vesting schedule.
func DevConfig() *Config {
	accs := DevAccounts()
	launchTime := uint64(1609459200) // 2021-01-01T00:00:00Z

	return &Config{
		LaunchTime: launchTime,
		Deployer:   accs[0].Address,
		MultiSig: MultiSigConfig{
			Owners: []Owner{
				{accs[1].Address, 5},
				{accs[2].Address, 3},
				{accs[3].Address, 1},
			},
			RequiredPower: 5,
		},
		UMB: TokenConfig{
			Name:                  "Umbrella",
			Symbol:                "UMB",
			InitialHolder:         accs[0].Address,
			InitialBalance:        Ether(150_000_000),
			MaxAllowedTotalSupply: Ether(500_000_000),
		},
		RUMB: RUMBConfig{
			TokenConfig: TokenConfig{
				Name:                  "rUmbrella",
				Symbol:                "rUMB",
				InitialHolder:         accs[0].Address,
				InitialBalance:        Ether(0),
				MaxAllowedTotalSupply: Ether(500_000_000),
			},
			SwapDuration: 6 * umb.OneMonth,
		},
		Farming: FarmingConfig{
			TokenAmountForDeFiRewards: Ether(123_000),
		},
		Rewards: RewardsConfig{
			Data: []Participant{
				{Address: accs[4].Address, Amount: Ether(12), Duration: umb.OneMonth},
			},
		},
	}
}
