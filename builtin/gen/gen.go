// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package gen embeds the ABI descriptions of the native contracts.
package gen

import (
	"embed"
	"path"
	"sort"
	"strings"
)

//go:embed compiled
var fs embed.FS

// MustABI returns the ABI JSON of the named contract, e.g. "UMB".
func MustABI(name string) []byte {
	data, err := fs.ReadFile(path.Join("compiled", name+".abi"))
	if err != nil {
		panic(err)
	}
	return data
}

// Names lists the embedded contract names.
func Names() []string {
	entries, err := fs.ReadDir("compiled")
	if err != nil {
		panic(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".abi"))
	}
	sort.Strings(names)
	return names
}
