// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package merkle implements the sorted Merkle tree proving airdrop membership.
//
// Leaves are the keccak256 hashes of 20-byte addresses, sorted ascending. Every
// pair is hashed with its two elements in ascending order, so a proof is a plain
// list of siblings and carries no left/right directions.
package merkle

import (
	"bytes"
	"errors"
	"slices"

	"github.com/umbrella-network/umbledger/umb"
)

var ErrLeafNotFound = errors.New("merkle: leaf not found")

// Proof lists the siblings of a leaf, from the leaf level up to just below the root.
type Proof []umb.Bytes32

// Strings returns the 0x-prefixed hex form of every element.
func (p Proof) Strings() []string {
	out := make([]string, 0, len(p))
	for _, h := range p {
		out = append(out, h.String())
	}
	return out
}

// Tree is an immutable sorted Merkle tree.
type Tree struct {
	layers [][]umb.Bytes32
	size   int
}

// HashLeaf returns the leaf hash of addr.
func HashLeaf(addr umb.Address) umb.Bytes32 {
	return umb.Keccak256(addr[:])
}

// HashPair hashes two nodes in ascending order.
func HashPair(a, b umb.Bytes32) umb.Bytes32 {
	if b.Less(a) {
		a, b = b, a
	}
	return umb.Keccak256(a[:], b[:])
}

func compare(a, b umb.Bytes32) int {
	return bytes.Compare(a[:], b[:])
}

// New builds the tree of addrs. Duplicates are kept as distinct leaves.
func New(addrs []umb.Address) *Tree {
	if len(addrs) == 0 {
		// a single empty element stands for the missing root
		return &Tree{layers: [][]umb.Bytes32{{{}}}}
	}

	leaves := make([]umb.Bytes32, 0, len(addrs))
	for _, addr := range addrs {
		leaves = append(leaves, HashLeaf(addr))
	}
	slices.SortFunc(leaves, compare)

	layers := [][]umb.Bytes32{leaves}
	for top := leaves; len(top) > 1; top = layers[len(layers)-1] {
		layers = append(layers, nextLayer(top))
	}
	return &Tree{layers: layers, size: len(addrs)}
}

// nextLayer hashes adjacent pairs. An odd last element is carried up unchanged.
func nextLayer(elements []umb.Bytes32) []umb.Bytes32 {
	next := make([]umb.Bytes32, 0, (len(elements)+1)/2)
	for i := 1; i <= len(elements); i += 2 {
		if i < len(elements) {
			next = append(next, HashPair(elements[i-1], elements[i]))
		} else {
			next = append(next, elements[i-1])
		}
	}
	return next
}

// Len returns the number of leaves.
func (t *Tree) Len() int {
	return t.size
}

// Root returns the root hash, which is zero for an empty tree.
func (t *Tree) Root() umb.Bytes32 {
	return t.layers[len(t.layers)-1][0]
}

// Layers returns a copy of every layer, leaves first.
func (t *Tree) Layers() [][]umb.Bytes32 {
	out := make([][]umb.Bytes32, 0, len(t.layers))
	for _, layer := range t.layers {
		out = append(out, slices.Clone(layer))
	}
	return out
}

// Leaf returns the index of the leaf of addr in the bottom layer.
func (t *Tree) Leaf(addr umb.Address) (int, bool) {
	if t.size == 0 {
		return 0, false
	}
	return slices.BinarySearchFunc(t.layers[0], HashLeaf(addr), compare)
}

// Proof returns the inclusion proof of addr.
func (t *Tree) Proof(addr umb.Address) (Proof, error) {
	idx, found := t.Leaf(addr)
	if !found {
		return nil, ErrLeafNotFound
	}

	proof := make(Proof, 0, len(t.layers)-1)
	for _, layer := range t.layers[:len(t.layers)-1] {
		sibling := idx + 1
		if idx%2 == 1 {
			sibling = idx - 1
		}
		// a carried element has no sibling at this level
		if sibling < len(layer) {
			proof = append(proof, layer[sibling])
		}
		idx /= 2
	}
	return proof, nil
}

// VerifyProof reports whether proof links addr to root.
func VerifyProof(proof Proof, root umb.Bytes32, addr umb.Address) bool {
	computed := HashLeaf(addr)
	for _, element := range proof {
		computed = HashPair(computed, element)
	}
	return computed == root
}
