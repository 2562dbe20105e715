// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package huffman

import (
	"errors"

	"github.com/SnellerInc/huff/heap"
)

// ErrInsufficientSymbols is returned by Build when the
// frequency table holds fewer than 2 distinct symbols.
// Degenerate single-symbol trees are not supported.
var ErrInsufficientSymbols = errors.New("huffman: fewer than 2 distinct symbols")

// A Node is one node of a Huffman tree.
// Leaves carry a Symbol and have no children;
// internal nodes always have both children.
type Node struct {
	// Left and Right are the children of an
	// internal node; both are nil on a leaf.
	Left, Right *Node
	// Weight is the sum of the occurrence counts
	// of all symbols below this node.
	Weight uint64
	// Symbol is the symbol of a leaf node.
	// It is meaningless on internal nodes.
	Symbol byte
	// id is the creation order of this node;
	// it exists only to break weight ties
	// deterministically during construction.
	id int
}

// Leaf returns whether n is a leaf node.
func (n *Node) Leaf() bool { return n.Left == nil }

// ordering contract: weight ascending; on equal weight,
// two leaves compare by symbol value and every other
// pair by creation order
func less(x, y *Node) bool {
	if x.Weight != y.Weight {
		return x.Weight < y.Weight
	}
	if x.Leaf() && y.Leaf() {
		return x.Symbol < y.Symbol
	}
	return x.id < y.id
}

// Build constructs the Huffman tree for t and returns
// its root. Leaves are seeded in ascending symbol order
// so that identical tables always build identical trees;
// then the two lowest nodes under the less ordering are
// repeatedly merged, first-popped node on the left, until
// one root remains.
func Build(t FreqTable) (*Node, error) {
	if len(t) < 2 {
		return nil, ErrInsufficientSymbols
	}
	id := 0
	h := heap.New(len(t), less)
	for _, sym := range t.Symbols() {
		h.Push(&Node{Weight: t[sym], Symbol: sym, id: id})
		id++
	}
	for h.Len() > 1 {
		left := h.Pop()
		right := h.Pop()
		h.Push(&Node{
			Left:   left,
			Right:  right,
			Weight: left.Weight + right.Weight,
			id:     id,
		})
		id++
	}
	return h.Pop(), nil
}
