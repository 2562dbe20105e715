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

import "strings"

// A Code is the prefix code assigned to one symbol:
// Len bits packed MSB-first into Bits, with zero
// padding in the final byte. The zero Code means
// no code was assigned.
type Code struct {
	Bits []byte
	Len  int
}

// String returns the code as a string of '0' and '1'
// characters in traversal order.
func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(c.Len)
	for i := 0; i < c.Len; i++ {
		if c.Bits[i>>3]&(0x80>>(i&7)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// A CodeTable maps each symbol to its prefix code.
// Symbols absent from the source table have a zero
// (Len 0) entry.
type CodeTable [256]Code

// Codes walks the tree rooted at root and returns the
// code table it implies: descending left appends a 0
// bit, descending right a 1 bit, and each leaf records
// the accumulated path as its symbol's code. The codes
// are prefix-free by construction, and every leaf gets
// a non-empty code since Build never yields a bare
// leaf root.
func Codes(root *Node) *CodeTable {
	tab := new(CodeTable)
	// the deepest possible tree has 256 leaves and
	// one leaf per level, so paths fit in 255 bits
	var path [32]byte
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n.Leaf() {
			nb := (depth + 7) / 8
			bits := append([]byte(nil), path[:nb]...)
			if depth&7 != 0 {
				// clear stale bits below the path
				bits[nb-1] &= 0xff << (8 - depth&7)
			}
			tab[n.Symbol] = Code{Bits: bits, Len: depth}
			return
		}
		mask := byte(0x80) >> (depth & 7)
		path[depth>>3] &^= mask
		walk(n.Left, depth+1)
		path[depth>>3] |= mask
		walk(n.Right, depth+1)
	}
	walk(root, 0)
	return tab
}
