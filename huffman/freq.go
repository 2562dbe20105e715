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

// Package huffman implements deterministic Huffman
// tree construction and prefix code generation over
// byte symbols.
//
// Tree construction is a pure function of the frequency
// table: two tables with identical contents always yield
// identical trees, regardless of map iteration order.
// That property is what lets a decoder rebuild the
// encoder's tree from a stored table.
package huffman

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FreqTable counts symbol occurrences.
// Symbols that do not occur are absent from
// the table, never present with a zero count.
type FreqTable map[byte]uint64

// Count tabulates the occurrence counts of src.
func Count(src []byte) FreqTable {
	var counts [256]uint64
	for _, b := range src {
		counts[b]++
	}
	t := make(FreqTable)
	for sym, n := range counts {
		if n > 0 {
			t[byte(sym)] = n
		}
	}
	return t
}

// Symbols returns the table's symbols in ascending order.
func (t FreqTable) Symbols() []byte {
	syms := maps.Keys(t)
	slices.Sort(syms)
	return syms
}

// Total returns the sum of all counts in the table,
// or ok=false if the sum overflows.
func (t FreqTable) Total() (total uint64, ok bool) {
	for _, n := range t {
		if total+n < total {
			return 0, false
		}
		total += n
	}
	return total, true
}
