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

package huff

import "github.com/SnellerInc/huff/huffman"

// SymbolInfo describes one symbol of a container's
// frequency table and the prefix code it implies.
type SymbolInfo struct {
	Symbol byte
	Count  uint64
	Code   string // '0'/'1' characters, root to leaf
}

// Info is the metadata of a parsed container.
type Info struct {
	// Version is the container format version.
	Version int
	// OriginalLength is the decoded byte count.
	OriginalLength uint64
	// PackedBits is the number of meaningful
	// payload bits.
	PackedBits uint64
	// ContainerBytes is the total container size.
	ContainerBytes int
	// HeaderBytes is the container size minus the
	// payload: table, lengths, framing, checksum.
	HeaderBytes int
	// Symbols lists the table entries in ascending
	// symbol order along with their codes.
	Symbols []SymbolInfo
}

// Describe parses the container in src and reports its
// metadata without decoding the payload. The reported
// codes are derived by rebuilding the container's tree,
// so Describe also validates that the stored table is
// buildable.
func Describe(src []byte) (*Info, error) {
	c, err := parseContainer(src)
	if err != nil {
		return nil, err
	}
	root, err := huffman.Build(c.table)
	if err != nil {
		return nil, corruptf("rebuilding tree: %s", err)
	}
	codes := huffman.Codes(root)
	info := &Info{
		Version:        containerVersion,
		OriginalLength: c.origLen,
		PackedBits:     c.nbits,
		ContainerBytes: len(src),
		HeaderBytes:    len(src) - len(c.payload),
		Symbols:        make([]SymbolInfo, 0, len(c.table)),
	}
	for _, sym := range c.table.Symbols() {
		info.Symbols = append(info.Symbols, SymbolInfo{
			Symbol: sym,
			Count:  c.table[sym],
			Code:   codes[sym].String(),
		})
	}
	return info, nil
}
