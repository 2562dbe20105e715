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

// Package huff compresses and decompresses byte buffers
// with Huffman coding.
//
// Compress emits a self-describing container holding the
// symbol frequency table, the packed bitstream, and the
// original length; Decompress rebuilds the encoder's tree
// from the stored table and walks it bit by bit to
// recover the original bytes. Compression is
// deterministic: equal inputs always produce
// byte-identical containers.
//
// Both operations work on whole in-memory buffers and
// either fully succeed or fail without output; there is
// no streaming mode.
package huff

import (
	"github.com/SnellerInc/huff/bitstream"
	"github.com/SnellerInc/huff/huffman"
)

// Compress appends a compressed container holding src
// to dst and returns the extended buffer. Inputs with
// fewer than 2 distinct byte values are refused with
// ErrInsufficientSymbols.
func Compress(src, dst []byte) ([]byte, error) {
	var e Encoder
	return e.Compress(src, dst)
}

// Decompress appends the decoded contents of the
// container in src to dst and returns the extended
// buffer. src must hold exactly one container.
// Structural violations are reported as ErrCorrupt
// and produce no output.
func Decompress(src, dst []byte) ([]byte, error) {
	var d Decoder
	return d.Decompress(src, dst)
}

// An Encoder compresses buffers. The zero value is
// ready for use; reusing one Encoder across calls
// reuses its internal scratch space.
type Encoder struct {
	bw bitstream.Writer
}

// Compress appends a compressed container holding src
// to dst. See the package-level Compress.
func (e *Encoder) Compress(src, dst []byte) ([]byte, error) {
	table := huffman.Count(src)
	root, err := huffman.Build(table)
	if err != nil {
		return nil, err
	}
	codes := huffman.Codes(root)
	e.bw.Reset()
	for _, b := range src {
		c := &codes[b]
		e.bw.WritePacked(c.Bits, c.Len)
	}
	return appendContainer(dst, table, table.Symbols(),
		uint64(len(src)), uint64(e.bw.Len()), e.bw.Bytes()), nil
}

// A Decoder decompresses containers. The zero value is
// ready for use. Setting Cache lets the decoder skip
// tree construction for containers whose frequency
// tables it has decoded before.
type Decoder struct {
	// Cache, if non-nil, memoizes built trees
	// across Decompress calls.
	Cache *huffman.TreeCache

	br bitstream.Reader
}

// Decompress appends the decoded contents of the
// container in src to dst. See the package-level
// Decompress.
func (d *Decoder) Decompress(src, dst []byte) ([]byte, error) {
	c, err := parseContainer(src)
	if err != nil {
		return nil, err
	}
	var root *huffman.Node
	if d.Cache != nil {
		root, err = d.Cache.Build(c.table)
	} else {
		root, err = huffman.Build(c.table)
	}
	if err != nil {
		// unreachable: parseContainer enforces >= 2 symbols
		return nil, corruptf("rebuilding tree: %s", err)
	}
	d.br.Reset(c.payload, int(c.nbits))
	out := dst
	for decoded := uint64(0); decoded < c.origLen; decoded++ {
		n := root
		for !n.Leaf() {
			bit, err := d.br.Next()
			if err != nil {
				return nil, corruptf("bitstream exhausted after %d of %d symbols", decoded, c.origLen)
			}
			if bit {
				n = n.Right
			} else {
				n = n.Left
			}
		}
		out = append(out, n.Symbol)
	}
	if rem := d.br.Remaining(); rem != 0 {
		return nil, corruptf("%d trailing bits after the last symbol", rem)
	}
	return out, nil
}
