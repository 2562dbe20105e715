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

package bitstream

import (
	"fmt"
	"io"
)

// A Reader consumes the bits of a packed sequence one
// at a time, in the same MSB-first order a Writer
// produces them. The zero value reads an empty sequence.
type Reader struct {
	buf   []byte
	nbits int
	pos   int
}

// Reset makes r read nbits bits from buf, starting
// at the first (most-significant) bit of buf[0].
// Reset panics if buf is too short to hold nbits bits.
func (r *Reader) Reset(buf []byte, nbits int) {
	if nbits > 8*len(buf) {
		panic(fmt.Sprintf("bitstream: Reset with %d bits in %d bytes", nbits, len(buf)))
	}
	r.buf = buf
	r.nbits = nbits
	r.pos = 0
}

// Next returns the next bit in the sequence.
// Once all nbits bits have been consumed, Next
// returns io.ErrUnexpectedEOF.
func (r *Reader) Next() (bool, error) {
	if r.pos >= r.nbits {
		return false, io.ErrUnexpectedEOF
	}
	bit := r.buf[r.pos>>3]&(0x80>>(r.pos&7)) != 0
	r.pos++
	return bit, nil
}

// Remaining returns the number of bits not yet consumed.
func (r *Reader) Remaining() int {
	return r.nbits - r.pos
}

// Rewind moves r back to the first bit of the sequence.
func (r *Reader) Rewind() {
	r.pos = 0
}
