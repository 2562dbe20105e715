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

// Package bitstream packs ordered bit sequences into byte
// buffers and unpacks them again.
//
// Bits are laid out MSB-first: the first bit written lands in
// bit 7 of byte 0, the ninth bit in bit 7 of byte 1, and so on.
// A packed sequence is always paired with an explicit bit count;
// the unused low-order bits of a final partial byte are zero and
// are never part of the sequence.
package bitstream

// A Writer accumulates bits into a byte buffer.
// The zero value is an empty writer ready for use.
type Writer struct {
	buf  []byte
	cur  byte // partial byte; the top fill bits are valid
	fill uint // number of valid bits in cur (0..7)
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(bit bool) {
	if bit {
		w.cur |= 1 << (7 - w.fill)
	}
	w.fill++
	if w.fill == 8 {
		w.buf = append(w.buf, w.cur)
		w.cur, w.fill = 0, 0
	}
}

// WritePacked appends the first nbits bits of data,
// reading them in the same MSB-first order the Writer
// itself produces. Bits of data beyond nbits are ignored.
// WritePacked panics if nbits exceeds 8*len(data).
func (w *Writer) WritePacked(data []byte, nbits int) {
	if nbits > 8*len(data) {
		panic("bitstream: WritePacked count exceeds data")
	}
	if w.fill == 0 && nbits&7 == 0 {
		w.buf = append(w.buf, data[:nbits>>3]...)
		return
	}
	for nbits >= 8 {
		w.writeByte(data[0])
		data = data[1:]
		nbits -= 8
	}
	if nbits > 0 {
		w.writePartial(data[0], uint(nbits))
	}
}

// writeByte appends all 8 bits of b.
func (w *Writer) writeByte(b byte) {
	if w.fill == 0 {
		w.buf = append(w.buf, b)
		return
	}
	w.buf = append(w.buf, w.cur|b>>w.fill)
	w.cur = b << (8 - w.fill)
}

// writePartial appends the top n bits of b; 1 <= n <= 7.
func (w *Writer) writePartial(b byte, n uint) {
	b &= ^byte(0) << (8 - n)
	w.cur |= b >> w.fill
	if w.fill+n >= 8 {
		w.buf = append(w.buf, w.cur)
		w.cur = b << (8 - w.fill)
		w.fill = w.fill + n - 8
	} else {
		w.fill += n
	}
}

// Len returns the number of bits written so far.
func (w *Writer) Len() int {
	return len(w.buf)*8 + int(w.fill)
}

// Bytes returns the packed bytes, including a final
// zero-padded partial byte if Len is not a multiple of 8.
// The writer remains usable afterward; the returned slice
// is only valid until the next write.
func (w *Writer) Bytes() []byte {
	if w.fill == 0 {
		return w.buf
	}
	return append(w.buf[:len(w.buf):len(w.buf)], w.cur)
}

// Reset restores w to the empty state, retaining the
// underlying buffer for reuse.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.cur, w.fill = 0, 0
}
