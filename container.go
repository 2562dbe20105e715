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

import (
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/SnellerInc/huff/huffman"
)

// container layout:
//
//	magic "HUF1" (4 bytes)
//	version (1 byte)
//	symbol count N (uvarint, 2..256)
//	N entries: symbol (1 byte) + count (uvarint, >= 1),
//	           symbols strictly ascending
//	original length (uvarint) = sum of all counts
//	packed bit count (uvarint)
//	payload, exactly (bits+7)/8 bytes, MSB-first,
//	         zero padding in the final byte
//	blake2b-256 of everything above (32 bytes)
//
// integers wider than one byte are big-endian 7-bit
// uvarints with the continuation style used by ion:
// all bytes but the last have bit 7 clear, the last
// has it set

// Magic is the 4-byte prefix of every container.
const Magic = "HUF1"

const (
	containerVersion = 0x01
	checksumSize     = blake2b.Size256

	// magic + version + symbol count + 2 minimal
	// table entries + two lengths + checksum
	minContainerSize = 4 + 1 + 1 + 2*2 + 1 + 1 + checksumSize
)

// appendUvarint appends u as a big-endian
// continuation-bit uvarint.
func appendUvarint(dst []byte, u uint64) []byte {
	nb := 1
	for v := u >> 7; v != 0; v >>= 7 {
		nb++
	}
	for i := nb - 1; i > 0; i-- {
		dst = append(dst, byte(u>>(7*uint(i)))&0x7f)
	}
	return append(dst, byte(u&0x7f)|0x80)
}

// readUvarint decodes a uvarint from the front of msg
// and returns the remaining bytes. Encodings longer
// than 9 bytes (63 bits) are rejected.
func readUvarint(msg []byte) (uint64, []byte, bool) {
	out := uint64(0)
	prefix := msg
	if len(prefix) > 9 {
		prefix = prefix[:9]
	}
	for i := range prefix {
		out = out<<7 | uint64(prefix[i]&0x7f)
		if prefix[i]&0x80 != 0 {
			return out, msg[i+1:], true
		}
	}
	return 0, nil, false
}

type container struct {
	table   huffman.FreqTable
	origLen uint64
	nbits   uint64
	payload []byte
}

// appendContainer appends the serialized container to dst.
// syms must be table's symbols in ascending order.
func appendContainer(dst []byte, table huffman.FreqTable, syms []byte, origLen, nbits uint64, payload []byte) []byte {
	base := len(dst)
	dst = append(dst, Magic...)
	dst = append(dst, containerVersion)
	dst = appendUvarint(dst, uint64(len(syms)))
	for _, sym := range syms {
		dst = append(dst, sym)
		dst = appendUvarint(dst, table[sym])
	}
	dst = appendUvarint(dst, origLen)
	dst = appendUvarint(dst, nbits)
	dst = append(dst, payload...)
	sum := blake2b.Sum256(dst[base:])
	return append(dst, sum[:]...)
}

func corruptf(f string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(f, args...))
}

// parseContainer validates and decodes src, which must
// contain exactly one container and nothing else.
func parseContainer(src []byte) (*container, error) {
	if len(src) < minContainerSize {
		return nil, corruptf("%d bytes is below the minimum container size", len(src))
	}
	// checksum first: every later diagnostic can
	// then trust the bytes it is looking at
	body := src[:len(src)-checksumSize]
	want := src[len(src)-checksumSize:]
	sum := blake2b.Sum256(body)
	if string(sum[:]) != string(want) {
		return nil, corruptf("checksum mismatch")
	}
	if string(body[:4]) != Magic {
		return nil, corruptf("bad magic % x", body[:4])
	}
	if body[4] != containerVersion {
		return nil, corruptf("unsupported version %d", body[4])
	}
	rest := body[5:]
	nsyms, rest, ok := readUvarint(rest)
	if !ok {
		return nil, corruptf("truncated symbol count")
	}
	if nsyms < 2 || nsyms > 256 {
		return nil, corruptf("symbol count %d out of range", nsyms)
	}
	table := make(huffman.FreqTable, nsyms)
	var sum64 uint64
	prev := -1
	for i := uint64(0); i < nsyms; i++ {
		if len(rest) == 0 {
			return nil, corruptf("truncated symbol table")
		}
		sym := rest[0]
		if int(sym) <= prev {
			return nil, corruptf("symbol %#x out of order", sym)
		}
		prev = int(sym)
		var count uint64
		count, rest, ok = readUvarint(rest[1:])
		if !ok {
			return nil, corruptf("truncated count for symbol %#x", sym)
		}
		if count == 0 {
			return nil, corruptf("zero count for symbol %#x", sym)
		}
		if sum64+count < sum64 {
			return nil, corruptf("count sum overflows")
		}
		sum64 += count
		table[sym] = count
	}
	origLen, rest, ok := readUvarint(rest)
	if !ok {
		return nil, corruptf("truncated original length")
	}
	if origLen != sum64 {
		return nil, corruptf("original length %d does not match count sum %d", origLen, sum64)
	}
	nbits, rest, ok := readUvarint(rest)
	if !ok {
		return nil, corruptf("truncated bit count")
	}
	if nbits > uint64(len(rest))*8 {
		return nil, corruptf("bit count %d exceeds payload", nbits)
	}
	nbytes := (nbits + 7) / 8
	if uint64(len(rest)) != nbytes {
		return nil, corruptf("payload is %d bytes, want %d for %d bits", len(rest), nbytes, nbits)
	}
	if nbits&7 != 0 {
		if pad := rest[len(rest)-1] & (0xff >> (nbits & 7)); pad != 0 {
			return nil, corruptf("nonzero padding bits %#x", pad)
		}
	}
	return &container{
		table:   table,
		origLen: origLen,
		nbits:   nbits,
		payload: rest,
	}, nil
}
