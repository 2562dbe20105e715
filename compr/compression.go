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

// Package compr provides a unified interface over the
// supported compression algorithms: the native huffman
// container plus zstd and s2 from third-party libraries.
package compr

import (
	"bytes"
	"runtime"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"

	"github.com/SnellerInc/huff"
	"github.com/SnellerInc/huff/huffman"
)

// Compressor compresses whole buffers.
type Compressor interface {
	// Name is the name of the compression algorithm.
	Name() string
	// Compress appends the compressed contents
	// of src to dst and returns the result.
	Compress(src, dst []byte) ([]byte, error)
}

// Decompressor decompresses whole buffers.
type Decompressor interface {
	// Name is the name of the compression algorithm.
	// See also Compressor.Name.
	Name() string
	// Decompress appends the decompressed contents
	// of src to dst and returns the result.
	//
	// It must be safe to make multiple calls to
	// Decompress simultaneously from different
	// goroutines.
	Decompress(src, dst []byte) ([]byte, error)
}

type huffCompressor struct{}

func (huffCompressor) Name() string { return "huffman" }

func (huffCompressor) Compress(src, dst []byte) ([]byte, error) {
	return huff.Compress(src, dst)
}

// all huffman decompression shares one tree cache so
// that batches of containers with the same symbol
// distribution build their tree once
var huffTrees = new(huffman.TreeCache)

type huffDecompressor struct{}

func (huffDecompressor) Name() string { return "huffman" }

func (huffDecompressor) Decompress(src, dst []byte) ([]byte, error) {
	d := huff.Decoder{Cache: huffTrees}
	return d.Decompress(src, dst)
}

type zstdCompressor struct {
	enc *zstd.Encoder
}

func (z zstdCompressor) Name() string { return "zstd" }

func (z zstdCompressor) Compress(src, dst []byte) ([]byte, error) {
	return z.enc.EncodeAll(src, dst), nil
}

var (
	zstdDecoder     *zstd.Decoder
	zstdFastDecoder *zstd.Decoder
)

func init() {
	// by default, concurrency is set to min(4, GOMAXPROCS);
	// we'd like it to *always* be GOMAXPROCS
	z, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(runtime.GOMAXPROCS(0)))
	if err != nil {
		panic(err)
	}
	zstdDecoder = z
	z, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(runtime.GOMAXPROCS(0)),
		zstd.IgnoreChecksum(true))
	if err != nil {
		panic(err)
	}
	zstdFastDecoder = z
}

type zstdDecompressor zstd.Decoder

func (z *zstdDecompressor) Name() string { return "zstd" }

func (z *zstdDecompressor) Decompress(src, dst []byte) ([]byte, error) {
	return (*zstd.Decoder)(z).DecodeAll(src, dst)
}

// s2 entries use the framed stream format rather than
// raw blocks so that Detect has a magic chunk to sniff
type s2Compressor struct{}

func (s2Compressor) Name() string { return "s2" }

func (s2Compressor) Compress(src, dst []byte) ([]byte, error) {
	out := bytes.NewBuffer(dst)
	w := s2.NewWriter(out)
	if _, err := w.Write(src); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (s2Compressor) Decompress(src, dst []byte) ([]byte, error) {
	out := bytes.NewBuffer(dst)
	if _, err := out.ReadFrom(s2.NewReader(bytes.NewReader(src))); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Compression selects a compression algorithm by name.
// The returned Compressor will return the same value
// for Compressor.Name as the specified name.
// Unknown names yield nil.
func Compression(name string) Compressor {
	switch name {
	case "huffman":
		return huffCompressor{}
	case "zstd-better":
		z, _ := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
			zstd.WithEncoderConcurrency(1))
		return zstdCompressor{z}
	case "zstd":
		z, _ := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
		return zstdCompressor{z}
	case "s2":
		return s2Compressor{}
	default:
		return nil
	}
}

// Decompression selects a decompression algorithm by
// name. Unknown names yield nil.
func Decompression(name string) Decompressor {
	switch name {
	case "huffman":
		return huffDecompressor{}
	case "zstd":
		return (*zstdDecompressor)(zstdDecoder)
	case "zstd-nocrc":
		return (*zstdDecompressor)(zstdFastDecoder)
	case "s2":
		return s2Compressor{}
	default:
		return nil
	}
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	// stream identifier chunk shared by the s2 and
	// snappy framing formats
	s2Magic = []byte{0xff, 0x06, 0x00, 0x00}
)

// Detect returns the name of the algorithm that
// produced buf, based on its leading magic bytes,
// or "" if no supported algorithm matches.
// The result, when not empty, is a valid argument
// to Decompression.
func Detect(buf []byte) string {
	switch {
	case bytes.HasPrefix(buf, []byte(huff.Magic)):
		return "huffman"
	case bytes.HasPrefix(buf, zstdMagic):
		return "zstd"
	case bytes.HasPrefix(buf, s2Magic):
		return "s2"
	default:
		return ""
	}
}
