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
	"errors"

	"github.com/SnellerInc/huff/huffman"
)

// ErrInsufficientSymbols is returned by Compress when
// the input holds fewer than 2 distinct byte values;
// such inputs have no Huffman tree and are refused
// rather than special-cased.
var ErrInsufficientSymbols = huffman.ErrInsufficientSymbols

// ErrCorrupt is returned by Decompress and Describe
// when the input is not a structurally valid container.
// Use errors.Is to match it; the returned error wraps
// ErrCorrupt with the specific violation.
var ErrCorrupt = errors.New("huff: corrupt container")
