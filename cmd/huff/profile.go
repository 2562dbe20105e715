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

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// a profile supplies defaults for flags the user
// did not set explicitly
type profile struct {
	// Algo is the default compression algorithm.
	Algo string `json:"algo,omitempty"`
	// Verbose turns on run logging.
	Verbose bool `json:"verbose,omitempty"`
}

// just pick an upper limit to prevent DoS
const maxProfileSize = 1024 * 1024

// decodeProfile decodes a profile from buf based on
// the file extension: .yaml/.yml profiles pass through
// the YAML-to-JSON bridge, everything else is JSON
func decodeProfile(buf []byte, ext string) (*profile, error) {
	p := new(profile)
	var err error
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(buf, p)
	default:
		err = json.Unmarshal(buf, p)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func loadProfile(path string) (*profile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxProfileSize {
		return nil, fmt.Errorf("profile %s is unreasonably large (%d bytes)", path, info.Size())
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeProfile(buf, filepath.Ext(path))
}

// applyProfile folds -profile values into the flag
// variables; explicitly set flags win
func applyProfile() {
	if dashprofile == "" {
		return
	}
	p, err := loadProfile(dashprofile)
	if err != nil {
		exitf("%s\n", err)
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	if p.Algo != "" && !set["algo"] {
		dashalgo = p.Algo
	}
	if p.Verbose && !set["v"] {
		dashv = true
	}
}
