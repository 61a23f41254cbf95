// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package config holds the configuration of a whole train and test run,
loaded from a TOML or YAML file. Fields not set in the file keep their
default values.
*/
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/emer/htm/rules"
	"github.com/emer/htm/sensor"
	"github.com/emer/htm/tiled"
	"gopkg.in/yaml.v3"
)

// GaborConfig are the gabor filter settings
type GaborConfig struct {
	On      bool `toml:"on" yaml:"on" desc:"apply a gabor filter to sensor outputs"`
	Size    int  `toml:"size" yaml:"size" def:"6" desc:"filter size in cells"`
	Spacing int  `toml:"spacing" yaml:"spacing" def:"2" desc:"spacing between filter positions in cells"`
}

// OutputConfig are the output settings
type OutputConfig struct {
	Dir     string          `toml:"dir" yaml:"dir" def:"out" desc:"folder for logs and bitmaps"`
	Bitmaps bool            `toml:"bitmaps" yaml:"bitmaps" desc:"write sensor outputs as bitmaps"`
	Events  []sensor.Events `toml:"events" yaml:"events" desc:"sensor events written as bitmaps -- all if empty"`
	Timers  bool            `toml:"timers" yaml:"timers" def:"true" desc:"print layer timer and size reports"`
}

// Config is the configuration of a run
type Config struct {
	TrainDir string        `toml:"train_dir" yaml:"train_dir" desc:"training folder"`
	TestDirs []string      `toml:"test_dirs" yaml:"test_dirs" desc:"test folders"`
	Sensor   sensor.Params `toml:"sensor" yaml:"sensor" desc:"sensor parameters"`
	Layer    tiled.Params  `toml:"layer" yaml:"layer" desc:"layer parameters"`
	Gabor    GaborConfig   `toml:"gabor" yaml:"gabor" desc:"gabor filter"`
	Thr      float32       `toml:"thr" yaml:"thr" desc:"if > 0, threshold filter applied after other filters"`
	Output   OutputConfig  `toml:"output" yaml:"output" desc:"output settings"`
}

func (cf *Config) Defaults() {
	cf.TrainDir = ""
	cf.TestDirs = nil
	cf.Sensor.Defaults()
	cf.Layer.Defaults()
	cf.Gabor.On = false
	cf.Gabor.Size = 6
	cf.Gabor.Spacing = 2
	cf.Thr = 0
	cf.Output.Dir = "out"
	cf.Output.Bitmaps = false
	cf.Output.Events = nil
	cf.Output.Timers = true
}

// Update must be called after any changes to parameters
func (cf *Config) Update() {
	cf.Sensor.Update()
	cf.Layer.Update()
}

// Validate checks that the configuration can be run
func (cf *Config) Validate() error {
	if cf.TrainDir == "" {
		return rules.Preconditionf("Config.Validate", "no training folder set")
	}
	if len(cf.TestDirs) == 0 {
		return rules.Preconditionf("Config.Validate", "no test folder set")
	}
	if cf.Gabor.On && (cf.Gabor.Size < 1 || cf.Gabor.Spacing < 1) {
		return rules.Preconditionf("Config.Validate", "gabor size %d and spacing %d must be positive", cf.Gabor.Size, cf.Gabor.Spacing)
	}
	return nil
}

// Load returns the defaults overridden by the file, which is read as
// TOML or YAML according to its extension
func Load(fn string) (*Config, error) {
	cf := &Config{}
	cf.Defaults()
	var err error
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".toml":
		_, err = toml.DecodeFile(fn, cf)
	case ".yaml", ".yml":
		var b []byte
		b, err = os.ReadFile(fn)
		if err == nil {
			err = yaml.Unmarshal(b, cf)
		}
	default:
		return nil, rules.Preconditionf("config.Load", "unknown config file type: %s", fn)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, rules.NotFoundErr("config.Load", "config file "+fn, err)
		}
		return nil, err
	}
	cf.Update()
	return cf, nil
}
