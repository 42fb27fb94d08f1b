// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"reflect"

	"github.com/goschtalt/casemapper"
	"github.com/goschtalt/goschtalt"
	"github.com/mitchellh/mapstructure"
	"github.com/schmidtw/soundicus-maximus/dial"
	"github.com/schmidtw/soundicus-maximus/httpserver"
	"github.com/schmidtw/soundicus-maximus/passthrough"
	"github.com/schmidtw/soundicus-maximus/units"
	"github.com/schmidtw/soundicus-maximus/wm8960"
	"github.com/xmidt-org/sallust"

	// Register the yaml codecs with goschtalt.
	_ "github.com/goschtalt/yaml-decoder"
	_ "github.com/goschtalt/yaml-encoder"
)

// Config is the full daemon configuration, assembled from the yaml
// file named on the command line.
type Config struct {
	Codec       wm8960.Config
	Audio       AudioConfig
	Passthrough passthrough.Config
	Dial        dial.Config
	Metrics     httpserver.Config
	Logging     sallust.Config
}

// AudioConfig holds the values poured into the codec at bring-up.
type AudioConfig struct {
	// HeadphoneVolume is the HP_L/HP_R amplifier volume.  Anything
	// below -73.5dB mutes the output.
	HeadphoneVolume units.Decibel

	// SpeakerVolume is the class D amplifier volume.
	SpeakerVolume units.Decibel

	// Speakers enables the class D speaker outputs in addition to the
	// headphone amplifier.
	Speakers bool

	// MicBoost is the PGA boost ahead of the boost mixer in dB.  Only
	// 0, 13, 20 and 29 exist in the chip.
	MicBoost int

	ALC ALCConfig
}

// ALCConfig holds the automatic level control parameters.  The ALC
// itself runs inside the chip; these only pick its operating point.
type ALCConfig struct {
	// Mode is one of off, left, right or stereo.
	Mode string

	// Target is the initial ALC target level, 0-15.  The dial takes
	// over once the daemon is running.
	Target uint8

	// Attack and Decay are the gain ramp rates, 0-10.
	Attack uint8
	Decay  uint8

	// Hold is the delay before decay starts, 0-15.
	Hold uint8

	// MaxGain and MinGain bound the PGA sweep, 0-7.
	MaxGain uint8
	MinGain uint8

	PeakLimiter bool

	NoiseGate bool

	// NoiseGateThreshold is 0-31.
	NoiseGateThreshold uint8
}

// gather builds the goschtalt config tree from the file.
func gather(file string) (*goschtalt.Config, error) {
	dir, base := filepath.Split(file)
	if len(dir) == 0 {
		dir = "."
	}

	return goschtalt.New(
		goschtalt.AutoCompile(),
		goschtalt.AddFile(os.DirFS(dir), base),
		goschtalt.DefaultUnmarshalOptions(
			casemapper.ConfigStoredAs("two_words"),
			goschtalt.DecodeHook(mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				decibelHook(),
			)),
		),
	)
}

// load resolves the configuration file into a Config.
func load(file string) (Config, error) {
	gs, err := gather(file)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := gs.Unmarshal("", &cfg); err != nil {
		return Config{}, err
	}

	cfg.Passthrough.Namespace = namespace
	cfg.Dial.Namespace = namespace

	return cfg, nil
}

// decibelHook lets yaml express gains as strings like "-12dB".
func decibelHook() mapstructure.DecodeHookFuncType {
	dbType := reflect.TypeOf(units.Decibel(0))

	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != dbType {
			return data, nil
		}
		return units.ParseDecibel(data.(string))
	}
}
