// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/schmidtw/soundicus-maximus/wm8960"
	"go.uber.org/zap"
)

var errBadConfig = errors.New("invalid audio configuration")

type step struct {
	name string
	fn   func() error
}

// bringUp walks the codec from reset to a running INPUT1 -> PGA ->
// boost -> ADC -> (ALC) -> DAC -> mixer -> amplifier chain.  The chip
// powers up silent, so order matters: references first, clocks before
// the digital blocks, amplifiers last.
func bringUp(d *wm8960.Dev, cfg AudioConfig, log *zap.Logger) error {
	mode, err := parseALCMode(cfg.ALC.Mode)
	if err != nil {
		return err
	}
	boost, err := parseMicBoost(cfg.MicBoost)
	if err != nil {
		return err
	}

	steps := []step{
		{"reset", d.Reset},

		// References.
		{"vmid", func() error { return d.SetVMID(true) }},
		{"vref", func() error { return d.SetVREF(true) }},

		// Input path.  INPUT1 drives the inverting PGA input on each
		// side, pseudo-differential against VMID.
		{"left input stage", func() error { return d.SetInputStage(wm8960.Left, true) }},
		{"right input stage", func() error { return d.SetInputStage(wm8960.Right, true) }},
		{"left pga", func() error { return d.SetPGA(wm8960.Left, true) }},
		{"right pga", func() error { return d.SetPGA(wm8960.Right, true) }},
		{"left input1", func() error { return d.ConnectPGAInverting(wm8960.Left, true) }},
		{"right input1", func() error { return d.ConnectPGAInverting(wm8960.Right, true) }},
		{"left pga unmute", func() error { return d.SetPGAMute(wm8960.Left, false) }},
		{"right pga unmute", func() error { return d.SetPGAMute(wm8960.Right, false) }},
		{"left pga to boost", func() error { return d.ConnectPGAToBoost(wm8960.Left, true) }},
		{"right pga to boost", func() error { return d.ConnectPGAToBoost(wm8960.Right, true) }},
		{"left mic boost", func() error { return d.SetMicBoost(wm8960.Left, boost) }},
		{"right mic boost", func() error { return d.SetMicBoost(wm8960.Right, boost) }},
		{"mic bias", func() error { return d.SetMicBias(true) }},

		// Clocking.  44.1kHz from the Pi's 24MHz MCLK, 16 bit I2S.
		{"pll", d.Configure44100From24MHz},
		{"word length", func() error { return d.SetWordLength(wm8960.WordLength16) }},
		{"i2s format", d.SetI2SFormat},

		// ALC operating point.  The loop itself runs in the chip.
		{"alc target", func() error { return d.SetALCTarget(cfg.ALC.Target) }},
		{"alc attack", func() error { return d.SetALCAttack(cfg.ALC.Attack) }},
		{"alc decay", func() error { return d.SetALCDecay(cfg.ALC.Decay) }},
		{"alc hold", func() error { return d.SetALCHold(cfg.ALC.Hold) }},
		{"alc max gain", func() error { return d.SetALCMaxGain(cfg.ALC.MaxGain) }},
		{"alc min gain", func() error { return d.SetALCMinGain(cfg.ALC.MinGain) }},
		{"peak limiter", func() error { return d.SetPeakLimiter(cfg.ALC.PeakLimiter) }},
		{"noise gate threshold", func() error { return d.SetNoiseGateThreshold(cfg.ALC.NoiseGateThreshold) }},
		{"noise gate", func() error { return d.SetNoiseGate(cfg.ALC.NoiseGate) }},
		{"alc mode", func() error { return d.SetALCMode(mode) }},

		// Digital blocks.
		{"left adc", func() error { return d.SetADC(wm8960.Left, true) }},
		{"right adc", func() error { return d.SetADC(wm8960.Right, true) }},
		{"left dac", func() error { return d.SetDAC(wm8960.Left, true) }},
		{"right dac", func() error { return d.SetDAC(wm8960.Right, true) }},
		{"dac unmute", func() error { return d.SetDACMute(false) }},

		// Output mixers, DAC straight through.
		{"left mixer", func() error { return d.SetOutputMixer(wm8960.Left, true) }},
		{"right mixer", func() error { return d.SetOutputMixer(wm8960.Right, true) }},
		{"left dac to mixer", func() error { return d.ConnectDACToMixer(wm8960.Left, true) }},
		{"right dac to mixer", func() error { return d.ConnectDACToMixer(wm8960.Right, true) }},

		// Amplifiers.
		{"headphone standby off", func() error { return d.SetHeadphoneStandby(false) }},
		{"left headphone", func() error { return d.SetHeadphone(wm8960.Left, true) }},
		{"right headphone", func() error { return d.SetHeadphone(wm8960.Right, true) }},
		{"headphone volume", func() error { return d.SetHeadphoneVolumeDB(cfg.HeadphoneVolume) }},
	}

	if cfg.Speakers {
		steps = append(steps,
			step{"left speaker", func() error { return d.SetSpeaker(wm8960.Left, true) }},
			step{"right speaker", func() error { return d.SetSpeaker(wm8960.Right, true) }},
			step{"speaker volume", func() error { return d.SetSpeakerVolumeDB(cfg.SpeakerVolume) }},
		)
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("bring-up failed at %s: %w", step.name, err)
		}
	}

	log.Info("codec configured",
		zap.String("alc_mode", mode.String()),
		zap.Int("mic_boost_db", cfg.MicBoost),
	)
	return nil
}

func parseALCMode(s string) (wm8960.ALCMode, error) {
	switch s {
	case "", "off":
		return wm8960.ALCOff, nil
	case "left":
		return wm8960.ALCLeftOnly, nil
	case "right":
		return wm8960.ALCRightOnly, nil
	case "stereo":
		return wm8960.ALCStereo, nil
	}
	return 0, fmt.Errorf("%w: alc mode %q", errBadConfig, s)
}

func parseMicBoost(db int) (wm8960.MicBoost, error) {
	switch db {
	case 0:
		return wm8960.MicBoost0dB, nil
	case 13:
		return wm8960.MicBoost13dB, nil
	case 20:
		return wm8960.MicBoost20dB, nil
	case 29:
		return wm8960.MicBoost29dB, nil
	}
	return 0, fmt.Errorf("%w: mic boost %ddB", errBadConfig, db)
}
