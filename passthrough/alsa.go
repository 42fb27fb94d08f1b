// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

package passthrough

import (
	"fmt"
	"strings"

	"github.com/yobert/alsa"
)

type alsaOpener struct{}

func (alsaOpener) OpenCapture(c Config) (captureStream, error) {
	return openStream(c, c.CaptureDevice, false)
}

func (alsaOpener) OpenPlayback(c Config) (playbackStream, error) {
	return openStream(c, c.PlaybackDevice, true)
}

type alsaStream struct {
	cards []*alsa.Card
	dev   *alsa.Device
}

func openStream(c Config, name string, playback bool) (*alsaStream, error) {
	cards, err := alsa.OpenCards()
	if err != nil {
		return nil, err
	}

	dev, err := findDevice(cards, name, playback)
	if err != nil {
		alsa.CloseCards(cards)
		return nil, err
	}

	if err := setupDevice(dev, c); err != nil {
		alsa.CloseCards(cards)
		return nil, err
	}

	return &alsaStream{cards: cards, dev: dev}, nil
}

func findDevice(cards []*alsa.Card, name string, playback bool) (*alsa.Device, error) {
	for _, card := range cards {
		devices, err := card.Devices()
		if err != nil {
			continue
		}
		for _, dev := range devices {
			if dev.Type != alsa.PCM {
				continue
			}
			if playback && !dev.Play {
				continue
			}
			if !playback && !dev.Record {
				continue
			}
			if name != "" && !strings.Contains(dev.Title, name) {
				continue
			}
			return dev, nil
		}
	}

	return nil, fmt.Errorf("%w: '%s'", ErrNoDevice, name)
}

func setupDevice(dev *alsa.Device, c Config) error {
	if err := dev.Open(); err != nil {
		return err
	}

	if _, err := dev.NegotiateChannels(c.Channels); err != nil {
		return err
	}
	if _, err := dev.NegotiateRate(c.Rate); err != nil {
		return err
	}
	if _, err := dev.NegotiateFormat(alsa.S16_LE); err != nil {
		return err
	}

	// Two periods of buffer keeps latency fixed and low.
	bufSize := c.PeriodFrames * 2
	if _, err := dev.NegotiateBufferSize(bufSize); err != nil {
		return err
	}

	return dev.Prepare()
}

func (s *alsaStream) Read(buf []byte) error {
	return s.dev.Read(buf)
}

func (s *alsaStream) Write(buf []byte, frames int) error {
	return s.dev.Write(buf, frames)
}

func (s *alsaStream) Close() error {
	s.dev.Close()
	alsa.CloseCards(s.cards)
	return nil
}
