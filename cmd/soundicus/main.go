// SPDX-FileCopyrightText: 2023 Weston Schmidt <weston_schmidt@alumni.purdue.edu>
// SPDX-License-Identifier: Apache-2.0

// soundicus drives a WM8960 codec hung off a Raspberry Pi.  It brings
// the codec up over I2C, shuttles PCM between the capture and playback
// sides of the I2S link, and follows a pot on an ADS1115 to pick the
// ALC target level.
package main

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/schmidtw/soundicus-maximus/wm8960"
)

// namespace prefixes every metric the daemon emits.
const namespace = "soundicus"

type CLI struct {
	File string `short:"f" name:"config" default:"/etc/soundicus/soundicus.yml" help:"Configuration file."`

	Run   RunCmd   `cmd:"" default:"1" help:"Run the daemon."`
	Show  ShowCmd  `cmd:"" help:"Show the resolved configuration."`
	Probe ProbeCmd `cmd:"" help:"Check that the codec answers on the bus."`
	Poke  PokeCmd  `cmd:"" help:"Write a raw codec register."`
}

type ShowCmd struct{}

func (s *ShowCmd) Run(cli *CLI) error {
	gs, err := gather(cli.File)
	if err != nil {
		return err
	}

	b, err := gs.Marshal()
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

type ProbeCmd struct{}

func (p *ProbeCmd) Run(cli *CLI) error {
	cfg, err := load(cli.File)
	if err != nil {
		return err
	}

	dev, err := wm8960.New(cfg.Codec)
	if err != nil {
		return err
	}
	if err := dev.Open(); err != nil {
		return err
	}
	defer dev.Close()

	fmt.Printf("wm8960 answered on %s\n", cfg.Codec.I2CFile)
	return nil
}

type PokeCmd struct {
	Register string `arg:"" help:"Register address, 0x00-0x37."`
	Value    string `arg:"" help:"9 bit value to write."`
}

func (p *PokeCmd) Run(cli *CLI) error {
	reg, err := strconv.ParseUint(p.Register, 0, 8)
	if err != nil {
		return err
	}
	value, err := strconv.ParseUint(p.Value, 0, 16)
	if err != nil {
		return err
	}

	cfg, err := load(cli.File)
	if err != nil {
		return err
	}

	dev, err := wm8960.New(cfg.Codec)
	if err != nil {
		return err
	}
	if err := dev.Open(); err != nil {
		return err
	}
	defer dev.Close()

	return dev.WriteRegister(uint8(reg), uint16(value))
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("soundicus"),
		kong.Description("WM8960 codec bring-up and passthrough daemon."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli))
}
