package main

import (
	"github.com/jessevdk/go-flags"
)

type config struct {
	ShowVersion bool   `short:"v" long:"version" description:"Display version information and exit"`
	Debug       bool   `long:"debug" description:"Start in debug mode"`
	Settings    string `short:"c" long:"settings" description:"Path to the YAML settings file" default:"motord.yaml"`
	Motor       string `long:"motor" description:"Override the configured motor backend" choice:"simulated" choice:"serial" choice:"i2c"`
	ApiListen   string `long:"api.listen" description:"Override the status API listen address"`
}

func loadConfig() (*config, error) {
	cfg := config{}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
