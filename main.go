package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/flanker/config"
	"github.com/domino14/flanker/shell"
)

var configPath = flag.String("config", "", "path to an optional yaml config file")

func main() {
	flag.Parse()

	cfg := config.DefaultConfig()
	if err := cfg.Load(*configPath); err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	level, err := zerolog.ParseLevel(cfg.GetString(config.ConfigLogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	sc := shell.NewShellController(cfg)
	sc.Loop()
}
