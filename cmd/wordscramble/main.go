package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/cli"
	"github.com/robalobadob/wordscramble/internal/config"
)

func main() {
	// Root flags (apply to every subcommand)
	root := flag.String("root", "", "start with this root word")
	example := flag.Bool("example", false, "start from the example session")
	daily := flag.Bool("daily", false, "use today's root word")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	os.Exit(cli.Run(flag.Args(), cli.Options{
		Config:  cfg,
		Root:    *root,
		Example: *example,
		Daily:   *daily,
	}))
}
