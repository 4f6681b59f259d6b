package main

import (
	"fmt"
	"mentorbook/config"
	"mentorbook/helper"
	"mentorbook/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	direction := pflag.StringP("direction", "d", "", "migration direction: up, down, drop or step-up")
	force := pflag.Bool("force", false, "required together with --direction=drop")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [up|down|drop|step-up] [flags]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *direction == "" && pflag.NArg() > 0 {
		*direction = pflag.Arg(0)
	}

	if *direction == "" {
		pflag.Usage()
		os.Exit(2)
	}

	cfg := config.Get()

	logger.InitLogger(cfg)

	if *direction == "drop" && !*force {
		log.Fatal().Msg("Refusing to drop every table without --force")
	}

	err := helper.Runner(cfg, *direction)

	if err != nil {
		log.Fatal().Err(err).Str("direction", *direction).Msg("Migration failed")
	}
}
