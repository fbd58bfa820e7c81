package main

import (
	"os"

	"github.com/Mmx233/gwfixture/cmd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: zerolog.TimeFormatUnix,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
	})
}

func main() {
	cmd.Execute()
}
