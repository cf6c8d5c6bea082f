package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/MohammedPathariya/NoteNest/noteservice"
)

func main() {
	if err := noteservice.Run(); err != nil {
		log.Error().Err(err).Msg("notenest-service exited with error")
		os.Exit(1)
	}
}
