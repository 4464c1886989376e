package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"studypilot/internal/common"
	"studypilot/internal/logging"
	"studypilot/internal/server"
)

func main() {
	address := flag.String("a", ":8000", "address to listen on")
	secret := flag.String("s", "", "JWT signing secret (random if empty)")
	flag.Parse()

	if *secret == "" {
		// Tokens will not survive a restart, which is fine for a
		// development backend.
		random, err := common.MakeRandHexString(32)
		if err != nil {
			log.Fatalf("%v", err)
		}
		*secret = random
	}

	logger := logging.NewTextLogger(os.Stdout, slog.LevelInfo)

	s := server.NewServer(server.Options{
		Address: *address,
		Secret:  []byte(*secret),
		Logger:  logger,
	})
	if err := s.Start(); err != nil {
		log.Fatalf("%v", err)
	}
}
