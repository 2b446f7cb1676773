package main

import (
	"net/http"
	"os"
	"time"

	"catan-server/internal/obs"
	"catan-server/internal/room"
	"catan-server/internal/transport"
)

func main() {
	log := obs.New()

	port := "3001"
	if p := os.Getenv("PORT"); p != "" {
		port = p
	}

	lobby := room.NewLobby(log)
	go lobby.CleanupLoop(1 * time.Minute)

	srv := transport.New(lobby, log)

	log.Info("listening", "port", port)
	if err := http.ListenAndServe(":"+port, srv); err != nil {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
}
