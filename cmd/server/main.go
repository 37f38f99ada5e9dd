package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"webpong/internal/config"
	"webpong/internal/netwrk"
	"webpong/internal/pong"
	"webpong/internal/session"
)

func main() {
	if len(os.Args) == 1 {
		config.LoadConfig("")
	} else {
		config.LoadConfig(os.Args[1])
	}

	slog.SetLogLoggerLevel(slog.Level(config.Config.LogLevel))

	fmt.Println("Starting webpong server...")

	registry := pong.NewRegistry()
	manager := session.NewManager(registry)
	hub := netwrk.NewHub(manager)
	engine := pong.NewEngine(registry, hub, config.Config.TickRate)

	go engine.Run()

	http.HandleFunc("/ws", hub.ServeWS)
	http.Handle("/", http.FileServer(http.Dir("web")))

	go func() {
		addr := ":" + config.Config.Port
		slog.Info("listening", "addr", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Panic(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	engine.Stop()
	fmt.Println("Shutting down...")
}
