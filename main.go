package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"cmdecho/config"
	"cmdecho/handler"
	"cmdecho/logging"
)

var configFile = flag.String("c", "", "config file path (defaults apply when empty)")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := logging.Init(cfg.Common.LogLevel, cfg.Common.LogFormat, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("init logger")
	}

	serverConfig, err := cfg.TCPServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("server config")
	}

	listener, err := handler.Listen(serverConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("bind failed")
	}
	defer listener.Close()

	server := handler.NewTCPServer(listener, handler.NewDispatcher(os.Stdout), nil, serverConfig)
	if err := server.Serve(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
