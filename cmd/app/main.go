package main

import (
	"minihotel/config"
	"minihotel/di"
	"minihotel/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
