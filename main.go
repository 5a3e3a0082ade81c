package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pocketfold/backend/internal/config"
	"github.com/pocketfold/backend/internal/ledger"
	"github.com/pocketfold/backend/internal/models"
	"github.com/pocketfold/backend/internal/notify"
	"github.com/pocketfold/backend/internal/router"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Log format defaults to human readable for development and JSON
	// for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if err := os.MkdirAll(filepath.Dir(cfg.DBDSN), os.ModePerm); err != nil {
		log.Fatal().Msg(err.Error())
	}

	db, err := models.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	hub := notify.NewHub()
	service := ledger.NewService(db, log.Logger, hub)

	r, err := router.New(cfg.CORSAllowOrigins, service)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
