package main

import (
	"errors"
	"io"
	"os"

	"github.com/Fooshman135/BensBudget/internal/budget"
	"github.com/Fooshman135/BensBudget/internal/config"
	"github.com/Fooshman135/BensBudget/internal/controllers"
	"github.com/Fooshman135/BensBudget/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	registry, err := budget.NewRegistry(cfg.DataDir)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Open the configured budget, setting it up on first run
	session, err := registry.Open(cfg.BudgetName)
	if errors.Is(err, budget.ErrNotFound) {
		log.Info().Str("budget", cfg.BudgetName).Msg("budget does not exist yet, creating it")
		session, err = registry.Create(cfg.BudgetName)
	}
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer session.Close()

	co := controllers.Controller{
		Ledger:       session.Ledger,
		Budgets:      registry,
		ActiveBudget: session.Name,
	}

	r, err := router.Router(cfg, co)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	log.Info().Str("budget", session.Name).Str("address", cfg.ListenAddress).Msg("serving budget")

	if err := r.Run(cfg.ListenAddress); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
