package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/kundli-service/internal/config"
	"github.com/Dan9191/kundli-service/internal/integrations/ephemeris"
)

func main() {
	_ = godotenv.Load()

	cmd := newRootCmd(func(cfg *config.Config, log *logrus.Logger) (ephemeris.Provider, error) {
		return ephemeris.NewProvider(cfg, nil, log, nil)
	}, os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
