package main

import (
	"context"
	"errors"
	"os"

	"github.com/fsdevblog/groupbuy/internal/app"
	"github.com/fsdevblog/groupbuy/internal/config"
	"github.com/fsdevblog/groupbuy/internal/logger"
	"github.com/joho/godotenv"
)

func main() {
	// .env необязателен, переменные окружения процесса не перезаписываются.
	envErr := godotenv.Load()

	l := logger.New(os.Stdout)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		l.WithError(envErr).Warn("load .env")
	}

	conf := config.MustLoadConfig()

	if err := app.New(conf, l).Run(); err != nil {
		if errors.Is(err, context.Canceled) {
			l.Info("graceful shutdown")
			os.Exit(0)
		}
		panic(err)
	}
}
