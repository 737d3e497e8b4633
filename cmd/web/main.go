package main

import (
	"context"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/theworldofobi/whot/rules"
	"github.com/theworldofobi/whot/server"
	"github.com/theworldofobi/whot/store"
)

type appConfig struct {
	Port     string `env:"PORT,default=8000"`
	LogLevel string `env:"LOG_LEVEL,default=info"`
	DBPath   string `env:"DB_PATH"` // empty runs without persistence
	Game     rules.Config
}

func main() {
	_ = godotenv.Load()

	var cfg appConfig
	if err := envdecode.Decode(&cfg); err != nil {
		panic(err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	games := store.NewInMemoryGameStore()

	var snapshots store.SnapshotStore
	if cfg.DBPath != "" {
		sqlStore, err := store.OpenSQLiteSnapshotStore(cfg.DBPath, log)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open snapshot store")
		}
		defer sqlStore.Close()
		snapshots = sqlStore
	} else {
		snapshots = store.NewInMemorySnapshotStore()
	}

	srv := server.NewServer(server.ServerOpts{
		Addr:      ":" + cfg.Port,
		Store:     games,
		Snapshots: snapshots,
		Config:    cfg.Game,
		Logger:    log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.DBPath != "" {
		resumeCtx, done := context.WithTimeout(ctx, 10*time.Second)
		if err := srv.ResumeGames(resumeCtx); err != nil {
			log.Error().Err(err).Msg("resume saved games")
		}
		done()
	}

	go srv.RunTurnSweeper(ctx, time.Second)

	log.Info().Str("port", cfg.Port).Msg("whot server listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
