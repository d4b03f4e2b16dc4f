package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"movie-ticket-booking/internal/postersync"
	"movie-ticket-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	force := flag.Bool("force", false, "re-download posters that already exist locally")
	commit := flag.Bool("commit", false, "git commit the poster directory after syncing")
	remote := flag.String("remote", "", "remote instance base URL (overrides POSTER_REMOTE_URL)")
	flag.Parse()

	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	remoteURL := *remote
	if remoteURL == "" {
		remoteURL = config.Static.RemoteURL
	}
	if remoteURL == "" {
		logger.Error("No remote URL configured, set POSTER_REMOTE_URL or -remote")
		os.Exit(1)
	}

	posterDir := filepath.Join(config.Static.Dir, "posters")
	syncer := postersync.New(remoteURL, posterDir, logger)

	ctx := context.Background()
	result, err := syncer.Sync(ctx, *force)
	if err != nil {
		logger.Error("Poster sync failed", zap.Error(err))
		os.Exit(1)
	}

	if *commit && result.Downloaded > 0 {
		if err := syncer.Commit(ctx, "Sync posters"); err != nil {
			logger.Error("Poster commit failed", zap.Error(err))
			os.Exit(1)
		}
	}
}
