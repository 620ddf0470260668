package main

import (
	"context"
	"flag"

	"github.com/mamiri/collectiontools/internal/config"
	"github.com/mamiri/collectiontools/internal/database"
	"github.com/mamiri/collectiontools/internal/identity"
	"github.com/mamiri/collectiontools/internal/logger"
	"github.com/mamiri/collectiontools/internal/photosync"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	collection := flag.String("collection", cfg.PhotoSyncCollection, "collection whose documents get photoURL (env PHOTO_SYNC_COLLECTION)")
	dryRun := flag.Bool("dry-run", false, "resolve users but do not write")
	flag.StringVar(&cfg.CredentialsFile, "credentials", cfg.CredentialsFile, "service account key file")
	flag.Parse()

	log := logger.ForRun(logger.New(cfg.LogLevel, cfg.LogFormat), "sync-photo-urls").
		WithField("collection", *collection)

	if *collection == "" {
		log.Fatal("A collection is required: pass -collection or set PHOTO_SYNC_COLLECTION")
	}

	ctx := context.Background()

	clients, err := database.InitClients(ctx, cfg, true)
	if err != nil {
		log.Fatalf("Failed to connect to Firebase: %v", err)
	}
	defer clients.Close()

	syncer := photosync.NewSyncer(clients.Store(), identity.NewFirebaseDirectory(clients.Auth), log)
	syncer.DryRun = *dryRun

	if _, err := syncer.Run(ctx, *collection); err != nil {
		clients.Close()
		log.Fatalf("Sync aborted: %v", err)
	}
}
