package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mamiri/collectiontools/internal/collectioncopy"
	"github.com/mamiri/collectiontools/internal/config"
	"github.com/mamiri/collectiontools/internal/database"
	"github.com/mamiri/collectiontools/internal/inspect"
	"github.com/mamiri/collectiontools/internal/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	collection := flag.String("collection", "", "collection to print")
	flag.StringVar(&cfg.CredentialsFile, "credentials", cfg.CredentialsFile, "service account key file")
	flag.Parse()

	name := collectioncopy.NormalizeCollectionName(*collection)
	log := logger.ForRun(logger.New(cfg.LogLevel, cfg.LogFormat), "inspect-collection").
		WithField("collection", name)
	if name == "" {
		log.Fatal("A collection is required: pass -collection")
	}

	ctx := context.Background()

	clients, err := database.InitClients(ctx, cfg, false)
	if err != nil {
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	defer clients.Close()

	fmt.Printf("=== Firestore %s Collection ===\n", name)

	count, err := inspect.Dump(ctx, clients.Store(), name, os.Stdout)
	if err != nil {
		log.Errorf("Error iterating: %v", err)
	}

	if count == 0 {
		fmt.Printf("No documents found in %s\n", name)
	} else {
		fmt.Printf("Total documents: %d\n", count)
	}
}
