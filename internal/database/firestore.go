package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/mamiri/collectiontools/internal/config"
	"google.golang.org/api/option"
)

func clientOptions(cfg *config.Config) []option.ClientOption {
	// Without a key file the SDK falls back to Application Default Credentials
	if cfg.CredentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsFile)}
}

// NewFirebaseApp initializes the Admin SDK app used for Auth lookups
func NewFirebaseApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	var appConfig *firebase.Config
	if cfg.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, clientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	return app, nil
}

// InitFirestore initializes a Firestore client for the configured database
func InitFirestore(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	databaseID := cfg.DatabaseID
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, clientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}
