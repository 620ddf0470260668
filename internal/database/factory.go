package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"github.com/mamiri/collectiontools/internal/config"
)

// Clients bundles the connections a command holds for its single run
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client // nil unless requested
}

// InitClients opens Firestore and, when withAuth is set, the Auth client
func InitClients(ctx context.Context, cfg *config.Config, withAuth bool) (*Clients, error) {
	fs, err := InitFirestore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	clients := &Clients{Firestore: fs}

	if withAuth {
		app, err := NewFirebaseApp(ctx, cfg)
		if err != nil {
			fs.Close()
			return nil, err
		}
		authClient, err := app.Auth(ctx)
		if err != nil {
			fs.Close()
			return nil, fmt.Errorf("failed to create auth client: %w", err)
		}
		clients.Auth = authClient
	}

	return clients, nil
}

// Store returns the Firestore-backed document store
func (c *Clients) Store() *FirestoreStore {
	return NewFirestoreStore(c.Firestore)
}

// Close closes the Firestore connection; the Auth client holds none
func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
