package collectioncopy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mamiri/collectiontools/internal/database"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
)

var ErrMissingCollection = errors.New("both source and destination collection names are required")

// NormalizeCollectionName trims whitespace and any leading slashes
func NormalizeCollectionName(name string) string {
	return strings.TrimLeft(strings.TrimSpace(name), "/")
}

type Copier struct {
	store  database.Store
	log    logrus.FieldLogger
	DryRun bool
}

func NewCopier(store database.Store, log logrus.FieldLogger) *Copier {
	return &Copier{store: store, log: log}
}

// Copy writes every document of source into destination under the same ID,
// overwriting what is there. It stops at the first failure and returns the number
// of documents copied before it; earlier writes are not undone.
func (c *Copier) Copy(ctx context.Context, source, destination string) (int, error) {
	source = NormalizeCollectionName(source)
	destination = NormalizeCollectionName(destination)
	if source == "" || destination == "" {
		return 0, ErrMissingCollection
	}

	log := c.log.WithFields(logrus.Fields{"source": source, "destination": destination})

	count := 0
	iter := c.store.Documents(ctx, source)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read %s: %w", source, err)
		}

		if c.DryRun {
			count++
			log.Infof("Would copy document: %s", doc.ID)
			continue
		}

		if err := c.store.Set(ctx, destination, doc.ID, doc.Data); err != nil {
			return count, fmt.Errorf("failed to copy document %s to %s: %w", doc.ID, destination, err)
		}
		count++
		log.Infof("Copied document: %s", doc.ID)
	}

	return count, nil
}
