package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mamiri/collectiontools/internal/database"
	"google.golang.org/api/iterator"
)

// Dump writes each document of collection to w as its ID and indented JSON data
func Dump(ctx context.Context, store database.Store, collection string, w io.Writer) (int, error) {
	iter := store.Documents(ctx, collection)
	defer iter.Stop()

	count := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read %s: %w", collection, err)
		}

		jsonData, err := json.MarshalIndent(doc.Data, "", "  ")
		if err != nil {
			return count, fmt.Errorf("failed to encode document %s: %w", doc.ID, err)
		}
		count++
		fmt.Fprintf(w, "Document ID: %s\n", doc.ID)
		fmt.Fprintf(w, "Data: %s\n\n", jsonData)
	}
	return count, nil
}
