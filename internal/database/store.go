package database

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/mamiri/collectiontools/internal/models"
)

// ErrInvalidCollection is returned for paths that do not name a collection,
// e.g. an empty string or a path with an even number of segments.
var ErrInvalidCollection = errors.New("invalid collection path")

// DocumentIterator walks a collection. Next returns iterator.Done when exhausted.
type DocumentIterator interface {
	Next() (*models.Document, error)
	Stop()
}

// Store is the document database as seen by the tools
type Store interface {
	Documents(ctx context.Context, collection string) DocumentIterator
	// Set creates or fully overwrites a document
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error
	// UpdateField changes one field of an existing document and leaves the rest alone
	UpdateField(ctx context.Context, collection, id, field string, value interface{}) error
}

// FirestoreStore implements Store on a Firestore client
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) collection(name string) (*firestore.CollectionRef, error) {
	// Collection returns nil for paths with an even number of segments
	ref := s.client.Collection(name)
	if name == "" || ref == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCollection, name)
	}
	return ref, nil
}

func (s *FirestoreStore) Documents(ctx context.Context, collection string) DocumentIterator {
	ref, err := s.collection(collection)
	if err != nil {
		return &errIterator{err: err}
	}
	return &firestoreIterator{iter: ref.Documents(ctx)}
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	ref, err := s.collection(collection)
	if err != nil {
		return err
	}
	_, err = ref.Doc(id).Set(ctx, data)
	return err
}

func (s *FirestoreStore) UpdateField(ctx context.Context, collection, id, field string, value interface{}) error {
	ref, err := s.collection(collection)
	if err != nil {
		return err
	}
	_, err = ref.Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: value},
	})
	return err
}

type firestoreIterator struct {
	iter *firestore.DocumentIterator
}

func (it *firestoreIterator) Next() (*models.Document, error) {
	snap, err := it.iter.Next()
	if err != nil {
		return nil, err
	}
	return &models.Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (it *firestoreIterator) Stop() {
	it.iter.Stop()
}

type errIterator struct {
	err error
}

func (it *errIterator) Next() (*models.Document, error) { return nil, it.err }
func (it *errIterator) Stop()                           {}

var _ Store = (*FirestoreStore)(nil)
