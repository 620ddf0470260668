// Package photosync copies Firebase Auth profile photos into the documents of a
// collection, matching documents to users by their email field.
package photosync

import (
	"context"
	"errors"
	"fmt"

	"github.com/mamiri/collectiontools/internal/database"
	"github.com/mamiri/collectiontools/internal/identity"
	"github.com/mamiri/collectiontools/internal/models"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
)

var (
	ErrMissingEmail = errors.New("document has no email")
	ErrInvalidEmail = errors.New("email field is not a string")
	ErrNoPhotoURL   = errors.New("user has no photo URL")
)

// Outcome classifies what happened to one document
type Outcome int

const (
	Updated Outcome = iota
	MissingEmail
	UserNotFound
	NoPhotoURL
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case MissingEmail:
		return "missing_email"
	case UserNotFound:
		return "user_not_found"
	case NoPhotoURL:
		return "no_photo_url"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result is the per-document result. Err is nil only for Updated.
type Result struct {
	DocumentID string
	Email      string
	PhotoURL   string
	Outcome    Outcome
	Err        error
}

// Summary tallies a run
type Summary struct {
	Scanned      int
	Updated      int
	MissingEmail int
	UserNotFound int
	NoPhotoURL   int
	Failed       int
}

func (s *Summary) add(r Result) {
	s.Scanned++
	switch r.Outcome {
	case Updated:
		s.Updated++
	case MissingEmail:
		s.MissingEmail++
	case UserNotFound:
		s.UserNotFound++
	case NoPhotoURL:
		s.NoPhotoURL++
	default:
		s.Failed++
	}
}

type Syncer struct {
	store  database.Store
	users  identity.Directory
	log    logrus.FieldLogger
	DryRun bool
}

func NewSyncer(store database.Store, users identity.Directory, log logrus.FieldLogger) *Syncer {
	return &Syncer{store: store, users: users, log: log}
}

// Run processes every document of collection in order. Per-document problems are
// logged and counted; only a failing cursor stops the pass.
func (s *Syncer) Run(ctx context.Context, collection string) (Summary, error) {
	var summary Summary

	iter := s.store.Documents(ctx, collection)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("failed to read %s: %w", collection, err)
		}
		summary.add(s.SyncDocument(ctx, collection, doc))
	}

	s.log.WithFields(logrus.Fields{
		"scanned":        summary.Scanned,
		"updated":        summary.Updated,
		"missing_email":  summary.MissingEmail,
		"user_not_found": summary.UserNotFound,
		"no_photo_url":   summary.NoPhotoURL,
		"failed":         summary.Failed,
	}).Infof("Finished photoURL sync of %s", collection)
	return summary, nil
}

// SyncDocument resolves one document's email and writes the user's photo URL
func (s *Syncer) SyncDocument(ctx context.Context, collection string, doc *models.Document) Result {
	res := Result{DocumentID: doc.ID}
	log := s.log.WithField("doc_id", doc.ID)

	raw, ok := doc.Data[models.FieldEmail]
	if !ok || raw == nil || raw == "" {
		res.Outcome, res.Err = MissingEmail, ErrMissingEmail
		log.Warnf("Skipping document %s: No email found", doc.ID)
		return res
	}
	email, ok := raw.(string)
	if !ok {
		res.Outcome, res.Err = Failed, fmt.Errorf("%w: %T", ErrInvalidEmail, raw)
		log.Errorf("Error updating %v: %v", raw, res.Err)
		return res
	}
	res.Email = email
	log = log.WithField("email", email)

	user, err := s.users.UserByEmail(ctx, email)
	if errors.Is(err, identity.ErrUserNotFound) {
		res.Outcome, res.Err = UserNotFound, err
		log.Warnf("No Firebase Auth user found for: %s", email)
		return res
	}
	if err != nil {
		res.Outcome, res.Err = Failed, err
		log.Errorf("Error updating %s: %v", email, err)
		return res
	}

	if user.PhotoURL == "" {
		res.Outcome, res.Err = NoPhotoURL, ErrNoPhotoURL
		log.Infof("No photoURL for %s", email)
		return res
	}
	res.PhotoURL = user.PhotoURL

	if s.DryRun {
		res.Outcome = Updated
		log.Infof("Would update photoURL for: %s", email)
		return res
	}

	if err := s.store.UpdateField(ctx, collection, doc.ID, models.FieldPhotoURL, user.PhotoURL); err != nil {
		res.Outcome, res.Err = Failed, fmt.Errorf("failed to update %s: %w", doc.ID, err)
		log.Errorf("Error updating %s: %v", email, res.Err)
		return res
	}

	res.Outcome = Updated
	log.Infof("Updated photoURL for: %s", email)
	return res
}
