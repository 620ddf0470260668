package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/mamiri/collectiontools/internal/models"
)

// ErrUserNotFound means no Auth user has the requested email
var ErrUserNotFound = errors.New("no auth user with that email")

// Directory resolves users by email
type Directory interface {
	UserByEmail(ctx context.Context, email string) (*models.UserRecord, error)
}

// FirebaseDirectory looks users up through the Admin SDK Auth client
type FirebaseDirectory struct {
	client *auth.Client
}

func NewFirebaseDirectory(client *auth.Client) *FirebaseDirectory {
	return &FirebaseDirectory{client: client}
}

func (d *FirebaseDirectory) UserByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	user, err := d.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
		}
		return nil, fmt.Errorf("auth lookup for %s: %w", email, err)
	}
	return toUserRecord(user), nil
}

func toUserRecord(user *auth.UserRecord) *models.UserRecord {
	rec := &models.UserRecord{}
	if user.UserInfo != nil {
		rec.UID = user.UID
		rec.Email = user.Email
		rec.PhotoURL = user.PhotoURL
	}
	return rec
}

// StaticDirectory is a fixed email -> user table. Lookups are case-insensitive,
// matching how Firebase Auth normalizes emails.
type StaticDirectory struct {
	users map[string]models.UserRecord
	Err   map[string]error // forced lookup failures by email
}

func NewStaticDirectory(users ...models.UserRecord) *StaticDirectory {
	d := &StaticDirectory{users: make(map[string]models.UserRecord, len(users))}
	for _, u := range users {
		d.users[strings.ToLower(u.Email)] = u
	}
	return d
}

func (d *StaticDirectory) UserByEmail(_ context.Context, email string) (*models.UserRecord, error) {
	key := strings.ToLower(email)
	if err, ok := d.Err[key]; ok {
		return nil, err
	}
	user, ok := d.users[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	return &user, nil
}

var (
	_ Directory = (*FirebaseDirectory)(nil)
	_ Directory = (*StaticDirectory)(nil)
)
