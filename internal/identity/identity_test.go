package identity

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/mamiri/collectiontools/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUserRecord(t *testing.T) {
	rec := toUserRecord(&auth.UserRecord{
		UserInfo: &auth.UserInfo{
			UID:      "uid-1",
			Email:    "ravi@example.com",
			PhotoURL: "https://lh3.googleusercontent.com/a/x",
		},
	})
	assert.Equal(t, &models.UserRecord{
		UID:      "uid-1",
		Email:    "ravi@example.com",
		PhotoURL: "https://lh3.googleusercontent.com/a/x",
	}, rec)

	assert.Equal(t, &models.UserRecord{}, toUserRecord(&auth.UserRecord{}))
}

func TestStaticDirectory(t *testing.T) {
	ctx := context.Background()
	dir := NewStaticDirectory(models.UserRecord{UID: "u1", Email: "Ravi@Example.com", PhotoURL: "p"})

	user, err := dir.UserByEmail(ctx, "ravi@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UID)

	_, err = dir.UserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	boom := errors.New("quota exceeded")
	dir.Err = map[string]error{"ravi@example.com": boom}
	_, err = dir.UserByEmail(ctx, "RAVI@example.com")
	assert.ErrorIs(t, err, boom)
}
