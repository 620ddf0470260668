package collectioncopy

import (
	"context"
	"errors"
	"testing"

	"github.com/mamiri/collectiontools/internal/database"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed() *database.MemoryStore {
	store := database.NewMemoryStore()
	store.Put("alumni", "a1", map[string]interface{}{"name": "Anita", "batch": int64(2004)})
	store.Put("alumni", "a2", map[string]interface{}{"name": "Ravi", "tags": []interface{}{"x", "y"}})
	store.Put("alumni", "a3", map[string]interface{}{})
	return store
}

func TestNormalizeCollectionName(t *testing.T) {
	tests := map[string]string{
		"alumni":             "alumni",
		"  alumni  ":         "alumni",
		"/alumni":            "alumni",
		"//aajnvl/alumni/x ": "aajnvl/alumni/x",
		"\t/alumni\n":        "alumni",
		"   ":                "",
		"/":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeCollectionName(in), "input %q", in)
	}
}

func TestCopy_CopiesEveryDocument(t *testing.T) {
	store := seed()
	log, hook := test.NewNullLogger()

	n, err := NewCopier(store, log).Copy(context.Background(), " /alumni", "alumni_backup ")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	src := store.Snapshot("alumni")
	dst := store.Snapshot("alumni_backup")
	assert.Equal(t, src, dst)

	require.Len(t, hook.AllEntries(), 3)
	assert.Equal(t, "Copied document: a1", hook.AllEntries()[0].Message)
	assert.Equal(t, "alumni", hook.LastEntry().Data["source"])
	assert.Equal(t, "alumni_backup", hook.LastEntry().Data["destination"])
}

func TestCopy_OverwritesExisting(t *testing.T) {
	store := seed()
	store.Put("alumni_backup", "a1", map[string]interface{}{"stale": true})
	store.Put("alumni_backup", "z9", map[string]interface{}{"untouched": true})
	log, _ := test.NewNullLogger()

	_, err := NewCopier(store, log).Copy(context.Background(), "alumni", "alumni_backup")
	require.NoError(t, err)

	a1, _ := store.Get("alumni_backup", "a1")
	assert.Equal(t, map[string]interface{}{"name": "Anita", "batch": int64(2004)}, a1)
	z9, ok := store.Get("alumni_backup", "z9")
	require.True(t, ok)
	assert.Equal(t, true, z9["untouched"])
}

func TestCopy_Idempotent(t *testing.T) {
	store := seed()
	log, _ := test.NewNullLogger()
	copier := NewCopier(store, log)

	_, err := copier.Copy(context.Background(), "alumni", "alumni_backup")
	require.NoError(t, err)
	first := store.Snapshot("alumni_backup")

	n, err := copier.Copy(context.Background(), "alumni", "alumni_backup")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, first, store.Snapshot("alumni_backup"))
}

func TestCopy_SelfCopy(t *testing.T) {
	store := seed()
	log, _ := test.NewNullLogger()
	before := store.Snapshot("alumni")

	n, err := NewCopier(store, log).Copy(context.Background(), "alumni", "/alumni")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, before, store.Snapshot("alumni"))
}

func TestCopy_EmptyNames(t *testing.T) {
	for _, pair := range [][2]string{{"", "dst"}, {"src", "  "}, {"/", "dst"}} {
		store := seed()
		log, _ := test.NewNullLogger()

		n, err := NewCopier(store, log).Copy(context.Background(), pair[0], pair[1])
		assert.ErrorIs(t, err, ErrMissingCollection)
		assert.Zero(t, n)
		assert.Zero(t, store.Reads)
		assert.Zero(t, store.Writes)
	}
}

func TestCopy_EmptySource(t *testing.T) {
	store := database.NewMemoryStore()
	log, _ := test.NewNullLogger()

	n, err := NewCopier(store, log).Copy(context.Background(), "nothing", "dst")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCopy_WriteFailureAborts(t *testing.T) {
	store := seed()
	denied := errors.New("permission denied")
	store.SetErr = func(_, id string) error {
		if id == "a2" {
			return denied
		}
		return nil
	}
	log, _ := test.NewNullLogger()

	n, err := NewCopier(store, log).Copy(context.Background(), "alumni", "alumni_backup")
	assert.ErrorIs(t, err, denied)
	assert.Equal(t, 1, n)

	_, ok := store.Get("alumni_backup", "a1")
	assert.True(t, ok)
	_, ok = store.Get("alumni_backup", "a3")
	assert.False(t, ok)
}

func TestCopy_ReadFailureAborts(t *testing.T) {
	store := seed()
	reset := errors.New("stream reset")
	store.CursorErr = map[string]error{"alumni": reset}
	log, _ := test.NewNullLogger()

	n, err := NewCopier(store, log).Copy(context.Background(), "alumni", "alumni_backup")
	assert.ErrorIs(t, err, reset)
	assert.Equal(t, 3, n)
}

func TestCopy_DryRun(t *testing.T) {
	store := seed()
	log, hook := test.NewNullLogger()
	copier := NewCopier(store, log)
	copier.DryRun = true

	n, err := copier.Copy(context.Background(), "alumni", "alumni_backup")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Zero(t, store.Writes)
	assert.Empty(t, store.Snapshot("alumni_backup"))
	assert.Equal(t, "Would copy document: a3", hook.LastEntry().Message)
}
