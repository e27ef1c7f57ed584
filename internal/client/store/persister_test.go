package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/client/repositories/storage"
	"github.com/dmitrijs2005/gochat/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE storage (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return storage.NewSQLiteRepository(db)
}

func TestKVPersister_EnvelopeShape(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	p := NewKVPersister(repo, common.DefaultStorageKey)

	require.NoError(t, p.Save(ctx, models.Session{Token: "T", CurrentUser: &models.User{ID: "1", Username: "a"}}))

	raw, err := repo.Get(ctx, common.DefaultStorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"token":"T","currentUser":{"id":"1","username":"a"}},"version":0}`, string(raw))
}

func TestKVPersister_LoggedOutRemovesEntry(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	p := NewKVPersister(repo, common.DefaultStorageKey)

	require.NoError(t, p.Save(ctx, models.Session{Token: "T", CurrentUser: &models.User{ID: "1", Username: "a"}}))
	require.NoError(t, p.Save(ctx, models.Session{}))

	raw, err := repo.Get(ctx, common.DefaultStorageKey)
	require.NoError(t, err)
	assert.Nil(t, raw)

	s, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Session{}, s)
}

func TestKVPersister_TokenWithoutUser(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	p := NewKVPersister(repo, common.DefaultStorageKey)

	require.NoError(t, p.Save(ctx, models.Session{Token: "T"}))

	raw, err := repo.Get(ctx, common.DefaultStorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"token":"T","currentUser":null},"version":0}`, string(raw))
}

func TestKVPersister_LogoutThroughStore(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	s := New(NewKVPersister(repo, common.DefaultStorageKey), nil)
	s.SetSession(ctx, "T", models.User{ID: "1", Username: "a"})
	s.Logout(ctx)

	raw, err := repo.Get(ctx, common.DefaultStorageKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestKVPersister_LoadMissing(t *testing.T) {
	p := NewKVPersister(setupRepo(t), "absent")

	s, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())
}

func TestKVPersister_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	require.NoError(t, repo.Set(ctx, "k", []byte("{not json")))

	_, err := NewKVPersister(repo, "k").Load(ctx)
	require.Error(t, err)
}

func TestKVPersister_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	first := New(NewKVPersister(repo, common.DefaultStorageKey), nil)
	first.SetSession(ctx, "T", models.User{ID: "1", Username: "a"})
	first.AddMessage(msg(1))

	second := New(NewKVPersister(repo, common.DefaultStorageKey), nil)
	require.NoError(t, second.Load(ctx))

	assert.Equal(t, "T", second.Token())
	assert.Equal(t, &models.User{ID: "1", Username: "a"}, second.CurrentUser())
	assert.Empty(t, second.Messages())
}
