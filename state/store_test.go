package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trellotogithub/models"
)

func TestFileStore_GetMissingIsNotError(t *testing.T) {
	store := NewFileStore(t.TempDir())

	st, err := store.Get("abc123")
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestFileStore_PutGetRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	want := models.IssueState{
		URL:   "https://api.github.com/repos/o/r/issues/1",
		Title: "カード名",
		Body:  "カードの説明",
	}
	require.NoError(t, store.Put("abc123", want))

	got, err := store.Get("abc123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestFileStore_PutOverwrites(t *testing.T) {
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Put("abc123", models.IssueState{Title: "old"}))
	require.NoError(t, store.Put("abc123", models.IssueState{Title: "new"}))

	got, err := store.Get("abc123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new", got.Title)
}

func TestFileStore_FileNaming(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	require.NoError(t, store.Put("abc123", models.IssueState{Title: "t"}))

	_, err := os.Stat(filepath.Join(dir, "abc123.json"))
	require.NoError(t, err)
}

func TestFileStore_GetCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc123.json"), []byte("not json"), 0o644))

	_, err := store.Get("abc123")
	require.Error(t, err)
}

func TestFileStore_EnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	store := NewFileStore(dir)

	require.NoError(t, store.EnsureDir())
	// 既に存在していてもエラーにならない
	require.NoError(t, store.EnsureDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNullStore(t *testing.T) {
	store := NullStore{}

	require.NoError(t, store.Put("abc123", models.IssueState{Title: "t"}))

	st, err := store.Get("abc123")
	require.NoError(t, err)
	assert.Nil(t, st)
}
