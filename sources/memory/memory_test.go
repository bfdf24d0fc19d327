package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remiges-tech/fuzzysearch/sources"
)

func doc(id, name string) sources.Document {
	return sources.Document{ID: id, Fields: map[string]string{"name": name}}
}

func TestSource_PutLoadOrder(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "clubs", doc("b", "second")))
	require.NoError(t, s.Put(ctx, "clubs", doc("a", "first")))
	require.NoError(t, s.Put(ctx, "clubs", doc("b", "second updated")))

	docs, err := s.Load(ctx, "clubs")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[0].ID)
	assert.Equal(t, "second updated", docs[0].Fields["name"])
	assert.Equal(t, "a", docs[1].ID)
}

func TestSource_LoadReturnsCopies(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)
	ctx := context.Background()

	d := doc("1", "popupOne")
	require.NoError(t, s.Put(ctx, "clubs", d))
	d.Fields["name"] = "mutated"

	docs, err := s.Load(ctx, "clubs")
	require.NoError(t, err)
	docs[0].Fields["name"] = "mutated again"

	again, err := s.Load(ctx, "clubs")
	require.NoError(t, err)
	assert.Equal(t, "popupOne", again[0].Fields["name"])
}

func TestSource_DeleteAndDeleteAll(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "clubs", doc("1", "one")))
	require.NoError(t, s.Put(ctx, "clubs", doc("2", "two")))
	require.NoError(t, s.Put(ctx, "other", doc("1", "other")))

	require.NoError(t, s.Delete(ctx, "clubs", "1"))
	require.NoError(t, s.Delete(ctx, "clubs", "1"))
	require.NoError(t, s.Delete(ctx, "missing", "1"))

	docs, err := s.Load(ctx, "clubs")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "2", docs[0].ID)

	require.NoError(t, s.DeleteAll(ctx, "clubs"))
	docs, err = s.Load(ctx, "clubs")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)

	other, err := s.Load(ctx, "other")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestSource_Closed(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Load(context.Background(), "clubs")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Put(context.Background(), "clubs", doc("1", "x")), ErrClosed)
}

func TestNew_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clubs.yaml")
	seed := `records:
  - id: "1"
    fields:
      name: popupOne
      description: This is popupOne.
  - id: "2"
    fields:
      name: clubAlpha
`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	s, err := New(Config{SeedFile: path})
	require.NoError(t, err)

	docs, err := s.Load(context.Background(), "clubs")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "This is popupOne.", docs[0].Fields["description"])
	assert.Equal(t, "clubAlpha", docs[1].Fields["name"])
}

func TestReadSeedFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadSeedFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("records: [\n"), 0o600))
	_, err = ReadSeedFile(bad)
	assert.Error(t, err)

	noID := filepath.Join(dir, "noid.yaml")
	require.NoError(t, os.WriteFile(noID, []byte("records:\n  - fields:\n      name: x\n"), 0o600))
	_, err = ReadSeedFile(noID)
	assert.ErrorContains(t, err, "has no id")
}

func TestNewSource(t *testing.T) {
	s, err := NewSource(nil)
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = NewSource("bogus")
	assert.Error(t, err)
}
