package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ozgunabanoz/shopping-site-project/internal/infra/storage"

	"github.com/stretchr/testify/assert"
)

func TestDiskArtifactStore_Put(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewDiskArtifactStore(dir)
	assert.NoError(t, err)

	data := []byte("%PDF-1.4 fake")
	err = s.Put(context.Background(), "invoice-42.pdf", data)
	assert.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "invoice-42.pdf"))
	assert.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestDiskArtifactStore_Put_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewDiskArtifactStore(dir)
	assert.NoError(t, err)

	assert.NoError(t, s.Put(context.Background(), "invoice-42.pdf", []byte("old")))
	assert.NoError(t, s.Put(context.Background(), "invoice-42.pdf", []byte("new")))

	got, err := os.ReadFile(filepath.Join(dir, "invoice-42.pdf"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestDiskArtifactStore_Put_StripsPathFromKey(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewDiskArtifactStore(dir)
	assert.NoError(t, err)

	//keyにパスが混ざってもディレクトリの外へは書かない
	assert.NoError(t, s.Put(context.Background(), "../evil.pdf", []byte("x")))

	_, err = os.Stat(filepath.Join(dir, "evil.pdf"))
	assert.NoError(t, err)
}

func TestDiskArtifactStore_Put_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewDiskArtifactStore(dir)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Put(ctx, "invoice-42.pdf", []byte("x"))
	assert.Error(t, err)
}
