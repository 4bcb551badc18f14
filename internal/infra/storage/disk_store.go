package storage

import (
	"context"
	"os"
	"path/filepath"
)

// DiskArtifactStore は生成済みPDFをローカルのディレクトリに保存する。
// 一時ファイルに書いてからrenameするので、読み手が途中状態を見ることはない。
type DiskArtifactStore struct {
	dir string
}

func NewDiskArtifactStore(dir string) (*DiskArtifactStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskArtifactStore{dir: dir}, nil
}

func (s *DiskArtifactStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dst := filepath.Join(s.dir, filepath.Base(key))

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), dst)
}
