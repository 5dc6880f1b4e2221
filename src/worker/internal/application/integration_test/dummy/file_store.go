package dummy

import (
	"context"
	"sync"

	cloudstorage "github.com/veedubyou/vocal-split/src/worker/internal/application/cloud_storage/entity"
)

var _ cloudstorage.FileStore = &FileStore{}

func NewDummyFileStore() *FileStore {
	return &FileStore{
		Unavailable: false,
		State:       make(map[string][]byte),
	}
}

type FileStore struct {
	Unavailable bool
	State       map[string][]byte
	mutex       sync.RWMutex
}

func (f *FileStore) GetFile(ctx context.Context, fileURL string) ([]byte, error) {
	if f.Unavailable {
		return nil, NetworkFailure
	}

	f.mutex.RLock()
	defer f.mutex.RUnlock()

	contents, ok := f.State[fileURL]
	if !ok {
		return nil, NotFound
	}

	return contents, nil
}

func (f *FileStore) WriteFile(ctx context.Context, fileURL string, fileContent []byte) error {
	if f.Unavailable {
		return NetworkFailure
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.State[fileURL] = fileContent
	return nil
}
