package filestore

import (
	"context"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	cloudstorage "github.com/veedubyou/vocal-split/src/worker/internal/application/cloud_storage/entity"
	"google.golang.org/api/option"
)

var _ cloudstorage.FileStore = GoogleFileStore{}

type GoogleFileStore struct {
	client      *storage.Client
	storageHost string
}

func NewGoogleFileStore(storageHost string, options ...option.ClientOption) (GoogleFileStore, error) {
	client, err := storage.NewClient(context.Background(), options...)
	if err != nil {
		return GoogleFileStore{}, cerr.Wrap(err).Error("Failed to create cloud storage client")
	}

	return GoogleFileStore{
		client:      client,
		storageHost: strings.TrimSuffix(storageHost, "/"),
	}, nil
}

func (g GoogleFileStore) GetFile(ctx context.Context, fileURL string) ([]byte, error) {
	errctx := cerr.Field("file_url", fileURL)

	bucket, object, err := g.splitURL(fileURL)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to parse file url")
	}

	reader, err := g.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to open object for reading")
	}

	defer reader.Close()

	contents, err := io.ReadAll(reader)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to read object")
	}

	return contents, nil
}

func (g GoogleFileStore) WriteFile(ctx context.Context, fileURL string, fileContent []byte) error {
	errctx := cerr.Field("file_url", fileURL)

	bucket, object, err := g.splitURL(fileURL)
	if err != nil {
		return errctx.Wrap(err).Error("Failed to parse file url")
	}

	writer := g.client.Bucket(bucket).Object(object).NewWriter(ctx)
	if _, err := writer.Write(fileContent); err != nil {
		_ = writer.Close()
		return errctx.Wrap(err).Error("Failed to write object")
	}

	// the upload only completes on close
	if err := writer.Close(); err != nil {
		return errctx.Wrap(err).Error("Failed to finish object upload")
	}

	return nil
}

// splitURL takes host/bucket/object/path apart
func (g GoogleFileStore) splitURL(fileURL string) (string, string, error) {
	if !strings.HasPrefix(fileURL, g.storageHost+"/") {
		return "", "", cerr.Field("storage_host", g.storageHost).
			Error("File url is not on the configured storage host")
	}

	path := strings.TrimPrefix(fileURL, g.storageHost+"/")
	bucket, object, found := strings.Cut(path, "/")
	if !found || bucket == "" || object == "" {
		return "", "", cerr.Error("File url has no bucket or object")
	}

	return bucket, object, nil
}
