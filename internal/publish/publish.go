/*
Package publish uploads built distributions to an S3 compatible object store.
*/
package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/packethost/pkg/log"
	"github.com/pkg/errors"
	"github.com/zigcc/zbuild/internal/project"
)

// Config holds the object store connection settings.
type Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access-key"`
	SecretKey string `mapstructure:"secret-key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use-ssl"`
}

func (c Config) validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint is required")
	}

	if c.AccessKey == "" || c.SecretKey == "" {
		return errors.New("credentials are required")
	}

	if c.Bucket == "" {
		return errors.New("bucket is required")
	}

	return nil
}

// Store is an S3 compatible distribution store. It is safe for concurrent use.
type Store struct {
	log    log.Logger
	client *minio.Client
	bucket string
}

// NewStore creates a Store and ensures the configured bucket exists, creating it if missing.
func NewStore(ctx context.Context, logger log.Logger, cfg Config) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "object store config")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create object store client")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "check bucket existence")
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, "create bucket")
		}
	}

	return &Store{log: logger, client: client, bucket: cfg.Bucket}, nil
}

// ObjectKey derives the store key for a distribution file: `<name>/<version>/<filename>`.
func ObjectKey(doc project.Document, path string) string {
	return fmt.Sprintf("%s/%s/%s", doc.Project.Name, doc.Project.Version, filepath.Base(path))
}

// Upload streams the distribution at path to the store and returns the object key.
func (s *Store) Upload(ctx context.Context, doc project.Document, path string) (string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return "", err
	}

	key := ObjectKey(doc, path)

	s.log.With("key", key, "size", info.Size()).Info("uploading distribution")

	_, err = s.client.PutObject(ctx, s.bucket, key, fh, info.Size(), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return "", errors.Wrap(err, "upload distribution")
	}

	return key, nil
}
