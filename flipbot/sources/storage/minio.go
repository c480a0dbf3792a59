package storage

import (
	"bytes"
	"context"
	"crypto/md5" // For simple URL hashing
	"encoding/json"
	"fmt"
	"os"
	"path"
	"time"

	"flipbot/flipbot/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rotisserie/eris"
)

// MinIOClient archives uploaded manifests and caches scraped pages.
type MinIOClient struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

type ScrapeObject struct {
	URL       string    `json:"url"`
	Text      string    `json:"extracted_text"`
	Metadata  string    `json:"metadata"`
	Timestamp time.Time `json:"timestamp"`
}

// scrapeTTL bounds how long a cached page is served.
const scrapeTTL = 24 * time.Hour

func NewMinIOClient(ctx context.Context, cfg config.Config) (*MinIOClient, error) {
	bucket := cfg.MinIOBucket
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: cfg.MinIOSecure,
		},
	)
	if err != nil {
		return nil, eris.Wrap(err, "minio: new client")
	}
	// Create bucket if not exists
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, eris.Wrapf(err, "minio: check bucket %s", bucket)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, eris.Wrapf(err, "minio: make bucket %s", bucket)
		}
	}
	return &MinIOClient{client: client, bucket: bucket, ttl: scrapeTTL}, nil
}

// ScrapeKey is the object key a page's scrape is stored under.
func ScrapeKey(url string) string {
	return path.Join("scrapes", fmt.Sprintf("%x.json", md5.Sum([]byte(url))))
}

// UploadKey is the object key an uploaded manifest file is archived under.
func UploadKey(id uuid.UUID, filename string) string {
	return path.Join("uploads", id.String(), path.Base(filename))
}

func (m *MinIOClient) UploadScrape(ctx context.Context, url, text, metadata string) (string, error) {
	key := ScrapeKey(url)
	data, err := json.Marshal(ScrapeObject{
		URL:       url,
		Text:      text,
		Metadata:  metadata,
		Timestamp: time.Now(),
	})
	if err != nil {
		return "", err
	}

	_, err = m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", eris.Wrapf(err, "minio: put %s", key)
	}
	return key, nil
}

// GetScrape returns the cached text for url. Missing, unreadable and expired
// entries are all errors.
func (m *MinIOClient) GetScrape(ctx context.Context, url string) (string, error) {
	key := ScrapeKey(url)
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", eris.Wrapf(err, "minio: get %s", key)
	}
	defer obj.Close()

	var cached ScrapeObject
	if err := json.NewDecoder(obj).Decode(&cached); err != nil {
		return "", eris.Wrapf(err, "minio: decode %s", key)
	}
	if time.Since(cached.Timestamp) > m.ttl {
		return "", eris.Errorf("minio: %s expired", key)
	}
	return cached.Text, nil
}

// ArchiveUpload copies the file at localPath into the bucket.
func (m *MinIOClient) ArchiveUpload(ctx context.Context, id uuid.UUID, filename, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", eris.Wrap(err, "minio: open upload")
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", eris.Wrap(err, "minio: stat upload")
	}

	key := UploadKey(id, filename)
	_, err = m.client.PutObject(ctx, m.bucket, key, f, info.Size(), minio.PutObjectOptions{
		ContentType:  "application/octet-stream",
		UserMetadata: map[string]string{"original-name": filename},
	})
	if err != nil {
		return "", eris.Wrapf(err, "minio: put %s", key)
	}
	return key, nil
}
