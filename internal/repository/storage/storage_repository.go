package storage

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StorageConfig points at a Supabase-style object storage service.
type StorageConfig struct {
	BaseURL   string
	Bucket    string
	SecretKey string
}

type StorageRepository struct {
	storageConfig StorageConfig
}

func NewStorageRepository(cfg StorageConfig) *StorageRepository {
	return &StorageRepository{
		cfg,
	}
}

// Upload pushes a blob to the given folder and returns its stable public
// URL. The URL is an opaque string to the rest of the system.
func (r StorageRepository) Upload(folder, filename, contentType string, blob []byte) (string, error) {
	objectPath := fmt.Sprintf("%s/%s/%s", r.storageConfig.Bucket, folder, filename)
	url := fmt.Sprintf("%s/storage/v1/object/%s", r.storageConfig.BaseURL, objectPath)

	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(blob))
	if err != nil {
		return "", err
	}

	req.Header.Add("Content-Type", contentType)
	req.Header.Add("Authorization", "Bearer "+r.storageConfig.SecretKey)

	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("storage service return negative response %v: %s", res.StatusCode, string(bodyBytes))
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s", r.storageConfig.BaseURL, objectPath)
	return publicURL, nil
}
