package cache

import (
	"context"
	"errors"
	"io"

	"github.com/daemroni/leaflove/internal/services"
)

var ErrImageTooLarge = errors.New("image exceeds the 5 MB limit")

// MaxImageBytes mirrors the store's upload cap so oversized files are
// refused before a single byte leaves the client.
const MaxImageBytes = 5 * 1024 * 1024

// UploadPlantImage uploads an image and patches the plant with the
// returned URL. Nothing changes locally until the upload succeeds; the
// patch then follows the usual optimistic contract.
func (cache *Cache) UploadPlantImage(ctx context.Context, plantID string, fileName string, content io.Reader, size int64) error {
	if size > MaxImageBytes {
		return ErrImageTooLarge
	}

	cache.mu.RLock()
	known := plantIndex(cache.snapshot.Plants, plantID) >= 0
	cache.mu.RUnlock()
	if !known {
		return ErrPlantNotFound
	}

	imageURL, err := cache.store.UploadImage(ctx, fileName, content, size)
	if err != nil {
		return err
	}

	return cache.EditPlant(ctx, plantID, services.PlantPatch{ImageURL: &imageURL})
}
