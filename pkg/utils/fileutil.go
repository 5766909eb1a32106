package utils

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ImageExt returns the extension of the original upload, preserved verbatim
// (including case), or ".jpg" when the filename has none.
func ImageExt(filename string) string {
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	return ".jpg"
}

// GenerateStagingName builds a collision-free name for a staged upload.
func GenerateStagingName(originalFilename string) string {
	return fmt.Sprintf("scan_%s%s", uuid.New().String(), ImageExt(originalFilename))
}

// GenerateStorageKey builds a unique object key for remote image hosting.
func GenerateStorageKey(filename string) string {
	ext := ImageExt(filename)
	timestamp := time.Now().Unix()
	id := uuid.New().String()[:8]

	return fmt.Sprintf("scans/%d_%s%s", timestamp, id, ext)
}
