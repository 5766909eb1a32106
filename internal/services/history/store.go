package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/phambaophuc/guru-scan/internal/models"
	"github.com/phambaophuc/guru-scan/pkg/utils"
)

const (
	snapshotName = "meta.json"
	logName      = "history.jsonl"
)

// Store persists completed scans under a single base directory: one private
// folder per scan id holding the retained image copy and a pretty snapshot,
// plus a shared append-only JSONL log. Persist is not idempotent; a second
// call for the same id appends a duplicate log line.
type Store struct {
	baseDir string
	logPath string
	logger  *zap.Logger

	mu sync.Mutex // guards log appends
}

func NewStore(baseDir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history dir: %w", err)
	}

	return &Store{
		baseDir: baseDir,
		logPath: filepath.Join(baseDir, logName),
		logger:  logger,
	}, nil
}

// ScanDir returns the folder owned by the given scan id.
func (s *Store) ScanDir(scanID int64) string {
	return filepath.Join(s.baseDir, strconv.FormatInt(scanID, 10))
}

// RetainImageCopy copies the staged upload into the scan's folder, named
// "image" plus the original extension (default ".jpg"). A thumbnail is
// written alongside on a best-effort basis.
func (s *Store) RetainImageCopy(srcPath string, scanID int64, originalFilename string) (string, error) {
	dir := s.ScanDir(scanID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create scan dir: %w", err)
	}

	destPath := filepath.Join(dir, "image"+utils.ImageExt(originalFilename))
	if err := copyFile(srcPath, destPath); err != nil {
		return "", fmt.Errorf("failed to retain image copy: %w", err)
	}

	if err := writeThumbnail(destPath, dir); err != nil {
		s.logger.Warn("Failed to write scan thumbnail",
			zap.Int64("scan_id", scanID),
			zap.Error(err))
	}

	return destPath, nil
}

// Persist writes the record as a pretty snapshot inside its scan folder and
// appends it as one compact line to the shared history log.
func (s *Store) Persist(record *models.ScanRecord) error {
	dir := s.ScanDir(record.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create scan dir: %w", err)
	}

	snapshot, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scan record: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, snapshotName), snapshot, 0644); err != nil {
		return fmt.Errorf("failed to write scan snapshot: %w", err)
	}

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal log line: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append history log: %w", err)
	}

	return nil
}

// Recent returns up to limit records from the history log, newest first.
// A missing log means no scans yet, not an error. The returned slice is
// never nil so an empty history serializes as an empty list.
func (s *Store) Recent(limit int) ([]models.ScanRecord, error) {
	records := []models.ScanRecord{}

	s.mu.Lock()
	data, err := os.ReadFile(s.logPath)
	s.mu.Unlock()
	if err != nil {
		if os.IsNotExist(err) {
			return records, nil
		}
		return nil, fmt.Errorf("failed to read history log: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var rec models.ScanRecord
		if err := dec.Decode(&rec); err != nil {
			s.logger.Warn("Skipping unreadable history entry", zap.Error(err))
			break
		}
		records = append(records, rec)
	}

	// Newest first.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
