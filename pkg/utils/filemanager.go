// =============================================================================
// Sales Analytics CLI - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the pipeline, including:
//   - Sales data reading with encoding fallback
//   - Directory management
//   - Input file archival (moving processed files)
//
// ENCODING STRATEGY:
//   Input files arrive from several upstream exports and are not guaranteed
//   to be UTF-8. The reader accepts the bytes as-is when they are valid
//   UTF-8 and otherwise decodes them as Latin-1 (which maps every byte, so
//   legacy Windows-1252 exports are readable too).
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to the archive directory after successful runs
//     when archival is enabled.
//   - A failed rename (e.g. across devices) falls back to copy-and-delete.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// =============================================================================
// SALES DATA READING
// =============================================================================

// ReadSalesData reads the raw sales file and returns its data lines.
//
// The first line is treated as a column header and skipped; blank lines are
// dropped. A missing file is not an error: it is logged once and an empty
// slice is returned, so the pipeline can finish with an empty report.
//
// logger may be nil, in which case slog.Default() is used.
func ReadSalesData(path string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("sales data file not found, continuing with no data", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sales data file %s: %w", path, err)
	}

	text, err := decodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sales data file %s: %w", path, err)
	}

	rawLines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	lines := make([]string, 0, len(rawLines))
	for i, line := range rawLines {
		if i == 0 {
			// Header row.
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	logger.Debug("sales data file read", "path", path, "lines", len(lines))
	return lines, nil
}

// decodeBytes converts file bytes to a string, accepting valid UTF-8 as-is
// and falling back to Latin-1 for legacy exports.
func decodeBytes(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("latin-1 decode failed: %w", err)
	}
	return string(decoded), nil
}

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles directory setup and input archival for the pipeline.
type FileManager struct {
	// OutputDirs are the directories output files are written to.
	OutputDirs []string

	// ArchiveDir is the directory processed input files are moved to.
	ArchiveDir string

	// ArchiveOnSuccess determines whether inputs are archived after a
	// successful run.
	ArchiveOnSuccess bool
}

// NewFileManager creates a FileManager for the given output and archive
// directories.
func NewFileManager(outputDirs []string, archiveDir string, archiveOnSuccess bool) *FileManager {
	return &FileManager{
		OutputDirs:       outputDirs,
		ArchiveDir:       archiveDir,
		ArchiveOnSuccess: archiveOnSuccess,
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := append([]string{}, fm.OutputDirs...)
	if fm.ArchiveOnSuccess {
		dirs = append(dirs, fm.ArchiveDir)
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ArchiveInputFile moves an input file to the archive directory and returns
// the archived path. When archival is disabled the file stays in place.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := filepath.Join(fm.ArchiveDir, filepath.Base(filePath))

	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	// Move the file.
	if err := os.Rename(filePath, archivePath); err != nil {
		// If rename fails (e.g., cross-device), try copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
