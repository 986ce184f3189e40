package localfs

import (
	"doc-intake/internal/core/domain"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Source turns local paths into drops, the way a file picker would
type Source struct {
	logger *slog.Logger
}

// NewSource creates a Source
func NewSource(logger *slog.Logger) *Source {
	return &Source{logger: logger}
}

// Drop describes paths as one drop. Regular files are offered for admission, every other
// path is reported as refused by the source. Order follows paths.
func (s *Source) Drop(paths []string) domain.Drop {
	var drop domain.Drop
	for _, path := range paths {
		file, err := s.describe(path)
		if err != nil {
			s.logger.Debug("path refused", "path", path, "error", err)
			drop.Rejected = append(drop.Rejected, domain.PlatformRejection{File: file, Reason: err.Error()})
			continue
		}
		drop.Files = append(drop.Files, file)
	}
	return drop
}

func (s *Source) describe(path string) (domain.RawFile, error) {
	file := domain.RawFile{Name: filepath.Base(path)}

	info, err := os.Stat(path)
	if err != nil {
		return file, fmt.Errorf("cannot read %s: %w", path, err)
	}
	switch {
	case info.IsDir():
		return file, fmt.Errorf("%s is a directory", path)
	case !info.Mode().IsRegular():
		return file, fmt.Errorf("%s is not a regular file", path)
	}
	file.Size = info.Size()

	f, err := os.Open(path)
	if err != nil {
		return file, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	mediaType, err := declaredType(path, f)
	if err != nil {
		return file, fmt.Errorf("cannot read %s: %w", path, err)
	}
	file.MediaType = mediaType
	file.Open = func() (io.ReadCloser, error) {
		return os.Open(path)
	}
	return file, nil
}

// declaredType comes from the extension, the content is sniffed when the extension is unknown
func declaredType(path string, content io.Reader) (string, error) {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType, nil
		}
	}

	detected, err := mimetype.DetectReader(content)
	if err != nil {
		return "", err
	}
	mediaType, _, err := mime.ParseMediaType(detected.String())
	if err != nil {
		return "application/octet-stream", nil
	}
	return mediaType, nil
}
