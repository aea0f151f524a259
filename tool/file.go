package tool

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/moyoez/filestation-go/types"
)

const defaultFileType = "application/octet-stream"

// DescribeFile builds a FileDescriptor for a local path.
// Directories are described with zero size and empty type, the same shape a browser
// reports for a dropped folder, so the session's folder check rejects them.
func DescribeFile(path string) (types.FileDescriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.FileDescriptor{}, fmt.Errorf("failed to stat file: %w", err)
	}
	name := filepath.Base(path)
	if info.IsDir() {
		return types.FileDescriptor{Name: name, Path: path}, nil
	}

	return types.FileDescriptor{
		Name: name,
		Size: info.Size(),
		Type: detectFileType(path, info.Size()),
		Path: path,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// DescribeFiles describes every path, stopping at the first failure.
func DescribeFiles(paths []string) ([]types.FileDescriptor, error) {
	files := make([]types.FileDescriptor, 0, len(paths))
	for _, p := range paths {
		fd, err := DescribeFile(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		files = append(files, fd)
	}
	return files, nil
}

// detectFileType prefers the extension, then sniffs content. Regular files always get a
// type so that an empty file is never mistaken for a folder.
func detectFileType(path string, size int64) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	if size > 0 {
		if m, err := mimetype.DetectFile(path); err == nil {
			return m.String()
		}
		DefaultLogger.Debugf("Failed to sniff content type of %s", path)
	}
	return defaultFileType
}
