// Package filex opens local files for upload to object storage.
package filex

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// MaxImageSize bounds profile pictures and event images.
const MaxImageSize = 5 << 20

// Image is an opened image file ready to be streamed.
type Image struct {
	*os.File
	Size        int64
	ContentType string
}

// OpenImage opens path and checks that it is an image of at most MaxImageSize
// bytes. The caller closes the returned file.
func OpenImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > MaxImageSize {
		f.Close()
		return nil, fmt.Errorf("%s is larger than %d bytes", path, MaxImageSize)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		f.Close()
		return nil, fmt.Errorf("%s is not an image (%s)", path, contentType)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("seek %s: %w", path, err)
	}

	return &Image{File: f, Size: fi.Size(), ContentType: contentType}, nil
}
