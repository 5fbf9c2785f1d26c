// Package cover turns image files into self-contained data URLs stored on
// catalog entries.
package cover

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrNotImage is returned when the file content is not an image.
	ErrNotImage = errors.New("cover is not an image")
	// ErrTooLarge is returned when the file exceeds the configured size limit.
	ErrTooLarge = errors.New("cover exceeds size limit")
	// ErrInvalidDataURL is returned by Describe for values it cannot parse.
	ErrInvalidDataURL = errors.New("invalid cover data URL")
)

const dataURLPrefix = "data:"

// Load reads the image at path and returns it as a base64 data URL. The type
// is sniffed from content, so a misnamed file is still judged correctly. A
// maxBytes of zero or less disables the size check.
func Load(path string, maxBytes int64) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat cover: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("cover path %q is a directory", path)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return "", fmt.Errorf("%w: %s is larger than %s", ErrTooLarge,
			humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(maxBytes)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read cover: %w", err)
	}
	return Encode(data)
}

// Encode wraps raw image bytes in a data URL.
func Encode(data []byte) (string, error) {
	mime := mimetype.Detect(data)
	if !isImage(mime) {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime.String())
	}
	return dataURLPrefix + baseType(mime.String()) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Info describes a stored cover.
type Info struct {
	MIME  string
	Bytes int64
}

// String renders the cover as "image/png, 1.2 kB".
func (i Info) String() string {
	return i.MIME + ", " + humanize.Bytes(uint64(i.Bytes))
}

// Describe reports the media type and decoded size of a data URL.
func Describe(dataURL string) (Info, error) {
	if !strings.HasPrefix(dataURL, dataURLPrefix) {
		return Info{}, ErrInvalidDataURL
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(dataURL, dataURLPrefix), ",")
	if !ok {
		return Info{}, ErrInvalidDataURL
	}
	mime, encoding, _ := strings.Cut(header, ";")
	if encoding != "base64" {
		return Info{MIME: mime, Bytes: int64(len(payload))}, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return Info{MIME: mime, Bytes: int64(len(decoded))}, nil
}

func isImage(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}

// baseType drops parameters such as "; charset=utf-8".
func baseType(mime string) string {
	base, _, _ := strings.Cut(mime, ";")
	return strings.TrimSpace(base)
}
