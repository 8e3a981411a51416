// Package media normalizes image references coming from the API and checks
// images uploaded through the admin forms.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// Kind is the upload folder an image belongs to on the API server.
type Kind string

const (
	Products        Kind = "products"
	PopularProducts Kind = "popular_products"
	NewArrivals     Kind = "new_arrivals"
)

// Placeholder is served when a record has no image.
const Placeholder = "/static/img/placeholder.svg"

// MaxImageSize is the upload ceiling accepted by the admin forms.
const MaxImageSize = 10 << 20

var allowedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

var (
	ErrImageType     = errors.New("Please select a valid image file (PNG, JPG, GIF)")
	ErrImageTooLarge = errors.New("Image size must be less than 10MB")
)

// NormalizeURL turns any stored image reference into an absolute URL:
// absolute http(s) URLs are kept, rooted paths such as /static/... are
// resolved against base, and bare filenames live in the kind's upload folder.
func NormalizeURL(base string, kind Kind, ref string) string {
	ref = strings.TrimSpace(ref)
	base = strings.TrimRight(base, "/")
	switch {
	case ref == "":
		return Placeholder
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	case strings.HasPrefix(ref, "/"):
		return base + ref
	case !strings.Contains(ref, "/"):
		return base + "/static/uploads/" + string(kind) + "/" + ref
	}
	return base + "/" + ref
}

// Image is a validated upload held in memory until the admin confirms.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReadImage loads and validates an uploaded form file.
func ReadImage(fh *multipart.FileHeader) (*Image, error) {
	if fh.Size > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return NewImage(fh.Filename, f)
}

// NewImage reads r fully and checks its sniffed type and size.
func NewImage(filename string, r io.Reader) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	ct := http.DetectContentType(data)
	if !allowedTypes[ct] {
		return nil, ErrImageType
	}
	return &Image{Filename: filename, ContentType: ct, Data: data}, nil
}

// DataURL renders the image inline for the confirmation preview.
func (i *Image) DataURL() string {
	return "data:" + i.ContentType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Size returns the image size in bytes.
func (i *Image) Size() int { return len(i.Data) }
