package media

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://api.example.com"

func TestNormalizeURLIsCanonical(t *testing.T) {
	for _, kind := range []Kind{Products, PopularProducts, NewArrivals} {
		want := base + "/static/uploads/" + string(kind) + "/roller.png"
		forms := []string{
			"roller.png",
			"/static/uploads/" + string(kind) + "/roller.png",
			want,
		}
		for _, ref := range forms {
			assert.Equal(t, want, NormalizeURL(base, kind, ref), "kind %s ref %q", kind, ref)
		}
	}
}

func TestNormalizeURLEdgeCases(t *testing.T) {
	assert.Equal(t, Placeholder, NormalizeURL(base, Products, "  "))
	assert.Equal(t, "http://cdn.example.com/a.png", NormalizeURL(base, Products, "http://cdn.example.com/a.png"))
	assert.Equal(t, base+"/static/a.png", NormalizeURL(base+"/", Products, "/static/a.png"))
	assert.Equal(t, base+"/uploads/a.png", NormalizeURL(base, Products, "uploads/a.png"))
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestNewImage(t *testing.T) {
	img, err := NewImage("a.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.True(t, strings.HasPrefix(img.DataURL(), "data:image/png;base64,"))
	assert.Equal(t, len(pngHeader), img.Size())

	_, err = NewImage("a.txt", strings.NewReader("plain text"))
	assert.ErrorIs(t, err, ErrImageType)

	big := append(append([]byte{}, pngHeader...), make([]byte, MaxImageSize)...)
	_, err = NewImage("big.png", bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}
