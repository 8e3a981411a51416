package paintapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintcompany/internal/models"
)

func TestDecodeListShapesAgree(t *testing.T) {
	records := `[{"id":1,"title":"Dashain offer","type":"news"},{"id":2,"title":"Expo","type":"event","highlighted":true}]`
	bodies := []string{
		records,
		`{"items":` + records + `,"total":2}`,
		`{"results":` + records + `,"next":null}`,
	}

	var pages []Page[models.NewsEvent]
	for _, body := range bodies {
		page, err := DecodeList[models.NewsEvent]([]byte(body))
		require.NoError(t, err, body)
		pages = append(pages, page)
	}
	assert.Equal(t, pages[0], pages[1])
	assert.Equal(t, pages[0], pages[2])
	assert.Len(t, pages[0].Items, 2)
	assert.Equal(t, 2, pages[0].Total)
}

func TestDecodeListEmpty(t *testing.T) {
	a, err := DecodeList[models.Product]([]byte(`[]`))
	require.NoError(t, err)
	b, err := DecodeList[models.Product]([]byte(`{"items":[]}`))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotNil(t, a.Items)
}

func TestDecodeListRejectsOtherShapes(t *testing.T) {
	for _, body := range []string{``, `"text"`, `{"data":[]}`, `{"items":null}`, `{"items":{"id":1}}`, `42`} {
		_, err := DecodeList[models.Product]([]byte(body))
		assert.ErrorIs(t, err, ErrMalformed, body)
	}
}

func TestDecodeListNext(t *testing.T) {
	page, err := DecodeList[models.Product]([]byte(`{"results":[{"id":1}],"next":"/admin/products/?page=2","total":9}`))
	require.NoError(t, err)
	assert.Equal(t, "/admin/products/?page=2", page.Next)
	assert.Equal(t, 9, page.Total)
}
