package paintapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paintcompany/internal/media"
	"paintcompany/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestProductsQueryAndDecode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.Empty(t, r.Header.Get("Authorization"))
		io.WriteString(w, `{"items":[{"id":1,"name":"Primer X","category":"Primer","price1l":"500","features":"[\"Durable\"]"}]}`)
	})

	products, err := c.Products(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Primer X", products[0].Name)
	assert.Equal(t, models.Price("500"), products[0].Get(models.Price1L))
}

func TestListRejectsInvalidRecords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"name":"no id"}]`)
	})
	_, err := c.PopularProducts(context.Background())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestAdminListFollowsNext(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		if r.URL.Query().Get("page") == "2" {
			io.WriteString(w, `{"results":[{"id":2,"name":"B"}],"next":null}`)
			return
		}
		io.WriteString(w, `{"results":[{"id":1,"name":"A"}],"next":"/admin/products/?page=2"}`)
	})

	products, err := c.WithToken("tok").AdminProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCreateProductMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/products/", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "Primer X", r.FormValue("name"))
		assert.Equal(t, `["Durable","Low VOC"]`, r.FormValue("features"))
		assert.Equal(t, "500", r.FormValue("price1l"))
		assert.Equal(t, "", r.FormValue("price50g"))
		assert.Contains(t, r.MultipartForm.Value, "price50g")
		assert.Equal(t, "In Stock", r.FormValue("stock"))

		file, header, err := r.FormFile("image")
		if assert.NoError(t, err) {
			file.Close()
			assert.Equal(t, "can.png", header.Filename)
			assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		}

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":7,"name":"Primer X","category":"Primer"}`)
	})

	in := models.ProductInput{
		Name:     "Primer X",
		Category: "Primer",
		Features: models.Features{"Durable", "Low VOC"},
		Stock:    models.DefaultStock,
	}
	in.Set(models.Price1L, "500")
	img := &media.Image{Filename: "can.png", ContentType: "image/png", Data: []byte("\x89PNG")}

	saved, err := c.WithToken("tok").CreateProduct(context.Background(), in, img)
	require.NoError(t, err)
	assert.Equal(t, 7, saved.ID)
}

func TestNewsEventHighlightedField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/news-events/4", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "false", r.FormValue("highlighted"))
		assert.NotContains(t, r.MultipartForm.Value, "end_date")
		io.WriteString(w, `{"id":4,"title":"T"}`)
	})
	_, err := c.UpdateNewsEvent(context.Background(), 4, models.NewsEventInput{Title: "T", Type: "news", Content: "c", Date: "2024-01-01"})
	require.NoError(t, err)
}

func TestLoginSendsForm(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"detail":"Incorrect username or password"}`)
			return
		}
		io.WriteString(w, `{"access_token":"abc","token_type":"bearer"}`)
	})

	token, err := c.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = c.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDeleteAndMarkRead(t *testing.T) {
	var got []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = append(got, r.Method+" "+r.URL.Path+" "+string(bytes.TrimSpace(body)))
		w.WriteHeader(http.StatusNoContent)
	})
	admin := c.WithToken("tok")
	require.NoError(t, admin.DeleteSubmission(context.Background(), 3))
	require.NoError(t, admin.MarkSubmissionRead(context.Background(), 5))
	assert.Equal(t, []string{
		"DELETE /admin/contact/submissions/3 ",
		`PUT /admin/contact/submissions/5 {"read_status":true}`,
	}, got)
}

func TestTransportErrors(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		io.WriteString(w, `[]`)
	}))
	defer slow.Close()

	c := New(slow.URL, WithTimeouts(20*time.Millisecond, 20*time.Millisecond))
	_, err := c.NewArrivals(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTimeout)

	closed := httptest.NewServer(http.NotFoundHandler())
	url := closed.URL
	closed.Close()
	_, err = New(url).ContactInfo(context.Background())
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestCanceledContextIsNotMapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.NewsEvents(ctx, NewsQuery{Limit: 3})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrNoResponse)
}
