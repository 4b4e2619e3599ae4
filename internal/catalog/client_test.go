package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAllProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"products": [
				{"id": 1, "title": "Essence Mascara", "category": "beauty", "brand": "Essence", "price": 9.99, "rating": 4.94},
				{"id": 2, "title": "Eyeshadow Palette", "category": "beauty", "brand": "Glamour", "price": 19.99, "rating": 3.28}
			],
			"total": 2
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 100, nil)
	products := client.FetchAllProducts(context.Background())

	require.Len(t, products, 2)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "Essence Mascara", products[0].Title)
	assert.Equal(t, "beauty", products[0].Category)
	assert.Equal(t, 4.94, products[0].Rating)
}

func TestFetchAllProducts_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 100, nil)

	assert.Empty(t, client.FetchAllProducts(context.Background()))
}

func TestFetchAllProducts_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products": [{"id": `))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 100, nil)

	assert.Empty(t, client.FetchAllProducts(context.Background()))
}

func TestFetchAllProducts_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"products": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 50*time.Millisecond, 100, nil)

	assert.Empty(t, client.FetchAllProducts(context.Background()))
}

func TestFetchAllProducts_UnreachableHost(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second, 100, nil)

	assert.Empty(t, client.FetchAllProducts(context.Background()))
}

func TestCreateProductMapping(t *testing.T) {
	products := []Product{
		{ID: 1, Title: "Mascara", Category: "beauty", Brand: "Essence", Rating: 4.9},
		{ID: 42, Title: "Gadget", Category: "tech", Brand: "Acme", Rating: 3.5},
	}

	mapping := CreateProductMapping(products)

	require.Len(t, mapping, 2)
	assert.Equal(t, "Mascara", mapping[1].Title)
	assert.Equal(t, "tech", mapping[42].Category)
	assert.Equal(t, 3.5, mapping[42].Rating)
}

func TestCreateProductMapping_Empty(t *testing.T) {
	assert.Empty(t, CreateProductMapping(nil))
}
