package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrapiStripsSuffixAndParsesPrice(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"symbol":"PETR4","regularMarketPrice":29.9}]}`))
	}))
	defer server.Close()

	provider := NewBrapiProvider(server.URL, "", server.Client())

	price, err := provider.Fetch(context.Background(), "PETR4.SA")
	require.NoError(t, err)

	assert.Equal(t, "/quote/PETR4", gotPath)
	assert.Equal(t, "29.9", price.String())
}

func TestBrapiSendsToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"results":[{"symbol":"VALE3","regularMarketPrice":61.5}]}`))
	}))
	defer server.Close()

	provider := NewBrapiProvider(server.URL, "secret", server.Client())

	_, err := provider.Fetch(context.Background(), "VALE3")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestBrapiFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"not found", http.StatusNotFound, ""},
		{"malformed body", http.StatusOK, `{"results":`},
		{"empty results", http.StatusOK, `{"results":[]}`},
		{"zero price", http.StatusOK, `{"results":[{"symbol":"PETR4","regularMarketPrice":0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			provider := NewBrapiProvider(server.URL, "", server.Client())

			_, err := provider.Fetch(context.Background(), "PETR4.SA")
			require.Error(t, err)

			var fetchErr *FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, "brapi", fetchErr.Provider)
			assert.Equal(t, "PETR4.SA", fetchErr.Symbol)
		})
	}
}

func TestBrapiRespectsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	provider := NewBrapiProvider(server.URL, "", server.Client())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := provider.Fetch(ctx, "PETR4.SA")
	require.Error(t, err)

	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
}
