package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/autonomy-cases/external/fetcher"
)

func TestFetch(t *testing.T) {
	body := "Area name,Area type\nEngland,Nation\n"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method, "wrong method")
		assert.Empty(t, r.URL.RawQuery, "unexpected query")
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	actual, err := fetcher.New(nil).Fetch(context.Background(), ts.URL)
	assert.Nil(t, err, "wrong Fetch")
	assert.Equal(t, body, actual, "wrong body")
}

func TestFetchStripsByteOrderMark(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("\xef\xbb\xbfArea name\nLondon\n"))
	}))
	defer ts.Close()

	actual, err := fetcher.New(ts.Client()).Fetch(context.Background(), ts.URL)
	assert.Nil(t, err, "wrong Fetch")
	assert.Equal(t, "Area name\nLondon\n", actual, "byte order mark not removed")
}

func TestFetchInvalidUTF8(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Area name\nSt\xffHelens\n"))
	}))
	defer ts.Close()

	actual, err := fetcher.New(ts.Client()).Fetch(context.Background(), ts.URL)
	assert.Empty(t, actual)

	var transportErr *fetcher.TransportError
	require.True(t, errors.As(err, &transportErr), "expect transport error, got %v", err)
	assert.Equal(t, http.StatusOK, transportErr.StatusCode)
	assert.Contains(t, err.Error(), "invalid utf-8")
}

func TestFetchUnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	actual, err := fetcher.New(nil).Fetch(context.Background(), ts.URL)
	assert.Empty(t, actual)

	var transportErr *fetcher.TransportError
	require.True(t, errors.As(err, &transportErr), "expect transport error, got %v", err)
	assert.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)
	assert.Equal(t, ts.URL, transportErr.URL)
}

func TestFetchConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := fetcher.New(nil).Fetch(context.Background(), url)

	var transportErr *fetcher.TransportError
	require.True(t, errors.As(err, &transportErr), "expect transport error, got %v", err)
	assert.Equal(t, 0, transportErr.StatusCode)
}

func TestFetchTimeout(t *testing.T) {
	done := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-done
	}))
	defer ts.Close()
	defer close(done)

	client := &http.Client{Timeout: 50 * time.Millisecond}
	_, err := fetcher.New(client).Fetch(context.Background(), ts.URL)

	var transportErr *fetcher.TransportError
	assert.True(t, errors.As(err, &transportErr), "expect transport error, got %v", err)
}

func TestFunc(t *testing.T) {
	f := fetcher.Func(func(_ context.Context, url string) (string, error) {
		return "fetched " + url, nil
	})

	actual, err := f.Fetch(context.Background(), "x")
	assert.Nil(t, err)
	assert.Equal(t, "fetched x", actual)
}
