package fetcher

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/unicode"
)

const (
	logPrefix = "fetcher"
)

var (
	errUnexpectedStatus = fmt.Errorf("unexpected status")
	errInvalidEncoding  = fmt.Errorf("invalid utf-8 body")
)

// Fetcher - retrieve a remote document as text
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Func adapts an ordinary function into a Fetcher
type Func func(ctx context.Context, url string) (string, error)

// Fetch calls f(ctx, url)
func (f Func) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// TransportError is returned for any failure to obtain a response body:
// DNS, refused connections, timeouts, and non-2xx statuses.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %s: %d %s", e.URL, e.Err, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type httpFetcher struct {
	client *http.Client
}

// Fetch performs a GET and returns the whole body decoded as UTF-8. A leading
// byte order mark is dropped; a body that is not valid UTF-8 is rejected.
func (h httpFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if nil != err {
		return "", &TransportError{URL: url, Err: err}
	}

	resp, err := h.client.Do(req)
	if nil != err {
		return "", &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TransportError{URL: url, StatusCode: resp.StatusCode, Err: errUnexpectedStatus}
	}

	raw, err := ioutil.ReadAll(resp.Body)
	if nil != err {
		return "", &TransportError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	// the decoder would turn bad bytes into U+FFFD
	if !utf8.Valid(raw) {
		return "", &TransportError{URL: url, StatusCode: resp.StatusCode, Err: errInvalidEncoding}
	}

	body, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if nil != err {
		return "", &TransportError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"url":    url,
		"bytes":  len(body),
	}).Debug("fetched document")

	return string(body), nil
}

// New - new http fetcher, nil client falls back to http.DefaultClient
func New(client *http.Client) Fetcher {
	c := http.DefaultClient
	if client != nil {
		c = client
	}

	return &httpFetcher{
		client: c,
	}
}
