package http_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"github.com/DylanNgo1808/AI-Helpdesk/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	f := http.NewFetcher()
	html, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html><body>hello</body></html>", html)
}

func TestFetcher_SendsUserAgent(t *testing.T) {
	t.Parallel()

	var ua string
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		ua = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	f := http.NewFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "AI-Helpdesk/1.0", ua)
}

func TestFetcher_NonOKStatusIsIOError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNotFound)
	}))
	defer srv.Close()

	f := http.NewFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, helpdesk.EIO, helpdesk.ErrorCode(err))
}

func TestFetcher_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	f := http.NewFetcher()
	_, err := f.Fetch(ctx, srv.URL)
	require.Error(t, err)
}

func TestFetcher_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	f := http.NewFetcher(http.WithTimeout(10 * time.Millisecond))
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}
