package gateways

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
)

func pageQuery(source string) entities.ReleaseQuery {
	return entities.ReleaseQuery{
		Provider: entities.ProviderPage,
		Source:   source,
	}
}

func TestPageSource_ScansRelativeAndAbsoluteLinks(t *testing.T) {
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<html><body>
			<a href="/files/app-2.4.1-armhf.deb">app-2.4.1-armhf.deb</a>
			<a href="readme.txt">readme</a>
			Mirror: %s/files/app-2.4.1-armhf.deb
		</body></html>`, ts.URL)
	}))
	defer ts.Close()

	source := NewPageSource()
	assets, err := source.FetchAssets(context.Background(), pageQuery(ts.URL+"/downloads/"))
	require.NoError(t, err)

	names := make([]string, len(assets))
	for i, a := range assets {
		names[i] = a.Name
	}
	assert.Contains(t, names, "app-2.4.1-armhf.deb")
	assert.Contains(t, names, "readme.txt")

	// relative href resolved against the page URL
	assert.Equal(t, ts.URL+"/files/app-2.4.1-armhf.deb", assets[0].DownloadURL)
}

func TestPageSource_DropsDuplicatesKeepsOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<a href="/a.deb">x</a> <a href="/b.deb">y</a> <a href="/a.deb">x again</a>`)
	}))
	defer ts.Close()

	source := NewPageSource()
	assets, err := source.FetchAssets(context.Background(), pageQuery(ts.URL))
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "a.deb", assets[0].Name)
	assert.Equal(t, "b.deb", assets[1].Name)
}

func TestPageSource_MirrorDownloadLinksNameThePrecedingSegment(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<a href="/projects/app/files/app-3.0.AppImage/download">get it</a>`)
	}))
	defer ts.Close()

	source := NewPageSource()
	assets, err := source.FetchAssets(context.Background(), pageQuery(ts.URL))
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "app-3.0.AppImage", assets[0].Name)
}

func TestPageSource_NonOKStatusIsAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	source := NewPageSource()
	_, err := source.FetchAssets(context.Background(), pageQuery(ts.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestPageSource_RejectsNonURLSource(t *testing.T) {
	source := NewPageSource()
	_, err := source.FetchAssets(context.Background(), pageQuery("not a url"))
	require.Error(t, err)
}
