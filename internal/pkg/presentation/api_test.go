package presentation

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
)

func TestHealthEndpointReturnsOK(t *testing.T) {
	is, api := testSetup(t, "")

	server := httptest.NewServer(api.router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	is.NoErr(err)
	defer resp.Body.Close()

	is.Equal(resp.StatusCode, http.StatusOK)
}

func TestDcatEndpointServesTurtle(t *testing.T) {
	is, api := testSetup(t, "<http://example.com/ds/1> a <http://www.w3.org/ns/dcat#Dataset> .")

	server := httptest.NewServer(api.router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/datasets/dcat")
	is.NoErr(err)
	defer resp.Body.Close()

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(resp.Header.Get("Content-Type"), "text/turtle")

	buf := bytes.NewBuffer(nil)
	_, err = buf.ReadFrom(resp.Body)
	is.NoErr(err)
	is.True(buf.Len() > 0)
}

func testSetup(t *testing.T, dcat string) (*is.I, *catalogAPI) {
	is := is.New(t)

	r := chi.NewRouter()
	api := newCatalogAPI(r, context.Background(), bytes.NewBufferString(dcat))

	return is, api
}
