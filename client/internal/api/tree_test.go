package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNodeHashByID(t *testing.T) {
	t.Parallel()
	srv, got := newStub(t, http.StatusOK, `{"hash": "0xnode"}`)

	res, err := GetNodeHashByID(context.Background(), newSession(srv.URL), "2", "5")
	require.NoError(t, err)
	assert.Equal(t, "0xnode", res["hash"])
	assert.Equal(t, PathGetNodeHashByID, got.path)
	assert.Equal(t, "2", got.query.Get("level"))
	assert.Equal(t, "5", got.query.Get("index"))
}

func TestGetTreeStateAndHealth(t *testing.T) {
	t.Parallel()
	srv, got := newStub(t, http.StatusOK, `{"numLeaves": "10"}`)

	res, err := GetTreeState(context.Background(), newSession(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "10", res["numLeaves"])
	assert.Equal(t, PathGetTreeState, got.path)

	srv2, got2 := newStub(t, http.StatusOK, `{"status": "ok"}`)
	res, err = Health(context.Background(), newSession(srv2.URL))
	require.NoError(t, err)
	assert.Equal(t, "ok", res["status"])
	assert.Equal(t, PathHealth, got2.path)
}
