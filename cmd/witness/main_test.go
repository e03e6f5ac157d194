package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WitnessCo/client-go/witnesstest"
)

// run executes the CLI against srv and returns stdout and stderr.
func run(t *testing.T, srv *witnesstest.Server, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--base-url", srv.URL}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func decode(t *testing.T, out string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m), out)
	return m
}

func TestCLI_PrintsResponseForEverySubcommand(t *testing.T) {
	srv := witnesstest.NewServer()
	defer srv.Close()

	cases := []struct {
		args  []string
		path  string
		query map[string]string
	}{
		{[]string{"health"}, "/_health", nil},
		{[]string{"latest-checkpoint", "--chain-id", "84532"}, "/getLatestCheckpoint", map[string]string{"chainId": "84532"}},
		{[]string{"latest-checkpoints"}, "/getLatestCheckpointForAllChains", nil},
		{[]string{"checkpoint-covering", "--leaf-index", "3"}, "/getEarliestCheckpointCoveringLeafIndex", map[string]string{"leafIndex": "3", "chainId": "8453"}},
		{[]string{"checkpoint-by-tx", "--tx-hash", "0xfeed"}, "/getCheckpointByTransactionHash", map[string]string{"txHash": "0xfeed"}},
		{[]string{"checkpoint-by-timestamp", "--timestamp", "1700000000"}, "/getCheckpointByTimestamp", map[string]string{"timestamp": "1700000000"}},
		{[]string{"leaf-index", "--leaf-hash", "0x01"}, "/getLeafIndexByHash", map[string]string{"leafHash": "0x01"}},
		{[]string{"leaf-timestamp", "--leaf-hash", "0x01"}, "/getTimestampByLeafHash", map[string]string{"leafHash": "0x01"}},
		{[]string{"node-hash", "--level", "0", "--index", "1"}, "/getNodeHashById", map[string]string{"level": "0", "index": "1"}},
		{[]string{"proof", "--leaf-hash", "0x01", "--target-tree-size", "2"}, "/getProofForLeafHash", map[string]string{"targetTreeSize": "2"}},
		{[]string{"tree-state"}, "/getTreeState", nil},
	}
	for _, tc := range cases {
		srv.Respond(tc.path, http.StatusOK, `{"path": "`+tc.path+`"}`)
		stdout, _, err := run(t, srv, "", tc.args...)
		require.NoError(t, err, tc.args[0])
		assert.Equal(t, tc.path, decode(t, stdout)["path"], tc.args[0])

		req, ok := srv.LastRequest()
		require.True(t, ok)
		assert.Equal(t, tc.path, req.Path)
		for k, v := range tc.query {
			assert.Equal(t, v, req.Query.Get(k), "%s: %s", tc.args[0], k)
		}
	}
}

func TestCLI_PostLeafThenProveAndVerify(t *testing.T) {
	srv := witnesstest.NewServer(witnesstest.WithRequiredToken("secret"))
	defer srv.Close()

	stdout, _, err := run(t, srv, "", "--token", "secret", "post-leaf", "--leaf-hash", "0xaa")
	require.NoError(t, err)
	assert.Equal(t, "0", decode(t, stdout)["leafIndex"])
	_, _, err = run(t, srv, "", "--token", "secret", "post-leaf", "--leaf-hash", "0xbb")
	require.NoError(t, err)
	srv.Checkpoint(witnesstest.DefaultChainID, 1700000000)

	proof, _, err := run(t, srv, "", "proof", "--leaf-hash", "0xbb")
	require.NoError(t, err)

	stdout, _, err = run(t, srv, proof, "--token", "secret", "verify-proof")
	require.NoError(t, err)
	assert.Equal(t, true, decode(t, stdout)["success"])

	file := filepath.Join(t.TempDir(), "proof.json")
	require.NoError(t, os.WriteFile(file, []byte(proof), 0o600))
	stdout, _, err = run(t, srv, "", "--token", "secret", "verify-proof", "--proof", "@"+file)
	require.NoError(t, err)
	assert.Equal(t, true, decode(t, stdout)["success"])
}

func TestCLI_WaitCheckpoint(t *testing.T) {
	srv := witnesstest.NewServer()
	defer srv.Close()
	srv.AddLeaf("0x01")
	cp := srv.Checkpoint(witnesstest.DefaultChainID, 1700000000)

	stdout, _, err := run(t, srv, "", "wait-checkpoint", "--leaf-hash", "0x01", "--poll-interval", "5ms", "--wait", "5s")
	require.NoError(t, err)
	assert.Equal(t, cp.RootHash, decode(t, stdout)["rootHash"])
}

func TestCLI_APIErrorIsReturned(t *testing.T) {
	srv := witnesstest.NewServer()
	defer srv.Close()

	stdout, _, err := run(t, srv, "", "leaf-index", "--leaf-hash", "0xmissing")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, err.Error(), "Error Code: NOT_FOUND")
}

func TestCLI_RejectsInvalidInput(t *testing.T) {
	srv := witnesstest.NewServer()
	defer srv.Close()

	_, _, err := run(t, srv, "", "leaf-index")
	require.Error(t, err, "missing required flag")

	_, _, err = run(t, srv, "not json", "verify-proof")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")

	_, _, err = run(t, srv, "", "--base-url", "ftp://example.com", "health")
	require.Error(t, err)
}

func TestCLI_DebugLogsToStderr(t *testing.T) {
	srv := witnesstest.NewServer()
	defer srv.Close()

	_, stderr, err := run(t, srv, "", "--debug", "health")
	require.NoError(t, err)
	assert.Contains(t, stderr, "debug logging enabled")
	assert.Contains(t, stderr, "HTTP request")
}
