package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbartels/bionet/internal/config"
	"github.com/lbartels/bionet/pkg/bionet"
	"github.com/lbartels/bionet/pkg/sim"
)

const testNetwork = `<graphml>
  <node id="EGFR" label="EGFR-Protein"/>
  <node id="TP53" label="TP53-Protein"/>
  <node id="GAPDH" label="GAPDH-Protein"/>
  <edge source="EGFR" target="TP53" id="1" weight="0.0012"/>
  <edge source="TP53" target="GAPDH" id="2" weight="0.0009"/>
</graphml>`

// newTestClient starts a test server and returns a cookie-carrying client,
// so consecutive requests land on the same session.
func newTestClient(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	g := bionet.ParseBytes([]byte(testNetwork))
	bionet.ComputeDegrees(g)

	srv := New(config.Default(), charmlog.New(io.Discard), nil, g, "test-network")
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return ts, &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	ts, client := newTestClient(t)

	resp := doJSON(t, client, http.MethodGet, ts.URL+"/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, resp))
}

func TestSessionCookie(t *testing.T) {
	ts, client := newTestClient(t)

	resp := doJSON(t, client, http.MethodGet, ts.URL+"/api/graph", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessionID string
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			sessionID = c.Value
		}
	}
	require.NotEmpty(t, sessionID, "first request must issue a session cookie")

	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/graph", nil)
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			assert.Equal(t, sessionID, c.Value, "session must survive across requests")
		}
	}
}

func TestGraph(t *testing.T) {
	ts, client := newTestClient(t)

	resp := doJSON(t, client, http.MethodGet, ts.URL+"/api/graph", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	g := decode[bionet.Graph](t, resp)
	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Edges, 2)
	assert.Equal(t, 2, g.Nodes[1].Degree, "degrees must be precomputed")
}

func TestFrame(t *testing.T) {
	ts, client := newTestClient(t)

	resp := doJSON(t, client, http.MethodGet, ts.URL+"/api/frame?steps=5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	f := decode[sim.Frame](t, resp)
	assert.Len(t, f.Nodes, 3)
	assert.Len(t, f.Edges, 2)
	assert.Less(t, f.Alpha, 1.0, "five steps must cool the simulation")
}

func TestFrame_InvalidSteps(t *testing.T) {
	ts, client := newTestClient(t)

	resp := doJSON(t, client, http.MethodGet, ts.URL+"/api/frame?steps=-1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/frame?steps=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestThresholds(t *testing.T) {
	ts, client := newTestClient(t)

	resp := doJSON(t, client, http.MethodPut, ts.URL+"/api/thresholds",
		bionet.Thresholds{Weight: 0.001, Degree: 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	applied := decode[bionet.Thresholds](t, resp)
	assert.Equal(t, 0.001, applied.Weight)

	// The weaker edge is now below the weight threshold.
	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/frame?steps=0", nil)
	f := decode[sim.Frame](t, resp)
	assert.Len(t, f.Edges, 1)
}

func TestThresholds_ClampsNegative(t *testing.T) {
	ts, client := newTestClient(t)

	resp := doJSON(t, client, http.MethodPut, ts.URL+"/api/thresholds",
		bionet.Thresholds{Weight: -1, Degree: -2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	applied := decode[bionet.Thresholds](t, resp)
	assert.Equal(t, 0.0, applied.Weight)
	assert.Equal(t, 0, applied.Degree)
}

func TestHighlight(t *testing.T) {
	ts, client := newTestClient(t)

	resp := doJSON(t, client, http.MethodPut, ts.URL+"/api/highlight",
		map[string]any{"category": "cancer"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cancer", decode[map[string]string](t, resp)["highlight"])

	// Toggling the active category reverts to showing everything.
	resp = doJSON(t, client, http.MethodPut, ts.URL+"/api/highlight",
		map[string]any{"category": "cancer", "toggle": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "all", decode[map[string]string](t, resp)["highlight"])
}

func TestSelect(t *testing.T) {
	ts, client := newTestClient(t)

	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/select",
		map[string]string{"node_id": "EGFR"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "EGFR", decode[map[string]string](t, resp)["selected"])

	resp = doJSON(t, client, http.MethodDelete, ts.URL+"/api/select", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[map[string]string](t, resp)["selected"])
}

func TestSelect_MissingNodeID(t *testing.T) {
	ts, client := newTestClient(t)

	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/select",
		map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDragLifecycle(t *testing.T) {
	ts, client := newTestClient(t)

	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/drag/start",
		map[string]any{"node_id": "EGFR"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "EGFR", decode[map[string]string](t, resp)["dragging"])

	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/drag/move",
		map[string]any{"node_id": "EGFR", "x": 120.0, "y": 90.0})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The dragged node is pinned at the pointer position.
	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/frame?steps=1", nil)
	f := decode[sim.Frame](t, resp)
	for _, n := range f.Nodes {
		if n.ID == "EGFR" {
			assert.Equal(t, 120.0, n.X)
			assert.Equal(t, 90.0, n.Y)
		}
	}

	resp = doJSON(t, client, http.MethodPost, ts.URL+"/api/drag/end",
		map[string]any{"node_id": "EGFR"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestDragStart_UnknownNode(t *testing.T) {
	ts, client := newTestClient(t)

	resp := doJSON(t, client, http.MethodPost, ts.URL+"/api/drag/start",
		map[string]any{"node_id": "NOPE"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "NODE_NOT_FOUND", body["code"])
}

func TestGraphReload(t *testing.T) {
	g := bionet.ParseBytes([]byte(testNetwork))
	bionet.ComputeDegrees(g)
	srv := New(config.Default(), charmlog.New(io.Discard), nil, g, "test-network")
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	resp := doJSON(t, client, http.MethodGet, ts.URL+"/api/frame", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[sim.Frame](t, resp).Nodes, 3)

	smaller := bionet.ParseBytes([]byte(`<graphml>
  <node id="A" label="A-Protein"/>
  <node id="B" label="B-Protein"/>
  <edge source="A" target="B" id="1" weight="0.001"/>
</graphml>`))
	bionet.ComputeDegrees(smaller)
	srv.SetGraph(smaller)

	// The same session sees the new graph on its next frame.
	resp = doJSON(t, client, http.MethodGet, ts.URL+"/api/frame", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[sim.Frame](t, resp).Nodes, 2)
}
