package ws_test

import (
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/arcaluminis-fx/internal/sink"
	"github.com/coreman2200/arcaluminis-fx/internal/ws"
	"github.com/coreman2200/arcaluminis-fx/pixel"
)

func server(t *testing.T) (*ws.Hub, *sink.Snapshot, *httptest.Server) {
	t.Helper()
	snap := sink.NewSnapshot()
	hub := ws.NewHub(zerolog.Nop(), snap)
	mux := http.NewServeMux()
	hub.Routes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return hub, snap, srv
}

func TestFramesReachClients(t *testing.T) {
	hub, _, srv := server(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	rgb := pixel.Bytes([]pixel.Pixel{pixel.Red, pixel.Blue})
	require.NoError(t, hub.Write(3, rgb))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		FrameID uint64 `json:"frame_id"`
		Channel uint8  `json:"channel"`
		RGB     []byte `json:"rgb"`
	}
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, uint64(1), got.FrameID)
	assert.Equal(t, uint8(3), got.Channel)
	assert.Equal(t, rgb, got.RGB)

	require.NoError(t, hub.Close())
	assert.Zero(t, hub.Clients())
}

func TestHealth(t *testing.T) {
	hub, _, srv := server(t)
	require.NoError(t, hub.Write(0, []byte{1, 2, 3}))
	hub.SetStatus("effect", "pulse")

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["frame_id"])
	assert.Equal(t, float64(0), body["clients"])
	assert.Equal(t, "pulse", body["effect"])
}

func TestSnapshot(t *testing.T) {
	_, snap, srv := server(t)

	resp, err := http.Get(srv.URL + "/snapshot.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "nothing rendered yet")

	require.NoError(t, snap.Write(0, pixel.Bytes([]pixel.Pixel{pixel.Red, pixel.Green, pixel.Blue})))
	resp, err = http.Get(srv.URL + "/snapshot.png?scale=4")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 4), img.Bounds())

	bad, err := http.Get(srv.URL + "/snapshot.png?scale=0")
	require.NoError(t, err)
	bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}
