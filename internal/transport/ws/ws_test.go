package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"creativemastery/internal/metrics"
	"creativemastery/internal/model"
	"creativemastery/internal/service"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakePreviewer map[string]model.Results

func (f fakePreviewer) Preview(_ context.Context, id string) (model.Results, error) {
	res, ok := f[id]
	if !ok {
		return model.Results{}, fmt.Errorf("%w: %s", service.ErrSessionNotFound, id)
	}
	return res, nil
}

func newTestServer(t *testing.T, hub *Hub, sessions SessionPreviewer) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/v1/ws/sessions/{id}", NewHandler(hub, sessions, nil, nil).SessionWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws/sessions/" + id
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestSessionWSStreamsUpdates(t *testing.T) {
	hub := NewHub(metrics.MustNewMetrics(prometheus.NewRegistry()), nil)
	defer hub.Close()

	sessions := fakePreviewer{"s1": {Profile: model.Profile{Key: model.ProfileKeyBalanced}}}
	srv := newTestServer(t, hub, sessions)

	conn := dial(t, srv, "s1")
	defer conn.Close()

	first := readMessage(t, conn)
	assert.Equal(t, MsgResultsUpdate, first.Type)
	var res model.Results
	require.NoError(t, json.Unmarshal(first.Payload, &res))
	assert.Equal(t, model.ProfileKeyBalanced, res.Profile.Key)

	require.Eventually(t, func() bool { return hub.Count("s1") == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToSession("s2", string(MsgInsightsUpdate), map[string]string{"ignored": "yes"})
	hub.BroadcastToSession("s1", string(MsgInsightsUpdate), map[string]string{"ambition": "Freedom"})
	msg := readMessage(t, conn)
	assert.Equal(t, MsgInsightsUpdate, msg.Type)
	assert.JSONEq(t, `{"ambition":"Freedom"}`, string(msg.Payload))

	hub.BroadcastToSession("s1", string(MsgSessionClosed), map[string]string{"sessionId": "s1"})
	hub.DisconnectSession("s1")
	assert.Equal(t, MsgSessionClosed, readMessage(t, conn).Type)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
	assert.Equal(t, 0, hub.Count("s1"))
}

// racingPreviewer publishes an update while the snapshot is being computed
type racingPreviewer struct {
	hub   *Hub
	res   model.Results
	calls int
}

func (p *racingPreviewer) Preview(_ context.Context, id string) (model.Results, error) {
	p.calls++
	if p.calls > 1 {
		p.hub.BroadcastToSession(id, string(MsgInsightsUpdate), map[string]string{"ambition": "Legacy"})
	}
	return p.res, nil
}

func TestSessionWSKeepsUpdatesRacingTheSnapshot(t *testing.T) {
	hub := NewHub(nil, nil)
	defer hub.Close()
	sessions := &racingPreviewer{hub: hub, res: model.Results{Profile: model.Profile{Key: "beliefMindset_left"}}}
	srv := newTestServer(t, hub, sessions)

	conn := dial(t, srv, "s1")
	defer conn.Close()

	got := map[MessageType]bool{}
	for i := 0; i < 2; i++ {
		got[readMessage(t, conn).Type] = true
	}
	assert.True(t, got[MsgInsightsUpdate])
	assert.True(t, got[MsgResultsUpdate])
}

func TestSessionWSUnknownSession(t *testing.T) {
	hub := NewHub(nil, nil)
	defer hub.Close()
	srv := newTestServer(t, hub, fakePreviewer{})

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws/sessions/missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub(nil, nil)
	srv := newTestServer(t, hub, fakePreviewer{"s1": {}})

	conn := dial(t, srv, "s1")
	defer conn.Close()
	readMessage(t, conn)
	require.Eventually(t, func() bool { return hub.Count("s1") == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()
	hub.Close()
	hub.BroadcastToSession("s1", string(MsgResultsUpdate), nil)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestOriginChecker(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	assert.True(t, originChecker(nil)(req("https://evil.example")))
	assert.True(t, originChecker([]string{"*"})(req("https://evil.example")))

	check := originChecker([]string{"https://app.example"})
	assert.True(t, check(req("https://app.example")))
	assert.True(t, check(req("")))
	assert.False(t, check(req("https://evil.example")))
}
