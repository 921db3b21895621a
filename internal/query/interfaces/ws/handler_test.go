package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dataset "energy-dashboard/internal/dataset/domain"
	query "energy-dashboard/internal/query/domain"
)

// fakeEngine echoes the selection back with a single choropleth cell.
type fakeEngine struct{}

func (fakeEngine) Evaluate(sel query.Selection) query.FiveViews {
	return query.FiveViews{
		Selection:                           sel,
		Label:                               sel.Label(),
		StateChoropleth:                     []query.StateValue{{State: "TX", GenerationMWh: 100}},
		NationalGenerationBySourceOverYears: []query.YearValue{},
		NationalConsumptionOverYears:        []query.YearValue{},
		NationalGenerationBySourceForYear:   []query.SourceValue{},
		PrimaryConsumptionForYear:           []query.YearValue{},
	}
}

func dialHandler(t *testing.T, handler *Handler) (*websocket.Conn, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/views"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func readJSON(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	return env
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	handler, err := NewHandler(NewHub(nil), fakeEngine{}, nil)
	require.NoError(t, err)
	return handler
}

func drainInitial(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	readJSON(t, conn)
	readJSON(t, conn)
}

func TestHandler_InitialMessages(t *testing.T) {
	conn, cleanup := dialHandler(t, newTestHandler(t))
	defer cleanup()

	env1 := readJSON(t, conn)
	assert.Equal(t, TypeOptions, env1.Type)
	var opts query.Options
	require.NoError(t, json.Unmarshal(env1.Payload, &opts))
	assert.Len(t, opts.EnergySources, len(dataset.EnergySources))
	assert.Equal(t, query.DefaultSelection(), opts.Default)

	env2 := readJSON(t, conn)
	assert.Equal(t, TypeViews, env2.Type)
	var views query.FiveViews
	require.NoError(t, json.Unmarshal(env2.Payload, &views))
	assert.Equal(t, query.DefaultSelection(), views.Selection)
	assert.Equal(t, "Selected year: 2020", views.Label)
}

func TestHandler_SelectionSet(t *testing.T) {
	conn, cleanup := dialHandler(t, newTestHandler(t))
	defer cleanup()
	drainInitial(t, conn)

	msg, err := NewEnvelope(TypeSelectionSet, SelectionPayload{Year: 1995, EnergySource: "Coal"})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, msg))

	env := readJSON(t, conn)
	assert.Equal(t, TypeViews, env.Type)
	var views query.FiveViews
	require.NoError(t, json.Unmarshal(env.Payload, &views))
	assert.Equal(t, 1995, views.Selection.Year)
	assert.Equal(t, "Coal", views.Selection.EnergySource)
	assert.Equal(t, dataset.DefaultProducerType, views.Selection.ProducerType)
	assert.Equal(t, "Selected year: 1995", views.Label)
}

func TestHandler_MalformedPayload(t *testing.T) {
	conn, cleanup := dialHandler(t, newTestHandler(t))
	defer cleanup()
	drainInitial(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"selection:set","payload":{"year":"abc"}}`)))
	env := readJSON(t, conn)
	assert.Equal(t, TypeError, env.Type)
	var p ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	assert.Equal(t, "invalid selection payload", p.Message)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	env = readJSON(t, conn)
	assert.Equal(t, TypeError, env.Type)
}

func TestHandler_UnknownType(t *testing.T) {
	conn, cleanup := dialHandler(t, newTestHandler(t))
	defer cleanup()
	drainInitial(t, conn)

	msg, err := NewEnvelope("sim:start", nil)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, msg))
	env := readJSON(t, conn)
	assert.Equal(t, TypeError, env.Type)
}

func TestNewHandler_RequiresDependencies(t *testing.T) {
	_, err := NewHandler(nil, fakeEngine{}, nil)
	assert.Error(t, err)
	_, err = NewHandler(NewHub(nil), nil, nil)
	assert.Error(t, err)
}
