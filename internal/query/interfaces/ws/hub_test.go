package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	msg, err := NewEnvelope(TypeError, ErrorPayload{Message: "boom"})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	assert.Equal(t, TypeError, env.Type)

	var parsed ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &parsed))
	assert.Equal(t, "boom", parsed.Message)
}

func TestNewEnvelope_NoPayload(t *testing.T) {
	msg, err := NewEnvelope(TypeSelectionSet, nil)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	assert.Equal(t, TypeSelectionSet, env.Type)
	assert.Nil(t, env.Payload)
}

func TestSelectionPayload_Defaults(t *testing.T) {
	sel := SelectionPayload{ProducerType: "  "}.Selection()
	assert.Equal(t, 2020, sel.Year)
	assert.Equal(t, "Total", sel.EnergySource)
	assert.Equal(t, "Total Electric Power Industry", sel.ProducerType)
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub(nil)
	c := &Client{send: make(chan []byte, sendBuffer)}

	hub.Register(c)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(c)
	assert.Equal(t, 0, hub.ClientCount())

	_, ok := <-c.send
	assert.False(t, ok, "send channel should be closed")

	hub.Unregister(c)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_EnqueueDropsWhenFull(t *testing.T) {
	hub := NewHub(nil)
	c := &Client{send: make(chan []byte, 1)}
	hub.enqueue(c, []byte("a"))
	hub.enqueue(c, []byte("b"))
	assert.Len(t, c.send, 1)
}
