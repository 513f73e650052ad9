package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputSendAndReceive(t *testing.T) {
	out := NewOutput(2)
	assert.True(t, out.Send([]byte{1, 2, 3, 4}))
	assert.True(t, out.SignalClose())
	assert.Equal(t, 2, out.Pending())

	m := <-out.Messages()
	assert.Equal(t, MessageFrame, m.Kind)
	assert.Equal(t, []byte{1, 2, 3, 4}, m.Pix)

	m = <-out.Messages()
	assert.Equal(t, MessageClose, m.Kind)
	assert.Empty(t, m.Pix)
}

func TestOutputBackpressure(t *testing.T) {
	out := NewOutput(1)
	require.True(t, out.Send([]byte{1}))

	sent := make(chan bool)
	go func() { sent <- out.Send([]byte{2}) }()

	select {
	case <-sent:
		t.Fatal("send should block while the channel is full")
	case <-time.After(20 * time.Millisecond):
	}

	<-out.Messages()
	assert.True(t, <-sent)
	assert.Equal(t, []byte{2}, (<-out.Messages()).Pix)
}

func TestOutputCloseReleasesBlockedSender(t *testing.T) {
	out := NewOutput(1)
	require.True(t, out.Send([]byte{1}))

	sent := make(chan bool)
	go func() { sent <- out.Send([]byte{2}) }()
	time.Sleep(10 * time.Millisecond)
	out.Close()

	select {
	case ok := <-sent:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("blocked sender not released by Close")
	}
	assert.Equal(t, 1, out.Pending())
}

func TestOutputClosed(t *testing.T) {
	out := NewOutput(0)
	assert.False(t, out.Closed())
	out.Close()
	out.Close()
	assert.True(t, out.Closed())
	assert.False(t, out.Send([]byte{1}))
	assert.False(t, out.SignalClose())
	assert.Zero(t, out.Pending())

	select {
	case <-out.Done():
	default:
		t.Fatal("Done not closed")
	}
}
