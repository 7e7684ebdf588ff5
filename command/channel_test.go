package command

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChannel(t *testing.T) (*Channel, net.Conn) {
	t.Helper()

	channel, err := NewChannel(&ChannelConfig{
		Listen:       "127.0.0.1:0",
		PollInterval: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	sender, err := net.Dial("udp", channel.Addr().String())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = sender.Close()
		_ = channel.Close()
	})

	return channel, sender
}

func TestChannelReceivesDatagram(t *testing.T) {
	channel, sender := newTestChannel(t)

	_, err := sender.Write([]byte(`{"command":"stop"}`))
	require.NoError(t, err)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		data, addr, ok := channel.Receive()
		if !ok {
			continue
		}

		assert.Equal(t, `{"command":"stop"}`, string(data))
		assert.NotNil(t, addr)
		return
	}

	t.Fatal("datagram never arrived")
}

func TestChannelReceiveReturnsWithinPollInterval(t *testing.T) {
	channel, _ := newTestChannel(t)

	start := time.Now()
	_, _, ok := channel.Receive()
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.True(t, elapsed < 500*time.Millisecond, "Receive blocked for %v", elapsed)
}

func TestChannelIgnoresEmptyDatagram(t *testing.T) {
	channel, sender := newTestChannel(t)

	_, err := sender.Write([]byte{})
	require.NoError(t, err)

	// The empty datagram, if delivered at all, must surface as "no
	// data", never as a zero-length payload.
	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		data, _, ok := channel.Receive()
		assert.False(t, ok)
		assert.Nil(t, data)
	}
}

func TestChannelReceiveAfterClose(t *testing.T) {
	channel, _ := newTestChannel(t)

	require.NoError(t, channel.Close())

	_, _, ok := channel.Receive()
	assert.False(t, ok)
}

func TestChannelBindFailure(t *testing.T) {
	first, err := NewChannel(&ChannelConfig{
		Listen:       "127.0.0.1:0",
		PollInterval: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	defer first.Close()

	_, err = NewChannel(&ChannelConfig{
		Listen:       first.Addr().String(),
		PollInterval: 50 * time.Millisecond,
	})
	assert.Error(t, err)
}
