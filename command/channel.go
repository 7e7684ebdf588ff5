package command

import (
	"net"
	"time"

	"github.com/go-errors/errors"
)

// maxDatagramSize bounds a single command payload. Control packets are
// tiny; anything larger is garbage.
const maxDatagramSize = 1024

type ChannelConfig struct {
	// Listen is the host:port the UDP socket binds to.
	Listen string
	// PollInterval caps how long a single Receive call may block, so
	// the hosting loop can observe shutdown between packets.
	PollInterval time.Duration
	Logger       Logger
}

// Channel receives command datagrams on a UDP socket.
type Channel struct {
	conn *net.UDPConn
	poll time.Duration
	log  Logger
}

// NewChannel binds the command socket. A bind failure here is fatal to
// startup; there is no point running a motor daemon nobody can reach.
func NewChannel(config *ChannelConfig) (*Channel, error) {
	channel := &Channel{
		poll: config.PollInterval,
	}

	if config.Logger != nil {
		channel.log = config.Logger
	} else {
		channel.log = noopLogger{}
	}

	addr, err := net.ResolveUDPAddr("udp", config.Listen)
	if err != nil {
		return nil, errors.Errorf("could not resolve listen address %v: %v", config.Listen, err)
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, errors.Errorf("could not bind %v: %v", config.Listen, err)
	}

	channel.conn = conn

	return channel, nil
}

// Addr returns the bound socket address.
func (c *Channel) Addr() net.Addr {
	return c.conn.LocalAddr()
}

// Receive waits up to one poll interval for a datagram. It returns the
// payload and sender, or ok=false when nothing usable arrived this
// tick. Transient socket errors are logged and swallowed; they must
// never take down the ingress loop.
func (c *Channel) Receive() (data []byte, addr net.Addr, ok bool) {
	err := c.conn.SetReadDeadline(time.Now().Add(c.poll))
	if err != nil {
		c.log.Warnf("Could not arm read deadline: %v", err)
		return nil, nil, false
	}

	buf := make([]byte, maxDatagramSize)

	n, sender, err := c.conn.ReadFromUDP(buf)
	if err != nil {
		if netErr, isNetErr := err.(net.Error); isNetErr && netErr.Timeout() {
			return nil, nil, false
		}

		c.log.Warnf("Could not read datagram: %v", err)
		return nil, nil, false
	}

	if n == 0 {
		c.log.Debugf("Ignoring empty datagram from %v", sender)
		return nil, nil, false
	}

	return buf[:n], sender, true
}

// Close releases the socket. Any Receive blocked on the socket returns
// immediately afterwards.
func (c *Channel) Close() error {
	err := c.conn.Close()
	if err != nil {
		return errors.Errorf("could not close command socket: %v", err)
	}

	return nil
}
