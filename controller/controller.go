package controller

import (
	"time"

	"github.com/rider-pi/motord/command"
	"github.com/rider-pi/motord/drive"
	"github.com/rider-pi/motord/motor"
)

// Controller runs the ingress loop: it pulls datagrams off the command
// channel, parses them, maps them through the differential drive and
// pushes the result into the shared state and the motor backend.
type Controller struct {
	channel *command.Channel
	motor   motor.Motor
	state   *State
	mapper  drive.Mapper
	done    chan struct{}
	log     Logger
}

type Config struct {
	Channel *command.Channel
	Motor   motor.Motor
	State   *State
	Mapper  drive.Mapper
	Logger  Logger
}

func New(config *Config) *Controller {
	controller := &Controller{
		channel: config.Channel,
		motor:   config.Motor,
		state:   config.State,
		mapper:  config.Mapper,
		done:    make(chan struct{}),
	}

	if config.Logger != nil {
		controller.log = config.Logger
	} else {
		controller.log = noopLogger{}
	}

	return controller
}

// Run receives and dispatches commands until Shutdown is called. Each
// Receive blocks for at most one poll interval, which bounds how long
// a shutdown request can go unnoticed. On exit it issues one final
// synchronous stop so the motors are never left running; the caller
// must only close the motor backend after Run has returned.
func (c *Controller) Run() error {
	c.log.Infof("Listening for motor commands on %v", c.channel.Addr())

	defer func() {
		c.log.Infof("Stopping motors before exit")

		c.state.Set(0, 0, time.Now())

		if err := c.motor.Write(0, 0); err != nil {
			c.log.Errorf("Could not write final stop: %v", err)
		}
	}()

	for {
		select {
		case <-c.done:
			return nil
		default:
		}

		data, addr, ok := c.channel.Receive()
		if !ok {
			continue
		}

		cmd, err := command.Parse(data)
		if err != nil {
			c.log.Warnf("Dropping bad packet from %v: %v", addr, err)
			continue
		}

		c.log.Debugf("Received %v command from %v", cmd.Type, addr)

		c.Handle(cmd, time.Now())
	}
}

// Handle applies one command. The arrival instant is taken by the
// receiver on this host; a timestamp inside the payload is never
// trusted for watchdog timing. A failed hardware write is logged but
// the state update stands: it still reflects the operator's most
// recent intent, and the next command or watchdog tick writes again.
func (c *Controller) Handle(cmd *command.Command, arrival time.Time) {
	var left, right int

	switch cmd.Type {
	case command.TypeMove:
		if cmd.Direct {
			left, right = c.mapper.Direct(cmd.Left, cmd.Right)
		} else {
			left, right = c.mapper.Mix(cmd.Forward, cmd.Turn)
		}
	case command.TypeStop:
		left, right = 0, 0
	default:
		c.log.Warnf("Ignoring command of unknown type %v", cmd.Type)
		return
	}

	c.state.Set(left, right, arrival)

	if err := c.motor.Write(left, right); err != nil {
		c.log.Errorf("Could not write motor command: %v", err)
	}
}

// Shutdown asks the run loop to exit. It returns immediately; Run
// itself returns within roughly one poll interval.
func (c *Controller) Shutdown() {
	close(c.done)
}
