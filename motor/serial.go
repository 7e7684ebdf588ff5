package motor

import (
	"fmt"
	"time"

	"github.com/go-errors/errors"
	"github.com/goburrow/serial"
)

// SerialMotor drives a motor controller that speaks a line protocol
// over a serial port: one "M,<left>,<right>\n" frame per command.
type SerialMotor struct {
	port serial.Port
	log  Logger
}

// Compile time check for protocol compatibility
var _ Motor = (*SerialMotor)(nil)

type SerialMotorConfig struct {
	// Port is the device path, e.g. /dev/ttyUSB0.
	Port string
	// BaudRate of the controller, typically 115200.
	BaudRate int
	Logger   Logger
}

func NewSerialMotor(config *SerialMotorConfig) (*SerialMotor, error) {
	motor := &SerialMotor{}

	if config.Logger != nil {
		motor.log = config.Logger
	} else {
		motor.log = noopLogger{}
	}

	port, err := serial.Open(&serial.Config{
		Address:  config.Port,
		BaudRate: config.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  time.Second,
	})
	if err != nil {
		return nil, errors.Errorf("could not open serial port %v: %v", config.Port, err)
	}

	motor.port = port

	return motor, nil
}

func (m *SerialMotor) Write(left, right int) error {
	frame := serialFrame(left, right)

	_, err := m.port.Write(frame)
	if err != nil {
		return errors.Errorf("could not write motor frame: %v", err)
	}

	m.log.Debugf("Sent motor frame %q", frame)

	return nil
}

func (m *SerialMotor) Close() error {
	err := m.port.Close()
	if err != nil {
		return errors.Errorf("could not close serial port: %v", err)
	}

	return nil
}

func serialFrame(left, right int) []byte {
	return []byte(fmt.Sprintf("M,%d,%d\n", left, right))
}
