package motor

import (
	"github.com/go-errors/errors"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
)

// I2CMotor drives a register-addressed motor controller over I²C. One
// command is a block write of four bytes at the speed register:
// direction and magnitude for the left wheel, then the right wheel.
type I2CMotor struct {
	bus i2c.BusCloser
	dev *i2c.Dev
	reg byte
	log Logger
}

// Compile time check for protocol compatibility
var _ Motor = (*I2CMotor)(nil)

type I2CMotorConfig struct {
	// Bus is the periph bus name, e.g. "1" for /dev/i2c-1. Empty
	// selects the first available bus.
	Bus string
	// Addr is the controller's 7-bit device address.
	Addr uint16
	// SpeedReg is the register the 4-byte speed block is written to.
	SpeedReg byte
	Logger   Logger
}

func NewI2CMotor(config *I2CMotorConfig) (*I2CMotor, error) {
	motor := &I2CMotor{
		reg: config.SpeedReg,
	}

	if config.Logger != nil {
		motor.log = config.Logger
	} else {
		motor.log = noopLogger{}
	}

	if _, err := host.Init(); err != nil {
		return nil, errors.Errorf("could not initialize periph host: %v", err)
	}

	bus, err := i2creg.Open(config.Bus)
	if err != nil {
		return nil, errors.Errorf("could not open i2c bus %q: %v", config.Bus, err)
	}

	motor.bus = bus
	motor.dev = &i2c.Dev{Addr: config.Addr, Bus: bus}

	return motor, nil
}

func (m *I2CMotor) Write(left, right int) error {
	block := speedBlock(left, right)

	_, err := m.dev.Write(append([]byte{m.reg}, block...))
	if err != nil {
		return errors.Errorf("could not write speed block: %v", err)
	}

	m.log.Debugf("Wrote speed block % x", block)

	return nil
}

func (m *I2CMotor) Close() error {
	err := m.bus.Close()
	if err != nil {
		return errors.Errorf("could not close i2c bus: %v", err)
	}

	return nil
}

// speedBlock encodes a wheel pair as [left_dir, |left|, right_dir,
// |right|] with dir 1 meaning forward. Callers clamp speeds to the
// configured limit, which is at most 255 by validation.
func speedBlock(left, right int) []byte {
	leftDir, leftMag := dirMag(left)
	rightDir, rightMag := dirMag(right)

	return []byte{leftDir, leftMag, rightDir, rightMag}
}

func dirMag(speed int) (dir, mag byte) {
	if speed >= 0 {
		return 1, byte(speed)
	}

	return 0, byte(-speed)
}
