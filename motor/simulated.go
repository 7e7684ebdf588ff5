package motor

import "sync"

// SimulatedMotor is the no-hardware backend. It logs every command and
// remembers the last written pair, which also makes it the natural
// test double for the daemon core.
type SimulatedMotor struct {
	mtx   sync.Mutex
	left  int
	right int
	log   Logger
}

// Compile time check for protocol compatibility
var _ Motor = (*SimulatedMotor)(nil)

type SimulatedMotorConfig struct {
	Logger Logger
}

func NewSimulatedMotor(config *SimulatedMotorConfig) *SimulatedMotor {
	motor := &SimulatedMotor{}

	if config != nil && config.Logger != nil {
		motor.log = config.Logger
	} else {
		motor.log = noopLogger{}
	}

	return motor
}

func (m *SimulatedMotor) Write(left, right int) error {
	m.mtx.Lock()
	m.left = left
	m.right = right
	m.mtx.Unlock()

	m.log.Debugf("Simulated motor write: left=%v right=%v", left, right)

	return nil
}

// Speeds returns the last written wheel pair.
func (m *SimulatedMotor) Speeds() (left, right int) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return m.left, m.right
}

func (m *SimulatedMotor) Close() error {
	return nil
}
