package controller

import (
	"testing"
	"time"

	"github.com/go-errors/errors"
	"github.com/stretchr/testify/assert"

	"github.com/rider-pi/motord/command"
	"github.com/rider-pi/motord/drive"
	"github.com/rider-pi/motord/motor"
)

// failingMotor rejects every write, standing in for a wedged motor
// controller.
type failingMotor struct {
	writes int
}

var _ motor.Motor = (*failingMotor)(nil)

func (m *failingMotor) Write(left, right int) error {
	m.writes++
	return errors.New("bus fault")
}

func (m *failingMotor) Close() error {
	return nil
}

func newTestController(m motor.Motor) (*Controller, *State) {
	state := NewState()

	controller := New(&Config{
		Motor:  m,
		State:  state,
		Mapper: drive.Mapper{SpeedLimit: 100},
	})

	return controller, state
}

func TestHandleMove(t *testing.T) {
	m := motor.NewSimulatedMotor(nil)
	controller, state := newTestController(m)
	arrival := time.Now()

	controller.Handle(&command.Command{Type: command.TypeMove, Forward: 50, Turn: 30}, arrival)

	left, right, lastUpdate := state.Snapshot()
	assert.Equal(t, 80, left)
	assert.Equal(t, 20, right)
	assert.Equal(t, arrival, lastUpdate)

	left, right = m.Speeds()
	assert.Equal(t, 80, left)
	assert.Equal(t, 20, right)
}

func TestHandleDirectMove(t *testing.T) {
	m := motor.NewSimulatedMotor(nil)
	controller, state := newTestController(m)

	controller.Handle(&command.Command{Type: command.TypeMove, Direct: true, Left: 130, Right: -40}, time.Now())

	left, right, _ := state.Snapshot()
	assert.Equal(t, 100, left)
	assert.Equal(t, -40, right)
}

func TestHandleStop(t *testing.T) {
	m := motor.NewSimulatedMotor(nil)
	controller, state := newTestController(m)

	controller.Handle(&command.Command{Type: command.TypeMove, Forward: 50}, time.Now())
	controller.Handle(&command.Command{Type: command.TypeStop}, time.Now())

	assert.True(t, state.Stopped())

	left, right := m.Speeds()
	assert.Equal(t, 0, left)
	assert.Equal(t, 0, right)
}

func TestHandleIsIdempotent(t *testing.T) {
	m := motor.NewSimulatedMotor(nil)
	controller, state := newTestController(m)

	for i := 0; i < 3; i++ {
		controller.Handle(&command.Command{Type: command.TypeMove, Forward: 50, Turn: 30}, time.Now())

		left, right, _ := state.Snapshot()
		assert.Equal(t, 80, left)
		assert.Equal(t, 20, right)
	}

	for i := 0; i < 3; i++ {
		controller.Handle(&command.Command{Type: command.TypeStop}, time.Now())
		assert.True(t, state.Stopped())
	}
}

func TestHandleKeepsStateOnWriteFailure(t *testing.T) {
	m := &failingMotor{}
	controller, state := newTestController(m)

	controller.Handle(&command.Command{Type: command.TypeMove, Forward: 50}, time.Now())

	// The commanded state still reflects the operator's intent even
	// though the hardware rejected the write.
	left, right, _ := state.Snapshot()
	assert.Equal(t, 50, left)
	assert.Equal(t, 50, right)
	assert.Equal(t, 1, m.writes)
}
