package motor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulatedMotorRemembersLastWrite(t *testing.T) {
	m := NewSimulatedMotor(nil)

	assert.NoError(t, m.Write(80, 20))

	left, right := m.Speeds()
	assert.Equal(t, 80, left)
	assert.Equal(t, 20, right)

	assert.NoError(t, m.Write(0, 0))

	left, right = m.Speeds()
	assert.Equal(t, 0, left)
	assert.Equal(t, 0, right)
}

func TestSerialFrame(t *testing.T) {
	tests := []struct {
		left, right int
		frame       string
	}{
		{50, 50, "M,50,50\n"},
		{-100, 100, "M,-100,100\n"},
		{0, 0, "M,0,0\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.frame, string(serialFrame(tt.left, tt.right)))
	}
}

func TestSpeedBlock(t *testing.T) {
	tests := []struct {
		left, right int
		block       []byte
	}{
		{50, 50, []byte{1, 50, 1, 50}},
		{-80, 20, []byte{0, 80, 1, 20}},
		{0, -255, []byte{1, 0, 0, 255}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.block, speedBlock(tt.left, tt.right))
	}
}
