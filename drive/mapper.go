package drive

// Mapper converts operator motion commands into per-wheel speeds for a
// two-wheel differential drive. It holds only immutable configuration,
// so its methods are safe to call from any goroutine.
type Mapper struct {
	// SpeedLimit bounds the magnitude of both outputs.
	SpeedLimit int
	// InvertLeft and InvertRight flip the sign of the respective wheel,
	// for drives where one motor is mounted mirrored.
	InvertLeft  bool
	InvertRight bool
}

// Mix maps a forward speed and turn rate onto left and right wheel
// speeds. Positive turn steers right: the left wheel speeds up and the
// right wheel slows down.
func (m Mapper) Mix(forward, turn int) (left, right int) {
	return m.Direct(forward+turn, forward-turn)
}

// Direct clamps and inverts an explicit left/right pair.
func (m Mapper) Direct(left, right int) (int, int) {
	left = clamp(left, m.SpeedLimit)
	right = clamp(right, m.SpeedLimit)

	if m.InvertLeft {
		left = -left
	}
	if m.InvertRight {
		right = -right
	}

	return left, right
}

func clamp(v, limit int) int {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
