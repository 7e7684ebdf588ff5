// Package motor abstracts the wheel actuators behind a single write
// capability. The daemon core only ever hands a backend a clamped
// left/right speed pair; how that pair reaches the motor driver is the
// backend's business.
package motor

type Motor interface {
	// Write commands both wheels. Speeds are already clamped by the
	// caller. Implementations must tolerate being called from the
	// ingress loop and the watchdog; calls are never concurrent with
	// each other but may come from either.
	Write(left, right int) error

	// Close releases the underlying device. The caller guarantees a
	// final Write(0, 0) has been attempted before Close.
	Close() error
}
