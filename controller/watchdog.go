package controller

import (
	"time"

	"github.com/rider-pi/motord/motor"
)

// Watchdog is the independent timing authority of the daemon. It polls
// the shared state and forces an emergency stop once the last accepted
// command is older than the configured timeout. It shares nothing with
// the ingress loop except the state accessor.
type Watchdog struct {
	state        *State
	motor        motor.Motor
	timeout      time.Duration
	pollInterval time.Duration
	done         chan struct{}
	log          Logger
}

type WatchdogConfig struct {
	State *State
	Motor motor.Motor
	// Timeout is the maximum command silence before a forced stop.
	Timeout time.Duration
	// PollInterval is the tick period, and therefore the upper bound
	// on how late past the timeout the stop can happen.
	PollInterval time.Duration
	Logger       Logger
}

func NewWatchdog(config *WatchdogConfig) *Watchdog {
	watchdog := &Watchdog{
		state:        config.State,
		motor:        config.Motor,
		timeout:      config.Timeout,
		pollInterval: config.PollInterval,
		done:         make(chan struct{}),
	}

	if config.Logger != nil {
		watchdog.log = config.Logger
	} else {
		watchdog.log = noopLogger{}
	}

	return watchdog
}

// Run ticks until Shutdown is called.
func (w *Watchdog) Run() {
	w.log.Infof("Watching for command silence over %v every %v", w.timeout, w.pollInterval)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check(time.Now())
		case <-w.done:
			return
		}
	}
}

// check performs one staleness inspection. The decision and the state
// transition are atomic in ForceStopIfStale; only the hardware write
// happens outside the lock, so a slow motor backend can never stall
// the ingress loop's view of the state.
func (w *Watchdog) check(now time.Time) {
	stopped, elapsed := w.state.ForceStopIfStale(w.timeout, now)
	if !stopped {
		return
	}

	w.log.Warnf("No command for %v - emergency stop", elapsed)

	if err := w.motor.Write(0, 0); err != nil {
		w.log.Errorf("Could not write emergency stop: %v", err)
	}
}

// Shutdown asks the watchdog loop to exit.
func (w *Watchdog) Shutdown() {
	close(w.done)
}
