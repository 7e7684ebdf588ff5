package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rider-pi/motord/api"
	"github.com/rider-pi/motord/command"
	"github.com/rider-pi/motord/controller"
	"github.com/rider-pi/motord/drive"
	"github.com/rider-pi/motord/motor"
	"github.com/rider-pi/motord/ringlog"
)

var (
	// Commit stores the current commit hash of this build. This should be set using -ldflags during compilation.
	Commit string
	// Version stores the version string of this build. This should be set using -ldflags during compilation.
	Version string
	// Date stores the date of this build. This should be set using -ldflags during compilation.
	Date string
)

// motordMain is the true entry point for motord. This is required since
// defers created in the top-level scope of a main method aren't
// executed if os.Exit() is called.
func motordMain() error {
	ring := ringlog.New(256)

	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
	log.AddHook(ring)

	// Load CLI configuration and defaults
	cfg, err := loadConfig()
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		return nil
	} else if err != nil {
		return errors.Errorf("Failed parsing arguments: %v", err)
	}

	// Set logger into debug mode if called with --debug
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
		log.Info("Setting debug mode.")
	}

	// Print version of the daemon
	log.Infof("Version %s (commit %s)", Version, Commit)
	log.Infof("Built on %s", Date)

	// Stop here if only version was requested
	if cfg.ShowVersion {
		return nil
	}

	// Load the durable settings, falling back to defaults when no file
	// is present so a bare robot still comes up in simulation mode.
	var settings *Settings

	if _, err := os.Stat(cfg.Settings); os.IsNotExist(err) {
		log.Warnf("No settings file at %v, using defaults.", cfg.Settings)
		settings = defaultSettings()
	} else {
		settings, err = loadSettings(cfg.Settings)
		if err != nil {
			return errors.Errorf("Failed loading settings: %v", err)
		}

		log.Infof("Loaded settings from %v.", cfg.Settings)
	}

	if cfg.Motor != "" {
		settings.Motor.Backend = cfg.Motor
	}

	if cfg.ApiListen != "" {
		settings.Api.Listen = cfg.ApiListen
	}

	if err := settings.Validate(); err != nil {
		return errors.Errorf("Invalid settings: %v", err)
	}

	// The wheel actuators
	var m motor.Motor

	switch settings.Motor.Backend {
	case "simulated":
		m = motor.NewSimulatedMotor(&motor.SimulatedMotorConfig{
			Logger: log.New().WithField("system", "motor"),
		})

		log.Info("Created simulated motor.")
	case "serial":
		m, err = motor.NewSerialMotor(&motor.SerialMotorConfig{
			Port:     settings.Serial.Port,
			BaudRate: settings.Serial.BaudRate,
			Logger:   log.New().WithField("system", "motor"),
		})
		if err != nil {
			return errors.Errorf("Could not open serial motor: %v", err)
		}

		log.Infof("Created serial motor on %v at %v baud.", settings.Serial.Port, settings.Serial.BaudRate)
	case "i2c":
		m, err = motor.NewI2CMotor(&motor.I2CMotorConfig{
			Bus:      settings.I2C.Bus,
			Addr:     settings.I2C.Addr,
			SpeedReg: settings.I2C.SpeedReg,
			Logger:   log.New().WithField("system", "motor"),
		})
		if err != nil {
			return errors.Errorf("Could not open i2c motor: %v", err)
		}

		log.Infof("Created i2c motor on bus %v addr %#x.", settings.I2C.Bus, settings.I2C.Addr)
	default:
		return errors.Errorf("Unknown motor backend %v", settings.Motor.Backend)
	}

	defer func() {
		err := m.Close()
		if err != nil {
			log.Errorf("Could not properly close motor: %v", err)
		} else {
			log.Info("Closed motor.")
		}
	}()

	// The shared motor state, always stopped on boot
	state := controller.NewState()

	// The command ingress socket; a failed bind is fatal
	channel, err := command.NewChannel(&command.ChannelConfig{
		Listen:       settings.Listen(),
		PollInterval: settings.PollInterval(),
		Logger:       log.New().WithField("system", "channel"),
	})
	if err != nil {
		return errors.Errorf("Could not bind command socket: %v", err)
	}

	log.Infof("Listening for commands on udp %v.", settings.Listen())

	defer func() {
		err := channel.Close()
		if err != nil {
			log.Errorf("Could not properly close command socket: %v", err)
		} else {
			log.Info("Closed command socket.")
		}
	}()

	// The safety watchdog, independently scheduled
	watchdog := controller.NewWatchdog(&controller.WatchdogConfig{
		State:        state,
		Motor:        m,
		Timeout:      settings.Timeout(),
		PollInterval: settings.PollInterval(),
		Logger:       log.New().WithField("system", "watchdog"),
	})

	watchdogDone := make(chan struct{})
	go func() {
		watchdog.Run()
		close(watchdogDone)
	}()

	log.Infof("Started watchdog with %v timeout.", settings.Timeout())

	// The command dispatcher
	ctrl := controller.New(&controller.Config{
		Channel: channel,
		Motor:   m,
		State:   state,
		Mapper: drive.Mapper{
			SpeedLimit:  settings.Motor.SpeedLimit,
			InvertLeft:  settings.Motor.InvertLeft,
			InvertRight: settings.Motor.InvertRight,
		},
		Logger: log.New().WithField("system", "controller"),
	})

	log.Info("Created controller.")

	// The read-only status API
	if settings.Api.Listen != "" {
		statusApi := api.New(&api.Config{
			State:   state,
			RingLog: ring,
			Version: Version,
			Log:     log.New().WithField("system", "api"),
		})

		lis, err := net.Listen("tcp", settings.Api.Listen)
		if err != nil {
			log.Errorf("Could not listen on %v for the status api: %v", settings.Api.Listen, err)
		} else {
			defer lis.Close()

			go func() {
				err := statusApi.Serve(lis)
				if err != nil {
					log.Errorf("Could not serve status api: %v", err)
				}
			}()

			log.Infof("Serving status api on %v.", settings.Api.Listen)
		}
	}

	// Handle interrupt signals correctly
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		sig := <-signals
		log.Info(sig)
		log.Info("Received a signal, stopping controller...")
		ctrl.Shutdown()
	}()

	// blocks until the controller is shut down; its last act is a
	// final synchronous stop of the motors
	err = ctrl.Run()

	// the watchdog must be fully stopped before the deferred motor
	// close runs
	watchdog.Shutdown()
	<-watchdogDone

	if err != nil {
		return errors.Errorf("Failed running controller: %v", err)
	}

	return nil
}

func main() {
	// Call the "real" main in a nested manner so the defers will
	// properly be executed in the case of a graceful shutdown.
	if err := motordMain(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		} else {
			log.WithError(err).Println("Failed running motord.")
		}
		os.Exit(1)
	}
}
