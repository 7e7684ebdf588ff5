package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings is the durable configuration of the daemon, loaded once at
// startup from a YAML file and immutable afterwards.
type Settings struct {
	Motor   MotorSettings   `yaml:"motor"`
	Network NetworkSettings `yaml:"network"`
	Safety  SafetySettings  `yaml:"safety"`
	Serial  SerialSettings  `yaml:"serial"`
	I2C     I2CSettings     `yaml:"i2c"`
	Api     ApiSettings     `yaml:"api"`
}

type MotorSettings struct {
	// Backend selects the motor output: simulated, serial or i2c.
	Backend     string `yaml:"backend"`
	SpeedLimit  int    `yaml:"speed_limit"`
	InvertLeft  bool   `yaml:"invert_left"`
	InvertRight bool   `yaml:"invert_right"`
}

type NetworkSettings struct {
	BindAddress         string  `yaml:"bind_address"`
	UdpPort             int     `yaml:"udp_port"`
	PollIntervalSeconds float64 `yaml:"poll_interval_seconds"`
}

type SafetySettings struct {
	// TimeoutSeconds is the command silence after which the watchdog
	// forces an emergency stop.
	TimeoutSeconds float64 `yaml:"timeout_seconds"`
}

type SerialSettings struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baudrate"`
}

type I2CSettings struct {
	Bus      string `yaml:"bus"`
	Addr     uint16 `yaml:"addr"`
	SpeedReg uint8  `yaml:"speed_reg"`
}

type ApiSettings struct {
	// Listen is the status API address. Empty disables the API.
	Listen string `yaml:"listen"`
}

func defaultSettings() *Settings {
	return &Settings{
		Motor: MotorSettings{
			Backend:    "simulated",
			SpeedLimit: 100,
		},
		Network: NetworkSettings{
			BindAddress:         "0.0.0.0",
			UdpPort:             5000,
			PollIntervalSeconds: 0.1,
		},
		Safety: SafetySettings{
			TimeoutSeconds: 1.0,
		},
		Serial: SerialSettings{
			Port:     "/dev/ttyUSB0",
			BaudRate: 115200,
		},
		I2C: I2CSettings{
			Bus:      "1",
			Addr:     0x34,
			SpeedReg: 0x01,
		},
		Api: ApiSettings{
			Listen: ":9000",
		},
	}
}

// loadSettings reads the YAML file at path on top of the defaults, so
// a partial file only overrides what it names.
func loadSettings(path string) (*Settings, error) {
	settings := defaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("could not read settings file: %v", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, errors.Errorf("could not parse settings file %v: %v", path, err)
	}

	return settings, nil
}

// Validate rejects settings the daemon cannot safely run with. It does
// not mutate anything.
func (s *Settings) Validate() error {
	switch s.Motor.Backend {
	case "simulated", "serial", "i2c":
	default:
		return errors.Errorf("unknown motor backend %q", s.Motor.Backend)
	}

	// The i2c block encoding carries one magnitude byte per wheel, so
	// the limit can never exceed 255 regardless of backend.
	if s.Motor.SpeedLimit < 1 || s.Motor.SpeedLimit > 255 {
		return errors.Errorf("speed_limit must be within 1..255, got %v", s.Motor.SpeedLimit)
	}

	if s.Network.UdpPort < 1 || s.Network.UdpPort > 65535 {
		return errors.Errorf("udp_port must be within 1..65535, got %v", s.Network.UdpPort)
	}

	if s.Safety.TimeoutSeconds <= 0 {
		return errors.Errorf("timeout_seconds must be positive, got %v", s.Safety.TimeoutSeconds)
	}

	if s.Network.PollIntervalSeconds <= 0 {
		return errors.Errorf("poll_interval_seconds must be positive, got %v", s.Network.PollIntervalSeconds)
	}

	if s.Network.PollIntervalSeconds >= s.Safety.TimeoutSeconds {
		return errors.Errorf("poll_interval_seconds (%v) must be smaller than timeout_seconds (%v)",
			s.Network.PollIntervalSeconds, s.Safety.TimeoutSeconds)
	}

	if s.Serial.BaudRate < 1 {
		return errors.Errorf("baudrate must be positive, got %v", s.Serial.BaudRate)
	}

	return nil
}

// Listen returns the UDP bind address in host:port form.
func (s *Settings) Listen() string {
	return net.JoinHostPort(s.Network.BindAddress, fmt.Sprintf("%d", s.Network.UdpPort))
}

func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.Safety.TimeoutSeconds * float64(time.Second))
}

func (s *Settings) PollInterval() time.Duration {
	return time.Duration(s.Network.PollIntervalSeconds * float64(time.Second))
}
