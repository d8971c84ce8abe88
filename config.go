package sender

import (
	"bytes"
	"fmt"
	"github.com/pelletier/go-toml/v2"
	"os"
	"strings"
	"time"
)

const (
	FormatAgent  = "agent"
	FormatInflux = "influx"
)

// Duration reads Go duration strings such as "5s" from TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	value := strings.TrimSpace(string(text))
	if value == "" {
		d.Duration = 0
		return nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value, err)
	}
	d.Duration = parsed
	return nil
}

type fileConfig struct {
	Agent agentConfig `toml:"agent"`
}

type agentConfig struct {
	Endpoint         string   `toml:"endpoint"`
	Host             string   `toml:"host"`
	Port             int      `toml:"port"`
	DialTimeout      Duration `toml:"dial_timeout"`
	WriteTimeout     Duration `toml:"write_timeout"`
	CloseAfterReport bool     `toml:"close_after_report"`
	Format           string   `toml:"format"`
}

// LoadConfig reads a client Config from a TOML file. For example:
//
//	[agent]
//	host = "localhost"
//	port = 9001
//	dial_timeout = "5s"
//	close_after_report = false
//	format = "agent" # or "influx"
//
// Logger and ErrorListener are left for the caller to set.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	config, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// ParseConfig decodes TOML client configuration. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	var fc fileConfig
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fc); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	ac := fc.Agent
	if ac.DialTimeout.Duration < 0 || ac.WriteTimeout.Duration < 0 {
		return Config{}, fmt.Errorf("%w: timeouts must not be negative", ErrInvalidArgument)
	}

	config := Config{
		Endpoint:         ac.Endpoint,
		Host:             ac.Host,
		Port:             ac.Port,
		DialTimeout:      ac.DialTimeout.Duration,
		WriteTimeout:     ac.WriteTimeout.Duration,
		CloseAfterReport: ac.CloseAfterReport,
	}

	switch strings.ToLower(ac.Format) {
	case "", FormatAgent:
		config.Encoder = LineEncoder{}
	case FormatInflux:
		config.Encoder = InfluxEncoder{}
	default:
		return Config{}, fmt.Errorf("%w: unknown format %q", ErrInvalidArgument, ac.Format)
	}

	return config, nil
}
