package influxdb

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	DEFAULT_PORT    = 8086
	DEFAULT_TIMEOUT = 10 * time.Second
	PRECISION       = "s"
	USER_AGENT      = "vzug-poll"
)

// The [database] table of the config file.
type Config struct {
	Host    string        `toml:"host" yaml:"host"`
	Port    uint16        `toml:"port" yaml:"port"`
	User    string        `toml:"user" yaml:"user"`
	Pass    string        `toml:"pass" yaml:"pass"`
	Name    string        `toml:"name" yaml:"name"`
	Timeout time.Duration `toml:"timeout" yaml:"timeout"`
}

func (c Config) WithDefaults() Config {
	if c.Port == 0 {
		c.Port = DEFAULT_PORT
	}
	if c.Timeout == 0 {
		c.Timeout = DEFAULT_TIMEOUT
	}
	return c
}

func (c Config) Check() error {
	if c.Host == "" {
		return fmt.Errorf("Missing database host")
	}
	if c.Name == "" {
		return fmt.Errorf("Missing database name")
	}
	return nil
}

func (c Config) Addr() string {
	return "http://" + net.JoinHostPort(c.Host, strconv.Itoa(int(c.WithDefaults().Port)))
}

func (c Config) String() string {
	return fmt.Sprintf("%v/%v", c.Addr(), c.Name)
}
