package worker

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/markdrayton/vzug/appliance"
	"github.com/markdrayton/vzug/collector"
)

const ENV_FILE = ".env"

type Options struct {
	ConfigFile string `short:"c" long:"config-file" env:"VZUG_CONFIG" default:"config.toml" description:"TOML or YAML config file"`
	LogLevel   string `long:"log-level" env:"VZUG_LOG_LEVEL" default:"info" choice:"debug" choice:"info" choice:"warning" choice:"error" description:"Minimum log level"`

	Collector collector.Options      `group:"Collector"`
	HTTP      appliance.ClientConfig `group:"Appliance HTTP"`
}

// Parse command-line args, with environment defaults from any .env file.
func (options *Options) Parse(args []string) error {
	if err := godotenv.Load(ENV_FILE); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("godotenv %v: %v", ENV_FILE, err)
	}

	parser := flags.NewParser(options, flags.Default)

	if extra, err := parser.ParseArgs(args); err != nil {
		return err
	} else if len(extra) > 0 {
		parser.WriteHelp(os.Stderr)
		return fmt.Errorf("Extra arguments: %v", extra)
	}

	return nil
}
