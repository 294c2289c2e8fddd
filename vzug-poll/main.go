package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/markdrayton/vzug/worker"
)

func run(args []string, stderr io.Writer) int {
	var options worker.Options

	if err := options.Parse(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); !ok {
			fmt.Fprintf(stderr, "vzug-poll: %v\n", err)
		} else if flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}

	log, err := worker.NewLogger(options.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "vzug-poll: %v\n", err)
		return 1
	}
	log.SetOutput(stderr)

	if err := worker.Main(options, log); err != nil {
		log.Errorf("vzug-poll: %v", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
