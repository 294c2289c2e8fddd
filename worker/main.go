package worker

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/markdrayton/vzug/appliance"
	"github.com/markdrayton/vzug/collector"
	"github.com/markdrayton/vzug/config"
	"github.com/markdrayton/vzug/influxdb"
)

// Setup loads the config file and builds the collector.
// Any error here is fatal.
func Setup(options Options, log logrus.FieldLogger) (*collector.Collector, *influxdb.HTTPWriter, error) {
	cfg, err := config.Load(options.ConfigFile)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "load %v", options.ConfigFile)
	}

	var sources []collector.Source

	for _, applianceConfig := range cfg.Appliances {
		if client, err := appliance.NewClient(applianceConfig, options.HTTP, log); err != nil {
			return nil, nil, err
		} else {
			log.Infof("appliance %v: %v", applianceConfig, client)

			sources = append(sources, client)
		}
	}

	writer, err := influxdb.NewWriter(cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}

	return collector.New(sources, writer, options.Collector, log), writer, nil
}

// Run until the context is cancelled.
func Run(ctx context.Context, options Options, log logrus.FieldLogger) error {
	collector, writer, err := Setup(options, log)
	if err != nil {
		return err
	}

	if version, rtt, err := writer.Ping(); err != nil {
		log.Warnf("influxdb %v: %v", writer, err)
	} else {
		log.Infof("influxdb %v: version %v rtt=%v", writer, version, rtt)
	}

	return collector.Run(ctx)
}

func Main(options Options, log logrus.FieldLogger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go stopping(ctx, cancel, log)

	return Run(ctx, options, log)
}
