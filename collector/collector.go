package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/markdrayton/vzug/appliance"
	"github.com/markdrayton/vzug/influxdb"
	"github.com/markdrayton/vzug/stats"
)

const DEFAULT_INTERVAL = 60 * time.Second

type Options struct {
	Interval time.Duration `long:"interval" default:"60s" description:"Collection period"`
	Parallel bool          `long:"parallel" description:"Poll appliances concurrently within a cycle"`
}

// Source is one appliance, as polled by the collector.
type Source interface {
	Name() string
	Collect(ctx context.Context) appliance.Sample
}

type Collector struct {
	options Options
	sources []Source
	writer  influxdb.Writer
	clock   clockwork.Clock
	log     logrus.FieldLogger
}

func New(sources []Source, writer influxdb.Writer, options Options, log logrus.FieldLogger) *Collector {
	if options.Interval <= 0 {
		options.Interval = DEFAULT_INTERVAL
	}

	return &Collector{
		options: options,
		sources: sources,
		writer:  writer,
		clock:   clockwork.NewRealClock(),
		log:     log,
	}
}

func (collector *Collector) WithClock(clock clockwork.Clock) *Collector {
	collector.clock = clock

	return collector
}

func (collector *Collector) String() string {
	return fmt.Sprintf("%d appliances every %v", len(collector.sources), collector.options.Interval)
}

func (collector *Collector) collect(ctx context.Context) []appliance.Sample {
	samples := make([]appliance.Sample, len(collector.sources))

	if !collector.options.Parallel {
		for i, source := range collector.sources {
			samples[i] = source.Collect(ctx)
		}
		return samples
	}

	// Collect never fails; the group only joins
	var group errgroup.Group

	for i, source := range collector.sources {
		i, source := i, source

		group.Go(func() error {
			samples[i] = source.Collect(ctx)
			return nil
		})
	}

	group.Wait()

	return samples
}

// Cycle polls every source once and writes the resulting batch.
// Sources without data are left out; a failed write drops the batch.
func (collector *Collector) Cycle(ctx context.Context) stats.Batch {
	batch := stats.NewBatch(collector.clock.Now())

	for i, sample := range collector.collect(ctx) {
		batch.Add(collector.sources[i].Name(), sample)
	}

	collector.log.Info(batch)

	if err := collector.writer.Write(ctx, batch); err != nil {
		collector.log.Errorf("failed to write points: %v", err)
	}

	return batch
}

// Run cycles until the context is cancelled.
func (collector *Collector) Run(ctx context.Context) error {
	start := collector.clock.Now()

	collector.log.Infof("run %v", collector)

	for {
		collector.Cycle(ctx)

		delay := NextDelay(start, collector.clock.Now(), collector.options.Interval)

		if err := collector.sleep(ctx, delay); err != nil {
			collector.log.Infof("stopped: %v", err)
			return nil
		}
	}
}
