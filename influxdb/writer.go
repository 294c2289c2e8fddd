package influxdb

import (
	"context"
	"time"

	client "github.com/influxdata/influxdb1-client/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/markdrayton/vzug/stats"
)

type Writer interface {
	Write(ctx context.Context, batch stats.Batch) error
}

// HTTPWriter opens a new InfluxDB client for every Write, and closes it afterwards.
type HTTPWriter struct {
	config Config
	log    logrus.FieldLogger
}

func NewWriter(config Config, log logrus.FieldLogger) (*HTTPWriter, error) {
	if err := config.Check(); err != nil {
		return nil, err
	}

	config = config.WithDefaults()

	return &HTTPWriter{
		config: config,
		log:    log.WithField("influxdb", config.String()),
	}, nil
}

func (writer *HTTPWriter) String() string {
	return writer.config.String()
}

func (writer *HTTPWriter) httpConfig() client.HTTPConfig {
	return client.HTTPConfig{
		Addr:      writer.config.Addr(),
		Username:  writer.config.User,
		Password:  writer.config.Pass,
		UserAgent: USER_AGENT,
		Timeout:   writer.config.Timeout,
	}
}

func (writer *HTTPWriter) connect() (client.Client, error) {
	if influxClient, err := client.NewHTTPClient(writer.httpConfig()); err != nil {
		return nil, errors.Wrapf(err, "connect %v", writer.config.Addr())
	} else {
		return influxClient, nil
	}
}

func (writer *HTTPWriter) batchPoints(batch stats.Batch) (client.BatchPoints, error) {
	points, err := client.NewBatchPoints(client.BatchPointsConfig{
		Database:  writer.config.Name,
		Precision: PRECISION,
	})
	if err != nil {
		return nil, err
	}

	for _, p := range batch.Points {
		if point, err := client.NewPoint(p.Measurement, p.Tags, p.Fields, p.Time); err != nil {
			return nil, errors.Wrapf(err, "point %v", p)
		} else {
			points.AddPoint(point)
		}
	}

	return points, nil
}

// Write submits the whole batch, including an empty one.
func (writer *HTTPWriter) Write(ctx context.Context, batch stats.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	points, err := writer.batchPoints(batch)
	if err != nil {
		return err
	}

	influxClient, err := writer.connect()
	if err != nil {
		return err
	}
	defer influxClient.Close()

	if err := influxClient.Write(points); err != nil {
		return errors.Wrapf(err, "write %d points", batch.Len())
	}

	writer.log.Debugf("wrote %d points @ %v", batch.Len(), batch.Timestamp())

	return nil
}

// Ping checks the server is reachable, returning its version.
func (writer *HTTPWriter) Ping() (string, time.Duration, error) {
	influxClient, err := writer.connect()
	if err != nil {
		return "", 0, err
	}
	defer influxClient.Close()

	if rtt, version, err := influxClient.Ping(writer.config.Timeout); err != nil {
		return "", 0, errors.Wrap(err, "ping")
	} else {
		return version, rtt, nil
	}
}
