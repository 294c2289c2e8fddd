package appliance

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const MAX_BODY = 64 * 1024

type Config struct {
	Name string
	Host string
	Kind Kind
}

func (config Config) URL() string {
	return "http://" + config.Host + config.Kind.Path()
}

func (config Config) String() string {
	return fmt.Sprintf("%v %v@%v", config.Kind, config.Name, config.Host)
}

// Retry behaviour shared by all appliance clients.
type ClientConfig struct {
	Timeout  time.Duration `long:"http-timeout" default:"2s" description:"Timeout for each appliance request"`
	Attempts uint          `long:"http-attempts" default:"3" description:"Requests per appliance per cycle, including the first"`
	Backoff  time.Duration `long:"http-backoff" default:"1s" description:"Wait between failed requests"`
}

func (c ClientConfig) WithDefaults() ClientConfig {
	if c.Timeout == 0 {
		c.Timeout = 2 * time.Second
	}
	if c.Attempts == 0 {
		c.Attempts = 3
	}
	if c.Backoff == 0 {
		c.Backoff = time.Second
	}
	return c
}

type statusError struct {
	url    string
	status string
}

func (err statusError) Error() string {
	return fmt.Sprintf("got %v from %v", err.status, err.url)
}

type Client struct {
	config     Config
	url        string
	httpClient *http.Client
	attempts   uint
	backoff    time.Duration
	log        logrus.FieldLogger
}

func NewClient(config Config, clientConfig ClientConfig, log logrus.FieldLogger) (*Client, error) {
	if !config.Kind.Valid() {
		return nil, fmt.Errorf("Invalid kind for %v: %v", config.Name, config.Kind)
	}
	if config.Host == "" {
		return nil, fmt.Errorf("Empty host for %v", config.Name)
	}

	clientConfig = clientConfig.WithDefaults()

	return &Client{
		config: config,
		url:    config.URL(),
		httpClient: &http.Client{
			Timeout: clientConfig.Timeout,
		},
		attempts: clientConfig.Attempts,
		backoff:  clientConfig.Backoff,
		log: log.WithFields(logrus.Fields{
			"appliance": config.Name,
			"kind":      config.Kind.String(),
		}),
	}, nil
}

func (client *Client) Name() string {
	return client.config.Name
}

func (client *Client) String() string {
	return client.url
}

// Collect fetches and parses the current status, retrying failed requests.
// Failures are logged and give a nil Sample.
func (client *Client) Collect(ctx context.Context) Sample {
	var sample Sample
	var attempt uint

	retry := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(client.backoff), uint64(client.attempts-1)),
		ctx,
	)

	operation := func() error {
		var err error

		attempt++

		if sample, err = client.fetch(ctx); err != nil {
			client.logAttempt(attempt, err)
		}

		return err
	}

	notify := func(err error, next time.Duration) {
		client.log.Debugf("retry in %v", next)
	}

	if err := backoff.RetryNotify(operation, retry, notify); err == nil {
		return sample
	} else if ctx.Err() != nil {
		client.log.Warnf("cancelled fetching %v: %v", client.url, err)
	} else {
		client.log.Errorf("failed to get %v", client.url)
	}

	return nil
}

func (client *Client) logAttempt(attempt uint, err error) {
	var parseErr *ParseError
	var statusErr statusError

	switch {
	case errors.As(err, &statusErr):
		client.log.Warnf("attempt %d: %v", attempt, err)
	case errors.As(err, &parseErr):
		client.log.Errorf("attempt %d: invalid response from %v: %v", attempt, client.url, err)
	default:
		client.log.Errorf("attempt %d: exception fetching %v: %v", attempt, client.url, err)
	}
}

func (client *Client) fetch(ctx context.Context) (Sample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, client.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(io.LimitReader(resp.Body, MAX_BODY))
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}

	body := strings.TrimSpace(string(buf))

	client.log.Info(body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError{url: client.url, status: resp.Status}
	}

	return client.config.Kind.Parse(body)
}
