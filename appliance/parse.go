package appliance

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Metric name -> numeric value, float64 or int64.
// A nil Sample means no data.
type Sample map[string]interface{}

type ParseError struct {
	Kind Kind
	Body string
	Err  error
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("parse %v response %q: %v", err.Kind, err.Body, err.Err)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

func (err *ParseError) Cause() error {
	return err.Err
}

type washerStatus struct {
	Value *string `json:"value"`
}

// The washer reports `<label> <kWh> kWh, <label> <liters>l`, with either
// decimal separator in the power figure.
func parseWasher(body string) (Sample, error) {
	var status washerStatus

	if err := json.Unmarshal([]byte(body), &status); err != nil {
		return nil, errors.Wrap(err, "json")
	} else if status.Value == nil {
		return nil, errors.New("missing value")
	}

	powerPart, waterPart, found := strings.Cut(*status.Value, ", ")
	if !found {
		return nil, errors.Errorf("missing separator in value %q", *status.Value)
	}

	power, err := parseFloatToken(powerPart)
	if err != nil {
		return nil, errors.Wrap(err, "power")
	}

	water, err := parseIntToken(waterPart)
	if err != nil {
		return nil, errors.Wrap(err, "water")
	}

	return Sample{
		"power": power,
		"water": water,
	}, nil
}

// Dryer and oven report `<kWh> <unit...>`.
func parsePower(body string) (Sample, error) {
	fields := strings.Split(strings.TrimSpace(body), " ")

	power, err := parseNumber(fields[0])
	if err != nil {
		return nil, errors.Wrap(err, "power")
	}

	return Sample{
		"power": power,
	}, nil
}

var decimalRegexp = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// plain decimals only: no hex, exponents, underscores, NaN or Inf
func parseNumber(token string) (float64, error) {
	if !decimalRegexp.MatchString(token) {
		return 0, errors.Errorf("not a decimal number: %q", token)
	}

	return strconv.ParseFloat(token, 64)
}

// first token that reads as a number, after normalizing `,` to `.`
func parseFloatToken(part string) (float64, error) {
	for _, token := range strings.Fields(part) {
		if value, err := parseNumber(strings.Replace(token, ",", ".", 1)); err == nil {
			return value, nil
		}
	}

	return 0, errors.Errorf("no number in %q", part)
}

// first token that reads as an integer once a trailing unit is stripped
func parseIntToken(part string) (int64, error) {
	for _, token := range strings.Fields(part) {
		token = strings.TrimRightFunc(token, unicode.IsLetter)
		if token == "" {
			continue
		}
		if value, err := strconv.ParseInt(token, 10, 64); err == nil {
			return value, nil
		}
	}

	return 0, errors.Errorf("no integer in %q", part)
}
