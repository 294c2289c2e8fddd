package appliance

import (
	"fmt"
	"strings"
)

// Kind selects the status path and parse rule for an appliance.
type Kind int

const (
	Washer Kind = iota + 1
	Dryer
	Oven
)

type kindInfo struct {
	name  string
	path  string
	parse func(body string) (Sample, error)
}

var kinds = map[Kind]kindInfo{
	Washer: {"Washer", "/hh?command=getCommand&value=ecomXstatXtotal", parseWasher},
	Dryer:  {"Dryer", "/hh?command=getTotalXconsumptionXdrumDry", parsePower},
	Oven:   {"Oven", "/hh?command=getTotalXconsumption", parsePower},
}

// Kinds lists the known kinds in declaration order.
func Kinds() []Kind {
	return []Kind{Washer, Dryer, Oven}
}

// ParseKind matches the kind name case-insensitively.
func ParseKind(value string) (Kind, error) {
	for _, kind := range Kinds() {
		if strings.EqualFold(kinds[kind].name, value) {
			return kind, nil
		}
	}

	return 0, fmt.Errorf("Unknown appliance kind: %#v", value)
}

func (kind Kind) Valid() bool {
	_, ok := kinds[kind]

	return ok
}

func (kind Kind) String() string {
	if info, ok := kinds[kind]; ok {
		return info.name
	}

	return fmt.Sprintf("Kind(%d)", int(kind))
}

// Path is the fixed status request path, including the query.
func (kind Kind) Path() string {
	return kinds[kind].path
}

// Parse converts a status response body into a Sample.
func (kind Kind) Parse(body string) (Sample, error) {
	info, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("Invalid kind: %v", kind)
	}

	if sample, err := info.parse(body); err != nil {
		return nil, &ParseError{Kind: kind, Body: body, Err: err}
	} else {
		return sample, nil
	}
}

func (kind *Kind) UnmarshalText(text []byte) error {
	if parsed, err := ParseKind(string(text)); err != nil {
		return err
	} else {
		*kind = parsed
	}

	return nil
}

func (kind Kind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}
