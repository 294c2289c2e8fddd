package config

import (
	"fmt"
	"regexp"
)

var nameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// Appliance names end up as the InfluxDB name tag.
func checkName(name string) error {
	if !nameRegexp.MatchString(name) {
		return fmt.Errorf("Invalid appliance name: %#v", name)
	}

	return nil
}
