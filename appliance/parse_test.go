package appliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParse = []struct {
	kind   Kind
	body   string
	sample Sample
}{
	{Washer, `{"value": "2.5 kWh, 40 l"}`, Sample{"power": 2.5, "water": int64(40)}},
	{Washer, `{"value": "2,5 kWh, 40 l"}`, Sample{"power": 2.5, "water": int64(40)}},
	{Washer, `{"value": "2,5 kWh, 40l"}`, Sample{"power": 2.5, "water": int64(40)}},
	{Washer, `{"value": "1234 kWh, 98765 l"}`, Sample{"power": 1234.0, "water": int64(98765)}},
	{Washer, `{"value": "Total 812,3 kWh, Total 41234l"}`, Sample{"power": 812.3, "water": int64(41234)}},
	{Washer, `{"command":"getCommand","value":"Total 0.7 kWh, Total 15l"}`, Sample{"power": 0.7, "water": int64(15)}},
	{Dryer, "123.4 kWh", Sample{"power": 123.4}},
	{Dryer, "5 kWh total", Sample{"power": 5.0}},
	{Oven, "42.25 kWh\n", Sample{"power": 42.25}},
	{Oven, "0", Sample{"power": 0.0}},
	{Oven, "+3. kWh", Sample{"power": 3.0}},
	{Dryer, ".5 kWh", Sample{"power": 0.5}},
}

func TestParse(t *testing.T) {
	for _, test := range testParse {
		sample, err := test.kind.Parse(test.body)

		if assert.NoError(t, err, "%v %q", test.kind, test.body) {
			assert.Equal(t, test.sample, sample, "%v %q", test.kind, test.body)
		}
	}
}

var testParseError = []struct {
	kind Kind
	body string
}{
	{Washer, ``},
	{Washer, `not json`},
	{Washer, `{}`},
	{Washer, `{"value": 2.5}`},
	{Washer, `{"value": "2.5 kWh 40 l"}`},
	{Washer, `{"value": "2.5 kWh,40 l"}`},
	{Washer, `{"value": "kWh, 40 l"}`},
	{Washer, `{"value": "2.5 kWh, l"}`},
	{Washer, `{"value": "2.5 kWh, 4.5 l"}`},
	{Dryer, ``},
	{Dryer, `kWh 2.5`},
	{Dryer, `2,5 kWh`},
	{Oven, `NaN kWh`},
	{Oven, `Inf kWh`},
	{Oven, `<html>error</html>`},
	{Oven, `0x1p1 kWh`},
	{Oven, `1_000 kWh`},
	{Dryer, `1e3 kWh`},
	{Washer, `{"value": "0x1p1 kWh, 40 l"}`},
	{Washer, `{"value": "Total 1_0 kWh, Total 15l"}`},
}

func TestParseError(t *testing.T) {
	for _, test := range testParseError {
		sample, err := test.kind.Parse(test.body)

		assert.Nil(t, sample, "%v %q", test.kind, test.body)

		var parseErr *ParseError
		if assert.ErrorAs(t, err, &parseErr, "%v %q", test.kind, test.body) {
			assert.Equal(t, test.kind, parseErr.Kind)
			assert.Equal(t, test.body, parseErr.Body)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	kind, err := ParseKind("oven")
	require.NoError(t, err)
	assert.Equal(t, Oven, kind)

	_, err = ParseKind("Fridge")
	assert.Error(t, err)

	_, err = ParseKind("")
	assert.Error(t, err)
}

func TestKindText(t *testing.T) {
	var kind Kind

	require.NoError(t, kind.UnmarshalText([]byte("dryer")))
	assert.Equal(t, Dryer, kind)

	text, err := kind.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Dryer", string(text))

	assert.Error(t, kind.UnmarshalText([]byte("toaster")))
	assert.False(t, Kind(0).Valid())
	assert.Equal(t, "Kind(0)", Kind(0).String())
}

func TestConfigURL(t *testing.T) {
	config := Config{Name: "washer", Host: "10.0.0.10", Kind: Washer}

	assert.Equal(t, "http://10.0.0.10/hh?command=getCommand&value=ecomXstatXtotal", config.URL())
	assert.Equal(t, "http://oven.lan:8080/hh?command=getTotalXconsumption", Config{Host: "oven.lan:8080", Kind: Oven}.URL())
	assert.Equal(t, "http://dryer/hh?command=getTotalXconsumptionXdrumDry", Config{Host: "dryer", Kind: Dryer}.URL())
}
