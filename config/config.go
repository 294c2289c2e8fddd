package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/markdrayton/vzug/appliance"
	"github.com/markdrayton/vzug/influxdb"
)

const APPLIANCES_TABLE = "appliances"

type Config struct {
	Database   influxdb.Config
	Appliances []appliance.Config
}

// [appliances.<Kind>]
type applianceConfig struct {
	Name string `toml:"name" yaml:"name"`
	Host string `toml:"host" yaml:"host"`
}

type tomlConfig struct {
	Database   influxdb.Config            `toml:"database"`
	Appliances map[string]applianceConfig `toml:"appliances"`
}

type yamlConfig struct {
	Database   influxdb.Config `yaml:"database"`
	Appliances yaml.Node       `yaml:"appliances"`
}

type kindConfig struct {
	kind   string
	config applianceConfig
}

// Load reads a TOML config file, or YAML for a .yaml/.yml path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return LoadTOML(string(data))
	}
}

func LoadTOML(data string) (*Config, error) {
	var file tomlConfig

	meta, err := toml.Decode(data, &file)
	if err != nil {
		return nil, errors.Wrap(err, "toml")
	}

	var undecodedKeys []string

	for _, key := range meta.Undecoded() {
		undecodedKeys = append(undecodedKeys, key.String())
	}

	if undecodedKeys != nil {
		return nil, fmt.Errorf("Undecoded keys: %v", strings.Join(undecodedKeys, " "))
	}

	// keep the file order, which the map loses
	// tables and dotted keys both show up as appliances.<kind>[.<field>]
	var appliances []kindConfig
	seen := make(map[string]bool)

	for _, key := range meta.Keys() {
		if len(key) < 2 || key[0] != APPLIANCES_TABLE || seen[key[1]] {
			continue
		}
		seen[key[1]] = true

		appliances = append(appliances, kindConfig{key[1], file.Appliances[key[1]]})
	}

	for kind := range file.Appliances {
		if !seen[kind] {
			return nil, fmt.Errorf("Unordered appliance: %v", kind)
		}
	}

	return load(file.Database, appliances)
}

func LoadYAML(data []byte) (*Config, error) {
	var file yamlConfig

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&file); err != nil {
		return nil, errors.Wrap(err, "yaml")
	}

	var appliances []kindConfig

	switch file.Appliances.Kind {
	case 0:
		// missing
	case yaml.MappingNode:
		for i := 0; i+1 < len(file.Appliances.Content); i += 2 {
			key, value := file.Appliances.Content[i], file.Appliances.Content[i+1]
			item := kindConfig{kind: key.Value}

			if err := value.Decode(&item.config); err != nil {
				return nil, errors.Wrapf(err, "yaml appliances.%v", key.Value)
			}

			appliances = append(appliances, item)
		}
	default:
		return nil, fmt.Errorf("yaml line %d: appliances must be a mapping", file.Appliances.Line)
	}

	return load(file.Database, appliances)
}

func load(database influxdb.Config, appliances []kindConfig) (*Config, error) {
	config := &Config{
		Database: database.WithDefaults(),
	}

	if err := config.Database.Check(); err != nil {
		return nil, err
	}

	names := make(map[string]bool)

	for _, item := range appliances {
		kind, err := appliance.ParseKind(item.kind)
		if err != nil {
			return nil, err
		}

		if err := checkName(item.config.Name); err != nil {
			return nil, errors.Wrapf(err, "appliances.%v", item.kind)
		} else if names[item.config.Name] {
			return nil, fmt.Errorf("Duplicate appliance name: %v", item.config.Name)
		} else {
			names[item.config.Name] = true
		}

		if item.config.Host == "" {
			return nil, fmt.Errorf("Missing host for appliances.%v", item.kind)
		}

		config.Appliances = append(config.Appliances, appliance.Config{
			Name: item.config.Name,
			Host: item.config.Host,
			Kind: kind,
		})
	}

	if len(config.Appliances) == 0 {
		return nil, fmt.Errorf("No appliances configured")
	}

	return config, nil
}
