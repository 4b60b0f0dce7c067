// Package config loads the process's settings tree from a TOML file
// with an environment-variable overlay: defaults first, then the
// file, then the environment, so deployment-time overrides win.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	mapstructure "github.com/go-viper/mapstructure/v2"
)

// EnvPrefix is the environment-variable prefix; nested keys are
// separated by a double underscore, e.g. SW__STEGO_WAVE_LIB__HEADER,
// SW__REST__PORT.
const EnvPrefix = "SW__"

// DefaultConfigFile is the configuration filename looked for when no
// explicit path is given.
const DefaultConfigFile = "sw_config.toml"

// StegoWaveLib holds the three keys the codec itself consumes.
type StegoWaveLib struct {
	Header         string `koanf:"header"`
	DefaultLsbDeep int    `koanf:"default_lsb_deep"`
	MaxOccupancy   int    `koanf:"max_occupancy"`
}

// Endpoint is a bindable host/port pair shared by the REST and gRPC
// transports.
type Endpoint struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// Address formats the endpoint as "host:port".
func (e Endpoint) Address() string { return fmt.Sprintf("%s:%d", e.Host, e.Port) }

// Settings is the full process configuration tree.
type Settings struct {
	StegoWaveLib StegoWaveLib `koanf:"stego_wave_lib"`
	REST         Endpoint     `koanf:"rest"`
	GRPC         Endpoint     `koanf:"grpc"`
}

func defaultMap() map[string]interface{} {
	return map[string]interface{}{
		"stego_wave_lib.header":           "STEG",
		"stego_wave_lib.default_lsb_deep": 1,
		"stego_wave_lib.max_occupancy":    70,
		"rest.host":                       "0.0.0.0",
		"rest.port":                       8080,
		"grpc.host":                       "0.0.0.0",
		"grpc.port":                       50051,
	}
}

// Load reads configFile (TOML) then overlays environment variables
// carrying EnvPrefix: file first, environment second so
// deployment-time overrides win.
func Load(configFile string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: seed defaults: %w", err)
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", configFile, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		trimmed := strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(trimmed), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	var out Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &out,
			WeaklyTypedInput: true, // env values arrive as strings even for int fields
		},
	}
	if err := k.UnmarshalWithConf("", &out, unmarshalConf); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &out, nil
}
