// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const ENV_PREFIX = "GODEBIT"

// Loader layers configuration: defaults, then a YAML file, then
// GODEBIT_* environment variables, then explicit overrides from flags.
type Loader struct {
	v *viper.Viper
}

func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v}
}

// An empty path leaves the defaults in place.
func (ld *Loader) Read(path string) error {
	if path == "" {
		return nil
	}

	ld.v.SetConfigFile(path)
	ld.v.SetConfigType("yaml")

	return ld.v.ReadInConfig()
}

func (ld *Loader) Set(key string, value interface{}) {
	ld.v.Set(key, value)
}

// Decodes and validates the merged settings.
func (ld *Loader) Config() (*Config, error) {
	cfg := &Config{}

	if err := ld.v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// The merged settings as a YAML document.
func (ld *Loader) YAML() ([]byte, error) {
	return yaml.Marshal(ld.v.AllSettings())
}

func Load(path string) (*Config, error) {
	ld := NewLoader()

	if err := ld.Read(path); err != nil {
		return nil, err
	}

	return ld.Config()
}
