/*
 * Copyright (c) 2020 Siemens AG
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 *
 * Author(s): Jonas Plum
 */

// Package config loads the evidencechain configuration.
//
// Values are resolved in this order, later sources winning:
//   - built-in defaults
//   - a YAML file (--config or EVIDENCECHAIN_CONFIG)
//   - EVIDENCECHAIN_<KEY> environment variables, e.g. EVIDENCECHAIN_COLLECTION_ROOT
//   - command line flags
package config

import (
	"io/ioutil"
	"os"
	"reflect"
	"strings"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"github.com/stoewer/go-strcase"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "EVIDENCECHAIN"

// Config is the configuration of the evidence chain-of-custody tooling.
type Config struct {
	// CollectionRoot holds the collected artefacts, the evidence_chain
	// folder and the forensic_reports folder.
	CollectionRoot string `yaml:"collection_root"`

	// Listen is the address of the web console.
	Listen string `yaml:"listen"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Operator and DeviceID are stamped on every evidence record.
	Operator string `yaml:"operator"`
	DeviceID string `yaml:"device_id"`

	// ExtraHashes are computed in addition to md5, sha1 and sha256 and
	// stored in the structured ledger document only.
	ExtraHashes []string `yaml:"extra_hashes"`

	// ReportPrefix starts every report id.
	ReportPrefix string `yaml:"report_prefix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CollectionRoot: "collected_data",
		Listen:         "127.0.0.1:8000",
		LogLevel:       "info",
		Operator:       "Android Collector",
		DeviceID:       "N/A",
		ExtraHashes:    []string{},
		ReportPrefix:   "FR",
	}
}

// Load reads the YAML file at path (may be empty), applies environment
// overrides and fills unset values from Default.
func Load(path string) (*Config, error) {
	cfg := Config{}
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		b, err := ioutil.ReadFile(path) // #nosec
		if err != nil {
			return nil, errors.Wrap(err, "could not read config")
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, errors.Wrapf(err, "could not parse config %s", path)
		}
	}

	applyEnv(&cfg, os.LookupEnv)

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return nil, errors.Wrap(err, "could not apply defaults")
	}
	return &cfg, nil
}

// EnvName returns the environment variable overriding a Config field.
func EnvName(field string) string {
	return EnvPrefix + "_" + strcase.UpperSnakeCase(field)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		value, ok := lookup(EnvName(t.Field(i).Name))
		if !ok {
			continue
		}
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Slice:
			var items []string
			for _, item := range strings.Split(value, ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
			field.Set(reflect.ValueOf(items))
		}
	}
}
