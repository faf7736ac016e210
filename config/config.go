// Copyright 2026 The Floodlight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package config loads the switchportd configuration from a YAML or JSON file,
SWITCHPORTD_* environment variables and command line flags, in increasing
order of precedence.
*/
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/floodlight/topology-go/model"
	"github.com/floodlight/topology-go/serializer"
	"github.com/floodlight/topology-go/web"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SWITCHPORTD"

// Reporter types.
const (
	ReporterNone   = "none"
	ReporterLog    = "log"
	ReporterHTTP   = "http"
	ReporterKafka  = "kafka"
	ReporterAMQP   = "amqp"
	ReporterPulsar = "pulsar"
)

// Config is the switchportd configuration.
type Config struct {
	Log         LogConfig      `mapstructure:"log"`
	HTTP        HTTPConfig     `mapstructure:"http"`
	Reporter    ReporterConfig `mapstructure:"reporter"`
	SwitchPorts []SwitchPort   `mapstructure:"switchports"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// HTTPConfig configures the REST listener.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
	Path string `mapstructure:"path"`
}

// ReporterConfig selects where configured switch ports are announced.
type ReporterConfig struct {
	Type    string `mapstructure:"type"`
	Address string `mapstructure:"address"`
	Topic   string `mapstructure:"topic"`
	Format  string `mapstructure:"format"` // json or proto
}

// SwitchPort is an edge endpoint as written in the configuration, in the
// same form REST clients post it.
type SwitchPort struct {
	DPID string `mapstructure:"dpid"`
	Port string `mapstructure:"port"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.path", web.DefaultPath)
	v.SetDefault("reporter.type", ReporterNone)
	v.SetDefault("reporter.format", "json")
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log.level", "info", "log level")
	fs.String("log.format", "text", "log format: text or json")
	fs.String("http.addr", ":8080", "REST listen address")
	fs.String("reporter.type", ReporterNone, "reporter: none, log, http, kafka, amqp or pulsar")
	fs.String("reporter.address", "", "reporter broker or collector address")
}

// Load reads the configuration. path may be empty; fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "config file %s", path)
		}
		v.SetConfigFile(path)
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			v.SetConfigType("yaml")
		case ".json":
			v.SetConfigType("json")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, errors.Wrap(err, "bind flags")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return &c, nil
}

// NodePortTuples parses the configured switch ports.
func (c *Config) NodePortTuples() ([]model.NodePortTuple, error) {
	npts := make([]model.NodePortTuple, 0, len(c.SwitchPorts))
	for i, sp := range c.SwitchPorts {
		npt, err := model.NewNodePortTuple(sp.DPID, sp.Port)
		if err != nil {
			return nil, errors.Wrapf(err, "switchports[%d]", i)
		}
		npts = append(npts, npt)
	}
	return npts, nil
}

// Logger returns a logrus Logger writing to stderr at the configured level
// and format.
func (c *Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log.level")
	}
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(level)
	switch c.Log.Format {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Newf("log.format: unknown format %q", c.Log.Format)
	}
	return l, nil
}

// Serializer returns the serializer selected by reporter.format.
func (c *Config) Serializer() (serializer.Serializer, error) {
	switch c.Reporter.Format {
	case "", "json":
		return serializer.JSONSerializer{}, nil
	case "proto":
		return serializer.ProtoSerializer{}, nil
	default:
		return nil, errors.Newf("reporter.format: unknown format %q", c.Reporter.Format)
	}
}
