//Package config loads simulation settings from a JSON file
package config

import (
	"encoding/json"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"

	"golife/src/universe"
)

//Config holds the file-configurable simulation settings
//Interval is a time.Duration, so the JSON value is in nanoseconds
type Config struct {
	Width    uint32        `json:"width"`
	Height   uint32        `json:"height"`
	Interval time.Duration `json:"interval"`
	MaxSteps int           `json:"max_steps"`
	Template string        `json:"template"`
	Random   bool          `json:"random"`
}

//Load reads and parses the config file at path
func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}

	c := &Config{}
	if err = json.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	return c, nil
}

//Apply copies the settings that were set in the file onto the engine options
//zero values keep the defaults already present in o
func (c *Config) Apply(o *universe.Options) {
	if c.Width > 0 {
		o.Width = c.Width
	}
	if c.Height > 0 {
		o.Height = c.Height
	}
	if c.Interval > 0 {
		o.Interval = c.Interval
	}
	if c.MaxSteps > 0 {
		o.MaxSteps = c.MaxSteps
	}
}
