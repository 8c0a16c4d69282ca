package logan

import (
	_ "embed"

	"github.com/pkg/errors"

	nt "logan/entity"
	"logan/parse"
	"logan/util"
)

//go:embed sample.yaml
var SampleYaml []byte

// Config is the rule and column configuration.
type Config struct {
	Rules   []parse.RuleConfig `yaml:"rules" toml:"rules"`
	Columns []nt.Column        `yaml:"columns" toml:"columns"`
	LogFile string             `yaml:"log_file,omitempty" toml:"log_file,omitempty"`
}

// LoadConfig reads a yaml or toml config file.
func LoadConfig(path string) (cfg *Config, err error) {

	cfg = &Config{}
	err = util.LoadConfig(cfg, path)
	if err != nil {
		cfg = nil
		return
	}

	err = cfg.validate()
	if err != nil {
		cfg = nil
	}
	return
}

// New builds a pipeline from the config.
func (cfg *Config) New(lgr nt.Logger, opts ...parse.Option) (pl *Pipeline, err error) {
	return BuildPipeline(cfg.Rules, cfg.Columns, lgr, opts...)
}

// unexported

func (cfg *Config) validate() (err error) {

	for i, col := range cfg.Columns {
		if col.Key == "" {
			err = errors.Errorf("column %d has no key", i)
			return
		}
	}
	return
}
