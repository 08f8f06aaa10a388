package clonotab_api

import (
	"log"
	"os"

	"github.com/carbocation/pfx"
	cli "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

const (
	defaultRefVTrim = 15
	defaultRefJTrim = 15
)

// Read the configuration file, cast it to its struct and apply the command line overrides
func ReadConfig(Cctx *cli.Context) *Config {
	logger := log.New(os.Stderr, "", 0)
	if Cctx.String("config") == "" {
		logger.Fatal("Required flag \"config\" not set")
	}
	configFile, err := os.ReadFile(Cctx.String("config"))
	if err != nil {
		logger.Fatalf("Failed to open the config file: %v", err)
	}

	config, err := parseConfig(configFile)
	if err != nil {
		logger.Fatalf("Failed to parse the config file: %v", err)
	}

	config.applyFlags(Cctx)
	return config
}

// Parse the YAML contents of a config file
func parseConfig(data []byte) (*Config, error) {
	config := Config{Heuristics: defaultHeuristics()}
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, pfx.Err(err)
	}
	config.defineMissing()
	return &config, nil
}

func defaultHeuristics() Heuristics {
	return Heuristics{RefVTrim: defaultRefVTrim, RefJTrim: defaultRefJTrim}
}

// Trims left out of the heuristics section keep their defaults, an explicit 0 is kept
func (heur *Heuristics) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw struct {
		RefVTrim *int `yaml:"ref_v_trim"`
		RefJTrim *int `yaml:"ref_j_trim"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*heur = defaultHeuristics()
	if raw.RefVTrim != nil {
		heur.RefVTrim = *raw.RefVTrim
	}
	if raw.RefJTrim != nil {
		heur.RefJTrim = *raw.RefJTrim
	}
	return nil
}

// Define all missing fields
func (config *Config) defineMissing() {
	for i := range config.Datasets {
		if config.Datasets[i].Name == "" {
			config.Datasets[i].Name = config.Datasets[i].VdjPath
		}
	}
	if config.Print.Lvars == nil {
		config.Print.Lvars = []string{}
	}
}

// Command line flags win over the config file
func (config *Config) applyFlags(Cctx *cli.Context) {
	if Cctx.Bool("sum") {
		config.Print.Sum = true
	}
	if Cctx.Bool("mean") {
		config.Print.Mean = true
	}
	if Cctx.Bool("toy") {
		config.Print.Toy = true
	}
	if Cctx.Bool("allow-inconsistent") {
		config.AllowInconsistent = true
	}
	if Cctx.Bool("mute-warnings") {
		config.MuteWarnings = true
	}
	if Cctx.String("pout") != "" {
		config.Parseable.Pout = Cctx.String("pout")
	}
	if pcols := Cctx.StringSlice("pcols"); len(pcols) > 0 {
		config.Parseable.Pcols = pcols
	}
}
