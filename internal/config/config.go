package config

import (
	"github.com/paularlott/cli"
)

type Config struct {
	Namespace string
	Remove    string
	Like      bool
	Raw       bool
	LogLevel  string
	LogFormat string
}

var (
	namespace string
	remove    string
	like      bool
	raw       bool
	logLevel  string
	logFormat string
)

func GetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "namespace",
			Usage:    "Namespace to list and/or remove from; empty walks everything below ROOT",
			EnvVars:  []string{"WMISWEEP_NAMESPACE"},
			AssignTo: &namespace,
		},
		&cli.StringFlag{
			Name:     "remove",
			Usage:    "Name of the event filter(s) to remove",
			AssignTo: &remove,
		},
		&cli.BoolFlag{
			Name:     "like",
			Usage:    "Match the removal name as a substring instead of exact equality",
			AssignTo: &like,
		},
		&cli.BoolFlag{
			Name:     "raw",
			Usage:    "Print full instances instead of the four-field projection",
			AssignTo: &raw,
		},
		&cli.StringFlag{
			Name:         "log-level",
			Usage:        "Log level (debug, info, warn, error)",
			EnvVars:      []string{"WMISWEEP_LOG_LEVEL"},
			DefaultValue: "info",
			AssignTo:     &logLevel,
		},
		&cli.StringFlag{
			Name:         "log-format",
			Usage:        "Log format (console, json)",
			EnvVars:      []string{"WMISWEEP_LOG_FORMAT"},
			DefaultValue: "console",
			AssignTo:     &logFormat,
		},
	}
}

func Load() *Config {
	return &Config{
		Namespace: namespace,
		Remove:    remove,
		Like:      like,
		Raw:       raw,
		LogLevel:  logLevel,
		LogFormat: logFormat,
	}
}

// IsRemoveRequested checks if a removal name was given
func (c *Config) IsRemoveRequested() bool {
	return c.Remove != ""
}
