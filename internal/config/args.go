package config

import (
	"errors"
	"fmt"
	"strconv"
)

// ParseArgs parses command-line arguments into a Config. Expected format:
//
//	gazer [--config <file>] [--detector <name>] [--filter <expr>]
//	      [--out <csv>] [--store <db>] [--rate <hz>] <input.csv>
//
// Flags override values from the config file and environment.
func ParseArgs(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no arguments provided")
	}
	programName := args[0]

	var configPath string
	flags := make(map[string]string)
	var input string

	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--config", "--detector", "--filter", "--out", "--store", "--rate":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			if arg == "--config" {
				configPath = args[i+1]
			} else {
				flags[arg] = args[i+1]
			}
			i++
		case "--help", "-h":
			return nil, errors.New(usage(programName))
		default:
			if len(arg) > 1 && arg[0] == '-' {
				return nil, fmt.Errorf("unknown flag %q\n%s", arg, usage(programName))
			}
			if input != "" {
				return nil, fmt.Errorf("multiple input files given: %q and %q", input, arg)
			}
			input = arg
		}
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, err
	}

	if input != "" {
		cfg.Input = input
	}
	if v, ok := flags["--detector"]; ok {
		cfg.Detector = v
	}
	if v, ok := flags["--filter"]; ok {
		cfg.Filter = v
	}
	if v, ok := flags["--out"]; ok {
		cfg.OutputCSV = v
	}
	if v, ok := flags["--store"]; ok {
		cfg.StorePath = v
	}
	if v, ok := flags["--rate"]; ok {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sampling rate %q: %w", v, err)
		}
		cfg.SamplingRate = rate
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w\n%s", err, usage(programName))
	}
	return cfg, nil
}

func usage(programName string) string {
	return fmt.Sprintf(
		"Usage: %s [--config <file>] [--detector <name>] [--filter <expr>] [--out <csv>] [--store <db>] [--rate <hz>] <input.csv>\n"+
			"Example: %s --detector ivt --rate 1000 recording.csv",
		programName, programName,
	)
}
