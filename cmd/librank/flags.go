package main

import (
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/vgasparyan1995/librank/pkg/config"
	"github.com/vgasparyan1995/librank/pkg/record"
)

type RankParameters struct {
	input   string
	format  string
	options record.Options
}

func getRankFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "input",
			Value: "lines",
			Usage: "Input format: lines, or json (array of objects or JSON Lines)",
		},
		&cli.StringFlag{
			Name:  "key",
			Usage: "Field to derive the ranking key from (required for --input=json)",
		},
		&cli.StringFlag{
			Name:  "key-type",
			Value: "auto",
			Usage: "Key coercion: auto, number or string",
		},
		&cli.StringFlag{
			Name:  "locale",
			Usage: "BCP 47 locale for string keys (e.g. da, de-DE)",
		},
		&cli.BoolFlag{
			Name:    "reverse",
			Aliases: []string{"r"},
			Usage:   "Rank in descending key order",
		},
		getTopNFlag(),
		getFormatFlag(),
		getConfigFlag(),
	}
}

func getRankArguments() []cli.Argument {
	return []cli.Argument{
		&cli.StringArg{
			Name:      "file",
			UsageText: "[<file>] (default: stdin)",
		},
	}
}

func getTopNFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "top-n",
		Value: 0,
		Usage: "Number of top rows to show (0 for all)",
	}
}

func getFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: text, json or markdown",
	}
}

func getConfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "config",
		Usage: "Path to config file (default: ~/.librank/config.toml)",
	}
}

// getAndValidateRankParams merges flags with config file defaults. A flag
// set on the command line wins over the config file.
func getAndValidateRankParams(cmd *cli.Command, cfg *config.Config) (RankParameters, error) {
	input := cmd.String("input")
	if err := validateInput(input); err != nil {
		return RankParameters{}, err
	}

	format := resolveString(cmd, "format", cfg.Format)
	if err := validateFormat(format); err != nil {
		return RankParameters{}, err
	}

	keyType, err := record.ParseKeyType(resolveString(cmd, "key-type", cfg.KeyType))
	if err != nil {
		return RankParameters{}, err
	}

	return RankParameters{
		input:  input,
		format: format,
		options: record.Options{
			Field:   cmd.String("key"),
			KeyType: keyType,
			Locale:  resolveString(cmd, "locale", cfg.Locale),
			Reverse: cmd.Bool("reverse"),
			TopN:    resolveInt(cmd, "top-n", cfg.TopN),
		},
	}, nil
}

func validateInput(input string) error {
	if input != "lines" && input != "json" {
		return fmt.Errorf("input must be 'lines' or 'json'")
	}
	return nil
}

func validateFormat(format string) error {
	if format != "text" && format != "json" && format != "markdown" {
		return fmt.Errorf("format must be 'text', 'json', or 'markdown'")
	}
	return nil
}

func resolveString(cmd *cli.Command, name, configValue string) string {
	if cmd.IsSet(name) || configValue == "" {
		return cmd.String(name)
	}
	return configValue
}

func resolveInt(cmd *cli.Command, name string, configValue int) int {
	if cmd.IsSet(name) || configValue == 0 {
		return cmd.Int(name)
	}
	return configValue
}
