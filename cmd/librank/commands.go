package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/vgasparyan1995/librank/pkg/config"
	"github.com/vgasparyan1995/librank/pkg/mcp"
	"github.com/vgasparyan1995/librank/pkg/record"
)

func getCommands() []*cli.Command {
	return []*cli.Command{
		getRankCommand(),
		getMcpCommand(),
		getServeCommand(),
		getVersionCommand(),
	}
}

// RankDeps carries the streams the rank command reads and writes, so tests
// can substitute buffers.
type RankDeps struct {
	Input  io.Reader
	Output io.Writer
}

func defaultRankDeps() RankDeps {
	return RankDeps{
		Input:  os.Stdin,
		Output: os.Stdout,
	}
}

func getRankCommand() *cli.Command {
	return getRankCommandWithDeps(defaultRankDeps())
}

func getRankCommandWithDeps(deps RankDeps) *cli.Command {
	return &cli.Command{
		Name:      "rank",
		Usage:     "Rank rows densely by a derived key",
		UsageText: "librank rank [<file>] [options]",
		Description: `Read rows from a file or stdin, sort them by key, and assign 1-based
dense ranks: rows with equal keys share a rank, and the next distinct
key takes the next integer, with no gaps. Rows with equal keys keep
their input order.

Examples:
  librank rank scores.txt                        # Rank lines (numeric when possible)
  cat scores.txt | librank rank --reverse        # Highest first
  librank rank players.json --input=json --key=score
  librank rank names.txt --key-type=string --locale=da`,
		Arguments: getRankArguments(),
		Flags:     getRankFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runRank(cmd, deps)
		},
	}
}

func runRank(cmd *cli.Command, deps RankDeps) error {
	cfg, err := config.LoadWithPriority(cmd.String("config"))
	if err != nil {
		return err
	}

	params, err := getAndValidateRankParams(cmd, cfg)
	if err != nil {
		return err
	}

	input, closeInput, err := openInput(cmd, deps)
	if err != nil {
		return err
	}
	defer closeInput()

	var records []record.Record
	switch params.input {
	case "json":
		records, err = record.ParseJSON(input)
	default:
		records, err = record.ParseLines(input)
	}
	if err != nil {
		return err
	}

	result, err := record.Rank(records, params.options)
	if err != nil {
		return err
	}

	printRankings(deps.Output, result, params.format)
	return nil
}

func openInput(cmd *cli.Command, deps RankDeps) (io.Reader, func(), error) {
	file := cmd.StringArg("file")
	if file == "" {
		return deps.Input, func() {}, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open %s: %w", file, err)
	}
	return f, func() { f.Close() }, nil
}

func getMcpCommand() *cli.Command {
	return &cli.Command{
		Name:      "mcp",
		Usage:     "Run as MCP server (stdio transport)",
		UsageText: "librank mcp [options]",
		Description: `Start the librank MCP server for integration with AI assistants.

The server communicates via stdio using the Model Context Protocol (MCP).

Tools:
  rank_lines    Rank newline-separated values
  rank_records  Rank JSON records by a field

Examples:
  librank mcp                       # All tools
  librank mcp --expose=rank_lines   # Specific tools only`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "expose",
				Value: "all",
				Usage: "Tools to expose: all, or comma-separated tool names",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			serverConfig := mcp.Config{
				Expose:  cmd.String("expose"),
				Version: version,
			}
			return mcp.RunServer(ctx, serverConfig)
		},
	}
}

func getServeCommand() *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "Run as hosted MCP server (streamable HTTP transport)",
		UsageText: "librank serve [options]",
		Description: `Start the librank MCP server over HTTP.

This command runs the MCP server using streamable HTTP transport, which is
suitable for hosted deployments accessible to remote MCP clients.

TLS/HTTPS:
  For production deployments, use --tls-cert and --tls-key to enable HTTPS.

Examples:
  # Start server on port 8080
  librank serve --addr=:8080

  # Start with HTTPS
  librank serve --addr=:8443 --tls-cert=cert.pem --tls-key=key.pem`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Value: ":8080",
				Usage: "Address to listen on (e.g., :8080 or localhost:8080)",
			},
			&cli.StringFlag{
				Name:  "expose",
				Value: "all",
				Usage: "Tools to expose: all, or comma-separated tool names",
			},
			&cli.StringFlag{
				Name:  "tls-cert",
				Usage: "Path to TLS certificate file for HTTPS",
			},
			&cli.StringFlag{
				Name:  "tls-key",
				Usage: "Path to TLS key file for HTTPS",
			},
			&cli.StringFlag{
				Name:  "endpoint-path",
				Value: "/mcp",
				Usage: "Path for the MCP endpoint",
			},
			&cli.BoolFlag{
				Name:  "cors",
				Usage: "Enable CORS for browser-based clients",
			},
			&cli.StringSliceFlag{
				Name:  "cors-origin",
				Usage: "Allowed CORS origins (if empty, allows all when --cors is enabled)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			httpConfig := mcp.HTTPConfig{
				Config: mcp.Config{
					Expose:  cmd.String("expose"),
					Version: version,
				},
				Addr:           cmd.String("addr"),
				TLSCertFile:    cmd.String("tls-cert"),
				TLSKeyFile:     cmd.String("tls-key"),
				EndpointPath:   cmd.String("endpoint-path"),
				EnableCORS:     cmd.Bool("cors"),
				AllowedOrigins: cmd.StringSlice("cors-origin"),
			}

			return mcp.RunHTTPServer(ctx, httpConfig)
		},
	}
}

func getVersionCommand() *cli.Command {
	return &cli.Command{
		Name:      "version",
		Usage:     "Show version information",
		UsageText: "librank version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("librank version %s\n", version)
			fmt.Printf("commit: %s\n", commit)
			fmt.Printf("built: %s\n", date)
			return nil
		},
	}
}
