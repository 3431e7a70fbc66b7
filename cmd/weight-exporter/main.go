package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
	"google.golang.org/api/option"

	"github.com/hubertkaluzny/weight-exporter/auth"
	"github.com/hubertkaluzny/weight-exporter/chart"
	"github.com/hubertkaluzny/weight-exporter/config"
	"github.com/hubertkaluzny/weight-exporter/fetcher"
	"github.com/hubertkaluzny/weight-exporter/formatter"
	"github.com/hubertkaluzny/weight-exporter/record"
)

const (
	OutputFileFlag    = "output-file"
	FormatFlag        = "format"
	StartDateFlag     = "start-date"
	EndDateFlag       = "end-date"
	ConfigFlag        = "config"
	ClientSecretsFlag = "client-secrets"
	TokenFileFlag     = "token-file"
	DataSourceFlag    = "data-source"
	VerboseFlag       = "verbose"
)

const dateLayout = "2006-01-02"

func exportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    OutputFileFlag,
			Aliases: []string{"o"},
			Usage:   "output file path (default google-fit-weight-<unix time>.csv)",
		},
		&cli.StringFlag{
			Name:    FormatFlag,
			Aliases: []string{"f"},
			Usage:   "output format, one of: default, libra",
			Value:   string(formatter.Default),
		},
		&cli.StringFlag{
			Name:    StartDateFlag,
			Aliases: []string{"s"},
			Usage:   "start of the requested date range, YYYY-MM-DD",
			Value:   "2010-01-01",
		},
		&cli.StringFlag{
			Name:    EndDateFlag,
			Aliases: []string{"e"},
			Usage:   "end of the requested date range, YYYY-MM-DD",
			Value:   "2020-01-01",
		},
		&cli.StringFlag{
			Name:    ConfigFlag,
			Aliases: []string{"c"},
			Usage:   "optional YAML configuration file",
			EnvVars: []string{"WEIGHT_EXPORTER_CONFIG"},
		},
		&cli.StringFlag{
			Name:  ClientSecretsFlag,
			Usage: "OAuth2 client secrets JSON file",
		},
		&cli.StringFlag{
			Name:  TokenFileFlag,
			Usage: "file caching the OAuth2 token",
		},
		&cli.StringFlag{
			Name:  DataSourceFlag,
			Usage: "data source id to read the dataset from",
		},
		&cli.BoolFlag{
			Name:  VerboseFlag,
			Usage: "log debug output",
		},
	}
}

func main() {
	app := &cli.App{
		Name:   "weight-exporter",
		Usage:  "reads weight data from the Google Fitness API and exports it to a CSV file",
		Flags:  exportFlags(),
		Action: exportAction,
		Commands: []*cli.Command{
			{
				Name:   "export",
				Usage:  "export weight samples of a date range",
				Flags:  exportFlags(),
				Action: exportAction,
			},
			{
				Name:      "chart",
				Usage:     "render a default format export as an HTML line chart",
				ArgsUsage: "<export file> <output html>",
				Action:    chartAction,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

type exportOptions struct {
	Config     *config.Config
	Target     fetcher.FetchTarget
	Format     formatter.Format
	OutputFile string
}

func parseDate(input string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(input), time.Local)
}

func defaultOutputFile(now time.Time) string {
	return fmt.Sprintf("google-fit-weight-%d.csv", now.Unix())
}

// resolveExportOptions merges the config file with the command line, the
// latter winning.
func resolveExportOptions(ctx *cli.Context, now time.Time) (*exportOptions, error) {
	cfg := config.Default()
	if path := ctx.String(ConfigFlag); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if ctx.IsSet(ClientSecretsFlag) {
		cfg.ClientSecrets = ctx.String(ClientSecretsFlag)
	}
	if ctx.IsSet(TokenFileFlag) {
		cfg.TokenFile = ctx.String(TokenFileFlag)
	}
	if ctx.IsSet(DataSourceFlag) {
		cfg.DataSourceID = ctx.String(DataSourceFlag)
	}
	if ctx.IsSet(FormatFlag) {
		cfg.Format = ctx.String(FormatFlag)
	}

	format, err := formatter.ToFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	from, err := parseDate(ctx.String(StartDateFlag))
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	to, err := parseDate(ctx.String(EndDateFlag))
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if to.Before(from) {
		return nil, fetcher.ErrReversedRange
	}

	output := ctx.String(OutputFileFlag)
	if output == "" {
		output = filepath.Join(cfg.OutputDir, defaultOutputFile(now))
	}

	return &exportOptions{
		Config: cfg,
		Target: fetcher.FetchTarget{
			From:         from,
			To:           to,
			DataSourceID: cfg.DataSourceID,
		},
		Format:     format,
		OutputFile: output,
	}, nil
}

func newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func exportAction(ctx *cli.Context) error {
	if ctx.Args().Present() {
		return usageError(ctx, fmt.Errorf("unexpected argument %q", ctx.Args().First()))
	}
	logger := newLogger(ctx.Bool(VerboseFlag))

	opts, err := resolveExportOptions(ctx, time.Now())
	if err != nil {
		return usageError(ctx, err)
	}
	logger.Info("export values",
		"from", opts.Target.From.Format("Mon, 02 Jan 2006"),
		"to", opts.Target.To.Format("Mon, 02 Jan 2006"))

	oauthCfg, err := auth.LoadConfig(opts.Config.ClientSecrets, auth.BodyReadScope)
	if err != nil {
		return err
	}
	ts, err := auth.NewAuthenticator(oauthCfg, opts.Config.TokenFile, logger).TokenSource(ctx.Context)
	if err != nil {
		return err
	}

	logger.Debug("creating API service")
	src, err := fetcher.NewGoogleFitSource(ctx.Context, option.WithTokenSource(ts))
	if err != nil {
		return err
	}

	_, err = fetcher.NewFetcher(src, logger).Fetch(ctx.Context, opts.Target, opts.Format, opts.OutputFile)
	return err
}

func chartAction(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return usageError(ctx, errors.New("expected an export file and an output file"))
	}
	inputFilePath := ctx.Args().Get(0)
	outputFilePath := ctx.Args().Get(1)

	inputFile, err := os.Open(inputFilePath)
	if err != nil {
		return err
	}
	defer inputFile.Close()

	records, err := record.ReadFlat(inputFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputFilePath, err)
	}
	fmt.Printf("Parsed %d records.\n", len(records))

	outputFile, err := os.Create(outputFilePath)
	if err != nil {
		return err
	}

	err = chart.Render(outputFile, records)
	if err != nil {
		outputFile.Close()
		return err
	}

	fmt.Println("Chart rendered to", outputFilePath)
	return outputFile.Close()
}

func usageError(ctx *cli.Context, err error) error {
	_ = cli.ShowAppHelp(ctx)
	return cli.Exit(err.Error(), 1)
}
