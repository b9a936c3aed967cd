// Command psearch runs relevance searches over project datasets from the
// shell and publishes merged datasets to a shared store.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/projectsearch/internal/db"
	dbRedis "github.com/kailas-cloud/projectsearch/internal/db/redis"
	"github.com/kailas-cloud/projectsearch/internal/domain/feature"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/field"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/projectsearch/internal/logger"
	"github.com/kailas-cloud/projectsearch/internal/repository/dataset"
	"github.com/kailas-cloud/projectsearch/internal/repository/geojson"
	searchuc "github.com/kailas-cloud/projectsearch/internal/usecase/search"
	"github.com/kailas-cloud/projectsearch/internal/version"
)

const defaultKey = "projectsearch:dataset"

// storeOpener connects to the key-value store used by publish.
type storeOpener func(cfg dbRedis.Config) (db.Store, error)

func openRedis(cfg dbRedis.Config) (db.Store, error) {
	return dbRedis.NewStore(cfg)
}

func main() {
	if err := newApp(os.Stdout, openRedis).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "psearch:", err)
		os.Exit(1)
	}
}

func fileFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Dataset file (.geojson, .json, .parquet); repeat to merge, order is kept",
		Required: true,
	}
}

func newApp(stdout io.Writer, open storeOpener) *cli.App {
	return &cli.App{
		Name:    "psearch",
		Usage:   "Search infrastructure project datasets",
		Version: version.Version,
		Writer:  stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Rank dataset features against a query",
				ArgsUsage: "<query>",
				Action:    queryCommand,
				Flags: []cli.Flag{
					fileFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print matching features as a GeoJSON FeatureCollection",
					},
				},
			},
			{
				Name:  "publish",
				Usage: "Merge dataset files and write them to Redis/Valkey",
				Action: func(c *cli.Context) error {
					return publishCommand(c, open)
				},
				Flags: []cli.Flag{
					fileFlag(),
					&cli.StringSliceFlag{
						Name:     "addr",
						Usage:    "Store address (host:port); repeat for a cluster",
						EnvVars:  []string{"PSEARCH_ADDR"},
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Usage:   "Store password",
						EnvVars: []string{"PSEARCH_PASSWORD"},
					},
					&cli.StringFlag{
						Name:  "key",
						Usage: "Key the dataset is stored under",
						Value: defaultKey,
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for the store to become ready",
						Value: 10 * time.Second,
					},
				},
			},
		},
	}
}

func commandLogger(c *cli.Context) (*zap.Logger, error) {
	logger, err := logpkg.NewCLILogger(c.String("log-level"))
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

func queryCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query is required")
	}

	logger, err := commandLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	col, err := dataset.ReadFiles(c.Context, c.StringSlice("file"))
	if err != nil {
		return err //nolint:wrapcheck // already names the file
	}
	logger.Debug("dataset loaded", zap.Int("features", col.Len()))

	matches := searchuc.Rank(query, col)

	if c.Bool("json") {
		return geojson.Encode(c.App.Writer, result.Features(matches)) //nolint:wrapcheck // stdout write
	}
	return printMatches(c.App.Writer, matches)
}

func printMatches(w io.Writer, matches []result.Match) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "no matches")
		return err //nolint:wrapcheck // stdout write
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tID\tNAME\tCITY")
	for i := range matches {
		f := matches[i].Feature()
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			matches[i].Score(),
			f.ID,
			field.Resolve(f.Properties, field.Aliases(field.ProjectName)),
			feature.FormatCityName(field.Resolve(f.Properties, field.Aliases(field.City))),
		)
	}
	return tw.Flush() //nolint:wrapcheck // stdout write
}

func publishCommand(c *cli.Context, open storeOpener) error {
	logger, err := commandLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	col, err := dataset.ReadFiles(c.Context, c.StringSlice("file"))
	if err != nil {
		return err //nolint:wrapcheck // already names the file
	}

	store, err := open(dbRedis.Config{
		Addrs:    c.StringSlice("addr"),
		Password: c.String("password"),
	})
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer store.Close()

	ctx := c.Context
	if err := store.WaitForReady(ctx, c.Duration("timeout")); err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}

	key := c.String("key")
	repo := dataset.New(dataset.Source{Kind: dataset.SourceStore, Key: key}, store, logger)
	if err := repo.Publish(ctx, key, col); err != nil {
		return err //nolint:wrapcheck // wrapped by Publish
	}

	logger.Info("dataset published", zap.String("key", key), zap.Int("features", col.Len()))
	fmt.Fprintf(c.App.Writer, "published %d features to %s\n", col.Len(), key)
	return nil
}
