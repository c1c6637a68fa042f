package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/dfloer/OpenCity2k"
	"github.com/dfloer/OpenCity2k/snapshot"
	"github.com/dfloer/OpenCity2k/tileset"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// setup merges the configuration file with any flags and builds the logger.
func setup(c *cli.Context) (Config, *logrus.Logger, error) {
	cfg, err := Load(c.String("config"))
	if err != nil {
		return cfg, nil, err
	}
	if c.IsSet("db") {
		cfg.DB = c.String("db")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}

	logger := logrus.New()
	logger.SetLevel(cfg.Level())
	logger.SetOutput(io.Discard)
	switch {
	case cfg.LogFile != "":
		logger.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogSizeMB,
			MaxBackups: cfg.LogBackups,
		})
		logger.SetFormatter(&logrus.JSONFormatter{})
	case c.Bool("verbose"):
		logger.SetOutput(os.Stderr)
	}
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}

	return cfg, logger, nil
}

func decode(path string, logger logrus.FieldLogger) (*opencity2k.City, error) {
	return opencity2k.DecodeFile(path, opencity2k.DecodeOptions{
		Logger: logger.WithField("file", path),
	})
}

func printSummary(w io.Writer, s opencity2k.Summary) {
	fmt.Fprintf(w, "Name:        %s\n", s.Name)
	fmt.Fprintf(w, "Founded:     %d\n", s.StartYear)
	fmt.Fprintf(w, "Date:        %s\n", s.Date)
	fmt.Fprintf(w, "Weather:     %s\n", s.Weather)
	fmt.Fprintf(w, "Population:  %d (%d in arcologies)\n", s.Population, s.ArcologyPopulation)
	fmt.Fprintf(w, "Funds:       $%d\n", s.Funds)
	fmt.Fprintf(w, "Bonds:       %d\n", s.Bonds)
	fmt.Fprintf(w, "Value:       $%d\n", s.CityValue)
	fmt.Fprintf(w, "Buildings:   %d\n", s.Buildings)
	fmt.Fprintf(w, "Scenario:    %t\n", s.Scenario)
}

func main() {
	_ = godotenv.Load(".env")

	app := cli.NewApp()

	app.Name = "sc2k"
	app.Usage = "SimCity 2000 city file utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"SC2K_DB"},
			Value:   defaultDB,
			Usage:   "path to city index database",
		},
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"SC2K_CONFIG"},
			Usage:   "path to YAML configuration",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "write logs to a rotated file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Summarise city files",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "json",
					Usage: "print JSON",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				_, logger, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				for i, path := range c.Args().Slice() {
					city, err := decode(path, logger)
					if err != nil {
						return cli.Exit(err, 1)
					}
					s := opencity2k.Summarize(city)

					if c.Bool("json") {
						b, err := json.MarshalIndent(s, "", "  ")
						if err != nil {
							return cli.Exit(err, 1)
						}
						fmt.Fprintln(c.App.Writer, string(b))
						continue
					}

					if i > 0 {
						fmt.Fprintln(c.App.Writer)
					}
					printSummary(c.App.Writer, s)
				}

				return nil
			},
		},
		{
			Name:      "roundtrip",
			Usage:     "Decode and re-encode a city file",
			ArgsUsage: "FILE OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, logger, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				in, err := os.ReadFile(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}
				city, err := opencity2k.Decode(in, opencity2k.DecodeOptions{Logger: logger})
				if err != nil {
					return cli.Exit(err, 1)
				}
				out, err := opencity2k.Encode(city, opencity2k.EncodeOptions{
					LegacyThumbnailBorder: cfg.LegacyThumbnailBorder,
				})
				if err != nil {
					return cli.Exit(err, 1)
				}
				if err := os.WriteFile(c.Args().Get(1), out, 0o644); err != nil {
					return cli.Exit(err, 1)
				}

				if bytes.Equal(in, out) {
					fmt.Fprintln(c.App.Writer, "identical")
				} else {
					fmt.Fprintf(c.App.Writer, "differs: %d bytes in, %d bytes out\n", len(in), len(out))
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Index every city below a directory",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cfg, logger, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				o, err := opencity2k.New(cfg.DB, logger, opencity2k.Options{
					Workers:   cfg.Workers,
					CacheSize: cfg.CacheSize,
				})
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer o.Close()

				if err := o.Scan(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				records, err := o.DB().Cities()
				if err != nil {
					return cli.Exit(err, 1)
				}
				for _, r := range records {
					fmt.Fprintf(c.App.Writer, "%s %-31s %6d %10d %s\n", r.CRC, r.Name, r.Year, r.Population, r.Path)
				}

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Write a snapshot of a city",
			ArgsUsage: "FILE SNAPSHOT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				_, logger, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				city, err := decode(c.Args().Get(0), logger)
				if err != nil {
					return cli.Exit(err, 1)
				}
				if err := snapshot.Write(c.Args().Get(1), city); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "dump",
			Usage:     "Print everything known about one tile",
			ArgsUsage: "FILE ROW COL",
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				_, logger, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				row, err := strconv.Atoi(c.Args().Get(1))
				if err != nil {
					return cli.Exit(err, 1)
				}
				col, err := strconv.Atoi(c.Args().Get(2))
				if err != nil {
					return cli.Exit(err, 1)
				}

				city, err := decode(c.Args().Get(0), logger)
				if err != nil {
					return cli.Exit(err, 1)
				}

				at := opencity2k.Coord{Row: row, Col: col}
				tile := city.Tile(at)
				if tile == nil {
					return cli.Exit(fmt.Sprintf("%v is off the map", at), 1)
				}

				spew.Fdump(c.App.Writer, tile)
				if b, ok := city.BuildingAt(at); ok {
					spew.Fdump(c.App.Writer, b)
				}
				if label, ok := city.Label(at); ok {
					fmt.Fprintf(c.App.Writer, "label: %q\n", label)
				}
				for m := 0; m < opencity2k.NumMetrics; m++ {
					metric := opencity2k.Metric(m)
					fmt.Fprintf(c.App.Writer, "%s: %d\n", metric, opencity2k.ReadMetric(city, at, metric))
				}

				return nil
			},
		},
		{
			Name:      "tileset",
			Usage:     "List the shapes in a tileset",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				b, err := os.ReadFile(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}
				ts, err := tileset.Decode(b)
				if err != nil {
					return cli.Exit(err, 1)
				}

				for i := range ts.Shapes {
					fmt.Fprintln(c.App.Writer, ts.Shapes[i].String())
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
