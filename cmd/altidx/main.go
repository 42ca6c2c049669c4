package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/altidx/altidx/internal/config"
	"github.com/altidx/altidx/internal/index"
	"github.com/altidx/altidx/internal/parser"
)

// loadConfig reads the config file named by --config, choosing the TOML
// loader for a ".toml" extension and the KDL loader otherwise.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")

	var cfg *config.Config
	var err error
	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		cfg, err = config.LoadTOML(configPath)
	} else {
		cfg, err = config.Load(configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	if rootFlag := c.String("root"); rootFlag != "" {
		absRoot, err := filepath.Abs(rootFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path %q: %w", rootFlag, err)
		}
		cfg.Project.Root = absRoot
	}
	return cfg, nil
}

func openIndex(c *cli.Context) (*index.Index, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	idx, err := index.Init(cfg, parser.NewTreeSitterParser())
	if err != nil {
		return nil, nil, err
	}
	return idx, cfg, nil
}

// queryContext bounds ctx to cfg.Query.BusyTimeoutMs, the latency budget
// every public operation's mutex acquisition is held to.
func queryContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(cfg.Query.BusyTimeoutMs)*time.Millisecond)
}

func docAddCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("usage: altidx add <path>", 1)
	}
	idx, cfg, err := openIndex(c)
	if err != nil {
		return err
	}
	defer idx.Close()

	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	ctx, cancel := queryContext(cfg)
	defer cancel()
	return idx.DocAdd(ctx, path, string(text))
}

func docRemoveCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("usage: altidx remove <path>", 1)
	}
	idx, cfg, err := openIndex(c)
	if err != nil {
		return err
	}
	defer idx.Close()

	ctx, cancel := queryContext(cfg)
	defer cancel()
	return idx.DocRemove(ctx, path)
}

func docSymbolsCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("usage: altidx symbols <path>", 1)
	}
	idx, cfg, err := openIndex(c)
	if err != nil {
		return err
	}
	defer idx.Close()

	ctx, cancel := queryContext(cfg)
	defer cancel()
	defs, err := idx.DocSymbols(ctx, path)
	if err != nil {
		return err
	}
	for _, d := range defs {
		fmt.Println(d.Debug())
	}
	return nil
}

func definitionsCommand(c *cli.Context) error {
	q := c.Args().First()
	if q == "" {
		return cli.Exit("usage: altidx definitions <short-path>", 1)
	}
	idx, cfg, err := openIndex(c)
	if err != nil {
		return err
	}
	defer idx.Close()

	ctx, cancel := queryContext(cfg)
	defer cancel()
	defs, err := idx.Definitions(ctx, q)
	if err != nil {
		return err
	}
	for _, d := range defs {
		fmt.Println(d.Debug())
	}
	return nil
}

func usagesCommand(c *cli.Context) error {
	q := c.Args().First()
	if q == "" {
		return cli.Exit("usage: altidx usages <short-path>", 1)
	}
	idx, cfg, err := openIndex(c)
	if err != nil {
		return err
	}
	defer idx.Close()

	ctx, cancel := queryContext(cfg)
	defer cancel()
	defs, err := idx.Usages(ctx, q)
	if err != nil {
		return err
	}
	for _, d := range defs {
		fmt.Println(d.Debug())
	}
	return nil
}

func dumpCommand(c *cli.Context) error {
	idx, cfg, err := openIndex(c)
	if err != nil {
		return err
	}
	defer idx.Close()

	ctx, cancel := queryContext(cfg)
	defer cancel()
	out, err := idx.DumpDatabase(ctx)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// indexCommand walks cfg.Project.Root, running every regular file that
// survives idx.MatchesGlob through DocAdd. Each file gets its own
// bounded context, so one slow or wedged batch cannot stall the walk
// past its own busy-timeout budget.
func indexCommand(c *cli.Context) error {
	idx, cfg, err := openIndex(c)
	if err != nil {
		return err
	}
	defer idx.Close()

	return filepath.Walk(cfg.Project.Root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(cfg.Project.Root, path)
		if err != nil {
			return err
		}
		if !idx.MatchesGlob(relPath) {
			return nil
		}
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		ctx, cancel := queryContext(cfg)
		err = idx.DocAdd(ctx, relPath, string(text))
		cancel()
		return err
	})
}

func main() {
	app := &cli.App{
		Name:                   "altidx",
		Usage:                  "cross-file code symbol index",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (.kdl or .toml)",
				Value:   ".altidx.kdl",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory (overrides config)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Parse a file and add its definitions to the index",
				ArgsUsage: "<path>",
				Action:    docAddCommand,
			},
			{
				Name:      "remove",
				Usage:     "Remove a file's definitions from the index",
				ArgsUsage: "<path>",
				Action:    docRemoveCommand,
			},
			{
				Name:      "symbols",
				Usage:     "List definitions whose path was derived from a file",
				ArgsUsage: "<path>",
				Action:    docSymbolsCommand,
			},
			{
				Name:      "definitions",
				Usage:     "Resolve a suffix path to its shallowest matching definitions",
				ArgsUsage: "<short-path>",
				Action:    definitionsCommand,
			},
			{
				Name:      "usages",
				Usage:     "Resolve a suffix path to definitions that read or call it",
				ArgsUsage: "<short-path>",
				Action:    usagesCommand,
			},
			{
				Name:   "dump",
				Usage:  "Render the entire store for debugging",
				Action: dumpCommand,
			},
			{
				Name:   "index",
				Usage:  "Walk the project root and add every file matching the configured globs",
				Action: indexCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
