package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/bunchhieng/linkvault/internal/app"
	"github.com/bunchhieng/linkvault/internal/cli"
	"github.com/bunchhieng/linkvault/internal/config"
	"github.com/bunchhieng/linkvault/internal/linkstore"
	"github.com/bunchhieng/linkvault/internal/logger"
	"github.com/bunchhieng/linkvault/internal/model"
	"github.com/bunchhieng/linkvault/internal/storage"
	"github.com/bunchhieng/linkvault/internal/tui"
	urfave "github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var version = "dev"

// session holds what a command needs. Storage is opened on first use so
// help and version never touch the database.
type session struct {
	cfg      *config.Config
	log      *zap.Logger
	kv       storage.KV
	store    *linkstore.Store
	commands *cli.Commands
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := &session{}
	if err := newApp(s).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(s *session) *urfave.App {
	return &urfave.App{
		Name:    "lv",
		Usage:   "save, tag and organise links",
		Version: version,
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:  "db-path",
				Usage: "path to database file (default: platform config directory)",
			},
			&urfave.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Before: s.setup,
		After:  s.teardown,
		Commands: []*urfave.Command{
			{
				Name:      "add",
				Usage:     "save a link",
				ArgsUsage: "<url>",
				Flags: []urfave.Flag{
					&urfave.StringFlag{Name: "title", Usage: "title for the link"},
					&urfave.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "description for the link"},
					&urfave.StringFlag{Name: "tags", Aliases: []string{"t"}, Usage: "comma-separated tags"},
				},
				Action: s.with(func(c *urfave.Context, cmds *cli.Commands) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: lv add <url> [--title \"...\"] [--description \"...\"] [--tags \"t1,t2\"]")
					}
					return cmds.Add(c.Context, c.Args().First(), c.String("title"), c.String("description"), c.String("tags"))
				}),
			},
			{
				Name:      "edit",
				Usage:     "change a saved link",
				ArgsUsage: "<id>",
				Flags: []urfave.Flag{
					&urfave.StringFlag{Name: "url", Usage: "new URL"},
					&urfave.StringFlag{Name: "title", Usage: "new title"},
					&urfave.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "new description"},
					&urfave.StringFlag{Name: "tags", Aliases: []string{"t"}, Usage: "comma-separated tags, replacing the current ones"},
				},
				Action: s.with(func(c *urfave.Context, cmds *cli.Commands) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: lv edit <id> [--url] [--title] [--description] [--tags]")
					}
					in := cli.EditInput{
						URL:         optional(c, "url"),
						Title:       optional(c, "title"),
						Description: optional(c, "description"),
						Tags:        optional(c, "tags"),
					}
					return cmds.Edit(c.Context, c.Args().First(), in)
				}),
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "list links",
				Flags: []urfave.Flag{
					&urfave.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "text to search for"},
					&urfave.StringSliceFlag{Name: "tag", Usage: "only links with this tag (repeatable)"},
					&urfave.StringFlag{Name: "sort", Usage: "date, title, url, favorites or custom"},
					&urfave.StringFlag{Name: "order", Usage: "asc or desc"},
					&urfave.BoolFlag{Name: "favorites", Aliases: []string{"f"}, Usage: "shorthand for --sort favorites"},
					&urfave.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "maximum number of links"},
				},
				Action: s.with(func(c *urfave.Context, cmds *cli.Commands) error {
					sortBy, err := model.ParseSortBy(c.String("sort"))
					if err != nil {
						return err
					}
					if c.Bool("favorites") {
						sortBy = model.SortByFavorites
					}
					order, err := model.ParseSortOrder(c.String("order"))
					if err != nil {
						return err
					}
					return cmds.List(c.Context, cli.ListOptions{
						Query:     c.String("query"),
						Tags:      c.StringSlice("tag"),
						SortBy:    sortBy,
						SortOrder: order,
						Limit:     c.Int("limit"),
					})
				}),
			},
			{
				Name:      "rm",
				Usage:     "delete links",
				ArgsUsage: "<id>...",
				Action: s.with(func(c *urfave.Context, cmds *cli.Commands) error {
					return cmds.Remove(c.Context, c.Args().Slice()...)
				}),
			},
			{
				Name:      "fav",
				Usage:     "toggle a link's favorite flag",
				ArgsUsage: "<id>",
				Action: s.with(func(c *urfave.Context, cmds *cli.Commands) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: lv fav <id>")
					}
					return cmds.Favorite(c.Context, c.Args().First())
				}),
			},
			{
				Name:      "move",
				Usage:     "place a link immediately before another",
				ArgsUsage: "<id> <before-id>",
				Action: s.with(func(c *urfave.Context, cmds *cli.Commands) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: lv move <id> <before-id>")
					}
					return cmds.Move(c.Context, c.Args().Get(0), c.Args().Get(1))
				}),
			},
			{
				Name:  "tags",
				Usage: "list tags with link counts",
				Action: s.with(func(c *urfave.Context, cmds *cli.Commands) error {
					return cmds.Tags(c.Context)
				}),
			},
			{
				Name:      "rmtag",
				Usage:     "delete a tag and remove it from every link",
				ArgsUsage: "<name-or-id>",
				Action: s.with(func(c *urfave.Context, cmds *cli.Commands) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: lv rmtag <name-or-id>")
					}
					return cmds.RemoveTag(c.Context, c.Args().First())
				}),
			},
			{
				Name:      "open",
				Usage:     "open a link in the browser",
				ArgsUsage: "<id>",
				Action: s.with(func(c *urfave.Context, cmds *cli.Commands) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: lv open <id>")
					}
					return cmds.Open(c.Context, c.Args().First())
				}),
			},
			{
				Name:      "export",
				Usage:     "write all links and tags as JSON",
				ArgsUsage: "[file]",
				Action: s.with(func(c *urfave.Context, cmds *cli.Commands) error {
					if c.NArg() == 0 {
						return cmds.Export(os.Stdout)
					}
					return cmds.ExportFile(c.Args().First())
				}),
			},
			{
				Name:      "import",
				Usage:     "replace all links and tags from a JSON export",
				ArgsUsage: "<file>",
				Action: s.with(func(c *urfave.Context, cmds *cli.Commands) error {
					if c.NArg() != 1 {
						return fmt.Errorf("usage: lv import <file>")
					}
					return cmds.Import(c.Context, c.Args().First())
				}),
			},
			{
				Name:  "reset",
				Usage: "delete every link and tag",
				Flags: []urfave.Flag{
					&urfave.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "confirm deletion"},
				},
				Action: s.with(func(c *urfave.Context, cmds *cli.Commands) error {
					return cmds.Reset(c.Context, c.Bool("yes"))
				}),
			},
			{
				Name:  "ui",
				Usage: "browse links interactively",
				Action: func(c *urfave.Context) error {
					if err := s.open(c.Context); err != nil {
						return err
					}
					return tui.Run(c.Context, s.store, cli.OpenBrowser)
				},
			},
		},
	}
}

// setup loads configuration, applies flag overrides and builds the logger.
func (s *session) setup(c *urfave.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.IsSet("db-path") {
		cfg.DBPath = c.String("db-path")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	s.cfg = cfg
	s.log = log
	return nil
}

func (s *session) teardown(*urfave.Context) error {
	if s.kv != nil {
		if err := s.kv.Close(); err != nil {
			s.log.Warn("close storage", zap.Error(err))
		}
	}
	if s.log != nil {
		logger.Sync(s.log)
	}
	return nil
}

func (s *session) open(ctx context.Context) error {
	if s.kv != nil {
		return nil
	}
	kv, err := app.NewStorage(s.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	s.kv = kv
	s.log.Debug("storage opened", zap.String("path", s.cfg.DBPath))
	s.store = app.OpenStore(ctx, kv, s.log)
	s.commands = cli.NewCommands(s.store, os.Stdout)
	return nil
}

// with opens storage before running fn.
func (s *session) with(fn func(*urfave.Context, *cli.Commands) error) urfave.ActionFunc {
	return func(c *urfave.Context) error {
		if err := s.open(c.Context); err != nil {
			return err
		}
		return fn(c, s.commands)
	}
}

func optional(c *urfave.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}
