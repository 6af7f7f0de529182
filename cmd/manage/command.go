package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"yatube/internal/db"
	"yatube/internal/models"
	"yatube/internal/pagecache"
	"yatube/internal/services"
	"yatube/pkg/config"
	"yatube/pkg/logging"
)

// newApp creates the management app with sane defaults
func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "manage"
	app.Usage = "Yatube management commands"
	app.Action = cli.ShowAppHelp
	app.Commands = []*cli.Command{
		{
			Action:      migrate,
			Name:        "migrate",
			Usage:       "Create or update the database schema",
			Category:    "Database",
			Description: `Runs the schema migration of every model.`,
		},
		{
			Action:   seed,
			Name:     "seed",
			Usage:    "Create the default groups on an empty database",
			Category: "Database",
		},
		{
			Action:   createSuperuser,
			Name:     "createsuperuser",
			Usage:    "Create a staff user for the admin panel",
			Category: "Users",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "username", Required: true},
				&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"YATUBE_SUPERUSER_PASSWORD"}},
			},
		},
		{
			Action:   createGroup,
			Name:     "creategroup",
			Usage:    "Create a group",
			Category: "Content",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "title", Required: true},
				&cli.StringFlag{Name: "slug", Usage: "derived from the title when empty"},
				&cli.StringFlag{Name: "description"},
			},
		},
		{
			Action:   clearCache,
			Name:     "clearcache",
			Usage:    "Drop every cached page",
			Category: "Cache",
		},
	}
	return app
}

// setup loads the configuration and logger shared by every command
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(&cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func openDB() (*gorm.DB, *zap.Logger, error) {
	cfg, logger, err := setup()
	if err != nil {
		return nil, nil, err
	}
	conn, err := db.Open(&cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(conn); err != nil {
		return nil, nil, err
	}
	return conn, logger, nil
}

func migrate(cctx *cli.Context) error {
	_, logger, err := openDB()
	if err != nil {
		return err
	}
	logger.Info("Database migrated")
	return nil
}

func seed(cctx *cli.Context) error {
	conn, logger, err := openDB()
	if err != nil {
		return err
	}
	created, err := db.SeedGroups(conn, db.DefaultGroups)
	if err != nil {
		return err
	}
	logger.Info("Groups seeded", zap.Int("created", created))
	return nil
}

func createSuperuser(cctx *cli.Context) error {
	conn, logger, err := openDB()
	if err != nil {
		return err
	}

	user, err := services.NewUserService(conn).Register(cctx.String("username"), cctx.String("password"), models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("create superuser: %w", err)
	}
	logger.Info("Superuser created", zap.String("username", user.Username), zap.Uint("id", user.ID))
	return nil
}

func createGroup(cctx *cli.Context) error {
	conn, logger, err := openDB()
	if err != nil {
		return err
	}

	group := &models.Group{
		Title:       cctx.String("title"),
		Slug:        cctx.String("slug"),
		Description: cctx.String("description"),
	}
	if err := services.NewGroupService(conn).Create(group); err != nil {
		return err
	}
	logger.Info("Group created", zap.String("slug", group.Slug), zap.Uint("id", group.ID))
	return nil
}

// clearCache only matters for the shared Redis store; the in-memory one
// lives inside the server process.
func clearCache(cctx *cli.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if cfg.Cache.RedisURL == "" {
		logger.Info("In-memory page cache is cleared by restarting the server")
		return nil
	}

	store, err := pagecache.NewRedisStore(cfg.Cache.RedisURL, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(context.Background()); err != nil {
		return err
	}
	logger.Info("Page cache cleared")
	return nil
}
