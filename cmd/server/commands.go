package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"holocron/internal/api"
	"holocron/internal/catalog"
	"holocron/internal/config"
	"holocron/internal/logging"
	"holocron/internal/pg"
	"holocron/internal/reference"
	"holocron/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	dbURL      string
	logLevel   string

	// serve flags
	port        string
	autoMigrate bool
	seedFile    string
)

var rootCmd = &cobra.Command{
	Use:   "holocron",
	Short: "Holocron - REST catalog of characters, planets, colors and genders",
	Long: `Holocron serves a small catalog over HTTP/JSON: colors, genders, planets,
people (characters), users, the entity registry and favorites.

Storage is PostgreSQL when a DB URL is set, otherwise an in-memory store.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed [file-or-dir]",
	Short: "Load the YAML seed catalog into the store",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSeed,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json", "Path to config JSON")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Postgres URL (empty = in-memory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error")

	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVar(&port, "port", "", "HTTP port")
		c.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Create missing tables on start")
		c.Flags().StringVar(&seedFile, "seed-file", "", "YAML seed file or directory applied on start")
	}
	seedCmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Create missing tables before seeding")

	rootCmd.AddCommand(serveCmd, seedCmd)
}

// loadConfig: config.Load, затем флаги, явно заданные в командной строке.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBURL = config.NormalizeDBURL(dbURL)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port = port
	}
	if flags.Lookup("auto-migrate") != nil && flags.Changed("auto-migrate") {
		cfg.AutoMigrate = autoMigrate
	}
	if flags.Lookup("seed-file") != nil && flags.Changed("seed-file") {
		cfg.SeedFile = seedFile
	}
	return cfg, nil
}

// openStore: Postgres при заданном DBURL, иначе память.
func openStore(ctx context.Context, cfg config.Config, log logging.Logger) (store.Store, error) {
	if cfg.DBURL == "" {
		log.Warn(ctx, "no database configured, using in-memory store")
		return store.NewMemory(), nil
	}
	db, err := pg.Open(ctx, cfg.DBURL)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := pg.ApplyDDL(ctx, db, log, pg.CatalogDDL); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	log.Info(ctx, "connected to postgres")
	return pg.NewStore(db), nil
}

func applySeed(ctx context.Context, s store.Store, path string, log logging.Logger) error {
	seed, err := reference.Load(path)
	if err != nil {
		return err
	}
	_, err = reference.Apply(ctx, s, seed, log)
	return err
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "open store", "error", err)
		return err
	}
	defer st.Close()

	if cfg.SeedFile != "" {
		if err := applySeed(ctx, st, cfg.SeedFile, log); err != nil {
			log.Error(ctx, "seed", "file", cfg.SeedFile, "error", err)
			return err
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(catalog.NewService(st), log)
	return api.RunServer(ctx, cfg.Addr(), router, log)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.SeedFile = args[0]
	}
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if cfg.SeedFile == "" {
		log.Error(cmd.Context(), "seed: no file given (argument or HOLOCRON_SEED_FILE)")
		return errNoSeedFile
	}

	ctx := cmd.Context()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()
	if cfg.DBURL == "" {
		log.Warn(ctx, "seeding the in-memory store has no lasting effect")
	}
	return applySeed(ctx, st, cfg.SeedFile, log)
}

var errNoSeedFile = errors.New("no seed file")
