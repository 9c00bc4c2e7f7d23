package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jobmatcher/matchctl/internal/jobmatcher"
	"github.com/jobmatcher/matchctl/internal/logger"
	"github.com/jobmatcher/matchctl/internal/session"
)

const (
	app = "matchctl"
)

type Config struct {
	BaseURL     string       `mapstructure:"base-url"`
	SessionFile string       `mapstructure:"session-file"`
	UserAgent   string       `mapstructure:"user-agent"`
	Match       *MatchConfig `mapstructure:"match"`
}

// MatchConfig carries the default matching parameters. MinSimilarity is a
// 0-100 percentage, the unit the flags and prompts use.
type MatchConfig struct {
	TopK          int `mapstructure:"top-k"`
	MinSimilarity int `mapstructure:"min-similarity"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "matchctl is a recruiter cli for the AI Job Matcher platform: upload records, search them and run similarity matching",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A local .env can carry MATCHCTL_* variables during development.
	_ = godotenv.Load()

	if err := viper.BindEnv("base-url", "MATCHCTL_BASE_URL"); err != nil {
		log.Fatalf("binding MATCHCTL_BASE_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("session-file", "MATCHCTL_SESSION_FILE"); err != nil {
		log.Fatalf("binding MATCHCTL_SESSION_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is matchctl.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("base-url", "", "backend api base url")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("base-url", rootCmd.PersistentFlags().Lookup("base-url"))

	viper.SetDefault("session-file", defaultSessionFile())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional; everything has a flag or env fallback.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".matchctl-token"
	}

	return filepath.Join(home, "."+app, "token")
}

// appContext wires the pieces every command needs: config, logger, session
// store and the backend client reading its credential from that store.
type appContext struct {
	cfg    *Config
	logger *zap.Logger
	store  *session.Store
	client *jobmatcher.Client
}

func newApp() *appContext {
	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cfg, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	store := session.NewStore()
	client := jobmatcher.New(context.Background(), zl, store)

	if cfg.BaseURL != "" {
		client.APIURL = cfg.BaseURL
	}
	if cfg.UserAgent != "" {
		client.UserAgent = cfg.UserAgent
	}

	return &appContext{
		cfg:    cfg,
		logger: zl,
		store:  store,
		client: client,
	}
}

func (a *appContext) sessionFile() string {
	if a.cfg.SessionFile != "" {
		return a.cfg.SessionFile
	}

	return viper.GetString("session-file")
}

// restoreSession rebuilds the in-memory session from the persisted token.
// The token is validated against the backend before it is committed, so the
// store never holds a token without its matching profile.
func (a *appContext) restoreSession() error {
	token, err := session.LoadToken(a.sessionFile())
	if err != nil {
		a.logger.Debug("no persisted session", zap.Error(err))
		return session.ErrNotAuthenticated
	}

	user, err := a.client.CurrentUser(token)
	if err != nil {
		a.logger.Debug("persisted token rejected by backend", zap.Error(err))
		return session.ErrNotAuthenticated
	}

	if err := a.store.SetAuth(token, user); err != nil {
		return err
	}

	return nil
}

// requireSession is the route guard for protected commands: restore, then a
// fresh check of the store. Evaluated on every run, never cached.
func (a *appContext) requireSession() {
	if err := a.restoreSession(); err != nil {
		a.logger.Fatal("authentication required",
			zap.Error(err),
			zap.String("hint", "run 'matchctl login' to establish a session"),
		)
	}

	if err := session.Require(a.store); err != nil {
		a.logger.Fatal("authentication required", zap.Error(err))
	}
}
