// Package cli provides the replybot command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/replybot/internal/adapters/driven/config/file"
	"github.com/custodia-labs/replybot/internal/adapters/driven/corpus/csvfile"
	"github.com/custodia-labs/replybot/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driven"
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
	"github.com/custodia-labs/replybot/internal/core/services"
	"github.com/custodia-labs/replybot/internal/logger"
	"github.com/custodia-labs/replybot/internal/normalisers/text"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	configDir  string
	corpusPath string
	verbose    bool
)

// settingsService is built before any command runs. Tests assign it
// directly. corpusStore is opened on first use and closed when the command
// finishes, whether or not it succeeded.
var (
	settingsService driving.SettingsService
	corpusStore     *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "replybot",
	Short: "Canned-response chatbot",
	Long: `replybot answers free-text queries with the canned response whose
training examples they most resemble.

It trains a TF-IDF and Naive Bayes pipeline from a query,response corpus
at startup and serves it over HTTP, MCP, an interactive chat or one-shot
commands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initSettings()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.replybot)")
	rootCmd.PersistentFlags().StringVar(&corpusPath, "corpus", "", "CSV corpus path; overrides the configured source")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx and releases the corpus
// store afterwards. Cobra skips post-run hooks when a command fails, so the
// store is closed here instead.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := closeStore(); closeErr != nil && err == nil {
		err = fmt.Errorf("closing corpus store: %w", closeErr)
	}
	return err
}

// resolvedConfigDir returns --config-dir or ~/.replybot.
func resolvedConfigDir() (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".replybot"), nil
}

func initSettings() error {
	if settingsService != nil {
		return nil
	}
	dir, err := resolvedConfigDir()
	if err != nil {
		return err
	}
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	settingsService = services.NewSettingsService(store)
	return nil
}

// currentSettings returns settings with the --corpus override applied.
func currentSettings() (*domain.AppSettings, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	if corpusPath != "" {
		settings.Corpus.Source = domain.CorpusSourceCSV
		settings.Corpus.Path = corpusPath
	}
	return settings, nil
}

// openStore opens the SQLite corpus store under the config dir.
func openStore() (*sqlite.Store, error) {
	if corpusStore != nil {
		return corpusStore, nil
	}
	dir, err := resolvedConfigDir()
	if err != nil {
		return nil, err
	}
	store, err := sqlite.NewStore(filepath.Join(dir, "data"))
	if err != nil {
		return nil, fmt.Errorf("opening corpus store: %w", err)
	}
	corpusStore = store
	return store, nil
}

func closeStore() error {
	if corpusStore == nil {
		return nil
	}
	err := corpusStore.Close()
	corpusStore = nil
	return err
}

// corpusSource builds the configured corpus source.
func corpusSource(settings *domain.AppSettings) (driven.CorpusSource, error) {
	switch settings.Corpus.Source {
	case domain.CorpusSourceSQLite:
		store, err := openStore()
		if err != nil {
			return nil, err
		}
		return store.CorpusStore(), nil
	case domain.CorpusSourceCSV:
		return csvfile.New(settings.Corpus.Path), nil
	default:
		return nil, fmt.Errorf("%w: corpus source %q", domain.ErrUnsupportedType, settings.Corpus.Source)
	}
}

// newCorpusService builds a corpus service over the configured source.
func newCorpusService() (driving.CorpusService, error) {
	settings, err := currentSettings()
	if err != nil {
		return nil, err
	}
	source, err := corpusSource(settings)
	if err != nil {
		return nil, err
	}
	return services.NewCorpusService(source, nil), nil
}

// trainChat trains a pipeline from the configured corpus and returns a chat
// service over it. Commands pass the result to their transport; training
// failures are returned before any transport starts.
func trainChat(ctx context.Context) (driving.ChatService, error) {
	settings, err := currentSettings()
	if err != nil {
		return nil, err
	}

	normaliser, err := text.New(settings.Analysis.Language,
		text.WithMinTermLength(settings.Analysis.MinTermLength))
	if err != nil {
		return nil, err
	}
	source, err := corpusSource(settings)
	if err != nil {
		return nil, err
	}

	pipeline, err := services.TrainFromSource(ctx, source, normaliser,
		services.TrainOptions{Norm: settings.Vectoriser.Norm})
	if err != nil {
		return nil, fmt.Errorf("training: %w", err)
	}
	return services.NewChatService(pipeline), nil
}
