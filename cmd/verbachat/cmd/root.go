package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/entrepeneur4lyf/verbachat/internal/client"
	"github.com/entrepeneur4lyf/verbachat/internal/config"
	"github.com/entrepeneur4lyf/verbachat/internal/tui"
	"github.com/entrepeneur4lyf/verbachat/internal/widget"
)

var (
	debug      bool
	workingDir string
	configFile string
	endpoint   string
	mode       string
	theme      string
	cookies    []string
)

var (
	cfg     *config.Config
	logFile *os.File // For cleanup
)

// setupLogging sends log output to a file so it does not draw over the TUI
func setupLogging(workingDir string, debug bool) error {
	if debug {
		// In debug mode, keep logging to stderr
		log.SetLevel(log.DebugLevel)
		return nil
	}

	logDir := filepath.Join(workingDir, config.DataDirName())
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "verbachat.log")
	var err error
	logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	log.SetOutput(logFile)
	return nil
}

// cleanupLogging closes the log file if it was opened
func cleanupLogging() {
	if logFile != nil {
		log.SetOutput(os.Stderr)
		logFile.Close()
		logFile = nil
	}
}

// loadConfig applies flags that were set on the command line over the
// file and environment configuration
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		overrides["endpoint"] = endpoint
	}
	if flags.Changed("mode") {
		overrides["mode"] = mode
	}
	if flags.Changed("theme") {
		overrides["tui.theme"] = theme
	}

	loaded, err := config.Load(config.Options{
		ConfigFile: configFile,
		Debug:      debug,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, err
	}

	// cookie names are case sensitive, so they bypass viper's key folding
	extra, err := config.ParseCookieFlags(cookies)
	if err != nil {
		return nil, err
	}
	if len(extra) > 0 {
		if loaded.Cookies == nil {
			loaded.Cookies = make(map[string]string, len(extra))
		}
		for name, value := range extra {
			loaded.Cookies[name] = value
		}
	}

	if level, err := log.ParseLevel(loaded.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown log level, keeping default", "level", loaded.LogLevel)
	}
	return loaded, nil
}

// newController wires the HTTP client into a chat controller
func newController(ctx context.Context, cfg *config.Config, view widget.View) (*widget.Controller, error) {
	c, err := client.New(cfg.ClientOptions())
	if err != nil {
		return nil, err
	}

	if cfg.HTTP.Prime {
		if err := c.Prime(ctx); err != nil {
			// the first POST may still succeed without a token
			log.Warn("Could not prime endpoint", "endpoint", c.Endpoint(), "err", err)
		}
	}

	log.Info("Chat session ready", "endpoint", c.Endpoint(), "mode", c.Mode())
	return widget.New(widget.Options{
		Submitter:          c,
		View:               view,
		AttachmentsEnabled: c.Mode().SupportsFiles(),
		KeepAttachment:     cfg.Attachments.KeepAfterSend,
	}), nil
}

var rootCmd = &cobra.Command{
	Use:   "verbachat",
	Short: "Terminal chat client for a web chat endpoint",
	Long: `verbachat talks to a chat backend that accepts form posts with a
message and an optional file, and shows the conversation in the terminal.

Usage:
  verbachat                          # Start interactive chat
  verbachat send "hello"             # Send one message and print the reply
  verbachat send --file report.pdf   # Send a file`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	SilenceErrors:     true,
	Args:              cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// debug from the flag, config file or VERBACHAT_DEBUG keeps logs on stderr
		if err := setupLogging(workingDir, debug || cfg.Debug); err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ctrl, err := newController(ctx, cfg, nil)
		if err != nil {
			return err
		}

		return tui.Run(ctx, tui.Options{
			Controller: ctrl,
			Theme:      cfg.TUI.Theme,
			Version:    Version,
			Endpoint:   cfg.Endpoint,
			Mode:       string(cfg.SubmitMode()),
			StatePath:  config.GetStatePath(),
		})
	},
}

func init() {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "Enable debug mode")
	flags.StringVar(&workingDir, "wd", wd, "Working directory for logs")
	flags.StringVarP(&configFile, "config", "c", "", "Config file (default $HOME/.verbachat.yaml)")
	flags.StringVarP(&endpoint, "endpoint", "e", "", "Chat endpoint URL")
	flags.StringVarP(&mode, "mode", "m", "", "Submission mode (multipart, json)")
	flags.StringVar(&theme, "theme", "", "Color theme")
	flags.StringArrayVar(&cookies, "cookie", nil, "Cookie to send, as name=value (repeatable)")
}

func Execute() {
	defer cleanupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cleanupLogging()
		stop()
		os.Exit(1)
	}
}
