package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iksnae/asc/internal"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// configOptional marks commands that keep working when the config file is broken
const configOptional = "optional"

// app holds state shared by the commands of one root command
type app struct {
	verbose    bool
	configPath string
	v          *viper.Viper
	cfg        *internal.Config
}

// NewRootCmd builds the asc command tree
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	internal.SetDefaults(a.v)

	rootCmd := &cobra.Command{
		Use:   "asc",
		Short: "Summarize OpenDev IRC channel logs",
		Long: `asc fetches recent messages of an OpenDev IRC channel from the public log
archive and turns them into a readable chat, a text summary or a spoken summary.

Summaries are produced by an OpenAI-compatible chat endpoint (a local Ollama
server by default) and speech by piper or the OpenAI speech API.

Quick Start:
  asc fetch                                        # last 14 hours of #openstack-ironic
  asc fetch --output-type TEXT_SUMMARY "#openstack-nova"
  asc fetch --output-type SPEECH_SUMMARY --open-browser`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Annotations:       map[string]string{"config": configOptional},
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New("no command given")
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default is ./.asc.yaml or ~/.asc.yaml)")

	rootCmd.SetVersionTemplate(`{{printf "asc %s\n" .Version}}`)

	rootCmd.AddCommand(newHelloCmd())
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newFetchCmd(a))
	rootCmd.AddCommand(newCacheCmd(a))

	return rootCmd
}

// setup configures logging and loads the configuration before any command runs
func (a *app) setup(cmd *cobra.Command, args []string) error {
	internal.SetVerbose(a.verbose)

	cfg, err := internal.LoadConfig(a.v, a.configPath)
	if err != nil {
		if cmd.Annotations["config"] != configOptional {
			return err
		}
		internal.LogWarn("Ignoring configuration: %v", err)
		cfg = internal.DefaultConfig()
	}
	if err := internal.SetLogFormat(cfg.Log.Format); err != nil {
		internal.LogWarn("%v", err)
	}
	a.cfg = cfg
	internal.LogDebug("asc %s (commit: %s, built: %s)", version, commit, date)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		internal.PrintError(os.Stderr, fmt.Sprintf("Error: %v", err))
		stop()
		os.Exit(1)
	}
}
