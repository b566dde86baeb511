// Package cli wires configuration, logging and the TUI behind the guidedit
// command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"guidedit/internal/auth"
	"guidedit/internal/config"
	"guidedit/internal/git"
	"guidedit/internal/logger"
	"guidedit/internal/state"
	"guidedit/internal/tui"
	"guidedit/internal/workflow"
)

// App holds the values of the persistent flags.
type App struct {
	ConfigPath string
	LogPath    string
	Debug      bool

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "guidedit [files...]",
		Short: "Editor sidebar with a GitHub contribution workflow",
		Example: strings.TrimSpace(`
  # Open two files and start the sidebar
  guidedit content/1_General/Intro.mdx content/2_Bronze/Time_Comp.mdx

  # Print the GitHub login URL
  guidedit auth-url
`),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app, args)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/guidedit/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.LogPath, "log", "", "log file (default "+logger.DefaultPath+")")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "enable debug logging")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.load()
	}

	cmd.AddCommand(newAuthURLCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	return cmd
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *App) configPath() (string, error) {
	if a.ConfigPath != "" {
		return a.ConfigPath, nil
	}
	return config.DefaultPath()
}

// load reads the config and applies flags on top of it.
func (a *App) load() error {
	path, err := a.configPath()
	if err != nil {
		return fmt.Errorf("locate config: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.LogPath != "" {
		cfg.LogPath = a.LogPath
	}
	if a.Debug {
		cfg.Debug = true
	}
	a.cfg = cfg
	return nil
}

func runTUI(cmd *cobra.Command, app *App, args []string) error {
	cfg := app.cfg
	if err := logger.Init(cfg.LogPath, cfg.Debug); err != nil {
		return err
	}
	defer logger.Close()
	log := logger.Component("cli")

	if cfg.ClientID == "" && cfg.Token == "" {
		log.Warn("no client id configured, browser login will fail", "env", config.EnvClientID)
	}

	flow, err := auth.NewFlow(cfg)
	if err != nil {
		return err
	}

	store := state.NewStore()
	ws := state.NewWorkspace(store)
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	for _, id := range git.FileIDs(wd, args) {
		ws.OpenOrCreateExistingFile(id)
	}
	log.Info("starting", "files", len(args), "upstream", cfg.Upstream.Repo().FullName())

	actions := workflow.New(store, workflow.Settings{
		Upstream:   cfg.Upstream.Repo(),
		BaseBranch: cfg.BaseBranch,
	})
	m := tui.New(cmd.Context(), tui.Options{
		Store:   store,
		Files:   ws,
		Actions: actions,
		Auth:    flow,
		AppURL:  cfg.AppURL,
		Token:   cfg.Token,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

func newAuthURLCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "auth-url",
		Short: "Print the GitHub OAuth authorize URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, err := auth.NewFlow(app.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), flow.AuthorizeURL())
			return nil
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.configPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.configPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			// tokens stay in the environment
			cfg := *app.cfg
			cfg.Token = ""
			if err := config.Save(path, &cfg); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	})
	return cmd
}
