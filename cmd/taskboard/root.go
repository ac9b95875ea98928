package main

import (
	"fmt"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/debug"
	"taskboard/internal/github"
	"taskboard/internal/refresh"

	"github.com/spf13/cobra"
)

// flagBinding ties a command-line flag to the config key it overrides.
type flagBinding struct {
	flag string
	key  string
}

var persistentFlagBindings = []flagBinding{
	{"owner", config.KeyRepoOwner},
	{"repo", config.KeyRepoName},
	{"api-url", config.KeyAPIURL},
	{"auto-refresh-seconds", config.KeyAutoRefreshSeconds},
	{"output-format", config.KeyOutputFormat},
	{"theme", config.KeyTheme},
	{"debug", config.KeyDebug},
}

func newRootCmd() *cobra.Command {
	var showVersion bool

	root := &cobra.Command{
		Use:   "taskboard",
		Short: "Three-column task board over GitHub issues",
		Long: `taskboard shows the issues of one GitHub repository as a To Do / In Progress / Done
board. Running it without a subcommand opens the interactive terminal board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				return nil
			}
			return setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			debug.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			settings, err := config.Load()
			if err != nil {
				return err
			}
			return runBoard(cmd.OutOrStdout(), settings)
		},
	}

	root.Flags().BoolVar(&showVersion, "version", false, "Print version information and exit")

	pf := root.PersistentFlags()
	pf.String("owner", config.DefaultRepoOwner, "GitHub repository owner")
	pf.String("repo", config.DefaultRepoName, "GitHub repository name")
	pf.String("api-url", github.DefaultAPIURL, "GitHub REST API base URL")
	pf.Int("auto-refresh-seconds", config.DefaultAutoRefreshSeconds, "Auto-refresh interval in seconds (0 disables auto refresh)")
	pf.String("output-format", "rich", "Detail panel markdown style (rich, light, plain)")
	pf.String("theme", "", "Color theme of the terminal board")
	pf.Bool("debug", false, "Write a debug log to ~/.taskboard/debug.log")

	root.AddCommand(newListCmd(), newServeCmd())
	return root
}

// setup loads configuration, layers explicitly set flags on top and starts
// the debug log.
func setup(cmd *cobra.Command) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}
	overrides, err := collectOverrides(cmd, persistentFlagBindings)
	if err != nil {
		return err
	}
	if err := config.ApplyOverrides(overrides); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}
	if err := debug.Init(config.GetBool(config.KeyDebug)); err != nil {
		return fmt.Errorf("init debug log: %w", err)
	}
	return nil
}

// collectOverrides returns the values of the flags the user actually set.
// Defaults never override config files or the environment.
func collectOverrides(cmd *cobra.Command, bindings []flagBinding) (map[string]any, error) {
	flags := cmd.Flags()
	overrides := map[string]any{}
	for _, b := range bindings {
		f := flags.Lookup(b.flag)
		if f == nil || !f.Changed {
			continue
		}
		var (
			v   any
			err error
		)
		switch f.Value.Type() {
		case "int":
			v, err = flags.GetInt(b.flag)
		case "bool":
			v, err = flags.GetBool(b.flag)
		default:
			v, err = flags.GetString(b.flag)
		}
		if err != nil {
			return nil, fmt.Errorf("read --%s: %w", b.flag, err)
		}
		overrides[b.key] = v
	}
	return overrides, nil
}

func newClient(s config.Settings) *github.Client {
	return github.NewClient(s.Owner, s.Repo,
		github.WithAPIURL(s.APIURL),
		github.WithPageSizes(s.OpenPerPage, s.ClosedPerPage))
}

func newLinks(s config.Settings) github.Links {
	return github.NewLinks(s.WebURL, s.Owner, s.Repo)
}

// refreshInterval is the effective schedule, zero when auto refresh is off.
func refreshInterval(s config.Settings) time.Duration {
	if !s.AutoRefresh {
		return 0
	}
	if s.RefreshInterval <= 0 {
		return refresh.DefaultInterval
	}
	return s.RefreshInterval
}
