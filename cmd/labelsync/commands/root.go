// Package commands implements the CLI commands for labelsync.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/labelsync/internal/app"
	"go.trai.ch/labelsync/internal/build"
)

// CLI represents the command line interface for labelsync.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Invalidate(ctx context.Context, opts app.ConfigOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
	ConfigureLogging(opts app.LogOptions)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "labelsync",
		Short:         "Keep pull request component labels in sync with Jira",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to the configuration file (default ./labelsync.yaml)")
	flags.String("repo", "", "Repository to label, as owner/name")
	flags.String("cache-dir", "", "Directory holding the persisted caches")
	flags.String("jira-url", "", "Base URL of the Jira instance")
	flags.String("jira-project", "", "Jira project key matched in pull request titles")
	flags.String("github-user", "", "GitHub account used for labeling")
	flags.Duration("poll-interval", 0, "Pause between reconciliation passes")
	flags.Duration("invalidation-interval", 0, "Pause between cache invalidation passes (0 disables)")
	flags.Duration("request-timeout", 0, "Upper bound for a single GitHub or Jira request")
	flags.Bool("log-json", false, "Emit logs as JSON")
	flags.String("log-file", "", "Also write JSON logs to this size-rotated file")
	flags.Bool("verbose", false, "Enable debug logging")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		logFile, _ := cmd.Flags().GetString("log-file")
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.app.ConfigureLogging(app.LogOptions{JSON: jsonLogs, Verbose: verbose, File: logFile})
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newInvalidateCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// configOptions collects the configuration flags shared by all commands.
func configOptions(cmd *cobra.Command) app.ConfigOptions {
	flags := cmd.Flags()
	opts := app.ConfigOptions{}
	opts.Path, _ = flags.GetString("config")
	opts.Repo, _ = flags.GetString("repo")
	opts.CacheDir, _ = flags.GetString("cache-dir")
	opts.JiraURL, _ = flags.GetString("jira-url")
	opts.JiraProject, _ = flags.GetString("jira-project")
	opts.GitHubUser, _ = flags.GetString("github-user")

	if flags.Changed("poll-interval") {
		d, _ := flags.GetDuration("poll-interval")
		opts.PollInterval = &d
	}
	if flags.Changed("invalidation-interval") {
		d, _ := flags.GetDuration("invalidation-interval")
		opts.InvalidationInterval = &d
	}
	if flags.Changed("request-timeout") {
		d, _ := flags.GetDuration("request-timeout")
		opts.RequestTimeout = &d
	}
	return opts
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
