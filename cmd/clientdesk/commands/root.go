// Package commands implements the clientdesk command line.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clientdesk/clientdesk/internal/app"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// CLI represents the command line interface for clientdesk.
type CLI struct {
	rootCmd *cobra.Command
	v       *viper.Viper
	out     io.Writer
	runTUI  func(ctx context.Context, opts app.Options) error
}

// New creates a new CLI instance.
func New() *CLI {
	rootCmd := &cobra.Command{
		Use:           "clientdesk",
		Short:         "Browse clients from the terminal",
		Long:          "clientdesk is a list-detail browser for the clients API. Run without a subcommand to open the TUI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		Args:          cobra.NoArgs,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "override config path (default ~/.config/clientdesk/config.toml)")
	flags.String("prefs", "", "override prefs path (default ~/.config/clientdesk/prefs.toml)")
	flags.String("env-file", ".env", "dotenv file to load before reading CLIENTDESK_* variables")
	flags.String("api-url", "", "clients API address (host:port or URL)")
	flags.String("api-token", "", "bearer token for the clients API")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.Int("poll", 0, "background refresh interval in seconds")

	c := &CLI{
		rootCmd: rootCmd,
		v:       newViper(),
		out:     os.Stdout,
		runTUI:  app.Run,
	}
	_ = c.v.BindPFlags(flags)

	rootCmd.RunE = c.runRoot
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newLogsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
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

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func (c *CLI) runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	return c.runTUI(cmd.Context(), app.Options{
		Config:    cfg,
		PrefsPath: c.v.GetString("prefs"),
	})
}
