package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// version will be set by main
var version = "dev"

// SetVersion sets the version reported by the version command
func SetVersion(v string) {
	version = v
}

// newRootCmd represents the base command for the oneonone application
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "oneonone",
		Short: "Creates and shares 1-on-1 meeting documents in Google Docs",
		Long: `oneonone creates a Google Doc for a 1-on-1 meeting, fills it with the
meeting template and shares it with your counterpart as an editor.

The collaborator can be passed with --email or picked interactively from
the Google Workspace directory.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "oneonone version %s\n" .Version}}`)

	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Run executes the command line args and returns the process exit code.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

// Execute is the main entry point for the CLI application
func Execute() {
	if code := Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}
