package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/oneonone/internal/directory"
	"github.com/teemow/oneonone/internal/docs"
	"github.com/teemow/oneonone/internal/drive"
	"github.com/teemow/oneonone/internal/google"
	"github.com/teemow/oneonone/internal/instrumentation"
	"github.com/teemow/oneonone/internal/logging"
	"github.com/teemow/oneonone/internal/oneonone"
	"github.com/teemow/oneonone/internal/prompt"
)

// telemetryFlushTimeout bounds pushing and flushing telemetry at exit.
const telemetryFlushTimeout = 10 * time.Second

type createOptions struct {
	name             string
	email            string
	cleanupOnFailure bool
	noNotify         bool
	credentialsFile  string
	tokenFile        string
	debug            bool
}

func newCreateCmd() *cobra.Command {
	var opts createOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new 1on1 document",
		Long: `Create a Google Doc titled "1on1 - <date> - <name>", fill it with the
meeting template and share it with the collaborator as an editor.

Without --email the Google Workspace directory is searched and you pick the
collaborator interactively. Accounts without directory access are asked to
type the address instead.

Credentials are read from credentials.json in the working directory (or
ONEONONE_CREDENTIALS_FILE). The first run opens a browser to authorize
access; the resulting token is saved to token.json (or ONEONONE_TOKEN_FILE).

Environment variables may also be placed in a .env file in the working
directory or any of its parents.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Your name")
	cmd.Flags().StringVarP(&opts.email, "email", "e", "", "Email of the person to invite")
	cmd.Flags().BoolVar(&opts.cleanupOnFailure, "cleanup-on-failure", false, "Delete the document if filling or sharing it fails")
	cmd.Flags().BoolVar(&opts.noNotify, "no-notify", false, "Share without sending the collaborator Drive's notification email")
	cmd.Flags().StringVar(&opts.credentialsFile, "credentials", "", "Path to the OAuth client credentials file. Can also use ONEONONE_CREDENTIALS_FILE env var.")
	cmd.Flags().StringVar(&opts.tokenFile, "token", "", "Path to the saved token file. Can also use ONEONONE_TOKEN_FILE env var.")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd
}

func runCreate(cmd *cobra.Command, opts createOptions) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	out := cmd.OutOrStdout()
	logger := logging.New(cmd.ErrOrStderr(), opts.debug)
	adapter := logging.NewSlogAdapter(logger)

	loadDotEnv()

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), telemetryFlushTimeout)
		defer cancel()
		if err := provider.Shutdown(flushCtx); err != nil {
			logger.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	audit := instrumentation.NewAuditLogger(logging.WithOperation(logger, "audit"), instrConfig.AuditLogging)

	storeConfig := google.DefaultStoreConfig()
	if opts.credentialsFile != "" {
		storeConfig.CredentialsFile = opts.credentialsFile
	}
	if opts.tokenFile != "" {
		storeConfig.TokenFile = opts.tokenFile
	}
	store := google.NewStore(storeConfig,
		google.WithLogger(adapter),
		google.WithMetrics(provider.Metrics()),
	)

	s := newStyles(out)
	fmt.Fprintln(out, s.Title.Render("🚀 oneonone - 1on1 Document Creator"))
	fmt.Fprintln(out)

	prompter := prompt.New(cmd.InOrStdin(), out)
	defer prompter.Close()
	logger.Debug("prompter ready", "interactive", prompter.Interactive())

	workflow := oneonone.NewWorkflow(
		store,
		newServiceFactory(logger, provider.Metrics(), audit),
		prompter,
		out,
		oneonone.WithLogger(adapter),
		oneonone.WithMetrics(provider.Metrics()),
	)

	_, err = workflow.Run(ctx, oneonone.Options{
		Name:             opts.name,
		Email:            opts.email,
		CleanupOnFailure: opts.cleanupOnFailure,
		SkipNotification: opts.noNotify,
	})
	return err
}

// newServiceFactory wires the Google API clients for an authorized credential.
func newServiceFactory(logger *slog.Logger, metrics *instrumentation.Metrics, audit *instrumentation.AuditLogger) oneonone.ServiceFactory {
	return func(ctx context.Context, cred *google.Credential) (*oneonone.Services, error) {
		httpClient := cred.HTTPClient(ctx)

		driveClient, err := drive.NewClient(ctx, httpClient,
			drive.WithMetrics(metrics),
			drive.WithAuditLogger(audit),
		)
		if err != nil {
			return nil, err
		}

		docsClient, err := docs.NewClient(ctx, httpClient, driveClient,
			docs.WithMetrics(metrics),
			docs.WithAuditLogger(audit),
			docs.WithLogger(logging.NewSlogAdapter(logging.WithService(logger, instrumentation.ServiceDocs))),
		)
		if err != nil {
			return nil, err
		}

		directoryClient, err := directory.NewClient(ctx, httpClient,
			directory.WithMetrics(metrics),
			directory.WithLogger(logging.NewSlogAdapter(logging.WithService(logger, instrumentation.ServiceDirectory))),
		)
		if err != nil {
			return nil, err
		}

		return &oneonone.Services{
			Directory: directoryClient,
			Documents: docsClient,
		}, nil
	}
}
