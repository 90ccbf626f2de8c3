package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/whatsapp-notebooklm/internal/config"
	"github.com/whatsapp-notebooklm/internal/converter"
	"github.com/whatsapp-notebooklm/internal/models"
	"github.com/whatsapp-notebooklm/internal/notify"
	"github.com/whatsapp-notebooklm/internal/scheduler"
	"github.com/whatsapp-notebooklm/internal/storage"
	"github.com/whatsapp-notebooklm/internal/ui"
)

const (
	appName = "whatsapp2notebook"
	version = "0.1.0"
)

// ErrFoldersRequired is returned when folders are missing and prompting is impossible
var ErrFoldersRequired = errors.New("input and output folders are required")

type rootOptions struct {
	input    string
	output   string
	prefix   string
	title    string
	schedule string
	logLevel string
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     appName,
		Short:   "Convert a WhatsApp chat export into monthly NotebookLM documents",
		Version: version,
		Long: `Convert a WhatsApp chat export folder (the exported .txt file plus media)
into one markdown document per calendar month, ready to upload to NotebookLM.

Images are embedded inline as data URIs. Audio, video and documents are
referenced by name. Folders not given as flags or in the environment are
asked for interactively.`,
		Example: `  # Convert an export, prompting for the folders
  $ whatsapp2notebook

  # Convert non-interactively
  $ whatsapp2notebook --input ./WhatsApp-Chat --output ./notebook

  # Re-convert every night at 03:00
  $ whatsapp2notebook -i ./WhatsApp-Chat -o ./notebook --schedule "0 3 * * *"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetVersionTemplate(formatVersion())
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		ui.PrintError("%v", err)
		fmt.Fprintf(c.ErrOrStderr(), "\nRun '%s --help' for usage.\n", c.CommandPath())
		return err
	})

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "WhatsApp export folder (CHAT_FOLDER)")
	flags.StringVarP(&opts.output, "output", "o", "", "folder for the markdown files (OUTPUT_FOLDER)")
	flags.StringVar(&opts.prefix, "prefix", "", "output file name prefix (OUTPUT_PREFIX)")
	flags.StringVar(&opts.title, "title", "", "document title (DOCUMENT_TITLE)")
	flags.StringVar(&opts.schedule, "schedule", "", "cron expression to re-convert on (SCHEDULE)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (LOG_LEVEL)")

	cmd.AddCommand(newVersionCommand())
	cmd.AddCommand(newHistoryCommand())

	return cmd
}

// Execute runs the command tree
func Execute() error {
	return NewRootCommand().Execute()
}

func formatVersion() string {
	return fmt.Sprintf("%s version %s\n", appName, version)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), formatVersion())
		},
	}
}

// applyFlags overrides configuration with the flags set on the command line
func applyFlags(cfg *models.ConverterConfig, opts *rootOptions, flags *pflag.FlagSet) error {
	overrides := []struct {
		flag   string
		target *string
		value  string
	}{
		{"input", &cfg.ChatFolder, opts.input},
		{"output", &cfg.OutputFolder, opts.output},
		{"prefix", &cfg.OutputPrefix, opts.prefix},
		{"title", &cfg.DocumentTitle, opts.title},
		{"schedule", &cfg.Schedule, opts.schedule},
		{"log-level", &cfg.LogLevel, opts.logLevel},
	}

	for _, o := range overrides {
		if flags.Changed(o.flag) {
			*o.target = o.value
		}
	}

	cfg.ChatFolder = ui.CleanPath(cfg.ChatFolder)
	cfg.OutputFolder = ui.CleanPath(cfg.OutputFolder)

	return config.Validate(cfg)
}

func runConvert(cmd *cobra.Command, opts *rootOptions) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("%v", err)
		return err
	}

	if err := applyFlags(cfg, opts, cmd.Flags()); err != nil {
		ui.PrintError("%v", err)
		return err
	}

	out := cmd.OutOrStdout()

	// Setup logger
	logger := setupLogger(cfg.LogLevel, cfg.Environment, cmd.ErrOrStderr())
	logger.Debug().
		Str("environment", cfg.Environment).
		Str("timezone", cfg.Timezone).
		Bool("notify_enabled", cfg.NotifyEnabled()).
		Bool("history_enabled", cfg.HistoryEnabled()).
		Msg("Starting converter")

	if err := resolveFolders(cfg, out, isInteractive()); err != nil {
		ui.PrintFailure(out, err)
		return err
	}

	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conv := converter.New(cfg, logger, integrations(ctx, cfg, logger)...)

	// Validate the schedule before the first run
	var sched *scheduler.Scheduler
	if cfg.Schedule != "" {
		sched, err = scheduler.NewScheduler(cfg.Schedule, cfg.Timezone, conv, logger)
		if err != nil {
			ui.PrintError("%v", err)
			return err
		}
	}

	ui.PrintStep(out, 3, "🚀", "Processing", "Starting conversion...")

	run, err := conv.Convert(ctx)
	if err != nil {
		ui.PrintFailure(out, err)
		return err
	}
	ui.PrintReport(out, run)

	if sched == nil {
		return nil
	}

	fmt.Fprintln(out)
	ui.PrintInfo("Re-converting on schedule %q. Press Ctrl+C to stop.", cfg.Schedule)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// resolveFolders fills missing folders from interactive prompts
func resolveFolders(cfg *models.ConverterConfig, out io.Writer, interactive bool) error {
	if cfg.ChatFolder != "" && cfg.OutputFolder != "" {
		return nil
	}

	if !interactive {
		return fmt.Errorf("%w: use --input/--output or CHAT_FOLDER/OUTPUT_FOLDER", ErrFoldersRequired)
	}

	ui.PrintBanner(out)

	if cfg.ChatFolder == "" {
		ui.PrintStep(out, 1, "📂", "WhatsApp Export Folder",
			"This should be the folder containing your WhatsApp chat export",
			"(it will have a .txt file and media files)")

		folder, err := ui.AskFolder("Enter the path to your WhatsApp export folder:", ui.ValidateExistingDir)
		if err != nil {
			return err
		}
		cfg.ChatFolder = folder
	}

	if cfg.OutputFolder == "" {
		ui.PrintStep(out, 2, "📁", "Output Folder",
			"This is where the converted markdown files will be saved",
			"(the folder will be created if it doesn't exist)")

		folder, err := ui.AskFolder("Enter the path for your output folder:", ui.ValidateOutputDir)
		if err != nil {
			return err
		}
		cfg.OutputFolder = folder
		ui.PrintSuccess("Output folder ready: %s", folder)
	}

	return nil
}

// integrations wires the optional run history and notifications
func integrations(ctx context.Context, cfg *models.ConverterConfig, logger zerolog.Logger) []converter.Option {
	var opts []converter.Option

	if cfg.HistoryEnabled() {
		storageClient, err := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseTimeout, logger)
		if err == nil {
			err = storageClient.Ping(ctx)
		}
		if err != nil {
			logger.Warn().Err(err).Msg("Run history disabled")
			ui.PrintWarning("Run history disabled: %v", err)
		} else {
			opts = append(opts, converter.WithRecorder(storageClient))
		}
	}

	if cfg.NotifyEnabled() {
		telegram, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Telegram notifications disabled")
			ui.PrintWarning("Telegram notifications disabled: %v", err)
		} else {
			opts = append(opts, converter.WithNotifier(telegram))
		}
	}

	return opts
}

func isInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
