// Package cli implements the nano-banana command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/42apps/nanobanana"
	"github.com/42apps/nanobanana/internal/sl"
	"github.com/42apps/nanobanana/provider/gemini"
	"github.com/42apps/nanobanana/provider/openrouter"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1 // provider or I/O failure
	ExitUsage   = 2 // invalid input or configuration
	ExitNoImage = 3 // the model answered without an image
)

const promptPreviewLimit = 100

// ErrUsage marks command line parsing errors.
var ErrUsage = errors.New("invalid usage")

// Provider wires one backend into the command.
type Provider struct {
	// Factory builds the provider factory from the loaded configuration
	Factory func(cfg *nanobanana.Config, logger *slog.Logger) nanobanana.ProviderFactory

	// Models are listed by the models subcommand
	Models []nanobanana.ModelInfo
}

// App holds the dependencies of the command tree.
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	LoadConfig func() (*nanobanana.Config, error)
	Providers  map[nanobanana.ProviderName]Provider

	// Storage overrides the local filesystem storage when set
	Storage nanobanana.Storage

	Now func() time.Time
}

// Options are the flags of a generation run.
type Options struct {
	Provider    string
	References  []string
	AspectRatio string
	Resolution  string
	Output      string
	OutputDir   string
	Timeout     time.Duration
	Verbose     bool
}

// NewApp returns an App using the process environment and both providers.
func NewApp() *App {
	return &App{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		LoadConfig: func() (*nanobanana.Config, error) {
			return nanobanana.LoadConfig()
		},
		Providers: DefaultProviders(),
		Now:       time.Now,
	}
}

// DefaultProviders returns the google and openrouter providers.
func DefaultProviders() map[nanobanana.ProviderName]Provider {
	return map[nanobanana.ProviderName]Provider{
		nanobanana.ProviderGoogle: {
			Factory: func(_ *nanobanana.Config, logger *slog.Logger) nanobanana.ProviderFactory {
				return gemini.Factory(gemini.WithLogger(logger))
			},
			Models: []nanobanana.ModelInfo{gemini.NanoBananaProInfo},
		},
		nanobanana.ProviderOpenRouter: {
			Factory: func(cfg *nanobanana.Config, logger *slog.Logger) nanobanana.ProviderFactory {
				return openrouter.Factory(openrouter.Config{
					BaseURL: cfg.OpenRouterBaseURL,
					Logger:  logger,
				})
			},
			Models: []nanobanana.ModelInfo{openrouter.NanoBananaProInfo},
		},
	}
}

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	return NewApp().Run(ctx, args)
}

// Run executes the command tree and reports any error on Stderr.
func (a *App) Run(ctx context.Context, args []string) int {
	if args == nil {
		// cobra reads os.Args when given nil
		args = []string{}
	}

	cmd := a.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		a.report(err)
	}
	return ExitCode(err)
}

// NewRootCommand builds the nano-banana command and its subcommands.
func (a *App) NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "nano-banana [flags] PROMPT",
		Short: "Generate images with Nano Banana Pro (Gemini 3 Pro Image)",
		Long: `Generate an image from a text prompt and optional reference images.

Providers:
  google      Google AI Studio API (default, requires GEMINI_API_KEY)
  openrouter  OpenRouter API (requires OPENROUTER_API_KEY)`,
		Example: `  nano-banana "A serene mountain landscape at sunset"
  nano-banana "Website hero banner" -a 16:9 -s 4K
  nano-banana "Logo in this style" -r style1.png -r style2.png
  nano-banana "Product photo" -o product_shot.png
  nano-banana "AI visualization" -p openrouter`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: expected exactly one PROMPT argument, got %d", ErrUsage, len(args))
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd.Context(), args[0], opts)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	flags := cmd.Flags()
	flags.StringVarP(&opts.Provider, "provider", "p", "", "API provider: google or openrouter (default: $"+nanobanana.EnvProvider+" or google)")
	flags.StringArrayVarP(&opts.References, "reference", "r", nil, fmt.Sprintf("Reference image for style transfer, repeatable (up to %d)", nanobanana.MaxReferenceImages))
	flags.StringVarP(&opts.AspectRatio, "aspect-ratio", "a", nanobanana.DefaultAspectRatio.String(), "Aspect ratio")
	flags.StringVarP(&opts.Resolution, "resolution", "s", nanobanana.DefaultImageSize.String(), "Image resolution: 1K, 2K or 4K")
	flags.StringVarP(&opts.Output, "output", "o", "", "Output file path (default: nano_banana_<timestamp>.<ext>)")
	flags.StringVarP(&opts.OutputDir, "output-dir", "d", "", "Output directory (default: current directory)")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "Provider request timeout (default: $NANO_BANANA_TIMEOUT or 2m)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(a.newModelsCommand())

	return cmd
}

func (a *App) generate(ctx context.Context, prompt string, opts *Options) error {
	logger := newLogger(a.Stderr, opts.Verbose)

	cfg, err := a.LoadConfig()
	if err != nil {
		return &nanobanana.ConfigurationError{Err: err}
	}

	params := nanobanana.GenerateParams{
		Prompt:          prompt,
		ReferenceImages: opts.References,
		AspectRatio:     opts.AspectRatio,
		Resolution:      opts.Resolution,
		Provider:        opts.Provider,
	}

	req, _, err := nanobanana.NormalizeParams(params, cfg.Provider)
	if err != nil {
		return err
	}

	managerOpts := []nanobanana.ManagerOption{nanobanana.WithLogger(logger)}
	for name, p := range a.Providers {
		managerOpts = append(managerOpts, nanobanana.WithProvider(name, p.Factory(cfg, logger)))
	}
	if opts.Timeout > 0 {
		managerOpts = append(managerOpts, nanobanana.WithTimeout(opts.Timeout))
	}
	if a.Storage != nil {
		managerOpts = append(managerOpts, nanobanana.WithStorage(a.Storage))
	}

	manager := nanobanana.NewManager(*cfg, managerOpts...)
	defer func() {
		if err := manager.Close(); err != nil {
			logger.Warn("failed to close providers", sl.Err(err))
		}
	}()

	fmt.Fprintf(a.Stdout, "Provider: %s\n", req.Provider)
	fmt.Fprintf(a.Stdout, "Aspect ratio: %s\n", req.AspectRatio)
	fmt.Fprintf(a.Stdout, "Resolution: %s\n", req.Resolution)
	fmt.Fprintf(a.Stdout, "Prompt: %s\n\n", sl.Truncate(req.Prompt, promptPreviewLimit))

	result, err := manager.Generate(ctx, params)
	if err != nil {
		return err
	}
	if !result.HasImage() {
		if result.Reason != "" {
			return fmt.Errorf("%w: %s", nanobanana.ErrNoImage, result.Reason)
		}
		return nanobanana.ErrNoImage
	}

	saved, err := manager.SaveResult(ctx, result, nanobanana.OutputOptions{
		Path: opts.Output,
		Dir:  opts.OutputDir,
		Now:  a.Now,
	})
	if err != nil {
		return fmt.Errorf("save image: %w", err)
	}

	fmt.Fprintf(a.Stdout, "Image saved to: %s\n", saved.URL)
	return nil
}

func (a *App) report(err error) {
	fmt.Fprintf(a.Stderr, "Error: %v\n", err)

	var cfgErr *nanobanana.ConfigurationError
	switch {
	case errors.As(err, &cfgErr) && errors.Is(err, nanobanana.ErrMissingCredential):
		fmt.Fprint(a.Stderr, setupHint(cfgErr.Provider))
	case errors.Is(err, nanobanana.ErrNoImage):
		fmt.Fprint(a.Stderr, noImageHint)
	case errors.Is(err, ErrUsage):
		fmt.Fprintln(a.Stderr, "Run 'nano-banana --help' for usage.")
	}
}

// ExitCode maps an error returned by the command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, nanobanana.ErrNoImage):
		return ExitNoImage
	case nanobanana.IsProviderError(err):
		return ExitFailure
	case nanobanana.IsConfigurationError(err),
		errors.Is(err, ErrUsage),
		errors.Is(err, nanobanana.ErrEmptyPrompt),
		errors.Is(err, nanobanana.ErrTooManyImages),
		errors.Is(err, nanobanana.ErrUnknownProvider):
		return ExitUsage
	default:
		return ExitFailure
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
