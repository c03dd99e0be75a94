// Command stripe manages issuing cards, tax registrations and tax IDs from
// the command line.
//
//	stripe cards list --status active --all
//	stripe cards create --currency usd --type virtual --cardholder ich_123
//	stripe tax-registrations create DE --type oss_union --dry-run
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/broady/stripe"
	"github.com/broady/stripe/client"
	"github.com/broady/stripe/internal/logging"
	"github.com/broady/stripe/middleware"
)

type CLI struct {
	Globals

	Version          VersionCmd          `cmd:"" help:"Print version information."`
	Cards            CardsCmd            `cmd:"" help:"Manage issuing cards."`
	TaxRegistrations TaxRegistrationsCmd `cmd:"" name:"tax-registrations" help:"Manage tax registrations."`
	TaxIDs           TaxIDsCmd           `cmd:"" name:"tax-ids" help:"Manage tax IDs."`
}

// Globals are the flags shared by every command.
type Globals struct {
	Config    string `help:"YAML client config file." short:"c" type:"path" env:"STRIPE_CONFIG"`
	APIKey    string `help:"Secret key; overrides the config file." name:"api-key" env:"STRIPE_API_KEY"`
	BaseURL   string `help:"API base URL; overrides the config file." name:"base-url"`
	LogLevel  string `help:"Log level." default:"warn" enum:"debug,info,warn,error"`
	LogFormat string `help:"Log format." default:"text" enum:"text,json"`
	DryRun    bool   `help:"Print requests instead of sending them." name:"dry-run" short:"n"`

	ctx    context.Context `kong:"-"`
	stdout io.Writer       `kong:"-"`
	stderr io.Writer       `kong:"-"`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintln(g.stdout, Version())
	return nil
}

func (g *Globals) logger() *slog.Logger {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	return logging.NewLoggerWithWriter(level, logging.Format(g.LogFormat), g.stderr)
}

func (g *Globals) config() (client.Config, error) {
	cfg := client.DefaultConfig()
	if g.Config != "" {
		var err error
		if cfg, err = client.ReadConfig(g.Config); err != nil {
			return client.Config{}, err
		}
	}
	if g.APIKey != "" {
		cfg = cfg.WithAPIKey(g.APIKey)
	}
	if g.BaseURL != "" {
		cfg = cfg.WithBaseURL(g.BaseURL)
	}
	return cfg, nil
}

// transport returns the client for this invocation, wrapped in logging and
// the test-helper guard. With --dry-run nothing is sent.
func (g *Globals) transport() (stripe.Transport, error) {
	logger := g.logger()
	if g.DryRun {
		unsent := stripe.TransportFunc(func(context.Context, *stripe.Request, any) error {
			return middleware.ErrDryRun
		})
		return stripe.Intercept(unsent, middleware.DryRun(g.stdout)), nil
	}

	cfg, err := g.config()
	if err != nil {
		return nil, err
	}
	c, err := client.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("client configured", "base_url", cfg.BaseURL, "api_key", cfg.APIKey)
	return stripe.Intercept(c,
		middleware.LoggingInterceptor(logger),
		middleware.TestHelperGuard(cfg.APIKey),
	), nil
}

// print writes v as indented JSON. A dry run has already printed the
// request, so it succeeds without output.
func (g *Globals) print(v any, err error) error {
	if errors.Is(err, middleware.ErrDryRun) {
		return nil
	}
	if err != nil {
		return err
	}
	enc := json.NewEncoder(g.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("stripe"),
		kong.Description("Manage issuing cards and tax settings."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cli.Globals.ctx = ctx
	cli.Globals.stdout = stdout
	cli.Globals.stderr = stderr
	return kctx.Run(&cli.Globals)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "stripe:", err)
		os.Exit(1)
	}
}
