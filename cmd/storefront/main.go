package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

type envLookup func(key string) (string, bool)

type options struct {
	configPath  string
	showVersion bool
}

// parseOptions читает флаги; путь к конфигурации по умолчанию берётся из STOREFRONT_CONFIG.
func parseOptions(args []string, lookup envLookup, stderr io.Writer) (options, error) {
	var opts options
	defaultPath, _ := lookup(app.EnvConfigPath)

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", defaultPath, "path to YAML config (fallback: "+app.EnvConfigPath+")")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// run возвращает код завершения процесса.
func run(ctx context.Context, args []string, lookup envLookup, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, lookup, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.showVersion {
		_, _ = fmt.Fprintln(stdout, version.String())
		return 0
	}

	logger := log.New()
	logger.SetOutput(stderr)
	logger.SetLevel(log.WarnLevel)

	cfg, warnings, err := app.LoadConfig(opts.configPath)
	if err != nil {
		logger.WithError(err).Error("failed to load config")
		return 1
	}
	closer := app.ConfigureLogger(logger, cfg.Log, stderr)
	defer func() { _ = closer.Close() }()

	entry := logger.WithField("component", "app")
	for _, warning := range warnings {
		entry.Warn(warning)
	}
	entry.WithFields(log.Fields{
		"store":   cfg.StoreName,
		"ops":     cfg.Ops.Addr,
		"version": version.GetVersion(),
	}).Info("starting storefront")

	if err := app.Run(ctx, cfg, stdin, stdout, entry); err != nil {
		if errors.Is(err, context.Canceled) {
			entry.Info("storefront interrupted")
			return 0
		}
		entry.WithError(err).Error("storefront failed")
		return 1
	}

	entry.Info("storefront stopped")
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.LookupEnv, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
