// Command chatskema decodes, validates and re-encodes Discord payloads
// against the schemas in github.com/reoring/chatskema/discord.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/i18n"
	"github.com/reoring/chatskema/internal/config"
	"github.com/reoring/chatskema/registry"
)

// errInvalid marks a payload that decoded with issues; the issues are
// already printed.
var errInvalid = errors.New("payload is invalid")

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg config.Config
	log *zap.Logger
	reg *registry.Registry
	opt chatskema.DecodeOpt
}

func newRootCommand(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg}
	cmd := &cobra.Command{
		Use:           "chatskema",
		Short:         "Decode and validate Discord payloads",
		Example:       "chatskema validate --event MESSAGE_CREATE message.json",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return a.setup(c)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.cfg.Lang, "lang", cfg.Lang, "language of issue messages (en, ja)")
	f.StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	f.StringVar(&a.cfg.DuplicateKeys, "duplicate-keys", cfg.DuplicateKeys, "duplicate key handling (ignore, warn, error)")
	f.IntVar(&a.cfg.MaxDepth, "max-depth", cfg.MaxDepth, "maximum nesting depth, 0 for no limit")
	f.Int64Var(&a.cfg.MaxBytes, "max-bytes", cfg.MaxBytes, "maximum input size in bytes, 0 for no limit")
	f.StringVar(&a.cfg.NumberMode, "number-mode", cfg.NumberMode, "number reading (exact, float64)")
	f.BoolVar(&a.cfg.FailFast, "fail-fast", cfg.FailFast, "stop at the first issue")

	cmd.AddCommand(
		newEventsCommand(a),
		newDecodeCommand(a),
		newValidateCommand(a),
		newEncodeCommand(a),
		newSchemaCommand(a),
		newDispatchCommand(a),
	)
	return cmd
}

func (a *app) setup(c *cobra.Command) error {
	log, err := a.cfg.Logger(c.ErrOrStderr())
	if err != nil {
		return err
	}
	opt, err := a.cfg.DecodeOpt(log)
	if err != nil {
		return err
	}
	i18n.SetLanguage(a.cfg.Lang)
	a.log, a.opt = log, opt
	a.reg = registry.Discord(registry.WithLogger(log))
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := newRootCommand(cfg).Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "chatskema:", err)
		}
		os.Exit(1)
	}
}
