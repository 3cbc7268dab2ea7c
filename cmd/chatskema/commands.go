package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/source/yaml"
	"github.com/reoring/chatskema/wire"
)

type inputFlags struct {
	event  string
	format string
}

func (in *inputFlags) bind(c *cobra.Command, needEvent bool) {
	c.Flags().StringVarP(&in.format, "format", "f", "auto", "input format (auto, json, yaml)")
	if needEvent {
		c.Flags().StringVarP(&in.event, "event", "e", "", "gateway event name, see the events command")
		_ = c.MarkFlagRequired("event")
	}
}

func newEventsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List the known event names and their records",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			for _, n := range a.reg.Names() {
				e, _ := a.reg.Lookup(n)
				fmt.Fprintf(c.OutOrStdout(), "%-24s %s\n", n, e.Record)
			}
			return nil
		},
	}
}

func newDecodeCommand(a *app) *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a payload and print its canonical compact form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			obj, err := a.roundTrip(c, in, args)
			if err != nil {
				return err
			}
			b, err := wire.Marshal(obj)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), string(b))
			return nil
		},
	}
	in.bind(cmd, true)
	return cmd
}

func newValidateCommand(a *app) *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a payload and report every issue",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if _, err := a.roundTrip(c, in, args); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), "ok")
			return nil
		},
	}
	in.bind(cmd, true)
	return cmd
}

func newEncodeCommand(a *app) *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Decode a payload and print its canonical indented form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			obj, err := a.roundTrip(c, in, args)
			if err != nil {
				return err
			}
			return printIndented(c.OutOrStdout(), obj)
		},
	}
	in.bind(cmd, true)
	return cmd
}

func newSchemaCommand(a *app) *cobra.Command {
	var event string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of an event",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			s, err := a.reg.JSONSchema(event)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().StringVarP(&event, "event", "e", "", "gateway event name")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func newDispatchCommand(a *app) *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "dispatch [file]",
		Short: "Decode a gateway frame and its event payload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			tree, err := a.read(c, in, args)
			if err != nil {
				return err
			}
			d, err := a.reg.DecodeDispatch(a.decodeContext(c), tree)
			if err != nil {
				return a.report(c, err)
			}
			out := c.OutOrStdout()
			if d.Event == "" {
				fmt.Fprintf(out, "op %d\n", d.Payload.Op)
				return nil
			}
			fmt.Fprintf(out, "op %d seq %d %s\n", d.Payload.Op, d.Payload.S.Or(0), d.Event)
			obj, err := a.reg.Encode(c.Context(), d.Event, d.Record)
			if err != nil {
				return err
			}
			return printIndented(out, obj)
		},
	}
	in.bind(cmd, false)
	return cmd
}

// roundTrip decodes the input as in.event and re-encodes the record.
func (a *app) roundTrip(c *cobra.Command, in inputFlags, args []string) (*wire.Object, error) {
	tree, err := a.read(c, in, args)
	if err != nil {
		return nil, err
	}
	ctx := a.decodeContext(c)
	rec, err := a.reg.Decode(ctx, in.event, tree)
	if err != nil {
		return nil, a.report(c, err)
	}
	return a.reg.Encode(ctx, in.event, rec)
}

// read loads the input tree from the named file, or stdin when the name is
// missing or "-".
func (a *app) read(c *cobra.Command, in inputFlags, args []string) (any, error) {
	name := "-"
	if len(args) == 1 {
		name = args[0]
	}
	var r io.Reader = c.InOrStdin()
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	format := strings.ToLower(in.format)
	if format == "auto" {
		format = "json"
		if ext := strings.ToLower(filepath.Ext(name)); ext == ".yaml" || ext == ".yml" {
			format = "yaml"
		}
	}
	a.log.Debug("reading input", zap.String("name", name), zap.String("format", format))

	switch format {
	case "json":
		tree, err := chatskema.ReadTree(chatskema.JSONReader(r), a.opt)
		if err != nil {
			return nil, a.report(c, err)
		}
		return tree, nil
	case "yaml":
		return a.readYAML(c, r)
	default:
		return nil, fmt.Errorf("unknown format %q", in.format)
	}
}

// readYAML applies the reader limits the JSON path enforces: size, duplicate
// keys and number mode.
func (a *app) readYAML(c *cobra.Command, r io.Reader) (any, error) {
	if a.opt.MaxBytes > 0 {
		r = io.LimitReader(r, a.opt.MaxBytes+1)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	if a.opt.MaxBytes > 0 && int64(buf.Len()) > a.opt.MaxBytes {
		it := chatskema.NewIssue("", chatskema.CodeTruncated, nil, map[string]any{"detail": "max bytes exceeded"})
		return nil, a.report(c, chatskema.Issues{it})
	}

	yopt := yaml.Options{Float64: a.opt.NumberMode == chatskema.NumberFloat64}
	switch a.opt.OnDuplicateKey {
	case chatskema.Ignore:
		yopt.OnDuplicate = func(*yaml.DuplicateKeyError) {}
	case chatskema.Warn:
		yopt.OnDuplicate = func(e *yaml.DuplicateKeyError) {
			a.log.Warn("duplicate key in payload", zap.String("path", e.Path), zap.Int("line", e.Line))
		}
	}
	tree, err := yaml.DecodeWith(buf.Bytes(), yopt)
	var dup *yaml.DuplicateKeyError
	if errors.As(err, &dup) {
		it := chatskema.NewIssue(dup.Path, chatskema.CodeDuplicateKey, nil, map[string]any{"line": dup.Line})
		return nil, a.report(c, chatskema.Issues{it})
	}
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return tree, nil
}

// decodeContext carries the fail-fast flag into schema decoding.
func (a *app) decodeContext(c *cobra.Command) context.Context {
	ctx := c.Context()
	if a.opt.FailFast {
		ctx = chatskema.WithFailFast(ctx, true)
	}
	return ctx
}

// report prints issues one per line and returns errInvalid; other errors
// pass through.
func (a *app) report(c *cobra.Command, err error) error {
	iss, ok := chatskema.AsIssues(err)
	if !ok {
		return err
	}
	for _, it := range iss {
		fmt.Fprintln(c.OutOrStdout(), it.String())
	}
	a.log.Info("payload rejected", zap.Int("issues", len(iss)))
	return errInvalid
}

func printIndented(w io.Writer, obj *wire.Object) error {
	b, err := wire.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
