// Command cborinspect decodes a CBOR input and prints it in RFC 8949-style
// diagnostic notation, one item at a time in pre-order, indented by nesting
// level (spec §B.4). It is a read-only projection of decoded items, not an
// encoder: spec §1 leaves the encoder out of scope, and this command never
// re-serializes anything it prints.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/dvstate/cbor/compress"
	"github.com/dvstate/cbor/decoder"
	"github.com/dvstate/cbor/errs"
)

type cli struct {
	Mode   string `help:"Conformance mode: normal, preferred, cde, dcbor, maparray, v1. Falls back to the config file, then v1." enum:"normal,preferred,cde,dcbor,maparray,v1,"`
	Config string `help:"Path to a cborinspect.yaml config file." type:"path"`
	File   string `arg:"" help:"CBOR input file (optionally .zst/.lz4/.s2-compressed)." type:"existingfile"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("cborinspect"),
		kong.Description("Diagnostic-notation dump of a CBOR input."),
	)

	if err := run(&c); err != nil {
		fmt.Fprintln(os.Stderr, "cborinspect:", err)
		os.Exit(1)
	}

	kctx.Exit(0)
}

func run(c *cli) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	mode, err := parseMode(cfg.Mode)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.File, err)
	}

	codec, err := compress.GetCodec(compress.DetectByExtension(c.File))
	if err != nil {
		return err
	}

	data, err := codec.Decompress(raw)
	if err != nil {
		return fmt.Errorf("decompressing %s: %w", c.File, err)
	}

	d, err := decoder.New(data, mode)
	if err != nil {
		return err
	}

	if mode.V1Compat() {
		for _, tag := range cfg.UnknownTags {
			d.TagDecoders().Unregister(tag)
		}
	}

	p := newPrinter(os.Stdout)
	if err := p.dump(d, len(data)); err != nil {
		printDecodeError(d, err)
		return err
	}

	if err := d.Finish(); err != nil && !errors.Is(err, errs.ErrExtraBytes) {
		printDecodeError(d, err)
		return err
	}

	return nil
}

func printDecodeError(d *decoder.Decoder, err error) {
	class := "recoverable"
	if d.IsUnrecoverableError() {
		class = "unrecoverable"
	}
	fmt.Fprintf(os.Stderr, "decode error (%s): %v\n", class, err)
}

type resolvedConfig struct {
	Mode        string
	UnknownTags []uint64
}

// resolveConfig layers the optional config file under explicit CLI flags:
// a flag left at kong's zero value falls through to the file's value, and
// a mode set by neither defaults to "v1".
func resolveConfig(c *cli) (resolvedConfig, error) {
	path := c.Config
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".cborinspect.yaml")
		}
	}

	fc := &fileConfig{}
	if path != "" {
		loaded, err := loadFileConfig(path)
		if err != nil {
			return resolvedConfig{}, err
		}
		fc = loaded
	}

	mode := c.Mode
	if mode == "" {
		mode = fc.Mode
	}
	if mode == "" {
		mode = "v1"
	}

	return resolvedConfig{Mode: mode, UnknownTags: fc.UnknownTags}, nil
}

func parseMode(s string) (decoder.Mode, error) {
	switch strings.ToLower(s) {
	case "normal", "":
		return decoder.ModeNormal, nil
	case "preferred":
		return decoder.ModePreferred, nil
	case "cde":
		return decoder.ModeCDE, nil
	case "dcbor":
		return decoder.ModeDCBOR, nil
	case "maparray":
		return decoder.ModeMapAsArray, nil
	case "v1":
		return decoder.ModeV1Compat, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}
