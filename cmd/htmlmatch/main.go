// Command htmlmatch queries the tags around a position in an HTML, XML or JSX
// document and serves the same queries to editors over HTTP.
//
// Usage:
//
//	htmlmatch [flags] match|outward|inward|attrs <pos> [file]
//	htmlmatch [flags] scan [file]
//	htmlmatch [flags] serve
//
// The document is read from stdin when no file is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/dpotapov/htmlmatch"
	"github.com/dpotapov/htmlmatch/format"
	"github.com/dpotapov/htmlmatch/query"
	"github.com/dpotapov/htmlmatch/scanner"
)

type config struct {
	opts    htmlmatch.Options
	format  string
	where   string
	addr    string
	verbose bool
}

func main() {
	cfg, args, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if err := run(cfg, args, os.Stdin, os.Stdout, os.Stderr, logger); err != nil {
		logger.Error("htmlmatch failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(arguments []string, output io.Writer) (*config, []string, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("htmlmatch", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&cfg.opts.XML, "xml", false, "parse as XML: no void or raw text elements")
	fs.BoolVar(&cfg.opts.JSX, "jsx", false, "accept JSX fragments <></>")
	fs.BoolVar(&cfg.opts.AllTokens, "all", false, "report comments, CDATA, processing instructions and template escapes")
	fs.BoolVar(&cfg.opts.Strict, "strict", false, "fail on unterminated quotes and brackets")
	fs.StringVar(&cfg.format, "format", "json", "output format: json or xml")
	fs.StringVar(&cfg.where, "where", "", "filter expression, e.g. name == \"div\"")
	fs.StringVar(&cfg.addr, "addr", ":8080", "listen address for serve")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: htmlmatch [flags] match|outward|inward|attrs <pos> [file]")
		fmt.Fprintln(fs.Output(), "       htmlmatch [flags] scan [file]")
		fmt.Fprintln(fs.Output(), "       htmlmatch [flags] serve")
		fs.PrintDefaults()
	}

	if err := fs.Parse(arguments); err != nil {
		return nil, nil, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return nil, nil, errors.New("missing command")
	}
	return cfg, fs.Args(), nil
}

// run executes a command. Syntax errors found in strict mode are shown with
// the surrounding source lines on stderr.
func run(cfg *config, args []string, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) error {
	cmd, args := args[0], args[1:]

	if cmd == "serve" {
		return serve(cfg, logger)
	}

	pos := 0
	if cmd != "scan" {
		if len(args) == 0 {
			return fmt.Errorf("%s: missing position", cmd)
		}
		var err error
		if pos, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("%s: invalid position %q: %w", cmd, args[0], err)
		}
		args = args[1:]
	}

	src, err := readSource(args, stdin)
	if err != nil {
		return err
	}

	filter, err := query.Compile(cfg.where)
	if err != nil {
		return err
	}

	m := htmlmatch.NewMatcher(&cfg.opts)
	m.Logger = logger

	var result any
	switch cmd {
	case "scan":
		result, err = htmlmatch.Elements(src, &cfg.opts)
	case "match", "attrs":
		var tag *htmlmatch.MatchedTag
		tag, err = m.Match(src, pos)
		if err != nil {
			break
		}
		var ok bool
		if ok, err = filter.Match(tag); err != nil || !ok {
			tag = nil
		}
		if cmd == "attrs" {
			attrs := []htmlmatch.AttributeToken{}
			if tag != nil {
				attrs = tag.Attributes
			}
			result = attrs
		} else {
			result = tag
		}
	case "outward", "inward":
		balance := m.BalancedOutward
		if cmd == "inward" {
			balance = m.BalancedInward
		}
		var tags []htmlmatch.BalancedTag
		if tags, err = balance(src, pos); err == nil {
			result, err = filter.Balanced(src, tags)
		}
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		var se *scanner.SyntaxError
		if errors.As(err, &se) {
			fmt.Fprint(stderr, scanner.Context(src, se.Pos, 2))
		}
		return err
	}

	logger.Debug("Query done", "cmd", cmd, "pos", pos, "size", len(src))

	switch cfg.format {
	case "json":
		return format.JSON(stdout, result)
	case "xml":
		return format.XML(stdout, src, result)
	}
	return fmt.Errorf("unknown output format %q", cfg.format)
}

func readSource(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(b), nil
}
