package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"

	"post2embed/internal/app"
	"post2embed/internal/config"
	"post2embed/pkg/logger"
)

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New(logger.Opts{})

	var runner *app.Runner
	fxApp := fx.New(
		fx.Logger(log),
		fx.Supply(opts),
		app.Module,
		fx.Populate(&runner),
	)
	if err := fxApp.Err(); err != nil {
		log.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx); err != nil {
		log.Error("Run failed", "error", err)
		logger.Flush()
		os.Exit(1)
	}
	logger.Flush()
}

// stringList collects repeated flag values.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func parseArgs(args []string) (config.Options, error) {
	fs := flag.NewFlagSet("post2embed", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: post2embed [flags] reference...")
		fmt.Fprintln(fs.Output(), "A reference is a tweet ID, a tweet URL, or a Mastodon post URL.")
		fs.PrintDefaults()
	}

	var outputs stringList
	fs.Var(&outputs, "output", `output format: "html", "img" or "json" (repeatable)`)
	fs.Var(&outputs, "o", "shorthand for -output")

	opts := config.Options{}
	fs.BoolVar(&opts.ShowThread, "thread", false, "include the parent and quoted post")
	fs.BoolVar(&opts.ShowThread, "t", false, "shorthand for -thread")
	fs.BoolVar(&opts.ShowCSS, "css", false, "prepend the stylesheet to HTML output")
	fs.BoolVar(&opts.ShowCSS, "c", false, "shorthand for -css")
	fs.BoolVar(&opts.Pretty, "pretty", false, "keep template whitespace in HTML output")
	fs.BoolVar(&opts.Pretty, "p", false, "shorthand for -pretty")
	fs.BoolVar(&opts.SchemaOrg, "schema", false, "add Schema.org metadata to HTML output")
	fs.BoolVar(&opts.SchemaOrg, "m", false, "shorthand for -schema")
	fs.StringVar(&opts.SaveDir, "save", "", "directory to save the output files to")
	fs.StringVar(&opts.SaveDir, "s", "", "shorthand for -save")
	fs.BoolVar(&opts.Clipboard, "clipboard", true, "copy the result to the clipboard")
	fs.BoolVar(&opts.Clipboard, "b", true, "shorthand for -clipboard")
	fs.BoolVar(&opts.Archive, "archive", true, "submit the post URL to the Wayback Machine")
	fs.BoolVar(&opts.Archive, "a", true, "shorthand for -archive")

	if err := fs.Parse(args); err != nil {
		return config.Options{}, err
	}

	opts.References = fs.Args()
	if len(opts.References) == 0 {
		return config.Options{}, fmt.Errorf("no references given; run with -h for usage")
	}

	if len(outputs) == 0 {
		outputs = stringList{"html"}
	}
	for _, o := range outputs {
		switch o {
		case "html", "img", "json":
		default:
			return config.Options{}, fmt.Errorf("unknown output format %q", o)
		}
	}
	opts.Outputs = outputs

	if !opts.Clipboard && opts.SaveDir == "" &&
		(contains(outputs, "html") || contains(outputs, "img")) {
		return config.Options{}, fmt.Errorf("nowhere to put the result: enable -clipboard or set -save")
	}

	return opts, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
