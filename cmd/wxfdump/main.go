// Command wxfdump inspects WXF files.
//
//	wxfdump info data.wxf
//	wxfdump dump --schema schema.toml data.wxf
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/wxf/registry"
	"github.com/arloliu/wxf/stream"
)

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

func withLogger(c *cli.Context, fn func(logger *zap.Logger) error) error {
	logger, err := newLogger(c.GlobalBool("verbose"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("init logger: %v", err), 1)
	}
	defer func() { _ = logger.Sync() }()

	stream.SetLogger(logger)

	if err := fn(logger); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	return nil
}

func infoCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.NewExitError("usage: wxfdump info FILE", 2)
	}

	return withLogger(c, func(*zap.Logger) error {
		return printInfo(c.App.Writer, path)
	})
}

func dumpCommand(c *cli.Context) error {
	path := c.Args().First()
	schemaPath := c.String("schema")
	if path == "" || schemaPath == "" {
		return cli.NewExitError("usage: wxfdump dump --schema schema.toml FILE", 2)
	}

	return withLogger(c, func(logger *zap.Logger) error {
		types := newTypeRegistry()

		s, err := loadSchema(schemaPath, func(name string) bool {
			_, ok := types.Lookup(name)
			return ok
		})
		if err != nil {
			return err
		}

		opts := append(s.readerOptions(), stream.WithLogger(logger), stream.WithChecksum(c.Bool("checksum")))

		r, err := stream.Open(path, opts...)
		if err != nil {
			return err
		}
		defer r.Close()

		if err := dumpRecords(c.App.Writer, r, s, types, logger); err != nil {
			return err
		}

		if sum, ok := r.Checksum(); ok {
			fmt.Fprintf(c.App.Writer, "xxhash64\t%016x\n", sum)
		}

		return nil
	})
}

// printInfo reports the envelope of the stream at path.
func printInfo(w io.Writer, path string) error {
	r, err := stream.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	header := "8:"
	if r.Compressed() {
		header = "8C:"
	}

	fmt.Fprintf(w, "file:      %s\n", path)
	fmt.Fprintf(w, "header:    %s\n", header)
	fmt.Fprintf(w, "container: %s\n", r.Container())
	fmt.Fprintf(w, "length:    %d\n", r.Length())

	if r.Length() > 0 {
		tag, err := r.PeekTag()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "first:     %s\n", tag)
	}

	return nil
}

// dumpRecords decodes every record of r with the decoder its schema entry names.
func dumpRecords(w io.Writer, r *stream.Reader, s schema, types *registry.Registry[any], logger *zap.Logger) error {
	for i := range r.Length() {
		rec, err := s.recordAt(i)
		if err != nil {
			return err
		}

		off := r.Offset()
		v, err := types.Decode(rec.Type, r)
		if err != nil {
			return fmt.Errorf("record %d (%s): %w", i, rec.Name, err)
		}

		logger.Debug("record decoded",
			zap.Int("index", i),
			zap.String("name", rec.Name),
			zap.String("type", rec.Type),
			zap.Int64("offset", off))
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, rec.Name, rec.Type, formatValue(v))
	}

	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "wxfdump"
	app.Usage = "inspect Wolfram Exchange Format files"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "log decoder activity",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "info",
			Usage:     "print the header, compression and declared length",
			ArgsUsage: "FILE",
			Action:    infoCommand,
		},
		{
			Name:      "dump",
			Usage:     "decode every record using a TOML schema",
			ArgsUsage: "FILE",
			Action:    dumpCommand,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "schema, s",
					Usage: "schema file describing the record types",
				},
				cli.BoolFlag{
					Name:  "checksum",
					Usage: "print the xxHash64 of the decoded stream after the last record",
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
