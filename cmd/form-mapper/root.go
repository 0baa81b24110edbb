package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every command.
type options struct {
	verbose     bool
	goPattern   string
	typeName    string
	depth       string
	nullability string
	mode        string

	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{log: logrus.New()}

	cmd := &cobra.Command{
		Use:   "form-mapper",
		Short: "Derive control tree and value shapes from data models",
		Long: "form-mapper maps a data model (YAML schema, CUE definitions or Go types) to the shape\n" +
			"of an editable control tree, and extracts the shape of the value such a tree yields.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.log.SetOutput(cmd.ErrOrStderr())
			opts.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

			opts.log.SetLevel(logrus.InfoLevel)
			if opts.verbose {
				opts.log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output, including shape dumps")
	flags.StringVar(&opts.goPattern, "go", "", "load types from a Go package pattern instead of a schema file")
	flags.StringVarP(&opts.typeName, "type", "t", "", "type to map (defaults to the schema root)")
	flags.StringVar(&opts.depth, "depth", "deep", "mapping depth: deep or shallow")
	flags.StringVar(&opts.nullability, "nullability", "non-nullable", "cell nullability: nullable or non-nullable")
	flags.StringVar(&opts.mode, "mode", "complete", "extraction mode: complete or partial")

	cmd.AddCommand(newMapCmd(opts), newExtractCmd(opts), newGenCmd(opts))

	return cmd
}

// dump logs a value in full at debug level.
func (o *options) dump(msg string, v any) {
	if o.log.IsLevelEnabled(logrus.DebugLevel) {
		o.log.Debug(msg + "\n" + spew.Sdump(v))
	}
}
