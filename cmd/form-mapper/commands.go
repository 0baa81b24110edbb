package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"form-mapper/internal/control"
	"form-mapper/internal/extract"
	"form-mapper/internal/gen"
	"form-mapper/internal/mapper"
	"form-mapper/internal/shape"
)

func newMapCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "map [schema]",
		Short: "Print the control tree shape of a type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := opts.load(args)
			if err != nil {
				return err
			}

			cfg, _, err := opts.settings(cmd, src.defaults)
			if err != nil {
				return err
			}

			node, err := mapper.Map(src.shape, cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), control.String(node))

			return err
		},
	}
}

// report is the YAML output of the extract command.
type report struct {
	Type        string             `yaml:"type"`
	Depth       mapper.Depth       `yaml:"depth"`
	Nullability mapper.Nullability `yaml:"nullability"`
	Mode        extract.Mode       `yaml:"mode"`
	Control     string             `yaml:"control"`
	Value       string             `yaml:"value"`
}

func newExtractCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "extract [schema]",
		Short: "Print the value shape yielded by the control tree of a type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := opts.run(cmd, args)
			if err != nil {
				return err
			}

			switch output {
			case "text":
				_, err = fmt.Fprintln(cmd.OutOrStdout(), r.Value)
				return err

			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)

				if err := enc.Encode(r); err != nil {
					return err
				}

				return enc.Close()

			default:
				return fmt.Errorf("unknown output format %q, expected text or yaml", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or yaml")

	return cmd
}

func newGenCmd(opts *options) *cobra.Command {
	cfg := gen.DefaultConfig()

	var stdout bool

	cmd := &cobra.Command{
		Use:   "gen [schema]",
		Short: "Write Go types for the value yielded by the control tree of a type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, value, err := opts.run(cmd, args)
			if err != nil {
				return err
			}

			file, err := gen.NewGenerator(cfg).Generate(gen.Root{Name: r.Type, Shape: value})
			if err != nil {
				return err
			}

			if stdout {
				_, err = cmd.OutOrStdout().Write(file.Content)
				return err
			}

			paths, err := gen.WriteFiles([]gen.GeneratedFile{*file}, cfg.OutputDir)
			if err != nil {
				return err
			}

			for _, p := range paths {
				opts.log.WithField("file", p).Info("generated")
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.PackageName, "package", cfg.PackageName, "package name of the generated file")
	flags.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output directory")
	flags.StringVar(&cfg.Filename, "file", cfg.Filename, "generated file name")
	flags.BoolVar(&cfg.GenerateComments, "comments", cfg.GenerateComments, "add doc comments to generated types")
	flags.BoolVar(&stdout, "stdout", false, "print the generated code instead of writing it")

	return cmd
}

// run loads the source, maps it and extracts the value shape.
func (o *options) run(cmd *cobra.Command, args []string) (*report, *shape.Shape, error) {
	src, err := o.load(args)
	if err != nil {
		return nil, nil, err
	}

	cfg, mode, err := o.settings(cmd, src.defaults)
	if err != nil {
		return nil, nil, err
	}

	node, err := mapper.Map(src.shape, cfg)
	if err != nil {
		return nil, nil, err
	}

	o.dump("control "+src.name, node)

	value, err := extract.Extract(node, mode)
	if err != nil {
		return nil, nil, err
	}

	return &report{
		Type:        src.name,
		Depth:       cfg.Depth,
		Nullability: cfg.Nullability,
		Mode:        mode,
		Control:     control.String(node),
		Value:       value.String(),
	}, value, nil
}
