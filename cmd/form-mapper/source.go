package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"form-mapper/internal/analyze"
	"form-mapper/internal/common"
	"form-mapper/internal/cueschema"
	"form-mapper/internal/extract"
	"form-mapper/internal/mapper"
	"form-mapper/internal/schema"
	"form-mapper/internal/shape"
)

// source is a data shape loaded from a schema file or Go package, with the
// defaults its document declares.
type source struct {
	name     string
	shape    *shape.Shape
	defaults schema.Options
}

func (o *options) load(args []string) (*source, error) {
	if o.goPattern != "" {
		if len(args) > 0 {
			return nil, errors.New("--go does not take a schema file argument")
		}

		return o.loadGo()
	}

	if len(args) != 1 {
		return nil, fmt.Errorf("expected one schema file, got %d arguments", len(args))
	}

	path := args[0]

	var (
		src *source
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		src, err = o.loadYAML(path)
	case ".cue":
		src, err = o.loadCUE(path)
	default:
		return nil, fmt.Errorf("unsupported schema file %s: expected .yaml, .yml or .cue", path)
	}

	if err != nil {
		return nil, err
	}

	o.log.WithFields(logrus.Fields{"source": path, "type": src.name}).Debug("loaded shape")
	o.dump("shape "+src.name, src.shape)

	return src, nil
}

func (o *options) loadYAML(path string) (*source, error) {
	doc, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}

	name := o.typeName
	if name == "" {
		name = doc.Root
	}

	if name == "" {
		return nil, fmt.Errorf("%s declares no root type, use --type (one of %s)", path, strings.Join(doc.Names(), ", "))
	}

	s, err := doc.Shape(name)
	if err != nil {
		return nil, err
	}

	return &source{name: name, shape: s, defaults: doc.Options}, nil
}

func (o *options) loadCUE(path string) (*source, error) {
	sch, err := cueschema.LoadFile(path)
	if err != nil {
		return nil, err
	}

	name := o.typeName
	if name == "" {
		if !common.IsSingle(sch.Names()) {
			return nil, fmt.Errorf("%s has %d definitions, use --type (one of %s)",
				path, len(sch.Names()), strings.Join(sch.Names(), ", "))
		}

		name = sch.Names()[0]
	}

	s, err := sch.Shape(name)
	if err != nil {
		return nil, err
	}

	return &source{name: strings.TrimPrefix(name, "#"), shape: s}, nil
}

func (o *options) loadGo() (*source, error) {
	if o.typeName == "" {
		return nil, errors.New("--go needs --type")
	}

	graph, err := analyze.NewAnalyzer().LoadPackages(o.goPattern)
	if err != nil {
		return nil, err
	}

	s, err := graph.Find(o.typeName)
	if err != nil {
		return nil, err
	}

	o.log.WithFields(logrus.Fields{"package": o.goPattern, "type": o.typeName}).Debug("loaded shape")
	o.dump("shape "+o.typeName, s)

	return &source{name: o.typeName, shape: s}, nil
}

// settings resolves the mapping config and extraction mode. Flags set on the
// command line win over the defaults of the schema document.
func (o *options) settings(cmd *cobra.Command, defaults schema.Options) (mapper.Config, extract.Mode, error) {
	cfg := defaults.Config()
	mode := defaults.Mode

	var err error

	flags := cmd.Flags()

	if flags.Changed("depth") {
		if cfg.Depth, err = mapper.ParseDepth(o.depth); err != nil {
			return cfg, mode, err
		}
	}

	if flags.Changed("nullability") {
		if cfg.Nullability, err = mapper.ParseNullability(o.nullability); err != nil {
			return cfg, mode, err
		}
	}

	if flags.Changed("mode") {
		if mode, err = extract.ParseMode(o.mode); err != nil {
			return cfg, mode, err
		}
	}

	o.log.WithFields(logrus.Fields{"config": cfg.String(), "mode": mode.String()}).Debug("resolved settings")

	return cfg, mode, nil
}
