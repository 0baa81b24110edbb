package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"form-mapper/internal/common"
	"form-mapper/internal/match"
	"form-mapper/internal/shape"
)

// Config holds configuration for code generation.
type Config struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is where generated files are written. Unformatted output is
	// dropped there too when formatting fails.
	OutputDir string
	// Filename is the name of the generated file.
	Filename string
	// GenerateComments adds a doc comment to every declaration.
	GenerateComments bool
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		PackageName:      "forms",
		OutputDir:        "./generated",
		Filename:         "values_gen.go",
		GenerateComments: true,
	}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "values_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Root is a shape to declare under a given type name.
type Root struct {
	Name  string
	Shape *shape.Shape
}

// Generator renders shapes as Go declarations. A Generator is not safe for
// concurrent use; each Generate call starts from scratch.
type Generator struct {
	config Config

	decls    []*typeDecl
	byShape  map[*shape.Shape]*typeDecl
	byName   map[string]*typeDecl
	building map[*shape.Shape]bool
	imports  map[string]bool
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config Config) *Generator {
	return &Generator{config: config}
}

// Generate renders one file declaring every root and the records reachable
// from it. Declarations appear in the order they are first reached.
func (g *Generator) Generate(roots ...Root) (*GeneratedFile, error) {
	g.decls = nil
	g.byShape = make(map[*shape.Shape]*typeDecl)
	g.byName = make(map[string]*typeDecl)
	g.building = make(map[*shape.Shape]bool)
	g.imports = make(map[string]bool)

	if !token.IsIdentifier(g.config.PackageName) {
		return nil, fmt.Errorf("invalid package name %q", g.config.PackageName)
	}

	if common.IsEmpty(roots) {
		return nil, errors.New("nothing to generate: no roots given")
	}

	for _, root := range roots {
		if err := shape.Validate(root.Shape); err != nil {
			return nil, fmt.Errorf("generating %s: %w", root.Name, err)
		}

		g.declare(root)
	}

	data := &templateData{
		PackageName: g.config.PackageName,
		Decls:       g.decls,
	}

	for path := range g.imports {
		data.Imports = append(data.Imports, path)
	}

	sort.Strings(data.Imports)

	filename := g.config.Filename
	if filename == "" {
		filename = DefaultConfig().Filename
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}

// declare emits a named declaration for a root. Records become structs of
// that name; other shapes become defined types over their Go expression.
func (g *Generator) declare(root Root) {
	name := GoName(root.Name)

	if root.Shape.IsRecord() {
		decl := g.record(root.Shape, name)
		if decl.Name != name && g.byName[name] == nil {
			g.add(&typeDecl{Name: name, Type: decl.Name, Comment: g.comment(name, root.Shape)})
		}

		return
	}

	decl := &typeDecl{Name: g.unique(name), Comment: g.comment(name, root.Shape)}
	g.add(decl)
	decl.Type = g.typeExpr(root.Shape, name+"Item", false)
}

// typeExpr returns the Go type for s. hint names anonymous records.
func (g *Generator) typeExpr(s *shape.Shape, hint string, optional bool) string {
	var base string

	switch s.Kind {
	case shape.KindList:
		return "[]" + g.typeExpr(s.Elem, hint+"Item", false)

	case shape.KindRecord:
		base = g.record(s, hint).Name

		// A struct cannot contain itself by value.
		if g.building[g.canonical(s)] {
			return "*" + base
		}

	default:
		base = g.leaf(s)
		if base == "any" {
			return base
		}
	}

	if s.Nullable || optional {
		return "*" + base
	}

	return base
}

func (g *Generator) leaf(s *shape.Shape) string {
	switch s.Leaf {
	case shape.LeafNumber:
		return "float64"
	case shape.LeafText:
		return "string"
	case shape.LeafBoolean:
		return "bool"
	case shape.LeafDate:
		return g.qualified("time", "Time")
	default:
		return "any"
	}
}

// record returns the struct declared for s, declaring it on first use.
// Copies of a named record that differ only in nullability share one struct.
func (g *Generator) record(s *shape.Shape, hint string) *typeDecl {
	s = g.canonical(s)
	if decl, ok := g.byShape[s]; ok {
		return decl
	}

	name := hint
	if s.Name != "" {
		name = GoName(s.Name)
	}

	decl := &typeDecl{Name: g.unique(name), Struct: true}
	decl.Comment = g.comment(decl.Name, s)
	g.byShape[s] = decl
	g.add(decl)

	g.building[s] = true
	defer delete(g.building, s)

	used := make(map[string]bool, len(s.Fields))

	for _, f := range s.Fields {
		fieldName := GoName(f.Name)
		for i := 2; used[fieldName]; i++ {
			fieldName = GoName(f.Name) + strconv.Itoa(i)
		}

		used[fieldName] = true

		tag := f.Name
		if f.Optional {
			tag += ",omitempty"
		}

		decl.Fields = append(decl.Fields, fieldDecl{
			Name: fieldName,
			Type: g.typeExpr(f.Shape, decl.Name+fieldName, f.Optional),
			Tag:  fmt.Sprintf("json:%q", tag),
		})
	}

	return decl
}

// canonical maps a nullable copy of an already declared named record to the
// record itself.
func (g *Generator) canonical(s *shape.Shape) *shape.Shape {
	if _, ok := g.byShape[s]; ok || s.Name == "" {
		return s
	}

	for known := range g.byShape {
		if known.Name == s.Name && shape.Equal(shape.Widen(known, true), shape.Widen(s, true)) {
			return known
		}
	}

	return s
}

func (g *Generator) qualified(pkgPath, name string) string {
	g.imports[pkgPath] = true
	return common.Qualified(pkgPath, name)
}

func (g *Generator) add(decl *typeDecl) {
	g.decls = append(g.decls, decl)
	g.byName[decl.Name] = decl
}

func (g *Generator) unique(name string) string {
	candidate := name
	for i := 2; g.byName[candidate] != nil; i++ {
		candidate = name + strconv.Itoa(i)
	}

	return candidate
}

func (g *Generator) comment(name string, s *shape.Shape) string {
	if !g.config.GenerateComments {
		return ""
	}

	if s.IsRecord() {
		return fmt.Sprintf("%s is the value of a %s group.", name, displayName(s, name))
	}

	return fmt.Sprintf("%s is a %s value.", name, s.Kind)
}

// GoName converts a field or type name to an exported Go identifier:
// "maxCapacity" -> "MaxCapacity", "order_id" -> "OrderID".
func GoName(name string) string {
	var sb strings.Builder

	for _, tok := range match.TokenizeIdent(strings.TrimPrefix(name, "#")) {
		if upper := strings.ToUpper(tok); initialisms[upper] {
			sb.WriteString(upper)
			continue
		}

		first, size := utf8.DecodeRuneInString(tok)
		sb.WriteRune(unicode.ToUpper(first))
		sb.WriteString(tok[size:])
	}

	out := sb.String()
	if out == "" || !token.IsIdentifier(out) {
		out = "X" + strings.Map(identRune, out)
	}

	return out
}

func displayName(s *shape.Shape, fallback string) string {
	if s.Name != "" {
		return s.Name
	}

	return fallback
}

func identRune(r rune) rune {
	if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
		return r
	}

	return -1
}

var initialisms = map[string]bool{
	"ID": true, "URL": true, "URI": true, "API": true, "HTTP": true,
	"JSON": true, "UUID": true, "IP": true, "SQL": true, "XML": true,
}

type templateData struct {
	PackageName string
	Imports     []string
	Decls       []*typeDecl
}

type typeDecl struct {
	Name    string
	Comment string
	Struct  bool
	Fields  []fieldDecl
	Type    string // Underlying type when not a struct
}

type fieldDecl struct {
	Name string
	Type string
	Tag  string
}

var fileTemplate = template.Must(template.New("values").Parse(`// Code generated by form-mapper. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	"{{.}}"
{{end}})
{{end}}
{{range .Decls}}
{{if .Comment}}// {{.Comment}}
{{end}}{{if .Struct}}type {{.Name}} struct {
{{range .Fields}}	{{.Name}} {{.Type}} ` + "`{{.Tag}}`" + `
{{end}}}
{{else}}type {{.Name}} {{.Type}}
{{end}}{{end}}`))
