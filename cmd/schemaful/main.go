package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/mattn/go-isatty"

	schemaful "github.com/reoring/schemaful"
	"github.com/reoring/schemaful/i18n"
	"github.com/reoring/schemaful/jsonschema"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "schemaful CLI\n\nUsage:\n  schemaful project -schema schema.json [-in data.json] [-o out.json]\n  schemaful project -schema crds.yaml -crd-kind Widget [-in data.json]\n\nNotes:\n  - Input is read from stdin when -in is omitted.\n  - Schema files ending in .yaml or .yml are read as YAML.")
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "project":
		return projectCmd(args[1:], stdin, stdout, stderr)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return 0
	default:
		usage(stderr)
		return 2
	}
}

type projectFlags struct {
	schema   string
	crdKind  string
	in       string
	out      string
	driver   string
	dup      string
	maxDepth int
	maxBytes int64
	numbers  string
	compact  bool
	lang     string
	verbose  bool
}

func projectCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("project", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var f projectFlags
	fs.StringVar(&f.schema, "schema", "", "schema file (JSON, YAML, or a CRD bundle with -crd-kind)")
	fs.StringVar(&f.crdKind, "crd-kind", "", "take the schema from the CustomResourceDefinition for this kind")
	fs.StringVar(&f.in, "in", "", "input JSON file (default stdin)")
	fs.StringVar(&f.out, "o", "", "output file (default stdout)")
	fs.StringVar(&f.driver, "driver", "go-json", "JSON driver: go-json or encoding/json")
	fs.StringVar(&f.dup, "dup", "ignore", "duplicate keys: ignore, warn, or error")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	fs.Int64Var(&f.maxBytes, "max-bytes", 0, "maximum input size in bytes (0 = unlimited)")
	fs.StringVar(&f.numbers, "numbers", "json", "number representation: json, float64, or auto")
	fs.BoolVar(&f.compact, "compact", false, "never indent the output")
	fs.StringVar(&f.lang, "lang", "en", "issue language: en or ja")
	fs.BoolVar(&f.verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if f.schema == "" {
		fs.Usage()
		return 2
	}

	logf := func(format string, a ...any) {
		if f.verbose {
			fmt.Fprintf(stderr, format+"\n", a...)
		}
	}

	opt, err := f.options()
	if err != nil {
		fmt.Fprintf(stderr, "schemaful: %v\n", err)
		return 2
	}
	if f.verbose {
		opt.Logger = schemaful.LoggerFunc(logf)
	}

	schema, err := loadSchema(f.schema, f.crdKind)
	if err != nil {
		fmt.Fprintf(stderr, "schemaful: %v\n", err)
		return 1
	}
	logf("project: schema=%s driver=%s dup=%s numbers=%s", f.schema, opt.Driver.Name(), f.dup, f.numbers)

	in := stdin
	if f.in != "" {
		file, err := os.Open(f.in)
		if err != nil {
			fmt.Fprintf(stderr, "schemaful: %v\n", err)
			return 1
		}
		defer file.Close()
		in = file
	}

	v, err := schemaful.ProjectReader(in, schema, opt)
	if err != nil {
		i18n.SetLanguage(f.lang)
		writeIssues(stderr, schemaful.ToIssues(err).Localize(nil))
		return 1
	}

	var w io.Writer = stdout
	if f.out != "" {
		if err := os.MkdirAll(filepath.Dir(f.out), 0o755); err != nil {
			fmt.Fprintf(stderr, "schemaful: creating output dir: %v\n", err)
			return 1
		}
		file, err := os.Create(f.out)
		if err != nil {
			fmt.Fprintf(stderr, "schemaful: %v\n", err)
			return 1
		}
		defer file.Close()
		w = file
	}
	if err := writeJSON(w, v, !f.compact && isTerminal(w)); err != nil {
		fmt.Fprintf(stderr, "schemaful: writing output: %v\n", err)
		return 1
	}
	return 0
}

func (f projectFlags) options() (schemaful.ProjectOpt, error) {
	var opt schemaful.ProjectOpt
	d, ok := schemaful.JSONDriverByName(f.driver)
	if !ok {
		return opt, fmt.Errorf("unknown driver %q", f.driver)
	}
	opt.Driver = d
	switch f.dup {
	case "ignore":
		opt.Strictness.OnDuplicateKey = schemaful.Ignore
	case "warn":
		opt.Strictness.OnDuplicateKey = schemaful.Warn
	case "error":
		opt.Strictness.OnDuplicateKey = schemaful.Error
	default:
		return opt, fmt.Errorf("unknown -dup value %q", f.dup)
	}
	switch f.numbers {
	case "json":
		opt.Numbers = schemaful.NumberJSONNumber
	case "float64":
		opt.Numbers = schemaful.NumberFloat64
	case "auto":
		opt.Numbers = schemaful.NumberAuto
	default:
		return opt, fmt.Errorf("unknown -numbers value %q", f.numbers)
	}
	if f.maxDepth < 0 || f.maxBytes < 0 {
		return opt, errors.New("limits must not be negative")
	}
	opt.MaxDepth = f.maxDepth
	opt.MaxBytes = f.maxBytes
	return opt, nil
}

func loadSchema(path, crdKind string) (*jsonschema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if crdKind != "" {
		return jsonschema.LoadCRD(data, crdKind)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return jsonschema.ParseYAML(data)
	default:
		return jsonschema.Parse(data)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func writeJSON(w io.Writer, v any, indent bool) error {
	var buf bytes.Buffer
	enc := gojson.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

type issueJSON struct {
	Path    string            `json:"path"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Params  map[string]string `json:"params,omitempty"`
}

func writeIssues(w io.Writer, iss schemaful.Issues) {
	out := make([]issueJSON, 0, len(iss))
	for _, it := range iss {
		out = append(out, issueJSON{Path: it.Path, Code: it.Code, Message: it.Message, Params: it.Params})
	}
	_ = writeJSON(w, map[string]any{"issues": out}, false)
}
