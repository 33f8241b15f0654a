// Package main scaffolds a new dialect package under pkg/dialects.
//
// The generated file registers an empty dialect built on the standard
// grammar tables; keywords, grammar entries and feature tags are then
// filled in by hand.
//
// Usage:
//
//	go run ./scripts/gendialect -name=oracle -display=Oracle
package main

import (
	"bytes"
	"flag"
	"go/format"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
)

var (
	nameFlag    = flag.String("name", "", "dialect name, lowercase (required)")
	displayFlag = flag.String("display", "", "exported identifier for the dialect (default: capitalized name)")
	outFlag     = flag.String("out", "", "output file path (default: pkg/dialects/<name>/dialect.go)")
	forceFlag   = flag.Bool("force", false, "overwrite an existing file")
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

const dialectTemplate = `// Package {{.Name}} provides the {{.Display}} dialect definition.
// This package is pure data with no database driver dependencies.
package {{.Name}}

import (
	"github.com/sqlport-dev/sqlport/pkg/dialect"
)

func init() {
	dialect.Register({{.Display}})
}

// {{.Display}} is the {{.Display}} dialect. It starts from the standard
// grammar tables; dialect-specific keywords, options and feature tags go
// here.
var {{.Display}} = dialect.NewDialect("{{.Name}}").
	Standard().
	Build()
`

func main() {
	flag.Parse()

	name := *nameFlag
	if name == "" {
		log.Fatal("-name flag is required")
	}
	if !namePattern.MatchString(name) {
		log.Fatalf("invalid dialect name %q: must be lowercase letters and digits", name)
	}

	display := *displayFlag
	if display == "" {
		display = strings.ToUpper(name[:1]) + name[1:]
	}

	out := *outFlag
	if out == "" {
		out = filepath.Join("pkg", "dialects", name, "dialect.go")
	}
	if _, err := os.Stat(out); err == nil && !*forceFlag {
		log.Fatalf("%s already exists (use -force to overwrite)", out)
	}

	tmpl := template.Must(template.New("dialect").Parse(dialectTemplate))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Name, Display string }{name, display}); err != nil {
		log.Fatalf("failed to render template: %v", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatalf("generated code does not format: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		log.Fatalf("failed to create %s: %v", filepath.Dir(out), err)
	}
	if err := os.WriteFile(out, src, 0644); err != nil {
		log.Fatalf("failed to write %s: %v", out, err)
	}
	log.Printf("wrote %s", out)
	log.Printf("next: add feature tags in pkg/feature and register the package in cmd/sqlport")
}
