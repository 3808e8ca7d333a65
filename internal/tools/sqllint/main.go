// Command sqllint checks that every inline query constant starts with a
// "--sql <uuid>" audit marker and that no marker is used twice.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	sqlKeywordPattern = regexp.MustCompile(`(?i)\b(select|insert|update|delete|with)\b`)
	uuidMarkerPattern = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

type violation struct {
	file    string
	name    string
	line    int
	message string
}

type query struct {
	file   string
	name   string
	line   int
	marker string
}

func main() {
	flag.Parse()
	targets := flag.Args()
	if len(targets) == 0 {
		targets = []string{"."}
	}

	var queries []query
	var violations []violation

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sqllint: %v\n", err)
			os.Exit(1)
		}
		if !info.IsDir() {
			if filepath.Ext(target) == ".go" {
				qs, vs, err := lintSource(target, nil)
				if err != nil {
					fmt.Fprintf(os.Stderr, "sqllint: %v\n", err)
					os.Exit(1)
				}
				queries = append(queries, qs...)
				violations = append(violations, vs...)
			}
			continue
		}
		walkErr := filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_") || d.Name() == "vendor" {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
				return nil
			}
			qs, vs, err := lintSource(path, nil)
			if err != nil {
				return err
			}
			queries = append(queries, qs...)
			violations = append(violations, vs...)
			return nil
		})
		if walkErr != nil {
			fmt.Fprintf(os.Stderr, "sqllint: %v\n", walkErr)
			os.Exit(1)
		}
	}
	violations = append(violations, duplicateMarkers(queries)...)

	if len(violations) > 0 {
		fmt.Fprintln(os.Stderr, "sqllint: invalid SQL audit markers")
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "  %s:%d %s (%s)\n", v.file, v.line, v.message, v.name)
		}
		os.Exit(1)
	}
}

// lintSource inspects the Q-prefixed string constants of one file. src is
// passed to parser.ParseFile; nil reads path from disk.
func lintSource(path string, src any) ([]query, []violation, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, nil, err
	}
	var (
		queries    []query
		violations []violation
	)
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST {
			continue
		}
		for _, spec := range gd.Specs {
			vs := spec.(*ast.ValueSpec)
			for i, value := range vs.Values {
				if i >= len(vs.Names) || !isQueryName(vs.Names[i].Name) {
					continue
				}
				bl, ok := value.(*ast.BasicLit)
				if !ok || bl.Kind != token.STRING {
					continue
				}
				raw, err := unquote(bl.Value)
				if err != nil || !sqlKeywordPattern.MatchString(raw) {
					continue
				}
				pos := fset.Position(bl.Pos())
				marker := firstLine(raw)
				if !uuidMarkerPattern.MatchString(marker) {
					violations = append(violations, violation{
						file:    path,
						line:    pos.Line,
						name:    vs.Names[i].Name,
						message: "missing or invalid --sql <uuid> marker",
					})
					continue
				}
				queries = append(queries, query{file: path, name: vs.Names[i].Name, line: pos.Line, marker: marker})
			}
		}
	}
	return queries, violations, nil
}

func duplicateMarkers(queries []query) []violation {
	seen := make(map[string]query, len(queries))
	var violations []violation
	for _, q := range queries {
		if first, ok := seen[q.marker]; ok {
			violations = append(violations, violation{
				file:    q.file,
				line:    q.line,
				name:    q.name,
				message: fmt.Sprintf("marker already used by %s", first.name),
			})
			continue
		}
		seen[q.marker] = q
	}
	return violations
}

// isQueryName matches the QSelectFoo naming of inline queries.
func isQueryName(name string) bool {
	r := []rune(name)
	return len(r) > 1 && r[0] == 'Q' && unicode.IsUpper(r[1])
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\n\r \t")
	if idx := strings.IndexAny(s, "\n\r"); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}

func unquote(v string) (string, error) {
	if len(v) == 0 {
		return v, nil
	}
	if v[0] == '`' {
		return v[1 : len(v)-1], nil
	}
	return strconv.Unquote(v)
}
