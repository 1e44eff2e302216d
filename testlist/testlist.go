// Package testlist discovers test files and test functions under a test
// root. The run controller uses it to reject roots with nothing to run
// before the engine is ever invoked.
package testlist

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// FindTestFiles walks dir and returns every _test.go file beneath it,
// skipping vendor and hidden directories.
func FindTestFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name == "vendor" || (strings.HasPrefix(name, ".") && path != dir) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), "_test.go") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk test directory %s: %w", dir, err)
	}
	return files, nil
}

// FindTestFunctions parses every test file under dir and returns the
// declared test function names, excluding TestMain.
func FindTestFunctions(dir string) ([]string, error) {
	files, err := FindTestFiles(dir)
	if err != nil {
		return nil, err
	}

	var testFunctions []string
	fset := token.NewFileSet()
	for _, filePath := range files {
		f, err := parser.ParseFile(fset, filePath, nil, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(filePath), err)
		}
		for _, decl := range f.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			if strings.HasPrefix(funcDecl.Name.Name, "Test") && funcDecl.Name.Name != "TestMain" {
				testFunctions = append(testFunctions, funcDecl.Name.Name)
			}
		}
	}
	return testFunctions, nil
}

// ModulePath reads the module path from the go.mod at dir, if present.
// An empty string means the test root is not a module root.
func ModulePath(dir string) (string, error) {
	goModPath := filepath.Join(dir, "go.mod")
	content, err := os.ReadFile(goModPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	modFile, err := modfile.Parse(goModPath, content, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod: %w", err)
	}
	return modFile.Module.Mod.Path, nil
}
