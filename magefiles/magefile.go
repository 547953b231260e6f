//go:build mage

// Package main contains Mage build targets for books-explorer developer tooling.
package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "books-explorer"
	cmdPkg     = "./cmd/books-explorer"
	lambdaDir  = "bin/lambda"
	lambdaZip  = "bin/function.zip"
	lambdaArch = "arm64"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := goBuild(out, nil); err != nil {
		return err
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Package cross-compiles the Lambda bootstrap for the provided.al2023 runtime
// and zips it into bin/function.zip.
func Package() error {
	mg.Deps(Test)

	if err := os.MkdirAll(lambdaDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", lambdaDir, err)
	}
	bootstrap := filepath.Join(lambdaDir, "bootstrap")
	// go-sqlite3 needs cgo, so the access log is unavailable in this build.
	env := map[string]string{"GOOS": "linux", "GOARCH": lambdaArch, "CGO_ENABLED": "0"}
	if err := goBuild(bootstrap, env, "-tags", "lambda.norpc"); err != nil {
		return err
	}
	if err := zipFile(lambdaZip, bootstrap, "bootstrap"); err != nil {
		return err
	}
	fmt.Printf("Packaged %s\n", lambdaZip)
	return nil
}

// goBuild runs go build for cmdPkg with extra environment and flags.
func goBuild(out string, env map[string]string, flags ...string) error {
	args := append([]string{"build", "-o", out}, flags...)
	args = append(args, cmdPkg)
	if err := sh.RunWithV(env, "go", args...); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	return nil
}

// zipFile writes a zip archive at dst holding src under name, executable.
func zipFile(dst, src, name string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	hdr := &zip.FileHeader{Name: name, Method: zip.Deflate}
	hdr.SetMode(0o755)
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return zw.Close()
}

// Stats prints Go production and test line counts, the size of the embedded
// display client, and the documentation word count.
func Stats() error {
	var st projectStats
	if err := filepath.WalkDir(".", st.visit); err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", st.goLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", st.testLines)
	fmt.Printf("Lines of code (display client): %d\n", st.webLines)
	fmt.Printf("Words (documentation):          %d\n", st.docWords)
	return nil
}

type projectStats struct {
	goLines, testLines, webLines, docWords int
}

// visit tallies one file. Directories the go tool ignores, names starting
// with "." or "_" such as .git and _examples, are skipped.
func (st *projectStats) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		return err
	}
	if d.IsDir() {
		if path != "." && strings.ContainsAny(d.Name()[:1], "._") {
			return filepath.SkipDir
		}
		return nil
	}

	var count *int
	lines := true
	switch ext := filepath.Ext(path); {
	case strings.HasSuffix(path, "_test.go"):
		count = &st.testLines
	case ext == ".go":
		count = &st.goLines
	case (ext == ".html" || ext == ".js") && strings.Contains(filepath.ToSlash(path), "web/static/"):
		count = &st.webLines
	case ext == ".md" || ext == ".yaml" || ext == ".yml":
		count, lines = &st.docWords, false
	default:
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if !lines {
		*count += len(strings.Fields(string(data)))
		return nil
	}
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			*count++
		}
	}
	return nil
}
