// Package protopatch rewrites malformed protobuf schema files and drives
// their compilation.
//
// Some upstream proto files ship without package or go_package
// declarations, which the protobuf toolchain refuses to compile. This
// package patches such files line by line, inserting the missing
// declarations immediately after the syntax marker, and invokes protoc on
// the patched copies. It is a one-shot build-time step with no runtime
// interaction with the rest of the module.
package protopatch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Options controls which declarations Patch inserts.
type Options struct {
	// Package is the proto package name to insert (e.g., "grr").
	// Empty means no package declaration is inserted.
	Package string

	// GoPackage is the Go import path to insert as an go_package option.
	// Empty means no option is inserted.
	GoPackage string
}

// Patch copies the proto schema from src to dst, inserting the missing
// package and go_package declarations immediately after the line starting
// with "syntax =". Declarations already present in the input are never
// duplicated. Line endings are normalized to "\n"; the output always ends
// with a newline.
func Patch(dst io.Writer, src io.Reader, opts Options) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	lines := splitLines(string(data))

	insertPackage := opts.Package != "" && !hasDeclaration(lines, "package ")
	insertGoPackage := opts.GoPackage != "" && !hasDeclaration(lines, "option go_package")

	for _, line := range lines {
		if _, err := fmt.Fprintln(dst, line); err != nil {
			return err
		}
		if !strings.HasPrefix(line, "syntax =") {
			continue
		}
		if insertPackage {
			if _, err := fmt.Fprintf(dst, "package %s;\n", opts.Package); err != nil {
				return err
			}
			insertPackage = false
		}
		if insertGoPackage {
			if _, err := fmt.Fprintf(dst, "option go_package = %q;\n", opts.GoPackage); err != nil {
				return err
			}
			insertGoPackage = false
		}
	}

	return nil
}

// PatchFile patches the schema at src, writing the result to dst.
// Parent directories of dst are created as needed.
func PatchFile(src, dst string, opts Options) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if err := Patch(out, in, opts); err != nil {
		out.Close()
		return fmt.Errorf("patch %s: %w", src, err)
	}
	return out.Close()
}

// splitLines splits s on "\n", tolerating "\r\n" and a missing trailing
// newline.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func hasDeclaration(lines []string, prefix string) bool {
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), prefix) {
			return true
		}
	}
	return false
}
