// Package config holds build-time constants, recognized source-file
// extensions, the test-mode normalization flag, and project-level
// configuration loading — grounded in the teacher's config package of
// the same shape and purpose.
package config

// Version is the current Hexen analyzer version, set at build time by
// -ldflags or by editing this file for local builds.
var Version = "0.1.0"

// SourceFileExt is the default recognized source file extension.
const SourceFileExt = ".hxn"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".hxn"}

// TrimSourceExt removes a recognized source extension from a
// filename, returning the original string unchanged if none matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt reports whether path ends with a recognized source
// extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode indicates the program is running under the test harness.
// No code reads it: output formatting is the same whether it is set or
// not.
var IsTestMode = false
