//go:build mage

// Package main provides build targets for minitrello using Mage.
//
// Usage:
//
//	mage build            Compile minitrello, the daemon and the http store to bin/
//	mage test:all         Run all tests
//	mage test:unit        Run tests, skipping the CLI integration packages
//	mage test:race        Run the board session tests with the race detector
//	mage lint             Run golangci-lint
//	mage ci               Lint, then run all tests
//	mage clean            Remove build artifacts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo     = "go"
	binaryDir = "bin"
)

var binaries = map[string]string{
	"minitrello":        ".",
	"minitrello-daemon": "./cmd/daemon",
	"minitrello-httpd":  "./cmd/httpd",
}

// Build compiles every binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	for name, pkg := range binaries {
		if err := sh.RunV(binGo, "build", "-o", filepath.Join(binaryDir, name), pkg); err != nil {
			return err
		}
	}
	return nil
}

// CI runs the checks a pull request must pass.
func CI() {
	mg.SerialDeps(Lint, Test{}.All)
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll(binaryDir)
}
