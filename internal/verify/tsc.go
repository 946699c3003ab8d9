package verify

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// tscArgs are the strict compiler options. --noEmit keeps tsc from writing
// JavaScript next to the generated file.
var tscArgs = []string{
	"--noEmit",
	"--strict",
	"--noImplicitAny",
	"--strictNullChecks",
	"--noEmitOnError",
	"--target", "ES2020",
	"--module", "ES2020",
	"--esModuleInterop",
	"--pretty", "false",
}

// tscDiagnostic matches lines such as
// "dist/iso-alpha2.ts(3,14): error TS2451: Cannot redeclare block-scoped variable 'x'."
var tscDiagnostic = regexp.MustCompile(`^(.+)\((\d+),(\d+)\): error (TS\d+): (.*)$`)

// TSC verifies TypeScript by running the TypeScript compiler.
type TSC struct {
	// bin is the tsc executable.
	bin string
}

// NewTSC creates a TSC verifier. An empty bin means "tsc" on PATH.
func NewTSC(bin string) *TSC {
	if bin == "" {
		bin = "tsc"
	}
	return &TSC{bin: bin}
}

// Name returns "tsc".
func (v *TSC) Name() string {
	return NameTSC
}

// Verify compiles the file standalone with strict options.
func (v *TSC) Verify(ctx context.Context, path string) error {
	bin, err := exec.LookPath(v.bin)
	if err != nil {
		return fmt.Errorf("typescript compiler not available: %w", err)
	}

	args := append(append([]string{}, tscArgs...), path)
	cmd := exec.CommandContext(ctx, bin, args...) //nolint:gosec // binary is configured by the user
	out, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("failed to run %s: %w", v.bin, err)
	}

	diags := parseTSCOutput(out)
	if len(diags) == 0 {
		diags = []Diagnostic{{File: path, Message: strings.TrimSpace(string(out))}}
	}
	return &Error{Verifier: v.Name(), Path: path, Diagnostics: diags}
}

// parseTSCOutput turns tsc's non-pretty output into diagnostics. Lines that
// do not start a diagnostic are appended to the previous message.
func parseTSCOutput(out []byte) []Diagnostic {
	diags := make([]Diagnostic, 0)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if m := tscDiagnostic.FindStringSubmatch(line); m != nil {
			lineNo, _ := strconv.Atoi(m[2])
			col, _ := strconv.Atoi(m[3])
			diags = append(diags, Diagnostic{
				File:    m[1],
				Line:    lineNo,
				Column:  col,
				Code:    m[4],
				Message: m[5],
			})
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" && len(diags) > 0 {
			diags[len(diags)-1].Message += " " + trimmed
		}
	}
	return diags
}
