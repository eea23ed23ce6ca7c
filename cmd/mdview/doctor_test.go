package main

// Notes:
// - Tests use a black-box approach through runDoctorCmd output. The browser
//   is a shell script that answers --version, so the unix-only cases skip
//   on windows.
// - /.dockerenv is read from the real filesystem; hint assertions that it
//   could shadow are skipped when it exists.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-mdview/internal/hints"
)

// fakeChrome writes an executable that prints a version string.
func fakeChrome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script browser stub")
	}
	path := filepath.Join(t.TempDir(), "chrome")
	script := "#!/bin/sh\necho 'Chromium 131.0.6778.85'\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil { // #nosec G306 -- test executable
		t.Fatal(err)
	}
	return path
}

func runDoctorJSON(t *testing.T, te *testEnv, args ...string) (*doctorResult, int) {
	t.Helper()

	code := runDoctorCmd(append([]string{"--json"}, args...), te.Environment)

	var result doctorResult
	if err := json.Unmarshal(te.stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, te.stdout.String())
	}
	return &result, code
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_JSONOutput - JSON structure
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.vars["ROD_BROWSER_BIN"] = fakeChrome(t)

	result, code := runDoctorJSON(t, te)

	if result.Env.OS != runtime.GOOS || result.Env.Arch != runtime.GOARCH {
		t.Errorf("platform = %s/%s, want %s/%s", result.Env.OS, result.Env.Arch, runtime.GOOS, runtime.GOARCH)
	}
	if !result.Chrome.Found || result.Chrome.Version != "Chromium 131.0.6778.85" {
		t.Errorf("chrome = %+v", result.Chrome)
	}
	if result.Chrome.Sandbox {
		t.Error("ROD_BROWSER_BIN implies no sandbox")
	}
	if result.Terminal.Columns != 80 || result.Terminal.ViewportWidth != 640 {
		t.Errorf("terminal = %+v, want 80 columns and 640px", result.Terminal)
	}
	if result.Paths.Scratch != te.vars["MDVIEW_SCRATCH_PATH"] || !result.Paths.ScratchWritable {
		t.Errorf("paths = %+v", result.Paths)
	}
	if !result.Paths.PreviewWritable {
		t.Error("missing preview dir under a writable parent should count as writable")
	}

	if result.Status == "errors" {
		t.Errorf("status = errors: %v", result.Errors)
	}
	if code != ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, ExitSuccess)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_ChromeMissing - Error status
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_ChromeMissing(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.vars["ROD_BROWSER_BIN"] = filepath.Join(te.dir, "no-chrome")

	result, code := runDoctorJSON(t, te)

	if result.Chrome.Found {
		t.Error("Chrome.Found = true, want false")
	}
	if result.Status != "errors" || code != ExitGeneral {
		t.Errorf("status = %q, code = %d, want errors/%d", result.Status, code, ExitGeneral)
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Chrome not found at") {
		t.Errorf("errors = %v", result.Errors)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_Launch - Browser start probe
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_Launch(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.vars["ROD_BROWSER_BIN"] = fakeChrome(t)

	result, _ := runDoctorJSON(t, te, "--launch")

	if !te.launcher.called {
		t.Fatal("--launch should start the browser")
	}
	if !result.Chrome.Launched || result.Chrome.Product != "HeadlessChrome/131.0.0.0" {
		t.Errorf("chrome = %+v", result.Chrome)
	}
	if !te.launcher.session.closed {
		t.Error("probe session should be closed")
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_HumanOutput - Text sections
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_HumanOutput(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.vars["ROD_BROWSER_BIN"] = fakeChrome(t)

	runDoctorCmd(nil, te.Environment)
	output := te.stdout.String()

	for _, section := range []string{"mdview doctor", "Chrome/Chromium", "Terminal", "Environment", "Paths", "Status:"} {
		if !strings.Contains(output, section) {
			t.Errorf("output should contain section %q", section)
		}
	}
	if !strings.Contains(output, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Error("output should contain the platform")
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_Environment - Container, CI and terminal warnings
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_Environment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		vars          map[string]string
		wantContainer bool
		wantHint      string
		wantCI        bool
		wantWarning   string
	}{
		{
			name:          "explicit override",
			vars:          map[string]string{"MDVIEW_CONTAINER": "1"},
			wantContainer: true,
			wantHint:      "MDVIEW_CONTAINER=1",
			wantWarning:   "ROD_NO_SANDBOX",
		},
		{
			name:          "kubernetes",
			vars:          map[string]string{"KUBERNETES_SERVICE_HOST": "10.0.0.1"},
			wantContainer: true,
			wantHint:      "KUBERNETES_SERVICE_HOST",
		},
		{
			name:        "github actions",
			vars:        map[string]string{"GITHUB_ACTIONS": "true"},
			wantCI:      true,
			wantWarning: "ROD_NO_SANDBOX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t)
			for k, v := range tt.vars {
				te.vars[k] = v
			}

			result, _ := runDoctorJSON(t, te)

			if tt.wantContainer && !result.Env.Container {
				t.Error("container not detected")
			}
			if tt.wantHint != "" && (tt.wantHint == "MDVIEW_CONTAINER=1" || !hints.IsInContainer()) &&
				result.Env.ContainerHint != tt.wantHint {
				t.Errorf("container hint = %q, want %q", result.Env.ContainerHint, tt.wantHint)
			}
			if tt.wantCI && !result.Env.CI {
				t.Error("CI not detected")
			}
			if tt.wantWarning != "" && !containsSubstring(result.Warnings, tt.wantWarning) {
				t.Errorf("warnings = %v, want one mentioning %s", result.Warnings, tt.wantWarning)
			}
		})
	}
}

func TestRunDoctorCmd_NotATerminal(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.IsTerminal = func() bool { return false }

	result, _ := runDoctorJSON(t, te)

	if result.Terminal.Interactive {
		t.Error("Interactive = true, want false")
	}
	if !containsSubstring(result.Warnings, "not a terminal") {
		t.Errorf("warnings = %v, want not-a-terminal warning", result.Warnings)
	}
}

func TestRunDoctorCmd_BadFlag(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := runDoctorCmd([]string{"--bogus"}, &Environment{Stdout: &stdout, Stderr: &stderr})
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
