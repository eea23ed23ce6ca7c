package hints

// Notes:
// - Tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer and GOOS variables
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"strings"
	"testing"
)

func stubContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

func clearCI(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(k, "")
	}
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Environment-aware hints
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		inContainer bool
		ci          string
		noSandbox   string
		browserBin  string
		want        []string
		notWant     []string
	}{
		{
			name:    "in CI",
			ci:      "true",
			want:    []string{"ROD_NO_SANDBOX", "ROD_BROWSER_BIN"},
			notWant: nil,
		},
		{
			name:        "in Docker",
			inContainer: true,
			want:        []string{"ROD_NO_SANDBOX"},
		},
		{
			name:        "sandbox already disabled",
			inContainer: true,
			noSandbox:   "1",
			notWant:     []string{"ROD_NO_SANDBOX"},
		},
		{
			name:       "browser bin already set",
			browserBin: "/usr/bin/chromium",
			notWant:    []string{"ROD_BROWSER_BIN", "ROD_NO_SANDBOX"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.inContainer)
			clearCI(t)
			t.Setenv("CI", tt.ci)
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			for _, w := range tt.want {
				if !strings.Contains(hint, w) {
					t.Errorf("hint %q missing %q", hint, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(hint, nw) {
					t.Errorf("hint %q should not contain %q", hint, nw)
				}
			}
		})
	}
}

func TestForBrowserConnect_AllConfigured(t *testing.T) {
	stubContainer(t, true)
	clearCI(t)
	t.Setenv("CI", "true")
	t.Setenv("ROD_NO_SANDBOX", "1")
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chrome")

	if hint := ForBrowserConnect(); hint != "" {
		t.Errorf("expected empty hint when all configured, got %q", hint)
	}
}

// ---------------------------------------------------------------------------
// TestForBrowserLaunch - Install commands per platform
// ---------------------------------------------------------------------------

func TestForBrowserLaunch(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"linux", "apt install chromium-browser"},
		{"linux", "pacman -S chromium"},
		{"darwin", "brew install --cask chromium"},
		{"windows", "winget"},
		{"plan9", "--browser"},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.want, func(t *testing.T) {
			stubContainer(t, false)
			clearCI(t)
			orig := GOOS
			t.Cleanup(func() { GOOS = orig })
			GOOS = tt.goos

			hint := ForBrowserLaunch()

			if !strings.HasPrefix(hint, "\n  hint: ensure Chrome/Chromium is installed") {
				t.Errorf("unexpected hint prefix: %q", hint)
			}
			if !strings.Contains(hint, tt.want) {
				t.Errorf("hint %q missing %q", hint, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSimpleHints - Single-line hints
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	if hint := ForConfigNotFound(""); !strings.Contains(hint, "--config") {
		t.Errorf("hint %q missing --config", hint)
	}
	hint := ForConfigNotFound("/home/u/.config/mdview/config.yaml")
	if !strings.Contains(hint, "or create /home/u/.config/mdview/config.yaml") {
		t.Errorf("hint %q missing user config path", hint)
	}
}

func TestForStyleNotFound(t *testing.T) {
	if hint := ForStyleNotFound(nil); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
	if hint := ForStyleNotFound([]string{"github", "plain"}); !strings.Contains(hint, "github, plain") {
		t.Errorf("hint %q missing style list", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	for _, h := range []string{ForTimeout(), ForOutputDirectory(), ForDisplay()} {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
