package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	mdview "github.com/alnah/go-mdview"
	"github.com/alnah/go-mdview/internal/browser"
	"github.com/alnah/go-mdview/internal/config"
	"github.com/alnah/go-mdview/internal/fileutil"
	"github.com/alnah/go-mdview/internal/hints"
	"github.com/alnah/go-mdview/internal/termimg"
)

// doctorLookPath finds an installed browser. Variable for tests.
var doctorLookPath = launcher.LookPath

// doctorProbeTimeout bounds the --version call and the --launch probe.
const doctorProbeTimeout = 15 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo   `json:"chrome"`
	Terminal terminalInfo `json:"terminal"`
	Env      envInfo      `json:"environment"`
	Paths    pathsInfo    `json:"paths"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
	Sandbox  bool   `json:"sandbox"`
	Launched bool   `json:"launched,omitempty"`
	Product  string `json:"product,omitempty"`
}

// terminalInfo holds terminal display detection results.
type terminalInfo struct {
	Interactive   bool   `json:"interactive"`
	Columns       int    `json:"columns"`
	Protocol      string `json:"protocol"`
	ViewportWidth int    `json:"viewport_width"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// pathsInfo holds the fixed file locations and whether they can be written.
type pathsInfo struct {
	Scratch         string `json:"scratch"`
	ScratchWritable bool   `json:"scratch_writable"`
	Preview         string `json:"preview"`
	PreviewWritable bool   `json:"preview_writable"`
}

// doctorFlags holds doctor command options.
type doctorFlags struct {
	json   bool
	launch bool
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var f doctorFlags
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	fs.BoolVar(&f.launch, "launch", false, "start the browser once")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	ctx, cancel := context.WithTimeout(context.Background(), doctorProbeTimeout)
	defer cancel()

	result := runDoctor(ctx, env, f.launch)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, env *Environment, launch bool) *doctorResult {
	getenv := env.getenv()
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  getenv("ROD_NO_SANDBOX"),
			BrowserBin: getenv("ROD_BROWSER_BIN"),
		},
	}

	envCfg := loadEnvConfig(getenv)
	result.Chrome.Sandbox = !envCfg.NoSandbox

	checkChrome(ctx, result)
	if launch && (result.Chrome.Found || env.Launcher != nil) {
		checkLaunch(ctx, result, env, envCfg)
	}
	checkTerminal(result, env)
	checkEnvironment(result, getenv)
	checkPaths(result, envCfg)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(ctx context.Context, result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = doctorLookPath()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.CommandContext(ctx, chromePath, "--version").Output() // #nosec G204 -- detected browser path
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}
}

// checkLaunch starts the browser once and records its product string.
func checkLaunch(ctx context.Context, result *doctorResult, env *Environment, envCfg *envConfig) {
	l := env.Launcher
	if l == nil {
		l = &browser.RodLauncher{Bin: result.Chrome.Path, NoSandbox: envCfg.NoSandbox}
	}

	session, err := l.Launch(ctx, browser.Viewport{Width: mdview.DefaultExtent.Width, Height: mdview.DefaultExtent.Height})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Browser failed to start: %v", err))
		return
	}
	defer func() { _ = session.Close() }()

	result.Chrome.Launched = true
	product, err := session.Version(ctx)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not query browser version: %v", err))
		return
	}
	result.Chrome.Product = product
}

// checkTerminal reports how the terminal sink would display images.
func checkTerminal(result *doctorResult, env *Environment) {
	if env.IsTerminal != nil {
		result.Terminal.Interactive = env.IsTerminal()
	}
	result.Terminal.Columns = env.columns()
	result.Terminal.Protocol = string(termimg.Detect(env.getenv()))
	result.Terminal.ViewportWidth = mdview.ResolveViewportWidth(0, result.Terminal.Columns)

	if !result.Terminal.Interactive {
		result.Warnings = append(result.Warnings,
			"Stdout is not a terminal. Use -o file.png or --browser to see output")
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Chrome.Sandbox {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("MDVIEW_CONTAINER") == "1" {
		return true, "MDVIEW_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkPaths verifies the scratch and preview locations can be written.
func checkPaths(result *doctorResult, envCfg *envConfig) {
	result.Paths.Scratch = envCfg.ScratchPath
	if result.Paths.Scratch == "" {
		result.Paths.Scratch = config.DefaultScratchPath()
	}
	result.Paths.Preview = envCfg.PreviewPath
	if result.Paths.Preview == "" {
		result.Paths.Preview = config.DefaultPreviewPath()
	}

	result.Paths.ScratchWritable = fileutil.DirWritable(nearestDir(filepath.Dir(result.Paths.Scratch)))
	if !result.Paths.ScratchWritable {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Scratch directory not writable: %s", filepath.Dir(result.Paths.Scratch)))
	}

	result.Paths.PreviewWritable = fileutil.DirWritable(nearestDir(filepath.Dir(result.Paths.Preview)))
	if !result.Paths.PreviewWritable {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Preview directory not writable, --browser will fail: %s", filepath.Dir(result.Paths.Preview)))
	}
}

// nearestDir returns dir or its closest existing ancestor. Missing parents
// are created on first write.
func nearestDir(dir string) string {
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdview doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	if r.Chrome.Sandbox {
		fmt.Fprintln(w, "  [OK] Sandbox: enabled")
	} else {
		fmt.Fprintln(w, "  [OK] Sandbox: disabled")
	}
	if r.Chrome.Launched {
		fmt.Fprintf(w, "  [OK] Launch: %s\n", r.Chrome.Product)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Terminal")
	if r.Terminal.Interactive {
		fmt.Fprintf(w, "  [OK] Interactive: %d columns\n", r.Terminal.Columns)
	} else {
		fmt.Fprintln(w, "  [WARN] Interactive: no")
	}
	fmt.Fprintf(w, "  [OK] Graphics: %s\n", r.Terminal.Protocol)
	fmt.Fprintf(w, "  [OK] Viewport width: %dpx\n", r.Terminal.ViewportWidth)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Paths")
	printPathStatus(w, "Scratch", r.Paths.Scratch, r.Paths.ScratchWritable, "ERROR")
	printPathStatus(w, "Preview", r.Paths.Preview, r.Paths.PreviewWritable, "WARN")
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printPathStatus(w io.Writer, label, path string, writable bool, failTag string) {
	if writable {
		fmt.Fprintf(w, "  [OK] %s: %s\n", label, path)
		return
	}
	fmt.Fprintf(w, "  [%s] %s: %s (not writable)\n", failTag, label, path)
}
