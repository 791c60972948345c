package pip

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/frederic-klein/pip-safe/internal/pep440"
)

// reportConstraint is the first pip release with "install --report".
const reportConstraint = ">= 22.2"

// interruptGrace bounds how long a forwarded pip may take to roll back after
// an interrupt before it is killed.
const interruptGrace = 30 * time.Second

var versionLineRe = regexp.MustCompile(`^pip (\S+)`)

// Runner invokes pip as "<python> -m pip ...".
type Runner struct {
	python string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	grace  time.Duration
}

// NewRunner creates a runner attached to the process's standard streams.
func NewRunner(python string) *Runner {
	return &Runner{
		python: python,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		grace:  interruptGrace,
	}
}

func (r *Runner) command(ctx context.Context, args []string) *exec.Cmd {
	return exec.CommandContext(ctx, r.python, append([]string{"-m", "pip"}, args...)...)
}

// Forward runs pip with args unchanged and returns its exit status. An error
// is returned only when pip could not be started. Cancelling ctx interrupts
// pip instead of killing it, so an install in progress can roll back.
func (r *Runner) Forward(ctx context.Context, args []string) (int, error) {
	cmd := r.command(ctx, args)
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = r.grace
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	err := cmd.Run()
	// Once pip has run, its status is the result even when ctx ended it.
	if state := cmd.ProcessState; state != nil {
		if code := state.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, nil // killed by a signal
	}
	return 1, fmt.Errorf("running pip: %w", err)
}

// Output runs pip with args and returns its standard output. Standard error
// is discarded.
func (r *Runner) Output(ctx context.Context, args []string) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := r.command(ctx, args)
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pip %v: %w", args, err)
	}
	return stdout.Bytes(), nil
}

// Version returns the version of the pip the runner invokes.
func (r *Runner) Version(ctx context.Context) (*semver.Version, error) {
	out, err := r.Output(ctx, []string{"--version"})
	if err != nil {
		return nil, err
	}
	return ParseVersionLine(string(out))
}

// ParseVersionLine extracts the version from "pip X.Y.Z from ... (python ...)".
// Pre-release and dev builds such as "24.1b1" or "23.3.dev0" reduce to their
// release segments.
func ParseVersionLine(line string) (*semver.Version, error) {
	m := versionLineRe.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("unrecognized pip version output %q", line)
	}
	v, err := pep440.Parse(m[1])
	if err != nil {
		return nil, fmt.Errorf("parsing pip version %q: %w", m[1], err)
	}

	var seg [3]uint64
	for i, n := range v.Release() {
		if i == len(seg) {
			break
		}
		seg[i] = uint64(n)
	}
	return semver.New(seg[0], seg[1], seg[2], "", ""), nil
}

// SupportsReport reports whether pip v can produce an install report.
func SupportsReport(v *semver.Version) bool {
	c, err := semver.NewConstraint(reportConstraint)
	if err != nil {
		return false
	}
	return c.Check(v)
}
