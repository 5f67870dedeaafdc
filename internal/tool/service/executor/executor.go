package executor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ExitMarker is appended to the output of a command that exits with a non-zero code.
const ExitMarker = "\n--- Process exited with code: %d ---\n"

// SignalMarker is appended when the process was terminated by a signal.
const SignalMarker = "\n--- Process terminated by signal ---\n"

// DrainGrace bounds how long Run keeps reading after the shell exits. A
// background child that inherited the output pipes would otherwise hold the
// turn open until it exits.
const DrainGrace = 2 * time.Second

// ShellRunner runs a command line through the platform shell, streaming its
// output to the local terminal while capturing it for the model.
type ShellRunner struct {
	shell  []string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	grace  time.Duration
}

// NewShellRunner creates a ShellRunner. stdin is handed to the child as is;
// stdout and stderr receive the live echo of each line.
func NewShellRunner(stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) *ShellRunner {
	if stdout == nil {
		panic("stdout is required")
	}
	if stderr == nil {
		panic("stderr is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &ShellRunner{
		shell:  defaultShell(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
		grace:  DrainGrace,
	}
}

func defaultShell() []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C"}
	}
	return []string{"sh", "-c"}
}

// Run executes command and returns stdout followed by stderr.
// A non-zero exit is not an error: it is reported inline through ExitMarker.
// The child is never killed when ctx is cancelled; ctx only scopes the drains.
//
// Output written after the shell exits is captured for at most DrainGrace.
// Background jobs started by the command (for example "sleep 600 &") keep
// running but are no longer read from.
func (r *ShellRunner) Run(ctx context.Context, command string) (string, error) {
	args := append(append([]string{}, r.shell[1:]...), command)
	cmd := exec.Command(r.shell[0], args...)
	cmd.Stdin = r.stdin

	outR, outW, err := os.Pipe()
	if err != nil {
		return "", &CommandError{Cmd: command, Cause: err, Stage: "pipe"}
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		outR.Close()
		outW.Close()
		return "", &CommandError{Cmd: command, Cause: err, Stage: "pipe"}
	}
	cmd.Stdout = outW
	cmd.Stderr = errW

	started := time.Now()
	r.logger.Debug("command start", "command", command)

	if err := cmd.Start(); err != nil {
		outR.Close()
		outW.Close()
		errR.Close()
		errW.Close()
		return "", &SpawnError{Command: command, Cause: err}
	}
	// The child holds its own copies; ours must go so the drains see EOF.
	outW.Close()
	errW.Close()

	var stdoutAcc, stderrAcc string
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer outR.Close()
		stdoutAcc = r.drain(outR, r.stdout, "stdout")
		return nil
	})
	g.Go(func() error {
		defer errR.Close()
		stderrAcc = r.drain(errR, r.stderr, "stderr")
		return nil
	})

	waitErr := cmd.Wait()

	drained := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(r.grace):
		r.logger.Warn("output pipes still open after exit, detaching", "command", command, "grace", r.grace)
		outR.Close()
		errR.Close()
		<-drained
	}

	output := stdoutAcc + stderrAcc

	exitCode := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return output, &CommandError{Cmd: command, Cause: waitErr, Stage: "wait"}
		}
		exitCode = exitErr.ExitCode()
	}

	r.logger.Debug("command finished",
		"command", command,
		"exit_code", exitCode,
		"duration", time.Since(started))

	switch {
	case exitCode == -1:
		fmt.Fprint(r.stdout, SignalMarker)
		output += SignalMarker
	case exitCode != 0:
		marker := fmt.Sprintf(ExitMarker, exitCode)
		fmt.Fprint(r.stdout, marker)
		output += marker
	}

	return output, nil
}

// drain reads src line by line, echoing each line to echo as it arrives.
// The returned text is owned by the caller once drain returns.
func (r *ShellRunner) drain(src io.Reader, echo io.Writer, stream string) string {
	var acc strings.Builder
	br := bufio.NewReader(src)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			fmt.Fprintln(echo, line)
			acc.WriteString(line)
			acc.WriteString("\n")
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				r.logger.Warn("read error", "stream", stream, "error", err)
			}
			return acc.String()
		}
	}
}
