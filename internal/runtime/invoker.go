package runtime

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

// Invoker shells out to the runtime binary for compiles and program runs
type Invoker struct {
	// Binary is the runtime executable path
	Binary string

	// Dir is the working directory for invocations (the project root)
	Dir string

	execCommand func(name string, args ...string) Commander
}

// NewInvoker creates an invoker for the given binary and working directory
func NewInvoker(binary, dir string) *Invoker {
	return &Invoker{
		Binary: binary,
		Dir:    dir,
		execCommand: func(name string, args ...string) Commander {
			return exec.Command(name, args...)
		},
	}
}

// Compile invokes the runtime on a single source file, producing the derived
// .pbc output as a side effect of the external tool. Exit code zero is
// success; anything else is failure with the captured error text. A missing
// binary is a failure result, not a panic or an abort of the wider cycle.
func (inv *Invoker) Compile(source string) (bool, string) {
	if inv.Binary == "" {
		return false, "PohLang runtime not found"
	}

	output := OutputPath(source)

	var stdout, stderr bytes.Buffer

	c := inv.execCommand(inv.Binary, "--compile", source, "-o", output)
	if cmd, ok := c.(*exec.Cmd); ok {
		cmd.Dir = inv.Dir
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	if err := c.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg == "" {
			msg = err.Error()
		}

		return false, fmt.Sprintf("Compilation failed: %s", msg)
	}

	return true, fmt.Sprintf("Compiled %s -> %s", filepath.Base(source), filepath.Base(output))
}

// Run executes a PohLang program, passing the runtime's output through to
// the terminal
func (inv *Invoker) Run(file string, debug bool) error {
	if inv.Binary == "" {
		return ErrNotFound
	}

	args := []string{}
	if debug {
		args = append(args, "--debug")
	}
	args = append(args, file)

	c := inv.execCommand(inv.Binary, args...)
	if cmd, ok := c.(*exec.Cmd); ok {
		cmd.Dir = inv.Dir
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		cmd.Stdin = os.Stdin
	}

	return c.Run()
}

// SetExecCommand overrides subprocess creation, for tests
func (inv *Invoker) SetExecCommand(fn func(name string, args ...string) Commander) {
	inv.execCommand = fn
}
