// Package release runs the plhub release pipeline: verify the tree is
// clean, run the test suite, tag the release and push the tag. Every step
// shells out through an injectable command seam so the pipeline is testable
// without touching git.
package release

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pohlang/plhub/internal/runtime"
	"github.com/pohlang/plhub/internal/version"
)

// Options controls the release pipeline
type Options struct {
	// DryRun runs the checks and prints the plan without tagging or pushing
	DryRun bool

	// NoPush creates the tag but does not push it
	NoPush bool

	// SkipTests skips the test step
	SkipTests bool

	// Tag overrides the default tag name (v<plhub>-poh<runtime>)
	Tag string
}

// Commander interface for testing
type Commander interface {
	Run() error
}

// Pipeline executes release steps from a repository root
type Pipeline struct {
	// Root is the repository root the steps run in
	Root string

	// PlhubRoot is the plhub install root used to locate the runtime binary
	PlhubRoot string

	// Out receives step progress
	Out io.Writer

	execCommand func(name string, args ...string) Commander
}

// NewPipeline creates a release pipeline
func NewPipeline(root, plhubRoot string, out io.Writer) *Pipeline {
	return &Pipeline{
		Root:      root,
		PlhubRoot: plhubRoot,
		Out:       out,
		execCommand: func(name string, args ...string) Commander {
			return exec.Command(name, args...)
		},
	}
}

// SetExecCommand overrides subprocess creation, for tests
func (p *Pipeline) SetExecCommand(fn func(name string, args ...string) Commander) {
	p.execCommand = fn
}

// Run executes the pipeline
func (p *Pipeline) Run(opts Options) error {
	tag := opts.Tag
	if tag == "" {
		tag = fmt.Sprintf("v%s-poh%s", version.Version, p.runtimeVersion())
	}

	fmt.Fprintf(p.Out, "Release tag: %s\n", tag)

	if err := p.checkCleanTree(); err != nil {
		return err
	}

	if opts.SkipTests {
		fmt.Fprintln(p.Out, "Skipping tests")
	} else {
		if err := p.runTests(); err != nil {
			return err
		}
	}

	if opts.DryRun {
		fmt.Fprintln(p.Out, "Dry run: skipping tag and push")
		return nil
	}

	if err := p.createTag(tag); err != nil {
		return err
	}

	if opts.NoPush {
		fmt.Fprintln(p.Out, "Skipping push")
		return nil
	}

	return p.pushTag(tag)
}

// runtimeVersion reports the installed runtime's version, or "unknown" when
// the binary is missing or does not answer
func (p *Pipeline) runtimeVersion() string {
	bin, err := runtime.FindBinary(p.PlhubRoot)
	if err != nil {
		return "unknown"
	}

	var out bytes.Buffer
	c := p.execCommand(bin, "--version")
	if cmd, ok := c.(*exec.Cmd); ok {
		cmd.Stdout = &out
	}

	if err := c.Run(); err != nil {
		return "unknown"
	}

	v := strings.TrimSpace(out.String())
	if v == "" {
		return "unknown"
	}

	// Output may look like "pohlang 0.5.2"; keep the last field
	fields := strings.Fields(v)
	return fields[len(fields)-1]
}

// checkCleanTree fails when the working tree has uncommitted changes
func (p *Pipeline) checkCleanTree() error {
	fmt.Fprintln(p.Out, "Checking working tree...")

	var out bytes.Buffer
	c := p.execCommand("git", "status", "--porcelain")
	if cmd, ok := c.(*exec.Cmd); ok {
		cmd.Dir = p.Root
		cmd.Stdout = &out
	}

	if err := c.Run(); err != nil {
		return fmt.Errorf("git status failed: %w", err)
	}

	if strings.TrimSpace(out.String()) != "" {
		return fmt.Errorf("working tree is not clean, commit or stash changes first")
	}

	return nil
}

func (p *Pipeline) runTests() error {
	fmt.Fprintln(p.Out, "Running tests...")

	c := p.execCommand("go", "test", "./...")
	if cmd, ok := c.(*exec.Cmd); ok {
		cmd.Dir = p.Root
		cmd.Stdout = p.Out
		cmd.Stderr = p.Out
	}

	if err := c.Run(); err != nil {
		return fmt.Errorf("tests failed: %w", err)
	}

	return nil
}

func (p *Pipeline) createTag(tag string) error {
	fmt.Fprintf(p.Out, "Tagging %s...\n", tag)

	c := p.execCommand("git", "tag", "-a", tag, "-m", fmt.Sprintf("Release %s", tag))
	if cmd, ok := c.(*exec.Cmd); ok {
		cmd.Dir = p.Root
	}

	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

func (p *Pipeline) pushTag(tag string) error {
	fmt.Fprintf(p.Out, "Pushing %s...\n", tag)

	c := p.execCommand("git", "push", "origin", tag)
	if cmd, ok := c.(*exec.Cmd); ok {
		cmd.Dir = p.Root
	}

	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to push tag: %w", err)
	}

	return nil
}
