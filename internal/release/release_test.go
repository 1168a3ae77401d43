package release

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommand struct {
	err error
}

func (f *fakeCommand) Run() error {
	return f.err
}

// recorder captures every command the pipeline would run
type recorder struct {
	calls []string
	fail  map[string]error
}

func (r *recorder) exec(name string, args ...string) Commander {
	call := name + " " + strings.Join(args, " ")
	r.calls = append(r.calls, call)

	for prefix, err := range r.fail {
		if strings.HasPrefix(call, prefix) {
			return &fakeCommand{err: err}
		}
	}

	return &fakeCommand{}
}

func newTestPipeline(t *testing.T) (*Pipeline, *recorder, *bytes.Buffer) {
	t.Helper()

	// Empty PATH so the runtime version probe reports "unknown" instead of
	// shelling out to a real binary
	t.Setenv("PATH", "")

	var out bytes.Buffer
	r := &recorder{fail: map[string]error{}}

	p := NewPipeline(t.TempDir(), t.TempDir(), &out)
	p.SetExecCommand(r.exec)

	return p, r, &out
}

func TestPipeline_DryRun(t *testing.T) {
	p, r, out := newTestPipeline(t)

	err := p.Run(Options{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"git status --porcelain",
		"go test ./...",
	}, r.calls, "Dry run performs checks and tests only")

	assert.Contains(t, out.String(), "Release tag: vdev-pohunknown")
	assert.Contains(t, out.String(), "Dry run")
}

func TestPipeline_FullRun(t *testing.T) {
	p, r, _ := newTestPipeline(t)

	err := p.Run(Options{Tag: "v1.2.3"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"git status --porcelain",
		"go test ./...",
		"git tag -a v1.2.3 -m Release v1.2.3",
		"git push origin v1.2.3",
	}, r.calls)
}

func TestPipeline_NoPush(t *testing.T) {
	p, r, out := newTestPipeline(t)

	err := p.Run(Options{Tag: "v1.2.3", NoPush: true, SkipTests: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"git status --porcelain",
		"git tag -a v1.2.3 -m Release v1.2.3",
	}, r.calls)
	assert.Contains(t, out.String(), "Skipping tests")
	assert.Contains(t, out.String(), "Skipping push")
}

func TestPipeline_FailedTestsAbort(t *testing.T) {
	p, r, _ := newTestPipeline(t)
	r.fail["go test"] = errors.New("exit status 1")

	err := p.Run(Options{Tag: "v1.2.3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tests failed")

	for _, call := range r.calls {
		assert.NotContains(t, call, "git tag", "No tag after failed tests")
	}
}
