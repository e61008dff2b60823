package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/hithread/service/spawn"
	"github.com/viant/hithread/tracing"
)

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_Default(t *testing.T) {
	output, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, 9, strings.Count(output, "from the spawned thread!"))
	assert.Equal(t, 4, strings.Count(output, "from the main thread!"))
	assert.Contains(t, output, "hi number 9 from the spawned thread!\n")
	assert.NotContains(t, output, "hi number 10")
	assert.NotContains(t, output, "hi number 5 from the main thread!")
}

func TestRoot_Config(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/hithread/cmd.yaml"
	require.NoError(t, afs.New().Upload(ctx, URL, 0644, strings.NewReader("spawned:\n  bound: 3\nmain:\n  bound: 2\n")))

	output, err := execute(t, "--config", URL)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(output, "from the spawned thread!"))
	assert.Equal(t, 1, strings.Count(output, "from the main thread!"))

	_, err = execute(t, "--config", "mem://localhost/hithread/none.yaml")
	assert.Error(t, err)
}

func TestRoot_PanicIsFatal(t *testing.T) {
	var fatalErr error
	prev := fatal
	fatal = func(err error) { fatalErr = err }
	defer func() { fatal = prev }()

	output, err := execute(t, "--panic-at", "3")
	require.NoError(t, err)
	require.Error(t, fatalErr)
	assert.ErrorIs(t, fatalErr, spawn.ErrPanicked)
	assert.Contains(t, fatalErr.Error(), "induced panic at 3")
	assert.Equal(t, 2, strings.Count(output, "from the spawned thread!"))
	assert.Equal(t, 4, strings.Count(output, "from the main thread!"))
}

func TestRoot_RejectsArgs(t *testing.T) {
	_, err := execute(t, "extra")
	assert.Error(t, err)
}

func TestRoot_Trace(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "trace.json")
	_, err := execute(t, "--trace", traceFile, "--log-level", "debug")
	require.NoError(t, err)
	require.NoError(t, tracing.Shutdown(context.Background()))

	data, err := os.ReadFile(traceFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hithread.Run")
}

const exitChildEnv = "HITHREAD_EXIT_CHILD_ARGS"

func TestExecute_ExitCode(t *testing.T) {
	if args, ok := os.LookupEnv(exitChildEnv); ok {
		os.Args = append([]string{"hithread"}, strings.Fields(args)...)
		Execute()
		return
	}

	testCases := []struct {
		name         string
		args         string
		expectCode   int
		expectOutput string
	}{
		{name: "clean join", args: "", expectCode: 0, expectOutput: "hi number 9 from the spawned thread!"},
		{name: "spawned panic is fatal", args: "--panic-at 3", expectCode: 1, expectOutput: "induced panic at 3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			child := exec.Command(os.Args[0], "-test.run=^TestExecute_ExitCode$")
			child.Env = append(os.Environ(), exitChildEnv+"="+tc.args)
			output, err := child.CombinedOutput()
			assert.Contains(t, string(output), tc.expectOutput)
			if tc.expectCode == 0 {
				require.NoError(t, err, string(output))
				return
			}
			var exitErr *exec.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tc.expectCode, exitErr.ExitCode())
		})
	}
}
