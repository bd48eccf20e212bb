package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alibaba/longstack/pkg/stack"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	bindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadConfigDefaults(t *testing.T) {
	config, _, err := loadConfig(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "warning", config.LogLevel)
	assert.False(t, config.Diagnostic)
	assert.True(t, config.NegativeAsChar)
	assert.Equal(t, stack.DefaultMaxCapacity, config.MaxCapacity)
	assert.Empty(t, config.MetricsAddr)
}

func TestLoadConfigSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "longstack.yaml")
	data := "logLevel: debug\nmaxCapacity: 100\nnegativeAsChar: false\nmetricsAddr: 127.0.0.1:9100\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	t.Setenv("LONGSTACK_MAXCAPACITY", "50")

	testcases := []struct {
		name        string
		args        []string
		maxCapacity int
		diagnostic  bool
	}{
		{"env over file", []string{"-c", path}, 50, false},
		{"flag over env", []string{"-c", path, "--max-capacity", "20", "-x"}, 20, true},
	}

	for _, c := range testcases {
		t.Run(c.name, func(t *testing.T) {
			config, v, err := loadConfig(newFlags(t, c.args...))
			require.NoError(t, err)
			assert.Equal(t, path, v.ConfigFileUsed())
			assert.Equal(t, "debug", config.LogLevel)
			assert.False(t, config.NegativeAsChar)
			assert.Equal(t, "127.0.0.1:9100", config.MetricsAddr)
			assert.Equal(t, c.maxCapacity, config.MaxCapacity)
			assert.Equal(t, c.diagnostic, config.Diagnostic)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	_, _, err := loadConfig(newFlags(t, "-c", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)

	_, _, err = loadConfig(newFlags(t, "--max-capacity", "-1"))
	assert.EqualError(t, err, "invalid max capacity -1")
}

func execute(t *testing.T, input string, args ...string) (string, string, error) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	out, errOut, err := execute(t, "a\n2\nu\n7\nn\nW\n", "-x", "--max-capacity", "8")
	require.NoError(t, err)

	assert.Contains(t, out, "Number of elements on the stack is:  1\n")
	assert.Equal(t, "[Stack 1 has been allocated]\n"+
		"[Stack 1 - Pushing 7]\n"+
		"Stack has 1 items in it.\n"+
		"Value on stack is |0x7|\n"+
		"[Stack 1 has been deallocated]\n", errOut)
}

func TestConfigCommand(t *testing.T) {
	out, _, err := execute(t, "", "config", "--max-capacity", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "maxCapacity: 9\n")
	assert.Contains(t, out, "logLevel: warning\n")
	assert.Contains(t, out, "diagnostic: false\n")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "longstack version: "))
}

func TestRootCommandFlagsDoNotLeak(t *testing.T) {
	_, errOut, err := execute(t, "a\n1\n", "-x")
	require.NoError(t, err)
	assert.Contains(t, errOut, "[Stack 1 has been allocated]")

	_, errOut, err = execute(t, "a\n1\n")
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

func TestRootCommandServesMetrics(t *testing.T) {
	out, _, err := execute(t, "a\n1\nn\n", "--metrics-addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, out, "Number of elements on the stack is:  0\n")

	_, _, err = execute(t, "", "--metrics-addr", "256.0.0.1:bad")
	assert.Error(t, err)
}

func TestMetricsServer(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := stack.NewStore(
		stack.WithTracer(stack.NewTracer(&bytes.Buffer{})),
		stack.WithMetrics(stack.NewMetrics(reg)),
	)
	_, err := store.Allocate(1)
	require.NoError(t, err)

	server, err := listenMetrics("127.0.0.1:0", reg, log.NewEntry(log.StandardLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx)
	}()

	resp, err := http.Get("http://" + server.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "longstack_operations_total")
	assert.Contains(t, string(body), "longstack_live_stacks 1")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}

func TestWatchDiagnostic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "longstack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diagnostic: false\n"), 0644))

	_, v, err := loadConfig(newFlags(t, "-c", path))
	require.NoError(t, err)

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	tracer := stack.NewTracer(&bytes.Buffer{})
	watchDiagnostic(v, tracer, log.NewEntry(logger))
	assert.False(t, tracer.Enabled())

	require.NoError(t, os.WriteFile(path, []byte("diagnostic: true\n"), 0644))
	assert.Eventually(t, tracer.Enabled, 5*time.Second, 20*time.Millisecond)

	seen := len(hook.AllEntries())
	require.NoError(t, os.WriteFile(path, []byte("diagnostic: false\n"), 0644))
	assert.Eventually(t, func() bool {
		return len(hook.AllEntries()) > seen
	}, 5*time.Second, 20*time.Millisecond)
	assert.True(t, tracer.Enabled())
}
