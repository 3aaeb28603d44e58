package cmd

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/authzed/readkit/pkg/framing"
	"github.com/authzed/readkit/pkg/view"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true

	rootCmd := NewCommandTree("readkit", NewConfigWithOptionsAndDefaults())

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestFramesCommand(t *testing.T) {
	var data []byte
	for _, payload := range []string{"hello", ""} {
		var err error
		data, err = framing.AppendFrame(data, []byte(payload))
		require.NoError(t, err)
	}
	path := writeFile(t, "frames.bin", data)

	stdout, _, err := runCommand(t, "", "frames", path)
	require.NoError(t, err)
	require.Equal(t, path+"\t1\t5 B\t\"hello\"\n"+path+"\t2\t0 B\t\"\"\n", stdout)
}

func TestFramesCommandNumbersFailuresFromOne(t *testing.T) {
	stdout, _, err := runCommand(t, "\x00\x00", "frames")
	require.ErrorIs(t, err, framing.ErrMalformed)
	require.ErrorContains(t, err, "stdin: record 1: ")
	require.Empty(t, stdout)
}

func TestNetstringsCommand(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		want string
	}{
		{
			name: "stdin",
			args: []string{"netstrings"},
			want: "stdin\t1\t5 B\t\"hello\"\nstdin\t2\t5 B\t\"world\"\n",
		},
		{
			name: "explicit dash",
			args: []string{"netstrings", "-"},
			want: "stdin\t1\t5 B\t\"hello\"\nstdin\t2\t5 B\t\"world\"\n",
		},
		{
			name: "named stdin",
			args: []string{"netstrings", "--stdin-name", "pipe"},
			want: "pipe\t1\t5 B\t\"hello\"\npipe\t2\t5 B\t\"world\"\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := runCommand(t, "5:hello,5:world,", tc.args...)
			require.NoError(t, err)
			require.Equal(t, tc.want, stdout)
		})
	}
}

func TestNetstringsCommandMalformed(t *testing.T) {
	stdout, _, err := runCommand(t, "2:ok,2:no;", "netstrings")
	require.ErrorIs(t, err, framing.ErrMalformed)
	require.ErrorContains(t, err, "stdin: record 2")
	require.Equal(t, "stdin\t1\t2 B\t\"ok\"\n", stdout)
}

func TestLinesCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "first\r\nsecond\nthird", "lines")
	require.NoError(t, err)
	require.Equal(t, "stdin:1: first\nstdin:2: second\nstdin:3: third\n", stdout)

	stdout, _, err = runCommand(t, "a\r\n", "lines", "--keep-cr")
	require.NoError(t, err)
	require.Equal(t, "stdin:1: a\r\n", stdout)
}

func TestLinesCommandTooLong(t *testing.T) {
	_, _, err := runCommand(t, "ok\nnope\n", "lines", "--max-line-length", "2")
	require.ErrorIs(t, err, view.ErrTerminationNotFound)
	require.ErrorContains(t, err, "stdin: line 2")
}

func TestIdentifyCommand(t *testing.T) {
	qoi := []byte("qoif")
	qoi = binary.BigEndian.AppendUint32(qoi, 2)
	qoi = binary.BigEndian.AppendUint32(qoi, 3)
	qoi = append(qoi, 3, 1)

	first := writeFile(t, "image.qoi", qoi)
	second := writeFile(t, "notes.txt", []byte("just some text"))
	third := writeFile(t, "archive.zip", []byte("PK\x03\x04rest"))

	stdout, _, err := runCommand(t, "", "identify", "--concurrency", "2", first, second, third)
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		first + ": Quite Ok Image (QOI) data (image/x-qoi)",
		"  colorspace: RGB (all channels linear)",
		"  size: 2x3 pixels",
		second + ": unknown",
		third + ": ZIP compressed archive (application/zip)",
		"",
	}, "\n"), stdout)
}

func TestIdentifyCommandMissingFile(t *testing.T) {
	_, _, err := runCommand(t, "", "identify", filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorContains(t, err, "failed to open input")
}

func TestPrintMetrics(t *testing.T) {
	_, stderr, err := runCommand(t, "1:x,", "netstrings", "--print-metrics")
	require.NoError(t, err)
	require.Contains(t, stderr, `readkit_framing_records_decoded_total{format="netstring"}`)
	require.Contains(t, stderr, `readkit_source_elements_read_total{source="netstrings"}`)
	require.NotContains(t, stderr, "go_goroutines")
}

func TestPrintConfig(t *testing.T) {
	_, stderr, err := runCommand(t, "", "lines", "--print-config", "--max-line-length", "12")
	require.NoError(t, err)
	require.Contains(t, stderr, `"MaxLineLength"`)
	require.Contains(t, stderr, `"Concurrency"`)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "", "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "readkit "), stdout)
}

func TestConfigDefaults(t *testing.T) {
	config := NewConfigWithOptionsAndDefaults()
	require.Equal(t, framing.DefaultMaxFrameSize, config.MaxFrameSize)
	require.Equal(t, framing.DefaultMaxLineLength, config.MaxLineLength)
	require.Equal(t, 4, config.Concurrency)
	require.Empty(t, config.StdinName)
	require.Len(t, config.FramingOptions(), 2)

	config = NewConfigWithOptionsAndDefaults(WithKeepCR(true), WithMaxFrameSize(10))
	require.Equal(t, 10, config.MaxFrameSize)
	require.Len(t, config.FramingOptions(), 3)

	copied := NewConfigWithOptions(config.ToOption())
	require.Equal(t, config, copied)
}

func TestWriteMetricsFiltersForeignFamilies(t *testing.T) {
	registry := prometheus.NewRegistry()
	ours := prometheus.NewCounter(prometheus.CounterOpts{Name: "readkit_test_total", Help: "test counter"})
	theirs := prometheus.NewCounter(prometheus.CounterOpts{Name: "other_test_total", Help: "test counter"})
	registry.MustRegister(ours, theirs)
	ours.Add(3)

	var out bytes.Buffer
	require.NoError(t, WriteMetrics(&out, registry))
	require.Contains(t, out.String(), "readkit_test_total 3")
	require.NotContains(t, out.String(), "other_test_total")

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, filterFamilies(families, "other_"), 1)
}
