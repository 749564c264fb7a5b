package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/qcheck/runner"
	"github.com/gnolang/qcheck/scanner"
)

func init() {
	color.NoColor = true
}

func createTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateQueriesJSON(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	invalid, err := validateQueries(
		context.Background(), &out, zap.NewNop(), runner.DefaultConfig(),
		[]string{"(A AND B)", "x AND"}, nil, true, "",
	)
	require.NoError(t, err)
	assert.Equal(t, 1, invalid)

	var reports []runner.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &reports))
	require.Len(t, reports, 2)

	assert.Equal(t, "<arg>", reports[0].Source)
	assert.True(t, reports[0].Result.IsValid)
	assert.Equal(t, "Start Group:\n  A\n  AND\nB\nEnd Group\n", reports[0].Result.ProcessedText)

	assert.False(t, reports[1].Result.IsValid)
	assert.Equal(t, "operators", reports[1].Result.Rule)
	assert.Equal(t, "Invalid use of Boolean operators.", reports[1].Result.ErrorMessage)
}

func TestValidateQueriesFromFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := createTempFile(t, dir, "saved.q", "# saved searches\nA OR B\n\n(A\n")

	var out bytes.Buffer
	invalid, err := validateQueries(
		context.Background(), &out, zap.NewNop(), runner.DefaultConfig(),
		nil, []string{path}, true, "",
	)
	require.NoError(t, err)
	assert.Equal(t, 1, invalid)

	var reports []runner.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, 2, reports[0].Line)
	assert.Equal(t, 4, reports[1].Line)
	assert.Equal(t, "parentheses", reports[1].Result.Rule)
}

func TestValidateQueriesTextOutput(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	config := runner.DefaultConfig()
	config.Fields = []string{"TITLE"}

	invalid, err := validateQueries(
		context.Background(), &out, zap.NewNop(), config,
		[]string{"COMPANY:Acme"}, nil, false, "",
	)
	require.NoError(t, err)
	assert.Equal(t, 1, invalid)
	assert.Contains(t, out.String(), "error: fields")
	assert.Contains(t, out.String(), "Invalid field or value syntax.")
	assert.Contains(t, out.String(), `unknown field "COMPANY"`)
}

func TestValidateQueriesJSONFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "report.json")

	var out bytes.Buffer
	invalid, err := validateQueries(
		context.Background(), &out, zap.NewNop(), runner.DefaultConfig(),
		[]string{`"open`}, nil, true, outputPath,
	)
	require.NoError(t, err)
	assert.Equal(t, 1, invalid)
	assert.Empty(t, out.String())

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var reports []runner.Report
	require.NoError(t, json.Unmarshal(data, &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "quotes", reports[0].Result.Rule)
}

func TestValidateQueriesMissingFile(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	_, err := validateQueries(
		context.Background(), &out, zap.NewNop(), runner.DefaultConfig(),
		nil, []string{filepath.Join(t.TempDir(), "missing.q")}, true, "",
	)
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"COMPANY", "TITLE"}, splitList(" COMPANY, TITLE ,"))
	assert.Nil(t, splitList(""))
}

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".qcheck.yaml")

	require.NoError(t, initConfigurationFile(path, []string{"COMPANY", "TITLE"}, false))

	config, err := runner.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "qcheck", config.Name)
	assert.Equal(t, runner.FieldList{"COMPANY", "TITLE"}, config.Fields)
	assert.Equal(t, scanner.DefaultExtensions, config.Extensions)

	err = initConfigurationFile(path, nil, false)
	assert.Error(t, err, "existing file must not be overwritten without force")

	require.NoError(t, initConfigurationFile(path, nil, true))
	config, err = runner.LoadConfig(path)
	require.NoError(t, err)
	assert.Nil(t, config.Fields)
}

func TestPrintTokens(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	require.NoError(t, printTokens(&out, "A AND"))

	expected := "TERM(\"A\")@0\nOPERATOR(\"AND\")@2\nEOF(\"\")@5\n"
	assert.Equal(t, expected, out.String())
}

func TestPrintTree(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	require.NoError(t, printTree(&out, "A AND B"))

	expected := "QueryNode(3 children):\n  0: TermNode(A)\n  1: OperatorNode(AND)\n  2: TermNode(B)\n"
	assert.Equal(t, expected, out.String())

	out.Reset()
	assert.Error(t, printTree(&out, "(A"))
	assert.Empty(t, out.String())
}

func TestHandleEvent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	queryFile := createTempFile(t, dir, "jobs.q", "x AND\n")
	otherFile := createTempFile(t, dir, "notes.md", "x AND\n")

	var out bytes.Buffer
	config := runner.DefaultConfig()
	w := &queryWatcher{
		runner:  runner.New(config.NewValidator(nil), nil, config),
		scanner: scanner.New(dir, config.Extensions...),
		out:     &out,
		logger:  zap.NewNop(),
	}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "write to query file", event: fsnotify.Event{Name: queryFile, Op: fsnotify.Write}, want: true},
		{name: "create query file", event: fsnotify.Event{Name: queryFile, Op: fsnotify.Create}, want: true},
		{name: "chmod only", event: fsnotify.Event{Name: queryFile, Op: fsnotify.Chmod}, want: false},
		{name: "other extension", event: fsnotify.Event{Name: otherFile, Op: fsnotify.Write}, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, w.handleEvent(tt.event), tt.name)
	}
	assert.Equal(t, 2, strings.Count(out.String(), "error: operators"))
	assert.Contains(t, out.String(), queryFile)

	assert.False(t, w.revalidate(filepath.Join(dir, "gone.q")))
}

// lockedBuffer is a bytes.Buffer safe for the watcher's timer goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestHandleEventCoalescesBursts(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	queryFile := createTempFile(t, dir, "jobs.q", "x AND\n")

	out := &lockedBuffer{}
	config := runner.DefaultConfig()
	w := &queryWatcher{
		runner:   runner.New(config.NewValidator(nil), nil, config),
		scanner:  scanner.New(dir, config.Extensions...),
		out:      out,
		logger:   zap.NewNop(),
		debounce: 50 * time.Millisecond,
	}
	defer w.stopTimers()

	for i := 0; i < 5; i++ {
		require.True(t, w.handleEvent(fsnotify.Event{Name: queryFile, Op: fsnotify.Write}))
	}

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "error: operators") == 1
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 1, strings.Count(out.String(), "error: operators"))
}

func TestAddWatchPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	file := createTempFile(t, dir, "a.q", "A\n")

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, addWatchPath(watcher, dir))
	require.NoError(t, addWatchPath(watcher, file))
	assert.Len(t, watcher.WatchList(), 3)

	assert.Error(t, addWatchPath(watcher, filepath.Join(dir, "missing")))
}
