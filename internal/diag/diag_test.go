package diag

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_String(t *testing.T) {
	t.Parallel()

	d := Diagnostic{File: "/p/a.ts", Line: 0, Character: 4, Message: "Exported item does not exist."}
	assert.Equal(t, "/p/a.ts(1,5): Exported item does not exist.", d.String())

	assert.Equal(t, "no position", Diagnostic{Message: "no position"}.String())
}

func TestCollector(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.Report(Diagnostic{Severity: SeverityWarning, Code: CodeUnsupportedShape, Message: "a"})
	c.Report(Diagnostic{Severity: SeverityWarning, Code: CodeMissingExport, Message: "b"})
	c.Report(Diagnostic{Severity: SeverityWarning, Code: CodeUnsupportedShape, Message: "c"})

	assert.Len(t, c.Diagnostics(), 3)
	assert.Equal(t, 2, c.Count(CodeUnsupportedShape))
	assert.Equal(t, []string{"a", "b", "c"}, c.Messages())
}

func TestLogSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sink := NewLogSink(logger)

	sink.Report(Diagnostic{Severity: SeverityWarning, Code: CodeMissingExport, File: "a.ts", Line: 2, Character: 0, Message: "missing"})

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="a.ts(3,1): missing"`)
	assert.Contains(t, out, "code=missing-export")
}

func TestTee(t *testing.T) {
	t.Parallel()

	a, b := NewCollector(), NewCollector()
	sink := Tee(a, nil, b, Discard)
	sink.Report(Diagnostic{Message: "x"})

	assert.Len(t, a.Diagnostics(), 1)
	assert.Len(t, b.Diagnostics(), 1)
}
