package metrics

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func jsonEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	return entry
}

func TestLevelString(t *testing.T) {
	for _, tc := range []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelSilent, "SILENT"},
		{Level(42), "UNKNOWN"},
	} {
		if got := tc.level.String(); got != tc.want {
			t.Errorf("Level(%d).String() = %q, want %q", tc.level, got, tc.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Level
	}{
		{"DEBUG", LevelDebug},
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"WARN", LevelWarn},
		{"warning", LevelWarn},
		{"ERROR", LevelError},
		{"SILENT", LevelSilent},
		{"off", LevelSilent},
		{"bogus", LevelInfo},
	} {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLoggerText(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithLevel(LevelDebug), WithFormat(FormatText))

	l.Info("keygen done", Fields{"attempts": 2})

	out := buf.String()
	for _, want := range []string{"INFO", "keygen done", "attempts=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithFormat(FormatJSON), WithName("kem"))

	l.Info("encapsulated", Fields{"param_set": "mceliece348864"})

	entry := jsonEntry(t, &buf)
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
	if entry["msg"] != "encapsulated" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["param_set"] != "mceliece348864" {
		t.Errorf("param_set = %v", entry["param_set"])
	}
	if entry["logger"] != "kem" {
		t.Errorf("logger = %v, want kem", entry["logger"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("time field missing")
	}
}

func TestLoggerFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithLevel(LevelWarn), WithFormat(FormatText))

	l.Debug("d")
	l.Info("i")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "d\n") || strings.Contains(out, "i\n") {
		t.Error("debug/info should be filtered at warn level")
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Error("warn/error should pass the filter")
	}

	buf.Reset()
	l.SetLevel(LevelSilent)
	l.Error("suppressed")
	if buf.Len() != 0 {
		t.Error("silent level produced output")
	}
}

func TestLoggerWithAndNamed(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(
		WithOutput(&buf),
		WithFormat(FormatJSON),
		WithName("mceliece"),
		WithFields(Fields{"service": "kem"}),
	)

	child := base.Named("keygen").With(Fields{"param_set": "mceliece348864"})
	child.Info("done", Fields{"attempts": float64(1)})

	entry := jsonEntry(t, &buf)
	if entry["logger"] != "mceliece.keygen" {
		t.Errorf("logger = %v, want mceliece.keygen", entry["logger"])
	}
	if entry["service"] != "kem" {
		t.Error("inherited field missing")
	}
	if entry["param_set"] != "mceliece348864" {
		t.Error("child field missing")
	}
	if entry["attempts"] != float64(1) {
		t.Errorf("attempts = %v", entry["attempts"])
	}

	// The derived logger must not have mutated the base fields.
	buf.Reset()
	base.Info("base entry")
	entry = jsonEntry(t, &buf)
	if _, ok := entry["param_set"]; ok {
		t.Error("With leaked fields into the base logger")
	}
}

func TestLoggerFieldMerging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithFormat(FormatJSON), WithFields(Fields{"a": "1"}))

	l.Info("m", Fields{"b": "2"}, Fields{"a": "override"})

	entry := jsonEntry(t, &buf)
	if entry["a"] != "override" {
		t.Errorf("a = %v, want override", entry["a"])
	}
	if entry["b"] != "2" {
		t.Errorf("b = %v, want 2", entry["b"])
	}
}

func TestLoggerTextFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithFormat(FormatText))

	l.Info("m", Fields{"zebra": 1, "apple": 2, "mango": 3})

	out := buf.String()
	a, m, z := strings.Index(out, "apple="), strings.Index(out, "mango="), strings.Index(out, "zebra=")
	if a < 0 || m < 0 || z < 0 || a > m || m > z {
		t.Errorf("fields not sorted: %q", out)
	}
}

func TestNullLogger(t *testing.T) {
	l := NullLogger()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}

func TestGlobalLogger(t *testing.T) {
	old := GetLogger()
	defer SetLogger(old)

	var buf bytes.Buffer
	SetLogger(NewLogger(WithOutput(&buf), WithFormat(FormatText)))

	Info("global entry")
	if !strings.Contains(buf.String(), "global entry") {
		t.Error("global logger did not receive the entry")
	}
}
