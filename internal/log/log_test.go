package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{in: "DEBUG", want: LevelDebug},
		{in: " warn ", want: LevelWarn},
		{in: "none", want: LevelNone},
		{in: "verbose", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestComponentField(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelInfo)
	defer SetLevel(LevelInfo)

	Info("config").Str("path", "/tmp/x").Msg("Config saved")
	Debug("config").Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, "Config saved") || !strings.Contains(out, "component=config") {
		t.Errorf("log output = %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line logged at info level: %q", out)
	}
}

func TestLevelNone(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelNone)
	defer SetLevel(LevelInfo)

	Error("api").Msg("silenced")
	if buf.Len() != 0 {
		t.Errorf("log output with level none = %q", buf.String())
	}
}
