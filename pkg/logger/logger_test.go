package logger

import "testing"

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantError bool
	}{
		{name: "Info json", level: "info", format: "json", wantError: false},
		{name: "Debug console", level: "debug", format: "console", wantError: false},
		{name: "Error level", level: "error", format: "json", wantError: false},
		{name: "Unknown level", level: "loud", format: "json", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := NewLogger(tt.level, tt.format)
			if (err != nil) != tt.wantError {
				t.Fatalf("NewLogger() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil {
				return
			}
			// The logger must accept key/value pairs without panicking.
			log.Debug("debug message", "key", "value")
			log.Info("info message", "count", 1)
			log.Warn("warn message")
			log.Error("error message", "oops", true)
		})
	}
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Info("discarded", "key", "value")
	if err := log.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
}
