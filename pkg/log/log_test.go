package log

import (
	"testing"
)

func TestZapLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		expected string
	}{
		{"debug level", LevelDebug, "debug"},
		{"info level", LevelInfo, "info"},
		{"warn level", LevelWarn, "warn"},
		{"error level", LevelError, "error"},
		{"unknown level defaults to info", Level("unknown"), "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := zapLevel(tt.level)
			if got.String() != tt.expected {
				t.Errorf("zapLevel() = %v, want %v", got.String(), tt.expected)
			}
		})
	}
}

func TestInitWithConfig(t *testing.T) {
	Reset()
	defer Reset()

	for _, level := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		t.Run(string(level), func(t *testing.T) {
			Reset()
			Init(Config{Level: level})

			if Get() == nil {
				t.Error("Get() returned nil logger")
			}
		})
	}
}

func TestLogHelpers(t *testing.T) {
	Reset()
	defer Reset()

	Init(Config{Level: LevelDebug})

	// Verify the helpers don't panic; output capture is not worth the setup.
	Debugf("debug %s", "formatted")
	Infof("info %s", "formatted")
	Warnf("warn %s", "formatted")
	Errorf("error %s", "formatted")
	With("key", "value").Infof("with fields")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != LevelInfo {
		t.Errorf("DefaultConfig().Level = %v, want %v", cfg.Level, LevelInfo)
	}
}

func TestGetInitializesDefaultLogger(t *testing.T) {
	Reset()
	defer Reset()

	if Get() == nil {
		t.Error("Get() returned nil logger")
	}
}
