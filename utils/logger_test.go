package utils

import "testing"

func TestLoggerConstructors(t *testing.T) {
	l, err := NewDevelopmentLogger()
	if err != nil {
		t.Fatalf("NewDevelopmentLogger: %v", err)
	}
	l.Debug("debug line", "k", 1)
	l.Info("info line", "k", 2)

	nop := NopLogger()
	nop.Warn("discarded")
	nop.Error("discarded", "err", "boom")
	if err := nop.Sync(); err != nil {
		t.Errorf("Sync on nop logger: %v", err)
	}
}
