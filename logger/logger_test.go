package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestCreateLoggerLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	l := CreateLogger("user-directory")
	if l.GetLevel() != logrus.DebugLevel {
		t.Fatalf("Level mismatch. Expected %v, got %v", logrus.DebugLevel, l.GetLevel())
	}
}

func TestCreateLoggerInvalidLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "chatty")
	l := CreateLogger("user-directory")
	if l.GetLevel() != logrus.InfoLevel {
		t.Fatalf("Level mismatch. Expected %v, got %v", logrus.InfoLevel, l.GetLevel())
	}
}

func TestServiceNameStamped(t *testing.T) {
	l := CreateLogger("user-directory")
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.Info("hello")

	if !bytes.Contains(buf.Bytes(), []byte(`"service.name":"user-directory"`)) {
		t.Fatalf("Expected service name in output, got %s", buf.String())
	}
}
