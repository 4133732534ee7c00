package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

type MainLogHook struct{}

func (h *MainLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Main: " + entry.Message
	return nil
}

func (h *MainLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// ComponentHook prefixes every message with the component name.
type ComponentHook struct {
	Name string
}

func (h *ComponentHook) Fire(entry *logrus.Entry) error {
	entry.Message = h.Name + ": " + entry.Message
	return nil
}

func (h *ComponentHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// NewLogger builds an isolated logrus logger so that each component hook only
// decorates its own entries. An unknown level falls back to info.
func NewLogger(level string, hook logrus.Hook) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if hook != nil {
		l.AddHook(hook)
	}

	return logrus.NewEntry(l)
}

// Discard returns a logger that drops everything, for tests and the TUI.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(discard{})
	return logrus.NewEntry(l)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
