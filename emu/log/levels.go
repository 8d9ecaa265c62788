package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

// Level mirrors the logrus level ordering: the smaller the value, the more
// severe the entry.
type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func (lvl Level) logrus() logrus.Level {
	return logrus.Level(lvl)
}

// EnableDebugLog lowers the backend threshold so that entries from modules
// enabled via EnableDebugModules actually reach the output.
func EnableDebugLog() {
	logrus.SetLevel(logrus.DebugLevel)
}

// A Context contributes fields to every entry while it is registered. The
// emulator registers one to stamp hardware entries with the current frame and
// scanline.
type Context interface {
	AddLogContext(e *EntryZ)
}

var contexts []Context

func AddContext(ctx Context) {
	contexts = append(contexts, ctx)
}

func RemoveContext(ctx Context) {
	for i := range contexts {
		if contexts[i] == ctx {
			contexts = append(contexts[:i], contexts[i+1:]...)
			return
		}
	}
}
