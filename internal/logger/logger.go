package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. The level string comes straight from
// config; unknown values fall back to info.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stdout

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		PadLevelText:  true,
	})

	return log
}
