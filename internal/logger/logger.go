package logger

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// New инициализирует логгер. В release режиме логи пишутся в json с уровнем info, в остальных
// окружениях текстом с уровнем debug.
func New(output io.Writer, release bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)

	if release {
		l.SetLevel(logrus.InfoLevel)
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg: "message",
			},
		})
		return l
	}

	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}
