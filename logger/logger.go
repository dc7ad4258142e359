package logger

import (
	"os"

	"github.com/sirupsen/logrus"
	"go.elastic.co/ecslogrus"
)

const EnvLogLevel = "LOG_LEVEL"

func CreateLogger(serviceName string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&ecslogrus.Formatter{})
	l.AddHook(serviceNameHook{name: serviceName})

	if val, ok := os.LookupEnv(EnvLogLevel); ok {
		if level, err := logrus.ParseLevel(val); err == nil {
			l.SetLevel(level)
		} else {
			l.WithError(err).Warnf("Unable to parse %s [%s]. Defaulting to %s.", EnvLogLevel, val, l.GetLevel())
		}
	}
	return l
}

type serviceNameHook struct {
	name string
}

func (h serviceNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h serviceNameHook) Fire(entry *logrus.Entry) error {
	entry.Data["service.name"] = h.name
	return nil
}
