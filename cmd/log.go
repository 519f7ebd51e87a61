package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
)

// log goes to stderr so reports on stdout stay clean
var log = &logrus.Logger{
	Out: os.Stderr,
	Formatter: &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	},
	Hooks: make(logrus.LevelHooks),
	Level: logrus.WarnLevel,
}
