package flags

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

type RootCmdFlags struct {
	Debug bool
}

func (f *RootCmdFlags) Register(fs *pflag.FlagSet) {
	fs.BoolVarP(
		&f.Debug,
		"debug",
		"d",
		false,
		"print debug output",
	)
}

func (f *RootCmdFlags) LogLevel() logrus.Level {
	if f.Debug {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}
