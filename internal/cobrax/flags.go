package cobrax

import (
	"github.com/spf13/pflag"
)

const LogLevelFlag = "log-level"

func AddLogLevelFlag(fset *pflag.FlagSet, dst *string) {
	AddCustomLogLevelFlag(fset, LogLevelFlag, "l", dst)
}

func AddCustomLogLevelFlag(fset *pflag.FlagSet, name, short string, dst *string) {
	if *dst == "" {
		*dst = "info"
	}
	fset.StringVarP(dst, name, short, *dst, "log level: trace|debug|info|warn|error|fatal|panic")
}
