package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NilFoundation/flagset/cmd/flagcalc/internal/calc"
	"github.com/NilFoundation/flagset/common/check"
	"github.com/NilFoundation/flagset/common/logging"
	"github.com/NilFoundation/flagset/internal/cobrax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appTitle = "flagcalc"

	configFlag  = "config"
	namesFlag   = "names"
	valueFlag   = "value"
	presetsFlag = "presets"
	noColorFlag = "no-color"
	jsonFlag    = "json"
)

var logger = logging.NewLogger("flagcalc")

type rootCommand struct {
	baseCmd  *cobra.Command
	v        *viper.Viper
	cfgFile  string
	logLevel string

	cfg    calc.Config
	domain *calc.Domain
	value  calc.Flags
}

var noDomainCmd = map[string]struct{}{
	"help":             {},
	"version":          {},
	"completion":       {},
	"__complete":       {},
	"__completeNoDesc": {},
}

// NewRootCommand builds the flagcalc command tree. Every call uses its own
// viper instance, so commands can be built more than once in one process.
func NewRootCommand() *cobra.Command {
	rc := &rootCommand{v: viper.New()}
	rc.baseCmd = &cobra.Command{
		Use:   "flagcalc",
		Short: "Compose and render bit flag masks over a list of named flags",
		Long: `flagcalc composes and renders bit flag masks.
Bit i of a mask is named by the i-th entry of --names. Names and the value
can also be set in a config file (flagcalc.yaml) or via FLAGCALC_* environment variables.
A presets file names groups of flags that can be used wherever names are accepted.`,
		PersistentPreRunE: rc.preRun,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	fset := rc.baseCmd.PersistentFlags()
	cobrax.AddConfigFlag(fset, &rc.cfgFile)
	cobrax.AddLogLevelFlag(fset, &rc.logLevel)
	fset.StringSlice(namesFlag, nil, "flag names, lowest bit first")
	fset.String(valueFlag, "0", "mask to operate on: an integer literal or a list of names")
	fset.String(presetsFlag, "", "YAML file mapping preset names to lists of flag names")
	fset.Bool(noColorFlag, false, "do not colorize the output")
	fset.Bool(jsonFlag, false, "print results as JSON")
	for _, name := range []string{configFlag, presetsFlag} {
		check.LogAndPanicIfErrf(cobra.MarkFlagFilename(fset, name, "yaml", "yml"), logger, "can't mark %s flag", name)
	}

	rc.baseCmd.AddCommand(
		rc.parseCommand(),
		rc.renderCommand(),
		rc.modifyCommand("set", "Set the given flags in the value", (*calc.Flags).SetMask),
		rc.modifyCommand("clear", "Clear the given flags in the value", (*calc.Flags).ClearMask),
		rc.modifyCommand("toggle", "Toggle the given flags in the value", (*calc.Flags).ToggleMask),
		rc.hasCommand(),
		cobrax.VersionCmd(appTitle),
	)
	return rc.baseCmd
}

func (rc *rootCommand) preRun(cmd *cobra.Command, args []string) error {
	// Without the flag, the level set from LOG_LEVEL at startup stands.
	if cmd.Flags().Changed(cobrax.LogLevelFlag) {
		if err := logging.TrySetupGlobalLevel(rc.logLevel); err != nil {
			return err
		}
	}
	if _, skip := noDomainCmd[cmd.Name()]; skip {
		return nil
	}

	if err := rc.loadConfig(cmd); err != nil {
		return err
	}

	if err := rc.v.Unmarshal(&rc.cfg, calc.UpdateDecoderConfig); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}
	if len(rc.cfg.Names) == 0 {
		return errors.New("no flag names given: use --names, the config file or FLAGCALC_NAMES")
	}
	domain, err := calc.NewDomain(rc.cfg.Names)
	if err != nil {
		return fmt.Errorf("invalid names: %w", err)
	}
	rc.domain = domain

	presets, err := calc.LoadPresets(rc.cfg.Presets)
	if err != nil {
		return err
	}
	if err := domain.AddPresets(presets); err != nil {
		return fmt.Errorf("invalid presets: %w", err)
	}

	rc.value, err = domain.ParseValue(rc.cfg.Value)
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}

	logger.Debug().
		Int(logging.FieldFlagCount, domain.Symbols().Count()).
		Strs(logging.FieldFlagNames, domain.Symbols().Names()).
		Object(logging.FieldFlags, rc.value).
		Msg("Domain loaded")
	return nil
}

func (rc *rootCommand) loadConfig(cmd *cobra.Command) error {
	rc.v.SetEnvPrefix("FLAGCALC")
	rc.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	rc.v.AutomaticEnv()

	if rc.cfgFile != "" {
		rc.v.SetConfigFile(rc.cfgFile)
	} else {
		rc.v.AddConfigPath(".")
		rc.v.SetConfigName("flagcalc")
	}
	if err := rc.v.ReadInConfig(); err != nil {
		if !errors.As(err, new(viper.ConfigFileNotFoundError)) {
			return fmt.Errorf("can't read config: %w", err)
		}
	} else {
		logger.Debug().Str(logging.FieldConfigFile, rc.v.ConfigFileUsed()).Msg("Config loaded")
	}

	return rc.v.BindPFlags(cmd.Flags())
}

func (rc *rootCommand) printResult(cmd *cobra.Command, f calc.Flags) error {
	if !rc.cfg.Json {
		fmt.Fprintf(cmd.OutOrStdout(), "%#x %s\n", uint64(f.Bits()), rc.domain.Format(f))
		return nil
	}
	data, err := rc.domain.Result(f).MarshalIndent()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
