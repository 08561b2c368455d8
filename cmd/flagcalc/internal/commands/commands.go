package commands

import (
	"fmt"
	"strings"

	"github.com/NilFoundation/flagset/cmd/flagcalc/internal/calc"
	"github.com/NilFoundation/flagset/common/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (rc *rootCommand) parseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse NAMES...",
		Short: "Print the mask of the given flag names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := rc.domain.ParseNames(args)
			if err != nil {
				return err
			}
			logger.Debug().Str(logging.FieldOperation, "parse").Object(logging.FieldFlags, f).Send()
			if rc.cfg.Json {
				return rc.printResult(cmd, f)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%#x\n", uint64(f.Bits()))
			return nil
		},
	}
}

func (rc *rootCommand) renderCommand() *cobra.Command {
	var annotate bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the names of the flags set in the value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case rc.cfg.Json:
				return rc.printResult(cmd, rc.value)
			case annotate:
				fmt.Fprintln(cmd.OutOrStdout(), colorize(rc.domain.FormatAnnotated(rc.value), rc.cfg.NoColor))
			default:
				fmt.Fprintln(cmd.OutOrStdout(), rc.domain.Format(rc.value))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&annotate, "annotate", "a", false, "print every flag with a +/- prefix")
	return cmd
}

func (rc *rootCommand) modifyCommand(use, short string, apply func(*calc.Flags, calc.Flags)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " NAMES...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mask, err := rc.domain.ParseNames(args)
			if err != nil {
				return err
			}
			f := rc.value
			apply(&f, mask)
			logger.Debug().
				Str(logging.FieldOperation, use).
				Object("before", rc.value).
				Object(logging.FieldFlags, f).
				Send()
			return rc.printResult(cmd, f)
		},
	}
}

func (rc *rootCommand) hasCommand() *cobra.Command {
	var anyOf bool
	cmd := &cobra.Command{
		Use:   "has NAMES...",
		Short: "Check whether all (or, with --any, some) of the given flags are set in the value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mask, err := rc.domain.ParseNames(args)
			if err != nil {
				return err
			}
			var result bool
			if anyOf {
				result = rc.value.HasFlag(mask.Bits())
			} else {
				result = rc.value.HasMask(mask)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&anyOf, "any", false, "succeed if any of the flags is set")
	return cmd
}

var (
	setColor   = color.New(color.FgGreen)
	clearColor = color.New(color.FgRed)
)

// colorize paints the items of an annotated rendering by their prefix.
func colorize(annotated string, noColor bool) string {
	if noColor || annotated == "" {
		return annotated
	}
	items := strings.Split(annotated, ",")
	for i, item := range items {
		if strings.HasPrefix(item, "+") {
			items[i] = setColor.Sprint(item)
		} else {
			items[i] = clearColor.Sprint(item)
		}
	}
	return strings.Join(items, ",")
}
