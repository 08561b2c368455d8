package cobrax

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// AddConfigFlag adds a flag to the flag set to specify a config file.
func AddConfigFlag(fset *pflag.FlagSet, dst *string) {
	fset.StringVarP(dst, "config", "c", *dst, "config file")
}

// LoadConfigFromFile reads a YAML file and unmarshals it into the destination.
// If the file name is empty, it does nothing.
// Arg dest must be a non-nil pointer (initialized with defaults).
func LoadConfigFromFile[T any](name string, dest *T) error {
	if name == "" {
		return nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("can't read config %s: %w", name, err)
	}

	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("can't parse config %s: %w", name, err)
	}
	return nil
}
