package calc

import (
	"fmt"
	"strings"

	"github.com/NilFoundation/flagset/internal/cobrax"
)

// Presets names groups of flags, e.g.
//
//	rw: [Read, Write]
//	all: [Read, Write, Exec]
type Presets map[string][]string

// LoadPresets reads presets from a YAML file. An empty file name yields no presets.
func LoadPresets(name string) (Presets, error) {
	presets := Presets{}
	if err := cobrax.LoadConfigFromFile(name, &presets); err != nil {
		return nil, err
	}
	return presets, nil
}

// AddPresets makes the presets usable wherever flag names are accepted.
// A preset may not shadow a flag name or another preset.
func (d *Domain) AddPresets(presets Presets) error {
	for name, items := range presets {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return fmt.Errorf("%w: preset", ErrEmptyName)
		}
		if _, err := d.symbols.Lookup(key); err == nil {
			return fmt.Errorf("%w: preset %q", ErrPresetConflict, name)
		}
		if _, found := d.presets[key]; found {
			return fmt.Errorf("%w: preset %q", ErrPresetConflict, name)
		}

		f, err := d.symbols.Parse(strings.Join(items, ","))
		if err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
		d.presets[key] = f
	}
	return nil
}

// Preset returns the flags of a preset, ignoring case.
func (d *Domain) Preset(name string) (Flags, bool) {
	f, found := d.presets[strings.ToLower(strings.TrimSpace(name))]
	return f, found
}
