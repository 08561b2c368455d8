package calc

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	jsoniter "github.com/json-iterator/go"
)

type Config struct {
	Names   []string `mapstructure:"names"`
	Value   string   `mapstructure:"value"`
	Presets string   `mapstructure:"presets"`
	NoColor bool     `mapstructure:"no-color"`
	Json    bool     `mapstructure:"json"`
}

// UpdateDecoderConfig is passed to viper.Unmarshal.
func UpdateDecoderConfig(config *mapstructure.DecoderConfig) {
	if config.DecodeHook == nil {
		config.DecodeHook = decodeNames
		return
	}
	config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		config.DecodeHook,
		decodeNames,
	)
}

// decodeNames flattens comma-separated items, so names can be given as a
// list, as "A,B" or as a mix of both. Empty names inside an item are kept
// so that NewDomain reports them.
func decodeNames(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf([]string(nil)) {
		return data, nil
	}

	var items []string
	switch v := data.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return []string(nil), nil
		}
		items = []string{v}
	case []string:
		items = v
	case []any:
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
	default:
		return data, nil
	}

	var names []string
	for _, item := range items {
		for _, name := range strings.Split(item, ",") {
			names = append(names, strings.TrimSpace(name))
		}
	}
	return names, nil
}

type Result struct {
	Value string   `json:"value"`
	Names []string `json:"names"`
}

func (d *Domain) Result(f Flags) Result {
	names := make([]string, 0, f.Count())
	f.Each(func(flag Flag) bool {
		names = append(names, d.symbols.Name(flag))
		return true
	})
	return Result{Value: fmt.Sprintf("%#x", uint64(f.Bits())), Names: names}
}

func (r Result) MarshalIndent() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(r, "", "  ")
}
