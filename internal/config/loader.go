package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Loader resolves a configuration struct from defaults, an optional config
// file and the flags the user set explicitly, in that order of precedence.
type Loader struct {
	flags      *pflag.FlagSet
	configFile string
	defaults   map[string]any
	strict     bool
}

// NewLoader creates a Loader that reads explicit flags from fs.
func NewLoader(fs *pflag.FlagSet) *Loader {
	return &Loader{
		flags:    fs,
		defaults: make(map[string]any),
	}
}

func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

func (l *Loader) SetDefaults(defaults map[string]any) {
	for key, value := range defaults {
		l.defaults[key] = value
	}
}

// SetStrictMode makes unknown keys in the config file an error.
func (l *Loader) SetStrictMode(strict bool) {
	l.strict = strict
}

// Load populates target, which must be a pointer to a struct with
// mapstructure tags.
func (l *Loader) Load(target any) error {
	v := viper.New()

	for key, value := range l.defaults {
		v.SetDefault(key, value)
	}

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w %s: %v", ErrConfigFileRead, l.configFile, err)
		}
	}

	if l.flags != nil {
		l.flags.Visit(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				v.Set(f.Name, sv.GetSlice())
				return
			}
			v.Set(f.Name, f.Value.String())
		})
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      l.strict,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create decoder: %v", ErrConfigUnmarshal, err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		msg := err.Error()
		if l.configFile != "" && strings.Contains(msg, "has invalid keys:") {
			msg = fmt.Sprintf("%s: %s", l.configFile, msg)
		}
		return fmt.Errorf("%w: %s", ErrConfigUnmarshal, msg)
	}

	return nil
}
