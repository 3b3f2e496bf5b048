package config

import (
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const maskedValue = "********"

// Dump writes the effective settings as TOML with secrets masked.
func Dump(w io.Writer, v *viper.Viper) error {
	settings := map[string]map[string]any{}
	for _, key := range keys {
		section, name, _ := strings.Cut(key, ".")
		if settings[section] == nil {
			settings[section] = map[string]any{}
		}

		value := v.Get(key)
		if value == nil {
			value = ""
		}
		if secretKeys[key] && fmt.Sprint(value) != "" {
			value = maskedValue
		}
		settings[section][name] = fmt.Sprint(value)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	_, err = w.Write(data)
	return err
}
