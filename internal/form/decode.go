package form

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode copies accepted values into out, which must be a pointer to a
// struct whose json tags name the contract fields.
func Decode(values Values, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return fmt.Errorf("form: build decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(values)); err != nil {
		return fmt.Errorf("form: decode: %w", err)
	}
	return nil
}
