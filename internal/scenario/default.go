package scenario

import (
	_ "embed"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in Alice/Bob scenario.
func Default() *Scenario {
	s, err := Parse(defaultYAML)
	if err != nil {
		panic("default scenario: " + err.Error())
	}
	return s
}
