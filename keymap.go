package spritedit

import (
	"fmt"
	"strings"
)

// KeyCombo is a single modifier+key chord, e.g. Cmd+Shift+P. The zero value
// means "no shortcut". Matching is exact: no chorded sequences.
type KeyCombo struct {
	Mods KeyModifiers
	Key  string // canonical upper-case key name: "P", "G", "0", "+", "-"
}

// IsZero reports whether the combo is unset.
func (k KeyCombo) IsZero() bool { return k.Key == "" && k.Mods == 0 }

// String renders the canonical form, e.g. "Cmd+Shift+P".
func (k KeyCombo) String() string {
	if k.IsZero() {
		return ""
	}
	var b strings.Builder
	if k.Mods&ModMeta != 0 {
		b.WriteString("Cmd+")
	}
	if k.Mods&ModCtrl != 0 {
		b.WriteString("Ctrl+")
	}
	if k.Mods&ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if k.Mods&ModShift != 0 {
		b.WriteString("Shift+")
	}
	b.WriteString(k.Key)
	return b.String()
}

// ParseKeyCombo parses a combo like "Cmd+Shift+P", "ctrl+n", "G", or "+".
// Modifier names are case-insensitive; Cmd, Meta, and Super are synonyms,
// as are Alt and Option. A trailing "+" after a separator is the plus key
// itself.
func ParseKeyCombo(s string) (KeyCombo, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return KeyCombo{}, fmt.Errorf("spritedit: empty key combo")
	}

	var combo KeyCombo
	tokens := strings.Split(s, "+")
	for i, tok := range tokens {
		switch strings.ToLower(strings.TrimSpace(tok)) {
		case "cmd", "meta", "super":
			combo.Mods |= ModMeta
		case "ctrl", "control":
			combo.Mods |= ModCtrl
		case "alt", "option":
			combo.Mods |= ModAlt
		case "shift":
			combo.Mods |= ModShift
		case "":
			// Two consecutive separators at the end mean the separator
			// itself is the key ("Cmd++" = Cmd and plus, "+" = plus).
			// A single trailing separator ("Cmd+") is a dangling chord
			// and falls through to the no-key error below.
			if i == len(tokens)-1 && i > 0 && strings.TrimSpace(tokens[i-1]) == "" {
				combo.Key = "+"
			}
		default:
			if combo.Key != "" {
				return KeyCombo{}, fmt.Errorf("spritedit: key combo %q has more than one key", s)
			}
			combo.Key = strings.ToUpper(strings.TrimSpace(tok))
		}
	}
	if combo.Key == "" {
		return KeyCombo{}, fmt.Errorf("spritedit: key combo %q has no key", s)
	}
	return combo, nil
}
