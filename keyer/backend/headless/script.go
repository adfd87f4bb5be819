package headless

import (
	"fmt"
	"strings"

	"github.com/valerio/go-keyer/keyer/backend"
)

// Script symbols, one per polling cycle.
const (
	SymbolDit     = '.'
	SymbolDah     = '-'
	SymbolSqueeze = '='
	SymbolNone    = '_'
)

// ParseScript turns a paddle script into one contact sample per polling
// cycle. '.' closes the dit paddle, '-' the dah paddle, '=' both, and '_' or
// a space neither. '|' and newlines are ignored so long scripts can be laid
// out by hand.
func ParseScript(script string) ([]backend.Contacts, error) {
	var cycles []backend.Contacts
	for i, r := range script {
		switch r {
		case SymbolDit:
			cycles = append(cycles, backend.Contacts{Dit: true})
		case SymbolDah:
			cycles = append(cycles, backend.Contacts{Dah: true})
		case SymbolSqueeze:
			cycles = append(cycles, backend.Contacts{Dit: true, Dah: true})
		case SymbolNone, ' ':
			cycles = append(cycles, backend.Contacts{})
		case '|', '\n', '\r', '\t':
		default:
			return nil, fmt.Errorf("invalid paddle script symbol %q at offset %d", r, i)
		}
	}
	return cycles, nil
}

// FormatScript is the inverse of ParseScript.
func FormatScript(cycles []backend.Contacts) string {
	var b strings.Builder
	for _, c := range cycles {
		switch {
		case c.Dit && c.Dah:
			b.WriteRune(SymbolSqueeze)
		case c.Dit:
			b.WriteRune(SymbolDit)
		case c.Dah:
			b.WriteRune(SymbolDah)
		default:
			b.WriteRune(SymbolNone)
		}
	}
	return b.String()
}
