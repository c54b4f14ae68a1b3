package operator

import (
	"slices"
	"strings"
)

// Symbol names an operator. Registry keys are normalized symbols.
type Symbol string

// Built-in operator symbols.
const (
	Nul Symbol = "NUL"
	Des Symbol = "DES"
	Ins Symbol = "INS"
	Seg Symbol = "SEG"
	Con Symbol = "CON"
	Alt Symbol = "ALT"
	Syn Symbol = "SYN"
	Sup Symbol = "SUP"
	Rec Symbol = "REC"
)

var builtinSymbols = []Symbol{Nul, Des, Ins, Seg, Con, Alt, Syn, Sup, Rec}

// ParseSymbol normalizes s: surrounding whitespace is dropped and letters
// are upper-cased.
func ParseSymbol(s string) Symbol {
	return Symbol(strings.ToUpper(strings.TrimSpace(s)))
}

// Symbols returns the built-in vocabulary in canonical order.
func Symbols() []Symbol {
	return slices.Clone(builtinSymbols)
}

// Builtin reports whether s is one of the nine built-in symbols.
func (s Symbol) Builtin() bool {
	return slices.Contains(builtinSymbols, s)
}

func (s Symbol) String() string { return string(s) }
