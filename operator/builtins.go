package operator

import (
	"github.com/kbukum/opflow/logger"
)

// DefaultMaxIterations caps REC when no other cap is configured.
const DefaultMaxIterations = 100

// Deps are the collaborators shared by the built-in handlers.
type Deps struct {
	Logger *logger.Logger
	// MaxIterations caps REC iterations; zero means DefaultMaxIterations.
	MaxIterations int
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.MaxIterations <= 0 {
		d.MaxIterations = DefaultMaxIterations
	}
	return d
}

// Builtin returns the built-in handler for sym. The second result is false
// for symbols outside the built-in vocabulary.
func Builtin(sym Symbol, deps Deps) (Handler, bool) {
	deps = deps.withDefaults()
	switch sym {
	case Nul:
		return nul, true
	case Des:
		return des, true
	case Ins:
		return ins, true
	case Seg:
		return seg, true
	case Con:
		return con, true
	case Alt:
		return alt, true
	case Syn:
		return syn, true
	case Sup:
		return sup, true
	case Rec:
		return newRec(deps), true
	}
	return nil, false
}
