// Package identity generates unique pipeline identifiers.
package identity

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Generator produces unique string tokens carrying a prefix.
type Generator interface {
	Generate(prefix string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(prefix string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(prefix string) (string, error) { return f(prefix) }

type uuidGenerator struct{}

// UUID returns a generator producing "<prefix>-<uuid v7>".
func UUID() Generator { return uuidGenerator{} }

func (uuidGenerator) Generate(prefix string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("identity: %w", err)
	}
	return join(prefix, id.String()), nil
}

type timestampGenerator struct {
	now func() time.Time
	seq atomic.Uint64
}

// Timestamp returns a generator producing "<prefix>-<unix millis>-<seq>".
// It never fails and is the fallback when no other generator is available.
func Timestamp() Generator { return &timestampGenerator{now: time.Now} }

func (g *timestampGenerator) Generate(prefix string) (string, error) {
	ms := strconv.FormatInt(g.now().UnixMilli(), 10)
	return join(prefix, ms+"-"+strconv.FormatUint(g.seq.Add(1), 10)), nil
}

// Fallback returns a generator that tries primary and falls back to a
// timestamp token when primary is nil or fails.
func Fallback(primary Generator) Generator {
	ts := Timestamp()
	if primary == nil {
		return ts
	}
	return GeneratorFunc(func(prefix string) (string, error) {
		if id, err := primary.Generate(prefix); err == nil && id != "" {
			return id, nil
		}
		return ts.Generate(prefix)
	})
}

func join(prefix, token string) string {
	if prefix == "" {
		return token
	}
	return prefix + "-" + token
}
