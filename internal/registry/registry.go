// Package registry provides a global registry for keyboard rule factories.
// Rules register themselves in init() functions, allowing levels to select
// a rule by the logic name declared in level data.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/mystery-keyboard/internal/core"
)

// DefaultRule is the logic name used when a level names an unknown rule.
const DefaultRule = "normal"

// ErrUnknownRule is returned by Resolve alongside the default rule.
var ErrUnknownRule = errors.New("registry: unknown rule")

// Rule is the policy that governs keystroke semantics for one level.
// Rules hold no mutable state of their own: every transition receives the
// current core.RuleState and returns the next one, so the owner of the state
// decides when it is reset.
type Rule interface {
	// Name returns the logic name the rule is registered under (e.g. "reverseOrder").
	Name() string

	// Title returns a human-readable name for display.
	Title() string

	// Press decides what a raw key or icon identifier contributes to the buffer.
	// buf is the current answer buffer and must not be modified.
	Press(st core.RuleState, key string, buf []rune) (core.RuleState, core.Outcome)

	// KeyState reports how a key should currently be rendered.
	KeyState(st core.RuleState, key string) core.KeyState

	// KeyboardVisible reports whether the keyboard as a whole is shown.
	KeyboardVisible(st core.RuleState) bool

	// Insertion decides where a committed letter lands in the buffer.
	Insertion(st core.RuleState, letter rune, buf []rune) core.Position
}

// RuleInfo contains metadata about a registered rule.
type RuleInfo struct {
	Name  string
	Title string
}

// Factory is a function that creates a new instance of a rule.
type Factory func() Rule

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a rule factory to the registry.
// Typically called from an init() function.
// Panics if a rule with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: rule %q already registered", name))
	}

	factories[name] = f
	titles[name] = f().Title()
}

// List returns information about all registered rules, sorted by name.
func List() []RuleInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]RuleInfo, 0, len(factories))
	for name := range factories {
		result = append(result, RuleInfo{
			Name:  name,
			Title: titles[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a rule by its logic name.
// Returns an error if the name is not registered.
func Create(name string) (Rule, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRule, name)
	}

	return f(), nil
}

// Resolve instantiates the rule for name, falling back to the default rule
// when the name is unknown. The returned error is a warning wrapping
// ErrUnknownRule; the returned rule is usable in either case.
// Resolve panics only if the default rule itself was never registered.
func Resolve(name string) (Rule, error) {
	r, err := Create(name)
	if err == nil {
		return r, nil
	}

	fallback, ferr := Create(DefaultRule)
	if ferr != nil {
		panic("registry: default rule not registered")
	}
	return fallback, fmt.Errorf("%w, using %q", err, DefaultRule)
}

// Exists checks if a rule with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
