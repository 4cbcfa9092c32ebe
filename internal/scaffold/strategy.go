package scaffold

import "fmt"

// StrategyID enumerates the closed set of implementation strategies for
// generated functions.
type StrategyID int

const (
	// StrategyBase is a plain function with immediate saving.
	StrategyBase StrategyID = 1
	// StrategyLazySaving queues writes and flushes them from the function
	// itself. This is the default.
	StrategyLazySaving StrategyID = 2
	// StrategyDelegatedSaving queues writes and delegates flushing to the
	// runner.
	StrategyDelegatedSaving StrategyID = 3
)

// StrategyDescriptor is the opaque component selection consumed by rendered
// templates. It is immutable once selected; the scaffolder itself only
// threads it into the context.
type StrategyDescriptor struct {
	ID       StrategyID
	Runner   string
	Function string
}

// Components returns the ordered component references of the descriptor.
func (d StrategyDescriptor) Components() []string {
	return []string{d.Runner, d.Function}
}

// SelectStrategy maps a strategy identifier to its descriptor. The table is
// closed; an unknown identifier is a ConfigurationError.
func SelectStrategy(id StrategyID) (StrategyDescriptor, error) {
	switch id {
	case StrategyBase:
		return StrategyDescriptor{ID: id, Runner: "BaseRunner", Function: "BaseFunction"}, nil
	case StrategyLazySaving:
		return StrategyDescriptor{ID: id, Runner: "BaseRunner", Function: "LazySavingQueueFunction"}, nil
	case StrategyDelegatedSaving:
		return StrategyDescriptor{ID: id, Runner: "LazySavingRunner", Function: "LazyDelegateSavingQueueFunction"}, nil
	default:
		return StrategyDescriptor{}, &ConfigurationError{Reason: fmt.Sprintf("unknown strategy %d (valid: 1, 2, 3)", id)}
	}
}
