package game

import "fmt"

// ErrInvalidGame is wrapped by every validation failure: missing
// payoffs, malformed chance distributions, payoff arity mismatches.
var ErrInvalidGame = fmt.Errorf("invalid game")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidGame, fmt.Sprintf(format, args...))
}
