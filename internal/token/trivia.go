package token

import (
	"gentests/internal/source"
)

// TriviaKind classifies non-semantic content preceding a token.
type TriviaKind uint8

const (
	TriviaLineComment TriviaKind = iota // // ...
	TriviaBlockComment                  // /* ... */
	TriviaDocLine                       // /// ...
	TriviaDocBlock                      // /** ... */
)

// Trivia is a comment attached to the following token. Whitespace is not
// recorded.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
