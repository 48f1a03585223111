package lexer

import (
	"gentests/internal/diag"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics. A nil reporter drops them.
	Reporter diag.Reporter
}

func (o Options) reporter() diag.Reporter {
	if o.Reporter == nil {
		return diag.NopReporter{}
	}
	return o.Reporter
}
