package diag

import (
	"fmt"
)

// Code is a compact, stable identifier for a diagnostic kind.
// Ranges: 1xxx lexical, 2xxx syntax, 3xxx structural (module/marker shape),
// 4xxx signature, 5xxx lifetime.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedChar         Code = 1004
	LexBadNumber                Code = 1005
	LexUnterminatedRawString    Code = 1006

	// Syntax
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynUnclosedDelimiter  Code = 2003
	SynExpectType         Code = 2004
	SynUnexpectedTopLevel Code = 2005
	SynExpectToken        Code = 2006
	SynBadAttribute       Code = 2007

	// Structural: processing-unit and instantiation-marker shape
	GenRootNotInline   Code = 3001
	GenMarkerNotInline Code = 3002
	GenMarkerNotEmpty  Code = 3003
	GenMarkerInnerAttr Code = 3004
	GenBadConfigArg    Code = 3005
	GenBadOverrideAttr Code = 3006
	GenBadMarkerArgs   Code = 3007

	// Signature extraction
	SigBadParamPattern Code = 4001
	SigReceiverParam   Code = 4002
	SigConstFn         Code = 4003
	SigExternAbi       Code = 4004
	SigVariadic        Code = 4005
	SigGenericLeak     Code = 4006
	SigArityMismatch   Code = 4007
	SigKindMismatch    Code = 4008

	// Lifetime resolution
	LtPlaceholderAmbiguous Code = 5001
	LtElidedAmbiguous      Code = 5002
	LtPlaceholderInBinder  Code = 5003

	// Input/output
	IOLoadFile  Code = 9001
	IOWriteFile Code = 9002
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexUnterminatedChar:         "unterminated character literal",
	LexBadNumber:                "malformed numeric literal",
	LexUnterminatedRawString:    "unterminated raw string literal",

	SynUnexpectedToken:    "unexpected token",
	SynExpectIdentifier:   "expected identifier",
	SynUnclosedDelimiter:  "unclosed delimiter",
	SynExpectType:         "expected type",
	SynUnexpectedTopLevel: "unexpected top-level construct",
	SynExpectToken:        "expected token",
	SynBadAttribute:       "malformed attribute",

	GenRootNotInline:   "module to expand must be inline",
	GenMarkerNotInline: "module to instantiate tests into must be inline",
	GenMarkerNotEmpty:  "module to instantiate tests into must be empty",
	GenMarkerInnerAttr: "instantiate_tests cannot be an inner attribute",
	GenBadConfigArg:    "unsupported configuration argument",
	GenBadOverrideAttr: "malformed generic_test attribute",
	GenBadMarkerArgs:   "malformed instantiate_tests arguments",

	SigBadParamPattern: "unsupported argument pattern in test function input",
	SigReceiverParam:   "unexpected receiver argument in a test function",
	SigConstFn:         "const test functions are not supported",
	SigExternAbi:       "test functions with an explicit ABI are not supported",
	SigVariadic:        "variadic test functions are not supported",
	SigGenericLeak:     "use of generic parameters in test function signatures is not supported",
	SigArityMismatch:   "inconsistent generic arity across test functions",
	SigKindMismatch:    "inconsistent generic parameter kinds across test functions",

	LtPlaceholderAmbiguous: "lifetime needs to be disambiguated",
	LtElidedAmbiguous:      "elided reference lifetime needs to be disambiguated",
	LtPlaceholderInBinder:  "placeholder lifetime inside a binder scope",

	IOLoadFile:  "failed to load file",
	IOWriteFile: "failed to write file",
}

// ID returns the stable machine-readable form, e.g. "SIG4007".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("SIG%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("LT%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Title returns the short description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
