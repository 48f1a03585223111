package token

var keywords = map[string]Kind{
	"mod":    KwMod,
	"fn":     KwFn,
	"pub":    KwPub,
	"const":  KwConst,
	"async":  KwAsync,
	"unsafe": KwUnsafe,
	"extern": KwExtern,
	"where":  KwWhere,
	"mut":    KwMut,
	"dyn":    KwDyn,
	"for":    KwFor,
	"impl":   KwImpl,
	"use":    KwUse,
	"static": KwStatic,
	"crate":  KwCrate,
	"super":  KwSuper,
	"self":   KwSelf,
}

// LookupKeyword returns the keyword kind for s, or Ident when s is not a
// keyword of the declaration grammar.
func LookupKeyword(s string) Kind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return Ident
}
