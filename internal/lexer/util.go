package lexer

const utf8RuneSelf = 0x80

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isIdentContinueByte treats any non-ASCII byte as identifier content, so
// Unicode identifiers pass through without rune decoding.
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b) || b >= utf8RuneSelf
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
