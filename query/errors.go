package query

// LexError reports an input that cannot be split into tokens. It carries the
// full original search string so callers can echo it back to the user.
type LexError struct {
	Input string
	Pos   int
}

func (e *LexError) Error() string {
	return "Invalid search string " + e.Input
}

// ParseError reports a token sequence that violates the expression grammar:
// an unmatched parenthesis, a missing atom, an operator in an invalid
// position, or tokens left over after a complete expression.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return "Invalid search expression " + e.Input
}
