package query

// Parse lexes and parses a search expression into an expression tree.
//
// The parser climbs precedence using per-operator binding powers: AND is
// (3, 4), OR is (1, 2) and prefix NOT is 5. Both infix operators are
// left-associative ("a & b & c" groups as "(a & b) & c"), AND binds before
// OR, and NOT binds tightest of all. No semantic validation is performed:
// any name the lexer accepts is a valid leaf.
func Parse(input string) (Node, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	tree, err := parseExpr(tokens, input, 0)
	if err != nil {
		return nil, err
	}
	if _, ok := tokens.Peek(); ok {
		// Tokens after a complete top-level expression, e.g. a stray ')'.
		return nil, &ParseError{Input: input}
	}
	return tree, nil
}

func parseExpr(tokens *TokenStream, input string, minBindingPower int) (Node, error) {
	tok, ok := tokens.Next()
	if !ok {
		return nil, &ParseError{Input: input}
	}

	var lhs Node
	switch tok.Type {
	case TokenLeftParen:
		inner, err := parseExpr(tokens, input, 0)
		if err != nil {
			return nil, err
		}
		closing, ok := tokens.Next()
		if !ok || closing.Type != TokenRightParen {
			return nil, &ParseError{Input: input}
		}
		lhs = inner
	case TokenUnaryOp:
		child, err := parseExpr(tokens, input, notBindingPower)
		if err != nil {
			return nil, err
		}
		lhs = &Not{Child: child}
	case TokenFault:
		lhs = &Leaf{Name: tok.Name}
	default:
		return nil, &ParseError{Input: input}
	}

	for {
		next, ok := tokens.Peek()
		if !ok || next.Type == TokenRightParen {
			break
		}
		if next.Type != TokenBinaryOp {
			// Two atoms in a row, or a prefix operator in infix position.
			return nil, &ParseError{Input: input}
		}
		leftPower, rightPower := next.Op.bindingPower()
		if leftPower < minBindingPower {
			break
		}
		tokens.Next()

		rhs, err := parseExpr(tokens, input, rightPower)
		if err != nil {
			return nil, err
		}
		lhs = &BinOpExpr{Op: next.Op, Left: lhs, Right: rhs}
	}
	return lhs, nil
}
