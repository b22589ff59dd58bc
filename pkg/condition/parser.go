package condition

import "github.com/visakit/visarepr/pkg/facts"

// parser implements recursive descent over the condition grammar.
type parser struct {
	lexer *lexer
	token token // current token
	peek  token // lookahead token
}

// Parse parses one condition expression. Atom keys are checked against
// the closed attribute set; a reference to an unknown key fails with
// *UnknownKeyError rather than parsing into a predicate that can never
// hold.
func Parse(input string) (Condition, error) {
	p := &parser{lexer: newLexer(input)}
	// Read two tokens to initialize current and peek.
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if p.token.typ != tokenEOF {
		return nil, p.errorf(p.token.pos, "unexpected %s after condition", p.token.typ)
	}
	return cond, nil
}

// MustParse is Parse for expressions known to be well formed, such as
// tool-emitted fragments. It panics on error.
func MustParse(input string) Condition {
	c, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return c
}

func (p *parser) nextToken() error {
	p.token = p.peek
	tok, err := p.lexer.next()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

func (p *parser) expect(typ tokenType) (token, error) {
	if p.token.typ != typ {
		return token{}, p.errorf(p.token.pos, "unexpected %s, expected %s", p.token.typ, typ)
	}
	tok := p.token
	if err := p.nextToken(); err != nil {
		return token{}, err
	}
	return tok, nil
}

// parseCondition → atom | "all(" list ")" | "any(" list ")" | "not(" condition ")"
func (p *parser) parseCondition() (Condition, error) {
	if p.token.typ != tokenIdent {
		return nil, p.errorf(p.token.pos, "unexpected %s, expected a condition", p.token.typ)
	}

	if p.peek.typ == tokenLParen {
		switch p.token.literal {
		case "all", "any", "not":
			return p.parseCompound()
		default:
			return nil, p.errorf(p.token.pos, "unknown operator %q, expected all, any or not", p.token.literal)
		}
	}
	return p.parseAtom()
}

// parseAtom → key "=" quoted-string
func (p *parser) parseAtom() (Condition, error) {
	key, err := p.expect(tokenIdent)
	if err != nil {
		return nil, err
	}
	if !facts.KnownKey(key.literal) {
		return nil, &UnknownKeyError{Key: key.literal, Pos: key.pos}
	}
	if _, err := p.expect(tokenEq); err != nil {
		return nil, err
	}
	val, err := p.expect(tokenString)
	if err != nil {
		return nil, err
	}
	return &Atom{Key: key.literal, Value: val.literal}, nil
}

// parseCompound → ("all" | "any" | "not") "(" list ")"
func (p *parser) parseCompound() (Condition, error) {
	op := p.token
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}

	var children []Condition
	for p.token.typ != tokenRParen {
		child, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		if p.token.typ != tokenComma {
			break
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(tokenRParen); err != nil {
		return nil, err
	}

	switch op.literal {
	case "all":
		return &All{Children: children}, nil
	case "any":
		return &Any{Children: children}, nil
	default: // not
		if len(children) != 1 {
			return nil, p.errorf(op.pos, "not() requires exactly one argument, got %d", len(children))
		}
		return &Not{Child: children[0]}, nil
	}
}
