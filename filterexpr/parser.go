package filterexpr

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/brimdata/tabq/tqe"
	"github.com/brimdata/tabq/vector"
)

type parser struct {
	s    scanner.Scanner
	tok  rune
	text string
	pos  scanner.Position
	errs []*SyntaxError
}

func newParser(src string) *parser {
	p := &parser{}
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings | scanner.ScanRawStrings
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.errs = append(p.errs, &SyntaxError{Msg: msg, Offset: s.Pos().Offset})
	}
	p.next()
	return p
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
	p.pos = p.s.Position
	switch p.tok {
	case '=', '!', '<', '>':
		if p.s.Peek() == '=' {
			p.s.Next()
			p.text += "="
		}
	case '&', '|':
		if p.s.Peek() == p.tok {
			p.s.Next()
			p.text += string(p.tok)
		}
	}
}

// SyntaxError locates a parse failure within the expression source.
type SyntaxError struct {
	Msg    string
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("filter expression: %s at offset %d", e.Msg, e.Offset)
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return tqe.E(tqe.Invalid, &SyntaxError{Msg: fmt.Sprintf(format, args...), Offset: p.pos.Offset})
}

func (p *parser) describe() string {
	if p.tok == scanner.EOF {
		return "end of input"
	}
	return strconv.Quote(p.text)
}

func (p *parser) parse() (node, error) {
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if len(p.errs) > 0 {
		return nil, tqe.E(tqe.Invalid, p.errs[0])
	}
	if p.tok != scanner.EOF {
		return nil, p.errorf("unexpected %s", p.describe())
	}
	return n, nil
}

func (p *parser) keyword(words ...string) (string, bool) {
	for _, w := range words {
		if p.text == w && (p.tok == scanner.Ident || !isWord(w)) {
			return w, true
		}
	}
	return "", false
}

func isWord(s string) bool {
	return s != "" && (s[0] >= 'a' && s[0] <= 'z')
}

func (p *parser) parseOr() (node, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.keyword("or", "||"); !ok {
			return lhs, nil
		}
		p.next()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &binary{op: "or", lhs: lhs, rhs: rhs}
	}
}

func (p *parser) parseAnd() (node, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.keyword("and", "&&"); !ok {
			return lhs, nil
		}
		p.next()
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = &binary{op: "and", lhs: lhs, rhs: rhs}
	}
}

func (p *parser) parseNot() (node, error) {
	if _, ok := p.keyword("not", "!"); ok {
		p.next()
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &unary{op: "not", x: x}, nil
	}
	return p.parseCompare()
}

func (p *parser) parseCompare() (node, error) {
	lhs, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	op, ok := p.keyword("==", "!=", "<=", ">=", "<", ">")
	if !ok {
		return lhs, nil
	}
	p.next()
	rhs, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	return &binary{op: op, lhs: lhs, rhs: rhs}, nil
}

func (p *parser) parseSum() (node, error) {
	lhs, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.keyword("+", "-")
		if !ok {
			return lhs, nil
		}
		p.next()
		rhs, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		lhs = &binary{op: op, lhs: lhs, rhs: rhs}
	}
}

func (p *parser) parseProduct() (node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.keyword("*", "/")
		if !ok {
			return lhs, nil
		}
		p.next()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = &binary{op: op, lhs: lhs, rhs: rhs}
	}
}

func (p *parser) parseUnary() (node, error) {
	if _, ok := p.keyword("-"); ok {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if lit, ok := x.(*literal); ok {
			if i, ok := lit.val.AsInt(); ok && lit.val.Kind() == vector.KindInt {
				return &literal{val: vector.Int(-i)}, nil
			}
			if f, ok := lit.val.AsFloat(); ok && lit.val.Kind() == vector.KindFloat {
				return &literal{val: vector.Float(-f)}, nil
			}
		}
		return &unary{op: "-", x: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	switch p.tok {
	case scanner.Int:
		i, err := strconv.ParseInt(p.text, 0, 64)
		if err != nil {
			return nil, p.errorf("bad integer %s", p.text)
		}
		p.next()
		return &literal{val: vector.Int(i)}, nil
	case scanner.Float:
		f, err := strconv.ParseFloat(p.text, 64)
		if err != nil {
			return nil, p.errorf("bad number %s", p.text)
		}
		p.next()
		return &literal{val: vector.Float(f)}, nil
	case scanner.String:
		s, err := strconv.Unquote(p.text)
		if err != nil {
			return nil, p.errorf("bad string %s", p.text)
		}
		p.next()
		return &literal{val: vector.String(s)}, nil
	case scanner.RawString:
		name := strings.Trim(p.text, "`")
		p.next()
		return ident(name), nil
	case scanner.Ident:
		text := p.text
		p.next()
		switch text {
		case "true":
			return &literal{val: vector.Bool(true)}, nil
		case "false":
			return &literal{val: vector.Bool(false)}, nil
		case "and", "or", "not":
			return nil, p.errorf("unexpected keyword %q", text)
		}
		return ident(text), nil
	case '(':
		p.next()
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok != ')' {
			return nil, p.errorf("expected ) but found %s", p.describe())
		}
		p.next()
		return n, nil
	}
	return nil, p.errorf("unexpected %s", p.describe())
}
