// Package formula evaluates auto-journal amount formulas. The language is
// deliberately minimal: decimal literals, named parameters, + - * /, unary
// minus and parentheses. Anything else is a hard evaluation error rather than
// an attempt at general-purpose expression handling.
package formula

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
)

// Evaluate resolves expr against params. Unknown parameters, syntax errors and
// division by zero all surface as apperrors.ErrFormulaEvaluation.
func Evaluate(expr string, params map[string]decimal.Decimal) (decimal.Decimal, error) {
	p := &parser{input: expr, params: params}
	p.skipSpaces()
	result, err := p.parseExpression()
	if err != nil {
		return decimal.Zero, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return decimal.Zero, fmt.Errorf("%w: unexpected %q at position %d in %q",
			apperrors.ErrFormulaEvaluation, p.input[p.pos:], p.pos, expr)
	}
	return result, nil
}

// RenderTemplate substitutes {name} placeholders in a description template
// with parameter values. Placeholders with no matching parameter are left
// as-is; descriptions are cosmetic and must not fail generation.
func RenderTemplate(template string, params map[string]decimal.Decimal) string {
	if template == "" || !strings.Contains(template, "{") {
		return template
	}
	var b strings.Builder
	for i := 0; i < len(template); {
		open := strings.IndexByte(template[i:], '{')
		if open < 0 {
			b.WriteString(template[i:])
			break
		}
		open += i
		close := strings.IndexByte(template[open:], '}')
		if close < 0 {
			b.WriteString(template[i:])
			break
		}
		close += open
		name := template[open+1 : close]
		if value, ok := params[name]; ok {
			b.WriteString(template[i:open])
			b.WriteString(value.String())
		} else {
			b.WriteString(template[i : close+1])
		}
		i = close + 1
	}
	return b.String()
}

type parser struct {
	input  string
	pos    int
	params map[string]decimal.Decimal
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

// parseExpression handles + and -.
func (p *parser) parseExpression() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Add(right)
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Sub(right)
		default:
			return left, nil
		}
	}
}

// parseTerm handles * and /.
func (p *parser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseFactor()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Mul(right)
		case '/':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			if right.IsZero() {
				return decimal.Zero, fmt.Errorf("%w: division by zero", apperrors.ErrFormulaEvaluation)
			}
			left = left.Div(right)
		default:
			return left, nil
		}
	}
}

// parseFactor handles literals, parameters, parentheses and unary minus.
func (p *parser) parseFactor() (decimal.Decimal, error) {
	p.skipSpaces()
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		inner, err := p.parseExpression()
		if err != nil {
			return decimal.Zero, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return decimal.Zero, fmt.Errorf("%w: missing closing parenthesis", apperrors.ErrFormulaEvaluation)
		}
		p.pos++
		return inner, nil
	case c == '-':
		p.pos++
		inner, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}
		return inner.Neg(), nil
	case c >= '0' && c <= '9':
		return p.parseNumber()
	case isIdentStart(c):
		return p.parseParameter()
	default:
		return decimal.Zero, fmt.Errorf("%w: unexpected character %q at position %d", apperrors.ErrFormulaEvaluation, string(c), p.pos)
	}
}

func (p *parser) parseNumber() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	value, err := decimal.NewFromString(p.input[start:p.pos])
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid number %q", apperrors.ErrFormulaEvaluation, p.input[start:p.pos])
	}
	return value, nil
}

func (p *parser) parseParameter() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) && isIdentPart(p.input[p.pos]) {
		p.pos++
	}
	name := p.input[start:p.pos]
	value, ok := p.params[name]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown parameter %q", apperrors.ErrFormulaEvaluation, name)
	}
	return value, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
