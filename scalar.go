package yaml

import (
	"regexp"
	"strings"

	"github.com/yaml-peg/yaml-peg-go/internal/cursor"
)

var (
	reInt   = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)$|^0o[0-7]+$|^0x[0-9A-Fa-f]+$`)
	reFloat = regexp.MustCompile(`^[+-]?(\.inf|\.Inf|\.INF)$|^\.nan$|^\.NaN$|^\.NAN$|^[+-]?([0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// classifyScalar turns a successfully matched plain-scalar lexeme into its
// Yaml variant, per spec.md §4.4's classification table. Quoted, literal,
// and folded scalars skip this and are always Str.
func classifyScalar(s string) Yaml {
	switch s {
	case "null", "Null", "NULL", "~", "":
		return Null()
	case "true", "True", "TRUE":
		return Bool(true)
	case "false", "False", "FALSE":
		return Bool(false)
	}
	if reFloat.MatchString(s) && strings.ContainsAny(s, ".eE") {
		return Float(s)
	}
	if reInt.MatchString(s) {
		return Int(s)
	}
	return Str(s)
}

// flowStopSet is the set of bytes (beyond the universal indicator set) that
// terminate a plain scalar when parsing inside flow context.
var flowStopSet = []byte(",[]{}")

// isPlainScalarStart reports whether food may begin a plain scalar: it
// must not start with an indicator byte, except that '-', '?', and ':'
// are only indicators when immediately followed by a space/EOF/newline
// (where they would introduce a block construct); otherwise they may
// begin a plain scalar ("-1", "?x", "a:b" are all plain scalars).
func isPlainScalarStart(food []byte) bool {
	if len(food) == 0 {
		return false
	}
	if !cursor.IsIndicator(food[0]) {
		return true
	}
	if food[0] == '-' || food[0] == '?' || food[0] == ':' {
		return len(food) > 1 && !isSpaceTab(food[1]) && food[1] != '\n'
	}
	return false
}

// parsePlainScalar matches an unquoted scalar: it must not begin with an
// indicator byte, and it runs until (a) a "flow stop" byte is hit while
// inFlow is true, (b) ": " or a ':' immediately before a newline is seen
// (which would start a mapping), or (c) the line ends and folding cannot
// continue the scalar at the required indent. Interior line breaks fold to
// a single space; blank lines fold to a newline (per spec.md §4.4/Folding
// in the glossary).
func (p *Parser) parsePlainScalar(level int, inFlow bool) (string, error) {
	c := p.c
	if !isPlainScalarStart(c.Food()) {
		return "", cursor.ErrMismatch
	}

	var lines []string
	var blankRuns []int // blankRuns[i] = blank lines between lines[i] and lines[i+1]
	for {
		line, err := p.scanPlainLine(inFlow)
		if err != nil {
			return "", err
		}
		lines = append(lines, strings.TrimRight(line, " \t"))

		pos, eaten := c.Snapshot()
		blanks, ok := p.tryContinuePlainScalar(level, inFlow)
		if !ok {
			c.Restore(pos, eaten)
			break
		}
		blankRuns = append(blankRuns, blanks)
	}
	return foldLines(lines, blankRuns), nil
}

// scanPlainLine consumes one physical line's worth of a plain scalar,
// stopping before a bare newline, before ": "/":"+EOF/":"+newline (which
// would start a mapping), and, in flow context, before any of
// flowStopSet. It requires at least one byte to match.
func (p *Parser) scanPlainLine(inFlow bool) (string, error) {
	c := p.c
	start := c.Pos()
	for {
		food := c.Food()
		if len(food) == 0 || isLineBreak(food[0]) {
			break
		}
		if food[0] == ':' && (len(food) == 1 || isSpaceTab(food[1]) || isLineBreak(food[1])) {
			break
		}
		if inFlow && cursor.IsIn(flowStopSet)(food[0]) {
			break
		}
		_ = c.TakeWhile(cursor.IsIn([]byte{food[0]}), cursor.One())
	}
	if c.Pos() == start {
		return "", cursor.ErrMismatch
	}
	return c.Slice(start, c.Pos()), nil
}

// tryContinuePlainScalar attempts to fold the plain scalar across one or
// more line breaks: a continuation line at a deeper indent than level
// continues the scalar. It reports how many blank lines separated the
// previous line from this one, which the caller folds to that many '\n's
// (zero blank lines folds to a single space) per spec.md §4.4/Folding.
func (p *Parser) tryContinuePlainScalar(level int, inFlow bool) (int, bool) {
	c := p.c
	if err := newline(c); err != nil {
		return 0, false
	}
	blanks := 0
	for blankLine(c) == nil {
		blanks++
	}
	if inFlow {
		_ = c.TakeWhile(isSpaceTab, cursor.AtLeast(0))
		next := c.Food()
		if len(next) == 0 || cursor.IsIn(append([]byte(":"), flowStopSet...))(next[0]) {
			return 0, false
		}
		return blanks, true
	}
	pos, eaten := c.Snapshot()
	if c.Indent(level+1) != nil {
		c.Restore(pos, eaten)
		return 0, false
	}
	next := c.Food()
	if len(next) == 0 || next[0] == '\n' {
		return 0, false
	}
	return blanks, true
}

// foldLines joins a plain scalar's physical lines per the
// folding rule: adjacent non-blank lines join with a single space;
// blankRuns[i] blank lines between lines[i] and lines[i+1] instead fold to
// that many '\n's.
func foldLines(lines []string, blankRuns []int) string {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			if blankRuns[i-1] > 0 {
				sb.WriteString(strings.Repeat("\n", blankRuns[i-1]))
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(l)
	}
	return sb.String()
}

// atMappingColon checks, without consuming, whether the cursor is at a
// ": " or ":" + newline sequence -- the point at which a plain scalar must
// yield to a block-mapping value separator.
func (p *Parser) atMappingColon() bool {
	return p.c.Peek(func(c *cursor.Cursor) bool {
		if err := c.Sym(':'); err != nil {
			return false
		}
		next := c.Food()
		return len(next) == 0 || isSpaceTab(next[0]) || next[0] == '\n'
	})
}

// parseSingleQuoted matches a '...' scalar; the only escape is '' -> '.
func (p *Parser) parseSingleQuoted() (string, error) {
	c := p.c
	if err := c.Sym('\''); err != nil {
		return "", err
	}
	var sb strings.Builder
	for {
		segStart := c.Pos()
		_ = c.TakeWhile(func(b byte) bool { return b != '\'' && b != '\n' }, cursor.AtLeast(0))
		sb.WriteString(c.Slice(segStart, c.Pos()))
		food := c.Food()
		if len(food) == 0 {
			return "", c.Terminatef("unterminated single-quoted scalar")
		}
		if food[0] == '\n' {
			sb.WriteString(" ")
			_ = newline(c)
			continue
		}
		// food[0] == '\''
		_ = c.Sym('\'')
		if next := c.Food(); len(next) > 0 && next[0] == '\'' {
			_ = c.Sym('\'')
			sb.WriteByte('\'')
			continue
		}
		break
	}
	return sb.String(), nil
}

// parseDoubleQuoted matches a "..." scalar with the full escape table.
func (p *Parser) parseDoubleQuoted() (string, error) {
	c := p.c
	if err := c.Sym('"'); err != nil {
		return "", err
	}
	var sb strings.Builder
	for {
		segStart := c.Pos()
		_ = c.TakeWhile(func(b byte) bool { return b != '"' && b != '\\' && b != '\n' }, cursor.AtLeast(0))
		sb.WriteString(c.Slice(segStart, c.Pos()))
		food := c.Food()
		if len(food) == 0 {
			return "", c.Terminatef("unterminated double-quoted scalar")
		}
		switch food[0] {
		case '"':
			_ = c.Sym('"')
			return sb.String(), nil
		case '\n':
			_ = newline(c)
			blanks := 0
			for {
				pos, eaten := c.Snapshot()
				_ = c.TakeWhile(isSpaceTab, cursor.AtLeast(0))
				if err := newline(c); err != nil {
					c.Restore(pos, eaten)
					break
				}
				blanks++
			}
			_ = c.TakeWhile(isSpaceTab, cursor.AtLeast(0))
			if blanks > 0 {
				sb.WriteString(strings.Repeat("\n", blanks))
			} else {
				sb.WriteString(" ")
			}
		case '\\':
			_ = c.Sym('\\')
			r, err := p.parseDoubleQuoteEscape()
			if err != nil {
				return "", err
			}
			sb.WriteString(r)
		}
	}
}

func (p *Parser) parseDoubleQuoteEscape() (string, error) {
	c := p.c
	food := c.Food()
	if len(food) == 0 {
		return "", c.Terminatef("unterminated escape sequence")
	}
	b := food[0]
	switch b {
	case '0':
		_ = c.Sym('0')
		return "\x00", nil
	case 'a':
		_ = c.Sym('a')
		return "\a", nil
	case 'b':
		_ = c.Sym('b')
		return "\b", nil
	case 't':
		_ = c.Sym('t')
		return "\t", nil
	case 'n':
		_ = c.Sym('n')
		return "\n", nil
	case 'v':
		_ = c.Sym('v')
		return "\v", nil
	case 'f':
		_ = c.Sym('f')
		return "\f", nil
	case 'r':
		_ = c.Sym('r')
		return "\r", nil
	case 'e':
		_ = c.Sym('e')
		return "\x1b", nil
	case '"':
		_ = c.Sym('"')
		return "\"", nil
	case '\\':
		_ = c.Sym('\\')
		return "\\", nil
	case 'N':
		_ = c.Sym('N')
		return "\u0085", nil
	case '_':
		_ = c.Sym('_')
		return "\u00a0", nil
	case 'L':
		_ = c.Sym('L')
		return "\u2028", nil
	case 'P':
		_ = c.Sym('P')
		return "\u2029", nil
	case '\n':
		_ = newline(c)
		_ = c.TakeWhile(isSpaceTab, cursor.AtLeast(0))
		return "", nil
	case 'x':
		_ = c.Sym('x')
		return p.parseHexEscape(2)
	case 'u':
		_ = c.Sym('u')
		return p.parseHexEscape(4)
	case 'U':
		_ = c.Sym('U')
		return p.parseHexEscape(8)
	default:
		return "", c.Terminatef("invalid escape sequence '\\%c'", b)
	}
}

// chomp selects the trailing-newline policy of a block scalar header: strip
// (-) drops all trailing line breaks, keep (+) preserves them all, and the
// default (clip) keeps exactly one final line break if the scalar is
// non-empty.
type chomp int

const (
	chompClip chomp = iota
	chompStrip
	chompKeep
)

// parseBlockScalar matches a literal ('|') or folded ('>') block scalar at
// the given parent indentation level: header (style + optional chomping
// indicator + optional explicit indent digit), then body lines.
func (p *Parser) parseBlockScalar(level int) (string, error) {
	c := p.c
	food := c.Food()
	if len(food) == 0 || (food[0] != '|' && food[0] != '>') {
		return "", cursor.ErrMismatch
	}
	folded := food[0] == '>'
	_ = c.Sym(food[0])

	ch := chompClip
	explicitIndent := 0
	for {
		food = c.Food()
		if len(food) == 0 {
			break
		}
		switch food[0] {
		case '-':
			ch = chompStrip
			_ = c.Sym('-')
			continue
		case '+':
			ch = chompKeep
			_ = c.Sym('+')
			continue
		}
		if cursor.IsDigit(food[0]) {
			explicitIndent = int(food[0] - '0')
			_ = c.Sym(food[0])
			continue
		}
		break
	}
	_ = inlineGap(c)
	if err := newline(c); err != nil {
		if !c.AtEOF() {
			return "", c.Terminatef("malformed block scalar header")
		}
	}

	bodyIndent := explicitIndent
	var rawLines []string
	var blankRun int
	for {
		pos, eaten := c.Snapshot()
		n := 0
		for blankLine(c) == nil {
			n++
		}
		if n > 0 {
			blankRun += n
		}
		if c.AtEOF() {
			c.Restore(pos, eaten)
			break
		}
		lineStart := c.Pos()
		if bodyIndent == 0 {
			col := 0
			for _, b := range c.Food() {
				if b != ' ' {
					break
				}
				col++
			}
			if col == 0 {
				c.Restore(pos, eaten)
				break
			}
			bodyIndent = col
		}
		spaces := 0
		for _, b := range c.Food() {
			if b != ' ' || spaces >= bodyIndent {
				break
			}
			spaces++
		}
		if spaces < bodyIndent {
			c.Restore(pos, eaten)
			break
		}
		_ = c.TakeWhile(cursor.IsIn([]byte(" ")), cursor.InRange(bodyIndent, bodyIndent))
		_ = lineStart
		contentStart := c.Pos()
		_ = c.TakeWhile(func(b byte) bool { return b != '\n' }, cursor.AtLeast(0))
		for i := 0; i < blankRun; i++ {
			rawLines = append(rawLines, "")
		}
		blankRun = 0
		rawLines = append(rawLines, c.Slice(contentStart, c.Pos()))
		if err := newline(c); err != nil {
			break
		}
	}

	body := assembleBlockScalar(rawLines, folded, ch)
	return body, nil
}

// assembleBlockScalar joins a block scalar's raw content lines according
// to its style (literal keeps line breaks verbatim; folded joins adjacent
// non-empty lines with a space and turns blank lines into line breaks) and
// its chomping indicator.
func assembleBlockScalar(lines []string, folded bool, ch chomp) string {
	trailingBlanks := 0
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
		trailingBlanks++
	}
	if len(lines) == 0 {
		return ""
	}
	var sb strings.Builder
	if folded {
		prevBlank := true
		for i, l := range lines {
			if l == "" {
				sb.WriteString("\n")
				prevBlank = true
				continue
			}
			if i > 0 && !prevBlank {
				sb.WriteString(" ")
			} else if i > 0 && prevBlank {
				// blank line already emitted its own '\n'
			}
			sb.WriteString(l)
			prevBlank = false
		}
	} else {
		for i, l := range lines {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(l)
		}
	}
	switch ch {
	case chompStrip:
		return sb.String()
	case chompKeep:
		return sb.String() + strings.Repeat("\n", trailingBlanks+1)
	default:
		return sb.String() + "\n"
	}
}

func (p *Parser) parseHexEscape(n int) (string, error) {
	c := p.c
	start := c.Pos()
	if err := c.TakeWhile(cursor.IsHexDigit, cursor.InRange(n, n)); err != nil {
		return "", c.Terminatef("invalid hex escape")
	}
	hex := c.Slice(start, c.Pos())
	var r rune
	for _, ch := range hex {
		r <<= 4
		switch {
		case ch >= '0' && ch <= '9':
			r |= rune(ch - '0')
		case ch >= 'a' && ch <= 'f':
			r |= rune(ch-'a') + 10
		case ch >= 'A' && ch <= 'F':
			r |= rune(ch-'A') + 10
		}
	}
	return string(r), nil
}
