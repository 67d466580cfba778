package pattern

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// DefaultNestLimit is the maximum number of simultaneously open groups.
const DefaultNestLimit = 1000

// maxRepeat is the largest count accepted in a {n,m} repetition.
const maxRepeat = 1000

// Parse parses s using Go RE2 syntax with Perl extensions and returns the
// span-carrying syntax tree. The returned error, if any, is a *ParseError.
//
// Parse never recurses on the structure of s: open groups live on an explicit
// stack, so arbitrarily nested input is bounded only by DefaultNestLimit.
func Parse(s string) (*AST, error) {
	p := &parser{
		pattern:   s,
		pos:       Position{Line: 1, Column: 1},
		nameSpans: make(map[string]Span),
	}
	return p.parse()
}

// level is the parse state of one nesting level: the top level, or one open group.
type level struct {
	group  *Node // nil at top level
	opener Span  // the '(' that opened group
	alt    *Node // alternation collected so far, nil until the first '|'
	concat *Node // items of the current branch
}

// finish closes the level at end and returns the node it produced.
func (lv *level) finish(end Position) *Node {
	lv.concat.Span.End = end
	node := concatToNode(lv.concat)
	if lv.alt == nil {
		return node
	}
	lv.alt.Sub = append(lv.alt.Sub, node)
	lv.alt.Span.End = end
	return lv.alt
}

type parser struct {
	pattern string
	pos     Position
	levels  []*level

	// lastRepeat is the operator span of the repetition parsed by the
	// previous step, nil if the previous step was anything else.
	lastRepeat *Span

	captures  int
	names     []string
	nameSpans map[string]Span
}

func (p *parser) parse() (*AST, error) {
	if off := invalidUTF8(p.pattern); off >= 0 {
		return nil, p.error(ErrInvalidUTF8, SpanOf(p.pattern, off, off+1))
	}

	p.levels = []*level{{concat: p.newConcat()}}
	for !p.eof() {
		lastRepeat := p.lastRepeat
		p.lastRepeat = nil

		var err error
		switch c := p.char(); c {
		case '(':
			err = p.parseGroupOpen()
		case ')':
			err = p.parseGroupClose()
		case '|':
			p.parseAlternate()
		case '[':
			err = p.parseClass()
		case '*', '+', '?':
			err = p.parseRepetition(lastRepeat)
		case '{':
			err = p.parseCounted(lastRepeat)
		case '.':
			p.push(&Node{Kind: KindDot, Span: p.bumpSpan()})
		case '^':
			p.push(&Node{Kind: KindAssertion, Span: p.bumpSpan(), Assertion: AssertStartLine})
		case '$':
			p.push(&Node{Kind: KindAssertion, Span: p.bumpSpan(), Assertion: AssertEndLine})
		case '\\':
			err = p.parseEscape()
		default:
			p.push(&Node{Kind: KindLiteral, Span: p.bumpSpan(), Rune: c})
		}
		if err != nil {
			return nil, err
		}
	}

	if n := len(p.levels); n > 1 {
		return nil, p.error(ErrGroupUnclosed, p.levels[n-1].opener)
	}
	return &AST{
		Pattern:  p.pattern,
		Root:     p.levels[0].finish(p.pos),
		Captures: p.captures,
		Names:    p.names,
	}, nil
}

// Cursor helpers.

func (p *parser) eof() bool {
	return p.pos.Offset >= len(p.pattern)
}

func (p *parser) rest() string {
	return p.pattern[p.pos.Offset:]
}

func (p *parser) char() rune {
	r, _ := utf8.DecodeRuneInString(p.rest())
	return r
}

func (p *parser) bump() {
	p.pos = advance(p.pattern, p.pos, p.pos.Offset+1)
}

// bumpSpan consumes one character and returns its span.
func (p *parser) bumpSpan() Span {
	start := p.pos
	p.bump()
	return Span{Start: start, End: p.pos}
}

func (p *parser) advanceTo(offset int) {
	p.pos = advance(p.pattern, p.pos, offset)
}

func (p *parser) spanFrom(start Position) Span {
	return Span{Start: start, End: p.pos}
}

// spanAhead returns the span of the next n bytes without consuming them.
func (p *parser) spanAhead(n int) Span {
	return Span{Start: p.pos, End: advance(p.pattern, p.pos, p.pos.Offset+n)}
}

func (p *parser) error(kind ErrorKind, span Span) *ParseError {
	return &ParseError{Kind: kind, Span: span, Pattern: p.pattern}
}

func (p *parser) errorAux(kind ErrorKind, span, aux Span) *ParseError {
	return &ParseError{Kind: kind, Span: span, Auxiliary: &aux, Pattern: p.pattern}
}

// Tree building.

func (p *parser) current() *level {
	return p.levels[len(p.levels)-1]
}

func (p *parser) newConcat() *Node {
	return &Node{Kind: KindConcat, Span: Span{Start: p.pos, End: p.pos}}
}

func (p *parser) push(n *Node) {
	c := p.current().concat
	c.Sub = append(c.Sub, n)
}

// concatToNode collapses a concatenation with no items into Empty and one
// whose single item already covers it into that item.
func concatToNode(c *Node) *Node {
	switch len(c.Sub) {
	case 0:
		return &Node{Kind: KindEmpty, Span: c.Span}
	case 1:
		if c.Sub[0].Span == c.Span {
			return c.Sub[0]
		}
	}
	return c
}

func (p *parser) parseAlternate() {
	lv := p.current()
	lv.concat.Span.End = p.pos
	if lv.alt == nil {
		lv.alt = &Node{Kind: KindAlternation, Span: Span{Start: lv.concat.Span.Start}}
	}
	lv.alt.Sub = append(lv.alt.Sub, concatToNode(lv.concat))
	p.bump()
	lv.concat = p.newConcat()
}

// Groups.

func (p *parser) pushGroup(g *Node, start Position, opener Span) error {
	if len(p.levels) > DefaultNestLimit {
		return p.error(ErrNestLimitExceeded, opener)
	}
	g.Span.Start = start
	p.levels = append(p.levels, &level{group: g, opener: opener, concat: p.newConcat()})
	return nil
}

func (p *parser) parseGroupOpen() error {
	start := p.pos
	opener := p.bumpSpan()

	if p.eof() || p.char() != '?' {
		p.captures++
		p.names = append(p.names, "")
		g := &Node{Kind: KindGroup, Group: GroupCapture, Index: p.captures}
		return p.pushGroup(g, start, opener)
	}

	rest := p.rest()
	for _, prefix := range []string{"?=", "?!", "?<=", "?<!", "?P=", "?P>"} {
		if strings.HasPrefix(rest, prefix) {
			p.advanceTo(p.pos.Offset + len(prefix))
			return p.error(ErrUnsupported, p.spanFrom(start))
		}
	}
	switch {
	case strings.HasPrefix(rest, "?P<"):
		p.advanceTo(p.pos.Offset + 3)
		return p.parseNamedGroup(start, opener)
	case strings.HasPrefix(rest, "?<"):
		p.advanceTo(p.pos.Offset + 2)
		return p.parseNamedGroup(start, opener)
	}

	p.bump() // '?'
	return p.parseFlags(start, opener)
}

func (p *parser) parseNamedGroup(start Position, opener Span) error {
	nameStart := p.pos
	end := strings.IndexByte(p.rest(), '>')
	if end < 0 {
		p.advanceTo(len(p.pattern))
		return p.error(ErrGroupNameInvalid, p.spanFrom(nameStart))
	}
	name := p.rest()[:end]
	p.advanceTo(p.pos.Offset + end)
	nameSpan := p.spanFrom(nameStart)
	if !isValidCaptureName(name) {
		return p.error(ErrGroupNameInvalid, nameSpan)
	}
	if first, ok := p.nameSpans[name]; ok {
		return p.errorAux(ErrGroupNameDuplicate, nameSpan, first)
	}
	p.nameSpans[name] = nameSpan
	p.bump() // '>'

	p.captures++
	p.names = append(p.names, name)
	g := &Node{
		Kind:     KindGroup,
		Group:    GroupNamed,
		Index:    p.captures,
		Name:     name,
		NameSpan: nameSpan,
	}
	return p.pushGroup(g, start, opener)
}

func isValidCaptureName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c != '_' && !isAlnum(rune(c)) {
			return false
		}
	}
	return true
}

// parseFlags parses "flags)" or "flags:" following "(?".
func (p *parser) parseFlags(start Position, opener Span) error {
	set := &FlagSet{Span: Span{Start: p.pos}}
	var negation *Span
	sawFlag := false

	for {
		if p.eof() {
			return p.error(ErrFlagUnexpectedEOF, p.spanFrom(p.pos))
		}
		switch c := p.char(); c {
		case 'i', 'm', 's', 'U':
			set.Items = append(set.Items, Flag{Span: p.bumpSpan(), Char: c})
			sawFlag = true
		case '-':
			sp := p.bumpSpan()
			if negation != nil {
				return p.errorAux(ErrFlagRepeatedNegation, sp, *negation)
			}
			negation = &sp
			set.Items = append(set.Items, Flag{Span: sp, Char: c})
			sawFlag = false
		case ':', ')':
			if negation != nil && !sawFlag {
				return p.error(ErrFlagDanglingNegation, *negation)
			}
			set.Span.End = p.pos
			p.bump()
			if c == ')' {
				p.push(&Node{Kind: KindFlags, Span: p.spanFrom(start), Flags: set})
				return nil
			}
			g := &Node{Kind: KindGroup, Group: GroupNonCapturing, Flags: set}
			return p.pushGroup(g, start, opener)
		default:
			return p.error(ErrFlagUnrecognized, p.spanAhead(utf8.RuneLen(c)))
		}
	}
}

func (p *parser) parseGroupClose() error {
	if len(p.levels) == 1 {
		return p.error(ErrGroupUnopened, p.spanAhead(1))
	}
	lv := p.current()
	inner := lv.finish(p.pos)
	p.bump()
	lv.group.Sub = []*Node{inner}
	lv.group.Span.End = p.pos
	p.levels = p.levels[:len(p.levels)-1]
	p.push(lv.group)
	return nil
}

// Repetition.

func (p *parser) parseRepetition(lastRepeat *Span) error {
	start := p.pos
	var op RepetitionOp
	min, max := 0, -1
	switch p.char() {
	case '?':
		op, max = RepeatZeroOrOne, 1
	case '*':
		op = RepeatZeroOrMore
	case '+':
		op, min = RepeatOneOrMore, 1
	}
	p.bump()
	return p.repeat(op, min, max, start, p.pos, lastRepeat)
}

// parseCounted parses {n}, {n,} or {n,m}. A '{' that does not start a
// well-formed counter is a literal.
func (p *parser) parseCounted(lastRepeat *Span) error {
	start := p.pos
	min, max, n, ok := parseRepeatCount(p.rest())
	if !ok {
		p.push(&Node{Kind: KindLiteral, Span: p.bumpSpan(), Rune: '{'})
		return nil
	}
	p.advanceTo(p.pos.Offset + n)
	if min < 0 || min > maxRepeat || max > maxRepeat || max >= 0 && min > max {
		return p.error(ErrRepetitionCountInvalid, p.spanFrom(start))
	}
	return p.repeat(RepeatRange, min, max, start, p.pos, lastRepeat)
}

// repeat applies a repetition operator that began at start, whose counter
// (if any) ended at countEnd, to the last item of the current concatenation.
func (p *parser) repeat(op RepetitionOp, min, max int, start, countEnd Position, lastRepeat *Span) error {
	greedy := true
	if !p.eof() && p.char() == '?' {
		p.bump()
		greedy = false
	}
	opSpan := p.spanFrom(start)

	if lastRepeat != nil {
		return p.errorAux(ErrRepetitionNested, p.spanFrom(lastRepeat.Start), *lastRepeat)
	}

	// A flag setting is not an operand; the repetition applies to the
	// item before it, grouped with the settings that follow it.
	concat := p.current().concat
	i := len(concat.Sub) - 1
	for i >= 0 && concat.Sub[i].Kind == KindFlags {
		i--
	}
	if i < 0 {
		return p.error(ErrRepetitionMissing, opSpan)
	}
	operand := concat.Sub[i]
	if tail := concat.Sub[i:]; len(tail) > 1 {
		operand = &Node{
			Kind: KindConcat,
			Span: Span{Start: tail[0].Span.Start, End: tail[len(tail)-1].Span.End},
			Sub:  append([]*Node(nil), tail...),
		}
	}
	rep := &Node{
		Kind:   KindRepetition,
		Span:   Span{Start: operand.Span.Start, End: p.pos},
		Sub:    []*Node{operand},
		Op:     op,
		OpSpan: opSpan,
		Min:    min,
		Max:    max,
		Greedy: greedy,
	}
	if op == RepeatRange && (min >= 2 || max >= 2) && !repeatIsValid(rep, maxRepeat) {
		return p.error(ErrRepetitionCountInvalid, Span{Start: start, End: countEnd})
	}
	concat.Sub = append(concat.Sub[:i], rep)
	p.lastRepeat = &rep.OpSpan
	return nil
}

// parseRepeatCount scans a {n}, {n,} or {n,m} counter at the start of s and
// returns the counts and the number of bytes consumed. min is -1 when a count
// overflows.
func parseRepeatCount(s string) (min, max, n int, ok bool) {
	if s == "" || s[0] != '{' {
		return
	}
	t := s[1:]
	var ok1 bool
	if min, t, ok1 = parseInt(t); !ok1 {
		return
	}
	if t == "" {
		return
	}
	if t[0] != ',' {
		max = min
	} else {
		t = t[1:]
		if t == "" {
			return
		}
		if t[0] == '}' {
			max = -1
		} else if max, t, ok1 = parseInt(t); !ok1 {
			return
		} else if max < 0 {
			min = -1
		}
	}
	if t == "" || t[0] != '}' {
		return
	}
	return min, max, len(s) - len(t) + 1, true
}

// parseInt parses a decimal count without leading zeros; n is -1 on overflow.
func parseInt(s string) (n int, rest string, ok bool) {
	if s == "" || s[0] < '0' || '9' < s[0] {
		return
	}
	if len(s) >= 2 && s[0] == '0' && '0' <= s[1] && s[1] <= '9' {
		return
	}
	i := 0
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		if n >= 1e8 {
			n = -1
		} else if n >= 0 {
			n = n*10 + int(s[i]-'0')
		}
		i++
	}
	return n, s[i:], true
}

// repeatIsValid reports whether the product of nested counted repetitions
// under root stays within n.
func repeatIsValid(root *Node, n int) bool {
	type item struct {
		node  *Node
		limit int
	}
	stack := []item{{root, n}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		limit := it.limit
		if it.node.Kind == KindRepetition && it.node.Op == RepeatRange {
			m := it.node.Max
			if m == 0 {
				continue
			}
			if m < 0 {
				m = it.node.Min
			}
			if m > limit {
				return false
			}
			if m > 0 {
				limit /= m
			}
		}
		for _, sub := range it.node.Sub {
			stack = append(stack, item{sub, limit})
		}
	}
	return true
}

// Escapes.

func (p *parser) parseEscape() error {
	start := p.pos
	p.bump() // '\'
	if p.eof() {
		return p.error(ErrTrailingBackslash, p.spanFrom(start))
	}

	switch c := p.char(); c {
	case 'A', 'z', 'b', 'B':
		p.bump()
		p.push(&Node{Kind: KindAssertion, Span: p.spanFrom(start), Assertion: assertionFor(c)})
		return nil
	case 'Q':
		p.bump()
		p.parseQuoted()
		return nil
	case 'p', 'P':
		name, negated, err := p.parseUnicodeClass(start)
		if err != nil {
			return err
		}
		p.push(&Node{Kind: KindClassUnicode, Span: p.spanFrom(start), Name: name, Negated: negated})
		return nil
	case 'd', 'D', 's', 'S', 'w', 'W':
		p.bump()
		perl, negated := perlClassFor(c)
		p.push(&Node{Kind: KindClassPerl, Span: p.spanFrom(start), Perl: perl, Negated: negated})
		return nil
	}

	r, err := p.parseEscapeRune(start)
	if err != nil {
		return err
	}
	p.push(&Node{Kind: KindLiteral, Span: p.spanFrom(start), Rune: r, Escaped: true})
	return nil
}

// parseQuoted emits the text up to \E (or the end of the pattern) as literals.
func (p *parser) parseQuoted() {
	lit := p.rest()
	end := strings.Index(lit, `\E`)
	if end >= 0 {
		lit = lit[:end]
	}
	for range lit {
		r := p.char()
		p.push(&Node{Kind: KindLiteral, Span: p.bumpSpan(), Rune: r})
	}
	if end >= 0 {
		p.advanceTo(p.pos.Offset + 2)
	}
}

// parseEscapeRune parses a single-character escape. The backslash at start
// has been consumed and the parser is at the escaped character.
func (p *parser) parseEscapeRune(start Position) (rune, error) {
	c := p.char()
	p.bump()

	switch c {
	case '1', '2', '3', '4', '5', '6', '7':
		// A single non-zero digit is a back-reference.
		if p.eof() || !isOctal(p.char()) {
			return 0, p.error(ErrUnsupported, p.spanFrom(start))
		}
		fallthrough
	case '0':
		r := c - '0'
		for i := 1; i < 3 && !p.eof() && isOctal(p.char()); i++ {
			r = r*8 + p.char() - '0'
			p.bump()
		}
		return r, nil
	case 'x':
		return p.parseHex(start)
	case 'a':
		return '\a', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'v':
		return '\v', nil
	}
	if c < utf8.RuneSelf && !isAlnum(c) {
		return c, nil
	}
	return 0, p.error(ErrEscapeInvalid, p.spanFrom(start))
}

// parseHex parses the digits of \xHH or \x{H...} after the 'x'.
func (p *parser) parseHex(start Position) (rune, error) {
	invalid := func() (rune, error) {
		return 0, p.error(ErrEscapeInvalid, p.spanFrom(start))
	}
	if p.eof() {
		return invalid()
	}
	if p.char() == '{' {
		p.bump()
		var r rune
		nhex := 0
		for {
			if p.eof() {
				return invalid()
			}
			c := p.char()
			p.bump()
			if c == '}' {
				break
			}
			v := unhex(c)
			if v < 0 {
				return invalid()
			}
			r = r*16 + v
			if r > unicode.MaxRune {
				return invalid()
			}
			nhex++
		}
		if nhex == 0 {
			return invalid()
		}
		return r, nil
	}

	x := unhex(p.char())
	p.bump()
	if p.eof() {
		return invalid()
	}
	y := unhex(p.char())
	p.bump()
	if x < 0 || y < 0 {
		return invalid()
	}
	return x*16 + y, nil
}

// parseUnicodeClass parses \pN, \p{Name} or \p{^Name}. The parser is at the
// 'p' or 'P'; start is the backslash.
func (p *parser) parseUnicodeClass(start Position) (name string, negated bool, err error) {
	negated = p.char() == 'P'
	p.bump()
	if p.eof() {
		return "", false, p.error(ErrEscapeInvalid, p.spanFrom(start))
	}
	if p.char() != '{' {
		c := p.char()
		p.bump()
		name = string(c)
	} else {
		end := strings.IndexByte(p.rest(), '}')
		if end < 0 {
			p.advanceTo(len(p.pattern))
			return "", false, p.error(ErrEscapeInvalid, p.spanFrom(start))
		}
		name = p.rest()[1:end]
		p.advanceTo(p.pos.Offset + end + 1)
	}
	if strings.HasPrefix(name, "^") {
		negated = !negated
		name = name[1:]
	}
	if !isUnicodeClass(name) {
		return "", false, p.error(ErrClassNameUnknown, p.spanFrom(start))
	}
	return name, negated, nil
}

// isUnicodeClass reports whether name is accepted by \p. Names match
// ignoring case and any '_', '-' or ' ', so \pl and \p{letter} both name L.
func isUnicodeClass(name string) bool {
	name = canonicalClassName(name)
	switch name {
	case "Any", "Assigned", "Ascii", "Lc":
		return true
	}
	if unicode.Categories[name] != nil || unicode.Scripts[name] != nil {
		return true
	}
	return categoryAliases()[name] != ""
}

// canonicalClassName upper-cases the first letter of name, lower-cases the
// rest and drops separators.
func canonicalClassName(name string) string {
	b := make([]byte, 0, len(name))
	first := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || c == '-' || c == ' ':
			continue
		case first:
			if 'a' <= c && c <= 'z' {
				c -= 'a' - 'A'
			}
			first = false
		case 'A' <= c && c <= 'Z':
			c += 'a' - 'A'
		}
		b = append(b, c)
	}
	return string(b)
}

// categoryAliases maps canonical alias names such as "Letter" to their
// category keys.
var categoryAliases = sync.OnceValue(func() map[string]string {
	m := make(map[string]string, len(unicode.CategoryAliases))
	for alias, name := range unicode.CategoryAliases {
		m[canonicalClassName(alias)] = name
	}
	return m
})

// Bracketed classes.

func (p *parser) parseClass() error {
	start := p.pos
	opener := p.bumpSpan()
	node := &Node{Kind: KindClassBracketed}
	if !p.eof() && p.char() == '^' {
		p.bump()
		node.Negated = true
	}

	var items []*ClassItem
	// ']' is a literal when it comes first.
	first := true
	for p.eof() || p.char() != ']' || first {
		first = false
		if p.eof() {
			return p.error(ErrClassUnclosed, opener)
		}
		itemStart := p.pos
		rest := p.rest()

		if len(rest) > 2 && rest[0] == '[' && rest[1] == ':' {
			item, err := p.parseASCIIClass()
			if err != nil {
				return err
			}
			if item != nil {
				items = append(items, item)
				continue
			}
		}
		if len(rest) >= 2 && rest[0] == '\\' {
			switch c := rune(rest[1]); c {
			case 'p', 'P':
				p.bump()
				name, negated, err := p.parseUnicodeClass(itemStart)
				if err != nil {
					return err
				}
				items = append(items, &ClassItem{Kind: ItemUnicode, Span: p.spanFrom(itemStart), Name: name, Negated: negated})
				continue
			case 'd', 'D', 's', 'S', 'w', 'W':
				p.advanceTo(p.pos.Offset + 2)
				perl, negated := perlClassFor(c)
				items = append(items, &ClassItem{Kind: ItemPerl, Span: p.spanFrom(itemStart), Perl: perl, Negated: negated})
				continue
			}
		}

		lo, err := p.parseClassChar(opener)
		if err != nil {
			return err
		}
		item := &ClassItem{Kind: ItemLiteral, Span: p.spanFrom(itemStart), Lo: lo}
		// "a-]" is 'a' followed by a literal '-'.
		if rest := p.rest(); len(rest) >= 2 && rest[0] == '-' && rest[1] != ']' {
			p.bump()
			// A class escape cannot end a range.
			if n := classEscapeLen(p.rest()); n > 0 {
				p.advanceTo(p.pos.Offset + n)
				return p.error(ErrClassRangeInvalid, p.spanFrom(itemStart))
			}
			hi, err := p.parseClassChar(opener)
			if err != nil {
				return err
			}
			if hi < lo {
				return p.error(ErrClassRangeInvalid, p.spanFrom(itemStart))
			}
			item = &ClassItem{Kind: ItemRange, Span: p.spanFrom(itemStart), Lo: lo, Hi: hi}
		}
		items = append(items, item)
	}
	p.bump() // ']'

	node.Span = p.spanFrom(start)
	if len(items) == 1 {
		node.Class = items[0]
	} else {
		node.Class = &ClassItem{
			Kind:  ItemUnion,
			Span:  Span{Start: items[0].Span.Start, End: items[len(items)-1].Span.End},
			Items: items,
		}
	}
	p.push(node)
	return nil
}

// classEscapeLen returns the byte length of the Perl or Unicode class escape
// at the start of s, or 0 if s does not start with one.
func classEscapeLen(s string) int {
	if len(s) < 2 || s[0] != '\\' {
		return 0
	}
	switch s[1] {
	case 'd', 'D', 's', 'S', 'w', 'W':
		return 2
	case 'p', 'P':
		if len(s) == 2 {
			return 2
		}
		if s[2] != '{' {
			_, size := utf8.DecodeRuneInString(s[2:])
			return 2 + size
		}
		if end := strings.IndexByte(s, '}'); end >= 0 {
			return end + 1
		}
		return len(s)
	}
	return 0
}

// parseASCIIClass parses [:name:] or [:^name:]. It returns nil without
// consuming anything when no ":]" follows.
func (p *parser) parseASCIIClass() (*ClassItem, error) {
	rest := p.rest()
	i := strings.Index(rest[2:], ":]")
	if i < 0 {
		return nil, nil
	}
	n := i + 4
	name := rest[2 : i+2]
	negated := strings.HasPrefix(name, "^")
	if negated {
		name = name[1:]
	}
	if !isASCIIClass(name) {
		return nil, p.error(ErrClassNameUnknown, p.spanAhead(n))
	}
	start := p.pos
	p.advanceTo(p.pos.Offset + n)
	return &ClassItem{Kind: ItemASCII, Span: p.spanFrom(start), Name: name, Negated: negated}, nil
}

func isASCIIClass(name string) bool {
	switch name {
	case "alnum", "alpha", "ascii", "blank", "cntrl", "digit", "graph",
		"lower", "print", "punct", "space", "upper", "word", "xdigit":
		return true
	}
	return false
}

// parseClassChar parses one possibly escaped character inside a class.
func (p *parser) parseClassChar(opener Span) (rune, error) {
	if p.eof() {
		return 0, p.error(ErrClassUnclosed, opener)
	}
	if p.char() == '\\' {
		start := p.pos
		p.bump()
		if p.eof() {
			return 0, p.error(ErrTrailingBackslash, p.spanFrom(start))
		}
		return p.parseEscapeRune(start)
	}
	r := p.char()
	p.bump()
	return r, nil
}

// Character helpers.

func assertionFor(c rune) AssertionKind {
	switch c {
	case 'A':
		return AssertStartText
	case 'z':
		return AssertEndText
	case 'b':
		return AssertWordBoundary
	default:
		return AssertNotWordBoundary
	}
}

func perlClassFor(c rune) (PerlClass, bool) {
	negated := unicode.IsUpper(c)
	switch unicode.ToLower(c) {
	case 'd':
		return PerlDigit, negated
	case 's':
		return PerlSpace, negated
	default:
		return PerlWord, negated
	}
}

func isAlnum(c rune) bool {
	return '0' <= c && c <= '9' || 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z'
}

func isOctal(c rune) bool {
	return '0' <= c && c <= '7'
}

func unhex(c rune) rune {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return -1
}

// invalidUTF8 returns the offset of the first invalid byte of s, or -1.
func invalidUTF8(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// advance moves pos forward through s, one character at a time, until its
// offset reaches offset or the end of s.
func advance(s string, pos Position, offset int) Position {
	for pos.Offset < offset && pos.Offset < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos.Offset:])
		pos.Offset += size
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}
