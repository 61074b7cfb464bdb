// Package pdf reads PDF files structurally: header, cross-reference
// table, object graph and page tree. It exists to verify and inspect
// documents produced by the scrollpdf assembler, so it supports the
// classic cross-reference table format and plain (uncompressed or
// DCTDecode) streams; it is not a general-purpose PDF reader.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
)

// ObjectType identifies the kind of a PDF object.
type ObjectType int

const (
	ObjNull ObjectType = iota
	ObjBool
	ObjInt
	ObjFloat
	ObjString
	ObjName
	ObjArray
	ObjDict
	ObjStream
	ObjRef
)

// Object holds any PDF object value.
type Object struct {
	Type   ObjectType
	Bool   bool
	Int    int64
	Float  float64
	Str    []byte
	Name   string
	Array  []*Object
	Dict   Dict
	Stream []byte // raw stream data
	Ref    Reference
}

// Reference is an indirect object reference (N G R).
type Reference struct {
	Number int
	Gen    int
}

// Dict is a PDF dictionary (name -> object).
type Dict map[string]*Object

// GetInt returns the integer value of a Dict entry.
func (d Dict) GetInt(key string) (int64, bool) {
	obj, ok := d[key]
	if !ok {
		return 0, false
	}
	switch obj.Type {
	case ObjInt:
		return obj.Int, true
	case ObjFloat:
		return int64(obj.Float), true
	}
	return 0, false
}

// GetFloat returns the numeric value of a Dict entry as a float64.
func (d Dict) GetFloat(key string) (float64, bool) {
	obj, ok := d[key]
	if !ok {
		return 0, false
	}
	switch obj.Type {
	case ObjInt:
		return float64(obj.Int), true
	case ObjFloat:
		return obj.Float, true
	}
	return 0, false
}

// GetName returns the name value of a Dict entry.
func (d Dict) GetName(key string) (string, bool) {
	obj, ok := d[key]
	if !ok || obj.Type != ObjName {
		return "", false
	}
	return obj.Name, true
}

// GetArray returns the array value of a Dict entry. A single object is
// treated as a one-element array.
func (d Dict) GetArray(key string) ([]*Object, bool) {
	obj, ok := d[key]
	if !ok {
		return nil, false
	}
	if obj.Type == ObjArray {
		return obj.Array, true
	}
	return []*Object{obj}, true
}

// GetRef returns the reference value of a Dict entry.
func (d Dict) GetRef(key string) (Reference, bool) {
	obj, ok := d[key]
	if !ok || obj.Type != ObjRef {
		return Reference{}, false
	}
	return obj.Ref, true
}

const maxNesting = 100

// parser is a recursive-descent PDF object parser over a byte slice.
type parser struct {
	data  []byte
	pos   int
	depth int
}

func newParser(data []byte, pos int) *parser {
	return &parser{data: data, pos: pos}
}

// skipWhitespace skips PDF whitespace and % comments.
func (p *parser) skipWhitespace() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '%' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
		} else if isWhitespace(c) {
			p.pos++
		} else {
			break
		}
	}
}

// match advances past s if the upcoming bytes equal it.
func (p *parser) match(s string) bool {
	end := p.pos + len(s)
	if end > len(p.data) || string(p.data[p.pos:end]) != s {
		return false
	}
	p.pos = end
	return true
}

func isDelim(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

// parseObject parses one PDF object at the current position.
func (p *parser) parseObject() (*Object, error) {
	if p.depth > maxNesting {
		return nil, fmt.Errorf("pdf: exceeded maximum nesting depth")
	}
	p.depth++
	defer func() { p.depth-- }()

	p.skipWhitespace()
	if p.pos >= len(p.data) {
		return nil, fmt.Errorf("pdf: unexpected end of data")
	}

	c := p.data[p.pos]
	switch {
	case c == 'n' && p.match("null"):
		return &Object{Type: ObjNull}, nil
	case c == 't' && p.match("true"):
		return &Object{Type: ObjBool, Bool: true}, nil
	case c == 'f' && p.match("false"):
		return &Object{Type: ObjBool, Bool: false}, nil
	case c == '(':
		return p.parseString()
	case c == '<' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '<':
		return p.parseDict()
	case c == '<':
		return p.parseHexString()
	case c == '/':
		return p.parseName()
	case c == '[':
		return p.parseArray()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return p.parseNumberOrRef(), nil
	default:
		return nil, fmt.Errorf("pdf: unexpected byte %q at offset %d", c, p.pos)
	}
}

// parseString parses a literal string, handling balanced parentheses
// and backslash escapes well enough for structural reading.
func (p *parser) parseString() (*Object, error) {
	p.pos++ // consume '('
	var buf bytes.Buffer
	depth := 1
	for p.pos < len(p.data) && depth > 0 {
		c := p.data[p.pos]
		switch c {
		case '\\':
			p.pos++
			if p.pos < len(p.data) {
				buf.WriteByte(p.data[p.pos])
				p.pos++
			}
		case '(':
			depth++
			buf.WriteByte(c)
			p.pos++
		case ')':
			depth--
			if depth > 0 {
				buf.WriteByte(c)
			}
			p.pos++
		default:
			buf.WriteByte(c)
			p.pos++
		}
	}
	return &Object{Type: ObjString, Str: buf.Bytes()}, nil
}

// parseHexString parses <hex digits>.
func (p *parser) parseHexString() (*Object, error) {
	p.pos++ // consume '<'
	var digits []byte
	for p.pos < len(p.data) && p.data[p.pos] != '>' {
		c := p.data[p.pos]
		if !isWhitespace(c) {
			digits = append(digits, c)
		}
		p.pos++
	}
	if p.pos < len(p.data) {
		p.pos++ // consume '>'
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	buf := make([]byte, len(digits)/2)
	for i := range buf {
		buf[i] = hexVal(digits[2*i])<<4 | hexVal(digits[2*i+1])
	}
	return &Object{Type: ObjString, Str: buf}, nil
}

func hexVal(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}

func (p *parser) parseName() (*Object, error) {
	p.pos++ // consume '/'
	start := p.pos
	for p.pos < len(p.data) && !isWhitespace(p.data[p.pos]) && !isDelim(p.data[p.pos]) {
		p.pos++
	}
	return &Object{Type: ObjName, Name: string(p.data[start:p.pos])}, nil
}

func (p *parser) parseArray() (*Object, error) {
	p.pos++ // consume '['
	var arr []*Object
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("pdf: unterminated array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			break
		}
		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
	return &Object{Type: ObjArray, Array: arr}, nil
}

// parseDict parses <<...>> and, when followed by a stream keyword,
// the stream body delimited by the dict's /Length.
func (p *parser) parseDict() (*Object, error) {
	p.pos += 2 // consume '<<'
	d := make(Dict)
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("pdf: unterminated dictionary")
		}
		if p.pos+1 < len(p.data) && p.data[p.pos] == '>' && p.data[p.pos+1] == '>' {
			p.pos += 2
			break
		}
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("pdf: dictionary key is not a name at offset %d", p.pos)
		}
		key, err := p.parseName()
		if err != nil {
			return nil, err
		}
		val, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		d[key.Name] = val
	}

	p.skipWhitespace()
	if !p.match("stream") {
		return &Object{Type: ObjDict, Dict: d}, nil
	}
	if p.pos < len(p.data) && p.data[p.pos] == '\r' {
		p.pos++
	}
	if p.pos < len(p.data) && p.data[p.pos] == '\n' {
		p.pos++
	}

	length, ok := d.GetInt("Length")
	if !ok {
		return nil, fmt.Errorf("pdf: stream without /Length")
	}
	start := p.pos
	end := start + int(length)
	if length < 0 || end > len(p.data) {
		return nil, fmt.Errorf("pdf: stream length %d exceeds data", length)
	}
	stream := p.data[start:end]
	p.pos = end

	p.skipWhitespace()
	if !p.match("endstream") {
		return nil, fmt.Errorf("pdf: declared stream length %d does not reach endstream", length)
	}
	return &Object{Type: ObjStream, Dict: d, Stream: stream}, nil
}

// parseNumberOrRef parses a number, or an indirect reference when the
// number is followed by a generation number and 'R'.
func (p *parser) parseNumberOrRef() *Object {
	numStr := p.readToken()
	n, errN := strconv.ParseInt(numStr, 10, 64)

	if errN == nil {
		afterNum := p.pos
		p.skipWhitespace()
		genStr := p.readToken()
		if g, err := strconv.ParseInt(genStr, 10, 64); err == nil {
			p.skipWhitespace()
			if p.pos < len(p.data) && p.data[p.pos] == 'R' &&
				(p.pos+1 >= len(p.data) || isWhitespace(p.data[p.pos+1]) || isDelim(p.data[p.pos+1])) {
				p.pos++
				return &Object{Type: ObjRef, Ref: Reference{Number: int(n), Gen: int(g)}}
			}
		}
		p.pos = afterNum
		return &Object{Type: ObjInt, Int: n}
	}
	if f, err := strconv.ParseFloat(numStr, 64); err == nil {
		return &Object{Type: ObjFloat, Float: f}
	}
	return &Object{Type: ObjNull}
}

// readToken reads a non-whitespace, non-delimiter token.
func (p *parser) readToken() string {
	start := p.pos
	for p.pos < len(p.data) && !isWhitespace(p.data[p.pos]) && !isDelim(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos])
}
