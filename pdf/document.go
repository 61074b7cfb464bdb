package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// XRefEntry describes one entry in the cross-reference table.
type XRefEntry struct {
	Offset     int64
	Generation int
	InUse      bool
}

// Document is a loaded PDF file.
type Document struct {
	data    []byte
	xref    map[int]XRefEntry
	trailer Dict
	cache   map[int]*Object
}

// Open reads a PDF file from disk.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdf: reading file: %w", err)
	}
	return Load(data)
}

// Load parses a PDF from raw bytes.
func Load(data []byte) (*Document, error) {
	doc := &Document{
		data:  data,
		xref:  make(map[int]XRefEntry),
		cache: make(map[int]*Object),
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("pdf: missing %%PDF header")
	}
	if err := doc.loadXRef(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Version returns the PDF version string from the header (e.g. "1.4").
func (doc *Document) Version() string {
	end := bytes.IndexAny(doc.data, "\r\n")
	if end < 0 || end < 6 {
		return "?"
	}
	return strings.TrimSpace(string(doc.data[5:end]))
}

// Trailer returns the trailer dictionary.
func (doc *Document) Trailer() Dict {
	return doc.trailer
}

// XRef returns the cross-reference entry for an object number.
func (doc *Document) XRef(num int) (XRefEntry, bool) {
	e, ok := doc.xref[num]
	return e, ok
}

// loadXRef locates startxref and parses the classic cross-reference
// table plus the trailer dictionary.
func (doc *Document) loadXRef() error {
	offset, err := doc.findStartXRef()
	if err != nil {
		return err
	}
	if offset < 0 || int(offset) >= len(doc.data) {
		return fmt.Errorf("pdf: xref offset %d out of bounds", offset)
	}

	p := newParser(doc.data, int(offset))
	p.skipWhitespace()
	if !p.match("xref") {
		return fmt.Errorf("pdf: no cross-reference table at offset %d", offset)
	}

	for {
		p.skipWhitespace()
		if p.match("trailer") {
			break
		}
		first, err1 := strconv.Atoi(p.readToken())
		p.skipWhitespace()
		count, err2 := strconv.Atoi(p.readToken())
		if err1 != nil || err2 != nil {
			return fmt.Errorf("pdf: malformed xref subsection header")
		}
		for i := 0; i < count; i++ {
			p.skipWhitespace()
			off, errO := strconv.ParseInt(p.readToken(), 10, 64)
			p.skipWhitespace()
			gen, errG := strconv.Atoi(p.readToken())
			p.skipWhitespace()
			kind := p.readToken()
			if errO != nil || errG != nil || (kind != "n" && kind != "f") {
				return fmt.Errorf("pdf: malformed xref entry for object %d", first+i)
			}
			doc.xref[first+i] = XRefEntry{
				Offset:     off,
				Generation: gen,
				InUse:      kind == "n",
			}
		}
	}

	obj, err := p.parseObject()
	if err != nil {
		return fmt.Errorf("pdf: parsing trailer: %w", err)
	}
	if obj.Type != ObjDict {
		return fmt.Errorf("pdf: trailer is not a dictionary")
	}
	doc.trailer = obj.Dict
	return nil
}

// findStartXRef scans backward for the startxref keyword and reads the
// offset that follows it.
func (doc *Document) findStartXRef() (int64, error) {
	searchFrom := len(doc.data) - 1024
	if searchFrom < 0 {
		searchFrom = 0
	}
	idx := bytes.LastIndex(doc.data[searchFrom:], []byte("startxref"))
	if idx < 0 {
		return 0, fmt.Errorf("pdf: startxref not found")
	}
	p := newParser(doc.data, searchFrom+idx+len("startxref"))
	p.skipWhitespace()
	offset, err := strconv.ParseInt(p.readToken(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("pdf: invalid startxref value: %w", err)
	}
	return offset, nil
}

// Object loads and caches the indirect object with the given number.
func (doc *Document) Object(num int) (*Object, error) {
	if obj, ok := doc.cache[num]; ok {
		return obj, nil
	}
	entry, ok := doc.xref[num]
	if !ok || !entry.InUse {
		return nil, fmt.Errorf("pdf: object %d not in cross-reference table", num)
	}
	if entry.Offset < 0 || int(entry.Offset) >= len(doc.data) {
		return nil, fmt.Errorf("pdf: object %d offset %d out of bounds", num, entry.Offset)
	}

	p := newParser(doc.data, int(entry.Offset))
	p.skipWhitespace()
	gotNum, err1 := strconv.Atoi(p.readToken())
	p.skipWhitespace()
	_, err2 := strconv.Atoi(p.readToken())
	p.skipWhitespace()
	if err1 != nil || err2 != nil || !p.match("obj") {
		return nil, fmt.Errorf("pdf: object %d: no object header at offset %d", num, entry.Offset)
	}
	if gotNum != num {
		return nil, fmt.Errorf("pdf: offset %d holds object %d, xref says %d", entry.Offset, gotNum, num)
	}

	obj, err := p.parseObject()
	if err != nil {
		return nil, fmt.Errorf("pdf: object %d: %w", num, err)
	}
	doc.cache[num] = obj
	return obj, nil
}

// Resolve follows obj through at most one level of indirection.
func (doc *Document) Resolve(obj *Object) (*Object, error) {
	if obj == nil {
		return &Object{Type: ObjNull}, nil
	}
	if obj.Type != ObjRef {
		return obj, nil
	}
	return doc.Object(obj.Ref.Number)
}

// Catalog returns the document catalog dictionary.
func (doc *Document) Catalog() (Dict, error) {
	root, ok := doc.trailer.GetRef("Root")
	if !ok {
		return nil, fmt.Errorf("pdf: trailer has no /Root reference")
	}
	obj, err := doc.Object(root.Number)
	if err != nil {
		return nil, err
	}
	if obj.Type != ObjDict {
		return nil, fmt.Errorf("pdf: catalog is not a dictionary")
	}
	return obj.Dict, nil
}

// Pages returns the page dictionaries in document order, walking the
// pages tree depth first.
func (doc *Document) Pages() ([]Dict, error) {
	catalog, err := doc.Catalog()
	if err != nil {
		return nil, err
	}
	rootRef, ok := catalog.GetRef("Pages")
	if !ok {
		return nil, fmt.Errorf("pdf: catalog has no /Pages reference")
	}

	var pages []Dict
	seen := make(map[int]bool)
	var walk func(num int) error
	walk = func(num int) error {
		if seen[num] {
			return fmt.Errorf("pdf: page tree cycle through object %d", num)
		}
		seen[num] = true

		obj, err := doc.Object(num)
		if err != nil {
			return err
		}
		if obj.Type != ObjDict && obj.Type != ObjStream {
			return fmt.Errorf("pdf: page tree node %d is not a dictionary", num)
		}
		switch typ, _ := obj.Dict.GetName("Type"); typ {
		case "Pages":
			kids, _ := obj.Dict.GetArray("Kids")
			for _, kid := range kids {
				if kid.Type != ObjRef {
					return fmt.Errorf("pdf: page tree node %d has a non-reference kid", num)
				}
				if err := walk(kid.Ref.Number); err != nil {
					return err
				}
			}
		case "Page":
			pages = append(pages, obj.Dict)
		default:
			return fmt.Errorf("pdf: page tree node %d has type %q", num, typ)
		}
		return nil
	}
	if err := walk(rootRef.Number); err != nil {
		return nil, err
	}
	return pages, nil
}

// PageInfo holds the dimensions of one page in points.
type PageInfo struct {
	Width  float64
	Height float64
}

// GetPageInfo reads a page's MediaBox.
func (doc *Document) GetPageInfo(page Dict) PageInfo {
	box, ok := page.GetArray("MediaBox")
	if !ok || len(box) != 4 {
		return PageInfo{}
	}
	vals := make([]float64, 4)
	for i, obj := range box {
		switch obj.Type {
		case ObjInt:
			vals[i] = float64(obj.Int)
		case ObjFloat:
			vals[i] = obj.Float
		}
	}
	return PageInfo{Width: vals[2] - vals[0], Height: vals[3] - vals[1]}
}

// Verify checks the document's structural invariants: the trailer's
// /Size covers every allocated object number exactly once, every
// in-use cross-reference offset points at the matching object header,
// every object parses, and every stream's declared length matches its
// body (the parser rejects streams whose /Length does not reach
// endstream).
func (doc *Document) Verify() error {
	size, ok := doc.trailer.GetInt("Size")
	if !ok {
		return fmt.Errorf("pdf: trailer has no /Size")
	}
	highest := 0
	for num := range doc.xref {
		if num > highest {
			highest = num
		}
	}
	if int(size) != highest+1 {
		return fmt.Errorf("pdf: trailer /Size %d, want %d", size, highest+1)
	}
	for num := 1; num <= highest; num++ {
		entry, ok := doc.xref[num]
		if !ok {
			return fmt.Errorf("pdf: object %d missing from cross-reference table", num)
		}
		if !entry.InUse {
			continue
		}
		if _, err := doc.Object(num); err != nil {
			return err
		}
	}
	pages, err := doc.Pages()
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("pdf: document has no pages")
	}
	return nil
}
