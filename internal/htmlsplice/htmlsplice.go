// Package htmlsplice edits HTML documents in place at the byte level. Only the
// targeted element or tag changes; every other byte of the document is kept.
package htmlsplice

import (
	"bytes"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// span is a byte range [start, end) of a document.
type span struct {
	start, end int
}

// element locates an element's outer and inner markup within a document.
type element struct {
	outer span
	inner span
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// HasElement reports whether doc contains an element with the given id.
func HasElement(doc []byte, id string) bool {
	_, ok := findByID(doc, id)
	return ok
}

// ReplaceOuter replaces the element with the given id, tags included, by repl.
// It returns doc unchanged and false when no such element exists.
func ReplaceOuter(doc []byte, id string, repl []byte) ([]byte, bool) {
	el, ok := findByID(doc, id)
	if !ok {
		return doc, false
	}
	return splice(doc, el.outer, repl), true
}

// ReplaceInner replaces the content of the element with the given id by repl,
// keeping the element's own tags.
func ReplaceInner(doc []byte, id string, repl []byte) ([]byte, bool) {
	el, ok := findByID(doc, id)
	if !ok {
		return doc, false
	}
	return splice(doc, el.inner, repl), true
}

// SetRootClass adds (on) or removes (!on) class on the document's <html> tag.
// Documents without an <html> tag are returned unchanged.
func SetRootClass(doc []byte, class string, on bool) []byte {
	z := html.NewTokenizer(bytes.NewReader(doc))
	offset := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return doc
		}
		start := offset
		offset += len(z.Raw())

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if string(name) != "html" {
			continue
		}

		var attrs []html.Attribute
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
		}

		updated, changed := withClass(attrs, class, on)
		if !changed {
			return doc
		}
		return splice(doc, span{start, offset}, renderStartTag("html", updated))
	}
}

// InsertBeforeBodyEnd inserts snippet right before the last </body> tag, or
// before </html>, or at the end of the document when neither exists.
func InsertBeforeBodyEnd(doc []byte, snippet []byte) []byte {
	z := html.NewTokenizer(bytes.NewReader(doc))
	offset := 0
	bodyEnd, htmlEnd := -1, -1

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		start := offset
		offset += len(z.Raw())

		if tt != html.EndTagToken {
			continue
		}
		name, _ := z.TagName()
		switch string(name) {
		case "body":
			bodyEnd = start
		case "html":
			htmlEnd = start
		}
	}

	at := len(doc)
	if bodyEnd >= 0 {
		at = bodyEnd
	} else if htmlEnd >= 0 {
		at = htmlEnd
	}
	return splice(doc, span{at, at}, snippet)
}

// ScriptSources returns the src attribute of every <script> tag, in document
// order.
func ScriptSources(doc []byte) []string {
	z := html.NewTokenizer(bytes.NewReader(doc))
	var srcs []string

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return srcs
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if string(name) != "script" || !hasAttr {
			continue
		}
		if src := attrValue(z, "src"); src != "" {
			srcs = append(srcs, src)
		}
	}
}

// SetScriptSource points the first <script> whose src satisfies match at src.
// It reports false when no script matches.
func SetScriptSource(doc []byte, match func(string) bool, src string) ([]byte, bool) {
	z := html.NewTokenizer(bytes.NewReader(doc))
	offset := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return doc, false
		}
		start := offset
		offset += len(z.Raw())

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if string(name) != "script" || !hasAttr {
			continue
		}

		var attrs []html.Attribute
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
		}
		idx := slices.IndexFunc(attrs, func(a html.Attribute) bool { return a.Key == "src" })
		if idx < 0 || !match(attrs[idx].Val) {
			continue
		}
		attrs[idx].Val = src
		return splice(doc, span{start, offset}, renderStartTag("script", attrs)), true
	}
}

// SetAttributes sets attrs on the start tag of the element with the given id,
// replacing existing values and appending new keys.
func SetAttributes(doc []byte, id string, attrs ...html.Attribute) ([]byte, bool) {
	el, ok := findByID(doc, id)
	if !ok {
		return doc, false
	}

	tagEnd := el.inner.start
	z := html.NewTokenizer(bytes.NewReader(doc[el.outer.start:tagEnd]))
	z.Next()
	name, hasAttr := z.TagName()
	tag := string(name)

	var current []html.Attribute
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		current = append(current, html.Attribute{Key: string(key), Val: string(val)})
	}

	for _, a := range attrs {
		idx := slices.IndexFunc(current, func(c html.Attribute) bool { return c.Key == a.Key })
		if idx >= 0 {
			current[idx].Val = a.Val
		} else {
			current = append(current, a)
		}
	}

	return splice(doc, span{el.outer.start, tagEnd}, renderStartTag(tag, current)), true
}

// SwapChildClass edits the class list of the first <tag> element inside the
// element with the given id: classes in drop are removed and class is added.
// It reports false when either element is missing.
func SwapChildClass(doc []byte, id, tag string, drop []string, class string) ([]byte, bool) {
	el, ok := findByID(doc, id)
	if !ok {
		return doc, false
	}

	z := html.NewTokenizer(bytes.NewReader(doc[el.inner.start:el.inner.end]))
	offset := el.inner.start

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return doc, false
		}
		start := offset
		offset += len(z.Raw())

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if string(name) != tag {
			continue
		}

		var attrs []html.Attribute
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			attrs = append(attrs, html.Attribute{Key: string(key), Val: string(val)})
		}

		changed := false
		for _, c := range drop {
			if c == class {
				continue
			}
			var removed bool
			attrs, removed = withClass(attrs, c, false)
			changed = changed || removed
		}
		attrs, added := withClass(attrs, class, true)
		if !changed && !added {
			return doc, true
		}
		return splice(doc, span{start, offset}, renderStartTag(tag, attrs)), true
	}
}

func findByID(doc []byte, id string) (element, bool) {
	z := html.NewTokenizer(bytes.NewReader(doc))
	offset := 0

	var (
		found bool
		el    element
		name  string
		depth int
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if found {
				// Unclosed element runs to the end of the document.
				el.inner.end = offset
				el.outer.end = offset
				return el, true
			}
			return element{}, false
		}
		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tn, hasAttr := z.TagName()
			tag := string(tn)
			if found {
				if tt == html.StartTagToken && tag == name {
					depth++
				}
				continue
			}
			if !hasAttr || attrValue(z, "id") != id {
				continue
			}

			if tt == html.SelfClosingTagToken || voidElements[tag] {
				return element{outer: span{start, offset}, inner: span{offset, offset}}, true
			}
			found = true
			name = tag
			el.outer.start = start
			el.inner.start = offset

		case html.EndTagToken:
			if !found {
				continue
			}
			tn, _ := z.TagName()
			if string(tn) != name {
				continue
			}
			if depth > 0 {
				depth--
				continue
			}
			el.inner.end = start
			el.outer.end = offset
			return el, true
		}
	}
}

func attrValue(z *html.Tokenizer, key string) string {
	for {
		k, v, more := z.TagAttr()
		if string(k) == key {
			return string(v)
		}
		if !more {
			return ""
		}
	}
}

func withClass(attrs []html.Attribute, class string, on bool) ([]html.Attribute, bool) {
	idx := slices.IndexFunc(attrs, func(a html.Attribute) bool { return a.Key == "class" })

	var classes []string
	if idx >= 0 {
		classes = strings.Fields(attrs[idx].Val)
	}
	present := slices.Contains(classes, class)

	switch {
	case on && present, !on && !present:
		return attrs, false
	case on:
		classes = append(classes, class)
	default:
		classes = slices.DeleteFunc(classes, func(c string) bool { return c == class })
	}

	out := slices.Clone(attrs)
	if idx >= 0 {
		out[idx].Val = strings.Join(classes, " ")
	} else {
		out = append(out, html.Attribute{Key: "class", Val: class})
	}
	return out, true
}

func renderStartTag(name string, attrs []html.Attribute) []byte {
	var b bytes.Buffer
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.Bytes()
}

func splice(doc []byte, s span, repl []byte) []byte {
	out := make([]byte, 0, len(doc)-(s.end-s.start)+len(repl))
	out = append(out, doc[:s.start]...)
	out = append(out, repl...)
	out = append(out, doc[s.end:]...)
	return out
}
