// Package dashboard models Grafana dashboard documents as raw JSON with
// typed read views over their panels. Documents are kept as bytes and
// rewritten in place so that key order and untouched formatting survive a
// round trip, which encoding/json maps cannot guarantee.
package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Document is one dashboard: its name within the store and its raw JSON.
type Document struct {
	name    string
	raw     []byte
	changed bool
}

// NewDocument validates raw as JSON and wraps it.
func NewDocument(name string, raw []byte) (*Document, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("document %s: invalid JSON", name)
	}
	return &Document{name: name, raw: raw}, nil
}

// Name returns the document's name within its store.
func (d *Document) Name() string { return d.name }

// Raw returns the document's current JSON bytes.
func (d *Document) Raw() []byte { return d.raw }

// Changed reports whether any panel title has been rewritten since load.
func (d *Document) Changed() bool { return d.changed }

// Panels returns read views over the document's panels list, in list order.
// A document without a panels array has no panels.
func (d *Document) Panels() []Panel {
	arr := gjson.GetBytes(d.raw, "panels")
	if !arr.IsArray() {
		return nil
	}
	panels := make([]Panel, len(arr.Array()))
	for i := range panels {
		panels[i] = Panel{doc: d, index: i}
	}
	return panels
}

// SetPanelTitle rewrites the title of the panel at index i, leaving key
// order and the rest of the document untouched.
func (d *Document) SetPanelTitle(i int, title string) error {
	raw, err := sjson.SetBytes(d.raw, "panels."+strconv.Itoa(i)+".title", title)
	if err != nil {
		return fmt.Errorf("document %s: set panels.%d.title: %w", d.name, i, err)
	}
	d.raw = raw
	d.changed = true
	return nil
}

// Panel is a read view over one entry of a document's panels list. Reads go
// against the document's current bytes, so a view stays valid across title
// rewrites elsewhere in the document.
type Panel struct {
	doc   *Document
	index int
}

// Index returns the panel's position in the panels list.
func (p Panel) Index() int { return p.index }

func (p Panel) get(field string) gjson.Result {
	return gjson.GetBytes(p.doc.raw, "panels."+strconv.Itoa(p.index)+"."+field)
}

// Type returns the panel's type tag ("row", "timeseries", ...), or "" when
// absent.
func (p Panel) Type() string { return p.get("type").String() }

// Title returns the panel title. ok is false when the field is absent or not
// a string.
func (p Panel) Title() (string, bool) {
	v := p.get("title")
	if v.Type != gjson.String {
		return "", false
	}
	return v.Str, true
}

// SetTitle rewrites the panel's title in the underlying document.
func (p Panel) SetTitle(title string) error {
	return p.doc.SetPanelTitle(p.index, title)
}

// Expressions returns the trimmed, non-empty expr string of every target in
// target order. Absent targets and absent, blank, or non-string expr values
// contribute nothing.
func (p Panel) Expressions() []string {
	targets := p.get("targets")
	if !targets.IsArray() {
		return nil
	}
	var exprs []string
	targets.ForEach(func(_, target gjson.Result) bool {
		expr := target.Get("expr")
		if expr.Type != gjson.String {
			return true
		}
		if s := strings.TrimSpace(expr.Str); s != "" {
			exprs = append(exprs, s)
		}
		return true
	})
	return exprs
}
