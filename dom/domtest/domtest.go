// Package domtest provides an in-memory dom.Document for exercising the
// runtime navigator without a browser. Trees can be built programmatically or
// parsed from HTML text; event and mutation delivery is synchronous.
package domtest

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/srcjump/srcjump/dom"
)

// Element is an in-memory markup element.
type Element struct {
	doc      *Document
	Tag      string
	Editable bool
	parent   *Element
	children []*Element
	attrs    map[string]string
}

// Attr implements dom.Element.
func (e *Element) Attr(name string) (string, bool) {
	value, ok := e.attrs[name]
	return value, ok
}

// SetAttr implements dom.Element and notifies attribute observers.
func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = map[string]string{}
	}
	_, existed := e.attrs[name]
	e.attrs[name] = value
	if !existed && e.doc != nil {
		e.doc.notify(name, []dom.Element{e})
	}
}

// Parent implements dom.Element.
func (e *Element) Parent() dom.Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Document implements dom.Document.
type Document struct {
	root      *Element
	listeners []*listener
	observers []*observer
	styles    []*styleHandle
	classes   map[string]bool
	Opened    []string
	Logs      []string
	OpenErr   error
}

// New creates a document with an empty root element.
func New() *Document {
	d := &Document{classes: map[string]bool{}}
	d.root = &Element{doc: d, Tag: "body"}
	return d
}

// Parse builds a document from HTML text.
func Parse(markup string) (*Document, error) {
	node, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	d := New()
	convert(d, node, d.root)
	return d, nil
}

func convert(d *Document, node *html.Node, parent *Element) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			convert(d, child, parent)
			continue
		}
		el := &Element{doc: d, Tag: child.Data, parent: parent}
		for _, attr := range child.Attr {
			if el.attrs == nil {
				el.attrs = map[string]string{}
			}
			el.attrs[attr.Key] = attr.Val
		}
		el.Editable = child.Data == "input" || child.Data == "textarea"
		parent.children = append(parent.children, el)
		convert(d, child, el)
	}
}

// Root returns the document's root element.
func (d *Document) Root() *Element {
	return d.root
}

// CreateElement builds a detached element; attach it with Append.
func (d *Document) CreateElement(tag string, attrs map[string]string) *Element {
	el := &Element{doc: d, Tag: tag}
	if len(attrs) > 0 {
		el.attrs = map[string]string{}
		for k, v := range attrs {
			el.attrs[k] = v
		}
	}
	return el
}

// Append attaches child under parent and delivers mutation notifications for
// every element of the added subtree that carries an observed attribute.
func (d *Document) Append(parent, child *Element) {
	child.parent = parent
	parent.children = append(parent.children, child)
	subtree := collect(child)
	for _, obs := range snapshot(d.observers) {
		var added []dom.Element
		for _, el := range subtree {
			if _, ok := el.Attr(obs.attr); ok {
				added = append(added, el)
			}
		}
		if len(added) > 0 && !obs.disconnected {
			obs.callback(added)
		}
	}
}

// QueryAll implements dom.Document.
func (d *Document) QueryAll(attrName string) []dom.Element {
	var result []dom.Element
	for _, el := range collect(d.root) {
		if _, ok := el.Attr(attrName); ok {
			result = append(result, el)
		}
	}
	return result
}

func collect(root *Element) []*Element {
	result := []*Element{root}
	for _, child := range root.children {
		result = append(result, collect(child)...)
	}
	return result
}

type listener struct {
	doc     *Document
	typ     string
	capture bool
	handler dom.Handler
	removed bool
}

func (l *listener) Remove() {
	l.removed = true
}

// AddEventListener implements dom.Document.
func (d *Document) AddEventListener(typ string, capture bool, handler dom.Handler) dom.ListenerHandle {
	l := &listener{doc: d, typ: typ, capture: capture, handler: handler}
	d.listeners = append(d.listeners, l)
	return l
}

// ListenerCount reports the live listeners of an event type.
func (d *Document) ListenerCount(typ string) int {
	count := 0
	for _, l := range d.listeners {
		if l.typ == typ && !l.removed {
			count++
		}
	}
	return count
}

type observer struct {
	attr         string
	callback     func([]dom.Element)
	disconnected bool
}

func (o *observer) Disconnect() {
	o.disconnected = true
}

// Observe implements dom.Document.
func (d *Document) Observe(attrName string, callback func([]dom.Element)) dom.Observer {
	o := &observer{attr: attrName, callback: callback}
	d.observers = append(d.observers, o)
	return o
}

// ObserverCount reports the live observers.
func (d *Document) ObserverCount() int {
	count := 0
	for _, o := range d.observers {
		if !o.disconnected {
			count++
		}
	}
	return count
}

func (d *Document) notify(attr string, added []dom.Element) {
	for _, obs := range snapshot(d.observers) {
		if obs.attr == attr && !obs.disconnected {
			obs.callback(added)
		}
	}
}

func snapshot[T any](in []*T) []*T {
	out := make([]*T, len(in))
	copy(out, in)
	return out
}

// AddClass implements dom.Document.
func (d *Document) AddClass(class string) {
	d.classes[class] = true
}

// RemoveClass implements dom.Document.
func (d *Document) RemoveClass(class string) {
	delete(d.classes, class)
}

// HasClass reports whether the page-level class is present.
func (d *Document) HasClass(class string) bool {
	return d.classes[class]
}

type styleHandle struct {
	css     string
	removed bool
}

func (s *styleHandle) Remove() {
	s.removed = true
}

// InsertStyle implements dom.Document.
func (d *Document) InsertStyle(css string) dom.StyleHandle {
	s := &styleHandle{css: css}
	d.styles = append(d.styles, s)
	return s
}

// StyleCount reports the attached style blocks.
func (d *Document) StyleCount() int {
	count := 0
	for _, s := range d.styles {
		if !s.removed {
			count++
		}
	}
	return count
}

// Styles returns the CSS text of every attached style block.
func (d *Document) Styles() []string {
	var out []string
	for _, s := range d.styles {
		if !s.removed {
			out = append(out, s.css)
		}
	}
	return out
}

// OpenURI implements dom.Document; URIs are recorded for assertions.
func (d *Document) OpenURI(uri string) error {
	if d.OpenErr != nil {
		return d.OpenErr
	}
	d.Opened = append(d.Opened, uri)
	return nil
}

// Log implements dom.Document.
func (d *Document) Log(message string) {
	d.Logs = append(d.Logs, message)
}

// Event is a synthetic dom.Event.
type Event struct {
	key              string
	shift            bool
	editable         bool
	target           dom.Element
	DefaultPrevented bool
	Stopped          bool
}

func (e *Event) TargetElement() dom.Element { return e.target }
func (e *Event) Key() string                { return e.key }
func (e *Event) ShiftKey() bool             { return e.shift }
func (e *Event) EditableTarget() bool       { return e.editable }
func (e *Event) PreventDefault()            { e.DefaultPrevented = true }
func (e *Event) StopPropagation()           { e.Stopped = true }

// FireKeydown delivers a keydown event to every registered listener.
func (d *Document) FireKeydown(key string, shift, editable bool) *Event {
	ev := &Event{key: key, shift: shift, editable: editable, target: d.root}
	d.dispatch("keydown", ev)
	return ev
}

// Click delivers a click event targeting the given element: capture listeners
// first, then the rest, honoring StopPropagation in between.
func (d *Document) Click(target *Element) *Event {
	ev := &Event{target: target}
	d.dispatch("click", ev)
	return ev
}

func (d *Document) dispatch(typ string, ev *Event) {
	for _, phase := range []bool{true, false} {
		for _, l := range snapshot(d.listeners) {
			if l.typ != typ || l.capture != phase || l.removed {
				continue
			}
			l.handler(ev)
		}
		if ev.Stopped {
			return
		}
	}
}
