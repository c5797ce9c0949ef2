// Package dom defines the small capability surface the runtime navigator
// needs from a host document: element query, attribute access, event
// registration, mutation observation and URI dispatch. Keeping the surface
// behind interfaces makes the navigator testable without a real browser.
package dom

// Element is a live markup element.
type Element interface {
	// Attr returns the attribute value and whether it is present.
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	// Parent returns the parent element, or nil at the root.
	Parent() Element
}

// Event is a delivered UI event. All mutators act on the live event.
type Event interface {
	TargetElement() Element
	Key() string
	ShiftKey() bool
	// EditableTarget reports whether the event target accepts text input,
	// so toggle chords can be ignored while typing.
	EditableTarget() bool
	PreventDefault()
	StopPropagation()
}

// Handler consumes events; delivery is synchronous.
type Handler func(Event)

// ListenerHandle unregisters a listener. Remove is idempotent.
type ListenerHandle interface {
	Remove()
}

// Observer is a running mutation observation. Disconnect is idempotent.
type Observer interface {
	Disconnect()
}

// StyleHandle owns an attached style block. Remove is idempotent.
type StyleHandle interface {
	Remove()
}

// Document is the page-level capability set.
type Document interface {
	// QueryAll returns every element currently carrying the attribute.
	QueryAll(attrName string) []Element
	// AddEventListener registers a page-wide listener for an event type.
	AddEventListener(typ string, capture bool, handler Handler) ListenerHandle
	// Observe watches for added nodes and changes of the given attribute;
	// the callback receives only the newly-qualifying elements of each
	// delivery, so redundant batches cost O(new elements).
	Observe(attrName string, callback func(added []Element)) Observer
	// AddClass and RemoveClass manage the page-level marker class.
	AddClass(class string)
	RemoveClass(class string)
	// InsertStyle attaches a style block and returns its handle.
	InsertStyle(css string) StyleHandle
	// OpenURI triggers the host's URI-open mechanism.
	OpenURI(uri string) error
	// Log emits an informational message to the host console.
	Log(message string)
}
