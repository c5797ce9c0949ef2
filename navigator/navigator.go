// Package navigator is the runtime half of srcjump: it reads location tokens
// back out of a live document, toggles a highlight mode on a fixed key chord
// and dispatches clicked elements to an editor.
package navigator

import (
	"fmt"
	"strings"
	"sync"

	"github.com/srcjump/srcjump/dom"
	"github.com/srcjump/srcjump/editor"
	"github.com/srcjump/srcjump/location"
)

// ToggleKey is the letter of the toggle chord; the chord is Shift+ToggleKey.
const ToggleKey = "I"

var (
	sessionMu sync.Mutex
	current   *Session
)

// Session is the per-page navigator state. At most one live session exists
// per page; it is created by Activate and torn down by the returned cleanup
// function.
type Session struct {
	doc      dom.Document
	cfg      Config
	resolved editor.Resolved

	enabled     bool
	cleaned     bool
	keyHandle   dom.ListenerHandle
	clickHandle dom.ListenerHandle
	observer    dom.Observer
	style       dom.StyleHandle
}

// Activate merges the build-injected configuration with the call-time one,
// binds the toggle chord and returns a cleanup function that reverses every
// registration regardless of the session's state at that point. With no
// document available it is a no-op returning a harmless cleanup. A second
// call while a session is live returns that session's cleanup instead of
// registering a second listener/observer pair.
func Activate(doc dom.Document, cfg Config) func() {
	if doc == nil {
		return func() {}
	}
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if current != nil && !current.cleaned {
		return current.Cleanup
	}

	merged := cfg
	if build, ok := BuildConfig(); ok {
		merged = Merge(build, cfg)
	}
	s := &Session{doc: doc, cfg: merged, resolved: editor.Resolve(merged.Editor)}
	s.keyHandle = doc.AddEventListener("keydown", false, s.onKeydown)
	if merged.enabledByDefault() {
		s.Enable()
	}
	if merged.showInstructions() {
		doc.Log(fmt.Sprintf("srcjump: press Shift+%s to toggle click-to-source (editor: %s)",
			ToggleKey, s.resolved.Name))
	}
	current = s
	return s.Cleanup
}

// Enabled reports whether the highlight mode is currently on.
func (s *Session) Enabled() bool {
	return s.enabled
}

// Toggle flips the highlight mode.
func (s *Session) Toggle() {
	if s.enabled {
		s.Disable()
	} else {
		s.Enable()
	}
}

// Enable transitions to the active state. It is a no-op when already active
// or after cleanup.
func (s *Session) Enable() {
	if s.enabled || s.cleaned {
		return
	}
	if s.style == nil {
		s.style = s.doc.InsertStyle(styleSheet(s.cfg.attribute(), s.cfg.Styles))
	}
	for _, el := range s.doc.QueryAll(s.cfg.attribute()) {
		s.stamp(el)
	}
	s.doc.AddClass(MarkerClass)
	s.clickHandle = s.doc.AddEventListener("click", true, s.onClick)
	s.observer = s.doc.Observe(s.cfg.attribute(), s.onMutations)
	s.enabled = true
}

// Disable transitions to the inactive state. The style block and the derived
// tooltip attributes stay in place; they are inert without the marker class.
func (s *Session) Disable() {
	if !s.enabled {
		return
	}
	s.doc.RemoveClass(MarkerClass)
	if s.clickHandle != nil {
		s.clickHandle.Remove()
		s.clickHandle = nil
	}
	if s.observer != nil {
		s.observer.Disconnect()
		s.observer = nil
	}
	s.enabled = false
}

// Cleanup reverses every registration of this session. It is safe to call
// repeatedly and in either toggle state.
func (s *Session) Cleanup() {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if s.cleaned {
		return
	}
	s.Disable()
	if s.keyHandle != nil {
		s.keyHandle.Remove()
		s.keyHandle = nil
	}
	if s.style != nil {
		s.style.Remove()
		s.style = nil
	}
	s.cleaned = true
	if current == s {
		current = nil
	}
}

func (s *Session) onKeydown(ev dom.Event) {
	if !ev.ShiftKey() || ev.EditableTarget() {
		return
	}
	if !strings.EqualFold(ev.Key(), ToggleKey) {
		return
	}
	s.Toggle()
}

// onClick resolves the nearest ancestor-or-self carrying a decodable location
// token; malformed tokens are treated as absent and the walk continues. The
// click's normal effect is suppressed only when a location was resolved.
func (s *Session) onClick(ev dom.Event) {
	if !s.enabled {
		return
	}
	for el := ev.TargetElement(); el != nil; el = el.Parent() {
		token, ok := el.Attr(s.cfg.attribute())
		if !ok {
			continue
		}
		loc := location.Decode(token)
		if loc == nil {
			continue
		}
		ev.PreventDefault()
		ev.StopPropagation()
		uri := editor.BuildURI(s.resolved, loc)
		if err := s.doc.OpenURI(uri); err != nil {
			s.doc.Log(fmt.Sprintf("srcjump: failed to open %s: %v", uri, err))
		}
		return
	}
}

// onMutations stamps newly-qualifying elements only; elements already
// carrying a tooltip attribute are left untouched.
func (s *Session) onMutations(added []dom.Element) {
	for _, el := range added {
		s.stamp(el)
	}
}

func (s *Session) stamp(el dom.Element) {
	if _, ok := el.Attr(TooltipAttribute); ok {
		return
	}
	token, ok := el.Attr(s.cfg.attribute())
	if !ok {
		return
	}
	display := location.DisplayPath(token, s.cfg.TooltipPathDisplay)
	if display == "" {
		return
	}
	el.SetAttr(TooltipAttribute, display)
}
