// Package router dispatches key events to registered routes. Routes are
// scanned by descending priority and, within a priority, in registration
// order; the first route whose pattern matches is the only one that runs.
package router

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/llehouerou/tagdeck/internal/element"
	"github.com/llehouerou/tagdeck/internal/navstate"
)

// DefaultPriority is used when a route does not set one.
const DefaultPriority = 50

// Target describes the natively focused element at routing time.
type Target struct {
	Kind     element.Kind
	ID       string
	Classes  []string
	ReadOnly bool
	Element  *element.Element
}

// Context is the snapshot a pattern is matched against.
type Context struct {
	State navstate.State
	Pane  element.Pane
	Target
	Mods Mods
}

// ContextProvider is implemented by the host UI. ActiveElement returns the
// element holding native focus; CurrentPane is the last pane known to be
// active and is used when the element does not belong to a pane.
type ContextProvider interface {
	ActiveElement() *element.Element
	CurrentPane() element.Pane
}

// Handler runs the action of a matched route.
type Handler func(ev *Event, ctx Context) tea.Cmd

// Route is a registered rule.
type Route struct {
	Name           string
	Pattern        Pattern
	Priority       int
	PreventDefault bool
	handler        Handler
}

// RouteOption configures a route at registration.
type RouteOption func(*Route)

// WithPriority sets the route priority. Higher runs first.
func WithPriority(p int) RouteOption {
	return func(r *Route) { r.Priority = p }
}

// AllowDefault lets the key keep its default effect after the handler runs.
func AllowDefault() RouteOption {
	return func(r *Route) { r.PreventDefault = false }
}

// Named attaches a description, shown in help and logs.
func Named(name string) RouteOption {
	return func(r *Route) { r.Name = name }
}

// Router holds the route table.
type Router struct {
	buckets    map[int][]Route
	priorities []int
	machine    *navstate.Machine
	provider   ContextProvider
	log        logr.Logger
}

// New creates an empty router.
func New(machine *navstate.Machine, provider ContextProvider, log logr.Logger) *Router {
	return &Router{
		buckets:  make(map[int][]Route),
		machine:  machine,
		provider: provider,
		log:      log.WithName("router"),
	}
}

// SetProvider replaces the context provider.
func (r *Router) SetProvider(p ContextProvider) { r.provider = p }

// Register adds a route. Registration order is the tie-break within a
// priority.
func (r *Router) Register(p Pattern, h Handler, opts ...RouteOption) {
	rt := Route{
		Pattern:        p,
		Priority:       DefaultPriority,
		PreventDefault: true,
		handler:        h,
	}
	for _, opt := range opts {
		opt(&rt)
	}
	if _, ok := r.buckets[rt.Priority]; !ok {
		r.priorities = append(r.priorities, rt.Priority)
		slices.SortFunc(r.priorities, func(a, b int) int { return b - a })
	}
	r.buckets[rt.Priority] = append(r.buckets[rt.Priority], rt)
}

// Routes returns all routes in search order.
func (r *Router) Routes() []Route {
	var out []Route
	for _, p := range r.priorities {
		out = append(out, r.buckets[p]...)
	}
	return out
}

// Snapshot computes the routing context for ev.
func (r *Router) Snapshot(ev *Event) Context {
	ctx := Context{Mods: ev.Mods}
	if r.machine != nil {
		ctx.State = r.machine.State()
	}
	if r.provider == nil {
		return ctx
	}
	ctx.Pane = r.provider.CurrentPane()
	if el := r.provider.ActiveElement(); el != nil {
		if pane := el.PaneOf(); pane != element.PaneNone {
			ctx.Pane = pane
		}
		ctx.Target = Target{
			Kind:     el.Kind,
			ID:       el.ID,
			Classes:  el.Classes(),
			ReadOnly: el.ReadOnly(),
			Element:  el,
		}
	}
	return ctx
}

// Match returns the first route matching ev in ctx.
func (r *Router) Match(ev *Event, ctx Context) (Route, bool) {
	for _, p := range r.priorities {
		for _, rt := range r.buckets[p] {
			if rt.Pattern.Matches(ev, ctx) {
				return rt, true
			}
		}
	}
	return Route{}, false
}

// Route dispatches ev. It reports false when no route matches, leaving the
// event to the caller's fallback handling.
func (r *Router) Route(ev *Event) (bool, tea.Cmd) {
	ctx := r.Snapshot(ev)
	rt, ok := r.Match(ev, ctx)
	if !ok {
		return false, nil
	}
	if rt.PreventDefault {
		ev.PreventDefault()
	}
	r.log.V(1).Info("route matched",
		"key", ev.String(), "route", rt.Name, "priority", rt.Priority,
		"state", ctx.State.String(), "pane", string(ctx.Pane))
	if rt.handler == nil {
		return true, nil
	}
	return true, rt.handler(ev, ctx)
}
