// Package router keeps the stack of screens the app navigates through.
// Screens never touch the stack themselves; they return the commands below
// and the app feeds the resulting messages to Router.Update.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/sjostromVilgot/Facta-sub000/internal/screen"
)

type (
	PushScreenMsg    struct{ Screen screen.Screen }
	ReplaceScreenMsg struct{ Screen screen.Screen }
	PopScreenMsg     struct{}
	PopToRootMsg     struct{}
)

func Push(s screen.Screen) tea.Cmd    { return send(PushScreenMsg{Screen: s}) }
func Replace(s screen.Screen) tea.Cmd { return send(ReplaceScreenMsg{Screen: s}) }
func Pop() tea.Cmd                    { return send(PopScreenMsg{}) }
func PopToRoot() tea.Cmd              { return send(PopToRootMsg{}) }

func send(msg tea.Msg) tea.Cmd { return func() tea.Msg { return msg } }

// Router is never empty: popping stops at the root screen.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Active() screen.Screen { return r.stack[len(r.stack)-1] }

func (r *Router) Depth() int { return len(r.stack) }

// Push shows s on top and initialises it.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace swaps the top screen for s, so Esc cannot return to the old one.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Pop returns to the screen below and runs its Init again, which is how
// screens pick up progress made on the screen that was closed.
func (r *Router) Pop() tea.Cmd { return r.unwind(len(r.stack) - 1) }

func (r *Router) PopToRoot() tea.Cmd { return r.unwind(1) }

func (r *Router) unwind(depth int) tea.Cmd {
	if depth < 1 || depth >= len(r.stack) {
		return nil
	}
	clear(r.stack[depth:])
	r.stack = r.stack[:depth]
	return r.Active().Init()
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	}
	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
