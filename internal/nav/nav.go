package nav

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"missionboard/internal/passport"
)

const (
	Home        = "/"
	Login       = "/login"
	Register    = "/register"
	Mission     = "/mission"
	Profile     = "/profile"
	ServerError = "/server-error"
	Logout      = "/logout"
)

// Session is the part of the passport store navigation depends on.
type Session interface {
	Current() (passport.Passport, bool)
	Logout(ctx context.Context) error
	Subscribe(fn func(passport.Passport, bool)) (cancel func())
}

type Decision struct {
	Allow    bool
	Redirect string
}

// Guard is consulted before a route is entered.
type Guard func(ctx context.Context, path string) Decision

// RequireSession lets signed-in players through and sends everyone else home.
func RequireSession(s Session) Guard {
	return func(context.Context, string) Decision {
		if _, ok := s.Current(); ok {
			return Decision{Allow: true}
		}
		return Decision{Redirect: Home}
	}
}

// LogoutGuard signs the player out and never lets the route render.
func LogoutGuard(s Session, log zerolog.Logger) Guard {
	return func(ctx context.Context, _ string) Decision {
		if err := s.Logout(ctx); err != nil {
			log.Warn().Err(err).Msg("logout route")
		}
		return Decision{Redirect: Home}
	}
}

type Route struct {
	Path      string
	Title     string
	Protected bool
	Guard     Guard
}

func Routes(s Session, log zerolog.Logger) []Route {
	requireSession := RequireSession(s)
	return []Route{
		{Path: Home, Title: "Home"},
		{Path: Login, Title: "Sign in"},
		{Path: Register, Title: "Register"},
		{Path: Mission, Title: "Missions", Protected: true, Guard: requireSession},
		{Path: Profile, Title: "Profile", Protected: true, Guard: requireSession},
		{Path: ServerError, Title: "Server error"},
		{Path: Logout, Title: "Sign out", Guard: LogoutGuard(s, log)},
	}
}

// Navigator owns the current route. It watches the session and leaves a
// protected route as soon as the session goes away.
type Navigator struct {
	log    zerolog.Logger
	cancel func()

	mu        sync.Mutex
	routes    map[string]Route
	current   string
	history   []string
	listeners []func(from, to string)
}

func NewNavigator(s Session, logger zerolog.Logger) *Navigator {
	n := &Navigator{
		log:     logger.With().Str("component", "nav").Logger(),
		routes:  make(map[string]Route),
		current: Home,
	}
	for _, r := range Routes(s, n.log) {
		n.routes[r.Path] = r
	}
	n.cancel = s.Subscribe(n.sessionChanged)
	return n
}

// Close stops watching the session.
func (n *Navigator) Close() {
	if n.cancel != nil {
		n.cancel()
	}
}

// OnChange registers fn for every route change.
func (n *Navigator) OnChange(fn func(from, to string)) {
	n.mu.Lock()
	n.listeners = append(n.listeners, fn)
	n.mu.Unlock()
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Navigator) Route(path string) (Route, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	r, ok := n.routes[path]
	return r, ok
}

// Resolve normalizes a path; unknown paths fall through to the profile.
func (n *Navigator) Resolve(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.routes[path]; ok {
		return path
	}
	return Profile
}

// Navigate tries to enter path and reports where the navigator ended up and
// whether the requested route was allowed.
func (n *Navigator) Navigate(ctx context.Context, path string) (string, bool) {
	return n.enter(ctx, path, true)
}

// Back returns to the previous route, re-checking its guard. The route being
// left is not recorded, so repeated calls keep walking back.
func (n *Navigator) Back(ctx context.Context) string {
	n.mu.Lock()
	if len(n.history) == 0 {
		cur := n.current
		n.mu.Unlock()
		return cur
	}
	prev := n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	n.mu.Unlock()
	to, _ := n.enter(ctx, prev, false)
	return to
}

func (n *Navigator) enter(ctx context.Context, path string, record bool) (string, bool) {
	target := n.Resolve(path)
	r, _ := n.Route(target)

	// Guards run unlocked: the logout guard triggers a session change that
	// re-enters the navigator.
	if r.Guard != nil {
		if d := r.Guard(ctx, target); !d.Allow {
			n.log.Debug().Str("path", target).Str("redirect", d.Redirect).Msg("navigation denied")
			if d.Redirect != "" && d.Redirect != target {
				n.moveTo(d.Redirect, record)
			}
			return n.Current(), false
		}
	}
	n.moveTo(target, record)
	return target, true
}

func (n *Navigator) moveTo(path string, record bool) {
	n.mu.Lock()
	from := n.current
	if from == path {
		n.mu.Unlock()
		return
	}
	if record {
		n.history = append(n.history, from)
	}
	n.current = path
	fns := append([]func(string, string){}, n.listeners...)
	n.mu.Unlock()

	for _, fn := range fns {
		fn(from, path)
	}
}

func (n *Navigator) sessionChanged(_ passport.Passport, ok bool) {
	if ok {
		return
	}
	n.mu.Lock()
	r := n.routes[n.current]
	n.mu.Unlock()
	if r.Protected {
		n.log.Debug().Str("path", r.Path).Msg("session ended on protected route")
		n.moveTo(Home, true)
	}
}
