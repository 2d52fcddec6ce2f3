package nav

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"missionboard/internal/passport"
)

type fakeSession struct {
	current *passport.Passport
	obs     map[int]func(passport.Passport, bool)
	next    int
	logouts int
}

func newFakeSession(signedIn bool) *fakeSession {
	s := &fakeSession{obs: map[int]func(passport.Passport, bool){}}
	if signedIn {
		s.current = &passport.Passport{AccessToken: "tok", Level: 1}
	}
	return s
}

func (s *fakeSession) Current() (passport.Passport, bool) {
	if s.current == nil {
		return passport.Passport{}, false
	}
	return *s.current, true
}

func (s *fakeSession) Logout(context.Context) error {
	s.logouts++
	s.current = nil
	for _, fn := range s.obs {
		fn(passport.Passport{}, false)
	}
	return nil
}

func (s *fakeSession) Subscribe(fn func(passport.Passport, bool)) func() {
	id := s.next
	s.next++
	s.obs[id] = fn
	return func() { delete(s.obs, id) }
}

func TestProtectedRouteWithoutSession(t *testing.T) {
	n := NewNavigator(newFakeSession(false), zerolog.Nop())
	var rendered []string
	n.OnChange(func(_, to string) { rendered = append(rendered, to) })

	for _, path := range []string{Mission, Profile} {
		got, ok := n.Navigate(context.Background(), path)
		if ok || got != Home {
			t.Fatalf("Navigate(%s)=(%s,%v), want (%s,false)", path, got, ok, Home)
		}
	}
	for _, p := range rendered {
		if p == Mission || p == Profile {
			t.Fatalf("protected view %s was entered", p)
		}
	}
}

func TestProtectedRouteWithSession(t *testing.T) {
	n := NewNavigator(newFakeSession(true), zerolog.Nop())
	got, ok := n.Navigate(context.Background(), "/mission/")
	if !ok || got != Mission {
		t.Fatalf("Navigate=(%s,%v), want (%s,true)", got, ok, Mission)
	}
}

func TestUnknownPathFallsToProfile(t *testing.T) {
	ctx := context.Background()

	n := NewNavigator(newFakeSession(true), zerolog.Nop())
	if got, _ := n.Navigate(ctx, "/nowhere?x=1"); got != Profile {
		t.Fatalf("signed in: got %s, want %s", got, Profile)
	}

	n = NewNavigator(newFakeSession(false), zerolog.Nop())
	if got, ok := n.Navigate(ctx, "/nowhere"); ok || got != Home {
		t.Fatalf("signed out: got (%s,%v), want (%s,false)", got, ok, Home)
	}
}

func TestLogoutRoute(t *testing.T) {
	s := newFakeSession(true)
	n := NewNavigator(s, zerolog.Nop())
	ctx := context.Background()
	n.Navigate(ctx, Profile)

	got, ok := n.Navigate(ctx, Logout)
	if ok || got != Home {
		t.Fatalf("Navigate(logout)=(%s,%v), want (%s,false)", got, ok, Home)
	}
	if s.logouts != 1 {
		t.Fatalf("logouts=%d, want 1", s.logouts)
	}
	if _, signedIn := s.Current(); signedIn {
		t.Fatalf("still signed in after /logout")
	}
}

func TestSessionEndRedirectsFromProtectedRoute(t *testing.T) {
	s := newFakeSession(true)
	n := NewNavigator(s, zerolog.Nop())
	ctx := context.Background()
	n.Navigate(ctx, Mission)

	var moves [][2]string
	n.OnChange(func(from, to string) { moves = append(moves, [2]string{from, to}) })

	_ = s.Logout(ctx)
	if n.Current() != Home {
		t.Fatalf("current=%s after session ended, want %s", n.Current(), Home)
	}
	if len(moves) != 1 || moves[0] != [2]string{Mission, Home} {
		t.Fatalf("moves=%v", moves)
	}
}

func TestSessionEndOnPublicRouteStays(t *testing.T) {
	s := newFakeSession(true)
	n := NewNavigator(s, zerolog.Nop())
	ctx := context.Background()
	n.Navigate(ctx, ServerError)
	_ = s.Logout(ctx)
	if n.Current() != ServerError {
		t.Fatalf("current=%s, want %s", n.Current(), ServerError)
	}
}

func TestCloseStopsWatching(t *testing.T) {
	s := newFakeSession(true)
	n := NewNavigator(s, zerolog.Nop())
	n.Navigate(context.Background(), Profile)
	n.Close()
	_ = s.Logout(context.Background())
	if n.Current() != Profile {
		t.Fatalf("closed navigator still reacted: %s", n.Current())
	}
}

func TestBackRechecksGuard(t *testing.T) {
	s := newFakeSession(true)
	n := NewNavigator(s, zerolog.Nop())
	ctx := context.Background()
	n.Navigate(ctx, Profile)
	n.Navigate(ctx, ServerError)
	if got := n.Back(ctx); got != Profile {
		t.Fatalf("Back=%s, want %s", got, Profile)
	}
	if got := n.Back(ctx); got != Home {
		t.Fatalf("second Back=%s, want %s", got, Home)
	}
	if got := n.Back(ctx); got != Home {
		t.Fatalf("Back with empty history=%s, want %s", got, Home)
	}
}

func TestBackWalksHistoryInOrder(t *testing.T) {
	s := newFakeSession(true)
	n := NewNavigator(s, zerolog.Nop())
	ctx := context.Background()
	n.Navigate(ctx, Mission)
	n.Navigate(ctx, Profile)

	var got []string
	for i := 0; i < 3; i++ {
		got = append(got, n.Back(ctx))
	}
	want := []string{Mission, Home, Home}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Back sequence=%v, want %v", got, want)
		}
	}
}

func TestBackIntoProtectedRouteAfterLogout(t *testing.T) {
	s := newFakeSession(true)
	n := NewNavigator(s, zerolog.Nop())
	ctx := context.Background()
	n.Navigate(ctx, Mission)
	n.Navigate(ctx, ServerError)
	s.current = nil

	if got := n.Back(ctx); got != Home {
		t.Fatalf("Back=%s, want guard redirect to %s", got, Home)
	}
}
