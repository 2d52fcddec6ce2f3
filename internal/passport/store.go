package passport

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"missionboard/internal/engine"
)

const slotKey = "passport"

// Slot is the durable single-key cache the passport is mirrored to.
type Slot interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Backend is the remote authority for accounts.
type Backend interface {
	Login(ctx context.Context, c Credentials) (Record, error)
	Register(ctx context.Context, r Registration) (Record, error)
	UpdateProfile(ctx context.Context, token, displayName string) error
	// UploadAvatar returns the URL of the stored image.
	UploadAvatar(ctx context.Context, token string, a Avatar) (string, error)
}

// Recorder receives store outcomes for metrics.
type Recorder interface {
	AuthAttempt(op string, ok bool)
	XPAwarded(amount int)
	AvatarUpload(ok bool)
}

type nopRecorder struct{}

func (nopRecorder) AuthAttempt(string, bool) {}
func (nopRecorder) XPAwarded(int)            {}
func (nopRecorder) AvatarUpload(bool)        {}

type Option func(*Store)

func WithRecorder(r Recorder) Option {
	return func(s *Store) { s.rec = r }
}

// Store owns the current passport. All writes go through its methods; each
// successful write is persisted to the slot before it becomes visible.
type Store struct {
	backend Backend
	slot    Slot
	log     zerolog.Logger
	rec     Recorder

	// wmu serializes mutations; mu guards reads of current and observers.
	wmu       sync.Mutex
	mu        sync.Mutex
	current   *Passport
	observers map[int]func(Passport, bool)
	nextObs   int
}

// NewStore hydrates from the slot. A stored record that cannot be decoded is
// deleted and the store starts signed out.
func NewStore(ctx context.Context, backend Backend, slot Slot, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		slot:      slot,
		log:       logger.With().Str("component", "passport").Logger(),
		rec:       nopRecorder{},
		observers: make(map[int]func(Passport, bool)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hydrate(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context) {
	raw, ok, err := s.slot.Get(ctx, slotKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("read stored passport")
		return
	}
	if !ok {
		return
	}
	p, err := Decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("discarding malformed stored passport")
		if err := s.slot.Delete(ctx, slotKey); err != nil {
			s.log.Warn().Err(err).Msg("delete malformed passport")
		}
		return
	}
	s.current = &p
	s.log.Debug().Int("xp", p.XP).Int("level", p.Level).Msg("session restored")
}

// Current returns a copy of the passport, or false when signed out.
func (s *Store) Current() (Passport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Passport{}, false
	}
	return *s.current, true
}

func (s *Store) Token() string {
	p, _ := s.Current()
	return p.AccessToken
}

func (s *Store) Progress() (int, int, bool) {
	p, ok := s.Current()
	return p.XP, p.Level, ok
}

// Subscribe registers fn for every state transition. fn runs synchronously on
// the goroutine that made the change, after the store has released its locks.
func (s *Store) Subscribe(fn func(p Passport, ok bool)) (cancel func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(p Passport, ok bool) {
	s.mu.Lock()
	fns := make([]func(Passport, bool), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(p, ok)
	}
}

// commit persists p and then swaps it in. Callers hold wmu.
func (s *Store) commit(ctx context.Context, p Passport) error {
	raw, err := Encode(p)
	if err != nil {
		return err
	}
	if err := s.slot.Put(ctx, slotKey, raw); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = &p
	s.mu.Unlock()
	return nil
}

func (s *Store) replace(ctx context.Context, p Passport) error {
	s.wmu.Lock()
	err := s.commit(ctx, p)
	s.wmu.Unlock()
	if err != nil {
		return err
	}
	s.notify(p, true)
	return nil
}

// update applies fn to the current passport, persists and swaps the result.
// It reports false when there is no session.
func (s *Store) update(ctx context.Context, fn func(*Passport)) (bool, error) {
	s.wmu.Lock()
	cur, ok := s.Current()
	if !ok {
		s.wmu.Unlock()
		return false, nil
	}
	fn(&cur)
	err := s.commit(ctx, cur)
	s.wmu.Unlock()
	if err != nil {
		return true, err
	}
	s.notify(cur, true)
	return true, nil
}

func (s *Store) Login(ctx context.Context, c Credentials) error {
	rec, err := s.backend.Login(ctx, c)
	if err != nil {
		s.rec.AuthAttempt("login", false)
		s.log.Info().Err(err).Str("username", c.Username).Msg("login rejected")
		return failure("login", err, msgUnknown)
	}
	if err := s.replace(ctx, rec.Normalize()); err != nil {
		s.rec.AuthAttempt("login", false)
		s.log.Error().Err(err).Msg("persist passport")
		return failure("login", err, msgUnknown)
	}
	s.rec.AuthAttempt("login", true)
	s.log.Info().Str("username", c.Username).Msg("signed in")
	return nil
}

func (s *Store) Register(ctx context.Context, r Registration) error {
	rec, err := s.backend.Register(ctx, r)
	if err != nil {
		s.rec.AuthAttempt("register", false)
		s.log.Info().Err(err).Str("username", r.Username).Msg("registration rejected")
		return failure("register", err, msgUnknown)
	}
	if err := s.replace(ctx, rec.Normalize()); err != nil {
		s.rec.AuthAttempt("register", false)
		s.log.Error().Err(err).Msg("persist passport")
		return failure("register", err, msgUnknown)
	}
	s.rec.AuthAttempt("register", true)
	s.log.Info().Str("username", r.Username).Msg("registered")
	return nil
}

// Logout forgets the session in memory even if the slot cannot be cleared.
func (s *Store) Logout(ctx context.Context) error {
	s.wmu.Lock()
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	err := s.slot.Delete(ctx, slotKey)
	s.wmu.Unlock()

	s.notify(Passport{}, false)
	if err != nil {
		s.log.Error().Err(err).Msg("delete stored passport")
		return failure("logout", err, msgUnknown)
	}
	s.log.Info().Msg("signed out")
	return nil
}

// AddXP credits the current player. Without a session it does nothing.
func (s *Store) AddXP(ctx context.Context, amount int) error {
	ok, err := s.update(ctx, func(p *Passport) {
		p.XP = engine.AddXP(p.XP, amount)
		p.Level = engine.LevelForTotalXP(p.XP)
	})
	if err != nil {
		s.log.Error().Err(err).Int("amount", amount).Msg("persist xp")
		return failure("add xp", err, msgUnknown)
	}
	if ok {
		s.rec.XPAwarded(amount)
		s.log.Debug().Int("amount", amount).Msg("xp credited")
	}
	return nil
}

func (s *Store) UpdateProfile(ctx context.Context, displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return &ValidationError{Message: msgNameRequired}
	}
	token := s.Token()
	if token == "" {
		return &Error{Op: "update profile", Message: msgSignIn, Err: ErrNoSession}
	}
	if err := s.backend.UpdateProfile(ctx, token, displayName); err != nil {
		s.log.Info().Err(err).Msg("profile update rejected")
		return failure("update profile", err, msgUnknown)
	}
	if _, err := s.update(ctx, func(p *Passport) { p.DisplayName = displayName }); err != nil {
		return failure("update profile", err, msgUnknown)
	}
	return nil
}

// UploadAvatar validates the image locally before sending it. A response
// without a URL leaves the passport as it was.
func (s *Store) UploadAvatar(ctx context.Context, a Avatar) error {
	if err := a.Validate(); err != nil {
		return err
	}
	token := s.Token()
	if token == "" {
		return &Error{Op: "upload avatar", Message: msgSignIn, Err: ErrNoSession}
	}

	url, err := s.backend.UploadAvatar(ctx, token, a)
	if err != nil {
		s.rec.AvatarUpload(false)
		s.log.Warn().Err(err).Str("file", a.Name).Str("size", a.Size()).Msg("avatar upload failed")
		return failure("upload avatar", err, msgUploadFailed)
	}
	s.rec.AvatarUpload(true)
	if url == "" {
		return nil
	}
	if _, err := s.update(ctx, func(p *Passport) { p.AvatarURL = url }); err != nil {
		return failure("upload avatar", err, msgUploadFailed)
	}
	s.log.Info().Str("file", a.Name).Str("size", a.Size()).Msg("avatar updated")
	return nil
}
