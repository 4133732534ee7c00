package console

import (
	"context"
	"sync"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

// Authenticator is the account side of the API client.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string, rememberMe bool) error
	Account(ctx context.Context) (*entity.Account, error)
	Logout()
}

// Session tracks the signed-in account and serves as the router's gate.
type Session struct {
	auth Authenticator

	mu      sync.RWMutex
	account *entity.Account
}

func NewSession(auth Authenticator) *Session {
	return &Session{auth: auth}
}

func (s *Session) Login(ctx context.Context, username, password string, rememberMe bool) error {
	if err := s.auth.Authenticate(ctx, username, password, rememberMe); err != nil {
		return err
	}
	return s.Restore(ctx)
}

// Restore loads the account behind an already known token.
func (s *Session) Restore(ctx context.Context) error {
	account, err := s.auth.Account(ctx)
	if err != nil {
		s.Logout()
		return err
	}

	s.mu.Lock()
	s.account = account
	s.mu.Unlock()
	return nil
}

func (s *Session) Logout() {
	s.auth.Logout()
	s.mu.Lock()
	s.account = nil
	s.mu.Unlock()
}

func (s *Session) Account() *entity.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account != nil && s.account.Activated
}

func (s *Session) HasAnyAuthority(authorities ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return false
	}
	for _, want := range authorities {
		for _, have := range s.account.Authorities {
			if want == have {
				return true
			}
		}
	}
	return false
}

// LoginPage is shown when a guarded route is opened without a session.
type LoginPage struct {
	session *Session
	router  *Router
}

func (p *LoginPage) Title() string { return "Sign in" }

// Submit signs in and continues to the route that asked for it.
func (p *LoginPage) Submit(ctx context.Context, username, password string, rememberMe bool) error {
	if err := p.session.Login(ctx, username, password, rememberMe); err != nil {
		return err
	}
	return p.router.LoginSucceeded(ctx)
}

// RegisterLogin adds the login route backed by session.
func RegisterLogin(r *Router, session *Session) {
	page := &LoginPage{session: session, router: r}
	r.Handle(Route{Path: LoginRoute, Open: staticPage(page)})
}
