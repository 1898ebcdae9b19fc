// Package session tracks whether the shell is logged in to AppWash.
//
// A Session starts Anonymous and only becomes Authenticated through a
// successful login exchange. Email, password and token are set together and
// cleared together; a failed login leaves the previous state untouched. The
// session never talks to the terminal: prompts and confirmations are
// supplied by the caller.
package session

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by AuthHeaders while Anonymous.
var ErrNotAuthenticated = errors.New("not authenticated")

type Status int

const (
	Anonymous Status = iota
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Anonymous:
		return "Anonymous"
	case Authenticated:
		return "Authenticated"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type Credentials struct {
	Email    string
	Password string
}

// LoginRequest carries the caller's I/O boundary for a login.
type LoginRequest struct {
	// Credentials, when set, are used as is and Prompt is not called.
	Credentials *Credentials
	// Prompt asks the user for credentials.
	Prompt func() (Credentials, error)
	// Confirm asks whether to replace an existing login. It is only called
	// while Authenticated; nil counts as confirmed.
	Confirm func() (bool, error)
}

type LoginOutcome int

const (
	LoggedIn LoginOutcome = iota
	// LoginDeclined means the user kept the existing login.
	LoginDeclined
)

// Identity is a read-only view of the session.
type Identity struct {
	Status Status
	Email  string
	Token  string
	// Password is only filled when secrets were requested.
	Password string
}

// Auth holds what the API client needs for privileged calls.
type Auth struct {
	Email string
	Token string
}

type Session struct {
	auth Authenticator

	status   Status
	email    string
	password string
	token    string
}

func New(auth Authenticator) *Session {
	return &Session{auth: auth}
}

func (s *Session) Authenticated() bool {
	return s.status == Authenticated
}

// Login runs the login exchange described by req. On any error the session
// keeps its prior state.
func (s *Session) Login(ctx context.Context, req LoginRequest) (LoginOutcome, error) {
	if s.status == Authenticated && req.Confirm != nil {
		ok, err := req.Confirm()
		if err != nil {
			return LoginDeclined, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			return LoginDeclined, nil
		}
	}

	var creds Credentials
	switch {
	case req.Credentials != nil:
		creds = *req.Credentials
	case req.Prompt != nil:
		var err error
		creds, err = req.Prompt()
		if err != nil {
			return LoginDeclined, fmt.Errorf("failed to read credentials: %w", err)
		}
	default:
		return LoginDeclined, errors.New("no credentials supplied")
	}

	token, err := s.auth.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return LoginDeclined, err
	}

	s.status = Authenticated
	s.email = creds.Email
	s.password = creds.Password
	s.token = token
	return LoggedIn, nil
}

// Logout returns false when there was nothing to log out of.
func (s *Session) Logout() bool {
	if s.status == Anonymous {
		return false
	}
	s.Reset()
	return true
}

// Reset drops any login without reporting whether one existed.
func (s *Session) Reset() {
	s.status = Anonymous
	s.email = ""
	s.password = ""
	s.token = ""
}

// Current returns the session's identity. The password is only included
// when revealSecrets is set.
func (s *Session) Current(revealSecrets bool) Identity {
	id := Identity{Status: s.status, Email: s.email, Token: s.token}
	if revealSecrets {
		id.Password = s.password
	}
	return id
}

func (s *Session) AuthHeaders() (Auth, error) {
	if s.status != Authenticated {
		return Auth{}, ErrNotAuthenticated
	}
	return Auth{Email: s.email, Token: s.token}, nil
}
