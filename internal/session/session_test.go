package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omfj/appwash-cli/pkg/client"
	"github.com/omfj/appwash-cli/pkg/client/fake"
)

func stubAuth(tokens map[string]string) *fake.MockClient {
	m := fake.NewMockClient()
	m.LoginFunc = func(_ context.Context, email, password string) (string, error) {
		if token, ok := tokens[email+":"+password]; ok {
			return token, nil
		}
		return "", &client.Error{Kind: client.KindInvalidCredentials, Code: client.CodeInvalidCredentials}
	}
	return m
}

func login(t *testing.T, s *Session, email, password string) error {
	t.Helper()
	_, err := s.Login(context.Background(), LoginRequest{Credentials: &Credentials{Email: email, Password: password}})
	return err
}

func TestNewSessionIsAnonymous(t *testing.T) {
	s := New(fake.NewMockClient())

	id := s.Current(true)
	assert.Equal(t, Anonymous, id.Status)
	assert.Empty(t, id.Email)
	assert.Empty(t, id.Token)
	assert.Empty(t, id.Password)

	_, err := s.AuthHeaders()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLoginSuccess(t *testing.T) {
	s := New(stubAuth(map[string]string{"a@b.com:pw": "T1"}))

	require.NoError(t, login(t, s, "a@b.com", "pw"))

	assert.Equal(t, Identity{Status: Authenticated, Email: "a@b.com", Token: "T1"}, s.Current(false))
	assert.Equal(t, "pw", s.Current(true).Password)

	auth, err := s.AuthHeaders()
	require.NoError(t, err)
	assert.Equal(t, Auth{Email: "a@b.com", Token: "T1"}, auth)
}

func TestLoginInvalidCredentialsKeepsPriorState(t *testing.T) {
	t.Run("from anonymous", func(t *testing.T) {
		s := New(stubAuth(nil))

		err := login(t, s, "a@b.com", "wrong")
		assert.ErrorIs(t, err, client.ErrInvalidCredentials)
		assert.Equal(t, Identity{Status: Anonymous}, s.Current(true))
	})

	t.Run("from authenticated", func(t *testing.T) {
		s := New(stubAuth(map[string]string{"a@b.com:pw": "T1"}))
		require.NoError(t, login(t, s, "a@b.com", "pw"))

		err := login(t, s, "c@d.com", "wrong")
		assert.ErrorIs(t, err, client.ErrInvalidCredentials)
		assert.Equal(t, Identity{Status: Authenticated, Email: "a@b.com", Token: "T1", Password: "pw"}, s.Current(true))
	})
}

func TestLoginRemoteFailurePreservesCode(t *testing.T) {
	m := fake.NewMockClient()
	m.LoginFunc = func(context.Context, string, string) (string, error) {
		return "", &client.Error{Kind: client.KindRemoteFailure, Code: 12}
	}
	s := New(m)

	err := login(t, s, "a@b.com", "pw")
	assert.ErrorIs(t, err, client.ErrRemoteFailure)
	code, ok := client.ErrorCode(err)
	assert.True(t, ok)
	assert.Equal(t, 12, code)
	assert.False(t, s.Authenticated())
}

func TestLoginPromptsWhenCredentialsOmitted(t *testing.T) {
	s := New(stubAuth(map[string]string{"a@b.com:pw": "T1"}))
	prompted := 0

	outcome, err := s.Login(context.Background(), LoginRequest{
		Prompt: func() (Credentials, error) {
			prompted++
			return Credentials{Email: "a@b.com", Password: "pw"}, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, LoggedIn, outcome)
	assert.Equal(t, 1, prompted)
	assert.True(t, s.Authenticated())
}

func TestLoginPromptErrorKeepsState(t *testing.T) {
	m := stubAuth(nil)
	s := New(m)

	_, err := s.Login(context.Background(), LoginRequest{
		Prompt: func() (Credentials, error) { return Credentials{}, errors.New("interrupted") },
	})
	require.Error(t, err)
	assert.False(t, s.Authenticated())
	assert.Empty(t, m.Calls)
}

func TestLoginWithoutCredentialsOrPrompt(t *testing.T) {
	m := stubAuth(nil)
	s := New(m)

	_, err := s.Login(context.Background(), LoginRequest{})
	require.Error(t, err)
	assert.Empty(t, m.Calls)
}

func TestRelogin(t *testing.T) {
	tokens := map[string]string{"a@b.com:pw": "T1", "c@d.com:pw2": "T2"}

	t.Run("declined is a no-op", func(t *testing.T) {
		m := stubAuth(tokens)
		s := New(m)
		require.NoError(t, login(t, s, "a@b.com", "pw"))

		outcome, err := s.Login(context.Background(), LoginRequest{
			Credentials: &Credentials{Email: "c@d.com", Password: "pw2"},
			Confirm:     func() (bool, error) { return false, nil },
		})
		require.NoError(t, err)
		assert.Equal(t, LoginDeclined, outcome)
		assert.Equal(t, "T1", s.Current(false).Token)
		assert.Equal(t, []string{"Login"}, m.Calls)
	})

	t.Run("confirmed replaces credentials", func(t *testing.T) {
		s := New(stubAuth(tokens))
		require.NoError(t, login(t, s, "a@b.com", "pw"))

		outcome, err := s.Login(context.Background(), LoginRequest{
			Credentials: &Credentials{Email: "c@d.com", Password: "pw2"},
			Confirm:     func() (bool, error) { return true, nil },
		})
		require.NoError(t, err)
		assert.Equal(t, LoggedIn, outcome)
		assert.Equal(t, Identity{Status: Authenticated, Email: "c@d.com", Token: "T2", Password: "pw2"}, s.Current(true))
	})

	t.Run("confirm is not asked while anonymous", func(t *testing.T) {
		s := New(stubAuth(tokens))
		asked := false

		_, err := s.Login(context.Background(), LoginRequest{
			Credentials: &Credentials{Email: "a@b.com", Password: "pw"},
			Confirm:     func() (bool, error) { asked = true; return false, nil },
		})
		require.NoError(t, err)
		assert.False(t, asked)
		assert.True(t, s.Authenticated())
	})
}

func TestLogout(t *testing.T) {
	s := New(stubAuth(map[string]string{"a@b.com:pw": "T1"}))

	assert.False(t, s.Logout(), "logout while anonymous is a no-op")

	require.NoError(t, login(t, s, "a@b.com", "pw"))
	assert.True(t, s.Logout())
	assert.Equal(t, Identity{Status: Anonymous}, s.Current(true))

	assert.False(t, s.Logout())
}

// The status is Authenticated iff the last state-changing call was a
// successful login not yet followed by a logout.
func TestStatusFollowsLastStateChange(t *testing.T) {
	s := New(stubAuth(map[string]string{"a@b.com:pw": "T1"}))

	steps := []struct {
		op   string
		want Status
	}{
		{"login-ok", Authenticated},
		{"login-bad", Authenticated},
		{"logout", Anonymous},
		{"logout", Anonymous},
		{"login-bad", Anonymous},
		{"login-ok", Authenticated},
		{"login-ok", Authenticated},
		{"logout", Anonymous},
	}

	for i, step := range steps {
		switch step.op {
		case "login-ok":
			_ = login(t, s, "a@b.com", "pw")
		case "login-bad":
			_ = login(t, s, "a@b.com", "bad")
		case "logout":
			s.Logout()
		}
		assert.Equal(t, step.want, s.Current(false).Status, "step %d (%s)", i, step.op)
		if step.want == Anonymous {
			assert.Equal(t, Identity{Status: Anonymous}, s.Current(true), "fields cleared at step %d", i)
		}
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Anonymous", Anonymous.String())
	assert.Equal(t, "Authenticated", Authenticated.String())
	assert.Equal(t, "Status(7)", Status(7).String())
}
