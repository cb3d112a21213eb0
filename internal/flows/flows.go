// Package flows implements the per-endpoint authentication state
// machines: login, registration, and logout. Each flow validates input,
// consults the credential store, mutates the session, and resolves to a
// redirect target. Collaborators are passed in explicitly so every flow
// is unit-testable with fakes.
package flows

import (
	"context"
	"errors"
	"log"

	"authweb/internal/flash"
	"authweb/internal/forms"
	"authweb/internal/users"
)

// Redirect targets. Every flow terminates in exactly one of these.
const (
	PathHome     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"
)

// User-facing flow messages. Authentication failures deliberately do not
// distinguish unknown accounts from wrong passwords.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgEmailExists        = "Email already exists"
	MsgSomethingWrong     = "Something went wrong"
)

// Messenger pushes one-shot leveled messages onto a session.
type Messenger interface {
	Add(ctx context.Context, sessionID string, level flash.Level, text string) error
}

// FormStash stores a failed registration submission for redisplay.
type FormStash interface {
	Stash(ctx context.Context, sessionID string, data forms.RegisterData) error
}

// AuthSession owns the session-resident authenticated-user record.
type AuthSession interface {
	SetUser(ctx context.Context, sessionID string, user users.User) error
	Flush(ctx context.Context, sessionID string) error
}

// Deps captures the collaborators shared by all flows.
type Deps struct {
	Credentials users.Store
	Messages    Messenger
	Stash       FormStash
	Auth        AuthSession
	Logger      *log.Logger
}

func (d Deps) warnf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
	}
}

// RunLogin executes the login flow and returns the redirect target.
// A non-nil error means the session store failed mid-flow; the caller
// must answer with a server error instead of a redirect.
func RunLogin(ctx context.Context, sessionID string, data forms.LoginData, deps Deps) (string, error) {
	if messages := forms.Validate(data); messages != nil {
		for _, text := range messages {
			if err := deps.Messages.Add(ctx, sessionID, flash.LevelError, text); err != nil {
				return "", err
			}
		}
		return PathLogin, nil
	}

	user, err := deps.Credentials.Login(ctx, data.Email, data.Password)
	if err != nil {
		if !errors.Is(err, users.ErrInvalidCredentials) {
			deps.warnf("login: credential store error: %v", err)
		}
		if err := deps.Messages.Add(ctx, sessionID, flash.LevelError, MsgInvalidCredentials); err != nil {
			return "", err
		}
		return PathLogin, nil
	}

	if err := deps.Auth.SetUser(ctx, sessionID, *user); err != nil {
		return "", err
	}
	return PathHome, nil
}

// RunRegister executes the registration flow and returns the redirect
// target. On every failure branch the submitted form is stashed so the
// registration page re-renders pre-filled. The error contract matches
// RunLogin.
func RunRegister(ctx context.Context, sessionID string, data forms.RegisterData, deps Deps) (string, error) {
	if messages := forms.Validate(data); messages != nil {
		for _, text := range messages {
			if err := deps.Messages.Add(ctx, sessionID, flash.LevelError, text); err != nil {
				return "", err
			}
		}
		if err := deps.Stash.Stash(ctx, sessionID, data); err != nil {
			return "", err
		}
		return PathRegister, nil
	}

	exists, err := deps.Credentials.EmailExists(ctx, data.Email)
	if err != nil {
		deps.warnf("register: email existence check error: %v", err)
		return registerFailure(ctx, sessionID, data, MsgSomethingWrong, deps)
	}
	if exists {
		return registerFailure(ctx, sessionID, data, MsgEmailExists, deps)
	}

	user, err := deps.Credentials.Register(ctx, data.Name, data.Email, data.Password)
	if err != nil {
		deps.warnf("register: account creation error: %v", err)
		return registerFailure(ctx, sessionID, data, MsgSomethingWrong, deps)
	}

	if err := deps.Auth.SetUser(ctx, sessionID, *user); err != nil {
		return "", err
	}
	return PathHome, nil
}

func registerFailure(ctx context.Context, sessionID string, data forms.RegisterData, text string, deps Deps) (string, error) {
	if err := deps.Messages.Add(ctx, sessionID, flash.LevelError, text); err != nil {
		return "", err
	}
	if err := deps.Stash.Stash(ctx, sessionID, data); err != nil {
		return "", err
	}
	return PathRegister, nil
}

// RunLogout flushes the entire session, authenticated-user record and
// all pending one-shot state included, and redirects to the login page.
func RunLogout(ctx context.Context, sessionID string, deps Deps) (string, error) {
	if err := deps.Auth.Flush(ctx, sessionID); err != nil {
		return "", err
	}
	return PathLogin, nil
}
