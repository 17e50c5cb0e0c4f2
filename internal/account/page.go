// Package account cubre login, registro y cierre de sesión.
package account

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"petcare-companion/internal/model"
	"petcare-companion/internal/notify"
	"petcare-companion/internal/page"
	"petcare-companion/internal/session"
)

const (
	MinNameLen     = 2
	MinPasswordLen = 6
)

type Page struct {
	deps page.Deps
}

func New(deps page.Deps) *Page {
	return &Page{deps: deps.WithDefaults()}
}

// Login valida contra el directorio de usuarios y abre la sesión.
func (p *Page) Login(ctx context.Context, email, password string) (model.User, error) {
	if p.deps.Session == nil {
		return model.User{}, errors.New("account: no session store")
	}
	u, err := p.deps.Session.Login(ctx, email, password)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrInvalidInput):
		return model.User{}, fmt.Errorf("%w: email and password are required", page.ErrInvalidInput)
	case errors.Is(err, session.ErrInvalidCredentials):
		notify.Warning(p.deps.Notify, "Login", "Invalid email or password.")
		return model.User{}, err
	default:
		return model.User{}, p.deps.Report("login", "Could not reach the server.", err)
	}

	p.deps.Log.Info("login", map[string]any{"user_id": u.ID})
	p.deps.Success("Welcome, " + displayName(u) + ".")
	return withoutPassword(u), nil
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	NationalID string
	Phone      string
}

// Validate aplica las reglas del formulario de registro.
func (in RegisterInput) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) < MinNameLen {
		return fmt.Errorf("%w: name must have at least %d characters", page.ErrInvalidInput, MinNameLen)
	}
	if !validEmail(in.Email) {
		return fmt.Errorf("%w: email is not valid", page.ErrInvalidInput)
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLen {
		return fmt.Errorf("%w: password must have at least %d characters", page.ErrInvalidInput, MinPasswordLen)
	}
	return nil
}

// Register crea la cuenta. No abre sesión.
func (p *Page) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	if err := in.Validate(); err != nil {
		return model.User{}, err
	}
	u, err := p.deps.Backend.CreateUser(ctx, model.User{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Password:   in.Password,
		NationalID: strings.TrimSpace(in.NationalID),
		Phone:      strings.TrimSpace(in.Phone),
	})
	if err != nil {
		return model.User{}, p.deps.Report("register", "Could not create the account.", err)
	}
	p.deps.Success("Account created. You can log in now.")
	return withoutPassword(u), nil
}

func (p *Page) Logout(ctx context.Context) error {
	if p.deps.Session == nil {
		return nil
	}
	if err := p.deps.Session.Logout(ctx); err != nil {
		return err
	}
	notify.Info(p.deps.Notify, "Session", "You have logged out.")
	return nil
}

type WhoAmI struct {
	User       model.User `json:"user"`
	LoggedInAt time.Time  `json:"loggedInAt"`
}

func (p *Page) WhoAmI() (WhoAmI, error) {
	if p.deps.Session == nil {
		return WhoAmI{}, session.ErrUnauthenticated
	}
	u, err := p.deps.Session.RequireUser()
	if err != nil {
		return WhoAmI{}, err
	}
	return WhoAmI{User: withoutPassword(u), LoggedInAt: p.deps.Session.LoggedInAt()}, nil
}

func validEmail(raw string) bool {
	raw = strings.TrimSpace(raw)
	a, err := mail.ParseAddress(raw)
	if err != nil || a.Address != raw {
		return false
	}
	_, domain, ok := strings.Cut(raw, "@")
	return ok && domain != ""
}

func displayName(u model.User) string {
	if n := strings.TrimSpace(u.Name); n != "" {
		return n
	}
	return u.Email
}

func withoutPassword(u model.User) model.User {
	u.Password = ""
	return u
}
