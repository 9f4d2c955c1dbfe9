package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// Provider talks to a Firebase-style identity REST endpoint and tracks the
// current session locally. All session mutations flow through setCurrent so
// every subscriber sees every change.
type Provider struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logrus.Logger

	mu        sync.Mutex
	current   *User
	subs      map[int]func(*User)
	nextSubID int
}

func NewProvider(baseURL, apiKey string, timeout time.Duration, log *logrus.Logger) *Provider {
	return &Provider{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		log:     log,
		subs:    make(map[int]func(*User)),
	}
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type tokenResponse struct {
	IDToken string `json:"idToken"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *Provider) Register(ctx context.Context, email, password string) (*User, error) {
	return p.authenticate(ctx, "signUp", email, password)
}

func (p *Provider) Login(ctx context.Context, email, password string) (*User, error) {
	return p.authenticate(ctx, "signInWithPassword", email, password)
}

// Logout only drops the local session; the provider keeps no server-side
// session for this flow.
func (p *Provider) Logout(ctx context.Context) error {
	p.setCurrent(nil)
	return nil
}

func (p *Provider) CurrentUser() *User {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Subscribe invokes fn immediately with the current (possibly nil) user and
// afterwards on every session change. It returns an unsubscribe func.
func (p *Provider) Subscribe(fn func(*User)) func() {
	p.mu.Lock()
	id := p.nextSubID
	p.nextSubID++
	p.subs[id] = fn
	current := p.current
	p.mu.Unlock()

	fn(current)
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

func (p *Provider) authenticate(ctx context.Context, action, email, password string) (*User, error) {
	payload, err := json.Marshal(credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal credentials: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/accounts:%s?key=%s", p.baseURL, action, url.QueryEscape(p.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read identity response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var er errorResponse
		if json.Unmarshal(data, &er) == nil && er.Error.Message != "" {
			return nil, fmt.Errorf("identity provider rejected %s: %s", action, er.Error.Message)
		}
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("decode identity response: %w", err)
	}

	user, err := userFromToken(tr.IDToken)
	if err != nil {
		return nil, err
	}

	p.setCurrent(user)
	p.log.WithField("uid", user.UID).Debug("session established")
	return user, nil
}

// userFromToken extracts uid and email from the provider-issued JWT. The
// token is not verified locally; the provider is the authority on it.
func userFromToken(token string) (*User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse identity token: %w", err)
	}

	uid, _ := claims["sub"].(string)
	if uid == "" {
		return nil, errors.New("identity token missing subject claim")
	}
	email, _ := claims["email"].(string)
	return &User{UID: uid, Email: email}, nil
}

func (p *Provider) setCurrent(u *User) {
	p.mu.Lock()
	p.current = u
	subs := make([]func(*User), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(u)
	}
}
