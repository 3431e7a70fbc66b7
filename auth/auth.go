// Package auth obtains OAuth2 credentials for the fitness API. Tokens are
// cached in a file; when no cached token exists the user is sent through the
// console consent flow once.
package auth

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// BodyReadScope grants read access to body measurements such as weight.
const BodyReadScope = "https://www.googleapis.com/auth/fitness.body.read"

var ErrNoAuthCode = errors.New("no authorization code entered")

// LoadConfig reads an OAuth2 client secrets file as downloaded from the
// Google API console.
func LoadConfig(clientSecretsPath string, scopes ...string) (*oauth2.Config, error) {
	raw, err := os.ReadFile(clientSecretsPath)
	if err != nil {
		return nil, fmt.Errorf("read client secrets: %w", err)
	}
	cfg, err := google.ConfigFromJSON(raw, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}
	return cfg, nil
}

type Authenticator struct {
	Config    *oauth2.Config
	TokenFile string
	Logger    *log.Logger

	// In and Out carry the consent prompt, normally stdin and stdout.
	In  io.Reader
	Out io.Writer
}

func NewAuthenticator(cfg *oauth2.Config, tokenFile string, logger *log.Logger) *Authenticator {
	return &Authenticator{
		Config:    cfg,
		TokenFile: tokenFile,
		Logger:    logger,
		In:        os.Stdin,
		Out:       os.Stdout,
	}
}

// TokenSource returns a refreshing token source, running the consent flow
// first if no token is cached.
func (a *Authenticator) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := LoadToken(a.TokenFile)
	switch {
	case err == nil:
		a.Logger.Debug("using cached token", "file", a.TokenFile)
	case errors.Is(err, fs.ErrNotExist):
		a.Logger.Info("no cached token, starting consent flow", "file", a.TokenFile)
		tok, err = a.consent(ctx)
		if err != nil {
			return nil, err
		}
		if err := SaveToken(a.TokenFile, tok); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return a.Config.TokenSource(ctx, tok), nil
}

func (a *Authenticator) consent(ctx context.Context) (*oauth2.Token, error) {
	url := a.Config.AuthCodeURL("weight-exporter", oauth2.AccessTypeOffline)
	fmt.Fprintf(a.Out, "Open the following link in your browser, then paste the authorization code:\n\n%s\n\n> ", url)

	scanner := bufio.NewScanner(a.In)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read authorization code: %w", err)
		}
		return nil, ErrNoAuthCode
	}
	code := strings.TrimSpace(scanner.Text())
	if code == "" {
		return nil, ErrNoAuthCode
	}

	tok, err := a.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

func LoadToken(path string) (*oauth2.Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, fmt.Errorf("decode token file: %w", err)
	}
	return &tok, nil
}

func SaveToken(path string, tok *oauth2.Token) error {
	out, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create token file: %w", err)
	}
	defer out.Close()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tok); err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	return nil
}
