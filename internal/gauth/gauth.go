// Package gauth builds the authenticated Drive session handle. It owns the
// OAuth client secret file, the cached token file, and token refresh
// persistence. The rest of the application only ever sees the ready
// *drive.Service; no other package touches credentials.
package gauth

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// NewService returns an authenticated Drive v3 service. It uses the cached
// token file when present; otherwise it runs the installed-app authorization
// flow, prompting on prompt/answer (typically stdout/stdin), and caches the
// resulting token.
func NewService(ctx context.Context, credentialsFile string, tokenFile string, prompt io.Writer, answer io.Reader) (*drive.Service, error) {
	raw, err := os.ReadFile(credentialsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(
				"missing %s: download the OAuth client JSON from Google Cloud Console and save it there", credentialsFile)
		}
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	if err := checkCredentialsType(raw); err != nil {
		return nil, err
	}

	cfg, err := google.ConfigFromJSON(raw, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}

	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		tok, err = tokenFromPrompt(ctx, cfg, prompt, answer)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, tok); err != nil {
			return nil, err
		}
	}

	source := &savingTokenSource{
		path: tokenFile,
		src:  cfg.TokenSource(ctx, tok),
		last: tok,
	}

	svc, err := drive.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return svc, nil
}

// checkCredentialsType rejects "Web application" OAuth clients early. The
// service needs a Desktop (installed) client; a web client fails only later
// with an opaque redirect error.
func checkCredentialsType(raw []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("credentials file is not valid JSON: %w", err)
	}

	_, hasWeb := probe["web"]
	_, hasInstalled := probe["installed"]
	if hasWeb && !hasInstalled {
		return fmt.Errorf("credentials file is for a 'Web application' OAuth client; " +
			"create a 'Desktop application' client in Google Cloud Console " +
			"(APIs & Services > Credentials > Create Credentials > OAuth client ID) and use that JSON instead")
	}

	return nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tok := &oauth2.Token{}
	if err := json.Unmarshal(raw, tok); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}

	return tok, nil
}

func tokenFromPrompt(ctx context.Context, cfg *oauth2.Config, prompt io.Writer, answer io.Reader) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(prompt, "Open the following link in your browser, authorize the app, then paste the code here:\n%s\n> ", authURL)

	var code string
	scanner := bufio.NewScanner(answer)
	if scanner.Scan() {
		code = scanner.Text()
	}
	if code == "" {
		return nil, fmt.Errorf("no authorization code provided")
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}

	raw, err := json.Marshal(tok)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("save token file: %w", err)
	}

	return nil
}

// savingTokenSource persists refreshed tokens back to disk so the next
// process start skips the authorization prompt.
type savingTokenSource struct {
	path string
	src  oauth2.TokenSource
	mu   sync.Mutex
	last *oauth2.Token
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	if s.last == nil || tok.AccessToken != s.last.AccessToken {
		s.last = tok
		if err := saveToken(s.path, tok); err != nil {
			return nil, err
		}
	}

	return tok, nil
}
