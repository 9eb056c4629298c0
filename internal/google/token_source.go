package google

import (
	"log/slog"
	"sync"

	"golang.org/x/oauth2"
)

// persistingTokenSource wraps an oauth2.TokenSource and writes refreshed
// tokens back to the token file, so each refresh survives the process.
type persistingTokenSource struct {
	src  oauth2.TokenSource
	path string

	mu   sync.Mutex
	last *oauth2.Token
}

// Compile-time check to ensure persistingTokenSource implements oauth2.TokenSource
var _ oauth2.TokenSource = (*persistingTokenSource)(nil)

func newPersistingTokenSource(src oauth2.TokenSource, path string, initial *oauth2.Token) *persistingTokenSource {
	return &persistingTokenSource{
		src:  src,
		path: path,
		last: initial,
	}
}

// Token returns a valid token, persisting it if the refresh produced a
// new one. A failed write-back is logged but does not fail the call; the
// in-memory token is still valid for this invocation.
func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last == nil || tok.AccessToken != p.last.AccessToken || tok.RefreshToken != p.last.RefreshToken {
		if err := saveToken(p.path, tok); err != nil {
			slog.Warn("failed to persist refreshed token", "error", err)
		} else {
			p.last = tok
		}
	}

	return tok, nil
}
