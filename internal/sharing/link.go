package sharing

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

var tokenPrefix = config.ShareParam + config.ShareSeparator

// ShareURL appends token to base as a "#config=" fragment. Any fragment
// already on base is replaced.
func ShareURL(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrShareURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return "", fmt.Errorf("%s: %s", config.ErrShareURL, base)
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String() + "#" + tokenPrefix + token, nil
}

// TokenFromURL extracts a share token from a pasted link. The token is looked
// up in the fragment first, then in the query string. Input without a scheme
// is taken as a bare token.
func TokenFromURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "://") {
		return strings.TrimPrefix(raw, tokenPrefix), true
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	for _, part := range strings.Split(u.Fragment, "&") {
		if tok, ok := strings.CutPrefix(part, tokenPrefix); ok && tok != "" {
			return tok, true
		}
	}
	if tok := u.Query().Get(config.ShareParam); tok != "" {
		return tok, true
	}
	return "", false
}
