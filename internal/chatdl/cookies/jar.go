// Package cookies implements session cookie persistence in the
// classic netscape-compatible format, wrapping the standard library's
// cookiejar so the engine can both consume an operator-supplied
// cookie file and persist a (possibly server-updated) jar back to one
// on request (--save_cookies).
//
// Browser-profile cookie extraction is an external collaborator, out
// of scope here; callers that need it must supply pre-extracted
// cookies through Load's equivalent entry point themselves.
package cookies

import (
	"bufio"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	cerrors "github.com/lbmaian/chatdl/internal/chatdl/errors"
	"github.com/lbmaian/chatdl/internal/platform/atomicfile"
)

const httpOnlyPrefix = "#HttpOnly_"

// Jar wraps cookiejar.Jar and additionally tracks every cookie ever
// set on it, grouped by domain, so the netscape-format file can be
// regenerated on save. The standard cookiejar has no enumeration API,
// hence the tracking layer.
type Jar struct {
	inner *cookiejar.Jar

	mu      sync.Mutex
	byDomain map[string][]*http.Cookie
}

// New builds an empty Jar backed by golang.org/x/net/publicsuffix.
func New() (*Jar, error) {
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("%w: building cookie jar: %v", cerrors.ErrCookie, err)
	}
	return &Jar{inner: inner, byDomain: make(map[string][]*http.Cookie)}, nil
}

// SetCookies implements http.CookieJar, additionally recording the
// cookies for later Save calls.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)
	j.mu.Lock()
	defer j.mu.Unlock()
	domain := u.Hostname()
	j.byDomain[domain] = mergeCookies(j.byDomain[domain], cookies)
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

func mergeCookies(existing, incoming []*http.Cookie) []*http.Cookie {
	byName := make(map[string]*http.Cookie, len(existing)+len(incoming))
	for _, c := range existing {
		byName[c.Name] = c
	}
	for _, c := range incoming {
		byName[c.Name] = c
	}
	merged := make([]*http.Cookie, 0, len(byName))
	for _, c := range byName {
		merged = append(merged, c)
	}
	return merged
}

// Load reads a netscape-format cookie file and installs its entries
// into the jar, matching MozillaCookieJar's ignore_discard=True,
// ignore_expires=True behavior: every cookie is kept regardless of
// its expiry or session-only flag.
func Load(path string) (*Jar, error) {
	jar, err := New()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return jar, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s could not be found", cerrors.ErrCookie, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", cerrors.ErrCookie, path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		httpOnly := false
		if strings.HasPrefix(line, httpOnlyPrefix) {
			httpOnly = true
			line = line[len(httpOnlyPrefix):]
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			continue
		}
		domain := fields[0]
		path := fields[2]
		secure := fields[3] == "TRUE"
		expiresUnix, _ := strconv.ParseInt(fields[4], 10, 64)
		name := fields[5]
		value := fields[6]

		cookie := &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     path,
			Secure:   secure,
			HttpOnly: httpOnly,
		}
		if expiresUnix > 0 {
			cookie.Expires = time.Unix(expiresUnix, 0)
		}

		u := &url.URL{Scheme: schemeFor(secure), Host: strings.TrimPrefix(domain, ".")}
		jar.SetCookies(u, []*http.Cookie{cookie})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", cerrors.ErrCookie, path, err)
	}
	return jar, nil
}

// Save writes every cookie this jar has ever seen to path in
// netscape format, atomically (the output doesn't exist half-written
// if the process is interrupted mid-save).
func (j *Jar) Save(path string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("# Netscape HTTP Cookie File\n")
	domains := make([]string, 0, len(j.byDomain))
	for d := range j.byDomain {
		domains = append(domains, d)
	}
	for _, domain := range domains {
		for _, c := range j.byDomain[domain] {
			line := formatCookieLine(domain, c)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return atomicfile.Write(path, []byte(sb.String()), 0o600)
}

func formatCookieLine(domain string, c *http.Cookie) string {
	name := domain
	if c.HttpOnly {
		name = httpOnlyPrefix + domain
	}
	includeSubdomains := "TRUE"
	if !strings.HasPrefix(domain, ".") {
		includeSubdomains = "FALSE"
	}
	secure := "FALSE"
	if c.Secure {
		secure = "TRUE"
	}
	var expires int64
	if !c.Expires.IsZero() {
		expires = c.Expires.Unix()
	}
	p := c.Path
	if p == "" {
		p = "/"
	}
	return strings.Join([]string{
		name, includeSubdomains, p, secure, strconv.FormatInt(expires, 10), c.Name, c.Value,
	}, "\t")
}

func schemeFor(secure bool) string {
	if secure {
		return "https"
	}
	return "http"
}
