package audio

import (
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrCredentialLoad is returned when the cookie file cannot be used.
var ErrCredentialLoad = errors.New("credential load failed")

const httpOnlyPrefix = "#HttpOnly_"

// Session is the platform cookie file validated once at startup. yt-dlp reads
// the file itself; the session only vouches that it holds usable cookies. It is
// read-only after LoadSession returns and safe to share between requests.
type Session struct {
	path    string
	cookies int
}

// LoadSession reads a Netscape-format cookies.txt file, the format yt-dlp and
// browser export extensions produce. Expired cookies are dropped; a file with no
// usable cookie is an error.
func LoadSession(path string, now time.Time) (*Session, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredentialLoad, err)
	}
	defer file.Close()

	cookies := 0
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		cookie, ok, err := parseCookieLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %w", ErrCredentialLoad, path, lineNumber, err)
		}
		if !ok {
			continue
		}
		if !cookie.Expires.IsZero() && cookie.Expires.Before(now) {
			continue
		}
		cookies++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredentialLoad, err)
	}
	if cookies == 0 {
		return nil, fmt.Errorf("%w: %s has no unexpired cookies", ErrCredentialLoad, path)
	}

	return &Session{path: path, cookies: cookies}, nil
}

// parseCookieLine parses one tab-separated cookie line. Blank lines and comments
// report ok == false.
func parseCookieLine(line string) (*http.Cookie, bool, error) {
	line = strings.TrimRight(line, "\r\n")
	httpOnly := false
	if strings.HasPrefix(line, httpOnlyPrefix) {
		httpOnly = true
		line = strings.TrimPrefix(line, httpOnlyPrefix)
	}
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
		return nil, false, nil
	}

	fields := strings.Split(line, "\t")
	if len(fields) != 7 {
		return nil, false, fmt.Errorf("want 7 tab-separated fields, got %d", len(fields))
	}

	expiresUnix, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, false, fmt.Errorf("bad expiry %q", fields[4])
	}

	cookie := &http.Cookie{
		Domain:   fields[0],
		Path:     fields[2],
		Secure:   strings.EqualFold(fields[3], "TRUE"),
		Name:     fields[5],
		Value:    fields[6],
		HttpOnly: httpOnly,
	}
	// Zero expiry marks a session cookie.
	if expiresUnix > 0 {
		cookie.Expires = time.Unix(expiresUnix, 0)
	}
	return cookie, true, nil
}

// Path is the cookie file the session was loaded from.
func (s *Session) Path() string {
	return s.path
}

// Len is the number of unexpired cookies in the session.
func (s *Session) Len() int {
	return s.cookies
}
