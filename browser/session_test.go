package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCookieString(t *testing.T) {
	c := Cookie{Name: "session", Value: "abc", Domain: "example.com", Path: "/"}
	assert.Equal(t,
		`{"name":"session","value":"abc","domain":"example.com","path":"/","httpOnly":false,"secure":false}`,
		c.String())
}

func TestCookieStringWithFlags(t *testing.T) {
	c := Cookie{
		Name:     "token",
		Value:    "x",
		Path:     "/",
		Expires:  time.Unix(1767225600, 0),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	}
	assert.Equal(t,
		`{"name":"token","value":"x","domain":"","path":"/","expiry":1767225600,"httpOnly":true,"secure":true,"sameSite":"Lax"}`,
		c.String())
}

func TestCookieStringKeepsWhatBrowserReported(t *testing.T) {
	nameless := Cookie{Value: "nameless"}
	assert.Equal(t, `{"name":"","value":"nameless","domain":"","path":"","httpOnly":false,"secure":false}`, nameless.String())

	quoted := Cookie{Name: "a", Value: `say "hi";x<y>&z`}
	assert.Equal(t, `{"name":"a","value":"say \"hi\";x<y>&z","domain":"","path":"","httpOnly":false,"secure":false}`, quoted.String())

	dotted := Cookie{Name: "c", Value: "1", Domain: ".example.com"}
	assert.Contains(t, dotted.String(), `"domain":".example.com"`)

	invalid := Cookie{Name: "c", Value: "1", Domain: "bad domain!"}
	assert.Contains(t, invalid.String(), `"domain":"bad domain!"`)
}

func TestLogEntryString(t *testing.T) {
	e := LogEntry{
		Time:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:   "error",
		Source:  "console-api",
		Message: "boom",
	}
	assert.Equal(t, "[2026-01-02T03:04:05Z] error (console-api): boom", e.String())
}
