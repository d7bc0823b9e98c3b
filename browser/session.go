package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Session is a running browser that belongs to exactly one test.
type Session interface {
	// MaximizeWindow maximizes the browser window.
	MaximizeWindow() error
	// SetWindowSize sets the outer size of the browser window in pixels.
	SetWindowSize(width, height int) error

	Navigate(url string) error
	CurrentURL() (string, error)
	Title() (string, error)
	WaitVisible(cssSelector string) error
	SendKeys(cssSelector, text string) error
	Click(cssSelector string) error
	Text(cssSelector string) (string, error)

	// ExecuteScript evaluates a JavaScript expression in the current page and discards its
	// result.
	ExecuteScript(script string) error

	// Cookies returns the cookies visible to the current page.
	Cookies() ([]Cookie, error)
	// DeleteAllCookies clears every cookie in the browser.
	DeleteAllCookies() error

	// ScreenshotPNG captures the visible part of the current page as a PNG image.
	ScreenshotPNG() ([]byte, error)

	// ConsoleLog returns everything the page has written to the browser console so far.
	ConsoleLog() []LogEntry

	// Quit terminates the browser. The session cannot be used afterward.
	Quit() error
}

// Launcher starts browser sessions.
type Launcher interface {
	Launch(ctx context.Context, opts Options) (Session, error)
}

// Options controls how a browser is launched.
type Options struct {
	// Flags are extra command-line switches for the browser process, without the leading
	// dashes. A value of true produces a bare switch.
	Flags map[string]interface{}

	// ExecPath overrides the browser binary. Empty means search the usual locations.
	ExecPath string

	// CommandTimeout bounds each browser command. Zero means no timeout.
	CommandTimeout time.Duration

	// Logger receives the driver's own log output. Nil means it is discarded.
	Logger Logger
}

// Logger is satisfied by framework.Logger and by *log.Logger.
type Logger interface {
	Printf(message string, args ...interface{})
}

// Cookie is a read-only snapshot of one browser cookie.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  time.Time
	HTTPOnly bool
	Secure   bool
	SameSite string
}

type cookieFields struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain"`
	Path     string `json:"path"`
	Expiry   int64  `json:"expiry,omitempty"`
	HTTPOnly bool   `json:"httpOnly"`
	Secure   bool   `json:"secure"`
	SameSite string `json:"sameSite,omitempty"`
}

// String renders every field of the cookie as a JSON object, exactly as the browser reported
// it. Nothing is validated or dropped.
func (c Cookie) String() string {
	fields := cookieFields{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		HTTPOnly: c.HTTPOnly,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
	if !c.Expires.IsZero() {
		fields.Expiry = c.Expires.Unix()
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fields); err != nil {
		return fmt.Sprintf("%+v", fields)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// LogEntry is one message from the browser console.
type LogEntry struct {
	Time    time.Time
	Level   string
	Source  string
	Message string
}

func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s (%s): %s", e.Time.Format(time.RFC3339), e.Level, e.Source, e.Message)
}
