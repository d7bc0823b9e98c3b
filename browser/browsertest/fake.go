// Package browsertest provides a fake browser.Session for testing code that drives a browser
// without starting a real one.
package browsertest

import (
	"context"
	"errors"
	"sync"

	"github.com/diplom33/ui-harness/browser"
)

// ErrQuit is returned by every method of a Session after Quit.
var ErrQuit = errors.New("session has quit")

// Session is an in-memory browser.Session. Every method call is recorded in Calls.
//
// Fields ending in Err make the corresponding method fail.
type Session struct {
	URL          string
	PageTitle    string
	ElementText  map[string]string
	CookieJar    []browser.Cookie
	Screenshot   []byte
	Console      []browser.LogEntry
	Scripts      []string
	WindowWidth  int
	WindowHeight int
	Maximized    bool
	Quitted      bool

	CookiesErr    error
	DeleteErr     error
	ScriptErr     error
	ScreenshotErr error
	URLErr        error
	QuitErr       error

	Calls []string
	lock  sync.Mutex
}

func (s *Session) record(call string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Calls = append(s.Calls, call)
	if s.Quitted && call != "Quit" {
		return ErrQuit
	}
	return nil
}

func (s *Session) MaximizeWindow() error {
	if err := s.record("MaximizeWindow"); err != nil {
		return err
	}
	s.Maximized = true
	return nil
}

func (s *Session) SetWindowSize(width, height int) error {
	if err := s.record("SetWindowSize"); err != nil {
		return err
	}
	s.WindowWidth, s.WindowHeight, s.Maximized = width, height, false
	return nil
}

func (s *Session) Navigate(url string) error {
	if err := s.record("Navigate"); err != nil {
		return err
	}
	s.URL = url
	return nil
}

func (s *Session) CurrentURL() (string, error) {
	if err := s.record("CurrentURL"); err != nil {
		return "", err
	}
	return s.URL, s.URLErr
}

func (s *Session) Title() (string, error) {
	if err := s.record("Title"); err != nil {
		return "", err
	}
	return s.PageTitle, nil
}

func (s *Session) WaitVisible(string) error      { return s.record("WaitVisible") }
func (s *Session) SendKeys(string, string) error { return s.record("SendKeys") }
func (s *Session) Click(string) error            { return s.record("Click") }

func (s *Session) Text(cssSelector string) (string, error) {
	if err := s.record("Text"); err != nil {
		return "", err
	}
	return s.ElementText[cssSelector], nil
}

func (s *Session) ExecuteScript(script string) error {
	if err := s.record("ExecuteScript"); err != nil {
		return err
	}
	if s.ScriptErr != nil {
		return s.ScriptErr
	}
	s.Scripts = append(s.Scripts, script)
	return nil
}

func (s *Session) Cookies() ([]browser.Cookie, error) {
	if err := s.record("Cookies"); err != nil {
		return nil, err
	}
	if s.CookiesErr != nil {
		return nil, s.CookiesErr
	}
	return append([]browser.Cookie(nil), s.CookieJar...), nil
}

func (s *Session) DeleteAllCookies() error {
	if err := s.record("DeleteAllCookies"); err != nil {
		return err
	}
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.CookieJar = nil
	return nil
}

func (s *Session) ScreenshotPNG() ([]byte, error) {
	if err := s.record("ScreenshotPNG"); err != nil {
		return nil, err
	}
	if s.ScreenshotErr != nil {
		return nil, s.ScreenshotErr
	}
	return s.Screenshot, nil
}

func (s *Session) ConsoleLog() []browser.LogEntry {
	_ = s.record("ConsoleLog")
	return s.Console
}

func (s *Session) Quit() error {
	_ = s.record("Quit")
	s.Quitted = true
	return s.QuitErr
}

// Launcher hands out fake sessions. If Sessions is non-empty they are returned in order;
// otherwise each launch creates an empty Session.
type Launcher struct {
	Sessions  []*Session
	LaunchErr error

	Launched []*Session
	Options  []browser.Options
}

func (l *Launcher) Launch(ctx context.Context, opts browser.Options) (browser.Session, error) {
	l.Options = append(l.Options, opts)
	if l.LaunchErr != nil {
		return nil, l.LaunchErr
	}
	var s *Session
	if len(l.Sessions) > 0 {
		s, l.Sessions = l.Sessions[0], l.Sessions[1:]
	} else {
		s = &Session{}
	}
	l.Launched = append(l.Launched, s)
	return s, nil
}
