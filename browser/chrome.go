package browser

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	cdplog "github.com/chromedp/cdproto/log"
	"github.com/chromedp/cdproto/network"
	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// ChromeLauncher starts a new Chrome process for every session. Sessions do not share
// cookies or any other state.
type ChromeLauncher struct{}

// Chrome is a Session backed by a Chrome subprocess driven through chromedp.
type Chrome struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	timeout     time.Duration
	console     []LogEntry
	lock        sync.Mutex
	quitOnce    sync.Once
	quitErr     error
}

// Launch starts Chrome and waits until it is ready to take commands. The browser keeps
// running until Quit is called or ctx is cancelled.
func (ChromeLauncher) Launch(ctx context.Context, opts Options) (Session, error) {
	allocOpts := append(
		// Start with the defaults.
		chromedp.DefaultExecAllocatorOptions[:],

		// Uncomment this to watch the browser while the test runs.
		// chromedp.Flag("headless", false), chromedp.Flag("hide-scrollbars", false),
	)
	names := make([]string, 0, len(opts.Flags))
	for name := range opts.Flags {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		allocOpts = append(allocOpts, chromedp.Flag(name, opts.Flags[name]))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	logf := func(string, ...interface{}) {}
	if opts.Logger != nil {
		logf = opts.Logger.Printf
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		// Uncomment to show Chrome debug logging.
		// chromedp.WithDebugf(logf),
		chromedp.WithLogf(logf),
		chromedp.WithErrorf(logf),
	)

	c := &Chrome{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		timeout:     opts.CommandTimeout,
	}
	chromedp.ListenTarget(tabCtx, c.onEvent)

	// The first Run starts the browser. Do not use a timeout here or else the browser will
	// close after that timeout.
	if err := chromedp.Run(tabCtx, cdplog.Enable()); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("could not start Chrome: %w", err)
	}
	return c, nil
}

func (c *Chrome) onEvent(ev interface{}) {
	var entry LogEntry
	switch ev := ev.(type) {
	case *cdpruntime.EventConsoleAPICalled:
		args := make([]string, 0, len(ev.Args))
		for _, arg := range ev.Args {
			if len(arg.Value) > 0 {
				args = append(args, fmt.Sprintf("%s", arg.Value))
			} else {
				args = append(args, arg.Description)
			}
		}
		entry = LogEntry{Level: ev.Type.String(), Source: "console-api", Message: strings.Join(args, " ")}
	case *cdpruntime.EventExceptionThrown:
		entry = LogEntry{Level: "SEVERE", Source: "javascript", Message: ev.ExceptionDetails.Error()}
	case *cdplog.EventEntryAdded:
		entry = LogEntry{Level: ev.Entry.Level.String(), Source: ev.Entry.Source.String(), Message: ev.Entry.Text}
		if ev.Entry.URL != "" {
			entry.Message = ev.Entry.URL + " " + entry.Message
		}
	default:
		return
	}
	entry.Time = time.Now()
	c.lock.Lock()
	c.console = append(c.console, entry)
	c.lock.Unlock()
}

func (c *Chrome) run(actions ...chromedp.Action) error {
	ctx := c.ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return chromedp.Run(ctx, actions...)
}

func (c *Chrome) setWindowBounds(bounds *cdpbrowser.Bounds) error {
	return c.run(chromedp.ActionFunc(func(ctx context.Context) error {
		windowID, _, err := cdpbrowser.GetWindowForTarget().Do(ctx)
		if err != nil {
			return err
		}
		// A maximized window ignores size changes, so restore it first.
		if bounds.WindowState != cdpbrowser.WindowStateMaximized {
			normal := &cdpbrowser.Bounds{WindowState: cdpbrowser.WindowStateNormal}
			if err := cdpbrowser.SetWindowBounds(windowID, normal).Do(ctx); err != nil {
				return err
			}
		}
		return cdpbrowser.SetWindowBounds(windowID, bounds).Do(ctx)
	}))
}

func (c *Chrome) MaximizeWindow() error {
	return c.setWindowBounds(&cdpbrowser.Bounds{WindowState: cdpbrowser.WindowStateMaximized})
}

func (c *Chrome) SetWindowSize(width, height int) error {
	return c.setWindowBounds(&cdpbrowser.Bounds{Width: int64(width), Height: int64(height)})
}

func (c *Chrome) Navigate(url string) error {
	return c.run(chromedp.Navigate(url))
}

func (c *Chrome) CurrentURL() (string, error) {
	var url string
	err := c.run(chromedp.Location(&url))
	return url, err
}

func (c *Chrome) Title() (string, error) {
	var title string
	err := c.run(chromedp.Title(&title))
	return title, err
}

func (c *Chrome) WaitVisible(cssSelector string) error {
	return c.run(chromedp.WaitVisible(cssSelector, chromedp.ByQuery))
}

func (c *Chrome) SendKeys(cssSelector, text string) error {
	return c.run(chromedp.SendKeys(cssSelector, text, chromedp.NodeVisible, chromedp.NodeEnabled, chromedp.ByQuery))
}

func (c *Chrome) Click(cssSelector string) error {
	return c.run(chromedp.Click(cssSelector, chromedp.NodeVisible, chromedp.NodeEnabled, chromedp.ByQuery))
}

func (c *Chrome) Text(cssSelector string) (string, error) {
	var text string
	err := c.run(chromedp.Text(cssSelector, &text, chromedp.NodeVisible, chromedp.ByQuery))
	return text, err
}

func (c *Chrome) ExecuteScript(script string) error {
	return c.run(chromedp.Evaluate(script, nil))
}

func (c *Chrome) Cookies() ([]Cookie, error) {
	var cookies []*network.Cookie
	err := c.run(chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = network.GetCookies().Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}
	ret := make([]Cookie, 0, len(cookies))
	for _, nc := range cookies {
		ret = append(ret, convertCookie(nc))
	}
	return ret, nil
}

func (c *Chrome) DeleteAllCookies() error {
	return c.run(network.ClearBrowserCookies())
}

func (c *Chrome) ScreenshotPNG() ([]byte, error) {
	var buf []byte
	err := c.run(chromedp.CaptureScreenshot(&buf))
	return buf, err
}

func (c *Chrome) ConsoleLog() []LogEntry {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]LogEntry(nil), c.console...)
}

// Quit closes the browser gracefully and then makes sure the process is gone. Calling it
// more than once returns the result of the first call.
func (c *Chrome) Quit() error {
	c.quitOnce.Do(func() {
		c.quitErr = chromedp.Cancel(c.ctx)
		c.cancelTab()
		c.cancelAlloc()
	})
	return c.quitErr
}

func convertCookie(nc *network.Cookie) Cookie {
	ret := Cookie{
		Name:     nc.Name,
		Value:    nc.Value,
		Domain:   nc.Domain,
		Path:     nc.Path,
		HTTPOnly: nc.HTTPOnly,
		Secure:   nc.Secure,
		SameSite: nc.SameSite.String(),
	}
	// Session cookies have no expiry.
	if !nc.Session && nc.Expires > 0 {
		sec := int64(nc.Expires)
		ret.Expires = time.Unix(sec, 0).UTC()
	}
	return ret
}
