package uitests

import (
	"strings"

	"github.com/diplom33/ui-harness/fixtures"
	"github.com/diplom33/ui-harness/framework"
)

// Selectors of the elements the tests interact with on the site under test.
const (
	loginFormSelector   = "form"
	emailSelector       = "input[type=email]"
	passwordSelector    = "input[type=password]"
	submitSelector      = "button[type=submit]"
	loginErrorSelector  = ".alert"
	pageHeadingSelector = "h1"
)

// SuiteConfig contains the parameters for the test suite.
type SuiteConfig struct {
	// BaseURL is the root of the site under test.
	BaseURL string

	// LoginPath is appended to BaseURL to get the login page.
	LoginPath string

	Fixtures fixtures.Config
}

func (s SuiteConfig) url(path string) string {
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

func (s SuiteConfig) loginURL() string {
	if s.LoginPath == "" {
		return s.url("login")
	}
	return s.url(s.LoginPath)
}

// AllTests returns every test in the suite, in the order they run.
func AllTests(s SuiteConfig) []framework.Test {
	var tests []framework.Test
	tests = append(tests, homePageTests(s)...)
	tests = append(tests, loginTests(s)...)
	return tests
}
