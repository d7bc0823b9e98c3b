package uitests

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/diplom33/ui-harness/browser/browsertest"
	"github.com/diplom33/ui-harness/fixtures"
	"github.com/diplom33/ui-harness/framework"
	"github.com/diplom33/ui-harness/naming"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeSuiteConfig(t *testing.T, launcher *browsertest.Launcher) SuiteConfig {
	dir := t.TempDir()
	return SuiteConfig{
		BaseURL: "http://shop.example.com/",
		Fixtures: fixtures.Config{
			Launcher:      launcher,
			CookieLogPath: filepath.Join(dir, "cookie_log.txt"),
			ScreenshotDir: filepath.Join(dir, "screenshots"),
			Output:        &bytes.Buffer{},
		},
	}
}

func TestSuiteDisplayNames(t *testing.T) {
	var out bytes.Buffer
	launcher := &browsertest.Launcher{}
	r := framework.NewRunner(framework.Config{CollectOnly: true})
	r.Register(naming.Rewriter{Output: &out})

	_, err := r.Run(AllTests(fakeSuiteConfig(t, launcher)))

	var exit *framework.Exit
	require.True(t, errors.As(err, &exit))
	assert.Empty(t, launcher.Launched)
	assert.Equal(t, `Home page opens
Login form is visible
Login is rejected for invalid credentials Parameters email_"", password_""
Login is rejected for invalid credentials Parameters email_"nobody@example.com", password_"wrong"
Login is rejected for invalid credentials Parameters email_"not-an-email", password_"12345"
Login with a wrong password shows an error message
`, out.String())
}

func TestSuiteRunsAgainstFakeBrowser(t *testing.T) {
	var sessions []*browsertest.Session
	for i := 0; i < 7; i++ {
		sessions = append(sessions, &browsertest.Session{
			PageTitle:   "Shop",
			ElementText: map[string]string{loginErrorSelector: "Wrong e-mail or password"},
		})
	}
	launcher := &browsertest.Launcher{Sessions: sessions}
	r := framework.NewRunner(framework.Config{})
	r.Register(fixtures.PhaseRecorder{}, naming.Rewriter{})

	results, err := r.Run(AllTests(fakeSuiteConfig(t, launcher)))
	require.NoError(t, err)

	assert.True(t, results.OK(), "failures: %+v", results.Failures)
	assert.Len(t, results.Tests, 7)
	require.Len(t, launcher.Launched, 7)
	for _, s := range launcher.Launched {
		assert.True(t, s.Quitted)
	}
	assert.Equal(t, "http://shop.example.com/", launcher.Launched[0].URL)
	assert.Equal(t, "http://shop.example.com/login", launcher.Launched[2].URL)
}
