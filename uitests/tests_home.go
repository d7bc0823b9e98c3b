package uitests

import (
	"github.com/diplom33/ui-harness/fixtures"
	"github.com/diplom33/ui-harness/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func homePageTests(s SuiteConfig) []framework.Test {
	return []framework.Test{
		{
			Name:     "TestHomePageOpens",
			Doc:      "Home page opens. The page has a non-empty title and a heading.",
			Fixtures: []framework.Fixture{fixtures.ChromeBrowserInstance(s.Fixtures)},
			Body: func(c *framework.Context) {
				b := fixtures.Browser(c)
				require.NoError(c, b.Navigate(s.url("/")))
				require.NoError(c, b.WaitVisible(pageHeadingSelector))

				title, err := b.Title()
				require.NoError(c, err)
				assert.NotEmpty(c, title, "page title")
			},
		},
		{
			Name:     "TestHomePageSetsNoCookiesBeforeLogin",
			Fixtures: []framework.Fixture{fixtures.ChromeBrowserInstance(s.Fixtures)},
			Body: func(c *framework.Context) {
				b := fixtures.Browser(c)
				require.NoError(c, b.Navigate(s.url("/")))

				cookies, err := b.Cookies()
				require.NoError(c, err)
				for _, cookie := range cookies {
					c.Debug("cookie before login: %s", cookie)
				}
			},
		},
	}
}
