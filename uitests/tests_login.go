package uitests

import (
	"github.com/diplom33/ui-harness/fixtures"
	"github.com/diplom33/ui-harness/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func loginTests(s SuiteConfig) []framework.Test {
	return []framework.Test{
		{
			Name: "TestLoginFormIsVisible",
			Doc: `Login form is visible.

			The login page shows the e-mail and password fields and the submit button.`,
			Fixtures: []framework.Fixture{fixtures.WebBrowser(s.Fixtures)},
			Body: func(c *framework.Context) {
				b := fixtures.Browser(c)
				require.NoError(c, b.Navigate(s.loginURL()))
				for _, selector := range []string{loginFormSelector, emailSelector, passwordSelector, submitSelector} {
					assert.NoError(c, b.WaitVisible(selector), "waiting for %s", selector)
				}
			},
		},
		{
			Name: "TestLoginRejectsInvalidCredentials",
			Doc:  "Login is rejected for invalid credentials. The page stays on the login form.",
			Params: []framework.Params{
				{"email": ldvalue.String(""), "password": ldvalue.String("")},
				{"email": ldvalue.String("nobody@example.com"), "password": ldvalue.String("wrong")},
				{"email": ldvalue.String("not-an-email"), "password": ldvalue.String("12345")},
			},
			Fixtures: []framework.Fixture{fixtures.WebBrowser(s.Fixtures)},
			Body: func(c *framework.Context) {
				b := fixtures.Browser(c)
				params := c.Item().Params
				require.NoError(c, b.Navigate(s.loginURL()))
				require.NoError(c, b.WaitVisible(emailSelector))

				require.NoError(c, b.SendKeys(emailSelector, params["email"].StringValue()))
				require.NoError(c, b.SendKeys(passwordSelector, params["password"].StringValue()))
				require.NoError(c, b.Click(submitSelector))

				url, err := b.CurrentURL()
				require.NoError(c, err)
				assert.Equal(c, s.loginURL(), url, "should not leave the login page")
			},
		},
		{
			Name:     "TestLoginErrorMessage",
			Doc:      "Login with a wrong password shows an error message.",
			Fixtures: []framework.Fixture{fixtures.WebBrowser(s.Fixtures)},
			Body: func(c *framework.Context) {
				b := fixtures.Browser(c)
				require.NoError(c, b.Navigate(s.loginURL()))
				require.NoError(c, b.SendKeys(emailSelector, "nobody@example.com"))
				require.NoError(c, b.SendKeys(passwordSelector, "wrong"))
				require.NoError(c, b.Click(submitSelector))
				require.NoError(c, b.WaitVisible(loginErrorSelector))

				text, err := b.Text(loginErrorSelector)
				require.NoError(c, err)
				assert.NotEmpty(c, text, "error message")
			},
		},
	}
}
