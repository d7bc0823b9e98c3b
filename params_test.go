package main

import (
	"testing"

	"github.com/diplom33/ui-harness/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequiresURL(t *testing.T) {
	var params commandParams
	assert.False(t, params.Read([]string{"ui-harness"}))
}

func TestReadCollectOnlyDoesNotNeedURL(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{"ui-harness", "-collect-only"}))
	assert.True(t, params.collectOnly)
}

func TestReadFlags(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{
		"ui-harness", "-url", "http://shop.example.com", "-run", "Login", "-skip", "error", "-alluredir", "out",
	}))

	assert.Equal(t, "http://shop.example.com", params.baseURL)
	assert.Equal(t, "out", params.allureDir)
	assert.Equal(t, "screenshots", params.screenshotDir)
	assert.Equal(t, "cookie_log.txt", params.cookieLogPath)
	assert.True(t, params.filters.AsFilter(framework.TestID("Login form is visible")))
	assert.False(t, params.filters.AsFilter(framework.TestID("Login shows an error")))
}

func TestReadRejectsBadRegex(t *testing.T) {
	var params commandParams
	assert.False(t, params.Read([]string{"ui-harness", "-url", "http://x", "-run", "("}))
}

func TestRerunCommand(t *testing.T) {
	params := commandParams{baseURL: "http://shop.example.com"}
	assert.Equal(t,
		`ui-harness -url http://shop.example.com -run '^Login succeeds$'`,
		params.rerunCommand("ui-harness", framework.TestID("Login succeeds")))
}

func TestRerunCommandQuotesParameters(t *testing.T) {
	params := commandParams{baseURL: "http://shop.example.com", debug: true}
	assert.Equal(t,
		`ui-harness -url http://shop.example.com -debug -run '^Checks login Parameters a_"x", b_"2"$'`,
		params.rerunCommand("ui-harness", framework.TestID(`Checks login Parameters a_"x", b_"2"`)))
}

func TestRerunCommandCarriesNonDefaultSettings(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{
		"ui-harness", "-url", "http://shop.example.com", "-alluredir", "out",
		"-screenshots", "shots dir", "-cookie-log", "logs/cookies.txt",
		"-command-timeout", "30s", "-debug-all",
	}))
	assert.Equal(t,
		`ui-harness -url http://shop.example.com -alluredir out -screenshots 'shots dir' -cookie-log logs/cookies.txt -command-timeout 30s -debug-all -run '^Login succeeds$'`,
		params.rerunCommand("ui-harness", framework.TestID("Login succeeds")))
}

func TestRerunCommandOmitsDefaultSettings(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{"ui-harness", "-url", "http://shop.example.com", "-screenshots", "screenshots"}))
	assert.Equal(t,
		`ui-harness -url http://shop.example.com -run '^Login succeeds$'`,
		params.rerunCommand("ui-harness", framework.TestID("Login succeeds")))
}
