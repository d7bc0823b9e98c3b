// Package uitests contains the UI tests themselves, written against the fixtures package.
//
// Browser provisioning, failure diagnostics and naming of tests are not specific to the site
// under test; they are in the lower-level fixtures, naming and framework packages.
package uitests
