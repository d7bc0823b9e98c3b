package framework

import (
	"sort"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Params is the concrete parameter mapping of one parametrized invocation.
type Params map[string]ldvalue.Value

// SortedKeys returns the parameter names in lexicographic order.
func (p Params) SortedKeys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fixture prepares something an Item needs before its body runs. It executes during the
// setup phase; anything it registers with Context.Defer runs during the teardown phase,
// after the outcome of the call phase is known.
//
// A fixture signals failure the same way a test does, with Errorf, FailNow or the
// require package.
type Fixture func(c *Context)

// Test declares one test function.
type Test struct {
	// Name is the bare function name. It is used as the default node ID and as the name of
	// failure attachments.
	Name string

	// Doc is the human-readable description of the test. Only the first sentence is used
	// for display names.
	Doc string

	// Params, if non-empty, makes the test parametrized: it is collected once per entry.
	Params []Params

	// Fixtures run in order during the setup phase.
	Fixtures []Fixture

	// Body is the test itself.
	Body func(c *Context)
}

// Item is a single collected invocation of a Test.
type Item struct {
	Name     string
	Doc      string
	Params   Params
	Fixtures []Fixture
	Body     func(c *Context)

	// NodeID identifies the item in filters, console output and reports. Plugins may replace
	// it during collection.
	NodeID string

	// Reports is filled in by plugins as phases complete.
	Reports PhaseReports

	Attachments []Attachment
}

// Parametrized returns true if the item is one invocation of a parametrized test.
func (i *Item) Parametrized() bool {
	return i.Params != nil
}

// Attachment is a named artifact produced while running an Item, such as a screenshot.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

func collectItems(tests []Test) []*Item {
	var items []*Item
	for _, t := range tests {
		if len(t.Params) == 0 {
			items = append(items, newItem(t, nil))
			continue
		}
		for _, p := range t.Params {
			if p == nil {
				p = Params{}
			}
			items = append(items, newItem(t, p))
		}
	}
	return items
}

func newItem(t Test, params Params) *Item {
	item := &Item{
		Name:     t.Name,
		Doc:      t.Doc,
		Params:   params,
		Fixtures: t.Fixtures,
		Body:     t.Body,
	}
	item.NodeID = defaultNodeID(t.Name, params)
	return item
}

func defaultNodeID(name string, params Params) string {
	if params == nil {
		return name
	}
	var values []string
	for _, k := range params.SortedKeys() {
		values = append(values, ValueString(params[k]))
	}
	return name + "[" + strings.Join(values, "-") + "]"
}

// ValueString renders a parameter value the way it appears in node IDs and display
// names: strings as-is, anything else as JSON. Numbers follow JSON too, so 1.0 renders
// as "1".
func ValueString(v ldvalue.Value) string {
	if v.Type() == ldvalue.StringType {
		return v.StringValue()
	}
	return v.JSONString()
}
