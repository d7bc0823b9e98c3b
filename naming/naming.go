// Package naming replaces the default identifiers of collected tests with readable names
// built from their docstrings, for console output, reports and importing test cases into a
// test management system.
package naming

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/diplom33/ui-harness/framework"
)

// DoneMessage is the exit reason reported after listing tests in collect-only mode.
const DoneMessage = "Done!"

// DisplayName builds the readable name of an item: the first sentence of its docstring with
// whitespace normalized. For a parametrized item the parameters are appended, sorted by name,
// and any colons are removed. It returns "" if the item has no docstring.
func DisplayName(item *framework.Item) string {
	if item.Doc == "" {
		return ""
	}
	firstSentence := strings.SplitN(item.Doc, ".", 2)[0]
	name := strings.Join(strings.Fields(firstSentence), " ")

	if item.Parametrized() {
		var params []string
		for _, k := range item.Params.SortedKeys() {
			params = append(params, fmt.Sprintf(`%s_"%s"`, k, framework.ValueString(item.Params[k])))
		}
		name += " Parameters " + strings.Join(params, ", ")
		name = strings.ReplaceAll(name, ":", "")
	}
	return name
}

// Rewriter is a plugin that replaces the NodeID of every item that has a docstring with its
// DisplayName. In collect-only mode it also prints the display names and ends the run.
type Rewriter struct {
	// Output receives the list printed in collect-only mode. Nil means os.Stdout.
	Output io.Writer
}

func (w Rewriter) ItemCollected(item *framework.Item) {
	if item.Doc != "" {
		item.NodeID = DisplayName(item)
	}
}

func (w Rewriter) CollectionFinish(r *framework.Runner) error {
	if !r.Config().CollectOnly {
		return nil
	}
	out := w.Output
	if out == nil {
		out = os.Stdout
	}
	for _, item := range r.Items() {
		if item.Doc != "" {
			fmt.Fprintln(out, DisplayName(item))
		}
	}
	return &framework.Exit{Reason: DoneMessage}
}
