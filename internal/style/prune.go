// Package style post-processes dtstyle documents emitted by darktable-chart.
package style

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// DefaultAllowed names the operations the fit actually produces.
// darktable-chart also inserts "Input color profile" and "Base curve"
// plugins, which the generated style must not carry.
var DefaultAllowed = map[string]bool{
	"colorchecker": true,
	"tonecurve":    true,
}

// MalformedStyleError reports a style document that does not match the
// expected plugin schema.
type MalformedStyleError struct {
	Path   string
	Reason string
}

func (e *MalformedStyleError) Error() string {
	return fmt.Sprintf("malformed style %s: %s", e.Path, e.Reason)
}

// Prune rewrites the style document in place, dropping every plugin whose
// operation is not in the allowed set (DefaultAllowed when nil) and
// renumbering the survivors 0..k-1 in their original order. Pruning an
// already-pruned document is a no-op. The document is handled as a DOM so
// that plugin payloads (op_params, blend parameters) pass through untouched.
func Prune(path string, allowed map[string]bool) error {
	if allowed == nil {
		allowed = DefaultAllowed
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return fmt.Errorf("failed to read style %s: %w", path, err)
	}
	root := doc.Root()
	if root == nil {
		return &MalformedStyleError{Path: path, Reason: "document has no root element"}
	}

	for _, st := range root.SelectElements("style") {
		num := 0
		for _, plugin := range st.SelectElements("plugin") {
			op := plugin.SelectElement("operation")
			if op == nil {
				return &MalformedStyleError{Path: path, Reason: "plugin without operation"}
			}
			if !allowed[op.Text()] {
				st.RemoveChild(plugin)
				continue
			}
			numEl := plugin.SelectElement("num")
			if numEl == nil {
				return &MalformedStyleError{Path: path, Reason: fmt.Sprintf("plugin %q without num", op.Text())}
			}
			numEl.SetText(strconv.Itoa(num))
			num++
		}
	}

	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write style %s: %w", path, err)
	}
	return nil
}
