// Package indenter renders nested structures with one item per line.
package indenter

import "strings"

const unit = "  "

// Nest renders head, then every item on its own line one level deeper,
// then tail. Multi-line items are indented as a block.
func Nest(head, tail string, items ...string) string {
	if len(items) == 0 {
		return head + tail
	}

	var sb strings.Builder
	sb.WriteString(head)
	for _, item := range items {
		sb.WriteString("\n" + unit)
		sb.WriteString(strings.ReplaceAll(item, "\n", "\n"+unit))
	}
	sb.WriteString("\n" + tail)
	return sb.String()
}

// NestSep is like Nest, but terminates every item except the last with sep.
func NestSep(head, tail, sep string, items ...string) string {
	sepd := make([]string, len(items))
	for i, item := range items {
		sepd[i] = item
		if i < len(items)-1 {
			sepd[i] += sep
		}
	}
	return Nest(head, tail, sepd...)
}
