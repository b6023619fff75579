package jira

import (
    "fmt"
    "strings"
    "time"
)

func toStr(v any) string {
    if v == nil { return "" }
    if s, ok := v.(string); ok { return s }
    return fmt.Sprintf("%v", v)
}

// parseTimeUTC accepts the timestamp spellings Jira emits across
// deployments (RFC3339 variants and the legacy +0000 offset form).
func parseTimeUTC(v any) *time.Time {
    s, _ := v.(string)
    if s == "" { return nil }
    layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000-0700", "2006-01-02T15:04:05-0700"}
    for _, l := range layouts {
        if t, err := time.Parse(l, s); err == nil {
            tt := t.UTC()
            return &tt
        }
    }
    return nil
}

// bestLabel picks the display value of a Jira option object.
func bestLabel(m map[string]any) string {
    for _, k := range []string{"value", "name", "label", "title", "key", "id"} {
        if v, ok := m[k]; ok && v != nil {
            if s := toStr(v); s != "" { return s }
        }
    }
    return ""
}

// flattenHierarchy walks cascading-option objects depth-first: the node's
// label, then its child chain or children list.
func flattenHierarchy(m map[string]any) []string {
    out := []string{}
    if l := bestLabel(m); l != "" { out = append(out, l) }
    if child, ok := m["child"].(map[string]any); ok {
        out = append(out, flattenHierarchy(child)...)
    } else if children, ok := m["children"].([]any); ok {
        for _, c0 := range children {
            if cm, _ := c0.(map[string]any); cm != nil { out = append(out, flattenHierarchy(cm)...) }
        }
    }
    return out
}

// stringifySoW renders any SoW field shape to text: plain strings pass
// through, lists join with " | ", cascading options join with ":".
func stringifySoW(v any) string {
    switch t := v.(type) {
    case nil:
        return ""
    case string:
        return t
    case []any:
        parts := make([]string, 0, len(t))
        for _, it := range t {
            if s := stringifySoW(it); s != "" { parts = append(parts, s) }
        }
        return strings.Join(parts, " | ")
    case map[string]any:
        return strings.Join(flattenHierarchy(t), ":")
    default:
        return toStr(v)
    }
}

// numericOnly keeps the digits of a stringified SoW reference.
func numericOnly(s string) string {
    var b strings.Builder
    for _, r := range s {
        if r >= '0' && r <= '9' { b.WriteRune(r) }
    }
    return b.String()
}

// adfToText flattens a worklog comment to plain text. Cloud sends comments
// as an Atlassian Document Format tree; Server/DC sends plain strings.
func adfToText(v any) string {
    switch t := v.(type) {
    case nil:
        return ""
    case string:
        return t
    case map[string]any:
        var b strings.Builder
        renderBlocks(t, &b)
        return strings.TrimRight(b.String(), "\n")
    default:
        return toStr(v)
    }
}

func renderBlocks(node map[string]any, b *strings.Builder) {
    content, _ := node["content"].([]any)
    switch toStr(node["type"]) {
    case "bulletList", "orderedList":
        for _, it := range content {
            if im, _ := it.(map[string]any); im != nil {
                b.WriteString("- ")
                b.WriteString(strings.TrimSpace(inlineText(im)))
                b.WriteString("\n")
            }
        }
    case "paragraph", "heading":
        b.WriteString(inlineText(node))
        b.WriteString("\n")
    default:
        for _, ch := range content {
            if cm, _ := ch.(map[string]any); cm != nil { renderBlocks(cm, b) }
        }
    }
}

func inlineText(node map[string]any) string {
    var b strings.Builder
    var walk func(n map[string]any)
    walk = func(n map[string]any) {
        switch toStr(n["type"]) {
        case "text":
            b.WriteString(toStr(n["text"]))
        case "hardBreak":
            b.WriteString("\n")
        }
        if content, ok := n["content"].([]any); ok {
            for _, ch := range content {
                if cm, _ := ch.(map[string]any); cm != nil { walk(cm) }
            }
        }
    }
    walk(node)
    return b.String()
}
