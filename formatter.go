package pagescope

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatResult formats a result as a Markdown report.
// Each field becomes a section. Multi-line text is fenced and structured
// values are shown as indented JSON.
func FormatResult(r *Result) string {
	if r == nil {
		return ""
	}

	parts := make([]string, 0, len(r.Fields)+1)
	parts = append(parts, "# Page report: "+r.URL)
	for _, f := range r.Fields {
		section := "## " + f.Name + "\n" + formatValue(f.Value)
		if f.Error != "" {
			section += "\n\n> error: " + f.Error
		}
		parts = append(parts, section)
	}

	return strings.Join(parts, "\n\n")
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "_none_"
	case Sentinel:
		return "_" + string(v) + "_"
	case string:
		if v == "" {
			return "_none_"
		}
		if strings.Contains(v, "\n") {
			return fence(v, "")
		}
		return v
	case []string:
		if len(v) == 0 {
			return "_none_"
		}
		items := make([]string, len(v))
		for i, s := range v {
			items[i] = "- " + s
		}
		return strings.Join(items, "\n")
	case int, int64, float64, bool:
		return fmt.Sprint(v)
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return fence(string(b), "json")
}

// fence wraps s in a code fence longer than any backtick run inside it.
func fence(s, lang string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	f := strings.Repeat("`", max(3, longest+1))
	return f + lang + "\n" + s + "\n" + f
}

// FormatText formats a result for a terminal: one "name: value" line per
// field, with structured values as compact JSON and errors in brackets.
func FormatText(r *Result) string {
	if r == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "url: %s\n", r.URL)
	for _, f := range r.Fields {
		fmt.Fprintf(&sb, "%s: %s", f.Name, textValue(f.Value))
		if f.Error != "" {
			fmt.Fprintf(&sb, " [error: %s]", f.Error)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func textValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case Sentinel:
		return string(v)
	case string:
		if v == "" {
			return "-"
		}
		if strings.Contains(v, "\n") {
			return fmt.Sprintf("%d lines", strings.Count(v, "\n")+1)
		}
		return v
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
