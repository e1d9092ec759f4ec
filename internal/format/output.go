package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Envelope is the shape of every CLI response.
type Envelope struct {
	Data any            `json:"data"`
	Meta map[string]any `json:"meta,omitempty"`
}

// Table is data with a plain-text tabular form.
type Table interface {
	Header() []string
	Rows() [][]string
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText renders tables as aligned columns. Anything else falls back to indented JSON.
func WriteText(w io.Writer, v any) error {
	if env, ok := v.(Envelope); ok {
		v = env.Data
	}
	t, ok := v.(Table)
	if !ok {
		switch x := v.(type) {
		case string:
			_, err := fmt.Fprintln(w, x)
			return err
		case bool:
			_, err := fmt.Fprintln(w, x)
			return err
		}
		return WriteJSON(w, v, true)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := t.Header()
	upper := make([]string, len(header))
	for i, h := range header {
		upper[i] = strings.ToUpper(h)
	}
	fmt.Fprintln(tw, strings.Join(upper, "\t"))
	for _, row := range t.Rows() {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
