package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

// TableFormatter formats output as a human-readable table.
type TableFormatter struct {
	writer *tabwriter.Writer
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
	}
}

// WriteHeader writes table headers.
func (t *TableFormatter) WriteHeader(headers ...string) {
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(t.writer, "\t")
		}
		fmt.Fprint(t.writer, h)
	}
	fmt.Fprintln(t.writer)
}

// WriteRow writes a table row.
func (t *TableFormatter) WriteRow(values ...string) {
	for i, v := range values {
		if i > 0 {
			fmt.Fprint(t.writer, "\t")
		}
		fmt.Fprint(t.writer, v)
	}
	fmt.Fprintln(t.writer)
}

// Flush flushes the table output.
func (t *TableFormatter) Flush() error {
	return t.writer.Flush()
}

// PrintAttributeTable writes an entity attribute map as a two-column
// table with sorted keys. Nested values are rendered as compact JSON.
func PrintAttributeTable(w io.Writer, data map[string]interface{}) error {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, attributeValue(data[k])})
	}
	return PrintTable(w, []string{"Attribute", "Value"}, rows)
}

func attributeValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(encoded)
}

// PrintTable writes a complete table to w.
func PrintTable(w io.Writer, headers []string, rows [][]string) error {
	formatter := NewTableFormatter(w)
	formatter.WriteHeader(headers...)
	for _, row := range rows {
		formatter.WriteRow(row...)
	}
	return formatter.Flush()
}
