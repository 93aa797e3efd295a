// Package output provides output formatting for the IAM CLI.
//
// Purpose:
//
//	Render entity attribute maps and command results as JSON or as
//	human-readable tables. Attribute maps are printed with sorted keys and
//	stable indentation so diffs between invocations are meaningful.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrintData writes an entity attribute map as indented JSON. Map keys are
// emitted in sorted order.
func PrintData(w io.Writer, data map[string]interface{}) error {
	encoded, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}
	_, err = fmt.Fprintln(w, string(encoded))
	return err
}

// PrintJSON writes any value as indented JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// PrintMembers writes a group member list as a compact JSON array.
func PrintMembers(w io.Writer, members []string) error {
	if members == nil {
		members = []string{}
	}
	encoded, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("encode members: %w", err)
	}
	_, err = fmt.Fprintln(w, string(encoded))
	return err
}
