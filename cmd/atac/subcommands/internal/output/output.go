// Package output renders API responses for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

// PrintError writes err the way every atac subcommand reports failure.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, "error:", err)
}
