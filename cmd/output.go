package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/denysvitali/dirscope-runtime/pkg/dirlist"
)

// Output formats accepted by --output
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func renderListing(w io.Writer, path string, listing dirlist.Listing, format string) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(listing)
	case outputTable, "":
		return renderTable(w, path, listing)
	default:
		return fmt.Errorf("unknown output format %q (want %s, %s or %s)", format, outputTable, outputJSON, outputYAML)
	}
}

func renderTable(w io.Writer, path string, listing dirlist.Listing) error {
	if _, err := fmt.Fprintln(w, styleHeader.Render(path)); err != nil {
		return err
	}
	if len(listing) == 0 {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}
	for _, e := range listing {
		kind, name := "file", styleFile.Render(e.Name)
		if e.IsDir {
			kind, name = "dir", styleDir.Render(e.Name+"/")
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", styleKind.Render(kind), name); err != nil {
			return err
		}
	}
	return nil
}
