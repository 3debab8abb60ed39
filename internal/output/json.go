package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Formats lists the supported output formats
var Formats = []string{"table", "json", "grid"}

// JSON writes data as JSON to stdout
func JSON(data interface{}) error {
	return JSONTo(os.Stdout, data)
}

// JSONTo writes data as JSON to the given writer
func JSONTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// JSONCompactTo writes data as compact JSON to the given writer
func JSONCompactTo(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	return encoder.Encode(data)
}

// Output writes data to stdout in the specified format
func Output(format string, data interface{}) error {
	return OutputTo(os.Stdout, format, data, nil)
}

// OutputTo writes data in the specified format.
// paint colors grid cells and may be nil.
func OutputTo(w io.Writer, format string, data interface{}, paint Painter) error {
	switch format {
	case "json":
		return JSONTo(w, data)
	case "table", "":
		return TableTo(w, data)
	case "grid":
		return GridTo(w, data, paint)
	default:
		return fmt.Errorf("unknown output format: %s (use table, json, or grid)", format)
	}
}
