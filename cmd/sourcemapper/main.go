// Command sourcemapper inspects and queries Source Map v3 files.
//
// Usage:
//
//	sourcemapper inspect <file.map>
//	sourcemapper lookup <file.map> --line 2 --column 2
//	sourcemapper lookup <file.map> --offset 120 --generated bundle.min.js
//	cat bundle.min.js.map | sourcemapper inspect -
//
// Config file:
//
//	sourcemapper looks for sourcemapper.json or .sourcemapperrc in the
//	current directory and parent directories. Config file options are
//	overridden by CLI flags.
//
// Example sourcemapper.json:
//
//	{
//	    "format": "text",
//	    "color": true
//	}
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
