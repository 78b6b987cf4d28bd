// meddb normalizes pharmaceutical catalogs and builds a fast-search
// ingredient index over them.
package main

import (
	"github.com/medbase/meddb/cmd"
)

func main() {
	cmd.Execute()
}
