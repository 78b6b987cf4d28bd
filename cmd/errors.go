package cmd

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/medbase/meddb/pkg/errcode"
)

// ReadRecordsFileError creates an error for unreadable or malformed
// record files.
func ReadRecordsFileError(path string, err error) error {
	msg := `Cannot read records from <em>%s</em>

The file must contain a JSON array of drug records.`

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to read records file %s: %w", path, err),
	}
}
