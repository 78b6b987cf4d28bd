package ionormalize

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/medbase/meddb/pkg/errcode"
)

// LoadError creates an error for record ingestion failures.
func LoadError(err error) error {
	msg := `Cannot load records into the catalog store

<em>Possible causes:</em>
  - The store schema is missing or outdated
  - The store file is not writable

<em>How to fix:</em>
  1. Run <em>meddb init</em> to ensure the schema
  2. Check file permissions on the store`

	return &gn.Error{
		Code: errcode.LoadRecordsError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to load records: %w", err),
	}
}

// ReadRecordsError creates an error for catalog read failures during
// normalization.
func ReadRecordsError(err error) error {
	msg := "Cannot read catalog records for normalization"

	return &gn.Error{
		Code: errcode.NormalizeReadError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to read records: %w", err),
	}
}

// UpdateRecordError creates an error for canonical token write failures.
func UpdateRecordError(code string, err error) error {
	msg := "Cannot update canonical ingredient for record <em>%s</em>"

	return &gn.Error{
		Code: errcode.NormalizeUpdateError,
		Msg:  msg,
		Vars: []any{code},
		Err:  fmt.Errorf("failed to update record %s: %w", code, err),
	}
}

// RebuildGroupsError creates an error for grouping table rebuild
// failures.
func RebuildGroupsError(err error) error {
	msg := "Cannot rebuild the ingredient grouping table"

	return &gn.Error{
		Code: errcode.NormalizeGroupError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to rebuild groups: %w", err),
	}
}

// FlagReadError creates an error for completion flag read failures.
func FlagReadError(err error) error {
	msg := "Cannot read the normalization completion flag"

	return &gn.Error{
		Code: errcode.NormalizeFlagError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to read completion flag: %w", err),
	}
}

// WriteFlagError creates an error for completion flag write failures.
func WriteFlagError(err error) error {
	msg := "Cannot write the normalization completion flag"

	return &gn.Error{
		Code: errcode.NormalizeFlagError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to write completion flag: %w", err),
	}
}
