package ioconfig

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/medbase/meddb/pkg/errcode"
)

// ReadConfigError creates an error for config file read failures.
func ReadConfigError(path string, err error) error {
	msg := `Cannot read config file <em>%s</em>

Check that the file exists and is valid YAML.`

	return &gn.Error{
		Code: errcode.ConfigLoadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to read config %s: %w", path, err),
	}
}

// WriteConfigError creates an error for config file write failures.
func WriteConfigError(path string, err error) error {
	msg := "Cannot write config file <em>%s</em>"

	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to write config %s: %w", path, err),
	}
}
