package iosearch

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/medbase/meddb/pkg/errcode"
)

// QueryError creates an error for group search query failures.
func QueryError(term string, err error) error {
	msg := `Cannot search ingredient groups for <em>%s</em>

Run <em>meddb normalize</em> first if the grouping table does not
exist yet.`

	return &gn.Error{
		Code: errcode.SearchQueryError,
		Msg:  msg,
		Vars: []any{term},
		Err:  fmt.Errorf("failed to search groups for %q: %w", term, err),
	}
}
