package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Store errors
	DBConnectionError
	DBNotConnectedError
	DBFileMissingError
	DBTableCheckError
	DBColumnCheckError
	DBIndexCheckError
	DBQueryError

	// Schema errors
	SchemaEnsureError
	SchemaColumnError
	SchemaIndexError

	// Normalization errors
	LoadRecordsError
	NormalizeReadError
	NormalizeUpdateError
	NormalizeGroupError
	NormalizeFlagError

	// Search errors
	SearchQueryError

	// Config errors
	ConfigLoadError
)
