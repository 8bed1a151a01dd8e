package dataframe

import "errors"

// Sentinel errors returned by frame operations. Callers test with errors.Is.
var (
	// ErrUnknownColumn indicates a referenced column is not part of the frame.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrDuplicateColumn indicates an operation would produce two columns
	// with the same name.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrAmbiguousColumn indicates a join would carry the same non-key column
	// from both sides. Callers drop or rename one side before joining.
	ErrAmbiguousColumn = errors.New("ambiguous column")

	// ErrEmptySchema indicates a frame was requested with no columns.
	ErrEmptySchema = errors.New("empty schema")
)
