package autoexport

import "errors"

// Sentinel errors for package autoexport.
var (
	ErrExportFailed = errors.New("poetry export failed")
	ErrInvalidArgs  = errors.New("invalid export arguments")
)
