package open_extra_services

import "errors"

var (
	ErrInvalidInput     = errors.New("open_extra_services: invalid input data")
	ErrUnrecognizedKind = errors.New("open_extra_services: unrecognized record kind")
	ErrRecordNotFound   = errors.New("open_extra_services: record not found")
	ErrInternal         = errors.New("open_extra_services: internal error")
)
