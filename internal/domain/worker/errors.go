package worker

import "errors"

var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrEmailExists    = errors.New("email already registered")
)
