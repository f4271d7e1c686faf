package domain

import "errors"

// ErrValidation is an error thrown when input is malformed or empty after sanitizing
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is an error thrown when the caller is not authenticated or a token check fails
var ErrUnauthorized = errors.New("unauthorized")

// ErrRecordNotFound is an error thrown when a file record is not found
var ErrRecordNotFound = errors.New("file record not found")

// ErrBlobNotFound is an error thrown when a blob is missing from storage
var ErrBlobNotFound = errors.New("blob not found")

// ErrStorage is an error thrown when a blob cannot be saved or deleted
var ErrStorage = errors.New("storage error")

// ErrFile is an error thrown when a blob cannot be read for delivery
var ErrFile = errors.New("file error")

// ErrTokenNotFound is an error thrown when no token is cached under a key
var ErrTokenNotFound = errors.New("token not found")

// ErrAlreadyTrashed is an error thrown when trashing a record that is already in the trash
var ErrAlreadyTrashed = errors.New("file record already trashed")
