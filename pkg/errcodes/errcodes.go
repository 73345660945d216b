package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidArgument     failure.ErrorCode = "InvalidArgument"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"
	InvalidSchoolID     failure.ErrorCode = "InvalidSchoolID"

	// Remote data client.
	ConfigurationError failure.ErrorCode = "ConfigurationError"
	TransportError     failure.ErrorCode = "TransportError"
	DecodingError      failure.ErrorCode = "DecodingError"

	// Favorite storage backends.
	StorageError failure.ErrorCode = "StorageError"
)
