package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	AccessTokenExpired  failure.ErrorCode = "AccessTokenExpired"
	AccessTokenInvalid  failure.ErrorCode = "AccessTokenInvalid"
	NotFound            failure.ErrorCode = "NotFound"

	// Deals
	DealNotFound       failure.ErrorCode = "DealNotFound"
	InvalidDealID      failure.ErrorCode = "InvalidDealID"
	InvalidCategory    failure.ErrorCode = "InvalidCategory"
	InvalidMinDiscount failure.ErrorCode = "InvalidMinDiscount"
	InvalidHistory     failure.ErrorCode = "InvalidHistory"

	// Feed
	FeedUnavailable failure.ErrorCode = "FeedUnavailable"
	FeedMalformed   failure.ErrorCode = "FeedMalformed"
)
