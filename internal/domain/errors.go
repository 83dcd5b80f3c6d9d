package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams        = errors.New("bad_params")         // 400
	ErrUnauth           = errors.New("unauthorized")       // 401
	ErrForbidden        = errors.New("forbidden")          // 403
	ErrNotFound         = errors.New("not_found")          // 404
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrConflict         = errors.New("conflict")           // 409, наружу обычно не уходит
	ErrRateLimited      = errors.New("rate_limited")       // 429
	ErrUnexpected       = errors.New("unexpected")         // 500
	ErrNotImplemented   = errors.New("not_implemented")    // 501
	ErrUpstream         = errors.New("upstream")           // 502
	ErrNotReady         = errors.New("not_ready")          // 503
)

// Error: доменная ошибка со стабильным машинным кодом.
// errors.Is(err, ErrNotFound) и т.п. работает через Unwrap.
type Error struct {
	Kind error
	Code string
	Msg  string
}

func (e *Error) Error() string { return e.Code + ": " + e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func newErr(kind error, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Msg: msg}
}

var (
	ErrOTPCooldown = newErr(ErrRateLimited, "OTP.COOLDOWN_ACTIVE", "OTP cooldown is active")
	ErrOTPInvalid  = newErr(ErrBadParams, "OTP.INVALID", "Invalid OTP provided")
	ErrOTPExpired  = newErr(ErrBadParams, "OTP.EXPIRED", "OTP has expired")
	ErrOTPAttempts = newErr(ErrRateLimited, "OTP.TOO_MANY_ATTEMPTS", "Too many OTP attempts")

	ErrUnauthorized = newErr(ErrUnauth, "AUTH.UNAUTHORIZED", "Unauthorized access")
	ErrUserInactive = newErr(ErrForbidden, "AUTH.USER_INACTIVE", "User account is inactive")
	ErrInvalidEmail = newErr(ErrBadParams, "AUTH.INVALID_EMAIL", "Invalid email address")

	ErrCannotFollowSelf = newErr(ErrBadParams, "FOLLOW.CANNOT_FOLLOW_SELF", "You cannot follow yourself")
	ErrUserNotFound     = newErr(ErrNotFound, "FOLLOW.USER_NOT_FOUND", "User not found")

	ErrDocumentNotFound     = newErr(ErrNotFound, "DOCUMENT.NOT_FOUND", "Document not found")
	ErrDocumentAccessDenied = newErr(ErrForbidden, "DOCUMENT.ACCESS_DENIED", "You do not have access to this document")
	ErrDownloadURLFailed    = newErr(ErrUpstream, "DOCUMENT.DOWNLOAD_URL_FAILED", "Failed to generate download URL")
	ErrDocumentOwnership    = newErr(ErrForbidden, "DOCUMENT.OWNERSHIP_ERROR", "Object key does not belong to the user's documents")
	ErrDocumentNotUploaded  = newErr(ErrBadParams, "DOCUMENT.UPLOAD_NOT_FOUND", "Uploaded object not found or expired")
	ErrUnsupportedType      = newErr(ErrBadParams, "DOCUMENT.UNSUPPORTED_CONTENT_TYPE", "Unsupported content type")
	ErrInvalidDocument      = newErr(ErrBadParams, "DOCUMENT.INVALID", "Invalid document fields")
	ErrEmptyPost            = newErr(ErrBadParams, "DOCUMENT.EMPTY_POST", "Post content must not be empty")
	ErrStorageFailed        = newErr(ErrUpstream, "STORAGE_OPERATION_FAILED", "Storage operation failed")

	ErrInvalidAvatarType = newErr(ErrBadParams, "AVATAR.INVALID_CONTENT_TYPE", "Invalid avatar content type")
	ErrInvalidAvatarKey  = newErr(ErrForbidden, "AVATAR.INVALID_OBJECT_KEY", "Invalid avatar object key")
	ErrAvatarExpired     = newErr(ErrBadParams, "AVATAR.UPLOAD_EXPIRED", "Uploaded avatar not found or expired")
	ErrAvatarNotFound    = newErr(ErrNotFound, "AVATAR.NOT_FOUND", "No avatar to delete")

	ErrQueryTooShort = newErr(ErrBadParams, "SEARCH.QUERY_TOO_SHORT", "Search query too short")

	ErrChatProfileRequired = newErr(ErrForbidden, "CHAT.PROFILE_REQUIRED", "Only students with a profile can access chat")
	ErrChatUnavailable     = newErr(ErrNotReady, "CHAT.UNAVAILABLE", "Chat service unavailable")

	ErrCommentNotFound   = newErr(ErrNotFound, "COMMENT.NOT_FOUND", "Comment not found")
	ErrInvalidParent     = newErr(ErrBadParams, "COMMENT.INVALID_PARENT", "Invalid parent comment")
	ErrCommentNotAllowed = newErr(ErrForbidden, "COMMENT.NOT_ALLOWED", "You are not allowed to modify this comment")
	ErrEmptyComment      = newErr(ErrBadParams, "COMMENT.EMPTY", "Comment content must not be empty")
)
