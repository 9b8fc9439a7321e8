package core

// error_messages.go maps errors to user-friendly messages with codes for
// support reference.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum upload size
//	          Action: Upload a smaller file
//	          Patterns: "file too large", "request body too large"
//
//	FILE002 - Invalid CSV: File is not a valid CSV
//	          Action: Ensure file is comma-separated with consistent columns
//	          Kind: MalformedData
//
//	FILE003 - Encoding error: File contains invalid characters
//	          Action: Save file as UTF-8 encoding
//	          Patterns: "encoding error" (also within MalformedData)
//
//	FILE004 - No file: No file was selected
//	          Action: Please select a CSV file to upload
//	          Patterns: "no file provided"
//
//	FILE005 - Wrong file type: Only CSV files are allowed
//	          Action: Upload a file with a .csv extension
//	          Kind: InvalidInput
//
//	FILE006 - Bad form: Upload must be a multipart form
//	          Action: Send the CSV as multipart/form-data in the "file" field
//	          Patterns: "invalid upload form"
//
// # Table Errors (TBL001-TBL099)
//
//	TBL001 - No data: CSV file not uploaded
//	         Action: Upload a CSV file before requesting a chart
//	         Kind: NoData
//
//	TBL002 - Column not found: Column not found in CSV file
//	         Action: Use one of the numeric columns returned by the upload
//	         Kind: UnknownColumn
//
//	TBL003 - Missing parameter: A required query parameter is missing
//	         Action: Provide the column names for the chart
//	         Patterns: "missing query parameter"
//
//	TBL004 - Bad format: Unsupported export format
//	         Action: Use format=csv or format=xlsx
//	         Patterns: "unsupported export format"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL001 - System busy: Too many uploads in progress
//	         Action: Please wait a moment and try again
//	         Kind: Busy
//
//	UPL002 - Request cancelled: Request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	UPL003 - Request timeout: Request timed out
//	         Action: Try uploading a smaller file or check your connection
//	         Patterns: "context deadline exceeded", "timeout"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when neither a kind nor a pattern matches. Support staff should
// check application logs for the original technical error.
//
// Kinds are checked before patterns.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var kindMessages = map[ErrorKind]UserMessage{
	KindInvalidInput: {
		Message: "Only CSV files are allowed",
		Action:  "Upload a file with a .csv extension",
		Code:    "FILE005",
	},
	KindMalformedData: {
		Message: "Error reading CSV file",
		Action:  "Ensure file is comma-separated with consistent columns",
		Code:    "FILE002",
	},
	KindNoData: {
		Message: "CSV file not uploaded",
		Action:  "Upload a CSV file before requesting a chart",
		Code:    "TBL001",
	},
	KindUnknownColumn: {
		Message: "Column not found in CSV file",
		Action:  "Use one of the numeric columns returned by the upload",
		Code:    "TBL002",
	},
	KindBusy: {
		Message: "Too many uploads in progress",
		Action:  "Please wait a moment and try again",
		Code:    "UPL001",
	},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns are matched case-insensitively with strings.Contains.
// The first match wins, so specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Upload a smaller file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Upload a smaller file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save file as UTF-8 encoding",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "invalid upload form",
		msg: UserMessage{
			Message: "Upload must be a multipart form",
			Action:  "Send the CSV as multipart/form-data in the \"file\" field",
			Code:    "FILE006",
		},
	},
	{
		pattern: "missing query parameter",
		msg: UserMessage{
			Message: "A required query parameter is missing",
			Action:  "Provide the column names for the chart",
			Code:    "TBL003",
		},
	},
	{
		pattern: "unsupported export format",
		msg: UserMessage{
			Message: "Unsupported export format",
			Action:  "Use format=csv or format=xlsx",
			Code:    "TBL004",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try uploading a smaller file or check your connection",
			Code:    "UPL003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try uploading a smaller file or check your connection",
			Code:    "UPL003",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
//
// Domain errors are mapped by kind. MalformedData and UnknownColumn keep the
// technical detail in the message, since it names the offending line or
// column, except that an encoding failure maps to FILE003. Other errors fall
// back to pattern matching and finally to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if kind := KindOf(err); kind != KindUnknown {
		msg := kindMessages[kind]
		switch kind {
		case KindMalformedData:
			if enc, ok := matchPattern(err, "encoding error"); ok {
				return enc
			}
			msg.Message = fmt.Sprintf("%s: %s", msg.Message, err.Error())
		case KindUnknownColumn:
			msg.Message = err.Error()
		}
		return msg
	}

	if msg, ok := matchPattern(err, ""); ok {
		return msg
	}
	return defaultMessage
}

// matchPattern returns the first errorPatterns entry found in err's text.
// When only is set, just that pattern is tried.
func matchPattern(err error, only string) (UserMessage, bool) {
	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if only != "" && ep.pattern != only {
			continue
		}
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg, true
		}
	}
	return UserMessage{}, false
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something other than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
