// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package datazone

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/aws/smithy-go"
)

// Error codes surfaced to MCP clients. Upstream AWS exceptions are
// collapsed into this fixed taxonomy so callers never have to parse
// service-specific exception names.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeAccessDenied  = "ACCESS_DENIED"
	CodeThrottled     = "THROTTLED"
	CodeConflict      = "CONFLICT"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeQuotaExceeded = "QUOTA_EXCEEDED"
	CodeUnavailable   = "UNAVAILABLE"
	CodeInternal      = "INTERNAL"
)

// ToolError is a normalized upstream failure. The message has already
// been scrubbed of credential material.
type ToolError struct {
	Code    string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NormalizeError converts an AWS SDK error into a ToolError with a
// stable code and a scrubbed message. Non-SDK errors map to INTERNAL.
// Errors are never retried here; retry policy lives in the SDK.
func NormalizeError(err error) error {
	if err == nil {
		return nil
	}
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &ToolError{
			Code:    classifyAPIError(apiErr.ErrorCode()),
			Message: ScrubCredentials(apiErr.ErrorMessage()),
		}
	}
	return &ToolError{Code: CodeInternal, Message: ScrubCredentials(err.Error())}
}

// classifyAPIError maps DataZone exception names to the error taxonomy.
func classifyAPIError(code string) string {
	switch code {
	case "ResourceNotFoundException", "NotFoundException":
		return CodeNotFound
	case "AccessDeniedException", "UnauthorizedException", "UnauthorizedClientException":
		return CodeAccessDenied
	case "ThrottlingException", "TooManyRequestsException", "RequestThrottledException":
		return CodeThrottled
	case "ConflictException":
		return CodeConflict
	case "ValidationException", "InvalidParameterException":
		return CodeInvalidInput
	case "ServiceQuotaExceededException":
		return CodeQuotaExceeded
	case "ServiceUnavailableException":
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

// Credential patterns that must never reach an MCP client. AWS access key
// ids have a fixed 4-letter prefix; secrets and tokens are matched by the
// key=value shapes the SDK and botocore-style messages use.
var credentialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:AKIA|ASIA|AROA|AIDA)[A-Z0-9]{16}\b`),
	regexp.MustCompile(`(?i)(aws_secret_access_key|secret_access_key|secretaccesskey)\s*[=:]\s*\S+`),
	regexp.MustCompile(`(?i)(aws_session_token|session_token|x-amz-security-token)\s*[=:]\s*\S+`),
	regexp.MustCompile(`(?i)authorization\s*[=:]\s*\S+`),
	regexp.MustCompile(`Credential=\S+`),
	regexp.MustCompile(`Signature=[0-9a-fA-F]+`),
}

// ScrubCredentials removes AWS credential material from a message before
// it is included in an error returned to the caller.
func ScrubCredentials(msg string) string {
	for _, p := range credentialPatterns {
		msg = p.ReplaceAllString(msg, "[REDACTED]")
	}
	return msg
}
