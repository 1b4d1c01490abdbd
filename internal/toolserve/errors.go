package toolserve

import (
	"fmt"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
)

// Standard JSON-RPC error codes, reused alongside Shebe-specific ones
// below the -32000 boundary JSON-RPC reserves for implementation-defined
// errors.
const (
	codeInvalidParams = -32602
	codeInternalError = -32603

	codeNotFound              = -32001
	codeAlreadyExists         = -32002
	codeSchemaMismatch        = -32003
	codeRepositoryPathMissing = -32004
	codeConfigUnchanged       = -32005
	codeBinaryFile            = -32006
	codeFileNotFound          = -32007
	codeTimeout               = -32008
	codeCancelled             = -32009
)

// MCPError is an MCP/JSON-RPC error with a numeric code, mirroring the
// shape AmanMCP's internal/mcp.MCPError returns from every handler.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts a shebeerrors.Error (as returned by every
// internal/toolops function) into an MCPError, preserving the error's
// suggestion in the message where present.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	message := err.Error()
	var shebeErr *shebeerrors.Error
	if ok := extractShebeError(err, &shebeErr); ok {
		message = shebeErr.Message
		if shebeErr.Suggestion != "" {
			message = fmt.Sprintf("%s %s", shebeErr.Message, shebeErr.Suggestion)
		}
	}

	return &MCPError{Code: codeFor(shebeerrors.CodeOf(err)), Message: message}
}

func codeFor(code shebeerrors.Code) int {
	switch code {
	case shebeerrors.InvalidArgument:
		return codeInvalidParams
	case shebeerrors.NotFound:
		return codeNotFound
	case shebeerrors.AlreadyExists:
		return codeAlreadyExists
	case shebeerrors.SchemaMismatch:
		return codeSchemaMismatch
	case shebeerrors.RepositoryPathMissing:
		return codeRepositoryPathMissing
	case shebeerrors.ConfigUnchanged:
		return codeConfigUnchanged
	case shebeerrors.BinaryFile:
		return codeBinaryFile
	case shebeerrors.FileNotFound:
		return codeFileNotFound
	case shebeerrors.Timeout:
		return codeTimeout
	case shebeerrors.Cancelled:
		return codeCancelled
	default:
		return codeInternalError
	}
}

func extractShebeError(err error, target **shebeerrors.Error) bool {
	for err != nil {
		if e, ok := err.(*shebeerrors.Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
