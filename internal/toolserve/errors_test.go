package toolserve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
)

// Given: nil
// When: MapError is called
// Then: it returns nil rather than a zero-value *MCPError
func TestMapError_NilIsNil(t *testing.T) {
	assert.Nil(t, MapError(nil))
}

// Given: a shebeerrors.Error of each known code
// When: MapError is called
// Then: it maps to the matching JSON-RPC style code, and falls back to
// internal error for codes it doesn't special-case
func TestMapError_MapsKnownCodes(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{shebeerrors.InvalidArgument, codeInvalidParams},
		{shebeerrors.NotFound, codeNotFound},
		{shebeerrors.AlreadyExists, codeAlreadyExists},
		{shebeerrors.SchemaMismatch, codeSchemaMismatch},
		{shebeerrors.RepositoryPathMissing, codeRepositoryPathMissing},
		{shebeerrors.ConfigUnchanged, codeConfigUnchanged},
		{shebeerrors.BinaryFile, codeBinaryFile},
		{shebeerrors.FileNotFound, codeFileNotFound},
		{shebeerrors.Timeout, codeTimeout},
		{shebeerrors.Cancelled, codeCancelled},
		{shebeerrors.Internal, codeInternalError},
	}
	for _, tc := range cases {
		err := shebeerrors.New(tc.code, "boom")
		mapped := MapError(err)
		assert.Equal(t, tc.want, mapped.Code, "code %s", tc.code)
		assert.Equal(t, "boom", mapped.Message)
	}
}

// Given: a shebeerrors.Error carrying a suggestion
// When: MapError is called
// Then: the suggestion is appended to the message
func TestMapError_AppendsSuggestion(t *testing.T) {
	err := shebeerrors.New(shebeerrors.InvalidArgument, "bad input").WithSuggestion("try again")
	mapped := MapError(err)
	assert.Equal(t, "bad input try again", mapped.Message)
}

// Given: a non-shebeerrors error
// When: MapError is called
// Then: it falls back to an internal error code with the raw message
func TestMapError_FallsBackForUnknownErrorTypes(t *testing.T) {
	mapped := MapError(errors.New("disk on fire"))
	assert.Equal(t, codeInternalError, mapped.Code)
	assert.Equal(t, "disk on fire", mapped.Message)
}

// Code is a type alias so the table above reads naturally; avoids
// importing shebeerrors.Code under two names.
type Code = shebeerrors.Code
