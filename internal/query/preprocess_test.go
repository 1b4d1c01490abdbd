package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
)

func TestPreprocess_EmptyQuery(t *testing.T) {
	_, err := Preprocess("", false, 0)
	require.Error(t, err)
	assert.Equal(t, shebeerrors.InvalidArgument, shebeerrors.CodeOf(err))

	_, err = Preprocess("   ", false, 0)
	require.Error(t, err)
}

func TestPreprocess_TooLong(t *testing.T) {
	long := make([]byte, DefaultMaxQueryLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := Preprocess(string(long), false, 0)
	require.Error(t, err)
	assert.Equal(t, shebeerrors.InvalidArgument, shebeerrors.CodeOf(err))
}

func TestPreprocess_UnknownFieldPrefixSuggestsCorrection(t *testing.T) {
	_, err := Preprocess("file:foo", false, 0)
	require.Error(t, err)
	assert.Equal(t, shebeerrors.InvalidArgument, shebeerrors.CodeOf(err))

	var se *shebeerrors.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "file_path:", se.Suggestion)
}

func TestPreprocess_CodePrefixSuggestsContent(t *testing.T) {
	_, err := Preprocess("code:foo", false, 0)
	require.Error(t, err)
	var se *shebeerrors.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "content:", se.Suggestion)
}

func TestPreprocess_RecognizedFieldPrefixesPassThrough(t *testing.T) {
	out, err := Preprocess("content:foo file_path:bar.go", false, 0)
	require.NoError(t, err)
	assert.Equal(t, "content:foo file_path:bar.go", out)
}

func TestPreprocess_EscapesBraces(t *testing.T) {
	out, err := Preprocess("foo{bar}", false, 0)
	require.NoError(t, err)
	assert.Equal(t, `foo\{bar\}`, out)
}

func TestPreprocess_QuotesURLPathWithBraces(t *testing.T) {
	out, err := Preprocess("/users/{id}", false, 0)
	require.NoError(t, err)
	assert.Equal(t, `"/users/\{id\}"`, out)
}

func TestPreprocess_QuotesMultiColonToken(t *testing.T) {
	out, err := Preprocess("pkg:scope:name", false, 0)
	require.NoError(t, err)
	assert.Equal(t, `"pkg:scope:name"`, out)
}

func TestPreprocess_LiteralModeEscapesAndQuotesWhole(t *testing.T) {
	out, err := Preprocess(`foo AND "bar"`, true, 0)
	require.NoError(t, err)
	assert.Equal(t, `"foo AND \"bar\""`, out)
}
