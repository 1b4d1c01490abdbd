package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_FunctionCall(t *testing.T) {
	kind, ok := Classify("result := getUser(id)", "getUser")
	assert.True(t, ok)
	assert.Equal(t, KindFunctionCall, kind)
}

func TestClassify_MethodCall(t *testing.T) {
	kind, ok := Classify("svc.getUser(id)", "getUser")
	assert.True(t, ok)
	assert.Equal(t, KindMethodCall, kind)
}

func TestClassify_Import(t *testing.T) {
	kind, ok := Classify(`import UserService from "./user"`, "UserService")
	assert.True(t, ok)
	assert.Equal(t, KindImport, kind)
}

func TestClassify_TypeAnnotation(t *testing.T) {
	kind, ok := Classify("let u: UserService = svc", "UserService")
	assert.True(t, ok)
	assert.Equal(t, KindTypeAnnotation, kind)
}

func TestClassify_ReturnType(t *testing.T) {
	kind, ok := Classify("func load() -> UserService {", "UserService")
	assert.True(t, ok)
	assert.Equal(t, KindReturnType, kind)
}

func TestClassify_GenericType(t *testing.T) {
	kind, ok := Classify("var list List<UserService>", "UserService")
	assert.True(t, ok)
	assert.Equal(t, KindGenericType, kind)
}

func TestClassify_TypeInstantiation(t *testing.T) {
	kind, ok := Classify("u := UserService{}", "UserService")
	assert.True(t, ok)
	assert.Equal(t, KindTypeInstantiation, kind)

	kind, ok = Classify("u := new UserService()", "UserService")
	assert.True(t, ok)
	assert.Equal(t, KindTypeInstantiation, kind)
}

func TestClassify_Assignment(t *testing.T) {
	kind, ok := Classify("count = 5", "count")
	assert.True(t, ok)
	assert.Equal(t, KindAssignment, kind)
}

func TestClassify_EqualityCheckIsNotAssignment(t *testing.T) {
	kind, ok := Classify("if count == 5 {", "count")
	assert.True(t, ok)
	assert.Equal(t, KindWordMatch, kind) // "==" must not be classified as assignment
}

func TestClassify_WordMatchFallback(t *testing.T) {
	kind, ok := Classify("the count variable is unused here", "count")
	assert.True(t, ok)
	assert.Equal(t, KindWordMatch, kind)
}

func TestClassify_FunctionCallRequiresWordBoundary(t *testing.T) {
	_, ok := Classify("xfoo(1)", "foo")
	assert.False(t, ok, "foo is a substring of xfoo, not a call to foo")
}

func TestClassify_TypeAnnotationRequiresWordBoundary(t *testing.T) {
	_, ok := Classify("x: fooBar", "foo")
	assert.False(t, ok, "foo is a prefix of fooBar, not an annotation of foo")
}

func TestBucket(t *testing.T) {
	assert.Equal(t, BucketHigh, Bucket(0.95))
	assert.Equal(t, BucketHigh, Bucket(0.80))
	assert.Equal(t, BucketMedium, Bucket(0.79))
	assert.Equal(t, BucketMedium, Bucket(0.50))
	assert.Equal(t, BucketLow, Bucket(0.49))
}

func TestMatchesSymbolType(t *testing.T) {
	assert.True(t, MatchesSymbolType("any", KindAssignment))
	assert.True(t, MatchesSymbolType("function", KindMethodCall))
	assert.False(t, MatchesSymbolType("function", KindAssignment))
	assert.True(t, MatchesSymbolType("type", KindGenericType))
}
