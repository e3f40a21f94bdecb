package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder_Build(t *testing.T) {
	err := Newf("lookup failed for %s", "CECT 1").
		Category(CategoryNotFound).
		Component("biolomics").
		Context("endpoint", "strain").
		Build()

	require.Error(t, err)
	assert.Equal(t, "lookup failed for CECT 1", err.Error())
	assert.Equal(t, CategoryNotFound, err.Category)
	assert.Equal(t, "biolomics", err.Component)
	assert.Equal(t, "strain", err.GetContext()["endpoint"])
	assert.False(t, err.Timestamp.IsZero())
}

func TestErrorBuilder_DefaultCategory(t *testing.T) {
	err := Newf("plain failure").Build()
	assert.Equal(t, CategoryGeneric, err.Category)
}

func TestEnhancedError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("wrapped: %w", ErrRecordIDRequired)
	err := New(inner).Category(CategoryState).Build()

	assert.True(t, Is(err, ErrRecordIDRequired))

	var ee *EnhancedError
	require.True(t, As(err, &ee))
	assert.Equal(t, CategoryState, ee.Category)
}

func TestEnhancedError_IsMatchesCategory(t *testing.T) {
	a := Newf("first").Category(CategoryNetwork).Build()
	b := Newf("second").Category(CategoryNetwork).Build()
	c := Newf("third").Category(CategoryValidation).Build()

	assert.True(t, Is(a, b))
	assert.False(t, Is(a, c))
}

func TestGetContext_Copy(t *testing.T) {
	err := Newf("x").Context("k", "v").Build()
	ctx := err.GetContext()
	ctx["k"] = "mutated"
	assert.Equal(t, "v", err.GetContext()["k"])
}
