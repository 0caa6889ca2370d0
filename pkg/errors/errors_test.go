package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationErrorAccumulates(t *testing.T) {
	ve := NewValidationError()
	require.False(t, ve.HasErrors())

	ve.Add("childName", "child name is required")
	ve.Add("village", "village is required")
	ve.Add("childName", "ignored duplicate")

	require.True(t, ve.HasErrors())
	require.Len(t, ve.Fields, 2)
	require.Equal(t, "child name is required", ve.Fields["childName"])
	require.Equal(t, "validation failed: childName, village", ve.Error())
	require.True(t, IsValidation(ve))
}

func TestTypedErrorPredicates(t *testing.T) {
	require.True(t, IsForbidden(Forbidden("mother", "classify report")))
	require.True(t, IsInvalidState(InvalidState("classify", "closed")))
	require.True(t, IsNotFound(NotFoundf("report")))
	require.True(t, IsConflict(Conflict("duplicate report id")))

	// Wrapped errors still match.
	wrapped := fmt.Errorf("handler: %w", InvalidState("decide", "closed"))
	require.True(t, IsInvalidState(wrapped))
	require.False(t, IsForbidden(wrapped))
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, `role "aunt" may not assign report`, Forbidden("aunt", "assign report").Error())
	require.Equal(t, `cannot classify while status is "closed"`, InvalidState("classify", "closed").Error())
	require.Equal(t, "report not found", NotFoundf("report").Error())
}
