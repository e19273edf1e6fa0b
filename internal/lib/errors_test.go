package lib

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, KindProfileNotFound, KindOf(ProfileNotFoundError()))
	require.Equal(t, KindServerNotFound, KindOf(fmt.Errorf("wrapped: %w", ServerNotFoundError())))
	require.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestErrorExtensions(t *testing.T) {
	err := ValidationError("IMAGE_REQUIRED", "Image is required").(*Error)
	require.Equal(t, "IMAGE_REQUIRED", err.Extensions()["code"])
	require.Equal(t, "VALIDATION_ERROR", err.Extensions()["kind"])

	forbidden := ForbiddenError("").(*Error)
	require.Equal(t, "FORBIDDEN", forbidden.Extensions()["code"])
	require.NotEmpty(t, forbidden.Message)
}

func TestErrorIs(t *testing.T) {
	err := ValidationError("IMAGE_REQUIRED", "Image is required")
	require.ErrorIs(t, err, &Error{Kind: KindValidation})
	require.ErrorIs(t, err, &Error{Kind: KindValidation, Code: "IMAGE_REQUIRED"})
	require.NotErrorIs(t, err, &Error{Kind: KindForbidden})
}

func TestHandleError(t *testing.T) {
	require.NoError(t, HandleError(nil))
	require.Equal(t, KindConflict, KindOf(HandleError(gorm.ErrDuplicatedKey)))
	require.Equal(t, KindInternal, KindOf(HandleError(errors.New("boom"))))

	original := ServerNotFoundError()
	require.Same(t, original, HandleError(original))
}
