package validate_test

import (
	"errors"
	"testing"

	"github.com/Astemirdum/article-rating/pkg/validate"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestCustomValidator_Validate(t *testing.T) {
	type req struct {
		ID    int `validate:"required"`
		Stars int `validate:"required,min=1,max=5"`
	}
	v := validate.NewCustomValidator()

	require.NoError(t, v.Validate(req{ID: 1, Stars: 5}))

	err := v.Validate(req{ID: 0, Stars: 7})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	require.Equal(t, "required", verrs[0].Tag())
	require.Equal(t, "max", verrs[1].Tag())
}
