package validate_test

import (
	"testing"

	"github.com/Astemirdum/lumina-library/pkg/validate"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type borrower struct {
	Name  string `json:"borrowerName" validate:"required"`
	Phone string `json:"borrowerPhone" validate:"phone10"`
}

func TestPhone10(t *testing.T) {
	t.Parallel()
	tests := []struct {
		phone   string
		wantErr bool
	}{
		{phone: "555-123-4567"},
		{phone: "(555) 123-4567"},
		{phone: "5551234567"},
		{phone: "12345", wantErr: true},
		{phone: "", wantErr: true},
		{phone: "555-123-45678", wantErr: true},
	}
	v := validate.NewCustomValidator()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.phone, func(t *testing.T) {
			t.Parallel()
			err := v.Validate(borrower{Name: "Alice", Phone: tt.phone})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFieldNamesFromJSON(t *testing.T) {
	err := validate.New().Struct(borrower{Phone: "5551234567"})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Equal(t, "borrowerName", verrs[0].Field())
}

func TestDigits(t *testing.T) {
	require.Equal(t, "5551234567", validate.Digits("(555) 123-4567"))
	require.Equal(t, "", validate.Digits("n/a"))
}
