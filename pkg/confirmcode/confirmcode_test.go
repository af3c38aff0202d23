package confirmcode

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	hexUpper := regexp.MustCompile(`^[0-9A-F]{8}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := Generate()
		require.NoError(t, err)
		assert.Len(t, code, Length)
		assert.Regexp(t, hexUpper, code)
		seen[code] = struct{}{}
	}

	// 100 кодов на пространстве 16^8: повтор означал бы сломанный генератор
	assert.Len(t, seen, 100)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "A1B2C3D4", Normalize("a1b2c3d4"))
	assert.Equal(t, "A1B2C3D4", Normalize("  A1b2C3d4  "))
	assert.Equal(t, "ABC123", Normalize("abc123"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "generated format", input: "A1B2C3D4", want: "A1B2C3D4"},
		{name: "lowercase normalized", input: "a1b2c3d4", want: "A1B2C3D4"},
		{name: "legacy six characters", input: "ABC123", want: "ABC123"},
		{name: "surrounding spaces", input: " A1B2C3D4 ", want: "A1B2C3D4"},
		{name: "too short", input: "ABC12", wantErr: true},
		{name: "too long", input: "A1B2C3D4E", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "special characters", input: "A1B2-3D4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
