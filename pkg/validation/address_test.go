package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"valid lowercase", "0x1111111111111111111111111111111111111111", false},
		{"valid mixed case", "0xABCDEFabcdef0123456789ABCDEFabcdef012345", false},
		{"valid uppercase prefix", "0X1111111111111111111111111111111111111111", false},
		{"empty", "", true},
		{"missing prefix", "1111111111111111111111111111111111111111", true},
		{"too short", "0x1111", true},
		{"too long", "0x" + strings.Repeat("1", 42), true},
		{"non-hex characters", "0xZZ11111111111111111111111111111111111111", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "0xabcdef0000000000000000000000000000000000", NormalizeAddress("0xABCDEF0000000000000000000000000000000000"))
	assert.Equal(t, "0xabcdef0000000000000000000000000000000000", NormalizeAddress("0XABCDEF0000000000000000000000000000000000"))
	assert.Equal(t, "0xabc", NormalizeAddress("abc"))
}

func TestValidateAndNormalizeAddress(t *testing.T) {
	got, err := ValidateAndNormalizeAddress("0xABCDEFabcdef0123456789ABCDEFabcdef012345")
	require.NoError(t, err)
	assert.Equal(t, "0xabcdefabcdef0123456789abcdefabcdef012345", got)

	_, err = ValidateAndNormalizeAddress("bogus")
	assert.Error(t, err)
}
