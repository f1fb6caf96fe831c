package mcversion_test

import (
	"testing"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/arthur-debert/mcsi/pkg/mcversion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    mcversion.Version
		str     string
		wantErr bool
	}{
		{input: "1.19.2", want: mcversion.Version{Major: 1, Minor: 19, Patch: 2, HasPatch: true}, str: "1.19.2"},
		{input: "1.20", want: mcversion.Version{Major: 1, Minor: 20}, str: "1.20"},
		{input: " 1.7.10 ", want: mcversion.Version{Major: 1, Minor: 7, Patch: 10, HasPatch: true}, str: "1.7.10"},
		{input: "1", wantErr: true},
		{input: "1.2.3.4", wantErr: true},
		{input: "1.x.2", wantErr: true},
		{input: "1.-2", wantErr: true},
		{input: "1.+2", wantErr: true},
		{input: "", wantErr: true},
		{input: "23w13a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := mcversion.Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrVersionParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.str, got.String())
		})
	}
}

func TestNeoForgePrefix(t *testing.T) {
	assert.Equal(t, "20.4.", mcversion.MustParse("1.20.4").NeoForgePrefix())
	assert.Equal(t, "21.0.", mcversion.MustParse("1.21").NeoForgePrefix())
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { mcversion.MustParse("nope") })
}
