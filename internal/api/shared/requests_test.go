package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settingsBody struct {
	Shuffle *bool `json:"shuffle" validate:"required"`
}

type checkedBody struct {
	OK bool `json:"ok"`
}

func (b checkedBody) Validate() error {
	if !b.OK {
		return assert.AnError
	}
	return nil
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr error
		anyErr  bool
	}{
		{name: "valid body", body: `{"shuffle":false}`},
		{name: "empty body", body: "", wantErr: ErrEmptyBody},
		{name: "malformed body", body: `{"shuffle":`, anyErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(tc.body))

			var got settingsBody
			err := DecodeJSON(r, &got)
			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				require.NotNil(t, got.Shuffle)
				assert.False(t, *got.Shuffle)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	on := true
	assert.NoError(t, ValidateRequest(&settingsBody{Shuffle: &on}))
	assert.Error(t, ValidateRequest(&settingsBody{}))

	assert.NoError(t, ValidateRequest(checkedBody{OK: true}))
	assert.ErrorIs(t, ValidateRequest(checkedBody{}), assert.AnError)
}
