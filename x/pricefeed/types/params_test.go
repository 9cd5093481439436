package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr string
	}{
		{
			name:   "default params are valid",
			params: DefaultParams(),
		},
		{
			name:   "custom params",
			params: NewParams(60, 250),
		},
		{
			name:    "zero max price age",
			params:  NewParams(0, 1000),
			wantErr: "max price age must be positive",
		},
		{
			name:    "zero max deviation",
			params:  NewParams(300, 0),
			wantErr: "max deviation must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
