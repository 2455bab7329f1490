package dto_test

import (
	"net/http"
	"nest/internal/domains/portfolio/model"
	"nest/internal/domains/portfolio/model/dto"
	"nest/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScrollY(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "", want: 0},
		{raw: "0", want: 0},
		{raw: "51", want: 51},
		{raw: "12.75", want: 12.75},
		{raw: "-1", wantErr: true},
		{raw: "NaN", wantErr: true},
		{raw: "+Inf", wantErr: true},
		{raw: "top", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := dto.ParseScrollY(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0)
		})
	}
}

func TestNavState_FromScroll(t *testing.T) {
	var state dto.NavState
	state.FromScroll(80)

	assert.Equal(t, dto.NavState{ScrollY: 80, Scrolled: true, Class: model.NavClassScrolled, ParallaxOffset: 40}, state)

	state.FromScroll(50)
	assert.False(t, state.Scrolled)
	assert.Equal(t, model.NavClassTop, state.Class)
}
