package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"minihotel/shared/failure"
	"minihotel/shared/validator"

	"github.com/stretchr/testify/assert"
)

type createRoomPayload struct {
	Number      string  `json:"number"         validate:"required,max=50"`
	MaxCapacity int     `json:"max_capacity"   validate:"required,gt=0"`
	Price       float64 `json:"price_per_night" validate:"gte=0"`
}

func TestValidate_ValidBody(t *testing.T) {
	body := strings.NewReader(`{"number":"R101","max_capacity":2,"price_per_night":100}`)

	var payload createRoomPayload
	err := validator.Validate(body, &payload)

	assert.NoError(t, err)
	assert.Equal(t, "R101", payload.Number)
	assert.Equal(t, 2, payload.MaxCapacity)
}

func TestValidate_MalformedJSON(t *testing.T) {
	body := strings.NewReader(`{"number":`)

	var payload createRoomPayload
	err := validator.Validate(body, &payload)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestValidateStruct_FieldMessages(t *testing.T) {
	tests := []struct {
		name    string
		payload createRoomPayload
		wantMsg string
	}{
		{
			name:    "missing number",
			payload: createRoomPayload{MaxCapacity: 2},
			wantMsg: "Number is required",
		},
		{
			name:    "zero capacity",
			payload: createRoomPayload{Number: "R101"},
			wantMsg: "MaxCapacity is required",
		},
		{
			name:    "negative price",
			payload: createRoomPayload{Number: "R101", MaxCapacity: 2, Price: -1},
			wantMsg: "Price must be greater than or equal to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.payload)

			assert.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("guest@example.com", "email"))
	assert.Error(t, validator.ValidateVar("not-an-email", "email"))
}
