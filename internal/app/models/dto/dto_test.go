package dto

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassroomRef(t *testing.T) {
	tcases := []struct {
		name string
		body string
		want string
	}{
		{"number", `{"classroom_id":20}`, "20"},
		{"string", `{"classroom_id":"20"}`, "20"},
		{"padded string", `{"classroom_id":" 20 "}`, " 20 "},
		{"null", `{"classroom_id":null}`, ""},
		{"absent", `{}`, ""},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			var req CreateInvitationRequest
			require.NoError(t, json.Unmarshal([]byte(tc.body), &req))
			assert.Equal(t, tc.want, req.ClassroomRef())
		})
	}
}

func TestHandleValidationError(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	v.SetTagName("binding")

	missing := v.Struct(&LoginRequest{})
	require.Error(t, missing)

	badEmail := v.Struct(&LoginRequest{Email: "nope", Password: "x"})
	require.Error(t, badEmail)

	var typed struct {
		ClassroomID int64 `json:"classroomId"`
	}
	typeErr := json.Unmarshal([]byte(`{"classroomId":"abc"}`), &typed)
	syntaxErr := json.Unmarshal([]byte(`{"classroomId":`+"\x00"), &typed)

	tcases := []struct {
		name    string
		err     error
		field   string
		message string
		details bool
	}{
		{"two missing fields", missing, "email", "email is required", true},
		{"bad email", badEmail, "email", "email must be a valid email address", false},
		{"wrong type", typeErr, "classroomId", "classroomId has the wrong type", false},
		{"broken json", syntaxErr, "", "request body is not valid JSON", false},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			detail := HandleValidationError(tc.err)
			assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
			assert.Equal(t, tc.field, detail.Field)
			assert.Equal(t, tc.message, detail.Message)
			assert.Equal(t, tc.details, detail.Details != nil)
		})
	}
}

func TestClassroomDataEncodesEmptyRecentCalls(t *testing.T) {
	body, err := json.Marshal(ClassroomData{ID: 10, RecentCalls: []RecentCallData{}})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"recent_calls":[]`)
}
