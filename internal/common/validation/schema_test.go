package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const subscribeSchema = `{
	"type": "object",
	"required": ["email"],
	"properties": {
		"email": {"type": "string", "minLength": 3},
		"source": {"type": "string", "enum": ["footer", "blog", "popup"]}
	}
}`

func TestValidate(t *testing.T) {
	schema := MustCompileSchema(subscribeSchema)

	tests := []struct {
		name      string
		doc       string
		wantValid bool
		wantField string
		wantCode  string
	}{
		{
			name:      "valid document",
			doc:       `{"email":"reader@example.com","source":"blog"}`,
			wantValid: true,
		},
		{
			name:      "missing required field",
			doc:       `{"source":"blog"}`,
			wantField: "email",
			wantCode:  "REQUIRED",
		},
		{
			name:      "wrong type",
			doc:       `{"email":42}`,
			wantField: "email",
			wantCode:  "INVALID_TYPE",
		},
		{
			name:      "enum violation",
			doc:       `{"email":"reader@example.com","source":"tv"}`,
			wantField: "source",
			wantCode:  "ENUM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc interface{}
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &doc))

			result, err := Validate(schema, doc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)

			if tt.wantValid {
				assert.NoError(t, result.Err())
				return
			}
			require.True(t, result.HasErrors(tt.wantField), "errors: %v", result.GetErrorMessages())
			assert.Equal(t, tt.wantCode, result.GetErrorsForField(tt.wantField)[0].Code)
			assert.Error(t, result.Err())
		})
	}
}

func TestValidateBytes(t *testing.T) {
	schema := MustCompileSchema(`{"type":"array","minItems":2}`)

	result, err := ValidateBytes(schema, []byte(`[1]`))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	_, err = ValidateBytes(schema, []byte(`[1,`))
	assert.Error(t, err)
}

func TestCompileSchema_Invalid(t *testing.T) {
	_, err := CompileSchema(json.RawMessage(`{"type": 12}`))
	assert.Error(t, err)
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("reader@example.com"))
	assert.True(t, ValidateEmail("first.last+news@mail.example.co"))
	assert.False(t, ValidateEmail("reader@"))
	assert.False(t, ValidateEmail("no-at-sign.example.com"))
	assert.False(t, ValidateEmail(""))
}
