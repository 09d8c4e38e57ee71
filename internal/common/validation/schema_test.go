package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["storeName", "contactPhone"],
	"properties": {
		"storeName": {"type": "string", "minLength": 1},
		"contactPhone": {"type": "string"},
		"region": {"type": "string", "enum": ["seoul", "busan"]},
		"meta": {
			"type": "object",
			"properties": {"tables": {"type": "integer", "minimum": 0}}
		}
	}
}`

func TestSchema_Validate(t *testing.T) {
	s := MustCompile(testSchema)

	tests := []struct {
		name       string
		doc        interface{}
		valid      bool
		errorField string
	}{
		{
			name:  "valid map",
			doc:   map[string]interface{}{"storeName": "Noodle Bar", "contactPhone": "010-1234-5678"},
			valid: true,
		},
		{
			name: "valid struct via json tags",
			doc: struct {
				StoreName    string `json:"storeName"`
				ContactPhone string `json:"contactPhone"`
			}{"Noodle Bar", "010-1234-5678"},
			valid: true,
		},
		{
			name:       "missing required",
			doc:        map[string]interface{}{"storeName": "Noodle Bar"},
			errorField: "contactPhone",
		},
		{
			name:       "bad enum",
			doc:        map[string]interface{}{"storeName": "x", "contactPhone": "1", "region": "jeju"},
			errorField: "region",
		},
		{
			name:       "nested minimum",
			doc:        map[string]interface{}{"storeName": "x", "contactPhone": "1", "meta": map[string]interface{}{"tables": -1}},
			errorField: "meta.tables",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Validate(tt.doc)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.NotEmpty(t, result.Errors)
				assert.NotEmpty(t, result.Error())
				assert.NotEmpty(t, result.GetErrorsForField(tt.errorField), result.GetErrorMessages())
			}
		})
	}
}

func TestSchema_ValidateJSON(t *testing.T) {
	s := MustCompile(testSchema)

	assert.True(t, s.ValidateJSON([]byte(`{"storeName":"a","contactPhone":"1"}`)).Valid)

	result := s.ValidateJSON([]byte(`not json`))
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("(root)"))
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(`{"type": 12}`)
	require.Error(t, err)

	assert.Panics(t, func() { MustCompile(`{`) })
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("010-1234-5678"))
	assert.True(t, ValidatePhone("+82 2 123 4567"))
	assert.False(t, ValidatePhone("12ab"))
}
