package resume

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateContentJSON(t *testing.T) {
	data, err := json.Marshal(Starter())
	require.NoError(t, err)
	assert.NoError(t, ValidateContentJSON(data))

	// 形状校验只看类型，不要求字段填写。
	assert.NoError(t, ValidateContentJSON([]byte(`{}`)))
	assert.NoError(t, ValidateContentJSON([]byte(`{"personal_info":{},"sections":{"experience":[]}}`)))

	assert.Error(t, ValidateContentJSON(nil))
	assert.Error(t, ValidateContentJSON([]byte(`{"sections":[]}`)))
	assert.Error(t, ValidateContentJSON([]byte(`{"personal_info":"Ada"}`)))
	assert.Error(t, ValidateContentJSON([]byte(`{"settings":{"font_size_pt":"ten"}}`)))
}
