package resume

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// contentSchema 只校验结构形状（类型与嵌套），字段是否填写属于建议性校验，
// 由 editor 的完整度报告负责，缺字段不会在这里被拒绝。
const contentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "personal_info": {"type": "object"},
    "summary": {
      "type": "object",
      "properties": {
        "blocks": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "kind": {"type": "string"},
              "spans": {"type": "array"},
              "items": {"type": "array"}
            }
          }
        }
      }
    },
    "sections": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": {"type": "object"}
      }
    },
    "settings": {
      "type": "object",
      "properties": {
        "font_family": {"type": "string"},
        "font_size_pt": {"type": "integer"},
        "line_spacing": {"type": "number"},
        "color_scheme": {"type": "string"},
        "section_order": {"type": "array", "items": {"type": "string"}},
        "show_icons": {"type": "boolean"},
        "show_photo": {"type": "boolean"}
      }
    }
  }
}`

var compiledContentSchema = mustCompileSchema(contentSchema)

func mustCompileSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compile content schema: %v", err))
	}
	return schema
}

// ValidateContentJSON 校验内容载荷的结构形状，形状非法时返回聚合错误。
func ValidateContentJSON(raw []byte) error {
	if len(raw) == 0 {
		return fmt.Errorf("content payload is empty")
	}

	result, err := compiledContentSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validate content: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("content schema violation: %s", strings.Join(msgs, "; "))
}
