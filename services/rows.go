package services

import (
	"strconv"

	"quizapi/models"
)

var (
	tableQuizzes   = models.Quiz{}.TableName()
	tableQuestions = models.Question{}.TableName()
	tableAnswers   = models.Answer{}.TableName()
)

// toColumns maps validated wire fields onto database columns. Fields missing
// from colmap keep their wire name.
func toColumns(clean map[string]any, colmap map[string]string) map[string]any {
	row := make(map[string]any, len(clean))
	for field, value := range clean {
		col, ok := colmap[field]
		if !ok {
			col = field
		}
		row[col] = value
	}
	return row
}

// normalizeRow converts a raw store row into its wire shape: image_url
// becomes imageUrl and is_correct becomes a real boolean regardless of how
// the driver surfaced it.
func normalizeRow(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	if v, ok := out["image_url"]; ok {
		delete(out, "image_url")
		out["imageUrl"] = v
	}
	if v, ok := out["is_correct"]; ok {
		out["is_correct"] = truthy(v)
	}
	return out
}

func normalizeRows(rows []map[string]any) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		out[i] = normalizeRow(row)
	}
	return out
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case int:
		return b != 0
	case float64:
		return b != 0
	case string:
		return b == "1" || b == "true" || b == "t"
	default:
		return false
	}
}

func toUint(v any) uint {
	switch n := v.(type) {
	case uint:
		return n
	case int:
		return uint(n)
	case int64:
		return uint(n)
	case uint64:
		return uint(n)
	case float64:
		return uint(n)
	case string:
		parsed, err := strconv.ParseUint(n, 10, 32)
		if err != nil {
			return 0
		}
		return uint(parsed)
	default:
		return 0
	}
}
