package handlers

import (
	"fmt"
	"html/template"
	"reflect"
	"time"

	"yatube/internal/services"
	"yatube/internal/utils"
)

// Empty is shown in the admin panel for missing values
const Empty = "-empty-"

// TemplateFuncs returns the functions available to every template
func TemplateFuncs(media *services.MediaStore) template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"markdown": utils.RenderMarkdown,
		"truncate": utils.Truncate,
		"idstr":    utils.FormatID,
		"mediaURL": media.URL,
		"date": func(t time.Time) string {
			return t.Format("02.01.2006 15:04")
		},
		"orEmpty": orEmpty,
	}
}

// orEmpty dereferences v, or returns Empty for zero values and nil pointers
func orEmpty(v interface{}) interface{} {
	if v == nil {
		return Empty
	}
	rv := reflect.ValueOf(v)
	if rv.IsZero() {
		return Empty
	}
	if rv.Kind() == reflect.Ptr {
		return rv.Elem().Interface()
	}
	return v
}
