package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"yatube/internal/models"
)

func TestOrEmpty(t *testing.T) {
	var group *models.Group

	tests := []struct {
		name     string
		value    interface{}
		expected interface{}
	}{
		{"nil", nil, Empty},
		{"empty string", "", Empty},
		{"nil pointer", group, Empty},
		{"string", "text", "text"},
		{"pointer", &models.Group{Title: "Группа"}, models.Group{Title: "Группа"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, orEmpty(tt.value))
		})
	}
}
