package models

import (
	"testing"
)

func TestString(t *testing.T) {
	user := User{Username: "test_creator"}
	author := User{Username: "test_author"}

	tests := []struct {
		name     string
		record   interface{ String() string }
		expected string
	}{
		{"post keeps first 15 characters", Post{Text: "Тестовый пост для проверки"}, "Тестовый пост д"},
		{"short post", Post{Text: "short"}, "short"},
		{"group is its title", Group{Title: "Тестовая группа", Slug: "test-slug"}, "Тестовая группа"},
		{"comment keeps first 15 characters", Comment{Text: "Тестовый комментарий"}, "Тестовый коммен"},
		{"follow", Follow{User: user, Author: author}, "test_creator follows test_author"},
		{"user", user, "test_creator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	var anonymous *User
	if anonymous.IsAdmin() {
		t.Error("nil user must not be admin")
	}
	if (&User{Role: RoleUser}).IsAdmin() {
		t.Error("regular user must not be admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role must be admin")
	}
}
