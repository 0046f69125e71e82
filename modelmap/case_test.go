package modelmap

import "testing"

func TestToSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "User", want: "user"},
		{in: "AdminUser", want: "admin_user"},
		{in: "HTTPServer", want: "http_server"},
		{in: "user_record", want: "user_record"},
		{in: "model.Base", want: "model_base"},
		{in: "*pkg.Thing[string]", want: "pkg_thing_string"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := toSnake(tt.in); got != tt.want {
				t.Errorf("toSnake(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
