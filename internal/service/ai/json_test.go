package ai

import "testing"

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{
			name:  "bare object",
			input: `{"name":"Kay"}`,
			want:  `{"name":"Kay"}`,
			found: true,
		},
		{
			name:  "prose around the object",
			input: "Here is the profile:\n{\"name\":\"Kay\"}\nHope that helps!",
			want:  `{"name":"Kay"}`,
			found: true,
		},
		{
			name:  "nested objects stay balanced",
			input: `{"outer":{"inner":1},"n":2} trailing`,
			want:  `{"outer":{"inner":1},"n":2}`,
			found: true,
		},
		{
			name:  "braces inside strings do not count",
			input: `{"bio":"loves {curly} braces}"}`,
			want:  `{"bio":"loves {curly} braces}"}`,
			found: true,
		},
		{
			name:  "escaped quote inside string",
			input: `{"bio":"said \"}\" once"}`,
			want:  `{"bio":"said \"}\" once"}`,
			found: true,
		},
		{
			name:  "first of two objects wins",
			input: `{"a":1} {"b":2}`,
			want:  `{"a":1}`,
			found: true,
		},
		{
			name:  "unbalanced object",
			input: `{"a": {"b": 1}`,
			found: false,
		},
		{
			name:  "no object at all",
			input: "I could not find anything about that account.",
			found: false,
		},
		{
			name:  "empty input",
			input: "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FirstJSONObject(tt.input)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
