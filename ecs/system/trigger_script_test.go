package system

import "testing"

func TestRunTriggerScript(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		vars    map[string]int
		want    string
		wantErr bool
	}{
		{"empty", "   \n", nil, "", false},
		{"fixed", `next = "secret"`, nil, "secret", false},
		{"by_kills", `
if kills >= total_enemies {
	next = "bonus"
} else {
	next = "e1m2"
}`, map[string]int{"kills": 4, "total_enemies": 4}, "bonus", false},
		{"falls_through", `x := kills * 2`, map[string]int{"kills": 1}, "", false},
		{"uses_stdlib", `
text := import("text")
next = text.to_lower("E1M3")`, nil, "e1m3", false},
		{"compile_error", `next = `, nil, "", true},
		{"runtime_error", `next = 1 / zero`, map[string]int{"zero": 0}, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RunTriggerScript([]byte(tc.src), tc.vars)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("next = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTriggerScriptTimesOut(t *testing.T) {
	if _, err := RunTriggerScript([]byte(`for {}`), nil); err == nil {
		t.Fatalf("an endless script should be cut off")
	}
}
