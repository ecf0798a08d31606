package style

import (
	"reflect"
	"testing"
)

func fill(t *testing.T, value string) []Declaration {
	t.Helper()
	r := NewResolver(nil)
	return r.resolveFill(value, make(map[string]bool))
}

func TestResolveFill_PlainAndFlat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"plain hex", "#1a1a2e", "#1a1a2e"},
		{"plain keyword", "rebeccapurple", "rebeccapurple"},
		{"flat function", "flat(#1a1a2e)", "#1a1a2e"},
		{"unknown function is a direct fill", "wavy(#000, #fff)", "wavy(#000, #fff)"},
		{"flat with wrong arity falls back", "flat(#000, #fff)", "flat(#000, #fff)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fill(t, tt.value)
			want := []Declaration{{Prop: "background", Value: tt.want}}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("fill(%q) = %v, want %v", tt.value, got, want)
			}
		})
	}
}

func TestResolveFill_Gradients(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"linear two-arg defaults the angle", "linear(#000, #fff)", "linear-gradient(135deg, #000, #fff)"},
		{"linear three-arg explicit angle", "linear(90deg, #000, #fff)", "linear-gradient(90deg, #000, #fff)"},
		{"linear four stops", "linear(45deg, #000, #888, #fff)", "linear-gradient(45deg, #000, #888, #fff)"},
		{"radial", "radial(#000, #fff)", "radial-gradient(circle, #000, #fff)"},
		{"nested commas do not split", "linear(rgb(0, 0, 0), #fff)", "linear-gradient(135deg, rgb(0, 0, 0), #fff)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fill(t, tt.value)
			want := []Declaration{{Prop: "background", Value: tt.want}}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("fill(%q) = %v, want %v", tt.value, got, want)
			}
		})
	}
}

func TestResolveFill_Glass(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		background string
	}{
		{"six-digit hex", "glass(#1a1a2e, 0.85)", "rgba(26, 26, 46, 0.85)"},
		{"three-digit hex doubles each digit", "glass(#1a2, 0.5)", "rgba(17, 170, 34, 0.5)"},
		{"non-hex passes through unconverted", "glass(tomato, 0.5)", "tomato"},
		{"missing opacity defaults to opaque", "glass(#000000)", "rgba(0, 0, 0, 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fill(t, tt.value)
			want := []Declaration{
				{Prop: "background", Value: tt.background},
				{Prop: "backdrop-filter", Value: "blur(12px)"},
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("fill(%q) = %v, want %v", tt.value, got, want)
			}
		})
	}
}

func TestResolveFill_Texture(t *testing.T) {
	got := fill(t, "texture(#333, dots)")
	if len(got) != 3 {
		t.Fatalf("texture decls = %v, want color + image + size", got)
	}
	if got[0] != (Declaration{Prop: "background-color", Value: "#333"}) {
		t.Errorf("decl 0 = %v, want background-color #333", got[0])
	}
	if got[1].Prop != "background-image" {
		t.Errorf("decl 1 = %v, want a background-image overlay", got[1])
	}

	// Default and unknown kinds use the lines pattern.
	plain := fill(t, "texture(#333)")
	unknown := fill(t, "texture(#333, zigzag)")
	if !reflect.DeepEqual(plain, unknown) {
		t.Errorf("default pattern %v != unknown-kind pattern %v", plain, unknown)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
		ok      bool
	}{
		{"#1a1a2e", 26, 26, 46, true},
		{"#1a2", 17, 170, 34, true},
		{"#fff", 255, 255, 255, true},
		{"#ggg", 0, 0, 0, false},
		{"1a1a2e", 0, 0, 0, false}, // missing #
		{"#1a1a", 0, 0, 0, false},  // bad length
		{"", 0, 0, 0, false},
	}

	for _, tt := range tests {
		r, g, b, ok := parseHexColor(tt.in)
		if r != tt.r || g != tt.g || b != tt.b || ok != tt.ok {
			t.Errorf("parseHexColor(%q) = %d,%d,%d,%v, want %d,%d,%d,%v",
				tt.in, r, g, b, ok, tt.r, tt.g, tt.b, tt.ok)
		}
	}
}

func TestSplitCall(t *testing.T) {
	tests := []struct {
		in   string
		name string
		args []string
		ok   bool
	}{
		{"flat(#fff)", "flat", []string{"#fff"}, true},
		{"linear(90deg, #000, #fff)", "linear", []string{"90deg", "#000", "#fff"}, true},
		{"f(a, g(b, c), d)", "f", []string{"a", "g(b, c)", "d"}, true},
		{"#fff", "", nil, false},
		{"(a)", "", nil, false},
		{"flat(#fff) extra", "", nil, false},
		{"not a call(x)", "", nil, false},
	}

	for _, tt := range tests {
		name, args, ok := splitCall(tt.in)
		if ok != tt.ok || name != tt.name || !reflect.DeepEqual(args, tt.args) {
			t.Errorf("splitCall(%q) = %q %v %v, want %q %v %v",
				tt.in, name, args, ok, tt.name, tt.args, tt.ok)
		}
	}
}
