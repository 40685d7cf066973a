package raw

import "testing"

func TestConfGet(t *testing.T) {
	t.Setenv("LOG_SERVICE", " tsdash-api ")
	t.Setenv("LOG_FORMAT", " json ")

	root := New()
	log := root.Prefix("LOG_")

	tests := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "root full key", conf: root, key: "LOG_SERVICE", def: "x", want: "tsdash-api"},
		{name: "prefixed hit", conf: log, key: "FORMAT", def: "console", want: "json"},
		{name: "missing returns default", conf: log, key: "MISSING", def: "defv", want: "defv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfGetBool(t *testing.T) {
	c := New().Prefix("RAWB_")
	t.Setenv("RAWB_T1", "true")
	t.Setenv("RAWB_T2", "1")
	t.Setenv("RAWB_T3", " ON ")
	t.Setenv("RAWB_F1", "no")
	t.Setenv("RAWB_F2", "garbage")

	tests := []struct {
		key  string
		def  bool
		want bool
	}{
		{"T1", false, true},
		{"T2", false, true},
		{"T3", false, true},
		{"F1", true, false},
		{"F2", true, false},
		{"MISSING", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := c.GetBool(tt.key, tt.def); got != tt.want {
				t.Fatalf("GetBool(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfGetInt(t *testing.T) {
	c := New().Prefix("RAWI_")
	t.Setenv("RAWI_OK", " 42 ")
	t.Setenv("RAWI_BAD", "12x")
	t.Setenv("RAWI_NEG", "-5")

	tests := []struct {
		key  string
		def  int
		want int
	}{
		{"OK", 0, 42},
		{"BAD", 9, 9},
		{"NEG", 3, 3},
		{"MISSING", 11, 11},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := c.GetInt(tt.key, tt.def); got != tt.want {
				t.Fatalf("GetInt(%q) = %d, want %d", tt.key, got, tt.want)
			}
		})
	}
}
