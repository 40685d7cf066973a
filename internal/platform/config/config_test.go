package config

import (
	"testing"
	"time"

	kit "tsdash/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	api := New().Prefix("CORE_").Prefix("API_")
	if got := api.key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key() = %q, want %q", got, "CORE_API_PORT")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_PG_URL", "  postgres://x ")
	if got := c.MustString("PG_URL"); got != "postgres://x" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })

	t.Setenv("CFGT_BLANK", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("BLANK") })
}

func TestMustInt(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_N", " 8 ")
	if got := c.MustInt("N"); got != 8 {
		t.Fatalf("MustInt = %d", got)
	}
	t.Setenv("CFGT_BADN", "x")
	kit.MustPanic(t, func() { _ = c.MustInt("BADN") })
}

func TestMustPort(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_PORT", "4000")
	if got := c.MustPort("PORT"); got != ":4000" {
		t.Fatalf("MustPort = %q, want %q", got, ":4000")
	}
	t.Setenv("CFGT_BADPORT", "abc")
	kit.MustPanic(t, func() { _ = c.MustPort("BADPORT") })
	t.Setenv("CFGT_OOB", "70000")
	kit.MustPanic(t, func() { _ = c.MustPort("OOB") })
}

func TestMayFallbacks(t *testing.T) {
	c := New().Prefix("MAYT_")
	t.Setenv("MAYT_NAME", " tsdash ")
	t.Setenv("MAYT_INT", " 7 ")
	t.Setenv("MAYT_BADINT", "x")
	t.Setenv("MAYT_BOOL", "true")
	t.Setenv("MAYT_BADBOOL", "nope")
	t.Setenv("MAYT_DUR", "150ms")
	t.Setenv("MAYT_BADDUR", "soon")

	if got := c.MayString("NAME", "x"); got != "tsdash" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q", got)
	}
	if got := c.MayInt("INT", 0); got != 7 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BADINT", 3); got != 3 {
		t.Fatalf("MayInt invalid = %d", got)
	}
	if !c.MayBool("BOOL", false) || c.MayBool("BADBOOL", false) {
		t.Fatalf("MayBool mismatch")
	}
	if got := c.MayDuration("DUR", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("BADDUR", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration invalid = %v", got)
	}
}

func TestMayIntIn(t *testing.T) {
	c := New().Prefix("RNG_")
	t.Setenv("RNG_LOW", "0")
	t.Setenv("RNG_HIGH", "99")
	t.Setenv("RNG_OK", "4")

	cases := []struct {
		key  string
		want int
	}{
		{"LOW", 1},
		{"HIGH", 16},
		{"OK", 4},
		{"MISSING", 8},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			if got := c.MayIntIn(tc.key, 8, 1, 16); got != tc.want {
				t.Fatalf("MayIntIn(%s) = %d, want %d", tc.key, got, tc.want)
			}
		})
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSVT_")
	def := []string{"*"}
	if got := c.MayCSV("MISS", def); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV default mismatch: %#v", got)
	}
	t.Setenv("CSVT_ORIGINS", " http://a, http://b , ,")
	got := c.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "http://a" || got[1] != "http://b" {
		t.Fatalf("MayCSV = %#v", got)
	}
	t.Setenv("CSVT_EMPTY", " , ,")
	if got := c.MayCSV("EMPTY", def); len(got) != 1 {
		t.Fatalf("all blank should fall back: %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("ENUMT_")
	if got := c.MayEnum("MISS", "session", "session", "process"); got != "session" {
		t.Fatalf("MayEnum default = %q", got)
	}
	t.Setenv("ENUMT_SCOPE", "Process")
	if got := c.MayEnum("SCOPE", "session", "session", "process"); got != "process" {
		t.Fatalf("MayEnum = %q, want lower-cased process", got)
	}
	t.Setenv("ENUMT_BAD", "global")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "session", "session", "process") })
}
