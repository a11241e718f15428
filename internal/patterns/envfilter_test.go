package patterns

import "testing"

func TestBuildSafeEnv(t *testing.T) {
	in := []string{
		"PATH=/usr/bin",
		"HOME=/root",
		"AWS_SECRET_ACCESS_KEY=shhh",
		"ANTHROPIC_API_KEY=sk-ant-xxx",
		"MY_CUSTOM_VAR=hello",
		"LC_ALL=en_US.UTF-8",
	}
	out := BuildSafeEnv(in, map[string]string{"EXTRA_TOKEN": "bypassed"})

	want := map[string]bool{
		"PATH=/usr/bin": true,
		"HOME=/root":    true,
		"LC_ALL=en_US.UTF-8": true,
		"EXTRA_TOKEN=bypassed": true,
	}
	got := map[string]bool{}
	for _, kv := range out {
		got[kv] = true
	}
	for k := range want {
		if !got[k] {
			t.Errorf("expected %q in safe env, not found", k)
		}
	}
	for _, blocked := range []string{"AWS_SECRET_ACCESS_KEY=shhh", "ANTHROPIC_API_KEY=sk-ant-xxx", "MY_CUSTOM_VAR=hello"} {
		if got[blocked] {
			t.Errorf("expected %q to be filtered out", blocked)
		}
	}
}

func TestContainsHomoglyph(t *testing.T) {
	if !ContainsHomoglyph("gооgle.com") {
		t.Error("expected homoglyph detection on Cyrillic o lookalike")
	}
	if ContainsHomoglyph("google.com") {
		t.Error("expected no homoglyph on plain ASCII hostname")
	}
}

func TestStripDangerousRunes(t *testing.T) {
	s := "hello​world"
	stripped := StripDangerousRunes(s)
	if stripped != "helloworld" {
		t.Errorf("got %q, want %q", stripped, "helloworld")
	}
}
