package fieldref

import "testing"

func TestParseShapes(t *testing.T) {
	cases := []struct {
		key  string
		want Ref
	}{
		{"name[eq]", Ref{Kind: Plain, Field: "name", Op: "eq", Raw: "name[eq]"}},
		{"options.prompt[contains]", Ref{Kind: Jsonb, Field: "options", Key: "prompt", Op: "contains", Raw: "options.prompt[contains]"}},
		{"current_version:status[eq]", Ref{Kind: Join, Assoc: "current_version", Field: "status", Op: "eq", Raw: "current_version:status[eq]"}},
		{"current_version:flow_input.prompt[contains]", Ref{
			Kind: JoinJsonb, Assoc: "current_version", Field: "flow_input", Key: "prompt", Op: "contains",
			Raw: "current_version:flow_input.prompt[contains]",
		}},
		{"sort", Ref{Kind: None, Raw: "sort"}},
		{"-start", Ref{Kind: None, Raw: "-start"}},
		{"", Ref{Kind: None, Raw: ""}},
		{"a:b.c[eq]", Ref{Kind: JoinJsonb, Assoc: "a", Field: "b", Key: "c", Op: "eq", Raw: "a:b.c[eq]"}},
	}
	for _, c := range cases {
		got := Parse(c.key)
		if got != c.want {
			t.Fatalf("Parse(%q) = %+v, want %+v", c.key, got, c.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	keys := []string{
		"name[eq]",
		"age[gte]",
		"options.prompt[contains]",
		"current_version:status[eq]",
		"current_version:flow_input.prompt[contains]",
	}
	for _, k := range keys {
		if got := Parse(k).String(); got != k {
			t.Fatalf("round trip: Parse(%q).String() = %q", k, got)
		}
	}
}

func TestJoinAmbiguityOrdering(t *testing.T) {
	// a:b.c[eq] must parse as JoinJsonb, not as Jsonb on a field named "a:b".
	r := Parse("a:b.c[eq]")
	if r.Kind != JoinJsonb {
		t.Fatalf("expected JoinJsonb, got %v", r.Kind)
	}
}

func TestIsFilterAndIsJoined(t *testing.T) {
	if Parse("sort").IsFilter() {
		t.Fatalf("control key must not be a filter")
	}
	if !Parse("name[eq]").IsFilter() {
		t.Fatalf("plain key must be a filter")
	}
	if Parse("name[eq]").IsJoined() {
		t.Fatalf("plain key must not be joined")
	}
	if !Parse("a:b[eq]").IsJoined() {
		t.Fatalf("join key must be joined")
	}
}
