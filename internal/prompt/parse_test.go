package prompt

import "testing"

func TestParseJSONFieldStructured(t *testing.T) {
	value, ok := ParseJSONField(`{"affirmation": "I am steady."}`, "affirmation")
	if !ok {
		t.Fatal("Expected structured parse to succeed")
	}
	if value != "I am steady." {
		t.Errorf("Expected field value, got %q", value)
	}
}

func TestParseJSONFieldCodeFenced(t *testing.T) {
	raw := "```json\n{\"affirmation\": \"I am steady.\"}\n```"
	value, ok := ParseJSONField(raw, "affirmation")
	if !ok {
		t.Fatal("Expected fenced JSON to parse")
	}
	if value != "I am steady." {
		t.Errorf("Expected field value, got %q", value)
	}
}

func TestParseJSONFieldFallsBackToRawText(t *testing.T) {
	raw := "I am steady and calm."
	value, ok := ParseJSONField(raw, "affirmation")
	if ok {
		t.Error("Expected structured parse to fail for plain text")
	}
	if value != raw {
		t.Errorf("Expected raw text fallback, got %q", value)
	}
}

func TestParseJSONFieldMissingField(t *testing.T) {
	raw := `{"other": "value"}`
	value, ok := ParseJSONField(raw, "affirmation")
	if ok {
		t.Error("Expected parse to fail when field is missing")
	}
	if value != raw {
		t.Errorf("Expected raw text fallback, got %q", value)
	}
}
