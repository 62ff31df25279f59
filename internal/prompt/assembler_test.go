package prompt

import (
	"strings"
	"testing"

	"github.com/hanifwidyanto/kirana/domain/entities"
)

func TestBuildAffirmationPromptRendersEveryHistoryItem(t *testing.T) {
	history := []HistoryItem{
		{Text: "I am enough exactly as I am.", Disposition: entities.DispositionFavorite},
		{Text: "Today I choose progress over perfection.", Disposition: entities.DispositionLiked},
		{Text: "I radiate limitless positivity.", Disposition: entities.DispositionDisliked},
	}

	p := BuildAffirmationPrompt("en", history)

	for _, item := range history {
		want := `"` + item.Text + `" (` + string(item.Disposition) + `)`
		if !strings.Contains(p.User, want) {
			t.Errorf("Expected user prompt to contain %s, got:\n%s", want, p.User)
		}
	}

	if !strings.Contains(p.User, "Never repeat the exact text") {
		t.Error("Expected no-repeat directive when history is supplied")
	}
}

func TestBuildAffirmationPromptWithoutHistory(t *testing.T) {
	p := BuildAffirmationPrompt("", nil)

	if strings.Contains(p.User, "Never repeat") {
		t.Error("No-repeat directive should be absent without history")
	}
	if !strings.Contains(p.System, `"affirmation"`) {
		t.Error("Expected system prompt to declare the JSON output contract")
	}
	if !strings.Contains(p.System, `locale code "en"`) {
		t.Errorf("Expected default locale directive, got:\n%s", p.System)
	}
}

func TestLocaleDirective(t *testing.T) {
	p := BuildWellnessPrompt("hello", "fr")
	if !strings.Contains(p.System, `locale code "fr"`) {
		t.Errorf("Expected fr locale directive, got:\n%s", p.System)
	}
}

func TestBuildInsightPromptDeclaresTagAllowList(t *testing.T) {
	p := BuildInsightPrompt("goroutine leaks", "en")

	for _, tag := range []string{"<h3>", "<p>", "<ul>", "<code>", "<pre>"} {
		if !strings.Contains(p.System, tag) {
			t.Errorf("Expected system prompt to allow %s", tag)
		}
	}
	if !strings.Contains(p.User, "goroutine leaks") {
		t.Errorf("Expected topic in user prompt, got %s", p.User)
	}
}

func TestBuildDeepDivePromptIncludesProjectFacts(t *testing.T) {
	project := entities.Project{
		Slug:        "atlas",
		Name:        "Atlas",
		Description: "Realtime fleet tracking dashboard.",
		Stack:       []string{"Go", "MongoDB"},
		Year:        2024,
	}

	p := BuildDeepDivePrompt(project)

	for _, want := range []string{"Atlas", "Realtime fleet tracking", "Go, MongoDB", "2024"} {
		if !strings.Contains(p.User, want) {
			t.Errorf("Expected user prompt to contain %q, got:\n%s", want, p.User)
		}
	}
}

func TestBuildSearchPromptRendersCandidates(t *testing.T) {
	docs := []entities.RetrievedDocument{
		{Identifier: "project:atlas", Metadata: map[string]string{"text": "Atlas. Fleet tracking."}},
		{Identifier: "skills:backend", Metadata: map[string]string{"text": "Backend: Go, Python."}},
	}

	p := BuildSearchPrompt("what did you build in Go?", docs)

	if !strings.Contains(p.User, "[project:atlas]") {
		t.Errorf("Expected candidate identifier in prompt, got:\n%s", p.User)
	}
	if !strings.Contains(p.User, "what did you build in Go?") {
		t.Error("Expected the query in the user prompt")
	}
}

func TestHistoryFromInteractions(t *testing.T) {
	interactions := []*entities.Interaction{
		{Content: "a", Disposition: entities.DispositionLiked},
		{Content: "b", Disposition: entities.DispositionFavorite},
	}

	items := HistoryFromInteractions(interactions)

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Text != "a" || items[0].Disposition != entities.DispositionLiked {
		t.Errorf("Unexpected first item: %+v", items[0])
	}
}
