package prompt

import (
	"fmt"
	"strings"

	"github.com/hanifwidyanto/kirana/domain/entities"
)

// DefaultLocale is used when a feature input carries no locale.
const DefaultLocale = "en"

// Prompt is the system instruction plus the user instruction handed to the
// completion gateway.
type Prompt struct {
	System string
	User   string
}

// HistoryItem is a past interaction mapped into the shape the assembler
// renders: the generated text plus the user's recorded disposition.
type HistoryItem struct {
	Text        string
	Disposition entities.Disposition
}

// HistoryFromInteractions maps persisted interaction records into history
// items for prompt rendering.
func HistoryFromInteractions(interactions []*entities.Interaction) []HistoryItem {
	items := make([]HistoryItem, 0, len(interactions))
	for _, in := range interactions {
		items = append(items, HistoryItem{Text: in.Content, Disposition: in.Disposition})
	}
	return items
}

// BuildAffirmationPrompt builds the affirmation generation prompt. Every
// history item is rendered verbatim so the generator can be instructed never
// to reproduce text the user has already seen.
func BuildAffirmationPrompt(locale string, history []HistoryItem) Prompt {
	system := affirmationSystemPrompt + localeDirective(locale)

	var user strings.Builder
	user.WriteString("Write a new affirmation for me.\n")

	if len(history) > 0 {
		user.WriteString("\nMy past affirmations and how I felt about them:\n")
		for _, item := range history {
			fmt.Fprintf(&user, "- %q (%s)\n", item.Text, item.Disposition)
		}
		user.WriteString("\nNever repeat the exact text of any affirmation listed above. ")
		user.WriteString("Lean toward the tone of the ones I liked or favorited and away from the ones I disliked.\n")
	}

	return Prompt{System: system, User: user.String()}
}

// BuildWellnessPrompt builds the wellness chat prompt for one new visitor
// message. Conversation history travels separately as gateway chat turns.
func BuildWellnessPrompt(message, locale string) Prompt {
	return Prompt{
		System: wellnessSystemPrompt + localeDirective(locale),
		User:   message,
	}
}

// BuildInsightPrompt builds the tech-insight prompt for a topic.
func BuildInsightPrompt(topic, locale string) Prompt {
	return Prompt{
		System: insightSystemPrompt + localeDirective(locale),
		User:   "Write a technical insight about: " + topic,
	}
}

// BuildDeepDivePrompt builds the case-study prompt for a resolved project.
func BuildDeepDivePrompt(project entities.Project) Prompt {
	var user strings.Builder
	user.WriteString("Write a deep-dive case study for this project.\n\n")
	fmt.Fprintf(&user, "Name: %s\n", project.Name)
	fmt.Fprintf(&user, "Description: %s\n", project.Description)
	if len(project.Stack) > 0 {
		fmt.Fprintf(&user, "Stack: %s\n", strings.Join(project.Stack, ", "))
	}
	if project.Year != 0 {
		fmt.Fprintf(&user, "Year: %d\n", project.Year)
	}
	return Prompt{System: deepDiveSystemPrompt, User: user.String()}
}

// BuildSearchPrompt builds the retrieval-augmented answer prompt from the
// deduplicated candidate list.
func BuildSearchPrompt(query string, docs []entities.RetrievedDocument) Prompt {
	var user strings.Builder
	user.WriteString("Context entries:\n")
	for _, doc := range docs {
		fmt.Fprintf(&user, "- [%s] %s\n", doc.Identifier, doc.Metadata["text"])
	}
	user.WriteString("\nVisitor query: " + query + "\n")
	return Prompt{System: searchSystemPrompt, User: user.String()}
}

func localeDirective(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = DefaultLocale
	}
	return fmt.Sprintf("\nAlways respond in the language identified by the locale code %q.\n", locale)
}
