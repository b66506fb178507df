package domain

// ProviderResponse is a lenient decode target for provider success payloads.
// The two providers, and even two call surfaces of the same provider, do not
// agree on where the answer text lives, so the envelope carries every shape
// observed so far and extraction probes them in order.
type ProviderResponse struct {
	// Choices is the chat-completions shape of the text provider.
	Choices []Choice `json:"choices"`

	// Candidates is the nested candidate shape of the multimodal provider.
	Candidates []Candidate `json:"candidates"`

	// Text is the flattened convenience field some SDK surfaces expose.
	Text string `json:"text"`
}

// Choice is a single chat-completion candidate.
type Choice struct {
	Message ChoiceMessage `json:"message"`
	Text    string        `json:"text"`
}

// ChoiceMessage is the message body of a chat-completion choice.
type ChoiceMessage struct {
	Content string `json:"content"`
}

// Candidate is a single generation candidate in the nested form.
type Candidate struct {
	Content CandidateContent `json:"content"`
}

// CandidateContent holds the parts of a candidate.
type CandidateContent struct {
	Parts []CandidatePart `json:"parts"`
}

// CandidatePart is one text part of a candidate.
type CandidatePart struct {
	Text string `json:"text"`
}

// ExtractStrategy probes one known response shape and reports the answer
// text if that shape is populated.
type ExtractStrategy func(*ProviderResponse) (string, bool)

// strategies is ordered: chat-completion choices first, then the nested
// candidate form, then the flattened convenience field. First hit wins.
var strategies = []ExtractStrategy{
	fromChoices,
	fromCandidates,
	fromText,
}

func fromChoices(r *ProviderResponse) (string, bool) {
	if len(r.Choices) == 0 {
		return "", false
	}
	if content := r.Choices[0].Message.Content; content != "" {
		return content, true
	}
	if text := r.Choices[0].Text; text != "" {
		return text, true
	}
	return "", false
}

func fromCandidates(r *ProviderResponse) (string, bool) {
	if len(r.Candidates) == 0 {
		return "", false
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == "" {
		return "", false
	}
	return parts[0].Text, true
}

func fromText(r *ProviderResponse) (string, bool) {
	return r.Text, r.Text != ""
}

// Extract walks the strategy chain and returns the first non-empty answer.
// ok is false when no known shape yielded text; extraction never fails
// harder than that.
func Extract(r *ProviderResponse) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, strategy := range strategies {
		if text, ok := strategy(r); ok {
			return text, true
		}
	}
	return "", false
}

// Fixed answers used when no known shape yielded text.
const (
	fallbackEnglish   = "No remedy found."
	fallbackMalayalam = "പരിഹാരം കണ്ടെത്താനായില്ല."
)

// ExtractOrFallback extracts an answer and substitutes a fixed localized
// message when every shape comes up empty.
func ExtractOrFallback(r *ProviderResponse, lang string) string {
	if text, ok := Extract(r); ok {
		return text
	}
	if lang == LangMalayalam {
		return fallbackMalayalam
	}
	return fallbackEnglish
}
