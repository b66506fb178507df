// Package domain holds the provider-agnostic request/response model shared by
// the prompt builder, the provider adapters and the HTTP handlers.
package domain

// LangMalayalam is the sentinel language code selecting Malayalam output.
// Any other non-empty value is treated as a free-form language name.
const LangMalayalam = "ml"

// Turn is one prior exchange in a conversation, as sent by the client.
// Role is "user" or "assistant"; adapters map it to their native role names.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ImageData is an inline base64-encoded image payload.
type ImageData struct {
	MimeType string
	Data     string
}

// Part is one piece of user content. Exactly one of Text or Image is set.
type Part struct {
	Text  string
	Image *ImageData
}

// Request is the canonical outbound request handed to a provider adapter.
// Invariants: at least one part is present, and when an image part exists
// the text part follows it.
type Request struct {
	SystemInstruction string
	History           []Turn
	Parts             []Part
}

// TextPart wraps text as a content part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// ImagePart wraps inline base64 image data as a content part.
func ImagePart(mimeType, data string) Part {
	return Part{Image: &ImageData{MimeType: mimeType, Data: data}}
}
