// Package prompt builds canonical outbound requests for each gateway
// endpoint: a system instruction plus user content, optionally multimodal.
package prompt

import (
	"fmt"

	"github.com/Rachiee-x/farmassist-backend/internal/domain"
)

// Translation instructions. The target language name is interpolated into
// the template verbatim.
const (
	translateToMalayalam = "You are a translator. Translate the user's text into Malayalam. " +
		"Reply with the translation only, no explanations or transliteration."
	translateTemplate = "You are a translator. Translate the user's text into %s. " +
		"Reply with the translation only, no explanations."
)

// Advisory personas for the remedy endpoint.
const (
	personaEnglish = "You are an experienced agricultural advisor helping farmers. " +
		"Give short, practical remedies for crop diseases in simple English, " +
		"covering organic and chemical treatment where relevant."
	personaMalayalam = "നിങ്ങൾ കർഷകരെ സഹായിക്കുന്ന പരിചയസമ്പന്നനായ ഒരു കാർഷിക ഉപദേഷ്ടാവാണ്. " +
		"വിളരോഗങ്ങൾക്ക് ലളിതമായ മലയാളത്തിൽ ഹ്രസ്വവും പ്രായോഗികവുമായ പരിഹാരങ്ങൾ നൽകുക."
)

// Remedy user-content templates per language.
const (
	remedyForEN        = "give remedy for %s"
	identifyEN         = "identify the disease in the image and give remedy"
	identifyWithHintEN = "identify the disease in the image and give remedy, it may be %s"

	remedyForML        = "%s എന്ന രോഗത്തിന് പരിഹാരം നൽകുക"
	identifyML         = "ചിത്രത്തിലെ രോഗം തിരിച്ചറിഞ്ഞ് പരിഹാരം നൽകുക"
	identifyWithHintML = "ചിത്രത്തിലെ രോഗം തിരിച്ചറിഞ്ഞ് പരിഹാരം നൽകുക, രോഗം %s ആയിരിക്കാം"
)

// assumedImageMIME is applied to every uploaded image. Callers send bare
// base64 with no content-type signal, so JPEG is assumed regardless of the
// true encoding. Known limitation.
const assumedImageMIME = "image/jpeg"

// Translate builds the outbound request for the translation endpoint.
func Translate(text, target string) domain.Request {
	instruction := translateToMalayalam
	if target != domain.LangMalayalam {
		instruction = fmt.Sprintf(translateTemplate, target)
	}
	return domain.Request{
		SystemInstruction: instruction,
		Parts:             []domain.Part{domain.TextPart(text)},
	}
}

// Chat builds the outbound request for the chat endpoint. Prior turns are
// carried through so the provider sees the whole conversation.
func Chat(message string, history []domain.Turn) domain.Request {
	return domain.Request{
		History: history,
		Parts:   []domain.Part{domain.TextPart(message)},
	}
}

// Remedy builds the outbound request for the remedy endpoint. The caller
// guarantees at least one of diseaseName / imageBase64 is set; when an image
// is present its part precedes the instruction text.
func Remedy(diseaseName, imageBase64, lang string) domain.Request {
	malayalam := lang == domain.LangMalayalam

	persona := personaEnglish
	if malayalam {
		persona = personaMalayalam
	}

	var text string
	switch {
	case imageBase64 == "":
		text = fmt.Sprintf(remedyForEN, diseaseName)
		if malayalam {
			text = fmt.Sprintf(remedyForML, diseaseName)
		}
	case diseaseName == "":
		text = identifyEN
		if malayalam {
			text = identifyML
		}
	default:
		text = fmt.Sprintf(identifyWithHintEN, diseaseName)
		if malayalam {
			text = fmt.Sprintf(identifyWithHintML, diseaseName)
		}
	}

	parts := make([]domain.Part, 0, 2)
	if imageBase64 != "" {
		parts = append(parts, domain.ImagePart(assumedImageMIME, imageBase64))
	}
	parts = append(parts, domain.TextPart(text))

	return domain.Request{
		SystemInstruction: persona,
		Parts:             parts,
	}
}
