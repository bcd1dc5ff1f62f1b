package generation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/recall-app/recall-api/internal/domain"
)

// Default prompt builder tunables. The substance threshold and the
// truncation limit drifted across iterations of the original app, so
// both are configuration rather than constants baked into the builder.
const (
	DefaultMinDocumentChars  = 80
	DefaultMaxDocumentChars  = 40000
	DefaultEnrichmentPercent = 40
)

// TruncationMarker is appended to embedded document text that was cut
// at the configured maximum length.
const TruncationMarker = "[... document truncated ...]"

// Document markers delimiting the embedded text in grounded prompts.
const (
	documentStartMarker = "---DOCUMENT START---"
	documentEndMarker   = "---DOCUMENT END---"
)

// PromptConfig holds the tunables of the prompt builder. The zero value
// selects the defaults above.
type PromptConfig struct {
	// MinDocumentChars is the minimum trimmed document length for
	// document-grounded mode. Shorter text falls back to topic-only mode.
	MinDocumentChars int

	// MaxDocumentChars is the maximum document length embedded verbatim;
	// longer text is cut and marked.
	MaxDocumentChars int

	// EnrichmentPercent bounds the fraction of beyond-text questions
	// allowed when enrichment is enabled.
	EnrichmentPercent int
}

// DefaultPromptConfig returns the default prompt builder tunables.
func DefaultPromptConfig() PromptConfig {
	return PromptConfig{
		MinDocumentChars:  DefaultMinDocumentChars,
		MaxDocumentChars:  DefaultMaxDocumentChars,
		EnrichmentPercent: DefaultEnrichmentPercent,
	}
}

// withDefaults fills unset fields with the default values.
func (c PromptConfig) withDefaults() PromptConfig {
	if c.MinDocumentChars <= 0 {
		c.MinDocumentChars = DefaultMinDocumentChars
	}
	if c.MaxDocumentChars <= 0 {
		c.MaxDocumentChars = DefaultMaxDocumentChars
	}
	if c.EnrichmentPercent <= 0 {
		c.EnrichmentPercent = DefaultEnrichmentPercent
	}
	return c
}

// DocumentGrounded reports whether the document text carries enough
// substance to ground generation on it. Text below the threshold is
// treated as absent and generation proceeds in topic-only mode.
func (c PromptConfig) DocumentGrounded(documentText string) bool {
	return len(strings.TrimSpace(documentText)) >= c.withDefaults().MinDocumentChars
}

// PromptInput carries the resolved inputs of the prompt builder.
type PromptInput struct {
	Topic             string
	Count             int
	DocumentText      string
	EnrichmentEnabled bool
	Language          domain.Language
}

// BuildPrompt deterministically renders the generation instruction for
// the given inputs. It has no side effects and cannot fail: mode
// selection, grounding policy, truncation, and localization are all
// resolved here so the orchestrator sends a single opaque string to the
// backend.
func BuildPrompt(in PromptInput, cfg PromptConfig) string {
	cfg = cfg.withDefaults()

	text, ok := promptTexts[in.Language]
	if !ok {
		text = promptTexts[domain.LanguageEnglish]
	}

	if cfg.DocumentGrounded(in.DocumentText) {
		return buildGroundedPrompt(in, cfg, text)
	}
	return buildTopicPrompt(in, text)
}

// buildGroundedPrompt renders the document-grounded instruction. The
// topic is deliberately absent from the rendered text: topics are often
// derived from filenames and must never steer question content.
func buildGroundedPrompt(in PromptInput, cfg PromptConfig, text promptText) string {
	var b strings.Builder

	b.WriteString(text.groundedRole)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf(text.groundedCreate, in.Count))
	b.WriteString("\n\n")

	b.WriteString(text.rulesHeader)
	b.WriteString("\n")
	b.WriteString("- " + text.ruleAnswerable + "\n")
	b.WriteString("- " + text.ruleNoMetadata + "\n")
	b.WriteString("- " + text.badExamples + "\n")
	b.WriteString("- " + text.goodExamples + "\n")
	if in.EnrichmentEnabled {
		b.WriteString("- " + fmt.Sprintf(text.enrichmentRule, cfg.EnrichmentPercent) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(text.titleRule)
	b.WriteString("\n\n")

	doc, truncated := truncateDocument(in.DocumentText, cfg.MaxDocumentChars)
	b.WriteString(documentStartMarker)
	b.WriteString("\n")
	b.WriteString(doc)
	if truncated {
		b.WriteString("\n")
		b.WriteString(TruncationMarker)
	}
	b.WriteString("\n")
	b.WriteString(documentEndMarker)
	b.WriteString("\n\n")

	b.WriteString(text.jsonContract)
	return b.String()
}

// buildTopicPrompt renders the simpler topic-only instruction.
func buildTopicPrompt(in PromptInput, text promptText) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf(text.topicRole, in.Count, in.Topic))
	b.WriteString("\n")
	b.WriteString(text.topicCoverage)
	b.WriteString("\n\n")
	b.WriteString(text.titleRule)
	b.WriteString("\n\n")
	b.WriteString(text.jsonContract)
	return b.String()
}

// truncateDocument cuts text at max bytes without splitting a rune,
// reporting whether a cut happened.
func truncateDocument(text string, max int) (string, bool) {
	if len(text) <= max {
		return text, false
	}

	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max], true
}

// promptText holds the localized instruction fragments for one
// language. Only the instructions are localized; the model writes card
// content in the language of the source material.
type promptText struct {
	groundedRole   string
	groundedCreate string
	rulesHeader    string
	ruleAnswerable string
	ruleNoMetadata string
	badExamples    string
	goodExamples   string
	enrichmentRule string
	titleRule      string
	topicRole      string
	topicCoverage  string
	jsonContract   string
}

var promptTexts = map[domain.Language]promptText{
	domain.LanguageEnglish: {
		groundedRole:   "You are an expert tutor creating study flashcards.",
		groundedCreate: "Create exactly %d flashcards based only on the document text between the markers below.",
		rulesHeader:    "Grounding rules:",
		ruleAnswerable: "Every question must be answerable directly from the document text.",
		ruleNoMetadata: "Never create questions about the filename, the document title, the file format, the author, or any other metadata about the document itself.",
		badExamples:    `Bad examples, never produce questions like these: "What is the name of this document?", "What format is this file?", "Who created this document?"`,
		goodExamples:   "Good examples: questions about the concepts, facts, definitions, and relationships stated in the text.",
		enrichmentRule: "Up to %d%% of the questions may go beyond the literal text as long as they stay topically connected to it. The remaining questions must be answerable directly from the text.",
		titleRule:      "Also choose a short title of 3 to 5 words summarizing the main themes of the content.",
		topicRole:      "You are an expert tutor. Create exactly %d flashcards about the topic: %q.",
		topicCoverage:  "Cover the topic from fundamental to advanced concepts.",
		jsonContract: "Return valid JSON only. The response must be a JSON object with this structure:\n" +
			"{\n" +
			"  \"title\": \"A short, 3-5 word title for this deck based on the content\",\n" +
			"  \"cards\": [\n" +
			"    {\n" +
			"      \"question\": \"Concept question\",\n" +
			"      \"answer\": \"Clear, concise answer\"\n" +
			"    }\n" +
			"  ]\n" +
			"}\n\n" +
			"Do not include markdown formatting like ```json. Return only the raw JSON string.",
	},
	domain.LanguageIndonesian: {
		groundedRole:   "Anda adalah tutor ahli yang membuat kartu belajar.",
		groundedCreate: "Buat tepat %d kartu belajar hanya berdasarkan teks dokumen di antara penanda di bawah ini.",
		rulesHeader:    "Aturan keterikatan pada teks:",
		ruleAnswerable: "Setiap pertanyaan harus dapat dijawab langsung dari teks dokumen.",
		ruleNoMetadata: "Jangan pernah membuat pertanyaan tentang nama file, judul dokumen, format file, penulis, atau metadata lain tentang dokumen itu sendiri.",
		badExamples:    `Contoh buruk, jangan pernah membuat pertanyaan seperti ini: "Apa nama dokumen ini?", "Apa format file ini?", "Siapa yang membuat dokumen ini?"`,
		goodExamples:   "Contoh baik: pertanyaan tentang konsep, fakta, definisi, dan hubungan yang dinyatakan dalam teks.",
		enrichmentRule: "Maksimal %d%% pertanyaan boleh melampaui isi teks asalkan tetap terkait dengan topiknya. Sisanya harus dapat dijawab langsung dari teks.",
		titleRule:      "Pilih juga judul singkat 3 sampai 5 kata yang merangkum tema utama konten.",
		topicRole:      "Anda adalah tutor ahli. Buat tepat %d kartu belajar tentang topik: %q.",
		topicCoverage:  "Cakup topik dari konsep dasar hingga lanjutan.",
		jsonContract: "Kembalikan JSON yang valid saja. Respons harus berupa objek JSON dengan struktur berikut:\n" +
			"{\n" +
			"  \"title\": \"Judul singkat 3-5 kata untuk dek ini berdasarkan konten\",\n" +
			"  \"cards\": [\n" +
			"    {\n" +
			"      \"question\": \"Pertanyaan konsep\",\n" +
			"      \"answer\": \"Jawaban yang jelas dan ringkas\"\n" +
			"    }\n" +
			"  ]\n" +
			"}\n\n" +
			"Jangan sertakan format markdown seperti ```json. Kembalikan hanya string JSON mentah.",
	},
}
