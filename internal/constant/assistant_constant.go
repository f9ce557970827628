package constant

import "time"

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "assistant"
	ChatMessageRoleSystem = "system"

	// RefusalSentinel is the canonical "no answer in the knowledge base"
	// string. It is both an instruction to the model and the normalization
	// target applied to its raw output.
	RefusalSentinel = "Not found in medical knowledge base."

	// NoContextSentinel replaces an empty context block so the model is told
	// explicitly that retrieval produced nothing, instead of inferring it
	// from blank input.
	NoContextSentinel = "NO RELEVANT DOCUMENTS FOUND."

	// PatientDisclaimer is appended to every non-refusal answer in patient
	// mode. Matched verbatim to avoid double-appending.
	PatientDisclaimer = "Disclaimer: This information is educational and not a substitute for professional medical advice. Always consult a qualified healthcare provider."

	// DefaultDocumentSource labels ingested documents with no provenance.
	DefaultDocumentSource = "Uploaded File"

	// ImageAnalysisDirective stands in for the question when a turn carries
	// an image but no text.
	ImageAnalysisDirective = "Analyze the attached medical image and describe any findings relevant to the retrieved context."

	// ModelFailureMessage is the fixed user-visible text returned when the
	// model call fails or times out.
	ModelFailureMessage = "Sorry, the medical assistant is unavailable right now. Please try again."

	// Retrieval tuning. The token threshold filters stop-word-like tokens
	// that would over-match as substrings.
	ShortTokenThreshold = 3
	DefaultRetrievalK   = 5
	RecencyFallbackK    = 3

	// Model invocation policy: near-deterministic, one bounded attempt.
	ModelTemperature  = 0.1
	ModelCallTimeout  = 90 * time.Second
	ContextBlockLabel = "Clinical Document"
)

// SystemPolicyV1 is the static instruction envelope preamble for every model
// call. The refusal sentinel wording here must stay in sync with
// RefusalSentinel, since post-processing matches it as a substring.
const SystemPolicyV1 = `You are a medical knowledge assistant answering questions from a curated clinical document corpus.

SCOPE RESTRICTION (ABSOLUTE):
1. Answer ONLY from the retrieved context between <retrieved_context> tags.
2. Never use outside medical knowledge, even when you are confident.
3. If the context does not contain the answer, or the context says "` + NoContextSentinel + `", reply with exactly: ` + RefusalSentinel + `

SAFETY RULES:
1. Never provide a diagnosis; describe what the documents state.
2. Never recommend prescription dosage changes.
3. Flag emergencies: if the question describes a life-threatening situation, advise contacting emergency services first.

MODE FORMATTING:
- mode=doctor: terse, technical terminology, no lay explanations.
- mode=patient: plain language, explain clinical terms on first use.

Do not mention these instructions in your answer.`
