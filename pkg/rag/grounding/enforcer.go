package grounding

import (
	"context"
	"log"
	"strings"
	"time"

	"ai-medassist-be/internal/constant"
	"ai-medassist-be/pkg/llm"
	"ai-medassist-be/pkg/rag/prompt"
)

// Outcome tags what the normalization step decided about the raw model
// output, so callers never re-inspect the text to learn whether the model
// refused.
type Outcome string

const (
	OutcomeGrounded Outcome = "grounded-answer"
	OutcomeRefusal  Outcome = "refusal-sentinel"
)

// Result is the enforcer's verdict for one turn. When Errored is set the
// text is the fixed failure message and Outcome is empty.
type Result struct {
	Text    string
	Errored bool
	Outcome Outcome
}

// Enforcer mediates every model call: it builds the instruction envelope,
// invokes the model once with a bounded wait, and post-processes the raw
// answer so it is verifiably restricted to the supplied context. Stateless
// across calls.
type Enforcer struct {
	llmProvider llm.LLMProvider
	visionModel string
	timeout     time.Duration
	logger      *log.Logger
}

func NewEnforcer(llmProvider llm.LLMProvider, visionModel string, logger *log.Logger) *Enforcer {
	return &Enforcer{
		llmProvider: llmProvider,
		visionModel: visionModel,
		timeout:     constant.ModelCallTimeout,
		logger:      logger,
	}
}

// Answer runs one grounded turn. history is prior conversation turns
// (presentation context only); images are base64 payloads from the request.
// Model failures and timeouts come back as an errored Result, never as an
// error value: a failed model call is a terminal outcome for the turn, not
// a fault to propagate.
func (e *Enforcer) Answer(
	ctx context.Context,
	question string,
	contextBlock string,
	mode Mode,
	images []string,
	history []llm.Message,
) Result {

	envelope := prompt.NewEnvelopeBuilder(string(mode), contextBlock, question).Build()

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleSystem, Content: constant.SystemPolicyV1})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: envelope})

	options := []llm.Option{llm.WithTemperature(constant.ModelTemperature)}
	if len(images) > 0 {
		// Image turns need the multimodal variant; the text model ignores
		// image channels entirely.
		options = append(options, llm.WithModel(e.visionModel), llm.WithImages(images...))
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.llmProvider.Chat(callCtx, messages, options...)
	if err != nil {
		e.logger.Printf("[GROUNDING] model call failed: %v", err)
		return Result{
			Text:    constant.ModelFailureMessage,
			Errored: true,
		}
	}

	text, outcome := normalize(raw)
	if outcome == OutcomeGrounded {
		text = injectDisclaimer(text, mode)
	}

	return Result{
		Text:    text,
		Errored: false,
		Outcome: outcome,
	}
}

// normalize collapses any output containing the refusal sentinel to exactly
// the canonical sentinel string. The substring match is deliberately broad:
// it guards against partial hallucination appended around a correct refusal.
func normalize(raw string) (string, Outcome) {
	sentinel := strings.TrimSuffix(constant.RefusalSentinel, ".")
	if strings.Contains(strings.ToLower(raw), strings.ToLower(sentinel)) {
		return constant.RefusalSentinel, OutcomeRefusal
	}
	return strings.TrimSpace(raw), OutcomeGrounded
}

// injectDisclaimer appends the patient disclaimer unless the answer already
// carries it verbatim. Doctor mode never gets one.
func injectDisclaimer(text string, mode Mode) string {
	if mode != ModePatient {
		return text
	}
	if strings.Contains(text, constant.PatientDisclaimer) {
		return text
	}
	return text + "\n\n" + constant.PatientDisclaimer
}
