package prompt

import (
	"strings"

	"ai-medassist-be/internal/constant"
)

// EnvelopeBuilder assembles the per-turn instruction envelope: mode tag,
// context block, then the user's question. The static system policy travels
// separately as the system message.
type EnvelopeBuilder struct {
	mode         string
	contextBlock string
	question     string
}

func NewEnvelopeBuilder(mode, contextBlock, question string) *EnvelopeBuilder {
	return &EnvelopeBuilder{
		mode:         mode,
		contextBlock: contextBlock,
		question:     question,
	}
}

func (b *EnvelopeBuilder) Build() string {
	var envelope strings.Builder

	envelope.WriteString("<mode>")
	envelope.WriteString(b.mode)
	envelope.WriteString("</mode>\n\n")

	envelope.WriteString("<retrieved_context>\n")
	envelope.WriteString(b.contextBlock)
	envelope.WriteString("\n</retrieved_context>\n\n")

	envelope.WriteString("<question>\n")
	question := b.question
	if strings.TrimSpace(question) == "" {
		question = constant.ImageAnalysisDirective
	}
	envelope.WriteString(question)
	envelope.WriteString("\n</question>")

	return envelope.String()
}
