package prompt

import (
	"strings"
	"testing"

	"ai-medassist-be/internal/constant"
)

func TestEnvelopeBuild(t *testing.T) {
	envelope := NewEnvelopeBuilder("doctor", "Clinical Document 1: X\nbody", "What is the dose?").Build()

	for _, want := range []string{
		"<mode>doctor</mode>",
		"<retrieved_context>\nClinical Document 1: X\nbody\n</retrieved_context>",
		"<question>\nWhat is the dose?\n</question>",
	} {
		if !strings.Contains(envelope, want) {
			t.Errorf("envelope missing %q:\n%s", want, envelope)
		}
	}

	// Mode precedes context, context precedes question.
	if strings.Index(envelope, "<mode>") > strings.Index(envelope, "<retrieved_context>") {
		t.Error("mode tag must come before the context block")
	}
	if strings.Index(envelope, "<retrieved_context>") > strings.Index(envelope, "<question>") {
		t.Error("context block must come before the question")
	}
}

func TestEnvelopeBlankQuestionGetsImageDirective(t *testing.T) {
	envelope := NewEnvelopeBuilder("patient", constant.NoContextSentinel, "   ").Build()

	if !strings.Contains(envelope, constant.ImageAnalysisDirective) {
		t.Error("blank question should be replaced by the image analysis directive")
	}
}
