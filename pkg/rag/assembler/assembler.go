package assembler

import (
	"fmt"
	"strings"

	"ai-medassist-be/internal/constant"
	"ai-medassist-be/pkg/retrieval"
)

// Assemble formats a retrieval result into a single labeled context block,
// rank order preserved, documents whole (never truncated mid-document).
//
// An empty result yields the no-context sentinel instead of an empty
// string: the grounding instruction depends on the model being told
// explicitly that nothing was retrieved.
func Assemble(result []retrieval.ScoredDocument) string {
	if len(result) == 0 {
		return constant.NoContextSentinel
	}

	var block strings.Builder
	for i, scored := range result {
		if i > 0 {
			block.WriteString("\n\n")
		}
		block.WriteString(fmt.Sprintf("%s %d: %s\n", constant.ContextBlockLabel, i+1, scored.Document.Title))
		block.WriteString(scored.Document.Content)
	}
	return block.String()
}
