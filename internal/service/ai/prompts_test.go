package ai_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"recap/backend/internal/service/ai"
)

func TestSystemPreamble_FixesRole(t *testing.T) {
	require.Contains(t, ai.SystemPreamble, "expert at creating structured summaries")
	require.Contains(t, ai.SystemPreamble, "Follow the user's instructions precisely")
}

func TestBuildUserPrompt_Order(t *testing.T) {
	prompt := ai.BuildUserPrompt("List action items only.", "Team met at 10am...")

	instrIdx := strings.Index(prompt, "List action items only.")
	transcriptIdx := strings.Index(prompt, "Team met at 10am...")
	require.GreaterOrEqual(t, instrIdx, 0)
	require.Greater(t, transcriptIdx, instrIdx, "instruction must precede transcript")
}

func TestBuildUserPrompt_BlankLineSeparator(t *testing.T) {
	prompt := ai.BuildUserPrompt("Summarize", "some transcript")
	require.Contains(t, prompt, "Summarize\n\nTranscript:\nsome transcript")
}
