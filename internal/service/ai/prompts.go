package ai

// SystemPreamble fixes the assistant's role for summary generation. It is
// not user-configurable; the user's instruction rides in the user prompt.
const SystemPreamble = `You are an expert at creating structured summaries based on user instructions. Follow the user's instructions precisely.`

// BuildUserPrompt joins the user's instruction and the transcript, in that
// order, with blank-line separators.
func BuildUserPrompt(customPrompt, transcript string) string {
	return customPrompt + "\n\nTranscript:\n" + transcript
}
