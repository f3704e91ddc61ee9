package studyplan

// BuildPlanPrompt asks for a JSON array of short learning steps for topic.
// The topic is inserted as typed. The caller rejects empty topics before
// calling.
func BuildPlanPrompt(topic string) string {
	return `You are a curriculum designer. Create a step by step learning roadmap for the topic "` + topic + `".
Reply with ONLY a JSON array of short step strings, ordered from first to last, and nothing else.
Do not use markdown emphasis, bold or italic markers, or code fences.
Example of the expected shape: ["Step 1", "Step 2"]`
}

// BuildDetailPrompt asks for a short elaboration of one task within topic.
func BuildDetailPrompt(task, topic string) string {
	return `Explain the learning step "` + task + `" from a study plan about "` + topic + `".
Answer in 2 to 3 informative sentences of plain prose.
Do not use markdown emphasis, bold or italic markers, headings, or list markers.`
}
