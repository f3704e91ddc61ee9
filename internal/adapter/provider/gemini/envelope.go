package gemini

import (
	"strings"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
)

// generateRequest is the body of a generateContent call.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse mirrors the parts of the response envelope we read.
// Every level may be absent, notably when the safety filter rejects output.
type generateResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// text navigates candidates[0].content.parts[0].text.
func (r generateResponse) text() (string, bool) {
	if len(r.Candidates) == 0 {
		return "", false
	}
	c := r.Candidates[0].Content
	if c == nil || len(c.Parts) == 0 || c.Parts[0].Text == nil {
		return "", false
	}
	if strings.TrimSpace(*c.Parts[0].Text) == "" {
		return "", false
	}
	return *c.Parts[0].Text, true
}

// blockReason reports why the upstream produced no text, if it said so.
func (r generateResponse) blockReason() string {
	if r.PromptFeedback != nil && r.PromptFeedback.BlockReason != "" {
		return r.PromptFeedback.BlockReason
	}
	if len(r.Candidates) > 0 {
		return r.Candidates[0].FinishReason
	}
	return ""
}

func singleTurn(prompt string) generateRequest {
	return generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}
}

func conversation(history []domain.ChatMessage) generateRequest {
	contents := make([]content, 0, len(history))
	for _, m := range history {
		contents = append(contents, content{Role: string(m.Role), Parts: []part{{Text: m.Text}}})
	}
	return generateRequest{Contents: contents}
}
