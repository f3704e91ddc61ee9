package domain

// ChatRole identifies the author of a chat turn.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// IsValid checks if the role is a known value.
func (r ChatRole) IsValid() bool {
	return r == ChatRoleUser || r == ChatRoleModel
}

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role ChatRole
	Text string
}
