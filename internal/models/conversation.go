package models

type MessageSender string

const (
	SenderUser      MessageSender = "user"
	SenderAssistant MessageSender = "ai"
)

// MessageFile describes an attachment on a stored message. Only the
// descriptor survives on the message log; file bytes are sent to the model
// and then discarded.
type MessageFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Message is one entry in a conversation log. Text may be empty when only
// files were attached. ContextTenderID snapshots which tender was bound to
// the conversation when the message was sent.
type Message struct {
	Sender          MessageSender `json:"sender"`
	Text            string        `json:"text"`
	Files           []MessageFile `json:"files,omitempty"`
	ContextTenderID *int          `json:"contextTenderId,omitempty"`
}

// Conversation is one chat thread with the assistant. At most one tender
// may be bound as context at a time; the binding lives on the record itself
// so reopening a conversation restores it.
type Conversation struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Messages        []Message `json:"messages"`
	ContextTenderID *int      `json:"contextTenderId"`
}

// PendingFile is an attachment staged for the next turn, bytes included.
type PendingFile struct {
	Name     string
	MIMEType string
	Size     int64
	Data     []byte
}
