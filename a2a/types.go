package a2a

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MessageRole indicates the originator of a message.
type MessageRole string

const (
	// MessageRoleUser is the role for messages from the user/client.
	MessageRoleUser MessageRole = "user"
	// MessageRoleAgent is the role for messages from the agent/server.
	MessageRoleAgent MessageRole = "agent"
)

// Message represents a single exchange between a user and an agent.
//
// The wire names are the snake_case fields Agent Zero expects
// (message_id, context_id), not the camelCase of the A2A 0.3 spec.
type Message struct {
	Role      MessageRole `json:"role"`
	Parts     []Part      `json:"parts"`
	Kind      string      `json:"kind"`
	MessageID string      `json:"message_id"`
	ContextID string      `json:"context_id,omitempty"`
}

// NewMessage creates a new message with the given role and parts.
// The message ID is a fresh UUID, unique per send attempt.
func NewMessage(role MessageRole, parts ...Part) Message {
	return Message{
		Role:      role,
		Parts:     parts,
		Kind:      "message",
		MessageID: uuid.New().String(),
	}
}

// TextContent returns the concatenated text from all TextParts in the message.
func (m Message) TextContent() string {
	var text string
	for _, p := range m.Parts {
		if tp, ok := p.(TextPart); ok {
			text += tp.Text
		}
	}
	return text
}

// UnmarshalJSON implements custom JSON unmarshaling for Message.
// This is needed because Parts is a []Part interface which can't be
// directly unmarshaled.
func (m *Message) UnmarshalJSON(data []byte) error {
	type messageAlias Message
	var tmp struct {
		messageAlias
		Parts []json.RawMessage `json:"parts"`
	}

	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	*m = Message(tmp.messageAlias)
	m.Parts = make([]Part, 0, len(tmp.Parts))

	for _, raw := range tmp.Parts {
		part, err := UnmarshalPart(raw)
		if err != nil {
			return err
		}
		m.Parts = append(m.Parts, part)
	}

	return nil
}

// Part represents a segment of a message (text, file, or data).
type Part interface {
	partMarker()
	GetKind() string
}

// TextPart represents a text segment within a message.
type TextPart struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func (TextPart) partMarker()       {}
func (p TextPart) GetKind() string { return p.Kind }

// NewTextPart creates a new TextPart with the given text.
func NewTextPart(text string) TextPart {
	return TextPart{Kind: "text", Text: text}
}

// FilePart represents a file included in a message.
type FilePart struct {
	Kind string      `json:"kind"`
	File FileContent `json:"file"`
}

func (FilePart) partMarker()       {}
func (p FilePart) GetKind() string { return p.Kind }

// FileContent represents inline file content attached to a message.
type FileContent struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Bytes    string `json:"bytes"` // Base64 encoded
}

// NewFilePart creates a FilePart from raw content. The content is
// base64-encoded and tagged with the generic binary MIME type.
func NewFilePart(name string, content []byte) FilePart {
	return FilePart{
		Kind: "file",
		File: FileContent{
			Name:     name,
			MimeType: "application/octet-stream",
			Bytes:    base64.StdEncoding.EncodeToString(content),
		},
	}
}

// NewFilePartFromPath reads the file at path and returns it as a FilePart.
// The part's name is the file's base name. A missing or unreadable file is
// an error, so attachment failures surface before any network activity.
func NewFilePartFromPath(path string) (FilePart, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FilePart{}, fmt.Errorf("file not found: %s: %w", path, err)
	}
	return NewFilePart(filepath.Base(path), content), nil
}

// DataPart represents arbitrary structured data (JSON) within a message.
type DataPart struct {
	Kind string `json:"kind"`
	Data any    `json:"data,omitempty"`
}

func (DataPart) partMarker()       {}
func (p DataPart) GetKind() string { return p.Kind }

// UnmarshalPart unmarshals a Part from JSON, dispatching on the kind field.
func UnmarshalPart(data []byte) (Part, error) {
	var raw struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	switch raw.Kind {
	case "text":
		var p TextPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case "file":
		var p FilePart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		// Unknown part type, return as DataPart
		var p DataPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	}
}

// SendRequest is the envelope POSTed to the agent endpoint.
type SendRequest struct {
	Message Message `json:"message"`
}

// SendResponse is the reply to a message send.
type SendResponse struct {
	Result Result `json:"result"`
}

// Result carries the server-assigned context and the conversation history.
type Result struct {
	ContextID string    `json:"context_id"`
	History   []Message `json:"history"`
}

// AgentCard is the metadata document served from .well-known/agent.json.
type AgentCard struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DisplayName returns the card's name, or a placeholder when absent.
func (c AgentCard) DisplayName() string {
	if c.Name == "" {
		return "Unknown"
	}
	return c.Name
}

// ShortDescription returns the card's description truncated to max runes,
// or a placeholder when absent.
func (c AgentCard) ShortDescription(max int) string {
	desc := c.Description
	if desc == "" {
		desc = "No description"
	}
	if r := []rune(desc); len(r) > max {
		return string(r[:max])
	}
	return desc
}
