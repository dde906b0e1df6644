package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"agentboard/internal/model"
)

var ErrNotAnObject = errors.New("clipboard payload is not a node object")

// NewNode returns a blank node with a freshly minted id. Topic and content
// start empty on purpose: a new node must never inherit fields from whatever
// was selected when it was created.
func NewNode(used map[string]bool) (*model.Node, error) {
	id, err := NewID(used)
	if err != nil {
		return nil, err
	}
	return &model.Node{
		ID:       id,
		Topic:    "",
		Content:  "",
		Children: []*model.Node{},
	}, nil
}

// EncodeSubtree serializes a subtree to indented JSON for the clipboard.
func EncodeSubtree(n *model.Node) (string, error) {
	if n == nil {
		return "", errors.New("nil node")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// DecodeSubtree parses clipboard text as a node subtree. Non-object payloads
// (arrays, strings, numbers) are rejected; missing topic/content come back
// as empty strings.
func DecodeSubtree(text string) (*model.Node, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") {
		return nil, ErrNotAnObject
	}
	var n model.Node
	dec := json.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(&n); err != nil {
		return nil, err
	}
	if n.Children == nil {
		n.Children = []*model.Node{}
	}
	return &n, nil
}

// Rename commits an inline title edit: the transient id decoration is
// stripped before the topic is stored.
func Rename(n *model.Node, edited string) string {
	topic := CleanTopic(edited)
	n.Topic = topic
	return topic
}
