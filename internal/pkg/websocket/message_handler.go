package websocket

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TopicAll subscribes a client to every event
const TopicAll = "all"

// Topic prefixes, each followed by a resource id
const (
	topicCourse   = "course"
	topicRoom     = "room"
	topicLecturer = "lecturer"
)

// CourseTopic names the feed of a single course
func CourseTopic(id uuid.UUID) string { return topicCourse + ":" + id.String() }

// RoomTopic names the feed of a single room
func RoomTopic(id uuid.UUID) string { return topicRoom + ":" + id.String() }

// LecturerTopic names the feed of a single lecturer
func LecturerTopic(id uuid.UUID) string { return topicLecturer + ":" + id.String() }

// ValidateTopic accepts "all" or "<course|room|lecturer>:<uuid>".
func ValidateTopic(topic string) error {
	if topic == TopicAll {
		return nil
	}
	kind, id, ok := strings.Cut(topic, ":")
	if !ok {
		return fmt.Errorf("invalid topic %q", topic)
	}
	switch kind {
	case topicCourse, topicRoom, topicLecturer:
	default:
		return fmt.Errorf("unknown topic kind %q", kind)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid topic id %q", id)
	}
	return nil
}

// Command is a message a client sends to change its subscriptions
type Command struct {
	Action string `json:"action"` // subscribe | unsubscribe
	Topic  string `json:"topic"`
}

// Reply answers a client command
type Reply struct {
	Type   string `json:"type"` // ack | error
	Action string `json:"action,omitempty"`
	Topic  string `json:"topic,omitempty"`
	Error  string `json:"error,omitempty"`
}

// handleCommand validates cmd and hands it with its reply to the hub loop
func (h *Hub) handleCommand(client *Client, cmd Command) {
	sub := subscription{client: client, topic: cmd.Topic}
	reply := Reply{Type: "ack", Action: cmd.Action, Topic: cmd.Topic}

	topicErr := ValidateTopic(cmd.Topic)
	switch {
	case topicErr != nil:
		reply = Reply{Type: "error", Action: cmd.Action, Error: topicErr.Error()}
	case cmd.Action == "subscribe":
		sub.apply, sub.add = true, true
	case cmd.Action == "unsubscribe":
		sub.apply = true
	default:
		reply = Reply{Type: "error", Action: cmd.Action, Error: "unknown action"}
	}

	sub.reply, _ = json.Marshal(reply)
	h.subscriptions <- sub
}
