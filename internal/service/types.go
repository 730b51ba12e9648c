// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Task represents a single task record as held by the backend.
type Task struct {
	ID   string
	Name string
	Age  int
}

// TaskInput is the request body for create and update.
type TaskInput struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// wireTask is the JSON shape of a task in list responses.
// Document-store backends key records by "_id"; "id" is accepted as well.
type wireTask struct {
	MongoID json.RawMessage `json:"_id"`
	ID      json.RawMessage `json:"id"`
	Name    string          `json:"name"`
	Age     json.RawMessage `json:"age"`
}

// UnmarshalJSON decodes a task, accepting "_id" or "id" and a numeric or
// numeric-string age.
func (t *Task) UnmarshalJSON(data []byte) error {
	var w wireTask
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	raw := w.MongoID
	if len(raw) == 0 || string(raw) == "null" {
		raw = w.ID
	}
	id, err := decodeID(raw)
	if err != nil {
		return err
	}
	age, err := decodeAge(w.Age)
	if err != nil {
		return err
	}

	*t = Task{ID: id, Name: w.Name, Age: age}
	return nil
}

// MarshalJSON encodes a task in the backend's list shape.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
		Age  int    `json:"age"`
	}{t.ID, t.Name, t.Age})
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", fmt.Errorf("task has no id")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		// An empty id could never be the target of an update.
		if strings.TrimSpace(s) == "" {
			return "", fmt.Errorf("task has an empty id")
		}
		return s, nil
	}
	n, err := decodeNumber(raw)
	if err != nil {
		return "", fmt.Errorf("invalid task id: %s", raw)
	}
	return n.String(), nil
}

// decodeAge accepts a JSON integer or a string holding one. Fractional or
// out-of-range values are rejected rather than truncated.
func decodeAge(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var s string
	if n, err := decodeNumber(raw); err == nil {
		s = n.String()
	} else if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("invalid task age: %s", raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	age, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid task age: %q", s)
	}
	return age, nil
}

func decodeNumber(raw json.RawMessage) (json.Number, error) {
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return "", err
	}
	return n, nil
}
