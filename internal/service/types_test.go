package service

import (
	"encoding/json"
	"testing"
)

func TestTask_UnmarshalIDFallback(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id": "abc", "name": "Alice", "age": 30}`), &task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "abc" {
		t.Errorf("expected ID abc, got %q", task.ID)
	}
}

func TestTask_UnmarshalPrefersMongoID(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"_id": "m1", "id": "x", "name": "Alice", "age": 30}`), &task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "m1" {
		t.Errorf("expected ID m1, got %q", task.ID)
	}
}

func TestTask_UnmarshalMissingID(t *testing.T) {
	var task Task
	err := json.Unmarshal([]byte(`{"name": "Alice", "age": 30}`), &task)
	if err == nil {
		t.Fatal("expected error for task without id")
	}
}

func TestTask_UnmarshalEmptyID(t *testing.T) {
	for _, body := range []string{
		`{"_id": "", "name": "Bob", "age": 25}`,
		`{"id": "   ", "name": "Bob", "age": 25}`,
	} {
		var task Task
		if err := json.Unmarshal([]byte(body), &task); err == nil {
			t.Errorf("%s: expected error, got %+v", body, task)
		}
	}
}

func TestTask_UnmarshalRejectsLossyAge(t *testing.T) {
	for _, age := range []string{`30.7`, `1e20`, `"30.5"`, `99999999999999999999`} {
		var task Task
		body := `{"_id": "x", "name": "Bob", "age": ` + age + `}`
		if err := json.Unmarshal([]byte(body), &task); err == nil {
			t.Errorf("age %s: expected error, got %+v", age, task)
		}
	}
}

func TestTask_UnmarshalStringAge(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"_id": "1", "name": "Bob", "age": " 42 "}`), &task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Age != 42 {
		t.Errorf("expected age 42, got %d", task.Age)
	}
}

func TestKindOf(t *testing.T) {
	err := &Error{Op: "list", Kind: KindMalformed}
	if KindOf(err) != KindMalformed {
		t.Errorf("expected malformed, got %s", KindOf(err))
	}
	if KindOf(json.Unmarshal([]byte("{"), &struct{}{})) != KindUnknown {
		t.Error("expected unknown kind for a plain error")
	}
}
