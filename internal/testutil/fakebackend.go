package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"tasklist/internal/service"
)

// FakeBackend is an HTTP server speaking the task REST API, backed by memory.
type FakeBackend struct {
	URL string

	mu       sync.Mutex
	tasks    []service.Task
	requests []string

	// Status, if non-zero, is returned for every request instead of handling it.
	// Set it before the first request, or use FailWith.
	Status int

	// ListBody, if non-empty, is written verbatim as the list response.
	ListBody string
}

// NewFakeBackend starts a FakeBackend and stops it when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	b := &FakeBackend{}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/get", b.handleList).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/add", b.handleAdd).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/update/{id}", b.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/api/v1/delete/{id}", b.handleDelete).Methods(http.MethodDelete)
	r.Use(b.record)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	b.URL = srv.URL
	return b
}

// AddTask seeds a task and returns its generated ID.
func (b *FakeBackend) AddTask(name string, age int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := uuid.NewString()
	b.tasks = append(b.tasks, service.Task{ID: id, Name: name, Age: age})
	return id
}

// Tasks returns a copy of the stored tasks.
func (b *FakeBackend) Tasks() []service.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]service.Task(nil), b.tasks...)
}

// FailWith makes every following request answer with status.
func (b *FakeBackend) FailWith(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Status = status
}

// Requests returns "METHOD path" for every request received.
func (b *FakeBackend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Method+" "+r.URL.Path)
		status := b.Status
		b.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func (b *FakeBackend) handleList(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	body := b.ListBody
	tasks := append([]service.Task{}, b.tasks...)
	b.mu.Unlock()

	if body != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"data": tasks})
}

func (b *FakeBackend) handleAdd(w http.ResponseWriter, r *http.Request) {
	var in service.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	id := b.AddTask(in.Name, in.Age)
	respondWithJSON(w, http.StatusCreated, map[string]any{"data": service.Task{ID: id, Name: in.Name, Age: in.Age}})
}

func (b *FakeBackend) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var in service.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, t := range b.tasks {
		if t.ID == id {
			b.tasks[i].Name = in.Name
			b.tasks[i].Age = in.Age
			respondWithJSON(w, http.StatusOK, map[string]any{"data": b.tasks[i]})
			return
		}
	}
	http.Error(w, "Task not found", http.StatusNotFound)
}

func (b *FakeBackend) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, t := range b.tasks {
		if t.ID == id {
			b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "Task not found", http.StatusNotFound)
}
