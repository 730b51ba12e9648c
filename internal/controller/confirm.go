package controller

// DeletePrompt is the question asked before a delete.
const DeletePrompt = "Are you sure you want to delete this task?"

// Confirmer answers a blocking yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt).
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Answer returns a Confirmer that always gives the same reply.
func Answer(yes bool) Confirmer {
	return ConfirmFunc(func(string) bool { return yes })
}
