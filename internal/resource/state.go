package resource

// Op names a store operation issued by a manager.
type Op string

// Operations reported in errors, metrics and the Submitting state.
const (
	OpList   Op = "list"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// State is the dialog state of a manager. The set of states is closed.
type State interface {
	state()
}

// Idle means no dialog is open.
type Idle struct{}

// Creating holds the draft of a new record.
type Creating[T any] struct {
	Draft T
}

// Editing holds the draft of the single record being edited.
type Editing[T any] struct {
	ID    uint64
	Draft T
}

// ConfirmingDelete waits for the user to confirm removal of ID.
type ConfirmingDelete struct {
	ID uint64
}

// Submitting is set while a store call is in flight. ID is zero for creates.
type Submitting struct {
	Op Op
	ID uint64
}

func (Idle) state()             {}
func (Creating[T]) state()      {}
func (Editing[T]) state()       {}
func (ConfirmingDelete) state() {}
func (Submitting) state()       {}
