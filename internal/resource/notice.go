package resource

// Level of a notice.
type Level string

// Notice levels.
const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a user visible message produced by a manager operation.
type Notice struct {
	Level Level
	Text  string
}
