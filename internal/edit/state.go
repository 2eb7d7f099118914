package edit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for form values that are out of range or unparsable.
	// Nothing is changed when it is returned.
	ErrInvalidInput = errors.New("edit: invalid input")
	// ErrNotApplicable is returned for commands that do not fit the graphic or state.
	ErrNotApplicable = errors.New("edit: command not applicable")
)

type State int

const (
	StateUndefined State = iota
	StateSelected
	StateEdit
	StateAddPoint
	StateAddNode
	StateDeleteNode
	StateSetOffset
)

func (s State) String() string {
	switch s {
	case StateUndefined:
		return "undefined"
	case StateSelected:
		return "selected"
	case StateEdit:
		return "edit"
	case StateAddPoint:
		return "add point"
	case StateAddNode:
		return "add node"
	case StateDeleteNode:
		return "delete node"
	case StateSetOffset:
		return "set offset"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// PointerEvent is a mouse gesture in map pixels.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

type CommandKind int

const (
	CmdAddNode CommandKind = iota
	CmdDeleteNode
	CmdAddPoint
	CmdToggleEnclose
	CmdCommitName
	CmdCommitRotation
	CmdCommitLatitude
	CmdCommitLongitude
	CmdCommitRadius
	CmdCommitLatRadius
	CmdCommitLonRadius
	CmdCommit
	CmdCancel
	// CmdNone marks read-only form fields.
	CmdNone
)

var commandNames = map[CommandKind]string{
	CmdAddNode:         "add node",
	CmdDeleteNode:      "delete node",
	CmdAddPoint:        "add point",
	CmdToggleEnclose:   "toggle enclose",
	CmdCommitName:      "name",
	CmdCommitRotation:  "rotation",
	CmdCommitLatitude:  "latitude",
	CmdCommitLongitude: "longitude",
	CmdCommitRadius:    "radius",
	CmdCommitLatRadius: "lat radius",
	CmdCommitLonRadius: "lon radius",
	CmdCommit:          "commit",
	CmdCancel:          "cancel",
	CmdNone:            "none",
}

func (k CommandKind) String() string {
	if s, ok := commandNames[k]; ok {
		return s
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// Command is a discrete request from the host, with its form text for commits.
type Command struct {
	Kind  CommandKind
	Value string
}

// Field is one row of the property form.
type Field struct {
	Label    string
	Kind     CommandKind
	Value    string
	ReadOnly bool
}
