package dorothea

import (
	"errors"
	"fmt"
)

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

// ErrMissingTable marks a dataset absent from an input file. The PMap
// loader maps it to the skippable no-data condition; a table that is
// present but unreadable stays a fatal error.
type ErrMissingTable struct {
	TableName string
	Err       error
}

func (e *ErrMissingTable) Error() string {
	return fmt.Sprintf("table %q not found: %v", e.TableName, e.Err)
}

// ErrNoPMapData marks an input file with no readable PMap content. The
// event loop skips such files; every other load failure aborts the run.
type ErrNoPMapData struct {
	Filename string
	Reason   string
}

func (e *ErrNoPMapData) Error() string {
	return fmt.Sprintf("no PMap data in %q: %s", e.Filename, e.Reason)
}

// IsNoPMapData reports whether err marks a skippable input file.
func IsNoPMapData(err error) bool {
	var e *ErrNoPMapData
	return errors.As(err, &e)
}
