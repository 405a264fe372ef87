package event

import (
	"fmt"
	"strconv"
	"strings"
)

// Diagnostics captures decode progress for observability. It is populated
// incrementally while a line is parsed so that on failure the caller knows
// how far the decoder got. Never consulted for control flow.
type Diagnostics struct {
	// Line is the full line handed to Parse.
	Line string
	// Event is the recognized event name, empty if none was found.
	Event string
	// LastParam is the last parameter that parsed successfully.
	LastParam string
	// ParamsRead counts parameters read successfully.
	ParamsRead int
}

// cursor walks the comma-separated parameter region of one event line,
// offering typed takes that record progress into Diagnostics.
type cursor struct {
	rest string
	done bool
	diag *Diagnostics
}

func newCursor(params string, diag *Diagnostics) *cursor {
	return &cursor{rest: params, diag: diag}
}

// next returns the next raw field, or false when the cursor is exhausted.
func (c *cursor) next() (string, bool) {
	if c.done {
		return "", false
	}
	field, rest, found := strings.Cut(c.rest, ",")
	c.rest = rest
	c.done = !found
	return field, true
}

// remainder hands back everything not yet taken. Used for the one event
// whose trailing field is a variable-length address list.
func (c *cursor) remainder() string {
	if c.done {
		return ""
	}
	rest := c.rest
	c.rest = ""
	c.done = true
	return rest
}

func (c *cursor) record(field string) {
	if c.diag != nil {
		c.diag.LastParam = field
		c.diag.ParamsRead++
	}
}

func (c *cursor) str() (string, error) {
	field, ok := c.next()
	if !ok {
		return "", ErrMissingParams
	}
	c.record(field)
	return field, nil
}

func (c *cursor) integer() (int, error) {
	field, ok := c.next()
	if !ok {
		return 0, ErrMissingParams
	}
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInteger, field)
	}
	c.record(field)
	return v, nil
}

func (c *cursor) boolean() (bool, error) {
	field, ok := c.next()
	if !ok {
		return false, ErrMissingParams
	}
	switch field {
	case "0":
		c.record(field)
		return false, nil
	case "1":
		c.record(field)
		return true, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidBoolean, field)
}

// optionalInteger is integer with an empty field decoding as zero.
func (c *cursor) optionalInteger() (int, error) {
	field, ok := c.next()
	if !ok {
		return 0, ErrMissingParams
	}
	if field == "" {
		c.record(field)
		return 0, nil
	}
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInteger, field)
	}
	c.record(field)
	return v, nil
}

// enum parses an ordinal and requires it to fall in [0, count).
func (c *cursor) enum(count int) (int, error) {
	field, ok := c.next()
	if !ok {
		return 0, ErrMissingParams
	}
	v, err := strconv.Atoi(field)
	if err != nil || v < 0 || v >= count {
		return 0, fmt.Errorf("%w: %q not in [0,%d)", ErrInvalidEnum, field, count)
	}
	c.record(field)
	return v, nil
}
