package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"planner/internal/task"
)

// promptConfirmer asks on out and reads a y/n answer from in. Anything
// other than y or yes declines.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p promptConfirmer) ConfirmDeletion(_ context.Context, t task.Task) (bool, error) {
	fmt.Fprintf(p.out, "Delete %q? [y/N] ", t.Title)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
