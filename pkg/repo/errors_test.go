package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/odvcencio/gitstorage/pkg/object"
)

func TestClassify(t *testing.T) {
	mismatch := fmt.Errorf("object abcd: %w", object.ErrTypeMismatch)
	denied := fmt.Errorf("open x: %w", fs.ErrPermission)
	already := fmt.Errorf("%w: %s", ErrInvalidArgument, "bad name")

	tests := []struct {
		name  string
		err   error
		want  error
		cause error
	}{
		{"missing file", fs.ErrNotExist, ErrNotFound, fs.ErrNotExist},
		{"wrong object type", mismatch, ErrNotFound, object.ErrTypeMismatch},
		{"permission", denied, ErrIO, fs.ErrPermission},
		{"already classified", already, ErrInvalidArgument, ErrInvalidArgument},
	}
	for _, tt := range tests {
		got := Classify(tt.err)
		if !errors.Is(got, tt.want) {
			t.Errorf("%s: Classify = %v, want %v", tt.name, got, tt.want)
		}
		if !errors.Is(got, tt.cause) {
			t.Errorf("%s: Classify = %v, lost cause %v", tt.name, got, tt.cause)
		}
	}
	if got := Classify(already); got != already {
		t.Errorf("Classify re-wrapped a classified error: %v", got)
	}
	if Classify(nil) != nil {
		t.Error("Classify(nil) != nil")
	}
}
