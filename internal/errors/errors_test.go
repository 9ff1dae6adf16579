package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	err := New(ConfigInvalid, "bad width", nil)
	got := err.Error()
	if !strings.Contains(got, "CONFIG_INVALID") || !strings.Contains(got, "bad width") {
		t.Errorf("Error() = %q, want code and message", got)
	}
}

func TestErrorWrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := New(CatalogDBError, "save failed", cause)

	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() = %q, want it to include the cause", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CatalogSourceMissing, "no such root", nil).
		WithDetails(map[string]string{"root": "/nope"})
	details, ok := err.Details.(map[string]string)
	if !ok || details["root"] != "/nope" {
		t.Errorf("Details = %v, want the root path", err.Details)
	}
}

func TestSuggestedFixes(t *testing.T) {
	err := New(ConfigInvalid, "bad config", nil)
	if len(err.SuggestedFixes) == 0 {
		t.Error("SuggestedFixes is empty, want at least one fix")
	}
	if fixes := GetSuggestedFixes(ConfigInvalid); len(fixes) == 0 {
		t.Error("GetSuggestedFixes(ConfigInvalid) is empty, want at least one fix")
	}
	if fixes := GetSuggestedFixes(InternalError); len(fixes) != 0 {
		t.Errorf("GetSuggestedFixes(InternalError) = %v, want none", fixes)
	}
}
