package bot

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestClassifySendError_Nil(t *testing.T) {
	if err := classifySendError(nil); err != nil {
		t.Errorf("expected nil for successful send, got %v", err)
	}
}

func TestClassifySendError_PermissionCodes(t *testing.T) {
	for _, code := range []int{codeMissingAccess, codeMissingPermissions} {
		err := classifySendError(&discordgo.RESTError{
			Message: &discordgo.APIErrorMessage{Code: code, Message: "nope"},
		})
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected code %d to map to ErrForbidden, got %v", code, err)
		}
	}
}

func TestClassifySendError_ForbiddenStatus(t *testing.T) {
	err := classifySendError(&discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusForbidden},
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected 403 to map to ErrForbidden, got %v", err)
	}
}

func TestClassifySendError_GenericFailure(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := classifySendError(cause)
	if err == nil {
		t.Fatal("expected error for failed send")
	}
	if errors.Is(err, ErrForbidden) {
		t.Error("generic failures must stay distinguishable from permission failures")
	}
	if !errors.Is(err, cause) {
		t.Error("expected the underlying cause to be wrapped")
	}
}

func TestClassifySendError_OtherAPICode(t *testing.T) {
	err := classifySendError(&discordgo.RESTError{
		Message:  &discordgo.APIErrorMessage{Code: 50035, Message: "invalid form body"},
		Response: &http.Response{StatusCode: http.StatusBadRequest},
	})
	if errors.Is(err, ErrForbidden) {
		t.Error("non-permission API errors must not map to ErrForbidden")
	}
}
