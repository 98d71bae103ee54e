package ui

import "testing"

func TestToastLatestExpiryWins(t *testing.T) {
	var tt toast
	first := tt.show("Subscribed!", toastSuccess)
	second := tt.show("Email already exists", toastError)

	tt.expire(first)
	if !tt.visible {
		t.Fatal("an older expiry must not hide the newer toast")
	}
	if tt.message != "Email already exists" || tt.kind != toastError {
		t.Fatalf("toast = %q (%d), want the latest message", tt.message, tt.kind)
	}

	tt.expire(second)
	if tt.visible {
		t.Fatal("toast should hide after its own expiry")
	}
}
