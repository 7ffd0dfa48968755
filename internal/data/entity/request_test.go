package entity

import (
	"testing"
)

func TestRequestStatusIsValid(t *testing.T) {
	valid := []RequestStatus{
		StatusPending, StatusApproved, StatusRejected,
		StatusPaymentPending, StatusPaid, StatusCompleted, StatusCancelled,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("expected %s to be valid", s)
		}
	}

	if RequestStatus("confirmed").IsValid() {
		t.Error("unknown status reported as valid")
	}
	if RequestStatus("").IsValid() {
		t.Error("empty status reported as valid")
	}
}

func TestRequestStatusIsTerminal(t *testing.T) {
	terminal := []RequestStatus{StatusRejected, StatusCompleted, StatusCancelled}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}

	open := []RequestStatus{StatusPending, StatusApproved, StatusPaymentPending, StatusPaid}
	for _, s := range open {
		if s.IsTerminal() {
			t.Errorf("expected %s not to be terminal", s)
		}
	}
}

func TestRequestStatusCanCancel(t *testing.T) {
	cancellable := []RequestStatus{StatusPending, StatusApproved, StatusPaymentPending}
	for _, s := range cancellable {
		if !s.CanCancel() {
			t.Errorf("expected %s to be cancellable", s)
		}
	}

	locked := []RequestStatus{StatusRejected, StatusPaid, StatusCompleted, StatusCancelled}
	for _, s := range locked {
		if s.CanCancel() {
			t.Errorf("expected %s not to be cancellable", s)
		}
	}
}

func TestParseRequestStatus(t *testing.T) {
	status, err := ParseRequestStatus("payment_pending")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusPaymentPending {
		t.Errorf("got %s, want %s", status, StatusPaymentPending)
	}

	if _, err := ParseRequestStatus("unknown"); err == nil {
		t.Error("expected error for unknown status")
	}
}
