package models

import "testing"

func TestCanonicalPair(t *testing.T) {
	for _, tt := range []struct {
		a, b, low, high uint
	}{
		{2, 9, 2, 9},
		{9, 2, 2, 9},
		{5, 5, 5, 5},
	} {
		low, high := CanonicalPair(tt.a, tt.b)
		if low != tt.low || high != tt.high {
			t.Errorf("CanonicalPair(%d, %d) = (%d, %d), want (%d, %d)", tt.a, tt.b, low, high, tt.low, tt.high)
		}
	}
}

func TestChatInvolves(t *testing.T) {
	chat := Chat{UserAID: 1, UserBID: 2}
	if !chat.Involves(1) || !chat.Involves(2) {
		t.Error("participants must be involved")
	}
	if chat.Involves(3) {
		t.Error("a third user must not be involved")
	}
}

func TestChatOtherParticipant(t *testing.T) {
	chat := Chat{UserAID: 1, UserBID: 2}
	if got := chat.OtherParticipant(1); got != 2 {
		t.Errorf("OtherParticipant(1) = %d, want 2", got)
	}
	if got := chat.OtherParticipant(2); got != 1 {
		t.Errorf("OtherParticipant(2) = %d, want 1", got)
	}
}
