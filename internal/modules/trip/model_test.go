package trip

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusSearching, StatusMatched, true},
		{StatusSearching, StatusCancelled, true},
		{StatusSearching, StatusInProgress, false},
		{StatusSearching, StatusCompleted, false},
		{StatusMatched, StatusInProgress, true},
		{StatusMatched, StatusCancelled, true},
		{StatusMatched, StatusSearching, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusSearching, false},
		{StatusCancelled, StatusCancelled, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTypeOpposite(t *testing.T) {
	if TypeOffer.Opposite() != TypeRequest {
		t.Error("offer should pair against request")
	}
	if TypeRequest.Opposite() != TypeOffer {
		t.Error("request should pair against offer")
	}
}
