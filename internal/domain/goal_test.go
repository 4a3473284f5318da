package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTestGoal(t *testing.T, target, current int64) *Goal {
	t.Helper()
	goal, err := NewGoal(uuid.New(), "Emergency Fund", nil, decimal.NewFromInt(target), decimal.NewFromInt(current), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return goal
}

func TestNewGoal_StartsInProgress(t *testing.T) {
	goal := newTestGoal(t, 10000, 0)
	if goal.Status != GoalStatusInProgress {
		t.Errorf("Expected IN_PROGRESS, got %s", goal.Status)
	}
}

func TestNewGoal_TargetMustBePositive(t *testing.T) {
	_, err := NewGoal(uuid.New(), "Trip", nil, decimal.Zero, decimal.Zero, nil)
	if err != ErrTargetNotPositive {
		t.Errorf("Expected ErrTargetNotPositive, got %v", err)
	}
}

func TestNewGoal_NameRequired(t *testing.T) {
	_, err := NewGoal(uuid.New(), "   ", nil, decimal.NewFromInt(100), decimal.Zero, nil)
	if err != ErrNameRequired {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
}

func TestGoalProgressPercentage(t *testing.T) {
	goal := newTestGoal(t, 200, 50)
	if got := goal.ProgressPercentage(); got.String() != "25" {
		t.Errorf("Expected 25, got %s", got.String())
	}
}

func TestGoalProgressPercentage_ClampedAt100(t *testing.T) {
	goal := newTestGoal(t, 100, 150)
	if got := goal.ProgressPercentage(); got.String() != "100" {
		t.Errorf("Expected 100, got %s", got.String())
	}
}

func TestGoalRemainingAmount_FlooredAtZero(t *testing.T) {
	goal := newTestGoal(t, 100, 150)
	if got := goal.RemainingAmount(); !got.IsZero() {
		t.Errorf("Expected 0, got %s", got.String())
	}
}

func TestGoalUpdateProgress_AutoCompletes(t *testing.T) {
	goal := newTestGoal(t, 100, 0)
	if err := goal.UpdateProgress(decimal.NewFromInt(100)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if goal.Status != GoalStatusCompleted {
		t.Errorf("Expected COMPLETED after reaching target, got %s", goal.Status)
	}
}

func TestGoalUpdateProgress_Negative(t *testing.T) {
	goal := newTestGoal(t, 100, 0)
	if err := goal.UpdateProgress(decimal.NewFromInt(-1)); err != ErrNegativeProgress {
		t.Errorf("Expected ErrNegativeProgress, got %v", err)
	}
}

func TestGoalAddProgress(t *testing.T) {
	goal := newTestGoal(t, 100, 40)
	if err := goal.AddProgress(decimal.NewFromInt(10)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if goal.CurrentValue.String() != "50" {
		t.Errorf("Expected 50, got %s", goal.CurrentValue.String())
	}
	if goal.Status != GoalStatusInProgress {
		t.Errorf("Expected IN_PROGRESS, got %s", goal.Status)
	}
}

func TestGoalComplete_FromCancelled(t *testing.T) {
	goal := newTestGoal(t, 100, 0)
	if err := goal.Cancel(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := goal.Complete(); err != ErrGoalAlreadyCancelled {
		t.Errorf("Expected ErrGoalAlreadyCancelled, got %v", err)
	}
}

func TestGoalCancel_FromCompleted(t *testing.T) {
	goal := newTestGoal(t, 100, 0)
	if err := goal.Complete(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := goal.Cancel(); err != ErrGoalAlreadyCompleted {
		t.Errorf("Expected ErrGoalAlreadyCompleted, got %v", err)
	}
}

func TestGoalReactivate(t *testing.T) {
	goal := newTestGoal(t, 100, 0)
	if err := goal.Reactivate(); err != ErrGoalNotCancelled {
		t.Errorf("Expected ErrGoalNotCancelled for in-progress goal, got %v", err)
	}

	if err := goal.Cancel(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := goal.Reactivate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if goal.Status != GoalStatusInProgress {
		t.Errorf("Expected IN_PROGRESS, got %s", goal.Status)
	}
}
