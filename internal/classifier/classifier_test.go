package classifier

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammedPathariya/NoteNest/internal/model"
)

type stubClassifier struct {
	calls atomic.Int32
	fn    func(ctx context.Context, call int32) (string, error)
}

func (s *stubClassifier) Ref() string { return "stub" }

func (s *stubClassifier) Classify(ctx context.Context, _ string, _ []string) (string, error) {
	return s.fn(ctx, s.calls.Add(1))
}

func TestMatch(t *testing.T) {
	cands := []string{"Work", "Personal", "To-Do"}
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"Work", "Work", true},
		{"  work.", "Work", true},
		{`"Personal"`, "Personal", true},
		{"to-do", "To-Do", true},
		{"uncategorized", model.UncategorizedName, true},
		{"Sales", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := Match(c.raw, cands)
		assert.Equal(t, c.ok, ok, c.raw)
		assert.Equal(t, c.want, got, c.raw)
	}

	// Case-only duplicates cannot be normalized unless exact.
	got, ok := Match("WORK", []string{"work", "Work"})
	assert.False(t, ok, got)
	got, ok = Match("Work", []string{"work", "Work"})
	assert.True(t, ok)
	assert.Equal(t, "Work", got)
}

func TestKeyword_TeamMeeting(t *testing.T) {
	got, err := NewKeyword().Classify(context.Background(), "Team meeting at 3pm", []string{"Work", "Personal"})
	require.NoError(t, err)
	assert.Equal(t, "Work", got)
}

func TestKeyword_CandidateNameTokens(t *testing.T) {
	got, err := NewKeyword().Classify(context.Background(), "Draft the Project X launch plan", []string{"Finance", "Project X"})
	require.NoError(t, err)
	assert.Equal(t, "Project X", got)
}

func TestKeyword_NoCueIsNoMatch(t *testing.T) {
	_, err := NewKeyword().Classify(context.Background(), "zzz qqq", []string{"Work", "Personal"})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestAuto_PredictionStaysInCandidateSet(t *testing.T) {
	a := NewAuto(NewKeyword(), time.Second, 1, zerolog.Nop())
	cands := []string{"Work", "Personal"}
	for _, text := range []string{"Team meeting at 3pm", "Birthday gift for mom", "random words"} {
		p := a.Predict(context.Background(), text, cands)
		assert.Contains(t, []string{"Work", "Personal", model.UncategorizedName}, p.Category, text)
	}
}

func TestAuto_MatchedNormalizesCase(t *testing.T) {
	stub := &stubClassifier{fn: func(context.Context, int32) (string, error) { return "work", nil }}
	p := NewAuto(stub, time.Second, 1, zerolog.Nop()).Predict(context.Background(), "x", []string{"Work"})
	assert.False(t, p.Fallback)
	assert.Equal(t, "Work", p.Category)
	assert.Equal(t, "stub", p.Ref)
}

func TestAuto_OutsideCandidatesFallsBack(t *testing.T) {
	stub := &stubClassifier{fn: func(context.Context, int32) (string, error) { return "Sales", nil }}
	p := NewAuto(stub, time.Second, 1, zerolog.Nop()).Predict(context.Background(), "x", []string{"Work"})
	assert.True(t, p.Fallback)
	assert.Equal(t, model.UncategorizedName, p.Category)
	assert.Empty(t, p.Ref)
	assert.ErrorIs(t, p.Err, model.ErrClassificationUnavailable)
}

func TestAuto_TimeoutIsBounded(t *testing.T) {
	// Ignores its context on purpose.
	stub := &stubClassifier{fn: func(context.Context, int32) (string, error) {
		time.Sleep(2 * time.Second)
		return "Work", nil
	}}
	start := time.Now()
	p := NewAuto(stub, 50*time.Millisecond, 3, zerolog.Nop()).Predict(context.Background(), "x", []string{"Work"})
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, p.Fallback)
	assert.Equal(t, model.UncategorizedName, p.Category)
	assert.ErrorIs(t, p.Err, model.ErrClassificationUnavailable)
}

func TestAuto_RetriesTransientErrors(t *testing.T) {
	stub := &stubClassifier{fn: func(_ context.Context, call int32) (string, error) {
		if call == 1 {
			return "", errors.New("connection reset")
		}
		return "Personal", nil
	}}
	p := NewAuto(stub, 3*time.Second, 2, zerolog.Nop()).Predict(context.Background(), "x", []string{"Work", "Personal"})
	require.False(t, p.Fallback, "err=%v", p.Err)
	assert.Equal(t, "Personal", p.Category)
	assert.EqualValues(t, 2, stub.calls.Load())
}

func TestAuto_NoMatchIsNotRetried(t *testing.T) {
	stub := &stubClassifier{fn: func(context.Context, int32) (string, error) { return "", ErrNoMatch }}
	p := NewAuto(stub, time.Second, 3, zerolog.Nop()).Predict(context.Background(), "x", []string{"Work"})
	assert.True(t, p.Fallback)
	assert.EqualValues(t, 1, stub.calls.Load())
}
