package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spurtek/spurtek-leads/internal/validation"
)

type fakeSubmitter struct {
	calls []validation.ContactInput
	conf  Confirmation
	err   error
}

func (f *fakeSubmitter) SubmitContact(_ context.Context, in validation.ContactInput) (Confirmation, error) {
	f.calls = append(f.calls, in)
	return f.conf, f.err
}

func fillContact(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.Set("firstName", "Bob"))
	require.NoError(t, w.Set("lastName", "Johnson"))
	require.NoError(t, w.Set("email", "bob@example.com"))
}

func walkToContact(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.Set("industry", "Aviation"))
	require.True(t, w.Next())
	require.NoError(t, w.Set("need", "testing help"))
	require.NoError(t, w.Set("timeline", "1-3 months"))
	require.True(t, w.Next())
	require.Equal(t, StepContact, w.Step())
}

func TestNew_StartsOnIndustry(t *testing.T) {
	w := New()
	assert.Equal(t, StepIndustry, w.Step())
	assert.False(t, w.Submitted())
}

func TestNext_IndustryGate(t *testing.T) {
	w := New()
	assert.False(t, w.Next())
	assert.Equal(t, StepIndustry, w.Step())

	require.NoError(t, w.Set("industry", "   "))
	assert.False(t, w.Next())
	assert.Equal(t, StepIndustry, w.Step())

	require.NoError(t, w.Set("industry", "Aviation"))
	assert.True(t, w.Next())
	assert.Equal(t, StepDetails, w.Step())
}

func TestNext_DetailsGateNeedsBothFields(t *testing.T) {
	w := New()
	require.NoError(t, w.Set("industry", "Energy"))
	require.True(t, w.Next())

	require.NoError(t, w.Set("need", "turbine monitoring"))
	assert.False(t, w.Next())
	assert.Equal(t, StepDetails, w.Step())

	require.NoError(t, w.Set("need", ""))
	require.NoError(t, w.Set("timeline", "immediate"))
	assert.False(t, w.Next())

	require.NoError(t, w.Set("need", "turbine monitoring"))
	assert.True(t, w.Next())
	assert.Equal(t, StepContact, w.Step())
}

func TestNext_NeverLeavesContactStep(t *testing.T) {
	w := New()
	walkToContact(t, w)
	fillContact(t, w)
	assert.False(t, w.Next())
	assert.Equal(t, StepContact, w.Step())
}

func TestBack_PreservesValues(t *testing.T) {
	w := New()
	require.NoError(t, w.Set("industry", "Aviation"))
	require.True(t, w.Next())
	require.NoError(t, w.Set("need", "draft"))

	assert.True(t, w.Back())
	assert.Equal(t, StepIndustry, w.Step())
	assert.Equal(t, "Aviation", w.Value("industry"))
	assert.Equal(t, "draft", w.Value("need"))

	assert.False(t, w.Back(), "no step before industry")
	assert.True(t, w.Next())
	assert.Equal(t, "draft", w.Value("need"))
}

func TestBack_FromContactIsUnconditional(t *testing.T) {
	w := New()
	walkToContact(t, w)
	assert.True(t, w.Back())
	assert.Equal(t, StepDetails, w.Step())
	assert.True(t, w.Back())
	assert.Equal(t, StepIndustry, w.Step())
}

func TestSet_UnknownField(t *testing.T) {
	w := New()
	err := w.Set("favouriteColour", "blue")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, "", w.Value("favouriteColour"))
}

func TestSubmit_Success(t *testing.T) {
	w := New()
	walkToContact(t, w)
	fillContact(t, w)
	require.NoError(t, w.Set("company", "Acme"))

	sub := &fakeSubmitter{conf: Confirmation{ID: "lead-42"}}
	require.NoError(t, w.Submit(context.Background(), sub))

	assert.True(t, w.Submitted())
	assert.Equal(t, StepSubmitted, w.Step())
	assert.Equal(t, "lead-42", w.Result().ID)
	assert.Equal(t, "Thank You!", ThankYouTitle)
	assert.Equal(t, ThankYouMessage, w.Step().Description())

	require.Len(t, sub.calls, 1)
	assert.Equal(t, validation.ContactInput{
		FirstName: "Bob",
		LastName:  "Johnson",
		Email:     "bob@example.com",
		Company:   "Acme",
		Industry:  "Aviation",
		Need:      "testing help",
		Timeline:  "1-3 months",
	}, sub.calls[0])

	// Submitted is terminal.
	assert.False(t, w.Back())
	assert.ErrorIs(t, w.Set("email", "x@y.co"), ErrAlreadySubmitted)
	assert.ErrorIs(t, w.Submit(context.Background(), sub), ErrAlreadySubmitted)
	assert.Len(t, sub.calls, 1)
}

func TestSubmit_FailureStaysOnContact(t *testing.T) {
	w := New()
	walkToContact(t, w)
	fillContact(t, w)

	boom := errors.New("rate limited")
	sub := &fakeSubmitter{err: boom}
	err := w.Submit(context.Background(), sub)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StepContact, w.Step())
	assert.False(t, w.Submitted())
	assert.Len(t, sub.calls, 1, "no automatic retry")
	assert.Equal(t, "Bob", w.Value("firstName"))
}

func TestSubmit_Guards(t *testing.T) {
	sub := &fakeSubmitter{}

	w := New()
	assert.ErrorIs(t, w.Submit(context.Background(), sub), ErrNotReady)

	walkToContact(t, w)
	assert.ErrorIs(t, w.Submit(context.Background(), sub), ErrIncomplete)
	assert.Empty(t, sub.calls)
}

func TestFields(t *testing.T) {
	industry := Fields(StepIndustry)
	require.Len(t, industry, 1)
	assert.Equal(t, "industry", industry[0].Name)
	assert.Len(t, industry[0].Options, 5)

	details := Fields(StepDetails)
	require.Len(t, details, 2)
	assert.Equal(t, []string{"immediate", "1-3 months", "3-6 months", "6+ months"}, optionValues(details[1].Options))

	assert.Len(t, Fields(StepContact), 6)
	assert.Empty(t, Fields(StepSubmitted))
}

func TestStepFor(t *testing.T) {
	assert.Equal(t, StepIndustry, StepFor("industry"))
	assert.Equal(t, StepDetails, StepFor("need"))
	assert.Equal(t, StepDetails, StepFor("timeline"))
	assert.Equal(t, StepContact, StepFor("email"))
	assert.Equal(t, Step(0), StepFor("body"))
}

func TestStepNames(t *testing.T) {
	assert.Equal(t, "Industry", StepIndustry.Name())
	assert.Equal(t, "Tell us about your needs", StepDetails.Description())
	assert.Equal(t, "Your contact information", StepContact.Description())
}

func optionValues(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}
