package form_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/UnknownOlympus/athena/internal/form"
	"github.com/UnknownOlympus/athena/internal/i18n"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeID = "0b9a8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"

func newSickLeaveController(t *testing.T) *form.Controller[models.SickLeave] {
	t.Helper()

	return newSickLeaveControllerWithLog(t, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newSickLeaveControllerWithLog(t *testing.T, log *slog.Logger) *form.Controller[models.SickLeave] {
	t.Helper()

	tr, err := i18n.New("en")
	require.NoError(t, err)

	schema := validation.NewSchema[models.SickLeave](validation.NewEngine(), tr)
	return form.NewController(
		form.SickLeaveDefinition(schema),
		form.NewInflight(time.Minute),
		metrics.NewMetrics(prometheus.NewRegistry()),
		log,
	)
}

func TestStateTransitions(t *testing.T) {
	t.Parallel()

	assert.True(t, form.StateIdle.CanTransition(form.StateEditing))
	assert.True(t, form.StateValidating.CanTransition(form.StateEditing))
	assert.True(t, form.StateSubmitting.CanTransition(form.StateError))
	assert.True(t, form.StateError.CanTransition(form.StateEditing))
	assert.False(t, form.StateEditing.CanTransition(form.StateSubmitting))
	assert.False(t, form.StateSuccess.CanTransition(form.StateEditing))
	assert.True(t, form.StateSubmitting.Busy())
	assert.False(t, form.StateEditing.Busy())
	assert.Equal(t, "submitting", form.StateSubmitting.String())
}

func TestDecoder(t *testing.T) {
	t.Parallel()

	d := form.NewDecoder(url.Values{
		"a": {"2026-02-03"},
		"b": {"03/02/2026"},
		"c": {"on"},
		"e": {"maybe"},
		"n": {"x1"},
		"s": {"  hi "},
	})

	require.NotNil(t, d.Date("a"))
	assert.Nil(t, d.Date("b"))
	assert.Nil(t, d.Date("missing"))
	assert.True(t, d.Bool("c"))
	assert.False(t, d.Bool("missing"))
	assert.False(t, d.Bool("e"))
	assert.Zero(t, d.Int("n"))
	assert.Equal(t, "hi", d.String("s"))
	assert.Equal(t, map[string]string{"b": form.TagDate, "e": form.TagBool, "n": form.TagNumber}, d.Errors())
}

func TestNewInstanceDefaults(t *testing.T) {
	t.Parallel()

	c := newSickLeaveController(t)
	today := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)

	in := c.New(models.SickLeave{StartDate: &today, EndDate: &today})

	assert.Equal(t, form.StateEditing, in.State)
	assert.NotEmpty(t, in.Token)
	assert.Equal(t, "2026-10-18", in.Value("start_date"))
	assert.Equal(t, "2026-10-18", in.Value("end_date"))
	assert.Empty(t, in.Value("doctor_note"))
}

func TestSubmitMissingEmployee(t *testing.T) {
	t.Parallel()

	c := newSickLeaveController(t)
	var calls int32

	in := c.Submit(context.Background(), "create", url.Values{
		form.TokenField: {"tok-1"},
		"start_date":    {"2026-10-18"},
		"end_date":      {"2026-10-18"},
	}, func(_ context.Context, rec models.SickLeave) (models.SickLeave, error) {
		atomic.AddInt32(&calls, 1)
		return rec, nil
	})

	assert.Zero(t, atomic.LoadInt32(&calls))
	assert.Equal(t, form.StateEditing, in.State)
	assert.Equal(t, "Employee is a required field", in.Errors["employee_id"])
	assert.Equal(t, "2026-10-18", in.Value("start_date"))
}

func TestSubmitSuccess(t *testing.T) {
	t.Parallel()

	c := newSickLeaveController(t)
	var got []models.SickLeave

	in := c.Submit(context.Background(), "create", url.Values{
		form.TokenField: {"tok-2"},
		"start_date":    {"2026-10-18"},
		"end_date":      {"2026-10-20"},
		"doctor_note":   {"on"},
		"employee_id":   {employeeID},
	}, func(_ context.Context, rec models.SickLeave) (models.SickLeave, error) {
		got = append(got, rec)
		rec.ID = "new"
		return rec, nil
	})

	require.Len(t, got, 1)
	assert.Equal(t, employeeID, got[0].EmployeeID)
	assert.True(t, got[0].DoctorNote)
	assert.Equal(t, "2026-10-20", form.FormatDate(got[0].EndDate))
	assert.Equal(t, form.StateSuccess, in.State)
	assert.Equal(t, "new", in.Record.ID)
	assert.Nil(t, in.Values)

	replay := c.Submit(context.Background(), "create", url.Values{
		form.TokenField: {"tok-2"},
		"employee_id":   {employeeID},
	}, func(_ context.Context, rec models.SickLeave) (models.SickLeave, error) {
		got = append(got, rec)
		return rec, nil
	})
	assert.Len(t, got, 1)
	require.ErrorIs(t, replay.Err, form.ErrAlreadySubmitted)
}

func TestSubmitBackendFailure(t *testing.T) {
	t.Parallel()

	c := newSickLeaveController(t)
	values := url.Values{
		form.TokenField: {"tok-3"},
		"start_date":    {"2026-10-18"},
		"employee_id":   {employeeID},
	}

	in := c.Submit(context.Background(), "create", values,
		func(_ context.Context, _ models.SickLeave) (models.SickLeave, error) {
			return models.SickLeave{}, assert.AnError
		})

	assert.Equal(t, form.StateEditing, in.State)
	assert.False(t, in.State.Busy())
	require.ErrorIs(t, in.Err, assert.AnError)
	assert.Equal(t, employeeID, in.Value("employee_id"))
	assert.Equal(t, "2026-10-18", in.Value("start_date"))

	// the token is released so the user can retry
	retry := c.Submit(context.Background(), "create", values,
		func(_ context.Context, rec models.SickLeave) (models.SickLeave, error) { return rec, nil })
	assert.Equal(t, form.StateSuccess, retry.State)
}

func TestSubmitStateWalkIsClean(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := newSickLeaveControllerWithLog(t, slog.New(slog.NewTextHandler(&buf, nil)))
	values := url.Values{form.TokenField: {"tok-walk"}, "employee_id": {employeeID}}

	failed := c.Submit(context.Background(), "create", values,
		func(_ context.Context, _ models.SickLeave) (models.SickLeave, error) {
			return models.SickLeave{}, assert.AnError
		})
	require.Equal(t, form.StateEditing, failed.State)
	require.Error(t, failed.Err)

	invalid := c.Submit(context.Background(), "create", url.Values{form.TokenField: {"tok-walk"}},
		func(_ context.Context, rec models.SickLeave) (models.SickLeave, error) { return rec, nil })
	require.Equal(t, form.StateEditing, invalid.State)

	ok := c.Submit(context.Background(), "create", values,
		func(_ context.Context, rec models.SickLeave) (models.SickLeave, error) { return rec, nil })
	require.Equal(t, form.StateSuccess, ok.State)

	assert.NotContains(t, buf.String(), "form state not advanced")
	assert.NotContains(t, buf.String(), form.ErrInvalidTransition.Error())
}

func TestSubmitDecodeErrors(t *testing.T) {
	t.Parallel()

	c := newSickLeaveController(t)

	in := c.Submit(context.Background(), "create", url.Values{
		"start_date":  {"not-a-date"},
		"end_date":    {"2026-10-01"},
		"employee_id": {employeeID},
	}, func(_ context.Context, rec models.SickLeave) (models.SickLeave, error) {
		t.Fatal("backend must not be called")
		return rec, nil
	})

	assert.Equal(t, form.StateEditing, in.State)
	assert.Equal(t, "Start Date must be a valid date", in.Errors["start_date"])
	assert.Equal(t, "not-a-date", in.Value("start_date"))
	assert.NotEmpty(t, in.Token)
}

func TestSubmitDuplicateWhileInFlight(t *testing.T) {
	t.Parallel()

	c := newSickLeaveController(t)
	values := url.Values{form.TokenField: {"tok-4"}, "employee_id": {employeeID}}

	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Submit(context.Background(), "create", values,
			func(_ context.Context, rec models.SickLeave) (models.SickLeave, error) {
				atomic.AddInt32(&calls, 1)
				close(started)
				<-release
				return rec, nil
			})
	}()

	<-started
	dup := c.Submit(context.Background(), "create", values,
		func(_ context.Context, rec models.SickLeave) (models.SickLeave, error) {
			atomic.AddInt32(&calls, 1)
			return rec, nil
		})
	close(release)
	wg.Wait()

	require.ErrorIs(t, dup.Err, form.ErrSubmitInProgress)
	assert.Equal(t, form.StateSubmitting, dup.State)
	assert.True(t, dup.State.Busy())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestInflight(t *testing.T) {
	t.Parallel()

	f := form.NewInflight(0)

	require.NoError(t, f.Acquire("a"))
	require.ErrorIs(t, f.Acquire("a"), form.ErrSubmitInProgress)
	f.Release("a")
	require.NoError(t, f.Acquire("a"))
	f.Complete("a")
	require.ErrorIs(t, f.Acquire("a"), form.ErrAlreadySubmitted)
	assert.Equal(t, 1, f.Len())
}

func TestEmployeeDefinitionRoundTrip(t *testing.T) {
	t.Parallel()

	def := form.EmployeeDefinition(nil)
	hired := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)

	values := def.Encode(models.Employee{FullName: "A B", Email: "a@b.co", HireDate: &hired})
	assert.Equal(t, "2024-05-06", values["hire_date"])

	rec := def.Decode(form.NewDecoder(url.Values{"full_name": {" A B "}, "hire_date": {"2024-05-06"}}))
	assert.Equal(t, "A B", rec.FullName)
	assert.Equal(t, hired, *rec.HireDate)
}
