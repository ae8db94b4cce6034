package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/robosave/robosave/internal/joblog"
	"github.com/robosave/robosave/internal/logging"
	"github.com/robosave/robosave/internal/types"
)

// fakeStore records state transitions in order.
type fakeStore struct {
	recoverable *types.BackupJob
	loadErr     error

	transitions []string
	pending     *types.BackupJob
}

func (s *fakeStore) HasRecoverableJob() bool { return s.recoverable != nil || s.pending != nil }

func (s *fakeStore) LoadRecoverableJob() (types.BackupJob, error) {
	if s.loadErr != nil {
		return types.BackupJob{}, s.loadErr
	}
	if s.recoverable != nil {
		return *s.recoverable, nil
	}
	if s.pending != nil {
		return *s.pending, nil
	}
	return types.BackupJob{}, errors.New("no record")
}

func (s *fakeStore) BeginPendingJob(source, destination string, mode types.CopyMode) error {
	s.transitions = append(s.transitions, "begin")
	s.pending = &types.BackupJob{Source: source, Destination: destination, Mode: mode}
	return nil
}

func (s *fakeStore) PromoteToRecoverable() error {
	s.transitions = append(s.transitions, "promote")
	if s.pending != nil {
		s.recoverable = s.pending
		s.pending = nil
	}
	return nil
}

func (s *fakeStore) DiscardPending() error {
	s.transitions = append(s.transitions, "discard")
	s.pending = nil
	return nil
}

func (s *fakeStore) Clear() error {
	s.transitions = append(s.transitions, "clear")
	s.recoverable = nil
	s.pending = nil
	return nil
}

// fakeRunner records executed jobs.
type fakeRunner struct {
	jobs []types.BackupJob
	err  error
}

func (r *fakeRunner) Execute(ctx context.Context, job types.BackupJob) error {
	r.jobs = append(r.jobs, job)
	return r.err
}

func (r *fakeRunner) CommandLine(tool string, job types.BackupJob) string {
	return tool + " " + job.Source + " " + job.Destination
}

// fakePicker returns queued selections.
type fakePicker struct {
	paths []string
	oks   []bool
}

func (p *fakePicker) Pick(ctx context.Context, description string) (string, bool, error) {
	if len(p.paths) == 0 {
		return "", false, nil
	}
	path, ok := p.paths[0], p.oks[0]
	p.paths, p.oks = p.paths[1:], p.oks[1:]
	return path, ok, nil
}

// fakePrompter answers from fixed values; continueAnswers drain one per call.
type fakePrompter struct {
	resumeAnswer    bool
	mode            types.CopyMode
	jobAnswer       bool
	continueAnswers []bool

	summaries []string
}

func (p *fakePrompter) ConfirmResume(ctx context.Context, job types.BackupJob) (bool, error) {
	return p.resumeAnswer, nil
}

func (p *fakePrompter) SelectMode(ctx context.Context) (types.CopyMode, error) {
	return p.mode, nil
}

func (p *fakePrompter) ConfirmJob(ctx context.Context, summary string) (bool, error) {
	p.summaries = append(p.summaries, summary)
	return p.jobAnswer, nil
}

func (p *fakePrompter) ConfirmContinue(ctx context.Context) (bool, error) {
	if len(p.continueAnswers) == 0 {
		return false, nil
	}
	answer := p.continueAnswers[0]
	p.continueAnswers = p.continueAnswers[1:]
	return answer, nil
}

type fakeSizer struct{ text string }

func (s fakeSizer) ComputeSize(ctx context.Context, path string) string { return s.text }

type fakeAllocator struct {
	path string
	err  error
}

func (a fakeAllocator) Allocate(sourcePath string) (string, error) { return a.path, a.err }

func quietLogger() *logging.Logger {
	logger := logging.New(types.LogLevelNone, false)
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func newTestOrchestrator(store *fakeStore, run *fakeRunner, picker *fakePicker, prompter *fakePrompter, logs LogAllocator) *Orchestrator {
	if logs == nil {
		logs = fakeAllocator{path: "/logs/Copy-src-2026-08-24_10-00-00.log"}
	}
	return NewWithDeps(Deps{
		Logger:    quietLogger(),
		Store:     store,
		Runner:    run,
		Sizer:     fakeSizer{text: "3.42 GB"},
		Logs:      logs,
		Picker:    picker,
		Prompter:  prompter,
		PathCheck: func(string) bool { return true },
	})
}

// Scenario A: no record, fresh job runs to completion, final state clean.
func TestFreshJobLifecycle(t *testing.T) {
	store := &fakeStore{}
	run := &fakeRunner{}
	picker := &fakePicker{paths: []string{"/data/src", "/mnt/dst"}, oks: []bool{true, true}}
	prompter := &fakePrompter{mode: types.CopyModeFull, jobAnswer: true}

	o := newTestOrchestrator(store, run, picker, prompter, nil)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"begin", "promote", "clear"}
	if strings.Join(store.transitions, ",") != strings.Join(want, ",") {
		t.Fatalf("transitions = %v; want %v", store.transitions, want)
	}
	if store.HasRecoverableJob() {
		t.Fatalf("no record may survive a confirmed completed job")
	}
	if len(run.jobs) != 1 {
		t.Fatalf("runner calls = %d; want 1", len(run.jobs))
	}
	if run.jobs[0].LogPath == "" {
		t.Fatalf("job must carry an allocated log path")
	}
}

// Scenario B: a durable record is resumed with its persisted fields.
func TestResumeAcceptedUsesRecordedJob(t *testing.T) {
	store := &fakeStore{recoverable: &types.BackupJob{
		Source:      `C:\Data`,
		Destination: `D:\Backup`,
		Mode:        types.CopyModeFull,
	}}
	run := &fakeRunner{}
	prompter := &fakePrompter{resumeAnswer: true, jobAnswer: true}

	o := newTestOrchestrator(store, run, &fakePicker{}, prompter, nil)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(run.jobs) != 1 {
		t.Fatalf("runner calls = %d; want 1", len(run.jobs))
	}
	job := run.jobs[0]
	if job.Source != `C:\Data` || job.Destination != `D:\Backup` {
		t.Fatalf("resumed job = %+v", job)
	}
	if job.Mode != types.CopyModeFull {
		t.Fatalf("resumed mode = %v", job.Mode)
	}
	if store.HasRecoverableJob() {
		t.Fatalf("record must be cleared after a successful resumed run")
	}
}

// The persisted mode survives the crash boundary: an interrupted mirror
// resumes as a mirror.
func TestResumeKeepsPersistedMirrorMode(t *testing.T) {
	store := &fakeStore{recoverable: &types.BackupJob{
		Source:      "/src",
		Destination: "/dst",
		Mode:        types.CopyModeMirror,
	}}
	run := &fakeRunner{}
	prompter := &fakePrompter{resumeAnswer: true, jobAnswer: true}

	o := newTestOrchestrator(store, run, &fakePicker{}, prompter, nil)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(run.jobs) != 1 || run.jobs[0].Mode != types.CopyModeMirror {
		t.Fatalf("expected mirror resume, got %+v", run.jobs)
	}
	// The destructive warning must be part of the confirmation summary.
	if len(prompter.summaries) != 1 || !strings.Contains(prompter.summaries[0], "DELETES") {
		t.Fatalf("mirror summary missing deletion warning: %q", prompter.summaries)
	}
}

func TestResumeDeclinedClearsAndStartsFresh(t *testing.T) {
	store := &fakeStore{recoverable: &types.BackupJob{
		Source: "/old/src", Destination: "/old/dst", Mode: types.CopyModeFull,
	}}
	run := &fakeRunner{}
	picker := &fakePicker{paths: []string{"/new/src", "/new/dst"}, oks: []bool{true, true}}
	prompter := &fakePrompter{resumeAnswer: false, mode: types.CopyModeFull, jobAnswer: true}

	o := newTestOrchestrator(store, run, picker, prompter, nil)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(run.jobs) != 1 || run.jobs[0].Source != "/new/src" {
		t.Fatalf("expected fresh job, got %+v", run.jobs)
	}
	if store.transitions[0] != "clear" {
		t.Fatalf("declining resume must clear first: %v", store.transitions)
	}
}

// Scenario C: cancelling at the size summary discards the pending
// record and never invokes the copy tool.
func TestCancelBeforeExecutionDiscardsPending(t *testing.T) {
	store := &fakeStore{}
	run := &fakeRunner{}
	picker := &fakePicker{paths: []string{"/data/src", "/mnt/dst"}, oks: []bool{true, true}}
	prompter := &fakePrompter{mode: types.CopyModeMirror, jobAnswer: false}

	o := newTestOrchestrator(store, run, picker, prompter, nil)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(run.jobs) != 0 {
		t.Fatalf("copy tool must not be invoked on cancel")
	}
	want := []string{"begin", "discard"}
	if strings.Join(store.transitions, ",") != strings.Join(want, ",") {
		t.Fatalf("transitions = %v; want %v", store.transitions, want)
	}
}

// Scenario D: log-root failure terminates before any copy attempt and
// before any resume record is written.
func TestLogAllocationFailureIsFatal(t *testing.T) {
	store := &fakeStore{}
	run := &fakeRunner{}
	picker := &fakePicker{paths: []string{"/data/src", "/mnt/dst"}, oks: []bool{true, true}}
	prompter := &fakePrompter{mode: types.CopyModeFull, jobAnswer: true}
	fatal := &joblog.FatalError{Path: "/logs", Err: errors.New("permission denied")}

	o := newTestOrchestrator(store, run, picker, prompter, fakeAllocator{err: fatal})
	err := o.Run(context.Background())

	var gotFatal *joblog.FatalError
	if !errors.As(err, &gotFatal) {
		t.Fatalf("expected *joblog.FatalError, got %v", err)
	}
	if len(run.jobs) != 0 {
		t.Fatalf("no copy may run after a fatal log setup failure")
	}
	if len(store.transitions) != 0 {
		t.Fatalf("no resume record may be written: %v", store.transitions)
	}
}

// Execution failure leaves the durable record so the next run can offer
// resume.
func TestExecutionFailureKeepsDurableRecord(t *testing.T) {
	store := &fakeStore{}
	run := &fakeRunner{err: errors.New("copy tool exited with code 16")}
	picker := &fakePicker{paths: []string{"/data/src", "/mnt/dst"}, oks: []bool{true, true}}
	prompter := &fakePrompter{mode: types.CopyModeFull, jobAnswer: true}

	o := newTestOrchestrator(store, run, picker, prompter, nil)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"begin", "promote"}
	if strings.Join(store.transitions, ",") != strings.Join(want, ",") {
		t.Fatalf("transitions = %v; want %v", store.transitions, want)
	}
	if !store.HasRecoverableJob() {
		t.Fatalf("durable record must survive a failed run")
	}
}

func TestUnusableResumeStateIsClearedAndIgnored(t *testing.T) {
	store := &fakeStore{
		recoverable: &types.BackupJob{Source: "/src", Destination: "/dst"},
		loadErr:     errors.New("malformed resume record"),
	}
	run := &fakeRunner{}
	picker := &fakePicker{paths: []string{"/data/src", "/mnt/dst"}, oks: []bool{true, true}}
	prompter := &fakePrompter{mode: types.CopyModeFull, jobAnswer: true}

	o := newTestOrchestrator(store, run, picker, prompter, nil)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("malformed state must never be fatal: %v", err)
	}
	if len(run.jobs) != 1 {
		t.Fatalf("workflow must continue with a fresh job")
	}
}

func TestMissingResumePathsClearRecord(t *testing.T) {
	store := &fakeStore{recoverable: &types.BackupJob{
		Source: "/gone/src", Destination: "/gone/dst", Mode: types.CopyModeFull,
	}}
	run := &fakeRunner{}
	picker := &fakePicker{} // user then declines to select anything
	prompter := &fakePrompter{}

	o := NewWithDeps(Deps{
		Logger:    quietLogger(),
		Store:     store,
		Runner:    run,
		Sizer:     fakeSizer{text: "1.00 KB"},
		Logs:      fakeAllocator{path: "/logs/x.log"},
		Picker:    picker,
		Prompter:  prompter,
		PathCheck: func(string) bool { return false },
	})
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if store.recoverable != nil {
		t.Fatalf("record with missing paths must be cleared")
	}
	if len(run.jobs) != 0 {
		t.Fatalf("nothing should run")
	}
}

func TestPickerCancelRestartsLoop(t *testing.T) {
	store := &fakeStore{}
	run := &fakeRunner{}
	// First cycle: no selection. Second cycle: full selection.
	picker := &fakePicker{
		paths: []string{"", "/data/src", "/mnt/dst"},
		oks:   []bool{false, true, true},
	}
	prompter := &fakePrompter{mode: types.CopyModeFull, jobAnswer: true, continueAnswers: []bool{true, false}}

	o := newTestOrchestrator(store, run, picker, prompter, nil)
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(run.jobs) != 1 {
		t.Fatalf("second cycle should have run a job, got %d", len(run.jobs))
	}
}

func TestDryRunSkipsExecutionAndPromotion(t *testing.T) {
	store := &fakeStore{}
	run := &fakeRunner{}
	picker := &fakePicker{paths: []string{"/data/src", "/mnt/dst"}, oks: []bool{true, true}}
	prompter := &fakePrompter{mode: types.CopyModeMirror, jobAnswer: true}

	o := NewWithDeps(Deps{
		Logger:    quietLogger(),
		Store:     store,
		Runner:    run,
		Sizer:     fakeSizer{text: "9.00 MB"},
		Logs:      fakeAllocator{path: "/logs/x.log"},
		Picker:    picker,
		Prompter:  prompter,
		PathCheck: func(string) bool { return true },
		DryRun:    true,
	})
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(run.jobs) != 0 {
		t.Fatalf("dry run must not execute the copy tool")
	}
	want := []string{"begin", "discard"}
	if strings.Join(store.transitions, ",") != strings.Join(want, ",") {
		t.Fatalf("transitions = %v; want %v", store.transitions, want)
	}
}

// A dry run of a resumed job must not touch the surviving record:
// nothing was executed, so the interrupted job stays resumable.
func TestDryRunResumedJobKeepsRecord(t *testing.T) {
	store := &fakeStore{recoverable: &types.BackupJob{
		Source: "/src", Destination: "/dst", Mode: types.CopyModeMirror,
	}}
	run := &fakeRunner{}
	prompter := &fakePrompter{resumeAnswer: true, jobAnswer: true}

	o := NewWithDeps(Deps{
		Logger:    quietLogger(),
		Store:     store,
		Runner:    run,
		Sizer:     fakeSizer{text: "9.00 MB"},
		Logs:      fakeAllocator{path: "/logs/x.log"},
		Picker:    &fakePicker{},
		Prompter:  prompter,
		PathCheck: func(string) bool { return true },
		DryRun:    true,
	})
	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(run.jobs) != 0 {
		t.Fatalf("dry run must not execute the copy tool")
	}
	if len(store.transitions) != 0 {
		t.Fatalf("resumed dry run must leave the record untouched: %v", store.transitions)
	}
	if !store.HasRecoverableJob() {
		t.Fatalf("interrupted job must remain resumable after a dry run")
	}
}

func TestFormatJobSummary(t *testing.T) {
	summary := FormatJobSummary(types.BackupJob{
		Source:      "/data/src",
		Destination: "/mnt/dst",
		Mode:        types.CopyModeMirror,
	}, "3.42 GB")

	for _, fragment := range []string{"/data/src", "/mnt/dst", "Mirror", "3.42 GB", "DELETES"} {
		if !strings.Contains(summary, fragment) {
			t.Fatalf("summary missing %q:\n%s", fragment, summary)
		}
	}

	plain := FormatJobSummary(types.BackupJob{
		Source: "/a", Destination: "/b", Mode: types.CopyModeFull,
	}, "Unknown size")
	if strings.Contains(plain, "DELETES") {
		t.Fatalf("full copy summary must not carry the deletion warning")
	}
	if !strings.Contains(plain, "Unknown size") {
		t.Fatalf("summary must surface the size sentinel")
	}
}
