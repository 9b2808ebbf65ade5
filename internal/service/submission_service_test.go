package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/lifecycle"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

func TestTriggerWork_OnePendingPerCrew(t *testing.T) {
	f := newFleet(t)
	tmpl := f.safetyRound(t)

	subs := f.trigger(t, tmpl)
	if len(subs) != 3 {
		t.Fatalf("got %d submissions, want 3", len(subs))
	}
	seen := map[string]bool{}
	for _, s := range subs {
		if s.Status != models.StatusPending || s.TemplateID != tmpl.ID || s.VesselID != f.vessel.ID {
			t.Fatalf("submission = %+v", s)
		}
		if s.AssignedBy != f.master.UserID || s.AssignedAt == nil || s.ID == "" {
			t.Fatalf("assignment audit missing: %+v", s)
		}
		seen[s.AssignedTo] = true
	}
	for _, c := range f.crew {
		if !seen[c.UserID] {
			t.Fatalf("crew %s got nothing", c.UserID)
		}
	}
}

func TestTriggerWork_ExplicitCrew(t *testing.T) {
	f := newFleet(t)
	tmpl := f.safetyRound(t)

	subs, err := f.subs.TriggerWork(context.Background(), f.staff, models.TriggerWorkRequest{
		VesselID:        f.vessel.ID,
		TemplateIDs:     []string{tmpl.ID, tmpl.ID},
		AssignedCrewIDs: []string{f.crew[1].UserID, f.master.UserID, "ghost"},
		AssignToAllCrew: true,
	})
	if err != nil {
		t.Fatalf("trigger: %v", err)
	}
	if len(subs) != 1 || subs[0].AssignedTo != f.crew[1].UserID {
		t.Fatalf("subs = %+v", subs)
	}
}

func TestTriggerWork_ByCategory(t *testing.T) {
	f := newFleet(t)
	f.safetyRound(t)

	subs, err := f.subs.TriggerWork(context.Background(), f.master, models.TriggerWorkRequest{
		VesselID:     f.vessel.ID,
		FormCategory: models.CategoryChecklist,
	})
	if err != nil {
		t.Fatalf("trigger: %v", err)
	}
	if len(subs) != 1 || subs[0].AssignedTo != "" {
		t.Fatalf("unscoped trigger = %+v", subs)
	}

	_, err = f.subs.TriggerWork(context.Background(), f.master, models.TriggerWorkRequest{
		VesselID:     f.vessel.ID,
		FormCategory: models.CategoryHR,
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("empty category: %v", err)
	}
}

func TestTriggerWork_Rejected(t *testing.T) {
	f := newFleet(t)
	tmpl := f.safetyRound(t)
	ctx := context.Background()

	cases := []struct {
		name string
		s    models.Session
		req  models.TriggerWorkRequest
		want error
	}{
		{"crew", f.crew[0], models.TriggerWorkRequest{VesselID: f.vessel.ID, TemplateIDs: []string{tmpl.ID}}, models.ErrForbidden},
		{"no vessel", f.master, models.TriggerWorkRequest{TemplateIDs: []string{tmpl.ID}}, models.ErrValidation},
		{"unknown vessel", f.master, models.TriggerWorkRequest{VesselID: "nope", TemplateIDs: []string{tmpl.ID}}, models.ErrNotFound},
		{"no templates", f.master, models.TriggerWorkRequest{VesselID: f.vessel.ID}, models.ErrValidation},
		{"unknown template", f.master, models.TriggerWorkRequest{VesselID: f.vessel.ID, TemplateIDs: []string{"nope"}}, models.ErrNotFound},
	}
	for _, tc := range cases {
		if _, err := f.subs.TriggerWork(ctx, tc.s, tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestSubmission_SubmitAfterFieldRemoved(t *testing.T) {
	f := newFleet(t)
	ctx := context.Background()
	tmpl := f.safetyRound(t)
	ana := f.crew[0]
	sub := mine(t, f.trigger(t, tmpl), ana)

	saved := map[string]any{
		"f1": "All clear",
		"f2": []any{map[string]any{"c1": "Galley", "c2": true}},
	}
	if _, err := f.subs.Update(ctx, ana, sub.ID, models.SubmissionUpdate{FilledData: saved}); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	in := tmpl.Input()
	in.Fields = in.Fields[:1]
	if _, err := f.templates.Update(ctx, f.master, tmpl.ID, in); err != nil {
		t.Fatalf("drop table field: %v", err)
	}

	// Submitting the stored answers as they are.
	done, err := f.subs.Update(ctx, ana, sub.ID, models.SubmissionUpdate{Status: models.StatusSubmitted})
	if err != nil {
		t.Fatalf("submit stored answers: %v", err)
	}
	if done.Status != models.StatusSubmitted {
		t.Fatalf("status = %s", done.Status)
	}

	ben := f.crew[1]
	other := mine(t, f.trigger(t, tmpl), ben)
	if _, err := f.subs.Update(ctx, ben, other.ID, models.SubmissionUpdate{
		Status:     models.StatusSubmitted,
		FilledData: map[string]any{"f1": "ok", "f2": "stale"},
	}); err != nil {
		t.Fatalf("submit with stale key: %v", err)
	}
}

func TestSubmission_FillSubmitApprove(t *testing.T) {
	f := newFleet(t)
	ctx := context.Background()
	tmpl := f.safetyRound(t)
	ana := f.crew[0]
	sub := mine(t, f.trigger(t, tmpl), ana)

	draft, err := f.subs.Update(ctx, ana, sub.ID, models.SubmissionUpdate{FilledData: map[string]any{"f1": "half done"}})
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}
	if draft.Status != models.StatusPending {
		t.Fatalf("draft status = %s", draft.Status)
	}

	// Required remark missing.
	_, err = f.subs.Update(ctx, ana, sub.ID, models.SubmissionUpdate{
		Status:     models.StatusSubmitted,
		FilledData: map[string]any{"f1": ""},
	})
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("submit without remark: %v", err)
	}

	answers := map[string]any{
		"f1": "All clear",
		"f2": []any{map[string]any{"c1": "Galley", "c2": true}},
	}
	done, err := f.subs.Update(ctx, ana, sub.ID, models.SubmissionUpdate{Status: models.StatusSubmitted, FilledData: answers})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if done.Status != models.StatusSubmitted || done.SubmittedBy != ana.UserID || done.SubmittedAt == nil {
		t.Fatalf("after submit: %+v", done)
	}

	if _, err := f.subs.Update(ctx, ana, sub.ID, models.SubmissionUpdate{FilledData: map[string]any{"f1": "late edit"}}); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("edit after submit: %v", err)
	}
	if _, err := f.subs.Approve(ctx, f.staff, sub.ID, ""); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("staff approve: %v", err)
	}

	approved, err := f.subs.Approve(ctx, f.master, sub.ID, "looks good")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != models.StatusApproved || approved.ReviewedBy != f.master.UserID || approved.ApprovalNotes != "looks good" {
		t.Fatalf("after approve: %+v", approved)
	}

	stored, err := f.subs.Get(ctx, f.master, sub.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != models.StatusApproved || stored.FilledData["f1"] != "All clear" {
		t.Fatalf("stored = %+v", stored)
	}
	if _, err := f.subs.Reject(ctx, f.master, sub.ID, "too late"); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("reject approved: %v", err)
	}
}

func TestSubmission_Reject(t *testing.T) {
	f := newFleet(t)
	ctx := context.Background()
	ben := f.crew[1]
	sub := mine(t, f.trigger(t, f.safetyRound(t)), ben)

	if _, err := f.subs.Reject(ctx, f.master, sub.ID, "nothing filled"); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("reject pending: %v", err)
	}
	if _, err := f.subs.Update(ctx, ben, sub.ID, models.SubmissionUpdate{Status: models.StatusSubmitted, FilledData: map[string]any{"f1": "ok"}}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	got, err := f.subs.Update(ctx, f.master, sub.ID, models.SubmissionUpdate{Status: models.StatusRejected, ApprovalNotes: "photo missing"})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got.Status != models.StatusRejected || got.ApprovalNotes != "photo missing" {
		t.Fatalf("after reject: %+v", got)
	}
}

func TestSubmission_CrewVisibility(t *testing.T) {
	f := newFleet(t)
	ctx := context.Background()
	subs := f.trigger(t, f.safetyRound(t))
	ana, ben := f.crew[0], f.crew[1]

	list, err := f.subs.List(ctx, ana, models.SubmissionFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].AssignedTo != ana.UserID {
		t.Fatalf("ana sees %+v", list)
	}

	bens := mine(t, subs, ben)
	if _, err := f.subs.Get(ctx, ana, bens.ID); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("ana reads ben's form: %v", err)
	}
	if _, err := f.subs.Update(ctx, ana, bens.ID, models.SubmissionUpdate{FilledData: map[string]any{"f1": "x"}}); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("ana edits ben's form: %v", err)
	}

	all, err := f.subs.List(ctx, f.master, models.SubmissionFilter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("master list: %d %v", len(all), err)
	}
	other, err := f.subs.List(ctx, f.master, models.SubmissionFilter{VesselID: "another"})
	if err != nil || len(other) != 0 {
		t.Fatalf("master other vessel: %v %v", other, err)
	}
	if _, err := f.subs.List(ctx, f.staff, models.SubmissionFilter{Status: "lost"}); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("bad status: %v", err)
	}
	if _, err := f.subs.Get(ctx, f.staff, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("missing: %v", err)
	}
}

func TestSubmission_ConcurrentApprove(t *testing.T) {
	f := newFleet(t)
	ctx := context.Background()
	cid := f.crew[2]
	sub := mine(t, f.trigger(t, f.safetyRound(t)), cid)
	if _, err := f.subs.Update(ctx, cid, sub.ID, models.SubmissionUpdate{Status: models.StatusSubmitted, FilledData: map[string]any{"f1": "ok"}}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Two reviewers load the same submitted copy.
	first, _ := f.subs.Get(ctx, f.master, sub.ID)
	second, _ := f.subs.Get(ctx, f.master, sub.ID)

	if _, err := f.subs.transition(ctx, f.master, first, lifecycle.ActionApprove, lifecycle.Change{Notes: "first"}); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	if _, err := f.subs.transition(ctx, f.master, second, lifecycle.ActionReject, lifecycle.Change{Notes: "second"}); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("second review: %v", err)
	}
}

func TestSubmission_ReviewerNotes(t *testing.T) {
	f := newFleet(t)
	ctx := context.Background()
	sub := mine(t, f.trigger(t, f.safetyRound(t)), f.crew[0])

	got, err := f.subs.Update(ctx, f.master, sub.ID, models.SubmissionUpdate{ApprovalNotes: "check the galley"})
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	if got.Status != models.StatusPending || got.ApprovalNotes != "check the galley" {
		t.Fatalf("after annotate: %+v", got)
	}
}
