// Package wizard drives the two-step trigger-work flow: pick a vessel and
// templates, then choose who on board gets the work.
package wizard

import (
	"context"
	"sync"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/outcome"
)

type Backend interface {
	ListVessels(ctx context.Context) ([]models.Vessel, error)
	ListTemplates(ctx context.Context, category models.Category) ([]models.Template, error)
	ListUsers(ctx context.Context, shipID string, role models.Role) ([]models.User, error)
	TriggerWork(ctx context.Context, req models.TriggerWorkRequest) ([]models.Submission, error)
}

type Step int

const (
	StepSelect Step = 1
	StepAssign Step = 2
)

type Assignment string

const (
	AssignAll    Assignment = "all"
	AssignSelect Assignment = "select"
)

type Wizard struct {
	backend Backend

	// Options loaded from the backend.
	Vessels   []models.Vessel
	Templates []models.Template
	Crew      []models.User

	step        Step
	vesselID    string
	templateIDs []string
	crewIDs     []string
	assignment  Assignment

	mu   sync.Mutex
	busy bool
}

func New(b Backend) *Wizard {
	w := &Wizard{backend: b}
	w.reset()
	return w
}

func (w *Wizard) Step() Step             { return w.step }
func (w *Wizard) VesselID() string       { return w.vesselID }
func (w *Wizard) Assignment() Assignment { return w.assignment }
func (w *Wizard) TemplateIDs() []string  { return append([]string{}, w.templateIDs...) }
func (w *Wizard) CrewIDs() []string      { return append([]string{}, w.crewIDs...) }

// Open loads the vessel and template choices. A failure leaves the wizard
// open with whatever it had, so the user can retry.
func (w *Wizard) Open(ctx context.Context) error {
	vessels, err := w.backend.ListVessels(ctx)
	if err != nil {
		return outcome.Backend("load vessels", err)
	}
	w.Vessels = vessels
	templates, err := w.backend.ListTemplates(ctx, "")
	if err != nil {
		return outcome.Backend("load templates", err)
	}
	w.Templates = templates
	return nil
}

// SelectVessel switches vessel and refetches its crew. Crew selections that
// are not on the new vessel are dropped.
func (w *Wizard) SelectVessel(ctx context.Context, id string) error {
	w.vesselID = id
	if id == "" {
		w.Crew = nil
		w.crewIDs = nil
		return nil
	}
	crew, err := w.backend.ListUsers(ctx, id, models.RoleCrew)
	if err != nil {
		w.Crew = nil
		w.crewIDs = nil
		return outcome.Backend("load crew", err)
	}
	w.Crew = crew
	onBoard := make(map[string]bool, len(crew))
	for _, u := range crew {
		onBoard[u.ID] = true
	}
	kept := w.crewIDs[:0]
	for _, id := range w.crewIDs {
		if onBoard[id] {
			kept = append(kept, id)
		}
	}
	w.crewIDs = kept
	return nil
}

func (w *Wizard) ToggleTemplate(id string) {
	w.templateIDs = toggle(w.templateIDs, id)
}

func (w *Wizard) ToggleCrew(id string) {
	w.crewIDs = toggle(w.crewIDs, id)
}

// Next advances to assignment once a vessel and at least one template are
// chosen.
func (w *Wizard) Next() error {
	if w.vesselID == "" {
		return outcome.Invalid("next", "select a vessel")
	}
	if len(w.templateIDs) == 0 {
		return outcome.Invalid("next", "select at least one template")
	}
	w.step = StepAssign
	return nil
}

// Back returns to the first step without losing any selection.
func (w *Wizard) Back() {
	w.step = StepSelect
}

func (w *Wizard) SetAssignment(a Assignment) error {
	if a != AssignAll && a != AssignSelect {
		return outcome.Invalid("assign", "assignment must be all or select")
	}
	w.assignment = a
	return nil
}

// Confirm sends the single trigger-work request. On success the wizard
// resets and the created submissions are returned; on failure every
// selection is kept.
func (w *Wizard) Confirm(ctx context.Context) ([]models.Submission, error) {
	const op = "trigger work"
	if w.step != StepAssign {
		return nil, outcome.Invalid(op, "choose the assignment first")
	}
	if w.vesselID == "" {
		return nil, outcome.Invalid(op, "select a vessel")
	}
	if len(w.templateIDs) == 0 {
		return nil, outcome.Invalid(op, "select at least one template")
	}
	req := models.TriggerWorkRequest{
		VesselID:        w.vesselID,
		TemplateIDs:     w.TemplateIDs(),
		AssignToAllCrew: w.assignment == AssignAll,
	}
	if w.assignment == AssignSelect {
		if len(w.crewIDs) == 0 {
			return nil, outcome.Invalid(op, "select at least one crew member")
		}
		req.AssignedCrewIDs = w.CrewIDs()
	}

	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return nil, outcome.Busy(op)
	}
	w.busy = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
	}()

	subs, err := w.backend.TriggerWork(ctx, req)
	if err != nil {
		return nil, outcome.Backend(op, err)
	}
	w.reset()
	return subs, nil
}

// Cancel discards every selection; the next open starts fresh.
func (w *Wizard) Cancel() {
	w.reset()
}

func (w *Wizard) reset() {
	w.step = StepSelect
	w.vesselID = ""
	w.templateIDs = []string{}
	w.crewIDs = []string{}
	w.assignment = AssignAll
	w.Crew = nil
}

func toggle(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}
