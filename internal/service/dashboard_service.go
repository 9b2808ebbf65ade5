package service

import (
	"context"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/lifecycle"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/repository"
)

type DashboardService struct {
	templates *repository.TemplateRepo
	manuals   *repository.ManualRepo
	vessels   *repository.VesselRepo
	subRepo   *repository.SubmissionRepo
	subs      *SubmissionService
}

func NewDashboardService(templates *repository.TemplateRepo, manuals *repository.ManualRepo, vessels *repository.VesselRepo, subRepo *repository.SubmissionRepo, subs *SubmissionService) *DashboardService {
	return &DashboardService{templates: templates, manuals: manuals, vessels: vessels, subRepo: subRepo, subs: subs}
}

type Dashboard struct {
	TemplateCount   int64                   `json:"template_count"`
	ManualCount     int64                   `json:"manual_count"`
	VesselCount     int64                   `json:"vessel_count"`
	SubmissionCount int64                   `json:"submission_count"`
	ByStatus        map[models.Status]int64 `json:"by_status"`
	NeedsAction     int64                   `json:"needs_action"`
}

// Stats counts what the caller can see. Submission figures follow the same
// visibility rules as the submission list.
func (s *DashboardService) Stats(ctx context.Context, sess models.Session) (*Dashboard, error) {
	d := &Dashboard{ByStatus: map[models.Status]int64{}}
	var err error
	if d.TemplateCount, err = s.templates.Count(ctx); err != nil {
		return nil, err
	}
	if d.ManualCount, err = s.manuals.Count(ctx); err != nil {
		return nil, err
	}
	if d.VesselCount, err = s.vessels.Count(ctx); err != nil {
		return nil, err
	}
	if !sess.IsCrew() {
		vesselID := ""
		if sess.IsMaster() {
			vesselID = sess.ShipID
		}
		if d.ByStatus, err = s.subRepo.CountByStatus(ctx, vesselID); err != nil {
			return nil, err
		}
		for _, n := range d.ByStatus {
			d.SubmissionCount += n
		}
		d.NeedsAction = d.ByStatus[models.StatusSubmitted]
		return d, nil
	}

	subs, err := s.subs.List(ctx, sess, models.SubmissionFilter{})
	if err != nil {
		return nil, err
	}
	for i := range subs {
		d.ByStatus[subs[i].Status]++
		if lifecycle.NeedsAction(sess, &subs[i]) {
			d.NeedsAction++
		}
	}
	d.SubmissionCount = int64(len(subs))
	return d, nil
}
