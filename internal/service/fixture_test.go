package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/config"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/db"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/repository"
)

// fleet is a vessel with a master and three crew, backed by a fresh sqlite
// file.
type fleet struct {
	auth      *AuthService
	vessels   *VesselService
	templates *TemplateService
	manuals   *ManualService
	subs      *SubmissionService
	dashboard *DashboardService

	staff  models.Session
	master models.Session
	crew   []models.Session
	vessel *models.Vessel
}

func newFleet(t *testing.T) *fleet {
	t.Helper()
	ctx := context.Background()
	gdb, err := db.Open(config.DatabaseConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close(gdb) })
	if err := repository.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	users := repository.NewUserRepo(gdb)
	vessels := repository.NewVesselRepo(gdb)
	templates := repository.NewTemplateRepo(gdb)
	manuals := repository.NewManualRepo(gdb)
	subRepo := repository.NewSubmissionRepo(gdb)

	f := &fleet{
		auth:      NewAuthService(users, vessels, "test-secret", time.Hour),
		vessels:   NewVesselService(vessels, users),
		templates: NewTemplateService(templates),
		manuals:   NewManualService(manuals),
		subs:      NewSubmissionService(subRepo, templates, vessels, users),
		staff:     models.Session{UserID: "office", Name: "Office", Role: models.RoleStaff, Active: true},
	}
	f.dashboard = NewDashboardService(templates, manuals, vessels, subRepo, f.subs)

	f.vessel, err = f.vessels.Create(ctx, f.staff, VesselInput{Name: "MV Aurora", IMO: "9123456"})
	if err != nil {
		t.Fatalf("create vessel: %v", err)
	}
	f.master = f.addUser(t, "capt@aurora.test", "Captain", models.RoleMaster, f.vessel.ID)
	for _, name := range []string{"ana", "ben", "cid"} {
		f.crew = append(f.crew, f.addUser(t, name+"@aurora.test", name, models.RoleCrew, f.vessel.ID))
	}
	return f
}

func (f *fleet) addUser(t *testing.T, email, name string, role models.Role, shipID string) models.Session {
	t.Helper()
	u, err := f.auth.CreateUser(context.Background(), f.staff, CreateUserInput{
		Email: email, Password: "secret1", Name: name, Role: role, ShipID: shipID,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u.Session()
}

// safetyRound is a checklist with one required remark and an extinguisher
// table.
func (f *fleet) safetyRound(t *testing.T) *models.Template {
	t.Helper()
	tmpl, err := f.templates.Create(context.Background(), f.master, models.TemplateInput{
		Name:     "Weekly Safety Round",
		Category: models.CategoryChecklist,
		Fields: []models.FieldSchema{
			{ID: "f1", Label: "Remarks", Type: models.FieldText, Required: true},
			{ID: "f2", Label: "Extinguishers", Type: models.FieldTable, Columns: []models.FieldSchema{
				{ID: "c1", Label: "Location", Type: models.FieldText},
				{ID: "c2", Label: "Sealed", Type: models.FieldBoolean},
			}},
		},
		ApprovalRequired: true,
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	return tmpl
}

func (f *fleet) trigger(t *testing.T, tmpl *models.Template) []models.Submission {
	t.Helper()
	subs, err := f.subs.TriggerWork(context.Background(), f.master, models.TriggerWorkRequest{
		VesselID:        f.vessel.ID,
		TemplateIDs:     []string{tmpl.ID},
		AssignToAllCrew: true,
	})
	if err != nil {
		t.Fatalf("trigger work: %v", err)
	}
	return subs
}

// mine returns the submission assigned to s.
func mine(t *testing.T, subs []models.Submission, s models.Session) models.Submission {
	t.Helper()
	for _, sub := range subs {
		if sub.AssignedTo == s.UserID {
			return sub
		}
	}
	t.Fatalf("no submission assigned to %s", s.UserID)
	return models.Submission{}
}
