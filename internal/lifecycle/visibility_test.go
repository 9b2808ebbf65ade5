package lifecycle

import (
	"testing"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

func sampleList() []models.Submission {
	return []models.Submission{
		{ID: "a", Status: models.StatusPending, AssignedTo: crew.UserID},
		{ID: "b", Status: models.StatusSubmitted, AssignedTo: crew.UserID},
		{ID: "c", Status: models.StatusPending, AssignedTo: other.UserID},
		{ID: "d", Status: models.StatusSubmitted, AssignedTo: other.UserID},
		{ID: "e", Status: models.StatusPending},
		{ID: "f", Status: models.StatusApproved, AssignedTo: crew.UserID},
	}
}

func ids(subs []models.Submission) string {
	out := ""
	for _, s := range subs {
		out += s.ID
	}
	return out
}

func TestVisible(t *testing.T) {
	if got := ids(Visible(crew, sampleList())); got != "abf" {
		t.Fatalf("crew sees %q, want abf", got)
	}
	if got := ids(Visible(staff, sampleList())); got != "abcdef" {
		t.Fatalf("staff sees %q", got)
	}
	if got := ids(Visible(master, sampleList())); got != "abcdef" {
		t.Fatalf("master sees %q", got)
	}
}

func TestVisible_CrewWithoutIDSeesNoUnassigned(t *testing.T) {
	anon := models.Session{Role: models.RoleCrew, Active: true}
	if got := ids(Visible(anon, sampleList())); got != "" {
		t.Fatalf("crew without id sees %q, want nothing", got)
	}
}

func TestFilterTab(t *testing.T) {
	cases := []struct {
		s    models.Session
		tab  Tab
		want string
	}{
		{crew, TabAll, "abf"},
		{crew, TabPending, "a"},
		{crew, TabAction, "a"},
		{master, TabPending, "ace"},
		{master, TabAction, "bd"},
		{staff, TabAction, "bd"},
		{staff, TabAll, "abcdef"},
	}
	for _, tc := range cases {
		if got := ids(FilterTab(tc.s, sampleList(), tc.tab)); got != tc.want {
			t.Fatalf("%s/%s = %q, want %q", tc.s.Role, tc.tab, got, tc.want)
		}
	}
}
