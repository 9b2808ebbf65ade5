package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/console"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/editor"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/lifecycle"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/wizard"
)

func runMe(ctx context.Context, a *app, _ []string) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	return printJSON(u)
}

func runDashboard(ctx context.Context, a *app, _ []string) error {
	d, err := a.api.Dashboard(ctx)
	if err != nil {
		return err
	}
	return printJSON(d)
}

func runVessels(ctx context.Context, a *app, _ []string) error {
	vs, err := a.api.ListVessels(ctx)
	if err != nil {
		return err
	}
	return printJSON(vs)
}

func runTemplates(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("templates", flag.ExitOnError)
	category := fs.String("category", "", "Checklist, Report, ISM, PMS or HR")
	fs.Parse(args)
	ts, err := a.api.ListTemplates(ctx, models.Category(*category))
	if err != nil {
		return err
	}
	return printJSON(ts)
}

func runTemplate(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("template", flag.ExitOnError)
	id := fs.String("id", "", "template id")
	fs.Parse(args)
	t, err := a.api.GetTemplate(ctx, *id)
	if err != nil {
		return err
	}
	return printJSON(t)
}

// runNewTemplate loads a template body from JSON into an editor draft and
// saves it; with -id the existing template is updated in place.
func runNewTemplate(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("new-template", flag.ExitOnError)
	file := fs.String("file", "", "JSON file with name, category and fields")
	id := fs.String("id", "", "template to update")
	fs.Parse(args)

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	d := editor.NewDraft()
	if *id != "" {
		t, err := a.api.GetTemplate(ctx, *id)
		if err != nil {
			return err
		}
		d = editor.EditDraft(t)
	}
	in := d.Input()
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("parse %s: %w", *file, err)
	}
	d.Name, d.Category, d.Description = in.Name, in.Category, in.Description
	d.ApprovalRequired, d.ManualReferenceID = in.ApprovalRequired, in.ManualReferenceID
	d.Scheduled, d.Role, d.Fields = in.Scheduled, in.Role, in.Fields

	t, err := d.Save(ctx, a.api)
	if err != nil {
		return err
	}
	return printJSON(t)
}

func runSubmissions(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("submissions", flag.ExitOnError)
	tab := fs.String("tab", "all", "all, pending or action")
	vessel := fs.String("vessel", "", "vessel id")
	status := fs.String("status", "", "status filter")
	template := fs.String("template", "", "template id")
	fs.Parse(args)

	screen := console.NewSubmissions(a.api, a.session)
	screen.Tab = lifecycle.Tab(*tab)
	screen.Filter = models.SubmissionFilter{
		VesselID:   *vessel,
		Status:     models.Status(*status),
		TemplateID: *template,
	}
	if err := screen.Load(ctx); err != nil {
		return err
	}
	return printJSON(screen.Rows())
}

func runShow(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	id := fs.String("id", "", "submission id")
	fs.Parse(args)
	fv, err := openForm(ctx, a, *id)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"submission": fv.Submission,
		"editable":   fv.Editable,
		"fields":     fv.Fields,
	})
}

func runTrigger(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("trigger", flag.ExitOnError)
	vessel := fs.String("vessel", "", "vessel id")
	templates := fs.String("templates", "", "comma-separated template ids")
	crew := fs.String("crew", "", "comma-separated crew ids; empty assigns all crew")
	fs.Parse(args)

	w := wizard.New(a.api)
	if err := w.SelectVessel(ctx, *vessel); err != nil {
		return err
	}
	for _, id := range splitList(*templates) {
		w.ToggleTemplate(id)
	}
	if err := w.Next(); err != nil {
		return err
	}
	if ids := splitList(*crew); len(ids) > 0 {
		if err := w.SetAssignment(wizard.AssignSelect); err != nil {
			return err
		}
		for _, id := range ids {
			w.ToggleCrew(id)
		}
	}
	subs, err := w.Confirm(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d submission(s) created\n", len(subs))
	return printJSON(subs)
}

func runFill(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	id := fs.String("id", "", "submission id")
	answers := fs.String("answers", "{}", `answers as JSON, e.g. {"f1":"All clear"}`)
	submit := fs.Bool("submit", false, "submit for review instead of saving a draft")
	fs.Parse(args)

	var data map[string]any
	if err := json.Unmarshal([]byte(*answers), &data); err != nil {
		return fmt.Errorf("parse answers: %w", err)
	}
	screen := console.NewSubmissions(a.api, a.session)
	fv, err := openFormOn(ctx, a, screen, *id)
	if err != nil {
		return err
	}
	for k, v := range data {
		if err := fv.SetAnswer(k, v); err != nil {
			return err
		}
	}
	if *submit {
		err = screen.Submit(ctx, fv)
	} else {
		err = screen.SaveDraft(ctx, fv)
	}
	if err != nil {
		return err
	}
	return printJSON(fv.Submission)
}

func runApprove(ctx context.Context, a *app, args []string) error {
	return review(ctx, a, "approve", args)
}

func runReject(ctx context.Context, a *app, args []string) error {
	return review(ctx, a, "reject", args)
}

func review(ctx context.Context, a *app, verb string, args []string) error {
	fs := flag.NewFlagSet(verb, flag.ExitOnError)
	id := fs.String("id", "", "submission id")
	notes := fs.String("notes", "", "review notes")
	fs.Parse(args)

	screen := console.NewSubmissions(a.api, a.session)
	fv, err := openFormOn(ctx, a, screen, *id)
	if err != nil {
		return err
	}
	if verb == "approve" {
		err = screen.Approve(ctx, fv, *notes)
	} else {
		err = screen.Reject(ctx, fv, *notes)
	}
	if err != nil {
		return err
	}
	return printJSON(fv.Submission)
}

func runExport(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	template := fs.String("template", "", "template id")
	out := fs.String("out", "submissions.xlsx", "output file")
	fs.Parse(args)

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := a.api.ExportSubmissions(ctx, *template, f); err != nil {
		f.Close()
		os.Remove(*out)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", *out)
	return nil
}

func runUploadManuals(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("upload-manuals", flag.ExitOnError)
	typ := fs.String("type", "", "FPM, SMM, CPM or Other")
	title := fs.String("title", "", "title when uploading a single file")
	version := fs.String("version", "1.0", "manual version")
	desc := fs.String("description", "", "description")
	fs.Parse(args)

	batch := &console.ManualUpload{
		Title:       *title,
		Type:        models.ManualType(*typ),
		Version:     *version,
		Description: *desc,
	}
	for _, path := range fs.Args() {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		batch.Files = append(batch.Files, console.File{Name: path, Body: f})
	}
	res, err := batch.Run(ctx, a.api)
	if err != nil {
		return err
	}
	for _, fail := range res.Failures {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", fail.File, describe(fail.Err))
	}
	fmt.Fprintln(os.Stderr, res.Message)
	if err := printJSON(res.Created); err != nil {
		return err
	}
	if !res.Closed {
		return fmt.Errorf("%d of %d uploads failed", res.Failed, len(batch.Files))
	}
	return nil
}

func openForm(ctx context.Context, a *app, id string) (*console.FormView, error) {
	return openFormOn(ctx, a, console.NewSubmissions(a.api, a.session), id)
}

func openFormOn(ctx context.Context, a *app, screen *console.Submissions, id string) (*console.FormView, error) {
	sub, err := a.api.GetSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	return screen.Open(ctx, *sub)
}
