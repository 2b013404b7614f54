// Package seed populates a fresh deployment with deterministic demo data:
// a few staff actors, a spread of inspection reports across the campus, and
// the corrective workflow artifacts they trigger. The generator is driven by
// a fixed-seed PRNG so repeated runs against an empty store produce the same
// dataset.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"evsops/internal/catalog"
	cdrmodels "evsops/internal/cdr/models"
	cdrservice "evsops/internal/cdr/service"
	inspmodels "evsops/internal/inspection/models"
	inspservice "evsops/internal/inspection/service"
	taskservice "evsops/internal/task/service"
	"evsops/pkg/domain"
	"evsops/pkg/requestcontext"
)

const randSeed = 20260401

// Seeder drives the domain services the same way real clients would, so the
// demo data passes every validation and triggers every side effect.
type Seeder struct {
	catalog     *catalog.Catalog
	inspections *inspservice.Service
	cdrs        *cdrservice.Service
	tasks       *taskservice.Service
	logger      *slog.Logger
}

func New(cat *catalog.Catalog, inspections *inspservice.Service, cdrs *cdrservice.Service, tasks *taskservice.Service, logger *slog.Logger) *Seeder {
	return &Seeder{
		catalog:     cat,
		inspections: inspections,
		cdrs:        cdrs,
		tasks:       tasks,
		logger:      logger,
	}
}

// Actors returns the fixed demo staff. Their ids are stable so issued demo
// tokens stay valid across restarts.
func Actors() []domain.Actor {
	return []domain.Actor{
		{ID: "user_inspector_1", Name: "Noura Al-Qahtani", Role: domain.RoleInspector},
		{ID: "user_inspector_2", Name: "Salem Al-Dossari", Role: domain.RoleInspector},
		{ID: "user_supervisor", Name: "Fahad Al-Harbi", Role: domain.RoleSupervisor},
		{ID: "user_executive", Name: "Mona Al-Rashid", Role: domain.RoleExecutive},
	}
}

// Run generates the dataset. Safe to call only against an empty store.
func (s *Seeder) Run(ctx context.Context, now time.Time) error {
	rng := rand.New(rand.NewSource(randSeed))
	actors := Actors()
	inspectors := actors[:2]
	supervisor := actors[2]

	locations := s.catalog.Locations()

	// One month of inspections over a third of the campus. Low scores open
	// draft CDRs through the inspection service itself.
	for i, loc := range locations {
		if i%3 != 0 {
			continue
		}
		inspector := inspectors[i%len(inspectors)]
		at := now.AddDate(0, 0, -rng.Intn(28)-1)
		ictx := requestcontext.WithTime(requestcontext.WithActor(ctx, inspector), at)

		form, ok := s.catalog.FormForLocation(loc.ID)
		if !ok {
			continue
		}
		fraction := 0.55 + rng.Float64()*0.45
		items := make([]inspmodels.ResultItem, 0, len(form.Items))
		for _, item := range form.Items {
			items = append(items, inspmodels.ResultItem{
				ItemID: item.ID,
				Score:  int(float64(item.MaxScore) * fraction),
			})
		}

		report, err := s.inspections.Submit(ictx, inspservice.SubmitRequest{
			LocationID: loc.ID,
			Items:      items,
		})
		if err != nil {
			return fmt.Errorf("seed report for %s: %w", loc.ID, err)
		}

		// The supervisor reviews roughly half of them.
		if rng.Intn(2) == 0 {
			sctx := requestcontext.WithTime(requestcontext.WithActor(ctx, supervisor), at.Add(24*time.Hour))
			if _, err := s.inspections.Review(sctx, report.ID, "Reviewed during demo seeding"); err != nil {
				return fmt.Errorf("seed review for %s: %w", report.ID, err)
			}
		}
	}

	// Walk the auto-opened drafts through adjudication so invoices and
	// statements have substance.
	drafts, err := s.cdrs.List(ctx)
	if err != nil {
		return fmt.Errorf("seed cdr listing: %w", err)
	}
	for i, cdr := range drafts {
		ictx := requestcontext.WithTime(requestcontext.WithActor(ctx, inspectors[0]), now)
		if _, err := s.cdrs.Submit(ictx, cdr.ID); err != nil {
			return fmt.Errorf("seed cdr submit %s: %w", cdr.ReferenceNumber, err)
		}
		sctx := requestcontext.WithTime(requestcontext.WithActor(ctx, supervisor), now)
		decision := cdrservice.FinalizeRequest{
			Decision:  decisionFor(i),
			Comment:   "Adjudicated during demo seeding",
			Signature: supervisor.Name,
		}
		if _, err := s.cdrs.Finalize(sctx, cdr.ID, decision); err != nil {
			return fmt.Errorf("seed cdr finalize %s: %w", cdr.ReferenceNumber, err)
		}
	}

	// A short forward-looking task backlog from the ranked worklist.
	sctx := requestcontext.WithTime(requestcontext.WithActor(ctx, supervisor), now)
	ranked, err := s.tasks.Worklist(sctx)
	if err != nil {
		return fmt.Errorf("seed worklist: %w", err)
	}
	for i, entry := range ranked {
		if i >= 10 {
			break
		}
		_, err := s.tasks.Create(sctx, taskservice.CreateRequest{
			LocationID: entry.Location.ID,
			AssigneeID: inspectors[i%len(inspectors)].ID,
			DueDate:    now.AddDate(0, 0, 3+i),
			Priority:   entry.Score,
		})
		if err != nil {
			return fmt.Errorf("seed task for %s: %w", entry.Location.ID, err)
		}
	}

	s.logger.InfoContext(ctx, "demo data seeded",
		"cdrs", len(drafts), "tasks", min(10, len(ranked)))
	return nil
}

// decisionFor spreads the demo adjudications across all three outcomes,
// weighted toward penalties so the billing pipeline has data.
func decisionFor(i int) cdrmodels.Decision {
	switch i % 4 {
	case 0, 1:
		return cdrmodels.DecisionPenalty
	case 2:
		return cdrmodels.DecisionWarning
	default:
		return cdrmodels.DecisionNoValidCase
	}
}
