// Package devseed populates a development database with the demo
// marketplace catalog so the app is browsable immediately after start.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/docai/flow-studio/internal/data"
	"github.com/docai/flow-studio/internal/domain/model"
)

// Run executes the development seeding workflow against the provided DB.
// It is idempotent: existing listings are left untouched.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	templates := data.NewTemplateRepo(db)

	failures := 0
	for _, spec := range defaultTemplateSeeds() {
		created, err := createTemplate(ctx, templates, spec.request)
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed template", "name", spec.request.Name, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			msg := "template already exists"
			if created {
				msg = "seeded template"
			}
			logger.InfoContext(ctx, msg, "name", spec.request.Name)
		}
		if created && spec.downloads > 0 {
			if downloadsErr := setSeedDownloads(ctx, db, spec.request.Name, spec.downloads); downloadsErr != nil {
				if logger != nil {
					logger.WarnContext(ctx, "failed to set seed downloads", "name", spec.request.Name, "error", downloadsErr)
				}
			}
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

type templateSeedSpec struct {
	request   *model.CreateTemplateRequest
	downloads int
}

// defaultTemplateSeeds mirrors the demo marketplace catalog: the three
// creator dashboard rows plus one listing per remaining category.
func defaultTemplateSeeds() []templateSeedSpec {
	return []templateSeedSpec{
		{
			request: &model.CreateTemplateRequest{
				Name:        "Modern Resume Template",
				Description: "A clean, single-column resume with strong typography and generous whitespace.",
				Category:    model.TemplateCategoryResume,
				CreatorID:   "seed-creator",
				CreatorName: stringPtr("Demo Creator"),
				Tags:        []string{"modern", "minimal"},
			},
			downloads: 234,
		},
		{
			request: &model.CreateTemplateRequest{
				Name:        "Clean Invoice Layout",
				Description: "An itemized invoice with totals, tax lines, and payment terms.",
				Category:    model.TemplateCategoryInvoice,
				CreatorID:   "seed-creator",
				CreatorName: stringPtr("Demo Creator"),
				Tags:        []string{"billing", "freelance"},
			},
			downloads: 156,
		},
		{
			request: &model.CreateTemplateRequest{
				Name:        "Professional Cover Letter",
				Description: "A formal cover letter structure with a matching header block.",
				Category:    model.TemplateCategoryLetter,
				CreatorID:   "seed-creator",
				CreatorName: stringPtr("Demo Creator"),
				Tags:        []string{"job-search"},
			},
			downloads: 89,
		},
		{
			request: &model.CreateTemplateRequest{
				Name:        "Project Proposal Outline",
				Description: "A scoped proposal with timeline, budget, and deliverables sections.",
				Category:    model.TemplateCategoryProposal,
				CreatorID:   "seed-creator",
				CreatorName: stringPtr("Demo Creator"),
				Tags:        []string{"business"},
			},
		},
		{
			request: &model.CreateTemplateRequest{
				Name:        "Freelance Contract",
				Description: "A short-form services agreement with payment and termination clauses.",
				Category:    model.TemplateCategoryContract,
				CreatorID:   "seed-creator",
				CreatorName: stringPtr("Demo Creator"),
				Tags:        []string{"legal", "freelance"},
			},
		},
	}
}

func createTemplate(ctx context.Context, repo *data.TemplateRepo, req *model.CreateTemplateRequest) (bool, error) {
	if _, err := repo.Create(ctx, req); err != nil {
		if errors.Is(err, data.ErrTemplateNameExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// setSeedDownloads backfills demo download counts directly; the repo only
// exposes single increments, which is the right API everywhere else.
func setSeedDownloads(ctx context.Context, db *sql.DB, name string, downloads int) error {
	_, err := db.ExecContext(ctx,
		`UPDATE templates SET downloads = $1 WHERE name = $2 AND creator_id = 'seed-creator'`,
		downloads, name)
	return err
}

func stringPtr(s string) *string { return &s }
