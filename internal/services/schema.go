package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/clients/redis"
	"github.com/verdantmarket/verdant-backend/internal/forms"
	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/repos"
)

// SchemaService owns flow section documents: admin reads, diff-based
// saves, and the respondent-facing cached load path. Saves are
// last-write-wins; two concurrent editors silently overwrite each
// other (known gap, no optimistic locking).
type SchemaService interface {
	ListFlows(ctx context.Context) ([]string, error)
	LoadSections(ctx context.Context, flowName string) ([]forms.Section, error)
	SaveSections(ctx context.Context, flowName string, diff forms.SectionsDiff) ([]forms.Section, error)
}

type schemaService struct {
	db       *gorm.DB
	log      *logger.Logger
	flowRepo repos.FlowRepo
	cache    redis.SchemaCache
}

// NewSchemaService accepts a nil cache; loads then always hit the
// database.
func NewSchemaService(db *gorm.DB, baseLog *logger.Logger, flowRepo repos.FlowRepo, cache redis.SchemaCache) SchemaService {
	return &schemaService{
		db:       db,
		log:      baseLog.With("service", "SchemaService"),
		flowRepo: flowRepo,
		cache:    cache,
	}
}

func (ss *schemaService) ListFlows(ctx context.Context) ([]string, error) {
	return ss.flowRepo.ListFlowNames(ctx, nil)
}

func (ss *schemaService) LoadSections(ctx context.Context, flowName string) ([]forms.Section, error) {
	if ss.cache != nil {
		raw, hit, err := ss.cache.Get(ctx, flowName)
		if err != nil {
			ss.log.Warn("schema cache read failed", "error", err, "flow", flowName)
		} else if hit {
			sections, err := forms.ParseSections(raw)
			if err == nil {
				return sections, nil
			}
			ss.log.Warn("schema cache held malformed document", "error", err, "flow", flowName)
		}
	}

	flow, err := ss.flowRepo.GetByFlowName(ctx, nil, flowName)
	if err != nil {
		return nil, fmt.Errorf("load flow %q: %w", flowName, err)
	}
	if flow == nil {
		return nil, fmt.Errorf("%w: %q", ErrFlowNotFound, flowName)
	}
	sections, err := forms.ParseSections(flow.Data)
	if err != nil {
		return nil, err
	}

	if ss.cache != nil {
		if err := ss.cache.Set(ctx, flowName, flow.Data); err != nil {
			ss.log.Warn("schema cache write failed", "error", err, "flow", flowName)
		}
	}
	return sections, nil
}

// SaveSections fetches the current section list, applies the diff
// (delete, shallow-merge, append) and writes the whole resulting
// array back as one document.
func (ss *schemaService) SaveSections(ctx context.Context, flowName string, diff forms.SectionsDiff) ([]forms.Section, error) {
	flow, err := ss.flowRepo.GetByFlowName(ctx, nil, flowName)
	if err != nil {
		return nil, fmt.Errorf("load flow %q: %w", flowName, err)
	}

	var existing []forms.Section
	if flow != nil {
		existing, err = forms.ParseSections(flow.Data)
		if err != nil {
			return nil, err
		}
	}

	merged := forms.ApplySectionsDiff(existing, diff)
	data, err := forms.MarshalSections(merged)
	if err != nil {
		return nil, err
	}
	if err := ss.flowRepo.UpsertData(ctx, nil, flowName, data); err != nil {
		return nil, fmt.Errorf("save flow %q: %w", flowName, err)
	}

	if ss.cache != nil {
		if err := ss.cache.Invalidate(ctx, flowName); err != nil {
			ss.log.Warn("schema cache invalidation failed", "error", err, "flow", flowName)
		}
	}
	ss.log.Info("Flow sections saved", "flow", flowName, "sections", len(merged), "modified", len(diff.Modified), "deleted", len(diff.DeletedIDs))
	return merged, nil
}
