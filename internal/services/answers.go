package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verdantmarket/verdant-backend/internal/forms"
	"github.com/verdantmarket/verdant-backend/internal/logger"
	"github.com/verdantmarket/verdant-backend/internal/onboarding"
	"github.com/verdantmarket/verdant-backend/internal/repos"
)

// RenderedStep is one step of a rendered form page.
type RenderedStep struct {
	ID     int64                 `json:"id"`
	Order  int                   `json:"order"`
	Inputs []forms.RenderedInput `json:"inputs"`
}

// RenderedSection is one visible section with its steps rendered
// against the respondent's stored answers.
type RenderedSection struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Color string         `json:"color,omitempty"`
	Order int            `json:"order"`
	Steps []RenderedStep `json:"steps"`
}

// RenderedForm is the respondent-facing view of a flow: conditionally
// hidden sections are already filtered out.
type RenderedForm struct {
	FlowName string            `json:"flow_name"`
	Sections []RenderedSection `json:"sections"`
}

// AnswerService joins flow schemas with per-respondent answer
// documents: it renders forms and applies answer writes.
type AnswerService interface {
	GetForm(ctx context.Context, userID uuid.UUID, flowName string) (*RenderedForm, error)
	SaveAnswer(ctx context.Context, userID uuid.UUID, flowName, alias string, value any) error
	SaveAnswers(ctx context.Context, userID uuid.UUID, flowName string, values map[string]any) error
}

type answerService struct {
	db           *gorm.DB
	log          *logger.Logger
	profileRepo  repos.ProfileRepo
	progressRepo repos.ProgressRepo
	schemaSvc    SchemaService
}

func NewAnswerService(db *gorm.DB, baseLog *logger.Logger, profileRepo repos.ProfileRepo, progressRepo repos.ProgressRepo, schemaSvc SchemaService) AnswerService {
	return &answerService{
		db:           db,
		log:          baseLog.With("service", "AnswerService"),
		profileRepo:  profileRepo,
		progressRepo: progressRepo,
		schemaSvc:    schemaSvc,
	}
}

func (as *answerService) loadDocument(ctx context.Context, userID uuid.UUID) (forms.AnswerDocument, error) {
	profile, err := as.profileRepo.GetByUUID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
	}
	return forms.ParseAnswers(profile.Data)
}

func (as *answerService) GetForm(ctx context.Context, userID uuid.UUID, flowName string) (*RenderedForm, error) {
	doc, err := as.loadDocument(ctx, userID)
	if err != nil {
		return nil, err
	}
	sections, err := as.schemaSvc.LoadSections(ctx, flowName)
	if err != nil {
		return nil, err
	}

	form := &RenderedForm{FlowName: flowName}
	for _, sec := range forms.VisibleSections(sections, doc) {
		rs := RenderedSection{
			ID:    sec.ID,
			Name:  sec.Name,
			Color: sec.Color,
			Order: sec.Order,
		}
		for _, step := range sec.Steps {
			st := RenderedStep{ID: step.ID, Order: step.Order}
			for _, q := range step.Questions {
				st.Inputs = append(st.Inputs, forms.Render(q, doc))
			}
			rs.Steps = append(rs.Steps, st)
		}
		form.Sections = append(form.Sections, rs)
	}
	return form, nil
}

// applyValue validates one write against the question config (when one
// exists) and sets it on the document. Aliases with no config are
// accepted as plain values so stale clients never lose data.
func (as *answerService) applyValue(doc forms.AnswerDocument, index map[string]forms.Question, alias string, value any) error {
	q, known := index[alias]
	if !known {
		doc.Set(alias, value)
		return nil
	}
	if !q.IsEditable() {
		return fmt.Errorf("%w: %q", ErrNotEditable, alias)
	}
	if q.Type == forms.QuestionMultiSelection {
		current, _ := doc.Get(alias)
		next, err := forms.ApplySelection(forms.StringSlice(current), forms.StringSlice(value), q.Props)
		if err != nil {
			return err
		}
		doc.Set(alias, next)
		return nil
	}
	doc.Set(alias, value)
	return nil
}

func (as *answerService) SaveAnswer(ctx context.Context, userID uuid.UUID, flowName, alias string, value any) error {
	return as.SaveAnswers(ctx, userID, flowName, map[string]any{alias: value})
}

// SaveAnswers applies all writes against the in-memory document and
// persists once; any rejected value fails the whole batch before the
// write.
func (as *answerService) SaveAnswers(ctx context.Context, userID uuid.UUID, flowName string, values map[string]any) error {
	doc, err := as.loadDocument(ctx, userID)
	if err != nil {
		return err
	}
	sections, err := as.schemaSvc.LoadSections(ctx, flowName)
	if err != nil {
		return err
	}
	index := forms.QuestionIndex(sections)

	for alias, value := range values {
		if err := as.applyValue(doc, index, alias, value); err != nil {
			return err
		}
	}

	data, err := doc.Marshal()
	if err != nil {
		return err
	}
	if err := as.profileRepo.UpdateData(ctx, nil, userID, data); err != nil {
		return fmt.Errorf("save answers: %w", err)
	}

	// The first questionnaire save is what starts the KYC stage.
	row, err := as.progressRepo.GetByUserAndStage(ctx, nil, userID, onboarding.StageKYC)
	if err != nil {
		return err
	}
	if row == nil || row.Status == string(onboarding.StatusNotStarted) {
		if err := as.progressRepo.UpsertStatus(ctx, nil, userID, onboarding.StageKYC, string(onboarding.StatusInProgress)); err != nil {
			return err
		}
	}

	as.log.Debug("Answers saved", "user_id", userID, "flow", flowName, "count", len(values))
	return nil
}
