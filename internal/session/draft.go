package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/harrison/intake/internal/importer"
	"github.com/harrison/intake/internal/models"
	"github.com/harrison/intake/internal/survey"
)

// Draft is an in-progress admission survey. It owns the answer set the
// rule engine is run against until the draft is submitted.
type Draft struct {
	ID string

	session   *Session
	admission models.Admission
	answers   models.AnswerSet
	closed    bool
}

// StartSurvey opens a draft with an empty answer set for an admission
func (s *Session) StartSurvey(admissionID string) (*Draft, error) {
	a, err := s.Admission(admissionID)
	if err != nil {
		return nil, err
	}
	return &Draft{
		ID:        uuid.New().String(),
		session:   s,
		admission: a,
		answers:   make(models.AnswerSet),
	}, nil
}

// AdmissionID returns the admission the draft belongs to
func (d *Draft) AdmissionID() string {
	return d.admission.ProviderAdmissionID
}

// Closed reports whether the draft has been submitted
func (d *Draft) Closed() bool {
	return d.closed
}

// Answers returns a copy of the current answers
func (d *Draft) Answers() models.AnswerSet {
	return d.answers.Clone()
}

// Set records one answer. The sequence number must be in the schema.
func (d *Draft) Set(seq, value string) error {
	if d.closed {
		return ErrDraftClosed
	}
	if !d.session.schema.Has(seq) {
		return fmt.Errorf("%w: %s", survey.ErrQuestionNotFound, seq)
	}
	d.answers[seq] = value
	return nil
}

// Load writes every entry of answers over the draft, including answers
// for sequence numbers outside the schema.
func (d *Draft) Load(answers models.AnswerSet) error {
	if d.closed {
		return ErrDraftClosed
	}
	d.answers = d.answers.Merge(answers)
	return nil
}

// Import merges a pasted JSON answer set into the draft. On error the
// draft is left unchanged.
func (d *Draft) Import(raw string) (*importer.Result, error) {
	if d.closed {
		return nil, ErrDraftClosed
	}
	result, err := d.session.importer.Import(raw, d.answers)
	if err != nil {
		return nil, err
	}
	d.answers = result.Answers
	return result, nil
}

// Validate runs full validation over the current answers
func (d *Draft) Validate() models.ErrorSet {
	return survey.ValidateAll(d.session.schema, d.answers)
}

// Fields resolves every question the way a form renders it
func (d *Draft) Fields() []survey.FieldState {
	_, states := survey.ResolveAll(d.session.schema, d.answers)
	return states
}

// Submit validates the draft and, when it has no errors, stores the
// resolved and formatted answers as a SurveyRecord and closes the draft.
// On validation failure the ErrorSet is returned with ErrValidationFailed
// and the draft stays open.
func (s *Session) Submit(d *Draft) (*models.SurveyRecord, models.ErrorSet, error) {
	if d.session != s {
		return nil, nil, fmt.Errorf("draft %s belongs to another session", d.ID)
	}
	if d.closed {
		return nil, nil, ErrDraftClosed
	}

	if errs := d.Validate(); !errs.IsEmpty() {
		return nil, errs, fmt.Errorf("%w: %d error(s)", ErrValidationFailed, len(errs))
	}

	resolved, _ := survey.ResolveAll(s.schema, d.answers)
	record := models.SurveyRecord{
		ID:                  d.ID,
		ProviderID:          d.admission.ProviderID,
		ProviderClientID:    d.admission.ProviderClientID,
		ProviderAdmissionID: d.admission.ProviderAdmissionID,
		Answers:             survey.Format(s.schema, resolved),
		Order:               s.schema.Order(),
	}

	s.surveys = append(s.surveys, record)
	d.closed = true
	return &record, nil, nil
}
