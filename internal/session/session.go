// Package session holds the records of one intake working session in
// memory: clients, their admissions, survey drafts, submitted surveys and
// discharges.
//
// A Session is used by a single caller at a time and is not safe for
// concurrent use.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/intake/internal/config"
	"github.com/harrison/intake/internal/importer"
	"github.com/harrison/intake/internal/models"
	"github.com/harrison/intake/internal/records"
	"github.com/harrison/intake/internal/survey"
)

var (
	// ErrClientNotFound is returned when a client id is not in the session
	ErrClientNotFound = errors.New("client not found")
	// ErrAdmissionNotFound is returned when an admission id is not in the session
	ErrAdmissionNotFound = errors.New("admission not found")
	// ErrDuplicateRecord is returned when an id is already taken
	ErrDuplicateRecord = errors.New("record already exists")
	// ErrValidationFailed is returned by Submit when the answers have errors
	ErrValidationFailed = errors.New("survey validation failed")
	// ErrDraftClosed is returned when a submitted draft is used again
	ErrDraftClosed = errors.New("survey draft is closed")
)

// Session is one in-memory intake session
type Session struct {
	ID string

	cfg      *config.Config
	schema   *survey.Schema
	importer *importer.Importer
	now      func() time.Time

	clients        map[string]models.Client
	clientOrder    []string
	admissions     map[string]models.Admission
	admissionOrder []string
	surveys        []models.SurveyRecord
	discharges     []models.Discharge
}

// New creates an empty session. A nil cfg uses config.DefaultConfig.
func New(cfg *config.Config, schema *survey.Schema) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Session{
		ID:         uuid.New().String(),
		cfg:        cfg,
		schema:     schema,
		importer:   importer.New(schema),
		now:        time.Now,
		clients:    make(map[string]models.Client),
		admissions: make(map[string]models.Admission),
	}
}

// Schema returns the question schema surveys are validated against
func (s *Session) Schema() *survey.Schema {
	return s.schema
}

// AddClient normalizes and validates c, then stores it
func (s *Session) AddClient(c models.Client) (models.Client, error) {
	c.ProviderClientID = strings.TrimSpace(c.ProviderClientID)
	c.DateOfBirth = canonicalDate(c.DateOfBirth)
	if zip := records.NormalizeZip(c.ZipCode); zip != "" {
		c.ZipCode = zip
	}
	c.Gender = records.NormalizeGender(c.Gender)

	if err := records.ValidateClient(c); err != nil {
		return models.Client{}, fmt.Errorf("invalid client: %w", err)
	}
	if _, exists := s.clients[c.ProviderClientID]; exists {
		return models.Client{}, fmt.Errorf("%w: client %s", ErrDuplicateRecord, c.ProviderClientID)
	}

	s.clients[c.ProviderClientID] = c
	s.clientOrder = append(s.clientOrder, c.ProviderClientID)
	return c, nil
}

// Client returns the client with the given id
func (s *Session) Client(id string) (models.Client, error) {
	c, ok := s.clients[id]
	if !ok {
		return models.Client{}, fmt.Errorf("%w: %s", ErrClientNotFound, id)
	}
	return c, nil
}

// Clients returns the clients in the order they were added
func (s *Session) Clients() []models.Client {
	out := make([]models.Client, 0, len(s.clientOrder))
	for _, id := range s.clientOrder {
		out = append(out, s.clients[id])
	}
	return out
}

// AddAdmission stores an admission for an existing client. Provider and
// location ids default from config, the type defaults to New and a missing
// admission id is generated from the client and admission date.
func (s *Session) AddAdmission(a models.Admission) (models.Admission, error) {
	client, err := s.Client(strings.TrimSpace(a.ProviderClientID))
	if err != nil {
		return models.Admission{}, err
	}

	a.ProviderClientID = client.ProviderClientID
	a.AdmissionDate = canonicalDate(a.AdmissionDate)
	a.FirstContactDate = canonicalDate(a.FirstContactDate)
	if a.ProviderID == "" {
		a.ProviderID = s.cfg.ProviderID
	}
	if a.ProviderLocationID == "" {
		a.ProviderLocationID = s.cfg.ProviderLocationID
	}
	if a.AdmissionType == "" {
		a.AdmissionType = records.DefaultAdmissionType
	}
	if a.ProviderAdmissionID == "" {
		a.ProviderAdmissionID = records.GenerateAdmissionID(
			client.ProviderClientID, client.FirstName, client.LastName, a.AdmissionDate, s.now())
	}

	if err := records.ValidateAdmission(a); err != nil {
		return models.Admission{}, fmt.Errorf("invalid admission: %w", err)
	}
	if _, exists := s.admissions[a.ProviderAdmissionID]; exists {
		return models.Admission{}, fmt.Errorf("%w: admission %s", ErrDuplicateRecord, a.ProviderAdmissionID)
	}

	s.admissions[a.ProviderAdmissionID] = a
	s.admissionOrder = append(s.admissionOrder, a.ProviderAdmissionID)
	return a, nil
}

// Admission returns the admission with the given id
func (s *Session) Admission(id string) (models.Admission, error) {
	a, ok := s.admissions[id]
	if !ok {
		return models.Admission{}, fmt.Errorf("%w: %s", ErrAdmissionNotFound, id)
	}
	return a, nil
}

// Admissions returns the admissions in the order they were added
func (s *Session) Admissions() []models.Admission {
	out := make([]models.Admission, 0, len(s.admissionOrder))
	for _, id := range s.admissionOrder {
		out = append(out, s.admissions[id])
	}
	return out
}

// Surveys returns the submitted surveys in submission order
func (s *Session) Surveys() []models.SurveyRecord {
	out := make([]models.SurveyRecord, len(s.surveys))
	copy(out, s.surveys)
	return out
}

// AddDischarge closes an admission. The date must be MM/DD/YYYY and is
// stored canonicalized.
func (s *Session) AddDischarge(admissionID, date, reason, status string) (models.Discharge, error) {
	a, err := s.Admission(admissionID)
	if err != nil {
		return models.Discharge{}, err
	}

	d := models.Discharge{
		ProviderID:          a.ProviderID,
		ProviderClientID:    a.ProviderClientID,
		ProviderAdmissionID: a.ProviderAdmissionID,
		DischargeDate:       canonicalDate(date),
		DischargeReason:     reason,
		DischargeStatus:     status,
	}
	if err := records.ValidateDischarge(d); err != nil {
		return models.Discharge{}, fmt.Errorf("invalid discharge: %w", err)
	}

	s.discharges = append(s.discharges, d)
	return d, nil
}

// Discharges returns the discharges in the order they were added
func (s *Session) Discharges() []models.Discharge {
	out := make([]models.Discharge, len(s.discharges))
	copy(out, s.discharges)
	return out
}

// canonicalDate rewrites valid dates as MM/DD/YYYY and leaves anything else
// for validation to report
func canonicalDate(s string) string {
	if formatted := survey.FormatDate(s); formatted != "" {
		return formatted
	}
	return strings.TrimSpace(s)
}
