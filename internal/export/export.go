// Package export writes session records as the CSV files a state reporting
// system ingests: clients, admissions, survey answer rows and discharges.
//
// Writers stream to any io.Writer; the *File helpers and Session write
// through filelock so a partially written export is never visible.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"

	"github.com/harrison/intake/internal/config"
	"github.com/harrison/intake/internal/filelock"
	"github.com/harrison/intake/internal/models"
	"github.com/harrison/intake/internal/session"
)

// Default export file names
const (
	ClientsFile    = "clients.csv"
	AdmissionsFile = "admissions.csv"
	SurveysFile    = "surveys.csv"
	DischargesFile = "discharges.csv"
)

// Column headers of each export
var (
	ClientHeader = []string{
		"ProviderClientId", "FirstName", "LastName", "DateofBirth", "Gender", "ZipCode",
	}
	AdmissionHeader = []string{
		"RecordType", "ProviderId", "ProviderClientId", "ProviderAdmissionId", "ProviderLocationId",
		"ServiceCode", "DefaultPayerAccountID", "ReferralNumber", "AdmissionDate",
		"PrimaryClinicianName", "FirstContactDate",
	}
	SurveyHeader = []string{
		"RecordType", "ProviderId", "ProviderClientId", "ProviderAdmissionId",
		"QuestionGroup", "SequenceNumber", "Value",
	}
	DischargeHeader = []string{
		"ProviderId", "ProviderClientId", "ProviderAdmissionId",
		"DischargeDate", "DischargeReason", "DischargeStatus",
	}
)

// Written describes one exported file
type Written struct {
	Path string
	Rows int
}

// WriteClients writes clients as CSV and returns the number of data rows
func WriteClients(w io.Writer, clients []models.Client) (int, error) {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			c.ProviderClientID, c.FirstName, c.LastName, c.DateOfBirth, c.Gender, c.ZipCode,
		})
	}
	return writeCSV(w, ClientHeader, rows)
}

// AdmissionRow builds the export row of one admission. Missing service
// code, payer account and clinician fall back to the configured defaults;
// a missing first contact date falls back to the admission date.
func AdmissionRow(a models.Admission, exp config.ExportConfig) []string {
	firstContact := a.FirstContactDate
	if firstContact == "" {
		firstContact = a.AdmissionDate
	}
	return []string{
		exp.AdmissionRecordType,
		a.ProviderID,
		a.ProviderClientID,
		a.ProviderAdmissionID,
		a.ProviderLocationID,
		orDefault(a.ServiceCode, exp.DefaultServiceCode),
		orDefault(a.DefaultPayerAccountID, exp.DefaultPayerAccountID),
		a.ReferralNumber,
		a.AdmissionDate,
		orDefault(a.PrimaryClinicianName, exp.DefaultPrimaryClinician),
		firstContact,
	}
}

// WriteAdmissions writes admissions in the fixed export schema
func WriteAdmissions(w io.Writer, admissions []models.Admission, exp config.ExportConfig) (int, error) {
	rows := make([][]string, 0, len(admissions))
	for _, a := range admissions {
		rows = append(rows, AdmissionRow(a, exp))
	}
	return writeCSV(w, AdmissionHeader, rows)
}

// SurveyRows builds one row per non-blank answer of a submitted survey in
// question-bank order. Answers outside the bank order are not exported.
func SurveyRows(record models.SurveyRecord, exp config.ExportConfig) [][]string {
	var rows [][]string
	for _, seq := range record.Order {
		value := record.Answers.Get(seq)
		if value == "" {
			continue
		}
		rows = append(rows, []string{
			exp.SurveyRecordType,
			record.ProviderID,
			record.ProviderClientID,
			record.ProviderAdmissionID,
			exp.QuestionGroup,
			seq,
			value,
		})
	}
	return rows
}

// WriteSurveys writes the answer rows of every survey
func WriteSurveys(w io.Writer, surveys []models.SurveyRecord, exp config.ExportConfig) (int, error) {
	var rows [][]string
	for _, s := range surveys {
		rows = append(rows, SurveyRows(s, exp)...)
	}
	return writeCSV(w, SurveyHeader, rows)
}

// WriteDischarges writes discharges as CSV
func WriteDischarges(w io.Writer, discharges []models.Discharge) (int, error) {
	rows := make([][]string, 0, len(discharges))
	for _, d := range discharges {
		rows = append(rows, []string{
			d.ProviderID, d.ProviderClientID, d.ProviderAdmissionID,
			d.DischargeDate, d.DischargeReason, d.DischargeStatus,
		})
	}
	return writeCSV(w, DischargeHeader, rows)
}

// ToFile runs write against path under the file lock and returns its row count
func ToFile(ctx context.Context, path string, write func(io.Writer) (int, error)) (Written, error) {
	rows := 0
	err := filelock.LockAndWriteFunc(ctx, path, func(w io.Writer) error {
		n, err := write(w)
		rows = n
		return err
	})
	if err != nil {
		return Written{}, fmt.Errorf("failed to export %s: %w", filepath.Base(path), err)
	}
	return Written{Path: path, Rows: rows}, nil
}

// Session writes every non-empty record kind of s into dir using the
// default file names. Record kinds with no records produce no file.
func Session(ctx context.Context, s *session.Session, dir string, cfg *config.Config) ([]Written, error) {
	exp := cfg.Export
	type job struct {
		name  string
		count int
		write func(io.Writer) (int, error)
	}

	clients := s.Clients()
	admissions := s.Admissions()
	surveys := s.Surveys()
	discharges := s.Discharges()

	jobs := []job{
		{ClientsFile, len(clients), func(w io.Writer) (int, error) { return WriteClients(w, clients) }},
		{AdmissionsFile, len(admissions), func(w io.Writer) (int, error) { return WriteAdmissions(w, admissions, exp) }},
		{SurveysFile, len(surveys), func(w io.Writer) (int, error) { return WriteSurveys(w, surveys, exp) }},
		{DischargesFile, len(discharges), func(w io.Writer) (int, error) { return WriteDischarges(w, discharges) }},
	}

	var written []Written
	for _, j := range jobs {
		if j.count == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return written, err
		}
		out, err := ToFile(ctx, filepath.Join(dir, j.name), j.write)
		if err != nil {
			return written, err
		}
		written = append(written, out)
	}
	return written, nil
}

func writeCSV(w io.Writer, header []string, rows [][]string) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return 0, fmt.Errorf("failed to write rows: %w", err)
	}
	return len(rows), nil
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
