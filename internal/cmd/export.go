package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/intake/internal/display"
	"github.com/harrison/intake/internal/export"
	"github.com/harrison/intake/internal/models"
	"github.com/harrison/intake/internal/parser"
	"github.com/harrison/intake/internal/session"
)

// exportOptions collects the export command flags
type exportOptions struct {
	clientsFile     string
	clientID        string
	admissionID     string
	admissionDate   string
	admissionType   string
	dischargeDate   string
	dischargeReason string
	dischargeStatus string
	outDir          string
}

// NewExportCommand creates and returns the export subcommand
func NewExportCommand() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <answers-file>",
		Short: "Submit a survey for an admission and write the export files",
		Long: `Load the client list, attach the answers to one of the client's
admissions, validate and submit the survey, then write clients.csv,
admissions.csv, surveys.csv and (with --discharge-date) discharges.csv.

The admission is chosen with --admission, created with --admission-date, or
otherwise taken from the client list when it carries exactly one admission
for the client.

Survey rows are written for every non-blank answer after rules and
formatting are applied. Nothing is written when validation fails.

Exit code: 0 on success, 1 if the answers are invalid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], opts)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.clientsFile, "clients", "", "Client list (.csv or .tsv) holding the client")
	flags.StringVar(&opts.clientID, "client", "", "ProviderClientId of the surveyed client")
	flags.StringVar(&opts.admissionID, "admission", "", "ProviderAdmissionId of an admission in the client list")
	flags.StringVar(&opts.admissionDate, "admission-date", "", "Create a new admission on this date (MM/DD/YYYY)")
	flags.StringVar(&opts.admissionType, "admission-type", "", "Type of a created admission: New, Transfer or Readmission")
	flags.StringVar(&opts.dischargeDate, "discharge-date", "", "Also discharge the admission on this date (MM/DD/YYYY)")
	flags.StringVar(&opts.dischargeReason, "discharge-reason", "Completed Treatment", "Discharge reason")
	flags.StringVar(&opts.dischargeStatus, "discharge-status", "Successful", "Discharge status: Successful or Unsuccessful")
	flags.StringVar(&opts.outDir, "out-dir", ".", "Directory for the exported CSV files")
	cmd.MarkFlagRequired("clients")
	cmd.MarkFlagRequired("client")
	cmd.MarkFlagsMutuallyExclusive("admission", "admission-date")

	return cmd
}

func runExport(cmd *cobra.Command, answersFile string, opts *exportOptions) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	output := cmd.OutOrStdout()

	s := session.New(rt.cfg, rt.schema)
	if _, err := loadClientFiles(s, []string{opts.clientsFile}, rt, output, cmd.ErrOrStderr()); err != nil {
		return err
	}
	if _, err := s.Client(opts.clientID); err != nil {
		return err
	}

	admission, err := selectAdmission(s, opts)
	if err != nil {
		return err
	}

	answers, err := parser.ParseAnswersFile(answersFile)
	if err != nil {
		return fmt.Errorf("failed to load answers: %w", err)
	}

	draft, err := s.StartSurvey(admission.ProviderAdmissionID)
	if err != nil {
		return err
	}
	if err := draft.Load(answers); err != nil {
		return err
	}

	record, errs, err := s.Submit(draft)
	if errors.Is(err, session.ErrValidationFailed) {
		rt.log.LogValidation(answersFile, errs)
		fmt.Fprintf(output, "✗ Validation failed for %s\n", answersFile)
		if err := display.WriteErrorTable(output, rt.schema, errs); err != nil {
			return err
		}
		return fmt.Errorf("validation failed with %d error(s)", len(errs))
	}
	if err != nil {
		return err
	}
	rt.log.LogValidation(answersFile, nil)
	fmt.Fprintf(output, "✓ Survey %s submitted for admission %s\n", record.ID, record.ProviderAdmissionID)

	if opts.dischargeDate != "" {
		if _, err := s.AddDischarge(admission.ProviderAdmissionID, opts.dischargeDate, opts.dischargeReason, opts.dischargeStatus); err != nil {
			return err
		}
	}

	written, err := export.Session(commandContext(cmd), s, opts.outDir, rt.cfg)
	if err != nil {
		return err
	}
	for _, w := range written {
		rt.log.LogExport(w.Path, w.Rows)
		fmt.Fprintf(output, "✓ %s: %d row(s)\n", w.Path, w.Rows)
	}
	return nil
}

// selectAdmission finds or creates the admission the survey belongs to
func selectAdmission(s *session.Session, opts *exportOptions) (models.Admission, error) {
	if opts.admissionID != "" {
		a, err := s.Admission(opts.admissionID)
		if err != nil {
			return models.Admission{}, err
		}
		if a.ProviderClientID != opts.clientID {
			return models.Admission{}, fmt.Errorf("admission %s belongs to client %s, not %s",
				a.ProviderAdmissionID, a.ProviderClientID, opts.clientID)
		}
		return a, nil
	}

	if opts.admissionDate != "" {
		return s.AddAdmission(models.Admission{
			ProviderClientID: opts.clientID,
			AdmissionDate:    opts.admissionDate,
			AdmissionType:    opts.admissionType,
		})
	}

	var found []models.Admission
	for _, a := range s.Admissions() {
		if a.ProviderClientID == opts.clientID {
			found = append(found, a)
		}
	}
	switch len(found) {
	case 0:
		return models.Admission{}, fmt.Errorf("%w for client %s; pass --admission-date to create one",
			session.ErrAdmissionNotFound, opts.clientID)
	case 1:
		return found[0], nil
	}
	return models.Admission{}, fmt.Errorf("client %s has %d admissions; choose one with --admission", opts.clientID, len(found))
}
