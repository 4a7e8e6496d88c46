package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harrison/intake/internal/models"
	"github.com/harrison/intake/internal/survey"
)

// Canonical column names
const (
	ColClientID      = "ProviderClientId"
	ColFirstName     = "FirstName"
	ColLastName      = "LastName"
	ColDateOfBirth   = "DateofBirth"
	ColGender        = "Gender"
	ColZipCode       = "ZipCode"
	ColFullName      = "ClientFullName"
	ColAdmissionID   = "ProviderAdmissionId"
	ColAdmissionDate = "AdmissionDate"
	ColAdmissionType = "AdmissionType"
)

// DefaultAdmissionType is used for admissions from sheets without an admission type
const DefaultAdmissionType = "New"

// ColumnMapping maps normalized (trimmed, lower-cased) spreadsheet headers to
// canonical column names
var ColumnMapping = map[string]string{
	"unique id":     ColClientID,
	"uniqueid":      ColClientID,
	"client id":     ColClientID,
	"clientid":      ColClientID,
	"id":            ColClientID,
	"first name":    ColFirstName,
	"firstname":     ColFirstName,
	"first":         ColFirstName,
	"last name":     ColLastName,
	"lastname":      ColLastName,
	"last":          ColLastName,
	"date of birth": ColDateOfBirth,
	"dateofbirth":   ColDateOfBirth,
	"dob":           ColDateOfBirth,
	"birth date":    ColDateOfBirth,
	"birthdate":     ColDateOfBirth,
	"gender":        ColGender,
	"sex":           ColGender,
	"zip":           ColZipCode,
	"zipcode":       ColZipCode,
	"zip code":      ColZipCode,
	"postal code":   ColZipCode,
	"postalcode":    ColZipCode,

	"providerclientid":    ColClientID,
	"clientfullname":      ColFullName,
	"client full name":    ColFullName,
	"full name":           ColFullName,
	"provideradmissionid": ColAdmissionID,
	"admission id":        ColAdmissionID,
	"admissiondate":       ColAdmissionDate,
	"admission date":      ColAdmissionDate,
	"admissiontype":       ColAdmissionType,
	"admission type":      ColAdmissionType,
}

// IngestOptions carries the provider identity stamped on generated admissions
type IngestOptions struct {
	ProviderID string
	LocationID string
	// Now dates admission ids for rows without a usable admission date
	Now time.Time
}

// Ingested is the normalized content of a client spreadsheet
type Ingested struct {
	Clients    []models.Client
	Admissions []models.Admission
	// Unmapped lists headers that matched no known column
	Unmapped []string
}

// DelimiterFor picks the field delimiter from a file extension
func DelimiterFor(path string) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return '\t'
	}
	return ','
}

// IngestClients reads a delimited client list with a header row.
//
// Headers are normalized and mapped through ColumnMapping. Numeric ids lose
// any decimal suffix, dates are canonicalized, zips and genders normalized,
// and a ClientFullName column fills names that are missing. When the sheet
// has both a client id and an admission date column, every row carrying both
// also yields an admission.
func IngestClients(r io.Reader, delimiter rune, opts IngestOptions) (*Ingested, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("client file is empty")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	out := &Ingested{}
	columns := make([]string, len(header))
	present := make(map[string]bool)
	for i, h := range header {
		norm := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		name, ok := ColumnMapping[norm]
		if !ok {
			out.Unmapped = append(out.Unmapped, strings.TrimSpace(h))
			continue
		}
		columns[i] = name
		present[name] = true
	}

	withAdmissions := present[ColClientID] && present[ColAdmissionDate]

	line := 1
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		row := make(map[string]string, len(columns))
		for i, name := range columns {
			if name == "" || i >= len(rec) {
				continue
			}
			// first mapped column wins when two headers share a name
			if _, seen := row[name]; !seen {
				row[name] = strings.TrimSpace(rec[i])
			}
		}
		if isBlankRow(row) {
			continue
		}
		normalizeRow(row)

		client := models.Client{
			ProviderClientID: row[ColClientID],
			FirstName:        row[ColFirstName],
			LastName:         row[ColLastName],
			DateOfBirth:      row[ColDateOfBirth],
			Gender:           row[ColGender],
			ZipCode:          row[ColZipCode],
		}
		out.Clients = append(out.Clients, client)

		if withAdmissions && client.ProviderClientID != "" && row[ColAdmissionDate] != "" {
			out.Admissions = append(out.Admissions, admissionFromRow(row, client, opts))
		}
	}

	return out, nil
}

func admissionFromRow(row map[string]string, client models.Client, opts IngestOptions) models.Admission {
	adm := models.Admission{
		ProviderID:          opts.ProviderID,
		ProviderClientID:    client.ProviderClientID,
		ProviderAdmissionID: row[ColAdmissionID],
		ProviderLocationID:  opts.LocationID,
		AdmissionDate:       row[ColAdmissionDate],
		AdmissionType:       row[ColAdmissionType],
	}
	if adm.ProviderAdmissionID == "" {
		adm.ProviderAdmissionID = GenerateAdmissionID(client.ProviderClientID,
			client.FirstName, client.LastName, adm.AdmissionDate, opts.Now)
	}
	if adm.AdmissionType == "" {
		adm.AdmissionType = DefaultAdmissionType
	}
	return adm
}

func normalizeRow(row map[string]string) {
	for _, col := range []string{ColClientID, ColAdmissionID} {
		if v, ok := row[col]; ok {
			row[col] = trimNumericID(v)
		}
	}
	for _, col := range []string{ColDateOfBirth, ColAdmissionDate} {
		if v := row[col]; v != "" {
			row[col] = survey.FormatDate(v)
		}
	}
	if v := row[ColZipCode]; v != "" {
		if zip := NormalizeZip(v); zip != "" {
			row[ColZipCode] = zip
		}
	}
	if v := row[ColGender]; v != "" {
		row[ColGender] = NormalizeGender(v)
	}

	full := row[ColFullName]
	if full == "" || (row[ColFirstName] != "" && row[ColLastName] != "") {
		return
	}
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
	case 1:
		row[ColLastName] = parts[0]
	default:
		row[ColFirstName] = strings.Join(parts[:len(parts)-1], " ")
		row[ColLastName] = parts[len(parts)-1]
	}
}

// trimNumericID turns spreadsheet-mangled ids such as "1042.0" back into "1042"
func trimNumericID(id string) string {
	if id == "" || !strings.Contains(id, ".") {
		return id
	}
	f, err := strconv.ParseFloat(id, 64)
	if err != nil || f != float64(int64(f)) {
		return id
	}
	return strconv.FormatInt(int64(f), 10)
}

func isBlankRow(row map[string]string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
