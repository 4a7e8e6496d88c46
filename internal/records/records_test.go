package records

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/intake/internal/models"
)

func TestNormalizeZip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12345", "123450000"},
		{"12345-6789", "123456789"},
		{"123456789", "123456789"},
		{" 12345 ", "123450000"},
		{"1234", ""},
		{"1234567", ""},
		{"", ""},
		{"abcde", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeZip(tt.in))
		})
	}
}

func TestNormalizeGender(t *testing.T) {
	assert.Equal(t, GenderMale, NormalizeGender("Male"))
	assert.Equal(t, GenderMale, NormalizeGender(" m "))
	assert.Equal(t, GenderFemale, NormalizeGender("FEMALE"))
	assert.Equal(t, GenderOther, NormalizeGender("3"))
	assert.Equal(t, GenderUnknown, NormalizeGender("unknown"))
	assert.Equal(t, "X", NormalizeGender(" X "))
}

func TestGenerateAdmissionID(t *testing.T) {
	now := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name                string
		client, first, last string
		date                string
		want                string
	}{
		{
			name:   "full id",
			client: "100234", first: "jane", last: "doe", date: "1/5/2024",
			want: "ADM0234JD240105",
		},
		{
			name:   "short client id kept whole",
			client: "42", first: "Ann", last: "Lee", date: "12/31/2023",
			want: "ADM42AL231231",
		},
		{
			name:   "initials need both names",
			client: "5555", first: "Ann", date: "02/02/2022",
			want: "ADM5555220202",
		},
		{
			name:   "invalid date uses now",
			client: "5555", date: "2024-01-05",
			want: "ADM5555250309",
		},
		{
			name:   "missing date uses now",
			client: "",
			want:   "ADM250309",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateAdmissionID(tt.client, tt.first, tt.last, tt.date, now)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), MaxAdmissionIDLength)
		})
	}
}

func validClient() models.Client {
	return models.Client{
		ProviderClientID: "1001",
		FirstName:        "Jane",
		LastName:         "Doe",
		DateOfBirth:      "01/02/1980",
		Gender:           GenderFemale,
		ZipCode:          "12345",
	}
}

func TestValidateClient(t *testing.T) {
	require.NoError(t, ValidateClient(validClient()))

	c := validClient()
	c.FirstName = ""
	c.DateOfBirth = "1980-01-02"
	c.Gender = "7"
	c.ZipCode = "123"

	err := ValidateClient(c)
	require.Error(t, err)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.ElementsMatch(t, FieldErrors{
		"FirstName is required",
		"DateofBirth must be a date in MM/DD/YYYY format",
		"Gender must be one of 1 (Male), 2 (Female), 3 (Other), 9 (Unknown)",
		"ZipCode must be a 5 or 9 digit zip code",
	}, fe)
}

func TestValidateAdmission(t *testing.T) {
	adm := models.Admission{
		ProviderID:          "ABC123",
		ProviderClientID:    "1001",
		ProviderAdmissionID: "ADM1001JD240105",
		ProviderLocationID:  "LOC001",
		AdmissionDate:       "01/05/2024",
		AdmissionType:       "New",
	}
	require.NoError(t, ValidateAdmission(adm))

	adm.ProviderAdmissionID = "ADM1001JD2401050"
	adm.AdmissionType = "Walk-in"
	adm.FirstContactDate = "13/01/2024"

	err := ValidateAdmission(adm)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "ProviderAdmissionId must be at most 15 characters")
	assert.Contains(t, msg, "AdmissionType must be one of: New Transfer Readmission")
	assert.Contains(t, msg, "FirstContactDate must be a date in MM/DD/YYYY format")
}

func TestValidateDischarge(t *testing.T) {
	d := models.Discharge{
		ProviderID:          "ABC123",
		ProviderClientID:    "1001",
		ProviderAdmissionID: "ADM1001JD240105",
		DischargeDate:       "02/01/2024",
		DischargeReason:     "Completed Treatment",
		DischargeStatus:     "Successful",
	}
	require.NoError(t, ValidateDischarge(d))

	d.DischargeReason = "Bored"
	err := ValidateDischarge(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DischargeReason must be one of")
}

func TestIngestClients_CSV(t *testing.T) {
	input := "Unique ID,First Name,Last Name,DOB,Sex,Zip Code,Admission Date,Favorite Color\n" +
		"1042.0,Jane,Doe,1/2/1980,F,12345,3/4/2024,blue\n" +
		"1043,John,Smith,12/31/1975,male,12345-6789,,green\n" +
		",,,,,,,\n"

	now := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	got, err := IngestClients(strings.NewReader(input), ',', IngestOptions{
		ProviderID: "ABC123",
		LocationID: "LOC001",
		Now:        now,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Favorite Color"}, got.Unmapped)
	require.Len(t, got.Clients, 2)
	assert.Equal(t, models.Client{
		ProviderClientID: "1042",
		FirstName:        "Jane",
		LastName:         "Doe",
		DateOfBirth:      "01/02/1980",
		Gender:           GenderFemale,
		ZipCode:          "123450000",
	}, got.Clients[0])
	assert.Equal(t, "123456789", got.Clients[1].ZipCode)
	assert.Equal(t, GenderMale, got.Clients[1].Gender)

	require.Len(t, got.Admissions, 1)
	assert.Equal(t, models.Admission{
		ProviderID:          "ABC123",
		ProviderClientID:    "1042",
		ProviderAdmissionID: "ADM1042JD240304",
		ProviderLocationID:  "LOC001",
		AdmissionDate:       "03/04/2024",
		AdmissionType:       DefaultAdmissionType,
	}, got.Admissions[0])
}

func TestIngestClients_TSVFullName(t *testing.T) {
	input := "client id\tClientFullName\tgender\n" +
		"7\tMary Ann Jones\t2\n" +
		"8\tCher\t2\n"

	got, err := IngestClients(strings.NewReader(input), DelimiterFor("clients.tsv"), IngestOptions{})
	require.NoError(t, err)

	require.Len(t, got.Clients, 2)
	assert.Equal(t, "Mary Ann", got.Clients[0].FirstName)
	assert.Equal(t, "Jones", got.Clients[0].LastName)
	assert.Equal(t, "", got.Clients[1].FirstName)
	assert.Equal(t, "Cher", got.Clients[1].LastName)
	assert.Empty(t, got.Admissions)
}

func TestIngestClients_Empty(t *testing.T) {
	_, err := IngestClients(strings.NewReader(""), ',', IngestOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestDelimiterFor(t *testing.T) {
	assert.Equal(t, '\t', DelimiterFor("a.TSV"))
	assert.Equal(t, ',', DelimiterFor("a.csv"))
	assert.Equal(t, ',', DelimiterFor("a"))
}

func TestTrimNumericID(t *testing.T) {
	assert.Equal(t, "1042", trimNumericID("1042.0"))
	assert.Equal(t, "1042.5", trimNumericID("1042.5"))
	assert.Equal(t, "A-1.0", trimNumericID("A-1.0"))
	assert.Equal(t, "0042", trimNumericID("0042"))
}
