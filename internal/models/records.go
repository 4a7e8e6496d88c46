package models

// Client is one behavioral-health client record
type Client struct {
	ProviderClientID string `json:"ProviderClientId" validate:"required"`
	FirstName        string `json:"FirstName" validate:"required"`
	LastName         string `json:"LastName" validate:"required"`
	DateOfBirth      string `json:"DateofBirth" validate:"required,mdy_date"`
	Gender           string `json:"Gender" validate:"required,gender"`
	ZipCode          string `json:"ZipCode" validate:"required,zip9"`
}

// Admission is one treatment-intake event for a client
type Admission struct {
	ProviderID            string `json:"ProviderId" validate:"required"`
	ProviderClientID      string `json:"ProviderClientId" validate:"required"`
	ProviderAdmissionID   string `json:"ProviderAdmissionId" validate:"required,max=15"`
	ProviderLocationID    string `json:"ProviderLocationId" validate:"required"`
	AdmissionDate         string `json:"AdmissionDate" validate:"required,mdy_date"`
	AdmissionType         string `json:"AdmissionType" validate:"required,oneof=New Transfer Readmission"`
	ServiceCode           string `json:"ServiceCode,omitempty"`
	DefaultPayerAccountID string `json:"DefaultPayerAccountID,omitempty"`
	ReferralNumber        string `json:"ReferralNumber,omitempty"`
	PrimaryClinicianName  string `json:"PrimaryClinicianName,omitempty"`
	FirstContactDate      string `json:"FirstContactDate,omitempty" validate:"omitempty,mdy_date"`
}

// Discharge closes an admission
type Discharge struct {
	ProviderID          string `json:"ProviderId" validate:"required"`
	ProviderClientID    string `json:"ProviderClientId" validate:"required"`
	ProviderAdmissionID string `json:"ProviderAdmissionId" validate:"required"`
	DischargeDate       string `json:"DischargeDate" validate:"required,mdy_date"`
	DischargeReason     string `json:"DischargeReason" validate:"required,oneof='Completed Treatment' 'Left Against Advice' Terminated Transferred Other"`
	DischargeStatus     string `json:"DischargeStatus" validate:"required,oneof=Successful Unsuccessful"`
}

// SurveyRecord is a submitted admission survey with export-ready answers
type SurveyRecord struct {
	ID                  string
	ProviderID          string
	ProviderClientID    string
	ProviderAdmissionID string
	Answers             AnswerSet // formatted, keyed by sequence number
	Order               []string  // sequence numbers in question-bank order
}
