package database

// Table names, also used as change-notification topics.
const (
	TableClients = "clients"
	TableCases   = "cases"
)

// Client is a legal client. Column names follow the existing on-device schema.
type Client struct {
	ID                      int64   `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name                    string  `json:"name" gorm:"column:name" validate:"notblank"`
	Address                 string  `json:"address" gorm:"column:address"`
	PhoneNumber             string  `json:"phoneNumber" gorm:"column:phoneNumber" validate:"notblank,phone"`
	Email                   string  `json:"email" gorm:"column:email" validate:"clientemail"`
	PowerOfAttorneyNumber   string  `json:"powerOfAttorneyNumber" gorm:"column:powerOfAttorneyNumber"`
	PowerOfAttorneyImageURI *string `json:"powerOfAttorneyImageUri" gorm:"column:powerOfAttorneyImageUri"`
	Documents               string  `json:"documents" gorm:"column:documents"`
	Images                  string  `json:"images" gorm:"column:images"`
}

// Case is a court case owned by a client.
type Case struct {
	ID               int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	CaseNumber       string `json:"caseNumber" gorm:"column:caseNumber" validate:"notblank"`
	CaseYear         string `json:"caseYear" gorm:"column:caseYear" validate:"notblank,caseyear"`
	RegistrationDate string `json:"registrationDate" gorm:"column:registrationDate" validate:"notblank"`
	ClientID         int64  `json:"clientId" gorm:"column:clientId" validate:"required"`
	ClientRole       string `json:"clientRole" gorm:"column:clientRole" validate:"notblank"`
	OpponentName     string `json:"opponentName" gorm:"column:opponentName" validate:"notblank"`
	OpponentRole     string `json:"opponentRole" gorm:"column:opponentRole" validate:"notblank"`
	CaseSubject      string `json:"caseSubject" gorm:"column:caseSubject" validate:"notblank"`
	CourtName        string `json:"courtName" gorm:"column:courtName" validate:"notblank"`
	CaseType         string `json:"caseType" gorm:"column:caseType"`
	FirstSessionDate string `json:"firstSessionDate" gorm:"column:firstSessionDate"`
	Documents        string `json:"documents" gorm:"column:documents"`
	Images           string `json:"images" gorm:"column:images"`
}

func (Client) TableName() string {
	return TableClients
}

func (Case) TableName() string {
	return TableCases
}
