package api

import (
	"github.com/JustJay7/smartlawyer/internal/database"
	"github.com/JustJay7/smartlawyer/internal/filelist"
)

// Stored file lists are JSON text; over HTTP they travel as arrays.

type clientRequest struct {
	Name                    string   `json:"name"`
	Address                 string   `json:"address"`
	PhoneNumber             string   `json:"phoneNumber"`
	Email                   string   `json:"email"`
	PowerOfAttorneyNumber   string   `json:"powerOfAttorneyNumber"`
	PowerOfAttorneyImageURI *string  `json:"powerOfAttorneyImageUri"`
	Documents               []string `json:"documents"`
	Images                  []string `json:"images"`
}

func (r clientRequest) toModel(id int64) *database.Client {
	return &database.Client{
		ID:                      id,
		Name:                    r.Name,
		Address:                 r.Address,
		PhoneNumber:             r.PhoneNumber,
		Email:                   r.Email,
		PowerOfAttorneyNumber:   r.PowerOfAttorneyNumber,
		PowerOfAttorneyImageURI: r.PowerOfAttorneyImageURI,
		Documents:               filelist.Encode(r.Documents),
		Images:                  filelist.Encode(r.Images),
	}
}

type clientResponse struct {
	ID                      int64    `json:"id"`
	Name                    string   `json:"name"`
	Address                 string   `json:"address"`
	PhoneNumber             string   `json:"phoneNumber"`
	Email                   string   `json:"email"`
	PowerOfAttorneyNumber   string   `json:"powerOfAttorneyNumber"`
	PowerOfAttorneyImageURI *string  `json:"powerOfAttorneyImageUri"`
	Documents               []string `json:"documents"`
	Images                  []string `json:"images"`
}

func newClientResponse(c *database.Client) clientResponse {
	return clientResponse{
		ID:                      c.ID,
		Name:                    c.Name,
		Address:                 c.Address,
		PhoneNumber:             c.PhoneNumber,
		Email:                   c.Email,
		PowerOfAttorneyNumber:   c.PowerOfAttorneyNumber,
		PowerOfAttorneyImageURI: c.PowerOfAttorneyImageURI,
		Documents:               filelist.Decode(c.Documents),
		Images:                  filelist.Decode(c.Images),
	}
}

func newClientResponses(clients []database.Client) []clientResponse {
	out := make([]clientResponse, len(clients))
	for i := range clients {
		out[i] = newClientResponse(&clients[i])
	}
	return out
}

type caseRequest struct {
	ID               int64    `json:"id"`
	CaseNumber       string   `json:"caseNumber"`
	CaseYear         string   `json:"caseYear"`
	RegistrationDate string   `json:"registrationDate"`
	ClientID         int64    `json:"clientId"`
	ClientRole       string   `json:"clientRole"`
	OpponentName     string   `json:"opponentName"`
	OpponentRole     string   `json:"opponentRole"`
	CaseSubject      string   `json:"caseSubject"`
	CourtName        string   `json:"courtName"`
	CaseType         string   `json:"caseType"`
	FirstSessionDate string   `json:"firstSessionDate"`
	Documents        []string `json:"documents"`
	Images           []string `json:"images"`
}

func (r caseRequest) toModel(id int64) *database.Case {
	return &database.Case{
		ID:               id,
		CaseNumber:       r.CaseNumber,
		CaseYear:         r.CaseYear,
		RegistrationDate: r.RegistrationDate,
		ClientID:         r.ClientID,
		ClientRole:       r.ClientRole,
		OpponentName:     r.OpponentName,
		OpponentRole:     r.OpponentRole,
		CaseSubject:      r.CaseSubject,
		CourtName:        r.CourtName,
		CaseType:         r.CaseType,
		FirstSessionDate: r.FirstSessionDate,
		Documents:        filelist.Encode(r.Documents),
		Images:           filelist.Encode(r.Images),
	}
}

type caseResponse struct {
	ID               int64    `json:"id"`
	CaseNumber       string   `json:"caseNumber"`
	CaseYear         string   `json:"caseYear"`
	RegistrationDate string   `json:"registrationDate"`
	ClientID         int64    `json:"clientId"`
	ClientRole       string   `json:"clientRole"`
	OpponentName     string   `json:"opponentName"`
	OpponentRole     string   `json:"opponentRole"`
	CaseSubject      string   `json:"caseSubject"`
	CourtName        string   `json:"courtName"`
	CaseType         string   `json:"caseType"`
	FirstSessionDate string   `json:"firstSessionDate"`
	Documents        []string `json:"documents"`
	Images           []string `json:"images"`
}

func newCaseResponse(c *database.Case) caseResponse {
	return caseResponse{
		ID:               c.ID,
		CaseNumber:       c.CaseNumber,
		CaseYear:         c.CaseYear,
		RegistrationDate: c.RegistrationDate,
		ClientID:         c.ClientID,
		ClientRole:       c.ClientRole,
		OpponentName:     c.OpponentName,
		OpponentRole:     c.OpponentRole,
		CaseSubject:      c.CaseSubject,
		CourtName:        c.CourtName,
		CaseType:         c.CaseType,
		FirstSessionDate: c.FirstSessionDate,
		Documents:        filelist.Decode(c.Documents),
		Images:           filelist.Decode(c.Images),
	}
}

func newCaseResponses(cases []database.Case) []caseResponse {
	out := make([]caseResponse, len(cases))
	for i := range cases {
		out[i] = newCaseResponse(&cases[i])
	}
	return out
}
