package service

import (
	"strings"

	"github.com/noah-isme/kairos-api/internal/models"
)

// Label fragments identifying each answer on the registration form. Matching is a
// case-insensitive substring test and keeps Romanian diacritics significant.
const (
	labelName        = "nume"
	labelAge         = "vârst"
	labelGender      = "sex"
	labelPhone       = "telefon"
	labelEmail       = "email"
	labelPassport    = "pașaport"
	labelPlaneTicket = "bilet"
	labelChurch      = "biseric"
	labelCountry     = "țar"
	labelKairos      = "kairos"
	labelAllergies   = "alergii"
	labelOtherInfo   = "alte informații"
)

// ExtractTallyData maps the labelled answers of a submission onto the canonical form record.
func ExtractTallyData(payload models.TallyWebhookPayload) models.TallyData {
	fields := payload.Data.Fields
	return models.TallyData{
		Name:           fieldText(fields, labelName),
		Age:            fieldText(fields, labelAge),
		Gender:         fieldText(fields, labelGender),
		Phone:          fieldText(fields, labelPhone),
		Email:          fieldText(fields, labelEmail),
		Passport:       fieldText(fields, labelPassport),
		PlaneTicketURL: fieldText(fields, labelPlaneTicket),
		Church:         fieldText(fields, labelChurch),
		Country:        fieldText(fields, labelCountry),
		PreviousKairos: strings.Contains(strings.ToLower(fieldText(fields, labelKairos)), "da"),
		Allergies:      fieldText(fields, labelAllergies),
		OtherInfo:      fieldText(fields, labelOtherInfo),
		SubmittedAt:    payload.Data.CreatedAt,
	}
}

// fieldText renders the first field whose label contains fragment, or "" when none does.
func fieldText(fields []models.TallyField, fragment string) string {
	fragment = strings.ToLower(fragment)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f.Label), fragment) {
			return f.Value.Text()
		}
	}
	return ""
}

// contactFor picks the email when present, the phone otherwise.
func contactFor(data models.TallyData) string {
	if data.Email != "" {
		return data.Email
	}
	return data.Phone
}
