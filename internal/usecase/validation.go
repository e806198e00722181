package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/xavierca1/qrleads/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func isValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func ValidateCreateLandingPageInput(input CreateLandingPageInput) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(input.CampaignID) == "" {
		errs = append(errs, ValidationError{"campaignId", "is required"})
	}
	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if input.Slug != "" && !entity.ValidSlug(input.Slug) {
		errs = append(errs, ValidationError{"slug", "must contain only lowercase letters, numbers, and hyphens"})
	}
	return errs
}

func ValidateLeadInput(input CaptureLeadInput) []ValidationError {
	var errs []ValidationError
	email := strings.TrimSpace(input.Email)
	if email == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if !isValidEmail(email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}
	if input.CampaignID == "" && input.LandingPageID == "" && input.VehicleID == "" {
		errs = append(errs, ValidationError{"campaignId", "campaignId, landingPageId or vehicleId is required"})
	}
	return errs
}

func ValidateVehicleInput(input VehicleInput) []ValidationError {
	var errs []ValidationError
	if input.Year < entity.MinVehicleYear || input.Year > entity.MaxVehicleYear {
		errs = append(errs, ValidationError{"year", fmt.Sprintf("must be between %d and %d", entity.MinVehicleYear, entity.MaxVehicleYear)})
	}
	if strings.TrimSpace(input.Make) == "" {
		errs = append(errs, ValidationError{"make", "is required"})
	}
	if strings.TrimSpace(input.Model) == "" {
		errs = append(errs, ValidationError{"model", "is required"})
	}
	if strings.TrimSpace(input.ConsultantID) == "" {
		errs = append(errs, ValidationError{"consultantId", "is required"})
	}
	return errs
}

func ValidateQRCodeInput(input CreateQRCodeInput) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(input.CampaignID) == "" {
		errs = append(errs, ValidationError{"campaignId", "is required"})
	}
	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if input.LandingPageSlug != "" && !entity.ValidSlug(input.LandingPageSlug) {
		errs = append(errs, ValidationError{"landingPageSlug", "is invalid"})
	}
	return errs
}
