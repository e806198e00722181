package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LeadMapping decides which collected values become lead columns. Anything
// that is neither a column nor a routing key lands in the lead metadata.
type LeadMapping struct{}

var leadRoutingKeys = map[string]bool{
	"campaignId":    true,
	"landingPageId": true,
	"vehicleId":     true,
	"source":        true,
	"metadata":      true,
}

func (LeadMapping) FromFields(fields map[string]string) CaptureLeadInput {
	input := CaptureLeadInput{Metadata: map[string]string{}}
	for k, v := range fields {
		setLeadValue(&input, k, v)
	}
	return input
}

// FromJSON maps a decoded JSON object. Non-string values are kept in
// metadata in their JSON form, and a nested "metadata" object is merged in.
func (m LeadMapping) FromJSON(body map[string]any) CaptureLeadInput {
	input := CaptureLeadInput{Metadata: map[string]string{}}
	if nested, ok := body["metadata"].(map[string]any); ok {
		for k, v := range nested {
			input.Metadata[k] = jsonString(v)
		}
	}
	for k, v := range body {
		if k == "metadata" || v == nil {
			continue
		}
		setLeadValue(&input, k, jsonString(v))
	}
	return input
}

func setLeadValue(input *CaptureLeadInput, key, value string) {
	value = strings.TrimSpace(value)
	switch key {
	case "email":
		input.Email = value
	case "name":
		input.Name = value
	case "phone":
		input.Phone = value
	case "address":
		input.Address = value
	case "message":
		input.Message = value
	case "campaignId":
		input.CampaignID = value
	case "landingPageId":
		input.LandingPageID = value
	case "vehicleId":
		input.VehicleID = value
	case "source":
		input.Source = value
	default:
		if leadRoutingKeys[key] || value == "" {
			return
		}
		input.Metadata[key] = value
	}
}

func jsonString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
