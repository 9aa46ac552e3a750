package meta

import "github.com/brunovl/leadbridge/internal/entity"

// --- RESPONSE: Graph API lead ---

type leadResponse struct {
	ID           string      `json:"id"`
	CreatedTime  string      `json:"created_time"`
	Platform     string      `json:"platform"`
	CampaignName string      `json:"campaign_name"`
	AdsetName    string      `json:"adset_name"`
	AdName       string      `json:"ad_name"`
	FieldData    []fieldData `json:"field_data"`
}

// fieldData is one form answer; only values[0] is meaningful.
type fieldData struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type listLeadsResponse struct {
	Data   []leadResponse `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

func (r leadResponse) toEntity() entity.Lead {
	lead := entity.Lead{
		ID:           r.ID,
		CreatedTime:  r.CreatedTime,
		Platform:     r.Platform,
		CampaignName: r.CampaignName,
		AdsetName:    r.AdsetName,
		AdName:       r.AdName,
	}

	for _, field := range r.FieldData {
		value := ""
		if len(field.Values) > 0 {
			value = field.Values[0]
		}
		// Form field names vary per campaign; both phone spellings occur.
		switch field.Name {
		case "full_name":
			lead.FullName = value
		case "phone", "phone_number":
			lead.Phone = value
		case "email":
			lead.Email = value
		case "company_name":
			lead.CompanyName = value
		}
	}
	return lead
}
