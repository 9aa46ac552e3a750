package entity

// Lead is a contact captured from an ad platform lead form.
// Leads are read-only facts: once synced to the sheet they are never
// mutated, and ID is the dedup key for incremental syncs.
type Lead struct {
	ID           string `json:"id"`
	CreatedTime  string `json:"created_time"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	CompanyName  string `json:"company_name"`
	Platform     string `json:"platform"`
	CampaignName string `json:"campaign_name"`
	AdsetName    string `json:"adset_name"`
	AdName       string `json:"ad_name"`
}

// LeadHeaders is the column order of the lead sheet (Sheet1!A:J).
var LeadHeaders = []string{
	"Timestamp",
	"Lead ID",
	"Full Name",
	"Phone",
	"Email",
	"Company Name",
	"Platform",
	"Campaign",
	"Ad Set",
	"Ad Name",
}

// ToRow maps the lead to a sheet row. Column order matches LeadHeaders.
func (l Lead) ToRow() []string {
	return []string{
		l.CreatedTime,
		l.ID,
		l.FullName,
		l.Phone,
		l.Email,
		l.CompanyName,
		l.Platform,
		l.CampaignName,
		l.AdsetName,
		l.AdName,
	}
}

// LeadFromRow rebuilds a lead from a previously synced sheet row.
// Short rows are padded with empty strings.
func LeadFromRow(row []string) Lead {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Lead{
		CreatedTime:  cell(0),
		ID:           cell(1),
		FullName:     cell(2),
		Phone:        cell(3),
		Email:        cell(4),
		CompanyName:  cell(5),
		Platform:     cell(6),
		CampaignName: cell(7),
		AdsetName:    cell(8),
		AdName:       cell(9),
	}
}
