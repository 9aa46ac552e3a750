package justcall

import (
	"encoding/json"

	"github.com/brunovl/leadbridge/internal/entity"
)

// --- RESPONSE: v2 calls listing ---

type listCallsResponse struct {
	Data         []callRecord `json:"data"`
	TotalCount   *int         `json:"total_count"`
	NextPageLink string       `json:"next_page_link"`
}

type callRecord struct {
	ID               json.Number  `json:"id"`
	CallSID          string       `json:"call_sid"`
	ContactNumber    string       `json:"contact_number"`
	ContactName      string       `json:"contact_name"`
	ContactEmail     string       `json:"contact_email"`
	JustcallNumber   string       `json:"justcall_number"`
	JustcallLineName string       `json:"justcall_line_name"`
	AgentName        string       `json:"agent_name"`
	AgentEmail       string       `json:"agent_email"`
	CallDate         string       `json:"call_date"`
	CallTime         string       `json:"call_time"`
	CallInfo         callInfo     `json:"call_info"`
	CallDuration     callDuration `json:"call_duration"`
	CostIncurred     float64      `json:"cost_incurred"`
}

type callInfo struct {
	Direction   string `json:"direction"`
	Type        string `json:"type"`
	Disposition string `json:"disposition"`
	Notes       string `json:"notes"`
	Recording   string `json:"recording"`
}

type callDuration struct {
	TotalDuration    int `json:"total_duration"`
	ConversationTime int `json:"conversation_time"`
}

func (r callRecord) toEntity() entity.Call {
	return entity.Call{
		ID:              r.ID.String(),
		CallSID:         r.CallSID,
		ContactNumber:   r.ContactNumber,
		ContactName:     r.ContactName,
		ContactEmail:    r.ContactEmail,
		JustCallNumber:  r.JustcallNumber,
		LineName:        r.JustcallLineName,
		AgentName:       r.AgentName,
		AgentEmail:      r.AgentEmail,
		CallDate:        r.CallDate,
		CallTime:        r.CallTime,
		Direction:       r.CallInfo.Direction,
		Type:            r.CallInfo.Type,
		Disposition:     r.CallInfo.Disposition,
		Notes:           r.CallInfo.Notes,
		DurationSec:     r.CallDuration.TotalDuration,
		ConversationSec: r.CallDuration.ConversationTime,
		RecordingURL:    r.CallInfo.Recording,
		Cost:            r.CostIncurred,
	}
}

// --- PAYLOAD: autodialer contact add ---

type addContactRequest struct {
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}
