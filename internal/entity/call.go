package entity

import (
	"strconv"
	"time"
)

// Call outcome types reported by the telephony provider.
const (
	CallTypeAnswered   = "answered"
	CallTypeUnanswered = "unanswered"
	CallTypeVoicemail  = "voicemail"
)

// Call is a single telephony event. Calls are immutable facts; each one
// belongs to exactly one contact number at fetch time.
type Call struct {
	ID              string  `json:"id"`
	CallSID         string  `json:"call_sid"`
	ContactNumber   string  `json:"contact_number"`
	ContactName     string  `json:"contact_name"`
	ContactEmail    string  `json:"contact_email"`
	JustCallNumber  string  `json:"justcall_number"`
	LineName        string  `json:"justcall_line_name"`
	AgentName       string  `json:"agent_name"`
	AgentEmail      string  `json:"agent_email"`
	CallDate        string  `json:"call_date"` // YYYY-MM-DD
	CallTime        string  `json:"call_time"` // HH:MM:SS
	Direction       string  `json:"direction"`
	Type            string  `json:"type"`
	Disposition     string  `json:"disposition"`
	Notes           string  `json:"notes"`
	DurationSec     int     `json:"duration_sec"`
	ConversationSec int     `json:"conversation_sec"`
	RecordingURL    string  `json:"recording_url"`
	Cost            float64 `json:"cost"`
}

// OccurredAt combines CallDate and CallTime into a UTC instant.
// Returns the zero time when either part does not parse.
func (c Call) OccurredAt() time.Time {
	t, err := time.Parse("2006-01-02T15:04:05Z", c.CallDate+"T"+c.CallTime+"Z")
	if err != nil {
		return time.Time{}
	}
	return t
}

// Outcome is the disposition label when the agent set one, otherwise the
// raw call type.
func (c Call) Outcome() string {
	if c.Disposition != "" {
		return c.Disposition
	}
	return c.Type
}

// CallDumpHeaders is the column order of the raw call dump sheet (A:S).
var CallDumpHeaders = []string{
	"Call ID",
	"Call SID",
	"Contact Number",
	"Contact Name",
	"Contact Email",
	"JustCall Number",
	"Line Name",
	"Agent Name",
	"Agent Email",
	"Call Date",
	"Call Time",
	"Direction",
	"Type",
	"Disposition",
	"Notes",
	"Duration (sec)",
	"Conversation Time (sec)",
	"Recording URL",
	"Cost",
}

// ToDumpRow maps the call to a raw dump sheet row, matching CallDumpHeaders.
func (c Call) ToDumpRow() []string {
	return []string{
		c.ID,
		c.CallSID,
		c.ContactNumber,
		c.ContactName,
		c.ContactEmail,
		c.JustCallNumber,
		c.LineName,
		c.AgentName,
		c.AgentEmail,
		c.CallDate,
		c.CallTime,
		c.Direction,
		c.Type,
		c.Disposition,
		c.Notes,
		strconv.Itoa(c.DurationSec),
		strconv.Itoa(c.ConversationSec),
		c.RecordingURL,
		strconv.FormatFloat(c.Cost, 'f', -1, 64),
	}
}

// CallSummary is the per-contact reduction of that contact's call list.
// Total always equals connected + missed + voicemail + other outcomes.
type CallSummary struct {
	Total           int
	Connected       int
	Missed          int
	Voicemail       int
	LastDate        string
	LastDisposition string
	LastAgent       string
	Agents          []string
	History         string
}
