package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/brunovl/leadbridge/internal/entity"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

func NewEmailSender(host string, port int, user, password, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     user,
		To:       to,
	}
}

var leadTemplate = template.Must(template.New("lead").Parse(`
<h2>New {{.Platform}} lead</h2>
<table>
  <tr><td><b>Name</b></td><td>{{.FullName}}</td></tr>
  <tr><td><b>Company</b></td><td>{{.CompanyName}}</td></tr>
  <tr><td><b>Phone</b></td><td>{{.Phone}}</td></tr>
  <tr><td><b>Email</b></td><td>{{.Email}}</td></tr>
  <tr><td><b>Campaign</b></td><td>{{.CampaignName}}</td></tr>
  <tr><td><b>Ad Set</b></td><td>{{.AdsetName}}</td></tr>
</table>
<p>Lead ID: {{.ID}} | {{.CreatedTime}}</p>
`))

// SendLeadNotification mails the new-lead summary to the sales inbox.
func (s *EmailSender) SendLeadNotification(lead entity.Lead) error {
	var body bytes.Buffer
	if err := leadTemplate.Execute(&body, lead); err != nil {
		return fmt.Errorf("render lead email: %w", err)
	}

	name := lead.FullName
	if name == "" {
		name = "Unknown"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s", name))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send lead email: %w", err)
	}
	return nil
}
