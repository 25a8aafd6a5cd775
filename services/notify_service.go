package services

import (
	"encoding/base64"
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"wellness-backend/models"
	"wellness-backend/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotifyService sends booking notifications over SMTP. When SMTP is not
// configured it logs the message instead of failing, so environments
// without a relay still exercise the full submission path.
type NotifyService struct {
	DB *gorm.DB
}

func NewNotifyService(db *gorm.DB) *NotifyService {
	return &NotifyService{DB: db}
}

// settings reads the platform row best-effort; env vars fill the gaps.
func (n *NotifyService) settings() models.PlatformSetting {
	var setting models.PlatformSetting
	if n.DB != nil {
		_ = n.DB.First(&setting).Error
	}
	if setting.SupportEmail == "" {
		setting.SupportEmail = utils.EnvOrDefault("SUPPORT_EMAIL", "")
	}
	if setting.CCList == "" {
		setting.CCList = utils.EnvOrDefault("MAIL_CC", "")
	}
	if setting.BCCList == "" {
		setting.BCCList = utils.EnvOrDefault("MAIL_BCC", "")
	}
	return setting
}

// ResolveRecipient falls back to the configured support address so the
// CC/BCC lists still receive the message when no primary recipient exists.
func (n *NotifyService) ResolveRecipient(primary string) string {
	primary = strings.TrimSpace(primary)
	if primary != "" {
		return primary
	}
	return n.settings().SupportEmail
}

// SendBookingSuccess notifies the submitter that a booking was committed,
// attaching the audit export when one was produced.
func (n *NotifyService) SendBookingSuccess(booking *models.Booking, recipient, attachmentPath string) error {
	subject := fmt.Sprintf("Booking %s confirmed for submission", booking.ReferenceNumber)
	body := fmt.Sprintf(
		"Your health checkup booking has been received.\r\n\r\n"+
			"Reference number: %s\r\n"+
			"Preferred date: %s\r\n"+
			"Employees: %d\r\n"+
			"Dependents: %d\r\n"+
			"Status: %s\r\n\r\n"+
			"The applicant summary is attached.\r\n",
		booking.ReferenceNumber, booking.PreferredDate,
		booking.TotalEmployees, booking.TotalDependents, booking.Status,
	)
	return n.send(recipient, subject, body, attachmentPath)
}

// SendBookingFailure reports a failed submission attempt. Counts come from
// the raw payload since no rows may exist.
func (n *NotifyService) SendBookingFailure(recipient, reason string, employees, dependents int, attachmentPath string) error {
	subject := "Booking submission failed"
	body := fmt.Sprintf(
		"A health checkup booking submission could not be processed.\r\n\r\n"+
			"Reason: %s\r\n"+
			"Attempted employees: %d\r\n"+
			"Attempted dependents: %d\r\n\r\n"+
			"The attempted submission is attached for re-submission or diagnosis.\r\n",
		reason, employees, dependents,
	)
	return n.send(recipient, subject, body, attachmentPath)
}

func (n *NotifyService) send(recipient, subject, body, attachmentPath string) error {
	recipient = n.ResolveRecipient(recipient)
	setting := n.settings()
	cc := utils.SplitList(setting.CCList)
	bcc := utils.SplitList(setting.BCCList)

	if recipient == "" && len(cc) == 0 && len(bcc) == 0 {
		return fmt.Errorf("no recipient resolved and no support address configured")
	}

	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := utils.EnvOrDefault("SMTP_FROM_NAME", "Wellness Bookings")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		logrus.WithFields(logrus.Fields{
			"to":         recipient,
			"subject":    subject,
			"attachment": attachmentPath,
		}).Info("[MOCK EMAIL] SMTP not configured, logging instead of sending")
		return nil
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	boundary := "----=_BOOKING_MAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	if recipient != "" {
		sb.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	}
	if len(cc) > 0 {
		sb.WriteString(fmt.Sprintf("Cc: %s\r\n", strings.Join(cc, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(body + "\r\n")

	if attachmentPath != "" {
		if err := appendAttachment(&sb, boundary, attachmentPath); err != nil {
			logrus.WithError(err).Warn("skipping unreadable mail attachment")
		}
	}

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	rcpt := make([]string, 0, 1+len(cc)+len(bcc))
	if recipient != "" {
		rcpt = append(rcpt, recipient)
	}
	rcpt = append(rcpt, cc...)
	rcpt = append(rcpt, bcc...)

	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)
	if err := smtp.SendMail(addr, auth, smtpUser, rcpt, []byte(sb.String())); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

func appendAttachment(sb *strings.Builder, boundary, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: application/vnd.openxmlformats-officedocument.spreadsheetml.sheet\r\n")
	sb.WriteString("Content-Transfer-Encoding: base64\r\n")
	sb.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n\r\n", filepath.Base(path)))

	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		sb.WriteString(encoded[:76] + "\r\n")
		encoded = encoded[76:]
	}
	sb.WriteString(encoded + "\r\n")
	return nil
}
