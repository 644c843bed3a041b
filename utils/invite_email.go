package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// SendBookingInviteEmail sends the invite link for a booking to a guest.
// When SMTP is not configured the send is mocked with a log line so local
// development does not need a mail server.
func SendBookingInviteEmail(recipientEmail, inviteLink, hostName, listingTitle, checkIn, checkOut string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] booking invite to:%s listing:%s link:%s", recipientEmail, listingTitle, inviteLink)
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}

	hostName = safe(hostName)
	listingTitle = safe(listingTitle)
	checkIn = safe(checkIn)
	checkOut = safe(checkOut)
	inviteLink = safe(inviteLink)

	if !(strings.HasPrefix(inviteLink, "http://") || strings.HasPrefix(inviteLink, "https://")) {
		inviteLink = "https://" + strings.TrimLeft(inviteLink, "/")
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipientEmail}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	subject := fmt.Sprintf("%s invited you to join their stay", hostName)
	boundary := "----=_INVITE_EMAIL_BOUNDARY"

	plainBody := fmt.Sprintf(
		"Hi,\n\n"+
			"%s has invited you to join their stay at %s.\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n\n"+
			"Accept the invitation here:\n%s\n\n"+
			"If you did not expect this invitation, you can ignore this email.\n",
		hostName, listingTitle, checkIn, checkOut, inviteLink,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Stay Invitation</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
.label { font-weight:700; width:120px; display:inline-block; }
.btn { display:inline-block; padding:12px 20px; background:#0b74ff; color:#fff; text-decoration:none; border-radius:6px; margin-top:16px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>You're invited</h2>
    <p><strong>%s</strong> has invited you to join their stay at <strong>%s</strong>.</p>
    <p><span class="label">Check-In:</span> %s</p>
    <p><span class="label">Check-Out:</span> %s</p>
    <a class="btn" href="%s" target="_blank">Accept invitation</a>
    <p>If you did not expect this invitation, you can ignore this email.</p>
  </div>
</div>
</body>
</html>`,
		htmlEscape(hostName), htmlEscape(listingTitle), checkIn, checkOut, inviteLink,
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipientEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, to, []byte(sb.String())); err != nil {
		log.Printf("Failed to send invite email to %s: %v", recipientEmail, err)
		return err
	}

	log.Printf("Invite email sent to %s", recipientEmail)
	return nil
}

// minimal html escaper for the small strings we use
func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}
