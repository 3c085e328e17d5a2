package utils

import (
	"fmt"
	"net/smtp"

	"querynest/config"
)

var smtpConfig *config.Config

// InitEmail stores SMTP settings for the mail helpers.
func InitEmail(cfg *config.Config) {
	smtpConfig = cfg
}

func sendMail(to, subject, htmlBody string) error {
	if smtpConfig == nil {
		return fmt.Errorf("smtp is not configured")
	}
	cfg := smtpConfig

	auth := smtp.PlainAuth("", cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Host)
	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n"+
			"%s\r\n",
		to, cfg.SMTP.SenderName, cfg.SMTP.SenderEmail, subject, htmlBody))

	addr := fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	return smtp.SendMail(addr, auth, cfg.SMTP.SenderEmail, []string{to}, msg)
}

// SendOTPEmail sends the registration one-time code.
func SendOTPEmail(email, otp string) error {
	body := fmt.Sprintf(
		"<p>Your One-Time Password (OTP) for registration is:</p>"+
			"<h2>%s</h2>"+
			"<p>This OTP will expire in 5 minutes.</p>", otp)
	return sendMail(email, "Verify Your QueryNest Account - OTP", body)
}

// SendWelcomeEmail confirms a completed registration.
func SendWelcomeEmail(email, name string) error {
	body := fmt.Sprintf(
		"<h1>Congratulations, %s!</h1>"+
			"<p>Your registration is complete. Welcome to QueryNest!</p>", name)
	return sendMail(email, "Registration Successful", body)
}

// SendPasscodeEmail sends the password-reset passcode.
func SendPasscodeEmail(email, passcode string) error {
	body := fmt.Sprintf(
		"<p>Use the passcode below to reset your password:</p>"+
			"<h2>%s</h2>"+
			"<p>This passcode will expire in 20 minutes.</p>", passcode)
	return sendMail(email, "Reset Your Password - QueryNest", body)
}

// SendPasswordResetConfirmation confirms a successful reset.
func SendPasswordResetConfirmation(email string) error {
	body := "<h1>Password Reset Successful</h1>" +
		"<p>Your password has been successfully reset. You can now log in with your new password.</p>"
	return sendMail(email, "Password Reset Successful", body)
}
