package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// WelcomeEmailData carries the data for the email a newly provisioned
// account receives. The temporary password is only ever sent here; the user
// is expected to change it after first login.
type WelcomeEmailData struct {
	AppName      string
	UserName     string
	Email        string
	EmployeeID   string
	TempPassword string
	LoginURL     string
}

// WelcomeEmail generates both plain text and HTML versions of the account
// welcome email.
func WelcomeEmail(data WelcomeEmailData) (textBody, htmlBody string) {
	textBody = fmt.Sprintf(
		"Welcome to %s, %s!\n\n"+
			"An account has been created for you.\n\n"+
			"Email: %s\n"+
			"Employee ID: %s\n"+
			"Temporary password: %s\n\n"+
			"Sign in at %s and change your password right away.",
		data.AppName, data.UserName, data.Email, data.EmployeeID,
		data.TempPassword, data.LoginURL)

	var buf bytes.Buffer
	_ = welcomeTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

// ResetOTPEmailData carries the data for a password-reset OTP email.
type ResetOTPEmailData struct {
	AppName   string
	UserName  string
	OTP       string
	ExpiryMin int
}

// ResetOTPEmail generates both plain text and HTML versions of the
// password-reset OTP email.
func ResetOTPEmail(data ResetOTPEmailData) (textBody, htmlBody string) {
	textBody = fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your %s password reset code is:\n\n"+
			"    %s\n\n"+
			"The code expires in %d minutes.\n\n"+
			"If you did not request a reset, you can safely ignore this email.",
		data.UserName, data.AppName, data.OTP, data.ExpiryMin)

	var buf bytes.Buffer
	_ = resetOTPTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #1a4d2e;">Welcome to {{.AppName}}, {{.UserName}}!</h2>
  <p>An account has been created for you.</p>
  <table style="border-collapse: collapse; margin: 16px 0;">
    <tr><td style="padding: 4px 12px 4px 0;"><strong>Email</strong></td><td>{{.Email}}</td></tr>
    <tr><td style="padding: 4px 12px 4px 0;"><strong>Employee ID</strong></td><td>{{.EmployeeID}}</td></tr>
    <tr><td style="padding: 4px 12px 4px 0;"><strong>Temporary password</strong></td><td><code>{{.TempPassword}}</code></td></tr>
  </table>
  <p>
    <a href="{{.LoginURL}}" style="background: #1a4d2e; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 4px;">Sign in</a>
  </p>
  <p style="color: #777; font-size: 13px;">Please change your password right away after signing in.</p>
</body>
</html>`))

var resetOTPTmpl = template.Must(template.New("reset_otp").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #1a4d2e;">Password reset code</h2>
  <p>Hi {{.UserName}},</p>
  <p>Your {{.AppName}} password reset code is:</p>
  <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{.OTP}}</p>
  <p>The code expires in {{.ExpiryMin}} minutes.</p>
  <p style="color: #777; font-size: 13px;">If you did not request a reset, you can safely ignore this email.</p>
</body>
</html>`))
