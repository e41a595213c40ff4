package mail

import (
	"fmt"
	"time"
)

// SubjectVerification is the subject line for signup/resend OTP emails.
const SubjectVerification = "Please Verify your email!"

// SubjectPasswordChanged is the subject line for password change alerts.
const SubjectPasswordChanged = "ALERT: Your Account's password has been Changed"

// VerificationBody renders the HTML body carrying a one-time code.
func VerificationBody(otp string) string {
	return fmt.Sprintf(`<!doctype html>
<html>
  <body style="margin:0;padding:0;background-color:#f4f6f8;font-family:Arial,Helvetica,sans-serif;">
    <table role="presentation" cellpadding="0" cellspacing="0" width="100%%" style="max-width:680px;margin:40px auto;background:#ffffff;border-radius:8px;overflow:hidden;">
      <tr>
        <td style="padding:24px 28px 8px;background:linear-gradient(90deg,#1f5ef8,#6b8bff);color:#fff;">
          <h1 style="margin:0;font-size:20px;font-weight:700;">BenchMate</h1>
          <p style="margin:6px 0 0;font-size:13px;">Verify your email to finish signing up</p>
        </td>
      </tr>
      <tr>
        <td style="padding:28px;">
          <p style="margin:0 0 22px;color:#333;font-size:15px;">
            Thanks for creating an account on <strong>BenchMate</strong>. Use the one-time
            verification code below to confirm your email address. The code expires in
            <strong>10 minutes</strong>.
          </p>
          <table role="presentation" cellpadding="0" cellspacing="0" width="100%%" style="margin:18px 0 26px;">
            <tr>
              <td align="center">
                <div style="display:inline-block;padding:20px 28px;border-radius:8px;background:#f6f9ff;border:1px dashed #dfe9ff;">
                  <p style="margin:0;color:#1f2a44;font-size:14px;">Your verification code</p>
                  <p style="margin:10px 0 0;font-size:28px;letter-spacing:4px;font-weight:700;color:#0b2bff;">%s</p>
                </div>
              </td>
            </tr>
          </table>
          <p style="margin:0 0 18px;color:#333;font-size:15px;">
            Enter this code on the verification screen to complete your registration.
            If you didn't request this, you can safely ignore this email.
          </p>
        </td>
      </tr>
      <tr>
        <td style="padding:18px 28px 28px;background:#fafbfd;border-top:1px solid #f0f2f7;font-size:13px;color:#7a8494;">
          If the code does not work, request a new one from the app. &copy; %d BenchMate
        </td>
      </tr>
    </table>
  </body>
</html>`, otp, time.Now().Year())
}

// PasswordChangedBody renders the alert sent after a password change.
func PasswordChangedBody(name string) string {
	return fmt.Sprintf(`<!doctype html>
<html>
  <body style="margin:0;padding:0;background-color:#f4f6f8;font-family:Arial,Helvetica,sans-serif;">
    <table role="presentation" cellpadding="0" cellspacing="0" width="100%%" style="max-width:680px;margin:40px auto;background:#ffffff;border-radius:8px;overflow:hidden;">
      <tr>
        <td style="padding:24px 28px 8px;background:linear-gradient(90deg,#1f5ef8,#6b8bff);color:#fff;">
          <h1 style="margin:0;font-size:20px;font-weight:700;">BenchMate</h1>
        </td>
      </tr>
      <tr>
        <td style="padding:28px;color:#333;font-size:15px;">
          <p style="margin:0 0 18px;">Hi %s,</p>
          <p style="margin:0 0 18px;">
            The password for your BenchMate account was just changed. If this was you,
            no action is needed. If you did not make this change, reset your password
            immediately and contact support.
          </p>
        </td>
      </tr>
      <tr>
        <td style="padding:18px 28px 28px;background:#fafbfd;border-top:1px solid #f0f2f7;font-size:13px;color:#7a8494;">
          &copy; %d BenchMate
        </td>
      </tr>
    </table>
  </body>
</html>`, name, time.Now().Year())
}
