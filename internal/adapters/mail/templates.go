package mail

import (
	"html/template"
	"strings"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: 'Courier New', monospace; background-color: #0a0e27; color: #00ff00; padding: 20px; }
  .container { max-width: 600px; margin: 0 auto; background-color: #1a1f3a; border: 2px solid #00ff00; padding: 30px; border-radius: 8px; }
  .header { font-size: 24px; font-weight: bold; margin-bottom: 20px; text-align: center; color: #00ff00; }
  .content { line-height: 1.6; margin-bottom: 20px; }
  .highlight { color: #00ffff; font-weight: bold; }
  .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #00ff00; font-size: 12px; text-align: center; color: #888; }
</style>
</head>
<body>
<div class="container">
  <div class="header">PREPTRACK :: NOTIFICATIONS ENABLED</div>
  <div class="content">
    <p>Hello <span class="highlight">{{.Name}}</span>,</p>
    <p>Your notifications have been successfully enabled!</p>
    <p>You will now receive:</p>
    <ul>
      <li>Daily streak reminders</li>
      <li>Task completion notifications</li>
      <li>Video progress updates</li>
      <li>Contest reminders</li>
    </ul>
    <p>Keep up the great work on your preparation journey!</p>
    <p style="margin-top: 30px;">
      <strong>STREAK :: ACTIVE</strong><br>
      <span style="color: #888;">Stay consistent, stay ahead.</span>
    </p>
  </div>
  <div class="footer">
    PrepTrack - Your Competitive Programming Companion<br>
    To disable notifications, click the NOTIFS button in your dashboard.
  </div>
</div>
</body>
</html>`))

var streakReminderTemplate = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: 'Courier New', monospace; background-color: #000; color: #ffbf00; padding: 20px; }
  .container { max-width: 600px; margin: 0 auto; border: 2px solid #ffbf00; padding: 30px; border-radius: 8px; }
  .header { font-size: 24px; font-weight: bold; margin-bottom: 20px; text-align: center; color: #ffbf00; }
  .highlight { color: #fff; font-weight: bold; }
  .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #333; font-size: 12px; text-align: center; color: #666; }
  .btn { display: inline-block; background: #ffbf00; color: #000; padding: 10px 20px; text-decoration: none; font-weight: bold; margin-top: 20px; border-radius: 4px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">STREAK RISK DETECTED</div>
  <p>Hello <span class="highlight">{{.Name}}</span>,</p>
  <p>This is an automated alert from <strong>PrepTrack OS</strong>.</p>
  <p>We noticed you haven't logged any activity today. Your streak is at risk of resetting to 0 at midnight!</p>
  <p>Log a task or video now to keep your momentum going.</p>
  <div style="text-align: center;">
    <a href="{{.FrontendURL}}" class="btn">LOG ACTIVITY NOW</a>
  </div>
  <div class="footer">PrepTrack Intelligence System</div>
</div>
</body>
</html>`))

func renderWelcome(name string) (string, error) {
	var b strings.Builder
	err := welcomeTemplate.Execute(&b, struct{ Name string }{Name: displayName(name)})
	return b.String(), err
}

func renderStreakReminder(name, frontendURL string) (string, error) {
	var b strings.Builder
	err := streakReminderTemplate.Execute(&b, struct {
		Name        string
		FrontendURL string
	}{Name: displayName(name), FrontendURL: frontendURL})
	return b.String(), err
}

func displayName(name string) string {
	if name == "" {
		return "User"
	}
	return name
}
