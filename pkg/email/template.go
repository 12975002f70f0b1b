package email

import (
	"fmt"
	"html"
	"os"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var emailLoc = loadEmailLoc()

// loadEmailLoc reads EMAIL_TIMEZONE, falling back to UTC
func loadEmailLoc() *time.Location {
	loc, err := time.LoadLocation(os.Getenv("EMAIL_TIMEZONE"))
	if err != nil {
		return time.UTC
	}
	return loc
}

type ToggleEmailDetails struct {
	Username string // who flipped the switch
	Enabled  bool
	Message  string // maintenance message in effect
	SiteURL  string
	Time     time.Time
}

// ToggleSubject is the subject line of the toggle notification
func ToggleSubject(enabled bool) string {
	return fmt.Sprintf("Maintenance mode is now %s", status(enabled))
}

func BuildToggleEmail(details ToggleEmailDetails) string {
	title := cases.Title(language.English).String(status(details.Enabled))
	color := "#dc3232"
	if details.Enabled {
		color = "#46b450"
	}
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; border:1px solid #e0e0e0; border-radius:8px; overflow:hidden;">
            <div style="background: #23282d; color: #fff; padding: 18px 24px;">
                <h2 style="margin:0; font-size: 1.3em;">Maintenance Mode %s</h2>
            </div>
            <div style="background: #f9f9f9; padding: 24px;">
                <p style="margin-bottom: 18px;">
                    <b>Status:</b> <span style="color: %s; font-weight: bold;">%s</span><br>
                    <b>Changed by:</b> %s<br>
                    <b>At:</b> %s
                </p>
                %s
            </div>
            <div style="background: #f1f1f1; color: #888; font-size: 0.95em; padding: 10px 24px;">
                This is an automated notification%s.
            </div>
        </div>
    `,
		title,
		color,
		title,
		html.EscapeString(details.Username),
		details.Time.In(emailLoc).Format("2006-01-02 15:04 MST"),
		func() string {
			if details.Enabled && details.Message != "" {
				return fmt.Sprintf(`<div style="margin-top: 18px; padding: 12px; background: #fffbe6; border-left: 4px solid #ffe066;"><b>Visitors see:</b> %s</div>`, html.EscapeString(details.Message))
			}
			return ""
		}(),
		func() string {
			if details.SiteURL != "" {
				return " from " + html.EscapeString(details.SiteURL)
			}
			return ""
		}(),
	)
}

func status(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
