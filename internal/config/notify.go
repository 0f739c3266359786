package config

// NotifyConfig holds the credentials of the guest notification channels.
// A channel whose credentials are missing is skipped.
type NotifyConfig struct {
    SendGridAPIKey string
    FromEmail      string
    FromName       string
    TwilioSID      string
    TwilioToken    string
    TwilioFrom     string
    HotelName      string
}

func LoadNotifyConfig() NotifyConfig {
    return NotifyConfig{
        SendGridAPIKey: envStr("SENDGRID_API_KEY", ""),
        FromEmail:      envStr("SENDGRID_FROM_EMAIL", ""),
        FromName:       envStr("SENDGRID_FROM_NAME", "Front Desk"),
        TwilioSID:      envStr("TWILIO_ACCOUNT_SID", ""),
        TwilioToken:    envStr("TWILIO_AUTH_TOKEN", ""),
        TwilioFrom:     envStr("TWILIO_FROM_NUMBER", ""),
        HotelName:      envStr("HOTEL_NAME", "Our Hotel"),
    }
}

// EmailEnabled reports whether SendGrid is configured.
func (c NotifyConfig) EmailEnabled() bool { return c.SendGridAPIKey != "" && c.FromEmail != "" }

// SMSEnabled reports whether Twilio is configured.
func (c NotifyConfig) SMSEnabled() bool {
    return c.TwilioSID != "" && c.TwilioToken != "" && c.TwilioFrom != ""
}
