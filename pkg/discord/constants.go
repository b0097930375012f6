package discord

import "time"

const (
	webhookURLTemplate = "https://discord.com/api/webhooks/%s/%s"

	// Discord embed colors.
	ColorBlue   = 3447003
	ColorGreen  = 3066993
	ColorYellow = 16776960
	ColorRed    = 15158332
	ColorOrange = 15105570
	ColorGray   = 9807270

	ColorInfo    = ColorBlue
	ColorSuccess = ColorGreen
	ColorWarning = ColorYellow
	ColorError   = ColorRed

	// Discord payload limits.
	MaxMessageLength  = 2000
	MaxEmbedLength    = 6000
	MaxTitleLen       = 256
	MaxDescriptionLen = 4096
	MaxFieldValueLen  = 1024
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultRetryCount = 2
	DefaultRetryDelay = 1 * time.Second
)

const (
	DefaultUsername = "Lead Auditor"
	UserAgent       = "LeadAuditor/1.0"
)
