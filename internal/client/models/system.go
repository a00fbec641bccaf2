package models

// SystemConfig is the full panel configuration. The same shape is sent
// back on update.
type SystemConfig struct {
	Panel  PanelConfig  `json:"panel"`
	Email  EmailConfig  `json:"email"`
	Config PanelSetting `json:"config"`
	Log    LogConfig    `json:"log"`
	Backup BackupConfig `json:"backup"`
}

type PanelConfig struct {
	PanelURL string `json:"panelUrl"`
}

type EmailConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FromEmail string `json:"fromEmail"`
	ToEmail   string `json:"toEmail,omitempty"`
}

type PanelSetting struct {
	SiteTitle string `json:"siteTitle"`
	LogoURL   string `json:"logoUrl"`
	Copyright string `json:"copyright"`
}

type LogConfig struct {
	RetentionDays int    `json:"retentionDays"`
	Level         string `json:"level"`
}

type BackupConfig struct {
	AutoBackup     bool `json:"autoBackup"`
	RetentionCount int  `json:"retentionCount"`
}

// PublicSystemConfig is the branding visible without a session.
type PublicSystemConfig struct {
	SiteTitle string `json:"siteTitle"`
	LogoURL   string `json:"logoUrl"`
	Copyright string `json:"copyright"`
}
