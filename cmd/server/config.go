package main

// AppConfig is the server configuration, read from the environment.
type AppConfig struct {
	Env             string   `env:"APP_ENV" envDefault:"development"`
	TemplateDir     string   `env:"TEMPLATE_DIR" envDefault:"templates"`
	TemplateReload  bool     `env:"TEMPLATE_RELOAD" envDefault:"false"`
	LangDir         string   `env:"LANG_DIR" envDefault:"lang"`
	DefaultLanguage string   `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	Languages       []string `env:"LANGUAGES" envSeparator:"," envDefault:"en,de"`
	SettingsPrefix  string   `env:"SETTINGS_PREFIX" envDefault:"settings_"`
	TablesConfig    string   `env:"TABLES_CONFIG" envDefault:"config/tables.yaml"`
	UsersConfig     string   `env:"USERS_CONFIG" envDefault:"config/users.yaml"`
	CSRFSecret      string   `env:"CSRF_SECRET,required"`
	SecureCookies   bool     `env:"SECURE_COOKIES" envDefault:"false"`
	QueryLog        bool     `env:"DEBUG_QUERY_LOG" envDefault:"false"`
	MaxBodyBytes    int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// AdminName signs every request in as this admin. Meant for local
	// development until a session-backed resolver is wired in.
	AdminName     string `env:"DEV_ADMIN_NAME"`
	AdminLanguage string `env:"DEV_ADMIN_LANGUAGE"`
}
