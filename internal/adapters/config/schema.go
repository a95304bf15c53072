package config

// File is the structure of explorer.yaml.
// Durations are Go duration strings such as "1s" or "23h30m".
type File struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Redis struct {
		URL string `yaml:"url"`
	} `yaml:"redis"`

	Cache struct {
		Backend string `yaml:"backend"`
		TTL     string `yaml:"ttl"`
		Size    int    `yaml:"size"`
		Path    string `yaml:"path"`
	} `yaml:"cache"`

	Queue struct {
		Backend  string `yaml:"backend"`
		Name     string `yaml:"name"`
		ClaimTTL string `yaml:"claimTTL"`
	} `yaml:"queue"`

	Worker struct {
		Concurrency   int    `yaml:"concurrency"`
		JobTimeout    string `yaml:"jobTimeout"`
		ControlSocket string `yaml:"controlSocket"`
		ID            string `yaml:"id"`
	} `yaml:"worker"`

	Poll struct {
		Interval string `yaml:"interval"`
		Deadline string `yaml:"deadline"`
	} `yaml:"poll"`

	Warehouse struct {
		Source      string `yaml:"source"`
		DSN         string `yaml:"dsn"`
		GitHubToken string `yaml:"githubToken"`
		GitHubURL   string `yaml:"githubURL"`
		MaxCommits  int    `yaml:"maxCommits"`
	} `yaml:"warehouse"`

	Log struct {
		JSON bool `yaml:"json"`
	} `yaml:"log"`
}
