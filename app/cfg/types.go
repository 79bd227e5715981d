package cfg

type Cfg struct {
	// HTTP server configuration
	Port string

	// Blog aggregation configuration
	DevtoUsername string
	DevtoAPIURL   string
	CacheTTL      int

	// Videos aggregation configuration
	YoutubeChannelID string

	// Site content configuration
	ContentDir string

	// Storage configuration
	DBPath string

	// Background refresh configuration
	WorkerCount       int
	SchedulerInterval int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
