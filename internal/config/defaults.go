package config

// AppName is used for the XDG data directory and config file discovery.
const AppName = "pesterun"

const (
	// DefaultConfigFile is the optional YAML config file name looked up in
	// the working directory and the user's home directory.
	DefaultConfigFile = ".pesterun.yaml"
	// DefaultResultFileName is where the last run report is saved.
	DefaultResultFileName = "last-run.json"
	// DefaultHistoryDBName is the run history database file name.
	DefaultHistoryDBName = "history.db"
	// DefaultLogLevel keeps logging quiet unless asked for.
	DefaultLogLevel = "warn"
	// DefaultHistoryLimit is how many history rows are shown.
	DefaultHistoryLimit = 20
)
