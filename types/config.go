package types

// AppConfig represents the application configuration loaded from config file
type AppConfig struct {
	Server             string `yaml:"server"`             // base URL of the file-hosting site, e.g. http://127.0.0.1:8080
	UploadPath         string `yaml:"uploadPath"`         // relative to Server
	ListingPath        string `yaml:"listingPath"`        // where to send the user once a batch settles
	Expiration         string `yaml:"expiration"`         // hours, sent with every upload
	FinalizeDelayMs    int    `yaml:"finalizeDelayMs"`    // wait before finalizing so the final status stays visible
	ProgressIntervalMs int    `yaml:"progressIntervalMs"` // minimum gap between two progress events of one transfer
	MaxConcurrent      int    `yaml:"maxConcurrent"`      // 0 means every file starts at once
	ControlPort        int    `yaml:"controlPort"`
	NotifyWS           bool   `yaml:"notifyWS"`
	HistoryTTLMinutes  int    `yaml:"historyTTLMinutes"`
}

// Config holds runtime overrides from CLI flags
type Config struct {
	Log              string
	UseConfigPath    string
	UseServer        string
	UseDescription   string
	UsePassword      string
	UseExpiration    string
	UseMaxConcurrent int
	UseFinalizeDelay int  // milliseconds, -1 keeps the config value
	Serve            bool // if true, keep running and expose the local control API
	UseControlPort   int
	UseQRCode        bool // if true, print the listing URL as a terminal QR code once a batch settles
	UseProbe         bool // if true, ping the server host before uploading
	Files            []string
}
