package tool

import (
	"flag"

	"github.com/moyoez/filestation-go/types"
)

// SetFlags parses CLI flags and returns the override config.
// Remaining arguments are the files to upload.
func SetFlags() types.Config {
	var cfg types.Config
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	flag.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	flag.StringVar(&cfg.UseServer, "useServer", "", "override server base URL, e.g. http://127.0.0.1:8080")
	flag.StringVar(&cfg.UseDescription, "description", "", "description attached to every file of the batch")
	flag.StringVar(&cfg.UsePassword, "password", "", "optional download password for the batch")
	flag.StringVar(&cfg.UseExpiration, "expiration", "", "expiration in hours (default from config)")
	flag.IntVar(&cfg.UseMaxConcurrent, "maxConcurrent", -1, "max transfers in flight, 0 for unlimited (-1 keeps config)")
	flag.IntVar(&cfg.UseFinalizeDelay, "finalizeDelay", -1, "milliseconds to wait before finalizing a batch (-1 keeps config)")
	flag.BoolVar(&cfg.Serve, "serve", false, "keep running and expose the local control API")
	flag.IntVar(&cfg.UseControlPort, "useControlPort", 0, "override control API port")
	flag.BoolVar(&cfg.UseQRCode, "qr", false, "print the listing URL as a QR code once a batch settles")
	flag.BoolVar(&cfg.UseProbe, "probe", false, "ping the server host before uploading (warning only)")
	flag.Parse()
	cfg.Files = flag.Args()
	return cfg
}
