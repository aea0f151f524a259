package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moyoez/filestation-go/api"
	"github.com/moyoez/filestation-go/listing"
	"github.com/moyoez/filestation-go/notify"
	"github.com/moyoez/filestation-go/session"
	"github.com/moyoez/filestation-go/tool"
	"github.com/moyoez/filestation-go/transfer"
	"github.com/moyoez/filestation-go/types"
)

func main() {
	cfg := tool.SetFlags()

	// initialize logger
	tool.InitLogger()
	tool.SetLogMode(cfg.Log)

	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	tool.ApplyFlagOverrides(&appCfg, cfg)

	uploadURL, err := tool.BuildUploadURL(appCfg.Server, appCfg.UploadPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("Invalid upload endpoint: %v", err)
	}
	listingURL, err := tool.BuildListingURL(appCfg.Server, appCfg.ListingPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("Invalid listing URL: %v", err)
	}

	if cfg.UseProbe {
		probeServer(appCfg.Server)
	}

	uploader := transfer.NewUploader(tool.GetHttpClient(), uploadURL)
	uploader.SetProgressInterval(tool.Milliseconds(appCfg.ProgressIntervalMs))

	console := notify.NewConsole(os.Stdout, listingURL, cfg.UseQRCode)
	presenters := notify.Multi{console}
	var hub *notify.Hub
	if cfg.Serve && appCfg.NotifyWS {
		hub = notify.NewHub(listingURL)
		presenters = append(presenters, hub)
	}

	sess := session.New(uploader, presenters, session.Config{
		FinalizeDelay: tool.Milliseconds(appCfg.FinalizeDelayMs),
		MaxConcurrent: appCfg.MaxConcurrent,
		HistoryTTL:    time.Duration(appCfg.HistoryTTLMinutes) * time.Minute,
	})
	index := listing.NewIndex(listing.MaxRetention)

	if cfg.Serve {
		apiServer := api.NewServer(appCfg.ControlPort, api.Options{
			Session:           sess,
			Index:             index,
			Hub:               hub,
			ListingURL:        listingURL,
			DefaultExpiration: appCfg.Expiration,
		})
		go func() {
			if err := apiServer.Start(); err != nil {
				tool.DefaultLogger.Fatalf("Control API startup failed: %v", err)
			}
		}()
	}

	go guardSignals(console)

	if len(cfg.Files) == 0 {
		if !cfg.Serve {
			tool.DefaultLogger.Fatal("No files given. Usage: filestation [flags] <file>...")
		}
		select {}
	}

	files, err := tool.DescribeFiles(cfg.Files)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	meta := types.SubmissionMetadata{
		Description: cfg.UseDescription,
		Password:    cfg.UsePassword,
		Expiration:  appCfg.Expiration,
	}
	handle, err := sess.Start(context.Background(), files, meta)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	tool.DefaultLogger.Infof("Uploading %d file(s) to %s", len(files), uploader.Endpoint())
	summary := handle.Wait()
	index.Record(summary)
	<-handle.Finalized()

	if cfg.Serve {
		select {}
	}
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

// guardSignals asks the console before leaving while uploads are running.
func guardSignals(console *notify.Console) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	for range signals {
		if console.ConfirmLeave() {
			tool.DefaultLogger.Info("Exiting")
			os.Exit(130)
		}
	}
}

func probeServer(server string) {
	host, err := tool.ServerHost(server)
	if err != nil {
		tool.DefaultLogger.Warnf("Skipping reachability probe: %v", err)
		return
	}
	if !tool.QuickICMPProbe(host, 2*time.Second) {
		tool.DefaultLogger.Warnf("Server host %s did not answer a ping, uploads may fail", host)
		return
	}
	tool.DefaultLogger.Debugf("Server host %s is reachable", host)
}
