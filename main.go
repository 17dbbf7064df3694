package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/deevus/ticket-tui/app"
	"github.com/deevus/ticket-tui/config"
	"github.com/deevus/ticket-tui/internal"
	"github.com/deevus/ticket-tui/tunnel"
)

func main() {
	serverFlag := flag.String("server", "", "server profile name from config")
	configFlag := flag.String("config", config.DefaultPath(), "path to config file")
	flag.Parse()

	cfg, err := config.LoadFrom(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	serverName := *serverFlag
	if serverName == "" {
		names := cfg.ServerNames()
		if len(names) == 1 {
			serverName = names[0]
		} else {
			fmt.Fprintf(os.Stderr, "Multiple servers configured. Use --server flag.\nAvailable: %v\n", names)
			os.Exit(1)
		}
	}

	serverCfg, ok := cfg.Servers[serverName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: server %q not found in config\n", serverName)
		os.Exit(1)
	}

	if serverCfg.SSH != nil && serverCfg.SSH.HostKeyFingerprint == "" {
		sshHost := internal.SSHHost(serverCfg)
		fingerprint, err := tunnel.ScanHostKey(sshHost, serverCfg.SSH.Port)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: host_key_fingerprint is required for SSH.\n")
			fmt.Fprintf(os.Stderr, "Could not auto-detect: %v\n", err)
			fmt.Fprintf(os.Stderr, "Get it with: ssh-keyscan -p %d %s 2>/dev/null | ssh-keygen -lf -\n", serverCfg.SSH.Port, sshHost)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: host_key_fingerprint is required for SSH.\n")
		fmt.Fprintf(os.Stderr, "Detected fingerprint for %s:\n\n", sshHost)
		fmt.Fprintf(os.Stderr, "  host_key_fingerprint = %q\n\n", fingerprint)
		fmt.Fprintf(os.Stderr, "Add this to [servers.%s.ssh] in your config.\n", serverName)
		os.Exit(1)
	}

	// The terminal belongs to vaxis, so log lines go to a file.
	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	root := app.New(app.Params{
		ServerName: serverName,
		Connect: func(ctx context.Context) (*internal.Services, error) {
			return internal.Connect(ctx, serverCfg)
		},
		Interval:        serverCfg.RefreshInterval,
		DropWindowHours: serverCfg.DropWindowHours,
	})
	defer root.Close()

	vxApp, err := vxfw.NewApp(vaxis.Options{})
	if err != nil {
		log.Fatal(err)
	}
	root.SetPostEvent(vxApp.PostEvent)

	if err := vxApp.Run(root); err != nil {
		log.Fatal(err)
	}
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
