package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ayusman/airmouse/internal/app"
	"github.com/ayusman/airmouse/internal/capture"
	"github.com/ayusman/airmouse/internal/config"
	"github.com/ayusman/airmouse/internal/gesture"
	"github.com/ayusman/airmouse/internal/server"
	"github.com/ayusman/airmouse/internal/store"
	"github.com/ayusman/airmouse/internal/tray"
)

func main() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	dataDir := filepath.Join(homeDir, ".airmouse")

	configPath := flag.String("config", filepath.Join(dataDir, "config.json"), "filter config file (.json)")
	addr := flag.String("addr", "127.0.0.1:8080", "overlay server address")
	cameraID := flag.Int("camera", 0, "camera device index")
	noMirror := flag.Bool("no-mirror", false, "do not mirror camera frames")
	noTray := flag.Bool("no-tray", false, "run without the system tray")
	flag.Parse()

	fmt.Println("AirMouse - Hand Gesture Pointer")

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "airmouse.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	filter, err := loadFilter(*configPath, st)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	camOpts := capture.DefaultOptions()
	camOpts.DeviceID = *cameraID
	camOpts.Mirror = !*noMirror

	application := app.New(app.Config{Filter: filter, Camera: camOpts})

	srv := server.New(server.Config{
		StaticDir: findWebDir(dataDir),
		Store:     st,
		Overlay:   application.Mailbox(),
		Filter:    application.Filter,
	})
	defer srv.Close()

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start frame loop: %v", err)
	}
	defer application.Stop()

	if *noTray {
		application.OnGesture(func(l gesture.Label) {
			log.Printf("gesture: %v", l)
		})
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		return
	}

	t := tray.New()
	t.OnToggle(application.SetEnabled)
	t.OnSettings(func() {
		fmt.Printf("Overlay: http://%s/\n", *addr)
	})
	application.OnGesture(t.SetGesture)
	t.Run()
}

// loadFilter reads the config file if present, otherwise the values held
// in the settings store, falling back to defaults.
func loadFilter(path string, st *store.Store) (config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		log.Printf("Loading config from %s", path)
		return config.Load(path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return config.Config{}, err
	}

	settings, err := st.Settings().List()
	if err != nil {
		return config.Config{}, fmt.Errorf("read settings: %w", err)
	}
	if len(settings) == 0 {
		return config.Default(), nil
	}
	return config.FromSettings(settings)
}

// findWebDir searches for the overlay web directory in common locations.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	candidates := []string{"web", "../web", "../../web", filepath.Join(dataDir, "web")}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}
	return ""
}
