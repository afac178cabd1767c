package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"goditor/application"
	"goditor/config"
	"goditor/ui"
)

var (
	fileFlag = flag.String("file", "", "file to open on start")
	dirFlag  = flag.String("dir", "", "directory shown in the explorer (default: working directory)")
)

func init() {
	flag.StringVar(fileFlag, "f", "", "shorthand for -file")
	flag.StringVar(dirFlag, "d", "", "shorthand for -dir")
}

func NewLogger(dir string) *log.Logger {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatal(err)
	}
	file, err := os.OpenFile(filepath.Join(dir, config.LogName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatal(err)
	}
	return log.New(file, "", log.LstdFlags|log.Lshortfile)
}

// quit restores the terminal. Panics are caught here, cleaned up and
// re-raised, otherwise the program dies without leaving a diagnostic trace.
func quit(s tcell.Screen) {
	maybePanic := recover()
	s.Fini()
	if maybePanic != nil {
		panic(maybePanic)
	}
}

func main() {
	flag.Parse()

	dir := *dirFlag
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			log.Fatalf("%+v", err)
		}
		dir = wd
	}

	configDir := config.Dir()
	logger := NewLogger(configDir)

	cfg := config.NewConfig(logger, configDir)
	if err := cfg.Init(); err != nil {
		logger.Printf("Using default config: %v", err)
	}
	if err := cfg.Watch(); err != nil {
		logger.Printf("Config changes will not be picked up: %v", err)
	}
	defer cfg.Close()

	s, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if err := s.Init(); err != nil {
		log.Fatalf("%+v", err)
	}
	s.SetStyle(ui.DefaultStyle)
	s.EnablePaste()
	s.Clear()
	defer quit(s)

	// the watcher runs on its own goroutine, the event loop applies the change
	cfg.OnChange(func(config.EditorConfig) {
		s.PostEvent(tcell.NewEventInterrupt(nil))
	})

	app, err := application.New(cfg, logger, dir)
	if err != nil {
		s.Fini()
		log.Fatalf("%+v", err)
	}
	if *fileFlag != "" {
		if err := app.OpenFile(*fileFlag); err != nil {
			logger.Printf("Could not open %v: %v", *fileFlag, err)
		}
	}
	view := ui.New(s, app)
	logger.Printf("Started in %v", dir)

	for !app.Quit {
		view.Draw()

		switch ev := s.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			app.HandleKey(ev)
		case *tcell.EventInterrupt:
			app.ApplyConfig(cfg.Editor())
			logger.Print("Reloaded config")
		}
	}
}
