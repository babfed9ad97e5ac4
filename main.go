package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"kodikey/applet"
	"kodikey/config"
	"kodikey/mediakeys"
	"kodikey/panel"
	"kodikey/remote"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {

	logFile, err := os.OpenFile("kodikey.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Printf("Warning: could not open log file: %v\n", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	configPath := config.DefaultFilePath()
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	settings, err := config.Open(configPath)
	if err != nil {
		fmt.Printf("Error loading config '%s': %v\n", configPath, err)
		os.Exit(1)
	}
	log.Printf("Using config file: %s", settings.Path())
	cfg := settings.Config()

	dispatcher := remote.NewDispatcher()
	dispatcher.SetEndpoint(cfg.Endpoint.Host, cfg.Endpoint.Port, cfg.Endpoint.Path)

	daemon := mediakeys.GnomeOptions()
	if cfg.Daemon == config.DaemonCinnamon {
		daemon = mediakeys.CinnamonOptions()
	}
	service, err := mediakeys.Connect(daemon)
	if err != nil {
		fmt.Printf("Error connecting to media key service: %v\n", err)
		os.Exit(1)
	}

	app := applet.New(service, dispatcher)

	ctx, cancel := context.WithCancel(context.Background())

	endpoints := make(chan config.Endpoint, 1)
	err = settings.Watch(ctx, func(c config.Config) {
		select {
		case endpoints <- c.Endpoint:
		case <-ctx.Done():
		}
	})
	if err != nil {
		log.Printf("Config changes will not be picked up: %v", err)
	}

	cleanup := func() {
		log.Println("Shutting down...")
		if err := app.Close(context.Background()); err != nil {
			log.Printf("Error releasing media keys: %v", err)
		}
		cancel()
		dispatcher.Wait()
		if err := settings.Finalize(); err != nil {
			log.Printf("Error closing config watcher: %v", err)
		}
		if err := service.Close(); err != nil {
			log.Printf("Error closing media key service: %v", err)
		}
		log.Println("Cleanup completed")
	}
	defer cleanup()

	model := panel.NewModel(app, dispatcher, service.Events(), endpoints)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Received interrupt signal")
		p.Quit()
	}()

	log.Println("Starting panel")
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		cleanup()
		os.Exit(1)
	}

	log.Println("Application exited normally")
}
