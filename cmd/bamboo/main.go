// Command bamboo draws a status bar described by a TOML configuration file.
//
// SIGHUP or saving the configuration file redraws the bar with the new
// configuration. SIGINT and SIGTERM remove the bar and exit.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/safinsingh/bamboo/bar"
	"github.com/safinsingh/bamboo/conf"
	"github.com/safinsingh/bamboo/logging"
)

func main() {
	log := logging.New("bamboo")
	var cfgpath, barname, display string
	flag.StringVar(&cfgpath, "config", "", "configuration file (default first of "+strings.Join(conf.Paths(), ", ")+" that exists)")
	flag.StringVar(&barname, "bar", "default", "name of the bar to draw")
	flag.StringVar(&display, "display", "", "X display to connect to (default $DISPLAY)")
	flag.Parse()

	if err := run(log, cfgpath, barname, display); err != nil {
		log.Error("bamboo failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, cfgpath, barname, display string) error {
	if cfgpath == "" {
		p, err := conf.Find()
		if err != nil {
			return err
		}
		cfgpath = p
	}
	cfg, err := conf.Load(cfgpath)
	if err != nil {
		return err
	}
	b, err := cfg.Bar(barname)
	if err != nil {
		return err
	}
	log.Info("loaded configuration", "path", cfgpath, "bar", barname)

	x, err := bar.Connect(display)
	if err != nil {
		return err
	}
	defer x.Close()
	r := bar.NewRenderer(x, logging.New("bar"))
	if err := r.Render(barname, b); err != nil {
		return err
	}

	// Only the newest reload matters.
	reloads := make(chan *conf.Config, 1)
	stop, err := conf.Watch(cfgpath, func(c *conf.Config, err error) {
		if err != nil {
			log.Error("failed to reload configuration", "path", cfgpath, "error", err)
			return
		}
		select {
		case <-reloads:
		default:
		}
		reloads <- c
	})
	if err != nil {
		log.Warn("not watching configuration file", "path", cfgpath, "error", err)
	} else {
		defer stop()
	}

	redraw := func(c *conf.Config) {
		b, err := c.Bar(barname)
		if err != nil {
			log.Error("keeping previous bar", "error", err)
			return
		}
		if err := r.Render(barname, b); err != nil {
			log.Error("keeping previous bar", "error", err)
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigs)
	for {
		select {
		case sig := <-sigs:
			if sig != syscall.SIGHUP {
				log.Info("exiting", "signal", sig.String())
				return nil
			}
			c, err := conf.Load(cfgpath)
			if err != nil {
				log.Error("failed to reload configuration", "path", cfgpath, "error", err)
				continue
			}
			redraw(c)
		case c := <-reloads:
			log.Info("configuration changed", "path", cfgpath)
			redraw(c)
		}
	}
}
